package ticketing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func tp(t time.Time) *time.Time { return &t }

func makeDay(name string, date time.Time, capacity int) FestivalDay {
	return FestivalDay{Name: name, Date: date, MaxCapacity: capacity}
}

func makeType(name string, capacity, sold int, validFrom, validUntil time.Time) TicketType {
	return TicketType{
		Name:       name,
		Capacity:   capacity,
		SoldCount:  sold,
		IsActive:   true,
		ValidFrom:  tp(validFrom),
		ValidUntil: tp(validUntil),
	}
}

var (
	friday   = time.Date(2026, time.July, 17, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, time.July, 18, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, time.July, 19, 0, 0, 0, 0, time.UTC)
)

func endOf(d time.Time) time.Time {
	return d.Add(24*time.Hour - time.Second)
}

func TestBuildDayLedger(t *testing.T) {
	days := []FestivalDay{
		makeDay("Vendredi", friday, 2000),
		makeDay("Samedi", saturday, 2000),
		makeDay("Dimanche", sunday, 2000),
	}

	dayPass := makeType("Pass Jour 1", 5000, 10, friday, endOf(friday))
	weekend := makeType("Pass Week-end", 5000, 7, saturday, endOf(sunday))
	threeDay := makeType("Pass 3 Jours", 5000, 3, friday, endOf(sunday))
	windowless := TicketType{Name: "Goodies", Capacity: 100, SoldCount: 50}

	ledger := BuildDayLedger(days, []TicketType{dayPass, weekend, threeDay, windowless})

	require.Equal(t, 13, ledger[DayOf(friday)])   // day pass + 3-day
	require.Equal(t, 10, ledger[DayOf(saturday)]) // weekend + 3-day
	require.Equal(t, 10, ledger[DayOf(sunday)])   // weekend + 3-day
}

func TestBuildDayLedgerEmptyDayStaysZero(t *testing.T) {
	days := []FestivalDay{makeDay("Vendredi", friday, 2000)}
	ledger := BuildDayLedger(days, nil)

	got, ok := ledger[DayOf(friday)]
	require.True(t, ok)
	require.Zero(t, got)
}

func TestRemainingStock(t *testing.T) {
	days := []FestivalDay{
		makeDay("Jour A", friday, 2),
		makeDay("Jour B", saturday, 2000),
	}

	tests := []struct {
		name  string
		typ   TicketType
		types []TicketType
		want  int
	}{
		{
			name: "own capacity is the limit",
			typ:  makeType("Pass B", 10, 4, saturday, endOf(saturday)),
			want: 6,
		},
		{
			name: "day bottleneck wins over own capacity",
			typ:  makeType("Pass A", 10, 0, friday, endOf(friday)),
			types: []TicketType{
				makeType("Other A", 10, 2, friday, endOf(friday)),
			},
			want: 0,
		},
		{
			name: "windowless type ignores day ledger",
			typ:  TicketType{Name: "Goodies", Capacity: 5, SoldCount: 1},
			types: []TicketType{
				makeType("Other A", 10, 2, friday, endOf(friday)),
			},
			want: 4,
		},
		{
			name: "oversold floors at zero",
			typ:  makeType("Pass B", 3, 5, saturday, endOf(saturday)),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			all := append(tt.types, tt.typ)
			ledger := BuildDayLedger(days, all)
			require.Equal(t, tt.want, RemainingStock(&tt.typ, days, ledger))
		})
	}
}

// A multi-day pass sale must count against every day it overlaps, so a pass
// spanning a full day A makes single-day passes for A sold out too.
func TestRemainingStockSharedBottleneck(t *testing.T) {
	days := []FestivalDay{
		makeDay("Jour A", friday, 2),
		makeDay("Jour B", saturday, 2),
	}

	multiDay := makeType("Pass 2 Jours", 100, 2, friday, endOf(saturday))
	singleA := makeType("Pass Jour A", 100, 0, friday, endOf(friday))
	singleB := makeType("Pass Jour B", 100, 0, saturday, endOf(saturday))

	all := []TicketType{multiDay, singleA, singleB}
	ledger := BuildDayLedger(days, all)

	require.Equal(t, 0, RemainingStock(&singleA, days, ledger))
	require.Equal(t, 0, RemainingStock(&singleB, days, ledger))
	require.Equal(t, 0, RemainingStock(&multiDay, days, ledger))
}

func TestCheckSalesWindow(t *testing.T) {
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   *time.Time
		end     *time.Time
		wantErr error
	}{
		{name: "no bounds", wantErr: nil},
		{name: "inside window", start: tp(now.Add(-time.Hour)), end: tp(now.Add(time.Hour)), wantErr: nil},
		{name: "before start", start: tp(now.Add(time.Hour)), wantErr: ErrSalesNotOpen},
		{name: "after end", end: tp(now.Add(-time.Hour)), wantErr: ErrSalesClosed},
		{name: "exactly at start", start: tp(now), wantErr: nil},
		{name: "exactly at end", end: tp(now), wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := TicketType{SalesStartAt: tt.start, SalesEndAt: tt.end}
			err := CheckSalesWindow(&typ, now)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCheckDayCapacity(t *testing.T) {
	days := []FestivalDay{
		makeDay("Jour A", friday, 2),
		makeDay("Jour B", saturday, 2000),
	}

	t.Run("allows sale under the ceiling", func(t *testing.T) {
		target := makeType("Pass A", 100, 1, friday, endOf(friday))
		err := CheckDayCapacity(&target, days, []TicketType{target})
		require.NoError(t, err)
	})

	t.Run("rejects sale that would exceed the ceiling", func(t *testing.T) {
		target := makeType("Pass A", 100, 2, friday, endOf(friday))
		err := CheckDayCapacity(&target, days, []TicketType{target})

		var capErr *VenueCapacityError
		require.ErrorAs(t, err, &capErr)
		require.Equal(t, "Jour A", capErr.DayName)
		require.Equal(t, DayOf(friday), capErr.Day)
	})

	t.Run("counts other overlapping types against the same day", func(t *testing.T) {
		target := makeType("Pass A", 100, 0, friday, endOf(friday))
		other := makeType("Pass 2 Jours", 100, 2, friday, endOf(saturday))
		err := CheckDayCapacity(&target, days, []TicketType{target, other})

		var capErr *VenueCapacityError
		require.ErrorAs(t, err, &capErr)
		require.Equal(t, "Jour A", capErr.DayName)
	})

	t.Run("multi day pass is blocked by its tightest day", func(t *testing.T) {
		target := makeType("Pass 2 Jours", 100, 0, friday, endOf(saturday))
		other := makeType("Pass A", 100, 2, friday, endOf(friday))
		err := CheckDayCapacity(&target, days, []TicketType{target, other})
		require.Error(t, err)
	})

	t.Run("windowless type never hits venue capacity", func(t *testing.T) {
		target := TicketType{Name: "Goodies", Capacity: 10}
		full := makeType("Pass A", 100, 2, friday, endOf(friday))
		err := CheckDayCapacity(&target, days, []TicketType{target, full})
		require.NoError(t, err)
	})
}

// Walks a day with capacity 2 through three sales: the first two fit, then
// both the same type and a sibling type on that day are rejected.
func TestCheckDayCapacitySequentialExhaustion(t *testing.T) {
	days := []FestivalDay{makeDay("Samedi", saturday, 2)}

	typeA := makeType("Pass A", 10, 0, saturday, endOf(saturday))
	typeB := makeType("Pass B", 10, 1, saturday, endOf(saturday))

	// Day usage 1 (B's sale). A's first purchase fits.
	require.NoError(t, CheckDayCapacity(&typeA, days, []TicketType{typeA, typeB}))

	// Day usage 2 after A sells once. Nothing else fits.
	typeA.SoldCount = 1
	require.Error(t, CheckDayCapacity(&typeA, days, []TicketType{typeA, typeB}))
	require.Error(t, CheckDayCapacity(&typeB, days, []TicketType{typeA, typeB}))
}

func TestSortByDisplayOrder(t *testing.T) {
	day1 := makeType("Pass Jour 1 (Vendredi)", 5000, 0, friday, endOf(friday))
	day1.PriceCents = 3500
	day2 := makeType("Pass Jour 2 (Samedi)", 5000, 0, saturday, endOf(saturday))
	day2.PriceCents = 4500
	day3 := makeType("Pass Jour 3 (Dimanche)", 5000, 0, sunday, endOf(sunday))
	day3.PriceCents = 4500
	weekend := makeType("Pass Week-end", 5000, 0, saturday, endOf(sunday))
	weekend.PriceCents = 7000
	threeDays := makeType("Pass 3 Jours", 5000, 0, friday, endOf(sunday))
	threeDays.PriceCents = 9000

	items := []TicketTypeAvailability{
		{TicketType: threeDays},
		{TicketType: day3},
		{TicketType: weekend},
		{TicketType: day1},
		{TicketType: day2},
	}

	SortByDisplayOrder(items)

	got := make([]string, len(items))
	for i := range items {
		got[i] = items[i].TicketType.Name
	}
	require.Equal(t, []string{
		"Pass Jour 1 (Vendredi)",
		"Pass Jour 2 (Samedi)",
		"Pass Jour 3 (Dimanche)",
		"Pass Week-end",
		"Pass 3 Jours",
	}, got)
}

func TestSortByDisplayOrderTieBreakers(t *testing.T) {
	cheap := makeType("Pass Jour 1 Standard", 100, 0, friday, endOf(friday))
	cheap.PriceCents = 3000
	pricey := makeType("Pass Jour 1 Confort", 100, 0, friday, endOf(friday))
	pricey.PriceCents = 6000

	items := []TicketTypeAvailability{
		{TicketType: pricey},
		{TicketType: cheap},
	}
	SortByDisplayOrder(items)

	require.Equal(t, "Pass Jour 1 Standard", items[0].TicketType.Name)
	require.Equal(t, "Pass Jour 1 Confort", items[1].TicketType.Name)
}

func TestTicketTypeCoversDate(t *testing.T) {
	typ := makeType("Pass Week-end", 100, 0, saturday, endOf(sunday))

	require.False(t, typ.CoversDate(friday.Add(10*time.Hour)))
	require.True(t, typ.CoversDate(saturday.Add(10*time.Hour)))
	require.True(t, typ.CoversDate(sunday.Add(23*time.Hour)))
	require.False(t, typ.CoversDate(sunday.Add(25*time.Hour)))

	windowless := TicketType{Name: "Goodies"}
	require.True(t, windowless.CoversDate(friday))
}

func TestTicketTypeIsMultiDay(t *testing.T) {
	single := makeType("Pass Jour 1", 100, 0, friday, endOf(friday))
	multi := makeType("Pass Week-end", 100, 0, saturday, endOf(sunday))
	windowless := TicketType{Name: "Goodies"}

	require.False(t, single.IsMultiDay())
	require.True(t, multi.IsMultiDay())
	require.False(t, windowless.IsMultiDay())
}
