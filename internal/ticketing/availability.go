package ticketing

import (
	"sort"
	"strings"
	"time"
)

// unlimitedStock stands in for "no day bottleneck applies". It only needs to
// exceed any realistic per-type capacity before the min() with own stock.
const unlimitedStock = 1 << 30

// BuildDayLedger computes, for every festival day, the cumulative sold count
// of all types whose validity window overlaps that day. Days with no
// overlapping sales stay at zero. Types without a validity window do not
// draw on venue capacity and are excluded.
func BuildDayLedger(days []FestivalDay, types []TicketType) map[Day]int {
	ledger := make(map[Day]int, len(days))
	for _, d := range days {
		ledger[DayOf(d.Date)] = 0
	}

	for i := range types {
		t := &types[i]
		if !t.HasValidityWindow() {
			continue
		}
		for _, d := range days {
			key := DayOf(d.Date)
			if t.OverlapsDay(key) {
				ledger[key] += t.SoldCount
			}
		}
	}

	return ledger
}

// dayBottleneck returns the tightest remaining venue capacity across every
// festival day the type's validity window touches.
func dayBottleneck(t *TicketType, days []FestivalDay, ledger map[Day]int) int {
	bottleneck := unlimitedStock
	for _, d := range days {
		key := DayOf(d.Date)
		if !t.OverlapsDay(key) {
			continue
		}
		if remaining := d.MaxCapacity - ledger[key]; remaining < bottleneck {
			bottleneck = remaining
		}
	}
	return bottleneck
}

// RemainingStock derives the true sellable stock of a type: the minimum of
// its own remaining capacity and the day bottleneck, floored at zero.
func RemainingStock(t *TicketType, days []FestivalDay, ledger map[Day]int) int {
	remaining := t.Capacity - t.SoldCount
	if t.HasValidityWindow() {
		if bottleneck := dayBottleneck(t, days, ledger); bottleneck < remaining {
			remaining = bottleneck
		}
	}
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// CheckSalesWindow verifies that now falls inside the type's sales window.
// Missing bounds are treated as open-ended.
func CheckSalesWindow(t *TicketType, now time.Time) error {
	if t.SalesStartAt != nil && now.Before(*t.SalesStartAt) {
		return ErrSalesNotOpen
	}
	if t.SalesEndAt != nil && now.After(*t.SalesEndAt) {
		return ErrSalesClosed
	}
	return nil
}

// CheckDayCapacity verifies that selling one more unit of target does not
// push any overlapping festival day past its ceiling. types must be the
// full set of active types, read under the caller's transaction isolation.
func CheckDayCapacity(target *TicketType, days []FestivalDay, types []TicketType) error {
	if !target.HasValidityWindow() {
		return nil
	}

	ledger := BuildDayLedger(days, types)
	for _, d := range days {
		key := DayOf(d.Date)
		if !target.OverlapsDay(key) {
			continue
		}
		if ledger[key]+1 > d.MaxCapacity {
			return &VenueCapacityError{Day: key, DayName: d.Name}
		}
	}
	return nil
}

// Display weights for multi-day passes: weekend passes lead, then 3-day and
// full passes, then everything else.
func displayWeight(name string) int {
	name = strings.ToLower(name)
	switch {
	case strings.Contains(name, "week-end"), strings.Contains(name, "weekend"):
		return 1
	case strings.Contains(name, "3 jours"), strings.Contains(name, "3-day"),
		strings.Contains(name, "pass complet"), strings.Contains(name, "full pass"):
		return 2
	default:
		return 3
	}
}

// SortByDisplayOrder orders the public listing: single-day passes first,
// multi-day passes grouped by display weight, ties broken by validity start
// then by price ascending.
func SortByDisplayOrder(items []TicketTypeAvailability) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i].TicketType, &items[j].TicketType

		if a.IsMultiDay() != b.IsMultiDay() {
			return !a.IsMultiDay()
		}

		if a.IsMultiDay() {
			wa, wb := displayWeight(a.Name), displayWeight(b.Name)
			if wa != wb {
				return wa < wb
			}
		}

		da, db := int64(0), int64(0)
		if a.ValidFrom != nil {
			da = a.ValidFrom.UnixMilli()
		}
		if b.ValidFrom != nil {
			db = b.ValidFrom.UnixMilli()
		}
		if da != db {
			return da < db
		}

		return a.PriceCents < b.PriceCents
	})
}
