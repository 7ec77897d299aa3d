package ticketing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDayOf(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "utc midnight",
			in:   time.Date(2026, time.July, 17, 0, 0, 0, 0, time.UTC),
			want: "2026-07-17",
		},
		{
			name: "utc end of day",
			in:   time.Date(2026, time.July, 17, 23, 59, 59, 0, time.UTC),
			want: "2026-07-17",
		},
		{
			name: "non utc zone is normalized",
			in:   time.Date(2026, time.July, 18, 1, 30, 0, 0, time.FixedZone("CEST", 2*3600)),
			want: "2026-07-17",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DayOf(tt.in).String())
		})
	}
}

func TestDayBounds(t *testing.T) {
	d := DayOf(time.Date(2026, time.July, 18, 12, 0, 0, 0, time.UTC))

	require.Equal(t, time.Date(2026, time.July, 18, 0, 0, 0, 0, time.UTC), d.Start())
	require.Equal(t, time.Date(2026, time.July, 18, 23, 59, 59, 999999999, time.UTC), d.End())
	require.Equal(t, d, DayOf(d.Start()))
	require.Equal(t, d, DayOf(d.End()))
	require.Equal(t, d+1, DayOf(d.End().Add(time.Nanosecond)))
}
