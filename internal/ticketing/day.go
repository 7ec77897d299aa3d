package ticketing

import "time"

// Day identifies a calendar date as a number of days since the Unix epoch.
// All bucketing happens in UTC so that day boundaries are identical across
// deployments regardless of server timezone.
type Day int

const secondsPerDay = 24 * 60 * 60

// DayOf returns the Day containing the given instant, evaluated in UTC.
func DayOf(t time.Time) Day {
	return Day(t.UTC().Unix() / secondsPerDay)
}

// Start returns UTC midnight at the beginning of the day.
func (d Day) Start() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

// End returns the last representable instant of the day.
func (d Day) End() time.Time {
	return d.Start().Add(24*time.Hour - time.Nanosecond)
}

func (d Day) String() string {
	return d.Start().Format("2006-01-02")
}
