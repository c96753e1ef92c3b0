package dashboard

import "time"

const dayFormat = "2006-01-02"

// ActivityPoint is one day in the activity series.
type ActivityPoint struct {
	Date         string `json:"date"`
	NewMembers   int    `json:"new_members"`
	RevenueCents int64  `json:"revenue_cents"`
}

// RangeDays maps a range parameter to its day count. Unknown values report ok=false.
func RangeDays(s string) (days int, ok bool) {
	switch s {
	case "", "30d":
		return 30, true
	case "7d":
		return 7, true
	case "90d":
		return 90, true
	}
	return 0, false
}

// BuildDailySeries returns a dense, zero-filled series of days between from
// and to inclusive, overlaying the per-day counts keyed by YYYY-MM-DD.
func BuildDailySeries(from, to time.Time, newMembers map[string]int, revenue map[string]int64) []ActivityPoint {
	from = from.Truncate(24 * time.Hour)
	to = to.Truncate(24 * time.Hour)
	var series []ActivityPoint
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayFormat)
		series = append(series, ActivityPoint{
			Date:         key,
			NewMembers:   newMembers[key],
			RevenueCents: revenue[key],
		})
	}
	return series
}
