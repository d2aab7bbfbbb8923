// Package calendar groups meetings by calendar day for month views.
package calendar

import (
	"sort"
	"time"

	"github.com/Innovation-Code-SN/companysphere-go/pkg/models"
)

// Day is a civil date used as a grouping key.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

// DayOf returns the civil date of t in t's location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Date: d}
}

// Time returns midnight of the day in the given location.
func (d Day) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Date, 0, 0, 0, 0, loc)
}

// GroupByDay buckets meetings by the calendar day they start on.
// Within a day, meetings keep their original relative order.
func GroupByDay(meetings []models.Meeting) map[Day][]models.Meeting {
	out := make(map[Day][]models.Meeting)
	for _, m := range meetings {
		key := DayOf(m.StartTime)
		out[key] = append(out[key], m)
	}
	return out
}

// Indicators returns one response status per meeting of a day, in
// meeting order. The month view renders one colored dot per entry.
func Indicators(meetings []models.Meeting) []models.ResponseStatus {
	out := make([]models.ResponseStatus, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, m.MyResponse)
	}
	return out
}

// StatusColor maps a response status to the indicator color name.
func StatusColor(s models.ResponseStatus) string {
	switch s {
	case models.ResponseAccepted:
		return "green"
	case models.ResponseDeclined:
		return "red"
	case models.ResponseTentative:
		return "orange"
	default:
		return "gray"
	}
}

// MonthDays returns every day of the given month in order.
func MonthDays(year int, month time.Month) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()

	days := make([]Day, 0, last)
	for d := 1; d <= last; d++ {
		days = append(days, Day{Year: year, Month: month, Date: d})
	}
	return days
}

// SortedDays returns the keys of grouped meetings in chronological
// order, for stable listing.
func SortedDays(grouped map[Day][]models.Meeting) []Day {
	days := make([]Day, 0, len(grouped))
	for d := range grouped {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		a, b := days[i], days[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Date < b.Date
	})
	return days
}
