package calendar

import (
	"testing"
	"time"

	"github.com/Innovation-Code-SN/companysphere-go/pkg/models"
)

func meetingAt(id int64, t time.Time, status models.ResponseStatus) models.Meeting {
	return models.Meeting{
		ID:         id,
		Title:      "m",
		StartTime:  t,
		EndTime:    t.Add(time.Hour),
		MyResponse: status,
	}
}

// Three meetings on the same calendar day with accepted/pending/declined
// statuses: the per-day indicator count is 3, colors per status.
func TestGroupByDay_SameDayIndicators(t *testing.T) {
	day := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)
	meetings := []models.Meeting{
		meetingAt(1, day.Add(9*time.Hour), models.ResponseAccepted),
		meetingAt(2, day.Add(11*time.Hour), models.ResponsePending),
		meetingAt(3, day.Add(15*time.Hour), models.ResponseDeclined),
		meetingAt(4, day.AddDate(0, 0, 1), models.ResponseAccepted),
	}

	grouped := GroupByDay(meetings)
	key := Day{Year: 2026, Month: time.March, Date: 12}

	dayMeetings := grouped[key]
	if len(dayMeetings) != 3 {
		t.Fatalf("meetings on %v = %d, want 3", key, len(dayMeetings))
	}

	indicators := Indicators(dayMeetings)
	if len(indicators) != 3 {
		t.Fatalf("indicators = %d, want 3", len(indicators))
	}

	wantColors := []string{"green", "gray", "red"}
	for i, status := range indicators {
		if got := StatusColor(status); got != wantColors[i] {
			t.Errorf("indicator %d color = %s, want %s", i, got, wantColors[i])
		}
	}
}

func TestGroupByDay_DateEqualityIgnoresTime(t *testing.T) {
	morning := time.Date(2026, time.July, 1, 0, 0, 1, 0, time.UTC)
	night := time.Date(2026, time.July, 1, 23, 59, 59, 0, time.UTC)

	grouped := GroupByDay([]models.Meeting{
		meetingAt(1, morning, models.ResponsePending),
		meetingAt(2, night, models.ResponsePending),
	})

	if len(grouped) != 1 {
		t.Fatalf("got %d day buckets, want 1", len(grouped))
	}
}

func TestMonthDays(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2024, time.February, 29}, // leap year
		{2026, time.April, 30},
	}

	for _, tt := range tests {
		days := MonthDays(tt.year, tt.month)
		if len(days) != tt.want {
			t.Errorf("MonthDays(%d, %s) = %d days, want %d", tt.year, tt.month, len(days), tt.want)
		}
		if days[0].Date != 1 || days[len(days)-1].Date != tt.want {
			t.Errorf("MonthDays(%d, %s) range [%d,%d], want [1,%d]",
				tt.year, tt.month, days[0].Date, days[len(days)-1].Date, tt.want)
		}
	}
}

func TestSortedDays(t *testing.T) {
	grouped := GroupByDay([]models.Meeting{
		meetingAt(1, time.Date(2026, time.May, 20, 10, 0, 0, 0, time.UTC), models.ResponsePending),
		meetingAt(2, time.Date(2026, time.May, 3, 10, 0, 0, 0, time.UTC), models.ResponsePending),
		meetingAt(3, time.Date(2025, time.December, 31, 10, 0, 0, 0, time.UTC), models.ResponsePending),
	})

	days := SortedDays(grouped)
	if len(days) != 3 {
		t.Fatalf("got %d days, want 3", len(days))
	}
	for i := 1; i < len(days); i++ {
		a, b := days[i-1], days[i]
		if !a.Time(time.UTC).Before(b.Time(time.UTC)) {
			t.Fatalf("days not sorted: %v before %v", a, b)
		}
	}
}

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status models.ResponseStatus
		want   string
	}{
		{models.ResponseAccepted, "green"},
		{models.ResponseDeclined, "red"},
		{models.ResponseTentative, "orange"},
		{models.ResponsePending, "gray"},
		{models.ResponseStatus("???"), "gray"},
	}

	for _, tt := range tests {
		if got := StatusColor(tt.status); got != tt.want {
			t.Errorf("StatusColor(%s) = %s, want %s", tt.status, got, tt.want)
		}
	}
}
