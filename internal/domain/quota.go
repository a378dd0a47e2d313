package domain

import "time"

// Quota holds the configured booking caps in hours per participant.
// A booking counts against the calendar day and the Mon-Sun week containing
// its start.
type Quota struct {
	DailyCapHours  float64
	WeeklyCapHours float64
}

// QuotaUsage reports a participant's consumption against one cap.
// RemainingHours is clamped at zero for external consumers; Exceeded keeps
// the already-over-cap state visible for diagnostics.
type QuotaUsage struct {
	UsedHours      float64 `json:"used_hours"`
	CapHours       float64 `json:"cap_hours"`
	RemainingHours float64 `json:"remaining_hours"`
	Exceeded       bool    `json:"exceeded"`
}

// NewQuotaUsage builds a QuotaUsage from consumed hours and a cap.
func NewQuotaUsage(used, cap float64) *QuotaUsage {
	remaining := cap - used
	exceeded := remaining < 0
	if exceeded {
		remaining = 0
	}
	return &QuotaUsage{
		UsedHours:      used,
		CapHours:       cap,
		RemainingHours: remaining,
		Exceeded:       exceeded,
	}
}

// WeekStart returns midnight of the Monday of the week containing t,
// evaluated in loc. The weekly quota window is this fixed Mon-Sun week,
// not a rolling 168-hour window.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	// Monday = 0 .. Sunday = 6
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// WeekRange returns the half-open [Monday 00:00, next Monday 00:00) window
// of the week containing t.
func WeekRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := WeekStart(t, loc)
	return start, start.AddDate(0, 0, 7)
}

// DayRange returns the half-open [00:00, next day 00:00) window of the
// calendar day containing t, evaluated in loc.
func DayRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
