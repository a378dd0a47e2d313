package domain

import "time"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching boundaries do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DurationHours returns the elapsed time between start and end in fractional
// hours. Returns ErrInvalidInterval when end is not strictly after start.
func DurationHours(start, end time.Time) (float64, error) {
	if !end.After(start) {
		return 0, ErrInvalidInterval
	}
	return end.Sub(start).Hours(), nil
}
