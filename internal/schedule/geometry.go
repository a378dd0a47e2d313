// Package schedule renders the weekly booking grid as a raster image.
// Layout math lives here as pure functions over named geometry constants;
// renderer.go does the actual drawing.
package schedule

import (
	"fmt"
	"time"

	"musicroombooking/internal/domain"
)

// Geometry of the background template: seven weekday columns and hourly rows
// starting at BaseHour. The constants describe the template, they are not
// derived from it.
const (
	// OriginX and OriginY locate the Monday/BaseHour corner of the grid.
	OriginX = 48.0
	OriginY = 73.0
	// ColumnWidth is the width of one weekday column.
	ColumnWidth = 175.5
	// RowHeight is the vertical distance between consecutive hour lines.
	RowHeight = 32.0
	// HourHeight is the drawn height of one booked hour.
	HourHeight = 31.5

	// BaseHour is the first hour row of the visible band.
	BaseHour = 7

	// Now-marker visibility: drawn only when the current hour is strictly
	// inside (NowMarkerAfterHour, NowMarkerBeforeHour).
	NowMarkerAfterHour  = 6
	NowMarkerBeforeHour = 23
	// NowMarkerHeight is the thickness of the marker line.
	NowMarkerHeight = 2.0

	// MaxAliasRunes caps the alias length in labels before an ellipsis.
	MaxAliasRunes = 11

	cornerRadius = 2.0
	fontSize     = 14.0
)

// Box is an axis-aligned rectangle on the template with its label.
type Box struct {
	X0, Y0, X1, Y1 float64
	Label          string
}

// WeekdayIndex returns 0 for Monday through 6 for Sunday.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// hourOffset is the vertical position of t within its day column, in rows
// from BaseHour.
func hourOffset(t time.Time) float64 {
	return float64(t.Hour()-BaseHour) + float64(t.Minute())/60.0
}

// BoxFor computes the rectangle and label for one booking in loc.
func BoxFor(b *domain.Booking, loc *time.Location) (Box, error) {
	hours, err := domain.DurationHours(b.TimeStart, b.TimeEnd)
	if err != nil {
		return Box{}, err
	}

	start := b.TimeStart.In(loc)
	x0 := OriginX + ColumnWidth*float64(WeekdayIndex(start))
	y0 := OriginY + RowHeight*hourOffset(start)
	return Box{
		X0:    x0,
		Y0:    y0,
		X1:    x0 + ColumnWidth,
		Y1:    y0 + HourHeight*hours,
		Label: Label(b, loc),
	}, nil
}

// Layout computes boxes for all bookings of a week. Bookings with malformed
// intervals are skipped rather than failing the whole render.
func Layout(bookings []*domain.Booking, loc *time.Location) []Box {
	boxes := make([]Box, 0, len(bookings))
	for _, b := range bookings {
		box, err := BoxFor(b, loc)
		if err != nil {
			continue
		}
		boxes = append(boxes, box)
	}
	return boxes
}

// NowMarker returns the marker box for the current instant and whether it is
// inside the visible band.
func NowMarker(now time.Time, loc *time.Location) (Box, bool) {
	now = now.In(loc)
	if h := now.Hour(); h <= NowMarkerAfterHour || h >= NowMarkerBeforeHour {
		return Box{}, false
	}
	x0 := OriginX + ColumnWidth*float64(WeekdayIndex(now))
	y0 := OriginY + RowHeight*hourOffset(now)
	return Box{X0: x0, Y0: y0, X1: x0 + ColumnWidth, Y1: y0 + NowMarkerHeight}, true
}

// TruncateAlias shortens an alias to MaxAliasRunes runes with an ellipsis.
func TruncateAlias(alias string) string {
	runes := []rune(alias)
	if len(runes) <= MaxAliasRunes {
		return alias
	}
	return string(runes[:MaxAliasRunes]) + "..."
}

// Label formats the text drawn over a booking box: a truncated alias and the
// HH:MM-HH:MM time range.
func Label(b *domain.Booking, loc *time.Location) string {
	return fmt.Sprintf("%s %s-%s",
		TruncateAlias(b.ParticipantAlias),
		b.TimeStart.In(loc).Format("15:04"),
		b.TimeEnd.In(loc).Format("15:04"),
	)
}
