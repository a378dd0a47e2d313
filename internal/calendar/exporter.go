// Package calendar serializes bookings as an iCalendar feed.
package calendar

import (
	"fmt"
	"hash/crc32"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"

	"musicroombooking/internal/domain"
)

// FeedWindow is how far the room feed reaches into the past and future
// relative to export time.
const FeedWindow = 14 * 24 * time.Hour

// Exporter builds VCALENDAR documents from bookings. The domain anchors
// event UIDs so feeds stay stable across exports.
type Exporter struct {
	Name        string
	Description string
	Domain      string
	Location    string
	ProductID   string
	// Timezone is the IANA name advertised to calendar clients via
	// X-WR-TIMEZONE.
	Timezone string

	now func() time.Time
}

func NewExporter(name, description, domain, location, productID, timezone string) *Exporter {
	return &Exporter{
		Name:        name,
		Description: description,
		Domain:      domain,
		Location:    location,
		ProductID:   productID,
		Timezone:    timezone,
		now:         time.Now,
	}
}

// EventUID derives a stable UID for a booking. The same booking always maps
// to the same UID so calendar clients can reconcile updates.
func (e *Exporter) EventUID(bookingID int64) string {
	sum := crc32.ChecksumIEEE([]byte(strconv.FormatInt(bookingID, 10)))
	return fmt.Sprintf("music-room-%x@%s", sum, e.Domain)
}

// Export serializes the given bookings into an iCalendar document.
func (e *Exporter) Export(bookings []*domain.Booking) string {
	stamp := e.now().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(e.ProductID)
	cal.SetVersion("2.0")
	cal.SetXWRCalName(e.Name)
	cal.SetXWRCalDesc(e.Description)
	cal.SetXWRTimezone(e.Timezone)

	for _, b := range bookings {
		ev := cal.AddEvent(e.EventUID(b.ID))
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(b.TimeStart.UTC())
		ev.SetEndAt(b.TimeEnd.UTC())
		ev.SetSummary(fmt.Sprintf("booking @%s", b.ParticipantAlias))
		ev.SetLocation(e.Location)
	}

	return cal.Serialize()
}

// FeedRange returns the window of bookings the room feed should carry,
// centered on the export time.
func (e *Exporter) FeedRange() (time.Time, time.Time) {
	now := e.now()
	return now.Add(-FeedWindow), now.Add(FeedWindow)
}
