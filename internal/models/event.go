package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DTFormat is the iCalendar local date-time layout (no zone designator).
const DTFormat = "20060102T150405"

// Event represents a single shift: one scheduled interval with a label.
// It is a value type; UID and DTStamp are assigned once at construction and
// must not be changed afterwards.
type Event struct {
	Organiser string    // free-text author of the event
	DTStart   time.Time // interval start
	DTEnd     time.Time // interval end
	Summary   string    // free-text label
	DTStamp   time.Time // creation time, fixed at construction
	UID       string    // globally unique identifier, fixed at construction
}

// NewEvent builds an Event from the caller-supplied fields and assigns a
// fresh UID and a DTStamp of now. No validation is performed; see Validate.
func NewEvent(organiser string, start, end time.Time, summary string) Event {
	return Event{
		Organiser: organiser,
		DTStart:   start,
		DTEnd:     end,
		Summary:   summary,
		DTStamp:   time.Now(),
		UID:       uuid.NewString(),
	}
}

// NewEventWithIdentity builds an Event with an explicit UID and DTStamp,
// for callers that already hold an identity (e.g. tests or importers).
func NewEventWithIdentity(organiser string, start, end time.Time, summary, uid string, dtstamp time.Time) Event {
	return Event{
		Organiser: organiser,
		DTStart:   start,
		DTEnd:     end,
		Summary:   summary,
		DTStamp:   dtstamp,
		UID:       uid,
	}
}

// Less orders events by DTStart only. DTEnd, Summary and UID never
// participate in ordering.
func (e Event) Less(other Event) bool {
	return e.DTStart.Before(other.DTStart)
}

// Equal reports whether two events share the same DTStart. This is the only
// equality the calendar uses: two shifts starting at the same instant are
// interchangeable for removal, whatever their other fields say.
func (e Event) Equal(other Event) bool {
	return e.DTStart.Equal(other.DTStart)
}

// Validate reports problems with the event's fields. Construction and
// rendering never call it; a malformed event still renders as-is. Callers
// that want strictness check it themselves.
func (e Event) Validate() error {
	if e.Organiser == "" {
		return fmt.Errorf("event %s: organiser is empty", e.UID)
	}
	if e.Summary == "" {
		return fmt.Errorf("event %s: summary is empty", e.UID)
	}
	if !e.DTEnd.After(e.DTStart) {
		return fmt.Errorf("event %s: end %s is not after start %s",
			e.UID, e.DTEnd.Format(DTFormat), e.DTStart.Format(DTFormat))
	}
	return nil
}

// Render converts the event to the VEVENT portion of an iCalendar document.
// Field values are embedded verbatim; lines are LF-joined with no trailing
// newline. Output is byte-stable for an unmodified event.
func (e Event) Render() string {
	content := []string{
		"BEGIN:VEVENT",
		"UID:" + e.UID,
		"ORGANIZER:" + e.Organiser,
		"DTSTAMP:" + e.DTStamp.Format(DTFormat),
		"DTSTART:" + e.DTStart.Format(DTFormat),
		"DTEND:" + e.DTEnd.Format(DTFormat),
		"SUMMARY:" + e.Summary,
		"END:VEVENT",
	}
	return strings.Join(content, "\n")
}

// DisplayString formats the shift as a short label for list views,
// e.g. "04 Jun 2025 07:00 AM - 08:00 PM".
func (e Event) DisplayString() string {
	return fmt.Sprintf("%s %s - %s",
		e.DTStart.Format("02 Jan 2006"),
		e.DTStart.Format("03:04 PM"),
		e.DTEnd.Format("03:04 PM"))
}
