package calendar

import (
	"fmt"
	"io"
	"os"

	"github.com/emersion/go-ical"

	"shiftcal/internal/models"
)

// toICal converts one shift event to an ical VEVENT component.
func toICal(e models.Event) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, e.UID)
	ve.Props.SetText(ical.PropOrganizer, e.Organiser)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, e.DTStamp)
	ve.Props.SetDateTime(ical.PropDateTimeStart, e.DTStart)
	ve.Props.SetDateTime(ical.PropDateTimeEnd, e.DTEnd)
	ve.Props.SetText(ical.PropSummary, e.Summary)
	return ve
}

// EncodeInterop writes the calendar to w in the interop dialect: RFC 5545
// escaping of commas, semicolons, backslashes and newlines, 75-octet line
// folding and CRLF line endings. Event order matches Render (ascending
// DTStart, stable).
func (c *Calendar) EncodeInterop(w io.Writer) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, Version)
	cal.Props.SetText(ical.PropProductID, c.ProdID)
	for _, e := range c.sorted() {
		cal.Children = append(cal.Children, toICal(e))
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

// WriteFileInterop writes the interop-dialect document to path, normalized
// per NormalizePath. It returns the final path written.
func (c *Calendar) WriteFileInterop(path string) (string, error) {
	saveTo := NormalizePath(path)
	file, err := os.Create(saveTo)
	if err != nil {
		return "", fmt.Errorf("create %q: %w", saveTo, err)
	}
	defer file.Close()

	if err := c.EncodeInterop(file); err != nil {
		return "", fmt.Errorf("write calendar to %q: %w", saveTo, err)
	}
	return saveTo, nil
}
