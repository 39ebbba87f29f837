// Package calendar holds the in-memory shift collection and its iCalendar
// serialization.
//
// Two dialects are produced from the same data:
//
//   - the reference dialect (Render, WriteFile): field values verbatim,
//     LF line endings, no folding — byte-compatible with the documents the
//     original exporter produced;
//   - the interop dialect (EncodeInterop, WriteFileInterop): RFC 5545
//     escaping, folding and CRLF via github.com/emersion/go-ical, for
//     feeding real calendar servers and clients.
package calendar

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"shiftcal/internal/models"
)

// Version is the iCalendar format version emitted in every document.
const Version = "2.0"

// Extension is the one file extension exports are written under. Any
// extension on a caller-supplied path is replaced with it.
const Extension = ".ics"

// Calendar is an ordered collection of shift events plus document metadata.
// Append order is preserved internally; sorting happens only at render time.
// Duplicates (events sharing a DTStart) are permitted and kept.
type Calendar struct {
	ProdID string
	events []models.Event
}

// New creates an empty Calendar identified by the given producer string.
func New(prodID string) *Calendar {
	return &Calendar{ProdID: prodID}
}

// Append adds an event to the end of the collection.
func (c *Calendar) Append(e models.Event) {
	c.events = append(c.events, e)
}

// RemoveLast removes and returns the most recently appended event.
// On an empty collection it is a no-op and reports false.
func (c *Calendar) RemoveLast() (models.Event, bool) {
	if len(c.events) == 0 {
		return models.Event{}, false
	}
	last := c.events[len(c.events)-1]
	c.events = c.events[:len(c.events)-1]
	return last, true
}

// RemoveMatching removes the first event equal to e under the DTStart-only
// equality rule. At most one element is removed; if none match it is a
// no-op and reports false.
func (c *Calendar) RemoveMatching(e models.Event) bool {
	for i := range c.events {
		if c.events[i].Equal(e) {
			c.events = append(c.events[:i], c.events[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of events in the collection.
func (c *Calendar) Len() int {
	return len(c.events)
}

// Events returns a copy of the collection in append order.
func (c *Calendar) Events() []models.Event {
	out := make([]models.Event, len(c.events))
	copy(out, c.events)
	return out
}

// sorted returns a copy of the collection in ascending DTStart order.
// The sort is stable, so events sharing a DTStart keep their append order.
// The internal slice is never reordered.
func (c *Calendar) sorted() []models.Event {
	out := c.Events()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Less(out[j])
	})
	return out
}

// Render converts the calendar to an iCalendar document in the reference
// dialect. Events appear in ascending DTStart order. Lines are LF-joined
// with no trailing newline.
func (c *Calendar) Render() string {
	content := []string{
		"BEGIN:VCALENDAR",
		"VERSION:" + Version,
		"PRODID:" + c.ProdID,
	}
	for _, e := range c.sorted() {
		content = append(content, e.Render())
	}
	content = append(content, "END:VCALENDAR")
	return strings.Join(content, "\n")
}

// NormalizePath rewrites path so its final element carries exactly the
// export extension, replacing any existing extension rather than appending
// to it. A dotfile name such as ".env" has no extension to replace, so the
// export extension is appended instead.
func NormalizePath(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		path = strings.TrimSuffix(path, ext)
	}
	return path + Extension
}

// WriteFile writes the rendered calendar to path, normalized per
// NormalizePath, as UTF-8 text with no byte-order mark. The target file is
// created or overwritten in place. It returns the final path written.
func (c *Calendar) WriteFile(path string) (string, error) {
	saveTo := NormalizePath(path)
	if err := os.WriteFile(saveTo, []byte(c.Render()), 0o644); err != nil {
		return "", fmt.Errorf("write calendar to %q: %w", saveTo, err)
	}
	return saveTo, nil
}
