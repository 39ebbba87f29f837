// Package planner exposes the shift calendar as a set of command handlers:
// the operations a front-end (CLI, GUI, service) invokes, one per user
// action. The front-end holds no business state of its own beyond the
// summaries it displays.
package planner

import (
	"log/slog"
	"sync"
	"time"

	"shiftcal/internal/calendar"
	"shiftcal/internal/models"
)

// Planner owns one Calendar for the lifetime of a session and serializes
// all mutations to it, so the append/remove/render ordering contracts hold
// even when handlers are invoked from multiple goroutines.
type Planner struct {
	logger    *slog.Logger
	organiser string

	mu  sync.Mutex
	cal *calendar.Calendar
}

// New creates a Planner around an empty Calendar.
func New(logger *slog.Logger, prodID, organiser string) *Planner {
	return &Planner{
		logger:    logger,
		organiser: organiser,
		cal:       calendar.New(prodID),
	}
}

// AddShift constructs an event from the supplied interval and label and
// appends it to the calendar. A malformed interval (end not after start) is
// logged as a warning but still accepted; the exporter has always written
// whatever it was given.
func (p *Planner) AddShift(start, end time.Time, summary string) models.Event {
	event := models.NewEvent(p.organiser, start, end, summary)
	if err := event.Validate(); err != nil {
		p.logger.Warn("Adding event that fails validation.", "reason", err)
	}

	p.mu.Lock()
	p.cal.Append(event)
	p.mu.Unlock()

	p.logger.Info("Added event.", "shift", event.DisplayString())
	return event
}

// DeleteLast removes the most recently added event. Deleting from an empty
// calendar is not an error; it reports false and leaves the calendar alone.
func (p *Planner) DeleteLast() (models.Event, bool) {
	p.mu.Lock()
	event, ok := p.cal.RemoveLast()
	p.mu.Unlock()

	if !ok {
		p.logger.Debug("No events to delete.")
		return models.Event{}, false
	}
	p.logger.Info("Deleted last event.", "shift", event.DisplayString())
	return event, true
}

// DeleteMatching removes the first event whose DTStart equals the given
// event's. It reports whether anything was removed.
func (p *Planner) DeleteMatching(event models.Event) bool {
	p.mu.Lock()
	ok := p.cal.RemoveMatching(event)
	p.mu.Unlock()

	if ok {
		p.logger.Info("Deleted event.", "shift", event.DisplayString())
	}
	return ok
}

// Shifts returns the current events in append order.
func (p *Planner) Shifts() []models.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cal.Events()
}

// Summaries returns one display label per event, in the order the rendered
// document will list them.
func (p *Planner) Summaries() []string {
	p.mu.Lock()
	events := p.cal.Events()
	p.mu.Unlock()

	labels := make([]string, 0, len(events))
	for _, e := range events {
		labels = append(labels, e.DisplayString())
	}
	return labels
}

// Render returns the reference-dialect document for preview.
func (p *Planner) Render() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cal.Render()
}

// Save writes the calendar to path in the reference dialect and returns the
// final (extension-normalized) path.
func (p *Planner) Save(path string) (string, error) {
	p.mu.Lock()
	saveTo, err := p.cal.WriteFile(path)
	p.mu.Unlock()

	if err != nil {
		return "", err
	}
	p.logger.Info("Saved calendar.", "path", saveTo, "events", len(p.Shifts()))
	return saveTo, nil
}

// SaveInterop writes the calendar to path in the interop dialect and
// returns the final path.
func (p *Planner) SaveInterop(path string) (string, error) {
	p.mu.Lock()
	saveTo, err := p.cal.WriteFileInterop(path)
	p.mu.Unlock()

	if err != nil {
		return "", err
	}
	p.logger.Info("Saved calendar.", "path", saveTo, "dialect", "interop")
	return saveTo, nil
}
