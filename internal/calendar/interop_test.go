package calendar_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"

	"shiftcal/internal/calendar"
	"shiftcal/internal/models"
)

func TestEncodeInteropEscapesAndFolds(t *testing.T) {
	cal := calendar.New("shiftcal test")
	cal.Append(models.NewEventWithIdentity(
		"Admo",
		time.Date(2025, 6, 4, 7, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 4, 20, 0, 0, 0, time.UTC),
		"cover, desk; night",
		"uid-interop",
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	))

	var sb strings.Builder
	if err := cal.EncodeInterop(&sb); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	if !strings.Contains(out, "\r\n") {
		t.Error("interop output must use CRLF line endings")
	}
	if !strings.Contains(out, `SUMMARY:cover\, desk\; night`) {
		t.Errorf("summary not escaped per RFC 5545:\n%s", out)
	}
	if strings.Contains(out, "SUMMARY:cover, desk; night") {
		t.Error("interop output contains the unescaped summary")
	}
	for _, want := range []string{"BEGIN:VCALENDAR", "VERSION:2.0", "PRODID:shiftcal test", "UID:uid-interop"} {
		if !strings.Contains(out, want) {
			t.Errorf("interop output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteFileInteropRoundTrip(t *testing.T) {
	cal := calendar.New("shiftcal test")
	cal.Append(models.NewEventWithIdentity(
		"Admo",
		time.Date(2025, 6, 4, 7, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 4, 20, 0, 0, 0, time.UTC),
		"cover, desk",
		"uid-roundtrip",
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	))

	path, err := cal.WriteFileInterop(t.TempDir() + "/shifts.txt")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, ".ics") {
		t.Errorf("final path %q does not carry the export extension", path)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	decoded, err := ical.NewDecoder(file).Decode()
	if err != nil {
		t.Fatalf("a calendar client could not parse the interop file: %v", err)
	}

	events := decoded.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event after round trip, got %d", len(events))
	}
	summary, err := events[0].Props.Text(ical.PropSummary)
	if err != nil {
		t.Fatal(err)
	}
	if summary != "cover, desk" {
		t.Errorf("summary after round trip = %q, want %q", summary, "cover, desk")
	}
	start, err := events[0].DateTimeStart(time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if !start.Equal(time.Date(2025, 6, 4, 7, 0, 0, 0, time.UTC)) {
		t.Errorf("start after round trip = %v", start)
	}
}
