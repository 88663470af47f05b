package history

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/weathercli/internal/domain"
	"github.com/doeshing/weathercli/internal/pkg/logger"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2026, 10, 19, hour, min, sec, 123_000_000, time.Local)
}

func newLogStore(t *testing.T) *LogStore {
	t.Helper()
	return NewLogStore(filepath.Join(t.TempDir(), "weather.log"), logger.NewStd(false))
}

func writeLog(t *testing.T, s *LogStore, lines ...string) {
	t.Helper()
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(s.Path(), []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
}

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name  string
		event domain.LookupEvent
		want  string
	}{
		{
			name:  "hit",
			event: domain.LookupEvent{Timestamp: at(14, 30, 5), City: "pune", Outcome: domain.LookupHit},
			want:  "2026-10-19 14:30:05,123 **CACHE HIT!** User requested for ***pune***.",
		},
		{
			name:  "miss",
			event: domain.LookupEvent{Timestamp: at(9, 1, 2), City: "New York", Outcome: domain.LookupMiss},
			want:  "2026-10-19 09:01:02,123 **CACHE MISS!** Making a request to the WeatherAPI for ***New York***.",
		},
		{
			name:  "asterisks and newlines stripped",
			event: domain.LookupEvent{Timestamp: at(9, 1, 2), City: "par*is\n", Outcome: domain.LookupMiss},
			want:  "2026-10-19 09:01:02,123 **CACHE MISS!** Making a request to the WeatherAPI for ***paris***.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLine(tt.event); got != tt.want {
				t.Errorf("FormatLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    domain.HistoryEntry
		wantErr string
	}{
		{
			name: "hit",
			line: "2026-10-19 14:30:05,123 **CACHE HIT!** User requested for ***pune***.",
			want: domain.HistoryEntry{Timestamp: time.Date(2026, 10, 19, 14, 30, 5, 0, time.Local), City: "pune", Outcome: domain.LookupHit},
		},
		{
			name: "miss keeps last seconds digit",
			line: "2026-10-19 14:30:59,000 **CACHE MISS!** Making a request to the WeatherAPI for ***Rio de Janeiro***.",
			want: domain.HistoryEntry{Timestamp: time.Date(2026, 10, 19, 14, 30, 59, 0, time.Local), City: "Rio de Janeiro", Outcome: domain.LookupMiss},
		},
		{
			name: "no marker",
			line: "2026-10-19 14:30:05 looked up ***oslo***",
			want: domain.HistoryEntry{Timestamp: time.Date(2026, 10, 19, 14, 30, 5, 0, time.Local), City: "oslo", Outcome: domain.LookupUnknown},
		},
		{name: "short", line: "2026-10-19", wantErr: "shorter"},
		{name: "bad timestamp", line: "not a timestamp at all ***pune***", wantErr: "invalid timestamp"},
		{name: "no sentinel", line: "2026-10-19 14:30:05,123 **CACHE HIT!** pune", wantErr: "sentinel"},
		{name: "single sentinel", line: "2026-10-19 14:30:05,123 ***pune", wantErr: "sentinel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(3, tt.line)
			if tt.wantErr != "" {
				var malformed *domain.MalformedLineError
				if !errors.As(err, &malformed) {
					t.Fatalf("expected MalformedLineError, got %v", err)
				}
				if malformed.Line != 3 || !strings.Contains(malformed.Reason, tt.wantErr) {
					t.Errorf("unexpected error %+v", malformed)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Timestamp.Equal(tt.want.Timestamp) || got.City != tt.want.City || got.Outcome != tt.want.Outcome {
				t.Errorf("ParseLine() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLogStoreAppendThenEntries(t *testing.T) {
	s := newLogStore(t)
	events := []domain.LookupEvent{
		{Timestamp: at(10, 0, 0), City: "pune", Outcome: domain.LookupMiss},
		{Timestamp: at(10, 5, 0), City: "pune", Outcome: domain.LookupHit},
		{Timestamp: at(11, 0, 0), City: "paris", Outcome: domain.LookupMiss},
	}
	for _, e := range events {
		if err := s.Append(e); err != nil {
			t.Fatalf("Append error: %v", err)
		}
	}

	listing, err := s.Entries(domain.HistoryQuery{})
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}

	var got []string
	for _, e := range listing.Entries {
		got = append(got, e.City+"/"+string(e.Outcome))
	}
	want := []string{"paris/miss", "pune/hit", "pune/miss"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if listing.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", listing.Skipped)
	}
}

func TestLogStoreLimit(t *testing.T) {
	s := newLogStore(t)
	for i, city := range []string{"a", "b", "c", "d"} {
		if err := s.Append(domain.LookupEvent{Timestamp: at(10, i, 0), City: city, Outcome: domain.LookupMiss}); err != nil {
			t.Fatalf("Append error: %v", err)
		}
	}

	listing, err := s.Entries(domain.HistoryQuery{Limit: 2})
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(listing.Entries) != 2 || listing.Entries[0].City != "d" || listing.Entries[1].City != "c" {
		t.Errorf("unexpected entries: %+v", listing.Entries)
	}
}

func TestLogStoreMissingFile(t *testing.T) {
	s := newLogStore(t)
	listing, err := s.Entries(domain.HistoryQuery{Strict: true})
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(listing.Entries) != 0 {
		t.Errorf("expected empty history, got %+v", listing.Entries)
	}
}

func TestLogStoreMalformedLines(t *testing.T) {
	s := newLogStore(t)
	writeLog(t, s,
		"2026-10-19 10:00:00,000 **CACHE MISS!** Making a request to the WeatherAPI for ***pune***.",
		"garbage",
		"",
		"2026-10-19 10:05:00,000 **CACHE HIT!** User requested for ***pune***.",
	)

	listing, err := s.Entries(domain.HistoryQuery{})
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(listing.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(listing.Entries))
	}
	if listing.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", listing.Skipped)
	}

	_, err = s.Entries(domain.HistoryQuery{Strict: true})
	var malformed *domain.MalformedLineError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedLineError in strict mode, got %v", err)
	}
	if malformed.Line != 2 {
		t.Errorf("Line = %d, want 2", malformed.Line)
	}
}
