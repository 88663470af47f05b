package history

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/weathercli/internal/domain"
	"github.com/doeshing/weathercli/internal/ports"
)

const (
	citySentinel = "***"
	hitMarker    = "**CACHE HIT!**"
	missMarker   = "**CACHE MISS!**"

	// lineTimestampLayout adds milliseconds after the fixed-width prefix.
	lineTimestampLayout = domain.LogTimestampLayout + ",000"
)

// LogStore appends lookup events to a plain-text log, one line per event:
//
//	2026-10-19 14:30:00,123 **CACHE HIT!** User requested for ***pune***.
//	2026-10-19 14:31:02,456 **CACHE MISS!** Making a request to the WeatherAPI for ***paris***.
type LogStore struct {
	path   string
	logger ports.Logger
	mu     sync.Mutex
}

// NewLogStore creates a store backed by path (usually ~/.weathercli/weather.log).
func NewLogStore(path string, logger ports.Logger) *LogStore {
	return &LogStore{path: path, logger: logger}
}

// Append implements ports.HistoryRepository.
func (s *LogStore) Append(event domain.LookupEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.FilePermissions)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = file.WriteString(FormatLine(event) + "\n")
	return err
}

// Entries reads the log and returns entries most-recent-first.
func (s *LogStore) Entries(query domain.HistoryQuery) (domain.HistoryListing, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.HistoryListing{}, nil
		}
		return domain.HistoryListing{}, err
	}
	defer file.Close()

	var (
		entries []domain.HistoryEntry
		skipped int
		lineNo  int
	)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := ParseLine(lineNo, line)
		if err != nil {
			if query.Strict {
				return domain.HistoryListing{}, err
			}
			skipped++
			s.logger.Warn("skipping malformed history line", map[string]interface{}{
				"line":  lineNo,
				"error": err.Error(),
			})
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return domain.HistoryListing{}, fmt.Errorf("read %s: %w", s.path, err)
	}

	return domain.HistoryListing{Entries: newestFirst(entries, query.Limit), Skipped: skipped}, nil
}

// Path returns the backing file path.
func (s *LogStore) Path() string {
	return s.path
}

// FormatLine renders one event in the log line format.
func FormatLine(event domain.LookupEvent) string {
	ts := event.Timestamp.Format(lineTimestampLayout)
	city := sanitizeCity(event.City)
	if event.Outcome == domain.LookupHit {
		return fmt.Sprintf("%s %s User requested for %s%s%s.", ts, hitMarker, citySentinel, city, citySentinel)
	}
	return fmt.Sprintf("%s %s Making a request to the WeatherAPI for %s%s%s.", ts, missMarker, citySentinel, city, citySentinel)
}

// ParseLine reconstructs an entry from a log line. The line must start with a
// "YYYY-MM-DD HH:MM:SS" timestamp and carry the city between the first pair
// of "***" sentinels.
func ParseLine(lineNo int, line string) (domain.HistoryEntry, error) {
	prefixLen := len(domain.LogTimestampLayout)
	if len(line) < prefixLen {
		return domain.HistoryEntry{}, &domain.MalformedLineError{Line: lineNo, Text: line, Reason: "line shorter than timestamp prefix"}
	}
	ts, err := time.ParseInLocation(domain.LogTimestampLayout, line[:prefixLen], time.Local)
	if err != nil {
		return domain.HistoryEntry{}, &domain.MalformedLineError{Line: lineNo, Text: line, Reason: "invalid timestamp"}
	}

	segments := strings.Split(line, citySentinel)
	if len(segments) < 3 {
		return domain.HistoryEntry{}, &domain.MalformedLineError{Line: lineNo, Text: line, Reason: "city sentinel not found"}
	}

	outcome := domain.LookupUnknown
	switch {
	case strings.Contains(line, hitMarker):
		outcome = domain.LookupHit
	case strings.Contains(line, missMarker):
		outcome = domain.LookupMiss
	}

	return domain.HistoryEntry{Timestamp: ts, City: segments[1], Outcome: outcome}, nil
}

// sanitizeCity keeps the city from breaking the line or its sentinels.
func sanitizeCity(city string) string {
	city = strings.NewReplacer("\r", " ", "\n", " ", "*", "").Replace(city)
	return strings.TrimSpace(city)
}

// newestFirst reverses append order and applies limit (0 = all).
func newestFirst(entries []domain.HistoryEntry, limit int) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

var _ ports.HistoryRepository = (*LogStore)(nil)
