package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/doeshing/weathercli/internal/domain"
	"github.com/doeshing/weathercli/internal/ports"
)

// SQLiteStore persists lookup events as structured rows.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger ports.Logger
	mu     sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path.
func NewSQLiteStore(path string, logger ports.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &SQLiteStore{db: db, path: path, logger: logger}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history database: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS lookups (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		city TEXT NOT NULL,
		outcome TEXT NOT NULL
	);`)
	return err
}

// Append inserts a new event.
func (s *SQLiteStore) Append(event domain.LookupEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO lookups (id, timestamp, city, outcome) VALUES (?, ?, ?, ?)`,
		uuid.NewString(),
		event.Timestamp.Format(time.RFC3339Nano),
		strings.TrimSpace(event.City),
		string(event.Outcome),
	)
	return err
}

// Entries returns events most-recent-first in insertion order.
func (s *SQLiteStore) Entries(query domain.HistoryQuery) (domain.HistoryListing, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT seq, timestamp, city, outcome FROM lookups ORDER BY seq DESC")
	var args []interface{}
	if query.Limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, query.Limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return domain.HistoryListing{}, err
	}
	defer rows.Close()

	var listing domain.HistoryListing
	for rows.Next() {
		var (
			seq     int
			ts      string
			entry   domain.HistoryEntry
			outcome string
		)
		if err := rows.Scan(&seq, &ts, &entry.City, &outcome); err != nil {
			return domain.HistoryListing{}, err
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			malformed := &domain.MalformedLineError{Line: seq, Text: ts, Reason: "invalid timestamp"}
			if query.Strict {
				return domain.HistoryListing{}, malformed
			}
			listing.Skipped++
			s.logger.Warn("skipping malformed history row", map[string]interface{}{"seq": seq})
			continue
		}
		entry.Timestamp = t.Local()
		entry.Outcome = parseOutcome(outcome)
		listing.Entries = append(listing.Entries, entry)
	}
	return listing, rows.Err()
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func parseOutcome(value string) domain.LookupOutcome {
	switch domain.LookupOutcome(value) {
	case domain.LookupHit:
		return domain.LookupHit
	case domain.LookupMiss:
		return domain.LookupMiss
	default:
		return domain.LookupUnknown
	}
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
