package weatherapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/doeshing/weathercli/internal/domain"
)

// requestLog persists the most recent API request times as JSON.
type requestLog struct {
	path string
	mu   sync.Mutex
}

type requestLogFile struct {
	Requests []time.Time `json:"requests"`
}

func newRequestLog(path string) *requestLog {
	return &requestLog{path: path}
}

// load returns stored request times, oldest first. A missing file is empty.
func (l *requestLog) load() ([]time.Time, error) {
	if l.path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var doc requestLogFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", l.path, err)
	}
	sort.Slice(doc.Requests, func(i, j int) bool { return doc.Requests[i].Before(doc.Requests[j]) })
	return doc.Requests, nil
}

// append records at and keeps only the newest keep entries.
func (l *requestLog) append(at time.Time, keep int) error {
	if l.path == "" {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	times, err := l.load()
	if err != nil {
		times = nil
	}
	times = append(times, at)
	if len(times) > keep {
		times = times[len(times)-keep:]
	}

	if err := os.MkdirAll(filepath.Dir(l.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := json.Marshal(requestLogFile{Requests: times})
	if err != nil {
		return err
	}
	tmpFile := l.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, domain.FilePermissions); err != nil {
		return err
	}
	return os.Rename(tmpFile, l.path)
}
