package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/doeshing/weathercli/internal/domain"
	"github.com/doeshing/weathercli/internal/ports"
)

// FileCache keeps the last successful forecast as a single JSON document.
type FileCache struct {
	path   string
	logger ports.Logger
	mu     sync.Mutex
}

// NewFileCache returns a cache backed by path (usually ~/.weathercli/data.json).
func NewFileCache(path string, logger ports.Logger) *FileCache {
	return &FileCache{path: path, logger: logger}
}

// GetIfFresh returns the cached record when it matches city, was fetched on
// now's calendar day and carries no error. Any storage problem is a miss.
func (c *FileCache) GetIfFresh(city string, now time.Time) (domain.ForecastRecord, bool) {
	record, ok, err := c.Peek()
	if err != nil {
		c.logger.Debug("cache slot unreadable, treating as miss", map[string]interface{}{
			"path":  c.path,
			"error": err.Error(),
		})
		return domain.ForecastRecord{}, false
	}
	if !ok || !record.FreshFor(city, now) {
		return domain.ForecastRecord{}, false
	}
	return record, true
}

// Peek reads the slot without applying freshness rules.
func (c *FileCache) Peek() (domain.ForecastRecord, bool, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ForecastRecord{}, false, nil
		}
		return domain.ForecastRecord{}, false, err
	}
	var record domain.ForecastRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return domain.ForecastRecord{}, false, fmt.Errorf("decode %s: %w", c.path, err)
	}
	return record, true, nil
}

// Put overwrites the slot. The document is written to a temp file first and
// renamed into place so a reader never sees a partial write.
func (c *FileCache) Put(record domain.ForecastRecord) error {
	if record.HasError() {
		return fmt.Errorf("refusing to cache error-bearing forecast for %q", record.Location.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := c.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, domain.FilePermissions); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpFile, c.path); err != nil {
		if removeErr := os.Remove(tmpFile); removeErr != nil {
			c.logger.Warn("failed to remove temp file", map[string]interface{}{"error": removeErr.Error()})
		}
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Path exposes the cache file path.
func (c *FileCache) Path() string {
	return c.path
}

var _ ports.ForecastCache = (*FileCache)(nil)
