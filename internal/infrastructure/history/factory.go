package history

import (
	"github.com/doeshing/weathercli/internal/domain"
	"github.com/doeshing/weathercli/internal/ports"
)

// New builds the configured history backend. When the sqlite database cannot
// be opened it falls back to the plain-text log so lookups are still recorded.
func New(cfg domain.Config, logger ports.Logger) ports.HistoryRepository {
	if cfg.History.Backend == domain.HistoryBackendSQLite {
		store, err := NewSQLiteStore(cfg.History.Database, logger)
		if err == nil {
			return store
		}
		logger.Warn("sqlite history unavailable, falling back to log file", map[string]interface{}{
			"database": cfg.History.Database,
			"error":    err.Error(),
		})
	}
	return NewLogStore(cfg.Storage.LogFile, logger)
}
