package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/weathercli/assets"
	"github.com/doeshing/weathercli/internal/domain"
	"github.com/doeshing/weathercli/internal/pkg/filesystem"
	"github.com/doeshing/weathercli/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "WEATHERCLI_CONFIG"

// FileLoader loads YAML configuration from ~/.weathercli/config.yaml (overridable via WEATHERCLI_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. Storage paths in the returned config
// are absolute and the API key is resolved from the environment.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, err
		}
		data = assets.DefaultConfigYAML
		if err := os.WriteFile(path, data, domain.SecureFilePermissions); err != nil {
			return domain.Config{}, err
		}
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg = hydrateDefaults(cfg)
	loadDotEnv(cfg.Storage.Dir)
	cfg.API.Key = resolveAPIKey(cfg.API)
	return cfg, nil
}

// Path returns the config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), domain.DefaultStorageDirName, domain.DefaultConfigFile)
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = domain.DefaultAPIBaseURL
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.KeyEnv == "" {
		cfg.API.KeyEnv = domain.DefaultAPIKeyEnv
	}
	if cfg.API.Timeout == "" {
		cfg.API.Timeout = domain.DefaultHTTPClientTimeout.String()
	}
	if cfg.API.RateLimit.RequestsPerSecond > 0 && cfg.API.RateLimit.Burst == 0 {
		cfg.API.RateLimit.Burst = domain.DefaultRateLimitBurst
	}

	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = filepath.Join(filesystem.UserHomeDir(), domain.DefaultStorageDirName)
	}
	cfg.Storage.Dir = filesystem.ExpandPath(cfg.Storage.Dir)
	if cfg.Storage.CacheFile == "" {
		cfg.Storage.CacheFile = domain.DefaultCacheFile
	}
	if cfg.Storage.LogFile == "" {
		cfg.Storage.LogFile = domain.DefaultLogFile
	}
	cfg.Storage.CacheFile = filesystem.ResolveIn(cfg.Storage.Dir, cfg.Storage.CacheFile)
	cfg.Storage.LogFile = filesystem.ResolveIn(cfg.Storage.Dir, cfg.Storage.LogFile)

	if cfg.History.Backend == "" {
		cfg.History.Backend = domain.HistoryBackendLog
	}
	cfg.History.Backend = strings.ToLower(cfg.History.Backend)
	if cfg.History.Database == "" {
		cfg.History.Database = domain.DefaultHistoryDB
	}
	cfg.History.Database = filesystem.ResolveIn(cfg.Storage.Dir, cfg.History.Database)
	return cfg
}

// loadDotEnv reads .env from the working directory and the storage dir.
// Variables already present in the environment win.
func loadDotEnv(storageDir string) {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	paths = append(paths, filepath.Join(storageDir, ".env"))

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
		}
	}
}

func resolveAPIKey(api domain.APISettings) string {
	if value := strings.TrimSpace(os.Getenv(api.KeyEnv)); value != "" {
		return value
	}
	return strings.TrimSpace(api.Key)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
