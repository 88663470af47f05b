package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is used for the cache slot and history log
	FilePermissions = 0o644
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Weather API constants
const (
	// DefaultAPIBaseURL is the WeatherAPI.com v1 root
	DefaultAPIBaseURL = "http://api.weatherapi.com/v1"
	// DefaultAPIKeyEnv names the environment variable holding the API key
	DefaultAPIKeyEnv = "API_KEY"
	// ForecastDays is the fixed forecast window, current day included
	ForecastDays = 6
	// DefaultHTTPClientTimeout is the timeout for HTTP client requests
	DefaultHTTPClientTimeout = 30 * time.Second
	// MaxRedirects mirrors net/http's default redirect budget
	MaxRedirects = 10
	// DefaultRateLimitRPS follows the WeatherAPI free tier
	DefaultRateLimitRPS = 0.4
	// DefaultRateLimitBurst is the limiter bucket size
	DefaultRateLimitBurst = 3
)

// Storage constants
const (
	DefaultStorageDirName = ".weathercli"
	DefaultCacheFile      = "data.json"
	DefaultLogFile        = "weather.log"
	DefaultHistoryDB      = "history.db"
	DefaultConfigFile     = "config.yaml"
	// DefaultRateLimitFile keeps recent API request times between runs
	DefaultRateLimitFile  = "ratelimit.json"
)

// History backends
const (
	HistoryBackendLog    = "log"
	HistoryBackendSQLite = "sqlite"
)

// Time formats
const (
	// APIDateLayout is the forecast day date format used by the API
	APIDateLayout = "2006-01-02"
	// LongDateLayout is the human-readable date used in tables
	LongDateLayout = "02 January 2006"
	// LongTimestampLayout is used for history listings
	LongTimestampLayout = "02 January 2006, 15:04:05"
	// LogTimestampLayout is the fixed-width prefix of every history log line
	LogTimestampLayout = "2006-01-02 15:04:05"
)
