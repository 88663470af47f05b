package domain

// Config mirrors ~/.weathercli/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	API                 APISettings     `yaml:"api"`
	Storage             StorageSettings `yaml:"storage"`
	History             HistorySettings `yaml:"history"`
	Display             DisplaySettings `yaml:"display"`
}

// APISettings configures the WeatherAPI client.
type APISettings struct {
	BaseURL   string            `yaml:"base_url"`
	Key       string            `yaml:"key,omitempty"`
	KeyEnv    string            `yaml:"key_env"`
	Timeout   string            `yaml:"timeout"`
	RateLimit RateLimitSettings `yaml:"rate_limit"`
}

// RateLimitSettings bounds outgoing API calls. RequestsPerSecond <= 0 disables limiting.
type RateLimitSettings struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// StorageSettings locates the cache slot and history files.
type StorageSettings struct {
	Dir       string `yaml:"dir"`
	CacheFile string `yaml:"cache_file"`
	LogFile   string `yaml:"log_file"`
}

// HistorySettings selects the history backend.
type HistorySettings struct {
	Backend  string `yaml:"backend"`
	Database string `yaml:"database"`
	Strict   bool   `yaml:"strict"`
}

// DisplaySettings toggles optional output.
type DisplaySettings struct {
	Chart bool `yaml:"chart"`
}
