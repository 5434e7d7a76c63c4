package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	Driver        string        `yaml:"driver" validate:"required|in:file,sqlite"`
	Dir           string        `yaml:"dir" validate:"unixPath"`
	DSN           string        `yaml:"dsn"`
	Compress      bool          `yaml:"compress"`
	RetryInterval time.Duration `yaml:"retryInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type ExtractionConfig struct {
	Mode     string        `yaml:"mode" validate:"required|in:gemini,relay"`
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"baseURL"`
	APIKey   string        `yaml:"apiKey"`
	RelayURL string        `yaml:"relayURL"`
	Timeout  time.Duration `yaml:"timeout"`
	// RateLimit caps upstream calls per second; 0 disables the limiter.
	RateLimit float64 `yaml:"rateLimit" validate:"min:0"`
	Burst     int     `yaml:"burst"`
}

type JournalConfig struct {
	Locale            string `yaml:"locale" validate:"required|in:de,en"`
	DiscardSuperseded bool   `yaml:"discardSuperseded"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server           `yaml:"webServer"`
	Persistence Persistence      `yaml:"persistence"`
	Logger      LoggerConfig     `yaml:"logger"`
	Extraction  ExtractionConfig `yaml:"extraction"`
	Journal     JournalConfig    `yaml:"journal"`
	Cache       CacheConfig      `yaml:"cache"`
	Metrics     MetricsConfig    `yaml:"metrics"`
}
