package config

import "time"

// Config holds runtime settings for the Noteflow client.
//
// Fields:
//   - ServerURL: base URL of the sync backend, e.g. http://localhost:8080.
//   - DatabasePath: sqlite DSN for the local record store.
//   - RequestTimeout: per-request HTTP timeout against the backend.
//   - SyncOnStart: whether to trigger a sync pass right after login.
type Config struct {
	ServerURL      string
	DatabasePath   string
	RequestTimeout time.Duration
	SyncOnStart    bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.DatabasePath = "noteflow.db"
	c.RequestTimeout = 10 * time.Second
	c.SyncOnStart = true
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
