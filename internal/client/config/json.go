package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Anandrajbgp/Noteflow/internal/flagx"
	"github.com/Anandrajbgp/Noteflow/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// can be given as strings like "10s" or as integer nanoseconds.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	DatabasePath   string         `json:"database_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	SyncOnStart    *bool          `json:"sync_on_start"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flag. Absent file path means no JSON is loaded. Empty fields in
// the file leave the existing value untouched.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.SyncOnStart != nil {
		cfg.SyncOnStart = *jc.SyncOnStart
	}
}
