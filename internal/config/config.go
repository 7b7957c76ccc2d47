package config

import "time"

// Config holds runtime settings for the journal CLI.
//
// Fields:
//   - BackendAddr: base URL of the backend REST endpoint.
//   - DeviceName: device label stamped on every sync payload.
//   - StateDir: directory (under the working dir) holding local state.
//   - DatabaseFile: SQLite file name; relative names land in StateDir.
//   - SensorDumpPath: JSON sensor snapshot to serve delta queries from.
//     Empty means no sensor data is available on this host.
//   - LookbackWindow: how far back the first-ever sync window reaches.
//   - RequestTimeout: per-request timeout for backend calls.
//   - OnlineCheckInterval: how often the client probes backend reachability.
type Config struct {
	BackendAddr         string
	DeviceName          string
	StateDir            string
	DatabaseFile        string
	SensorDumpPath      string
	LookbackWindow      time.Duration
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendAddr = "http://127.0.0.1:8000"
	c.DeviceName = "iphone"
	c.StateDir = "glucose-curve"
	c.DatabaseFile = "journal.db"
	c.SensorDumpPath = ""
	c.LookbackWindow = 168 * time.Hour
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
