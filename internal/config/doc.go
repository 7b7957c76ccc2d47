// Package config loads runtime configuration for the journal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST endpoint
//	-d string   device name stamped on sync payloads
//	-f string   SQLite database file name
//	-s string   path to a JSON sensor dump
//	-l int      lookback window (hours)
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "168h" or integer nanoseconds:
//
//	{
//	  "backend_addr": "http://127.0.0.1:8000",
//	  "device_name": "iphone",
//	  "database_file": "journal.db",
//	  "sensor_dump_path": "dump.json",
//	  "lookback_window": "168h",
//	  "request_timeout": "30s",
//	  "online_check_interval": "15s"
//	}
//
// Primary API
//
//   - type Config                     — runtime settings for the CLI
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
