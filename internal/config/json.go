package config

import (
	"encoding/json"
	"os"

	"github.com/surya-health-tech/Glucose-Curve/internal/flagx"
	"github.com/surya-health-tech/Glucose-Curve/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "168h"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	BackendAddr         string         `json:"backend_addr"`
	DeviceName          string         `json:"device_name"`
	StateDir            string         `json:"state_dir"`
	DatabaseFile        string         `json:"database_file"`
	SensorDumpPath      string         `json:"sensor_dump_path"`
	LookbackWindow      timex.Duration `json:"lookback_window"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags via flagx.JsonConfigFlags; when no
// flag is given the function returns without touching cfg.
//
// Fields absent from the JSON keep their current values, so a partial file
// overrides only what it names. Read or unmarshal errors panic (the caller
// should recover if desired).
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

	if jc.BackendAddr != "" {
		cfg.BackendAddr = jc.BackendAddr
	}
	if jc.DeviceName != "" {
		cfg.DeviceName = jc.DeviceName
	}
	if jc.StateDir != "" {
		cfg.StateDir = jc.StateDir
	}
	if jc.DatabaseFile != "" {
		cfg.DatabaseFile = jc.DatabaseFile
	}
	if jc.SensorDumpPath != "" {
		cfg.SensorDumpPath = jc.SensorDumpPath
	}
	if jc.LookbackWindow.Duration != 0 {
		cfg.LookbackWindow = jc.LookbackWindow.Duration
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
}
