package config

import (
	"flag"
	"os"
	"time"

	"github.com/surya-health-tech/Glucose-Curve/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server (default from Config)
//	-d string   device name stamped on sync payloads
//	-f string   SQLite database file name
//	-s string   path to a JSON sensor dump
//	-l int      lookback window in hours
//	-t int      request timeout in seconds
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-f", "-s", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendAddr, "a", cfg.BackendAddr, "base URL of the backend server")
	fs.StringVar(&cfg.DeviceName, "d", cfg.DeviceName, "device name stamped on sync payloads")
	fs.StringVar(&cfg.DatabaseFile, "f", cfg.DatabaseFile, "SQLite database file name")
	fs.StringVar(&cfg.SensorDumpPath, "s", cfg.SensorDumpPath, "path to a JSON sensor dump")
	lookback := fs.Int("l", int(cfg.LookbackWindow.Hours()), "lookback window (in hours)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.LookbackWindow = time.Duration(*lookback) * time.Hour
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
