package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"backend_addr":     "http://backend:9000",
		"device_name":      "watch",
		"database_file":    "other.db",
		"sensor_dump_path": "dump.json",
		"lookback_window":  "24h",
		"request_timeout":  "10s",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "http://backend:9000", cfg.BackendAddr)
		assert.Equal(t, "watch", cfg.DeviceName)
		assert.Equal(t, "other.db", cfg.DatabaseFile)
		assert.Equal(t, "dump.json", cfg.SensorDumpPath)
		assert.Equal(t, 24*time.Hour, cfg.LookbackWindow)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	})

	t.Run("partial JSON keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"backend_addr": "http://partial:7000",
		})
		os.Args = []string{"testbin", "-config", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "http://partial:7000", cfg.BackendAddr)
		// остальные поля остались дефолтными
		assert.Equal(t, "iphone", cfg.DeviceName)
		assert.Equal(t, 168*time.Hour, cfg.LookbackWindow)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			BackendAddr:    "defaults:1234",
			LookbackWindow: 42 * time.Hour,
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.BackendAddr)
		assert.Equal(t, 42*time.Hour, cfg.LookbackWindow)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
