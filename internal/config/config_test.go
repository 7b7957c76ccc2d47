package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.BackendAddr)
	assert.Equal(t, "iphone", c.DeviceName)
	assert.Equal(t, "glucose-curve", c.StateDir)
	assert.Equal(t, "journal.db", c.DatabaseFile)
	assert.Empty(t, c.SensorDumpPath)
	assert.Equal(t, 168*time.Hour, c.LookbackWindow)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, 15*time.Second, c.OnlineCheckInterval)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8000", cfg.BackendAddr)
	assert.Equal(t, 168*time.Hour, cfg.LookbackWindow)
}
