package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AndrewLester/timewarp/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, "pool.ntp.org", cfg.NTPServer)
	assert.Equal(t, "time.apple.com", cfg.DarwinNTPServer)
	assert.Equal(t, time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
	assert.True(t, cfg.SkewEnabled())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timewarp.yaml")
	data := []byte("ntp_server: ntp.example.org\nrefresh_interval: 30s\nreport_skew: false\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "ntp.example.org", cfg.NTPServer)
	assert.Equal(t, "time.apple.com", cfg.DarwinNTPServer)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.False(t, cfg.SkewEnabled())
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := config.Parse(nil)

	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := config.Parse([]byte("ntp_sever: typo.example.org\n"))

	assert.Error(t, err)
}

func TestParse_InvalidDuration(t *testing.T) {
	_, err := config.Parse([]byte("refresh_interval: soon\n"))

	assert.Error(t, err)
}

func TestParse_RejectsNonPositiveInterval(t *testing.T) {
	_, err := config.Parse([]byte("refresh_interval: 0s\n"))

	assert.ErrorContains(t, err, "refresh_interval")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Configuration error in")
}
