package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eonvm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /var/lib/eonvm\nkey_cache_size: 3\nlog_level: debug\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "/var/lib/eonvm", cfg.DataDir)
	require.Equal(t, 3, cfg.KeyCacheSize)
	require.Equal(t, DefaultConfig().SRSSize, cfg.SRSSize)
	require.NoError(t, cfg.SetupLogger())
	require.Equal(t, filepath.Join("/var/lib/eonvm", "srs"), cfg.SRS().Dir)

	cfg, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)

	require.NoError(t, os.WriteFile(path, []byte("log_level: [\n"), 0o644))
	_, err = LoadConfig(path)
	require.Error(t, err)

	cfg.LogLevel = "loud"
	require.Error(t, cfg.SetupLogger())
}
