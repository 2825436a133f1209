package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.HeartbeatInterval.Duration)
	assert.Equal(t, 0.1, cfg.View.DimmedOpacity)
	assert.Equal(t, 50.0, cfg.View.Padding)
	assert.NoError(t, cfg.Validate())
}

func TestDirsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")

	assert.Equal(t, filepath.Join("/cfg", "loopview"), ConfigDir())
	assert.Equal(t, filepath.Join("/cfg", "loopview", "config.toml"), DefaultPath())
	assert.Equal(t, filepath.Join("/data", "loopview", "loopview.db"), Default().Store.Path)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
address = "0.0.0.0:9000"
allowed_origins = ["https://example.com"]
heartbeat_interval = "5s"

[layout]
iterations = 42
seed = 7

[view]
dimmed_opacity = 0.0

[log]
level = "debug"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Address)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.Server.HeartbeatInterval.Duration)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout.Duration)
	assert.Equal(t, 42, cfg.Layout.Iterations)
	assert.Equal(t, int64(7), cfg.Layout.Seed)
	assert.Equal(t, 200.0, cfg.Layout.IdealEdgeLength)
	assert.Equal(t, 0.0, cfg.View.DimmedOpacity)
	assert.Equal(t, "debug", cfg.Log.Level)

	opts := cfg.ControllerOptions()
	assert.Equal(t, 42, opts.Force.Iterations)
	require.NotNil(t, opts.DimmedOpacity)
	assert.Equal(t, 0.0, *opts.DimmedOpacity)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":   "[server\naddress=",
		"opacity":  "[view]\ndimmed_opacity = 2.0",
		"level":    "[log]\nlevel = \"loud\"",
		"duration": "[server]\nwrite_timeout = \"soon\"",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Server.Address = "localhost:1"
	cfg.Layout.Gravity = 0.5

	require.NoError(t, Save(cfg, path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
