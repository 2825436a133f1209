// Package config reads the loopview configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/psidex/loopview/internal/graphview"
	"github.com/psidex/loopview/internal/layout"
	"github.com/psidex/loopview/internal/lib"
)

// Config holds loopview configuration.
type Config struct {
	Server ServerConfig    `toml:"server"`
	Store  StoreConfig     `toml:"store"`
	Layout layout.Settings `toml:"layout"`
	View   ViewConfig      `toml:"view"`
	Log    LogConfig       `toml:"log"`
}

// ServerConfig controls the web server.
type ServerConfig struct {
	Address   string `toml:"address"`
	StaticDir string `toml:"static_dir"`
	// AllowedOrigins for websocket upgrades; empty allows any origin.
	AllowedOrigins    []string     `toml:"allowed_origins"`
	WriteTimeout      lib.Duration `toml:"write_timeout"`
	HeartbeatInterval lib.Duration `toml:"heartbeat_interval"`
	ShutdownTimeout   lib.Duration `toml:"shutdown_timeout"`
}

// StoreConfig controls where local state is kept.
type StoreConfig struct {
	// Path of the SQLite database. ":memory:" keeps everything in memory.
	Path string `toml:"path"`
}

// ViewConfig controls how graph views are fitted and dimmed.
type ViewConfig struct {
	Width         float64 `toml:"width"`
	Height        float64 `toml:"height"`
	Padding       float64 `toml:"padding"`
	DimmedOpacity float64 `toml:"dimmed_opacity"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// MemoryStore is the store path that selects the in-memory store.
const MemoryStore = ":memory:"

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:           "127.0.0.1:8080",
			StaticDir:         "public",
			WriteTimeout:      lib.DurationFrom(10 * time.Second),
			HeartbeatInterval: lib.DurationFrom(30 * time.Second),
			ShutdownTimeout:   lib.DurationFrom(5 * time.Second),
		},
		Store:  StoreConfig{Path: filepath.Join(DataDir(), "loopview.db")},
		Layout: layout.DefaultSettings(),
		View: ViewConfig{
			Width:         graphview.DefaultViewportWidth,
			Height:        graphview.DefaultViewportHeight,
			Padding:       graphview.DefaultPadding,
			DimmedOpacity: graphview.DefaultDimmedOpacity,
		},
		Log: LogConfig{Level: "info"},
	}
}

// ConfigDir returns the loopview config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "loopview")
}

// DataDir returns the loopview data directory path.
func DataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "loopview")
}

// DefaultPath is the config file read when no path is given.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path over the defaults. A missing file is not
// an error, a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return errors.New("server.address must be set")
	}
	if c.Store.Path == "" {
		return errors.New("store.path must be set")
	}
	if c.View.DimmedOpacity < 0 || c.View.DimmedOpacity > 1 {
		return fmt.Errorf("view.dimmed_opacity must be within [0, 1], got %v", c.View.DimmedOpacity)
	}
	if _, err := lib.ParseSLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Save writes the config to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// ControllerOptions are the graphview settings this config describes. The
// caller fills in the collaborators.
func (c *Config) ControllerOptions() graphview.Options {
	dimmed := c.View.DimmedOpacity
	return graphview.Options{
		Force:          c.Layout,
		ViewportWidth:  c.View.Width,
		ViewportHeight: c.View.Height,
		Padding:        c.View.Padding,
		DimmedOpacity:  &dimmed,
	}
}
