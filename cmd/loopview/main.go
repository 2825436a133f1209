package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/psidex/loopview/internal/config"
	"github.com/psidex/loopview/internal/kvstore"
	"github.com/psidex/loopview/internal/lib"
)

var version = "0.1.0"

var (
	bad    = color.New(color.FgRed)
	good   = color.New(color.FgGreen)
	subtle = color.New(color.FgHiBlack)
	brand  = color.New(color.FgHiCyan, color.Bold)
)

var (
	configPath string
	logLevel   string
	storePath  string
)

var rootCmd = &cobra.Command{
	Use:           "loopview",
	Short:         "Interactive causal loop diagrams",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Store file, or "+config.MemoryStore+" for a throwaway store")

	rootCmd.AddCommand(
		serveCmd(),
		renderCmd(),
		layoutCmd(),
		themeCmd(),
		mcpCmd(),
		storeCmd(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		bad.Fprintf(os.Stderr, "loopview: %v\n", err)
		os.Exit(1)
	}
}

// env is what every command shares: config, logger and the local store.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	kv     kvstore.Store
	close  func() error
}

// loadEnv reads the config, applies the persistent flags over it and opens the
// store it names.
func loadEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}

	level, err := lib.ParseSLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("bad log level %q: %w", cfg.Log.Level, err)
	}
	logger := lib.NiceLogger(os.Stderr, level)

	e := &env{cfg: cfg, logger: logger}
	if cfg.Store.Path == config.MemoryStore {
		m := kvstore.NewMemory()
		e.kv, e.close = m, m.Close
		return e, nil
	}

	db, err := kvstore.OpenSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened store", "path", cfg.Store.Path)
	e.kv, e.close = db, db.Close
	return e, nil
}

func (e *env) Close() {
	if err := e.close(); err != nil {
		e.logger.Warn("failed to close store", "err", err)
	}
}
