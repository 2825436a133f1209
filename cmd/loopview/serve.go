package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/psidex/loopview/internal/bus"
	"github.com/psidex/loopview/internal/layout"
	"github.com/psidex/loopview/internal/theme"
	"github.com/psidex/loopview/internal/webserver"
)

func serveCmd() *cobra.Command {
	var (
		address   string
		staticDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve diagrams to the browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			cfg := e.cfg
			if address != "" {
				cfg.Server.Address = address
			}
			if staticDir != "" {
				cfg.Server.StaticDir = staticDir
			}

			b := bus.New()
			flag := theme.NewFlag(e.kv, e.logger)
			detach := flag.Attach(b)
			defer detach()

			srv := webserver.New(webserver.Options{
				Address:           cfg.Server.Address,
				StaticDir:         cfg.Server.StaticDir,
				AllowedOrigins:    cfg.Server.AllowedOrigins,
				WriteTimeout:      cfg.Server.WriteTimeout.Duration,
				HeartbeatInterval: cfg.Server.HeartbeatInterval.Duration,
				ShutdownTimeout:   cfg.Server.ShutdownTimeout.Duration,
				Bus:               b,
				Theme:             flag,
				Layout:            layout.NewStore(e.kv, e.logger),
				View:              cfg.ControllerOptions(),
				Logger:            e.logger,
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			brand.Printf("loopview")
			subtle.Printf(" serving on http://%s (theme %s)\n", cfg.Server.Address, flag.Mode())
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&address, "addr", "", "Address to listen on")
	cmd.Flags().StringVar(&staticDir, "static", "", "Directory of static files to serve")
	return cmd
}
