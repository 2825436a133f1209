package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/psidex/loopview/internal/bus"
	"github.com/psidex/loopview/internal/layout"
	"github.com/psidex/loopview/internal/mcptools"
	"github.com/psidex/loopview/internal/theme"
)

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the diagram tools over MCP on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			b := bus.New()
			flag := theme.NewFlag(e.kv, e.logger)
			detach := flag.Attach(b)
			defer detach()

			s := mcptools.NewServer(version, mcptools.Deps{
				Layout: layout.NewStore(e.kv, e.logger),
				Theme:  flag,
				Bus:    b,
				Force:  e.cfg.Layout,
			})
			e.logger.Info("serving mcp on stdio")
			return server.ServeStdio(s)
		},
	}
}
