package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/psidex/loopview/internal/layout"
)

func layoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect or forget the saved node positions",
	}
	cmd.AddCommand(layoutShowCmd(), layoutClearCmd())
	return cmd
}

func layoutShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved node positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			positions, ok := layout.NewStore(e.kv, e.logger).Load()
			if !ok {
				subtle.Println("no saved layout")
				return nil
			}

			ids := make([]string, 0, len(positions))
			for id := range positions {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			brand.Printf("%d saved positions\n", len(ids))
			for _, id := range ids {
				p := positions[id]
				fmt.Printf("  %-24s %10.1f %10.1f\n", id, p.X, p.Y)
			}
			return nil
		},
	}
}

func layoutClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the saved node positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			layout.NewStore(e.kv, e.logger).Clear()
			good.Println("layout cleared")
			return nil
		},
	}
}
