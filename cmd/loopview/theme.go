package main

import (
	"github.com/spf13/cobra"

	"github.com/psidex/loopview/internal/theme"
)

func themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the saved theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			brand.Println(theme.NewFlag(e.kv, e.logger).Mode())
			return nil
		},
	}
	cmd.AddCommand(themeSetCmd(), themeToggleCmd())
	return cmd
}

func themeSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set <light|high_contrast>",
		Short:     "Save a theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{theme.Normal.String(), theme.HighContrast.String()},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := theme.ParseMode(args[0])
			if err != nil {
				return err
			}
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			theme.NewFlag(e.kv, e.logger).Set(mode)
			good.Printf("theme set to %s\n", mode)
			return nil
		},
	}
}

func themeToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Switch between the light and high contrast themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			mode := theme.NewFlag(e.kv, e.logger).Toggle()
			good.Printf("theme set to %s\n", mode)
			return nil
		},
	}
}
