package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func storeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "store",
		Short: "List what is saved in the local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			keys, err := e.kv.Keys()
			if err != nil {
				return err
			}
			brand.Println(e.cfg.Store.Path)
			if len(keys) == 0 {
				subtle.Println("  empty")
				return nil
			}
			for _, key := range keys {
				value, _, err := e.kv.Get(key)
				if err != nil {
					return err
				}
				fmt.Printf("  %-28s %s\n", key, subtle.Sprintf("%d bytes", len(value)))
			}
			return nil
		},
	}
}
