package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvandessel/matprop/internal/catalog"
	"github.com/nvandessel/matprop/library"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and catalog materials",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			var stored []string
			dir := catalogDir(cmd)
			if _, err := os.Stat(dir); err == nil {
				store, err := catalog.Open(dir)
				if err != nil {
					return err
				}
				defer store.Close()
				stored, err = store.List(cmd.Context())
				if err != nil {
					return err
				}
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string][]string{
					"library": library.Names(),
					"catalog": stored,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Library materials:")
			for _, name := range library.Names() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
			if len(stored) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Catalog materials:")
				for _, name := range stored {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
				}
			}
			return nil
		},
	}
}
