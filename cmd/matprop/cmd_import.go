package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/matprop/converters/matml"
	"github.com/nvandessel/matprop/internal/catalog"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.xml>",
		Short: "Import a material from a MatML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			save, _ := cmd.Flags().GetBool("save")

			def, err := matml.ImportFrom(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%d properties)\n",
				def.Name(), def.Properties().Len())

			if save {
				store, err := catalog.Open(catalogDir(cmd))
				if err != nil {
					return err
				}
				defer store.Close()
				if err := store.Put(cmd.Context(), def); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to catalog\n", def.Name())
			}
			return nil
		},
	}
	cmd.Flags().Bool("save", false, "Save the imported material to the catalog")
	return cmd
}
