package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/matprop/internal/catalog"
	"github.com/nvandessel/matprop/matyaml"
)

func newDefineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "define <file.yaml>",
		Short: "Add a material definition to the catalog from YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := matyaml.Load(args[0])
			if err != nil {
				return err
			}
			store, err := catalog.Open(catalogDir(cmd))
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Put(cmd.Context(), def); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Defined %s\n", def.Name())
			return nil
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <material>",
		Short: "Remove a material from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := catalog.Open(catalogDir(cmd))
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}
