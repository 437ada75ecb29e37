package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nvandessel/matprop/converters/matml"
	"github.com/nvandessel/matprop/matyaml"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <material> <file>",
		Short: "Export a material to MatML XML or YAML",
		Long: `Export a material definition to a file. The format follows the file
extension: .xml writes a MatML document of property values at the given
conditions, .yaml or .yml writes the full definition.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]

			def, err := resolveDefinition(cmd.Context(), cmd, name)
			if err != nil {
				return err
			}

			switch ext := strings.ToLower(filepath.Ext(path)); ext {
			case ".xml":
				oc, err := conditionsFromFlags(cmd)
				if err != nil {
					return err
				}
				out, err := matml.Converter{}.Convert(def.Instantiate(), oc)
				if err != nil {
					return err
				}
				if err := out.(*matml.Doc).Export(path); err != nil {
					return err
				}
			case ".yaml", ".yml":
				if err := matyaml.Save(def, path); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported export format %q (use .xml, .yaml or .yml)", ext)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", def.Name(), path)
			return nil
		},
	}
	addConditionFlags(cmd)
	return cmd
}
