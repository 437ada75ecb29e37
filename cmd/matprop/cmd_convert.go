package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvandessel/matprop/converters/matml"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <material> <converter>",
		Short: "Render a material with one of its converters",
		Long: `Render a material with a registered converter at the given operating
conditions. Card-producing converters (serpent, mcnp, fispact) write text;
openmc and matml write structured output.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, convName := args[0], args[1]
			output, _ := cmd.Flags().GetString("output")

			def, err := resolveDefinition(cmd.Context(), cmd, name)
			if err != nil {
				return err
			}
			oc, err := conditionsFromFlags(cmd)
			if err != nil {
				return err
			}

			out, err := def.Instantiate().Convert(convName, oc)
			if err != nil {
				return err
			}

			var rendered []byte
			switch v := out.(type) {
			case string:
				rendered = []byte(v)
			case *matml.Doc:
				rendered, err = v.Encode()
				if err != nil {
					return err
				}
			default:
				rendered, err = json.MarshalIndent(v, "", "  ")
				if err != nil {
					return err
				}
				rendered = append(rendered, '\n')
			}

			if output != "" {
				return os.WriteFile(output, rendered, 0o644)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(rendered))
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write output to file instead of stdout")
	addConditionFlags(cmd)
	return cmd
}
