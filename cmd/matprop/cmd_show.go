package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <material>",
		Short: "Show a material's composition, properties and converters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			def, err := resolveDefinition(cmd.Context(), cmd, args[0])
			if err != nil {
				return err
			}
			oc, err := conditionsFromFlags(cmd)
			if err != nil {
				return err
			}
			evaluate := len(oc.Set()) > 0

			type propInfo struct {
				Kind  string   `json:"kind"`
				Unit  string   `json:"unit,omitempty"`
				Value *float64 `json:"value,omitempty"`
			}
			props := make(map[string]propInfo)
			for _, name := range def.Properties().Names() {
				p, err := def.Properties().Get(name)
				if err != nil {
					return err
				}
				info := propInfo{Kind: string(p.Kind()), Unit: p.Unit()}
				if evaluate {
					if v, err := def.Properties().Evaluate(name, oc); err == nil {
						info.Value = &v
					}
				}
				props[name] = info
			}

			mat := def.Instantiate()
			if jsonOut {
				out := map[string]any{
					"name":       def.Name(),
					"converters": mat.ConverterNames(),
					"properties": props,
				}
				if def.Elements().Len() > 0 {
					out["formula"] = def.Elements().Formula()
					elements := make(map[string]float64)
					for _, e := range def.Elements().Entries() {
						elements[e.Nuclide.Name()] = e.Fraction
					}
					out["elements"] = elements
					out["fraction_type"] = string(def.Elements().FractionType())
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", def.Name())
			if def.Elements().Len() > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "  composition: %s (%s fractions)\n",
					def.Elements().Formula(), def.Elements().FractionType())
			}
			names := make([]string, 0, len(props))
			for name := range props {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				info := props[name]
				if info.Value != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s: %g %s (%s)\n", name, *info.Value, info.Unit, info.Kind)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s [%s]\n", name, info.Kind, info.Unit)
				}
			}
			if convs := mat.ConverterNames(); len(convs) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "  converters: %v\n", convs)
			}
			return nil
		},
	}
	addConditionFlags(cmd)
	return cmd
}
