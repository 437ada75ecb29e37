package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nvandessel/matprop/conditions"
	"github.com/nvandessel/matprop/internal/catalog"
	"github.com/nvandessel/matprop/library"
	"github.com/nvandessel/matprop/material"
)

const catalogDirName = ".matprop"

func catalogDir(cmd *cobra.Command) string {
	root, _ := cmd.Flags().GetString("root")
	return filepath.Join(root, catalogDirName)
}

// resolveDefinition finds a material by name, preferring the local catalog
// over the built-in library.
func resolveDefinition(ctx context.Context, cmd *cobra.Command, name string) (*material.Definition, error) {
	dir := catalogDir(cmd)
	if _, err := os.Stat(dir); err == nil {
		store, err := catalog.Open(dir)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		def, err := store.Get(ctx, name)
		if err == nil {
			return def, nil
		}
		if !errors.Is(err, catalog.ErrNotFound) {
			return nil, err
		}
	}
	return library.Get(name)
}

var conditionFlagFields = []struct {
	flag  string
	field conditions.Field
}{
	{"temperature", conditions.Temperature},
	{"pressure", conditions.Pressure},
	{"magnetic-field", conditions.MagneticField},
	{"strain", conditions.Strain},
	{"neutron-damage", conditions.NeutronDamage},
	{"neutron-fluence", conditions.NeutronFluence},
}

// addConditionFlags registers the operating-condition flags on a command.
func addConditionFlags(cmd *cobra.Command) {
	for _, cf := range conditionFlagFields {
		cmd.Flags().Float64(cf.flag, 0, "Operating "+string(cf.field)+" in "+unitOrDimensionless(cf.field))
	}
}

func unitOrDimensionless(f conditions.Field) string {
	if u := f.Unit(); u != "" {
		return u
	}
	return "dimensionless units"
}

// conditionsFromFlags builds operating conditions from the flags the user
// actually set.
func conditionsFromFlags(cmd *cobra.Command) (conditions.Operational, error) {
	var opts []conditions.Option
	for _, cf := range conditionFlagFields {
		if cmd.Flags().Changed(cf.flag) {
			v, _ := cmd.Flags().GetFloat64(cf.flag)
			opts = append(opts, conditions.With(cf.field, v))
		}
	}
	return conditions.New(opts...)
}
