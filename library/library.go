// Package library ships ready-made material definitions for common
// fusion-relevant structural materials, breeders and fluids. Definitions
// are built once on first access and shared; instantiate one to get a
// material with its own converter registry.
package library

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nvandessel/matprop/material"
	"github.com/nvandessel/matprop/nucleides"
	"github.com/nvandessel/matprop/properties"
)

var (
	mu       sync.Mutex
	built    = map[string]*material.Definition{}
	builders = map[string]func() *material.Definition{
		"SS316L":          ss316L,
		"SS316LN":         ss316LN,
		"PlanseeTungsten": planseeTungsten,
		"Li4SiO4":         li4SiO4,
		"Li2SiO3":         li2SiO3,
		"Li2TiO3":         li2TiO3,
		"Li2ZrO3":         li2ZrO3,
		"PbLi_eutectic":   pbLiEutectic,
		"DTPlasma":        dtPlasma,
		"DDPlasma":        ddPlasma,
		"Water":           water,
		"Helium":          helium,
		"Void":            void,
	}
)

// Get returns the named built-in definition.
func Get(name string) (*material.Definition, error) {
	mu.Lock()
	defer mu.Unlock()
	if d, ok := built[name]; ok {
		return d, nil
	}
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("library: no material named %q", name)
	}
	d := b()
	built[name] = d
	return d, nil
}

// Names lists the built-in material names, sorted.
func Names() []string {
	out := make([]string, 0, len(builders))
	for name := range builders {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// mustDef and mustGroup back the static definitions, which are known to
// be well formed.
func mustDef(name, formula string, g *properties.Group, convs ...material.Converter) *material.Definition {
	d, err := material.New(name, formula, g, convs...)
	if err != nil {
		panic(err)
	}
	return d
}

func mustDefComp(name string, comp nucleides.Composition, g *properties.Group, convs ...material.Converter) *material.Definition {
	d, err := material.NewFromComposition(name, comp, g, convs...)
	if err != nil {
		panic(err)
	}
	return d
}

func mustGroup(props ...properties.Property) *properties.Group {
	g, err := properties.NewGroup(props...)
	if err != nil {
		panic(err)
	}
	return g
}

func mustComp(fractions map[string]float64, ftype nucleides.FractionType) nucleides.Composition {
	c, err := nucleides.FromMap(fractions, ftype)
	if err != nil {
		panic(err)
	}
	return c
}
