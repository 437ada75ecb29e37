package material

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/nvandessel/matprop/conditions"
	"github.com/nvandessel/matprop/nucleides"
	"github.com/nvandessel/matprop/properties"
)

// Part is one constituent of a mixture with its fraction. How the
// fraction is interpreted depends on the fraction type passed to Mix.
type Part struct {
	Definition *Definition
	Fraction   float64
}

// MixOption adjusts how Mix assembles the homogenised definition.
type MixOption func(*mixConfig)

type mixConfig struct {
	convs     []Converter
	overrides []properties.Property
	volCond   conditions.Operational
}

// WithConverters sets the mixture's default converters instead of
// inheriting the first constituent's.
func WithConverters(convs ...Converter) MixOption {
	return func(c *mixConfig) { c.convs = convs }
}

// WithProperty overrides or adds a property on the mixture, replacing the
// fraction-weighted average that Mix would otherwise derive.
func WithProperty(p properties.Property) MixOption {
	return func(c *mixConfig) { c.overrides = append(c.overrides, p) }
}

// WithVolumeConditions sets the conditions used to evaluate constituent
// densities when mixing by volume fraction. Defaults to STP.
func WithVolumeConditions(oc conditions.Operational) MixOption {
	return func(c *mixConfig) { c.volCond = oc }
}

// Mix homogenises constituent definitions into a single definition. The
// composition is combined per the fraction type; properties defined on
// every constituent are carried over as fraction-weighted averages, and
// properties missing from any constituent are dropped. Atomic and mass
// fractions not summing to one are normalised with a warning. Volume
// fractions may sum to less than one, the remainder being void.
func Mix(name string, ftype nucleides.FractionType, parts []Part, opts ...MixOption) (*Definition, error) {
	if name == "" {
		return nil, fmt.Errorf("mixture name must not be empty")
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("mixture %q: no constituents", name)
	}
	cfg := mixConfig{volCond: conditions.STP()}
	for _, opt := range opts {
		opt(&cfg)
	}

	total := 0.0
	for _, p := range parts {
		if p.Definition == nil {
			return nil, fmt.Errorf("mixture %q: nil constituent", name)
		}
		if p.Fraction <= 0 {
			return nil, fmt.Errorf("mixture %q: constituent %q has fraction %g, must be positive",
				name, p.Definition.Name(), p.Fraction)
		}
		total += p.Fraction
	}

	weights := make([]float64, len(parts))
	switch ftype {
	case nucleides.Atomic, nucleides.Mass:
		if math.Abs(total-1) > 1e-9 {
			slog.Warn("normalising mixture fractions", "mixture", name, "sum", total)
		}
		for i, p := range parts {
			weights[i] = p.Fraction / total
		}
	case nucleides.Volume:
		if total > 1+1e-9 {
			return nil, fmt.Errorf("mixture %q: volume fractions sum to %g, must not exceed 1", name, total)
		}
		if total < 1-1e-9 {
			slog.Info("mixture has void fraction", "mixture", name, "void", 1-total)
		}
		copyFractions(weights, parts)
	default:
		return nil, fmt.Errorf("mixture %q: unknown fraction type %q", name, ftype)
	}

	comp, err := mixComposition(name, ftype, parts, weights, cfg.volCond)
	if err != nil {
		return nil, err
	}

	// Property averages weight by the input fractions. For volume mixing
	// the raw fractions are kept so a void share dilutes the average.
	props, err := mixProperties(name, parts, weights, cfg.overrides)
	if err != nil {
		return nil, err
	}

	convs := cfg.convs
	if convs == nil {
		convs = parts[0].Definition.Converters()
	}
	return NewFromComposition(name, comp, props, convs...)
}

func copyFractions(dst []float64, parts []Part) {
	for i, p := range parts {
		dst[i] = p.Fraction
	}
}

// mixComposition combines the constituents' compositions. Atomic and mass
// mixing weight the corresponding fraction representations directly.
// Volume mixing converts volume fractions to mass fractions via each
// constituent's density at the given conditions.
func mixComposition(name string, ftype nucleides.FractionType, parts []Part, weights []float64, volCond conditions.Operational) (nucleides.Composition, error) {
	switch ftype {
	case nucleides.Atomic:
		return combine(parts, weights, nucleides.Atomic, func(c nucleides.Composition) (nucleides.Composition, error) {
			return c.Atomic()
		})
	case nucleides.Mass:
		return combine(parts, weights, nucleides.Mass, func(c nucleides.Composition) (nucleides.Composition, error) {
			return c.MassFractions()
		})
	case nucleides.Volume:
		masses := make([]float64, len(parts))
		var totalMass float64
		for i, p := range parts {
			rho, err := p.Definition.Properties().Evaluate("density", volCond)
			if err != nil {
				return nucleides.Composition{}, fmt.Errorf("mixture %q: constituent %q: %w",
					name, p.Definition.Name(), err)
			}
			masses[i] = weights[i] * rho
			totalMass += masses[i]
		}
		if totalMass <= 0 {
			return nucleides.Composition{}, fmt.Errorf("mixture %q: constituents have no mass", name)
		}
		for i := range masses {
			masses[i] /= totalMass
		}
		return combine(parts, masses, nucleides.Mass, func(c nucleides.Composition) (nucleides.Composition, error) {
			return c.MassFractions()
		})
	}
	return nucleides.Composition{}, fmt.Errorf("mixture %q: unknown fraction type %q", name, ftype)
}

func combine(parts []Part, weights []float64, ftype nucleides.FractionType, rescale func(nucleides.Composition) (nucleides.Composition, error)) (nucleides.Composition, error) {
	acc := make(map[string]float64)
	for i, p := range parts {
		comp := p.Definition.Elements()
		if comp.Len() == 0 {
			continue
		}
		conv, err := rescale(comp)
		if err != nil {
			return nucleides.Composition{}, fmt.Errorf("constituent %q: %w", p.Definition.Name(), err)
		}
		for _, e := range conv.Entries() {
			acc[e.Nuclide.Name()] += weights[i] * e.Fraction
		}
	}
	if len(acc) == 0 {
		return nucleides.Composition{}, nil
	}
	return nucleides.FromMap(acc, ftype)
}

// mixProperties derives the mixture's property group. A property is
// carried only when every constituent defines it; each carried property
// evaluates as the weighted sum of the constituents' values.
func mixProperties(name string, parts []Part, weights []float64, overrides []properties.Property) (*properties.Group, error) {
	overridden := make(map[string]bool, len(overrides))
	for _, p := range overrides {
		overridden[p.Name()] = true
	}

	var mixed []properties.Property
	for _, pname := range parts[0].Definition.Properties().Names() {
		if overridden[pname] {
			continue
		}
		shared := true
		for _, p := range parts[1:] {
			if !p.Definition.Properties().Has(pname) {
				shared = false
				break
			}
		}
		if !shared {
			slog.Debug("dropping property not defined on all constituents",
				"mixture", name, "property", pname)
			continue
		}
		first, err := parts[0].Definition.Properties().Get(pname)
		if err != nil {
			return nil, err
		}
		for _, p := range parts[1:] {
			other, err := p.Definition.Properties().Get(pname)
			if err != nil {
				return nil, err
			}
			if other.Unit() != first.Unit() {
				slog.Warn("mixing property with differing units",
					"mixture", name, "property", pname,
					"unit", first.Unit(), "constituent", p.Definition.Name(), "constituent_unit", other.Unit())
				break
			}
		}
		mixed = append(mixed, weightedProperty(pname, first.Unit(), parts, weights))
	}
	mixed = append(mixed, overrides...)
	return properties.NewGroup(mixed...)
}

func weightedProperty(pname, unit string, parts []Part, weights []float64) properties.Property {
	ps := make([]Part, len(parts))
	copy(ps, parts)
	ws := make([]float64, len(weights))
	copy(ws, weights)
	return properties.Derived(pname, unit, func(oc conditions.Operational) (float64, error) {
		var sum float64
		for i, p := range ps {
			v, err := p.Definition.Properties().Evaluate(pname, oc)
			if err != nil {
				return 0, fmt.Errorf("constituent %q: %w", p.Definition.Name(), err)
			}
			sum += ws[i] * v
		}
		return sum, nil
	})
}
