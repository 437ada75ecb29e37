// Package neutronics renders materials as inputs for neutron transport and
// activation codes. OpenMC conversion yields a structured definition; the
// Serpent, MCNP6 and Fispact converters emit text material cards.
package neutronics

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/nvandessel/matprop/conditions"
	"github.com/nvandessel/matprop/material"
	"github.com/nvandessel/matprop/nucleides"
)

// massDensity resolves a material's mass density in g/cm^3. The density
// property evaluates in kg/m^3.
func massDensity(m *material.Material, oc conditions.Operational) (float64, error) {
	v, err := m.Evaluate("density", oc)
	if err != nil {
		return 0, fmt.Errorf("material %q: %w", m.Name(), err)
	}
	return v * 1e-3, nil
}

// expanded returns the material's composition with natural elements
// expanded into isotopes, expressed per the fraction type. Only atomic and
// mass fractions make sense on a card.
func expanded(m *material.Material, ftype nucleides.FractionType) ([]nucleides.Entry, error) {
	comp := m.Elements()
	if comp.Len() == 0 {
		return nil, fmt.Errorf("material %q has no composition", m.Name())
	}
	exp, err := comp.ExpandNatural()
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", m.Name(), err)
	}
	switch ftype {
	case nucleides.Atomic:
		return exp.Entries(), nil
	case nucleides.Mass:
		mf, err := exp.MassFractions()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", m.Name(), err)
		}
		return mf.Entries(), nil
	}
	return nil, fmt.Errorf("material %q: fraction type %q not representable on a material card", m.Name(), ftype)
}

// fractionPrefix separates the ZAID from the fraction. Mass fractions are
// negative by convention.
func fractionPrefix(ftype nucleides.FractionType) string {
	if ftype == nucleides.Mass {
		return " -"
	}
	return "  "
}

func nuclideField(e nucleides.Entry, suffix string, ftype nucleides.FractionType, places int) string {
	return fmt.Sprintf("%s%s%s%.*e", e.Nuclide.ZAID(), suffix, fractionPrefix(ftype), places, e.Fraction)
}

func endCard(lines, extra []string) string {
	lines = append(lines, extra...)
	return strings.Join(lines, "\n") + "\n"
}

// Nuclide is one nuclide row of an OpenMC material definition.
type Nuclide struct {
	Name     string
	Fraction float64
}

// OpenMCMaterial is the rendered form consumed by OpenMC model builders.
// Density is in g/cm^3; Temperature is nil unless the converter was asked
// to carry it.
type OpenMCMaterial struct {
	Name            string
	MaterialID      int
	Density         float64
	PercentType     nucleides.FractionType
	Nuclides        []Nuclide
	Temperature     *float64
	PackingFraction float64
	ZAIDSuffix      string
}

// OpenMC converts a material into an OpenMCMaterial. The zero value
// converts with atomic fractions, full packing and no temperature.
type OpenMC struct {
	ZAIDSuffix       string
	MaterialID       int
	PackingFraction  float64
	PercentType      nucleides.FractionType
	CarryTemperature bool
}

func (OpenMC) Name() string { return "openmc" }

func (c OpenMC) Convert(m *material.Material, oc conditions.Operational) (any, error) {
	ftype := c.PercentType
	if ftype == "" {
		ftype = nucleides.Atomic
	}
	entries, err := expanded(m, ftype)
	if err != nil {
		return nil, err
	}
	density, err := massDensity(m, oc)
	if err != nil {
		return nil, err
	}
	out := &OpenMCMaterial{
		Name:            m.Name(),
		MaterialID:      c.MaterialID,
		Density:         density,
		PercentType:     ftype,
		PackingFraction: c.PackingFraction,
		ZAIDSuffix:      c.ZAIDSuffix,
	}
	if out.PackingFraction == 0 {
		out.PackingFraction = 1
	}
	for _, e := range entries {
		out.Nuclides = append(out.Nuclides, Nuclide{Name: e.Nuclide.Name(), Fraction: e.Fraction})
	}
	if c.CarryTemperature {
		if t, ok := oc.Value(conditions.Temperature); ok {
			out.Temperature = &t
		}
	}
	return out, nil
}

// mcnpID assigns material numbers when a converter has none configured.
var mcnpID atomic.Int64

func init() { mcnpID.Store(1) }

// MCNP converts a material into an MCNP6 material card. Cards without a
// configured MaterialID draw one from a process-wide counter.
type MCNP struct {
	ZAIDSuffix    string
	MaterialID    int
	PercentType   nucleides.FractionType
	DecimalPlaces int
	EndLines      []string
}

func (MCNP) Name() string { return "mcnp" }

func (c MCNP) Convert(m *material.Material, oc conditions.Operational) (any, error) {
	ftype := c.PercentType
	if ftype == "" {
		ftype = nucleides.Atomic
	}
	places := c.DecimalPlaces
	if places == 0 {
		places = 8
	}
	entries, err := expanded(m, ftype)
	if err != nil {
		return nil, err
	}
	density, err := massDensity(m, oc)
	if err != nil {
		return nil, err
	}
	id := c.MaterialID
	if id == 0 {
		id = int(mcnpID.Add(1)) - 1
	}
	lines := []string{
		fmt.Sprintf("c     %s density %.*e g/cm3", m.Name(), places, density),
		fmt.Sprintf("M%-5d%s", id, nuclideField(entries[0], c.ZAIDSuffix, ftype, places)),
	}
	for _, e := range entries[1:] {
		lines = append(lines, "      "+nuclideField(e, c.ZAIDSuffix, ftype, places))
	}
	return endCard(lines, c.EndLines), nil
}

// Serpent converts a material into a Serpent material card.
type Serpent struct {
	ZAIDSuffix       string
	PercentType      nucleides.FractionType
	DecimalPlaces    int
	CarryTemperature bool
	EndLines         []string
}

func (Serpent) Name() string { return "serpent" }

func (c Serpent) Convert(m *material.Material, oc conditions.Operational) (any, error) {
	ftype := c.PercentType
	if ftype == "" {
		ftype = nucleides.Atomic
	}
	places := c.DecimalPlaces
	if places == 0 {
		places = 8
	}
	entries, err := expanded(m, ftype)
	if err != nil {
		return nil, err
	}
	density, err := massDensity(m, oc)
	if err != nil {
		return nil, err
	}
	head := fmt.Sprintf("mat %s -%.*e", m.Name(), places, density)
	if c.CarryTemperature {
		if t, ok := oc.Value(conditions.Temperature); ok {
			head += fmt.Sprintf(" tmp %v", t)
		}
	}
	lines := []string{head}
	for _, e := range entries {
		lines = append(lines, "      "+nuclideField(e, c.ZAIDSuffix, ftype, places))
	}
	return endCard(lines, c.EndLines), nil
}

// Fispact converts a material into a Fispact inventory card using the
// DENSITY and FUEL keywords. VolumeCm3 is the amount of material the
// inventory covers and must be positive.
type Fispact struct {
	VolumeCm3     float64
	DecimalPlaces int
	EndLines      []string
}

func (Fispact) Name() string { return "fispact" }

func (c Fispact) Convert(m *material.Material, oc conditions.Operational) (any, error) {
	if c.VolumeCm3 <= 0 {
		return nil, fmt.Errorf("material %q: fispact conversion needs a positive volume", m.Name())
	}
	places := c.DecimalPlaces
	if places == 0 {
		places = 8
	}
	entries, err := expanded(m, nucleides.Atomic)
	if err != nil {
		return nil, err
	}
	density, err := massDensity(m, oc)
	if err != nil {
		return nil, err
	}
	lines := []string{
		fmt.Sprintf("DENSITY %.*E", places, density),
		fmt.Sprintf("FUEL %d", len(entries)),
	}
	for _, e := range entries {
		atomsPerCm3 := nucleides.NAvogadro * e.Fraction * density / e.Nuclide.AtomicMass()
		lines = append(lines, fmt.Sprintf("%s  %.*E", e.Nuclide.Name(), places, c.VolumeCm3*atomsPerCm3))
	}
	return endCard(lines, c.EndLines), nil
}
