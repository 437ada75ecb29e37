// Package matyaml reads and writes material definitions as YAML. Only
// constant and tabulated properties can be represented; definitions
// carrying function-valued properties do not serialize.
package matyaml

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/nvandessel/matprop/conditions"
	"github.com/nvandessel/matprop/converters/matml"
	"github.com/nvandessel/matprop/converters/neutronics"
	"github.com/nvandessel/matprop/material"
	"github.com/nvandessel/matprop/nucleides"
	"github.com/nvandessel/matprop/properties"
)

// Document is the YAML shape of a material definition.
type Document struct {
	// Name is the material name.
	Name string `yaml:"name"`

	// Formula is a chemical formula such as "Li4SiO4". Mutually exclusive
	// with Elements.
	Formula string `yaml:"formula,omitempty"`

	// Elements maps nuclide symbols to fractions when the composition is
	// not a simple formula.
	Elements map[string]float64 `yaml:"elements,omitempty"`

	// FractionType interprets Elements: "atomic" (default), "mass" or
	// "volume".
	FractionType string `yaml:"fraction_type,omitempty"`

	// Properties maps property names to their parameterisation.
	Properties map[string]PropertySpec `yaml:"properties,omitempty"`

	// Converters lists the default converters of the definition.
	Converters []ConverterSpec `yaml:"converters,omitempty"`
}

// PropertySpec is one property in a document. Exactly one of Value or
// Table must be set.
type PropertySpec struct {
	Value  *float64              `yaml:"value,omitempty"`
	Unit   string                `yaml:"unit,omitempty"`
	Table  *TableSpec            `yaml:"table,omitempty"`
	Bounds map[string]BoundsSpec `yaml:"bounds,omitempty"`
}

// TableSpec is a tabulated property over one condition field.
type TableSpec struct {
	Field string    `yaml:"field"`
	X     []float64 `yaml:"x"`
	Y     []float64 `yaml:"y"`
}

// BoundsSpec restricts a condition field's valid range.
type BoundsSpec struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

// ConverterSpec selects and configures one converter by name.
type ConverterSpec struct {
	Name            string  `yaml:"name"`
	MaterialID      int     `yaml:"material_id,omitempty"`
	ZAIDSuffix      string  `yaml:"zaid_suffix,omitempty"`
	PercentType     string  `yaml:"percent_type,omitempty"`
	DecimalPlaces   int     `yaml:"decimal_places,omitempty"`
	PackingFraction float64 `yaml:"packing_fraction,omitempty"`
	VolumeCm3       float64 `yaml:"volume_cm3,omitempty"`
	Delimiter       string  `yaml:"delimiter,omitempty"`
}

// Load reads a definition from a YAML file.
func Load(path string) (*material.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading material: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading material from %s: %w", path, err)
	}
	return d, nil
}

// Parse builds a definition from YAML bytes. Unknown document fields are
// rejected.
func Parse(data []byte) (*material.Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing material: %w", err)
	}
	return doc.ToDefinition()
}

// ToDefinition builds a material definition from the document.
func (doc *Document) ToDefinition() (*material.Definition, error) {
	if doc.Name == "" {
		return nil, fmt.Errorf("material document has no name")
	}
	if doc.Formula != "" && len(doc.Elements) > 0 {
		return nil, fmt.Errorf("material %q: formula and elements are mutually exclusive", doc.Name)
	}

	var comp nucleides.Composition
	var err error
	switch {
	case doc.Formula != "":
		comp, err = nucleides.Parse(doc.Formula)
	case len(doc.Elements) > 0:
		ftype := nucleides.FractionType(doc.FractionType)
		if doc.FractionType == "" {
			ftype = nucleides.Atomic
		}
		comp, err = nucleides.FromMap(doc.Elements, ftype)
	}
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", doc.Name, err)
	}

	names := make([]string, 0, len(doc.Properties))
	for name := range doc.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	props := make([]properties.Property, 0, len(names))
	for _, name := range names {
		p, err := doc.Properties[name].toProperty(name)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", doc.Name, err)
		}
		props = append(props, p)
	}
	group, err := properties.NewGroup(props...)
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", doc.Name, err)
	}

	convs := make([]material.Converter, 0, len(doc.Converters))
	for _, cs := range doc.Converters {
		c, err := cs.toConverter()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", doc.Name, err)
		}
		convs = append(convs, c)
	}
	return material.NewFromComposition(doc.Name, comp, group, convs...)
}

func (ps PropertySpec) toProperty(name string) (properties.Property, error) {
	if (ps.Value == nil) == (ps.Table == nil) {
		return properties.Property{}, fmt.Errorf("property %q: exactly one of value or table required", name)
	}
	unit := ps.Unit
	if unit == "" {
		if u, ok := properties.UnitFor(name); ok {
			unit = u
		}
	}

	var p properties.Property
	if ps.Value != nil {
		p = properties.Constant(name, unit, *ps.Value)
	} else {
		field := conditions.Field(ps.Table.Field)
		var err error
		p, err = properties.Table(name, unit, field, ps.Table.X, ps.Table.Y)
		if err != nil {
			return properties.Property{}, err
		}
	}
	for field, b := range ps.Bounds {
		p = p.WithBounds(conditions.Field(field), properties.Between(b.Lower, b.Upper))
	}
	return p, nil
}

func (cs ConverterSpec) toConverter() (material.Converter, error) {
	ftype := nucleides.FractionType(cs.PercentType)
	switch cs.Name {
	case "openmc":
		return neutronics.OpenMC{
			ZAIDSuffix:      cs.ZAIDSuffix,
			MaterialID:      cs.MaterialID,
			PackingFraction: cs.PackingFraction,
			PercentType:     ftype,
		}, nil
	case "serpent":
		return neutronics.Serpent{
			ZAIDSuffix:    cs.ZAIDSuffix,
			PercentType:   ftype,
			DecimalPlaces: cs.DecimalPlaces,
		}, nil
	case "mcnp":
		return neutronics.MCNP{
			ZAIDSuffix:    cs.ZAIDSuffix,
			MaterialID:    cs.MaterialID,
			PercentType:   ftype,
			DecimalPlaces: cs.DecimalPlaces,
		}, nil
	case "fispact":
		return neutronics.Fispact{
			VolumeCm3:     cs.VolumeCm3,
			DecimalPlaces: cs.DecimalPlaces,
		}, nil
	case "matml":
		return matml.Converter{Delimiter: cs.Delimiter}, nil
	}
	return nil, fmt.Errorf("unknown converter %q", cs.Name)
}

// FromDefinition renders a definition as a document. Function-valued and
// derived properties cannot be represented and fail the conversion.
func FromDefinition(d *material.Definition) (*Document, error) {
	doc := &Document{Name: d.Name()}
	if comp := d.Elements(); comp.Len() > 0 {
		doc.Elements = make(map[string]float64, comp.Len())
		for _, e := range comp.Entries() {
			doc.Elements[e.Nuclide.Name()] = e.Fraction
		}
		doc.FractionType = string(comp.FractionType())
	}

	if n := d.Properties().Len(); n > 0 {
		doc.Properties = make(map[string]PropertySpec, n)
	}
	for _, name := range d.Properties().Names() {
		p, err := d.Properties().Get(name)
		if err != nil {
			return nil, err
		}
		var ps PropertySpec
		ps.Unit = p.Unit()
		switch p.Kind() {
		case properties.KindConstant:
			v, _ := p.ConstantValue()
			ps.Value = &v
		case properties.KindTable:
			field, xs, ys, _ := p.TableData()
			ps.Table = &TableSpec{Field: string(field), X: xs, Y: ys}
		default:
			return nil, fmt.Errorf("material %q: property %q is %s-valued and cannot be serialized",
				d.Name(), name, p.Kind())
		}
		for _, field := range conditions.Fields() {
			if b, ok := p.Bound(field); ok {
				if ps.Bounds == nil {
					ps.Bounds = make(map[string]BoundsSpec)
				}
				ps.Bounds[string(field)] = BoundsSpec{Lower: b.Lower, Upper: b.Upper}
			}
		}
		doc.Properties[name] = ps
	}

	for _, c := range d.Converters() {
		cs, err := fromConverter(c)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", d.Name(), err)
		}
		doc.Converters = append(doc.Converters, cs)
	}
	return doc, nil
}

func fromConverter(c material.Converter) (ConverterSpec, error) {
	switch v := c.(type) {
	case neutronics.OpenMC:
		return ConverterSpec{
			Name:            v.Name(),
			ZAIDSuffix:      v.ZAIDSuffix,
			MaterialID:      v.MaterialID,
			PackingFraction: v.PackingFraction,
			PercentType:     string(v.PercentType),
		}, nil
	case neutronics.Serpent:
		return ConverterSpec{
			Name:          v.Name(),
			ZAIDSuffix:    v.ZAIDSuffix,
			PercentType:   string(v.PercentType),
			DecimalPlaces: v.DecimalPlaces,
		}, nil
	case neutronics.MCNP:
		return ConverterSpec{
			Name:          v.Name(),
			ZAIDSuffix:    v.ZAIDSuffix,
			MaterialID:    v.MaterialID,
			PercentType:   string(v.PercentType),
			DecimalPlaces: v.DecimalPlaces,
		}, nil
	case neutronics.Fispact:
		return ConverterSpec{
			Name:          v.Name(),
			VolumeCm3:     v.VolumeCm3,
			DecimalPlaces: v.DecimalPlaces,
		}, nil
	case matml.Converter:
		return ConverterSpec{Name: v.Name(), Delimiter: v.Delimiter}, nil
	}
	return ConverterSpec{}, fmt.Errorf("converter %q cannot be serialized", c.Name())
}

// Marshal renders a definition as YAML bytes.
func Marshal(d *material.Definition) ([]byte, error) {
	doc, err := FromDefinition(d)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// Save writes a definition to a YAML file.
func Save(d *material.Definition, path string) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("saving material: %w", err)
	}
	return nil
}
