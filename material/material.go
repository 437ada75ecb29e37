// Package material ties a named composition and property group together
// with the converters that render it for downstream codes. A Definition is
// the immutable description; Instantiate produces a Material whose
// converter registry can be modified without touching the definition or
// any sibling instance.
package material

import (
	"fmt"
	"sort"

	"github.com/nvandessel/matprop/conditions"
	"github.com/nvandessel/matprop/nucleides"
	"github.com/nvandessel/matprop/properties"
)

// Converter renders a material into an output-specific representation at
// given operating conditions. Implementations live in the converters
// subpackages; the returned value's concrete type is converter-specific.
type Converter interface {
	Name() string
	Convert(m *Material, oc conditions.Operational) (any, error)
}

// ConverterNotFoundError reports a conversion target absent from a
// material's registry.
type ConverterNotFoundError struct {
	Material  string
	Converter string
}

func (e *ConverterNotFoundError) Error() string {
	return fmt.Sprintf("material %q: no converter named %q", e.Material, e.Converter)
}

// Definition describes a material: its name, elemental composition,
// properties, and the converters every instance starts with.
type Definition struct {
	name     string
	elements nucleides.Composition
	props    *properties.Group
	convs    []Converter
}

// New builds a definition from a chemical formula such as "SiC" or
// "Li4SiO4". An empty formula defines a material with no composition,
// which some outputs reject at conversion time rather than here.
func New(name, formula string, props *properties.Group, convs ...Converter) (*Definition, error) {
	var comp nucleides.Composition
	if formula != "" {
		var err error
		comp, err = nucleides.Parse(formula)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
	}
	return NewFromComposition(name, comp, props, convs...)
}

// NewFromComposition builds a definition from an already-assembled
// composition, for callers mixing materials or reading serialized data.
func NewFromComposition(name string, comp nucleides.Composition, props *properties.Group, convs ...Converter) (*Definition, error) {
	if name == "" {
		return nil, fmt.Errorf("material name must not be empty")
	}
	if props == nil {
		var err error
		props, err = properties.NewGroup()
		if err != nil {
			return nil, err
		}
	}
	d := &Definition{name: name, elements: comp, props: props}
	seen := make(map[string]bool, len(convs))
	for _, c := range convs {
		if c == nil {
			return nil, fmt.Errorf("material %q: nil converter", name)
		}
		if seen[c.Name()] {
			return nil, fmt.Errorf("material %q: duplicate converter %q", name, c.Name())
		}
		seen[c.Name()] = true
		d.convs = append(d.convs, c)
	}
	return d, nil
}

// Name returns the material name.
func (d *Definition) Name() string { return d.name }

// Elements returns the elemental composition.
func (d *Definition) Elements() nucleides.Composition { return d.elements }

// Properties returns the property group.
func (d *Definition) Properties() *properties.Group { return d.props }

// Converters returns the default converters in registration order.
func (d *Definition) Converters() []Converter {
	return append([]Converter(nil), d.convs...)
}

// Instantiate produces a material backed by this definition with its own
// converter registry. Instances never share registry state.
func (d *Definition) Instantiate() *Material {
	return &Material{def: d, reg: newRegistry(d.convs...)}
}

// Material is a usable instance of a definition.
type Material struct {
	def *Definition
	reg *registry
}

// Name returns the material name.
func (m *Material) Name() string { return m.def.name }

// Definition returns the definition this instance came from.
func (m *Material) Definition() *Definition { return m.def }

// Elements returns the elemental composition.
func (m *Material) Elements() nucleides.Composition { return m.def.elements }

// Properties returns the property group.
func (m *Material) Properties() *properties.Group { return m.def.props }

// Evaluate computes a named property at the given conditions.
func (m *Material) Evaluate(prop string, oc conditions.Operational) (float64, error) {
	return m.def.props.Evaluate(prop, oc)
}

// AddConverter registers a converter on this instance, replacing any
// existing converter with the same name.
func (m *Material) AddConverter(c Converter) {
	m.reg.add(c)
}

// RemoveConverter drops a converter from this instance. Removing an
// unknown name is a no-op.
func (m *Material) RemoveConverter(name string) {
	m.reg.remove(name)
}

// Converter looks up a converter by name.
func (m *Material) Converter(name string) (Converter, error) {
	c, ok := m.reg.get(name)
	if !ok {
		return nil, &ConverterNotFoundError{Material: m.def.name, Converter: name}
	}
	return c, nil
}

// ConverterNames returns the registered converter names, sorted.
func (m *Material) ConverterNames() []string {
	return m.reg.names()
}

// Convert renders the material with the named converter.
func (m *Material) Convert(name string, oc conditions.Operational) (any, error) {
	c, err := m.Converter(name)
	if err != nil {
		return nil, err
	}
	return c.Convert(m, oc)
}

// registry maps converter names to converters for one instance.
type registry struct {
	byName map[string]Converter
}

func newRegistry(convs ...Converter) *registry {
	r := &registry{byName: make(map[string]Converter, len(convs))}
	for _, c := range convs {
		r.byName[c.Name()] = c
	}
	return r
}

func (r *registry) add(c Converter) {
	r.byName[c.Name()] = c
}

func (r *registry) remove(name string) {
	delete(r.byName, name)
}

func (r *registry) get(name string) (Converter, bool) {
	c, ok := r.byName[name]
	return c, ok
}

func (r *registry) names() []string {
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
