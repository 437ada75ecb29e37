package properties

import (
	"fmt"
	"sort"

	"github.com/nvandessel/matprop/conditions"
)

// Canonical property names and the SI units they evaluate in. Custom names
// outside this set are allowed but must carry their own unit.
var canonicalUnits = map[string]string{
	"density":                         "kg/m^3",
	"poissons_ratio":                  "",
	"residual_resistance_ratio":       "",
	"thermal_conductivity":            "W/m/K",
	"youngs_modulus":                  "Pa",
	"shear_modulus":                   "Pa",
	"bulk_modulus":                    "Pa",
	"coefficient_thermal_expansion":   "1/K",
	"specific_heat_capacity":          "J/kg/K",
	"electrical_resistivity":          "ohm*m",
	"magnetic_saturation":             "A/m",
	"magnetic_susceptibility":         "",
	"viscous_remanent_magnetisation":  "A/m",
	"coercive_field":                  "A/m",
	"minimum_yield_stress":            "Pa",
	"average_yield_stress":            "Pa",
	"minimum_ultimate_tensile_stress": "Pa",
	"average_ultimate_tensile_stress": "Pa",
}

// UnitFor returns the canonical SI unit for a well-known property name and
// whether the name is canonical.
func UnitFor(name string) (string, bool) {
	u, ok := canonicalUnits[name]
	return u, ok
}

// Group is an immutable mapping from property name to Property.
type Group struct {
	byName map[string]Property
	names  []string
}

// NewGroup assembles a property group. Duplicate names are rejected, and
// condition fields declared by function properties must be recognised.
func NewGroup(props ...Property) (*Group, error) {
	g := &Group{byName: make(map[string]Property, len(props))}
	for _, p := range props {
		if p.Name() == "" {
			return nil, fmt.Errorf("property with empty name")
		}
		if _, dup := g.byName[p.Name()]; dup {
			return nil, fmt.Errorf("duplicate property %q", p.Name())
		}
		for _, field := range p.Needs() {
			if !validField(field) {
				return nil, fmt.Errorf("property %q: unrecognised condition field %q", p.Name(), field)
			}
		}
		g.byName[p.Name()] = p
		g.names = append(g.names, p.Name())
	}
	sort.Strings(g.names)
	return g, nil
}

// Constants builds a group of constant properties from a name to value map,
// using canonical units for well-known names. This is the shorthand for
// fully constant materials.
func Constants(values map[string]float64) (*Group, error) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	props := make([]Property, 0, len(names))
	for _, name := range names {
		unit, _ := UnitFor(name)
		props = append(props, Constant(name, unit, values[name]))
	}
	return NewGroup(props...)
}

// Get returns the named property or a NotFoundError.
func (g *Group) Get(name string) (Property, error) {
	p, ok := g.byName[name]
	if !ok {
		return Property{}, &NotFoundError{Name: name}
	}
	return p, nil
}

// Has reports whether the group defines the named property.
func (g *Group) Has(name string) bool {
	_, ok := g.byName[name]
	return ok
}

// Names lists the property names in sorted order.
func (g *Group) Names() []string {
	return append([]string(nil), g.names...)
}

// Len returns the number of properties in the group.
func (g *Group) Len() int { return len(g.names) }

// Evaluate looks up a property and evaluates it at the given conditions.
func (g *Group) Evaluate(name string, oc conditions.Operational) (float64, error) {
	p, err := g.Get(name)
	if err != nil {
		return 0, err
	}
	return p.Evaluate(oc)
}

func validField(f conditions.Field) bool {
	for _, known := range conditions.Fields() {
		if known == f {
			return true
		}
	}
	return false
}
