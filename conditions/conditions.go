// Package conditions models the operating conditions a material property is
// evaluated at. An Operational value is immutable once constructed and is
// comparable, so equal conditions are interchangeable as map keys.
package conditions

import (
	"fmt"
	"math"
	"sort"
)

// Field names an operating-condition quantity.
type Field string

const (
	Temperature    Field = "temperature"     // K
	Pressure       Field = "pressure"        // Pa
	MagneticField  Field = "magnetic_field"  // T
	Strain         Field = "strain"          // -
	NeutronDamage  Field = "neutron_damage"  // dpa
	NeutronFluence Field = "neutron_fluence" // 1/m^2
)

// fields is the fixed condition field order.
var fields = [...]Field{Temperature, Pressure, MagneticField, Strain, NeutronDamage, NeutronFluence}

// Unit returns the SI unit a field is expressed in.
func (f Field) Unit() string {
	switch f {
	case Temperature:
		return "K"
	case Pressure:
		return "Pa"
	case MagneticField:
		return "T"
	case Strain:
		return ""
	case NeutronDamage:
		return "dpa"
	case NeutronFluence:
		return "1/m^2"
	}
	return ""
}

func index(f Field) (int, bool) {
	for i, name := range fields {
		if name == f {
			return i, true
		}
	}
	return 0, false
}

// Fields lists the recognised condition field names in canonical order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields[:])
	return out
}

// ValidationError reports a malformed condition field at construction.
type ValidationError struct {
	Field  Field
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("condition %q: %s", e.Field, e.Reason)
}

// Operational is an immutable set of operating-condition values. Unset
// fields are absent rather than zero. The zero value has no fields set.
type Operational struct {
	vals [len(fields)]float64
	set  [len(fields)]bool
}

// Option sets one condition field on construction.
type Option func(*Operational) error

// With sets an arbitrary field by name.
func With(f Field, v float64) Option {
	return func(oc *Operational) error {
		i, ok := index(f)
		if !ok {
			return &ValidationError{Field: f, Reason: "unrecognised condition field"}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ValidationError{Field: f, Reason: "value must be finite"}
		}
		if f == Temperature && v < 0 {
			return &ValidationError{Field: f, Reason: "temperature cannot be below 0 K"}
		}
		oc.vals[i] = v
		oc.set[i] = true
		return nil
	}
}

// WithTemperature sets the temperature in K.
func WithTemperature(v float64) Option { return With(Temperature, v) }

// WithPressure sets the pressure in Pa.
func WithPressure(v float64) Option { return With(Pressure, v) }

// WithMagneticField sets the magnetic field in T.
func WithMagneticField(v float64) Option { return With(MagneticField, v) }

// WithStrain sets the strain.
func WithStrain(v float64) Option { return With(Strain, v) }

// WithNeutronDamage sets the neutron damage in dpa.
func WithNeutronDamage(v float64) Option { return With(NeutronDamage, v) }

// WithNeutronFluence sets the neutron fluence in 1/m^2.
func WithNeutronFluence(v float64) Option { return With(NeutronFluence, v) }

// New constructs operating conditions from options.
func New(opts ...Option) (Operational, error) {
	var oc Operational
	for _, opt := range opts {
		if err := opt(&oc); err != nil {
			return Operational{}, err
		}
	}
	return oc, nil
}

// FromMap constructs operating conditions from a field-name map, as loaded
// from YAML or CLI flags. Unrecognised names fail with a ValidationError.
func FromMap(values map[string]float64) (Operational, error) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	opts := make([]Option, 0, len(names))
	for _, name := range names {
		opts = append(opts, With(Field(name), values[name]))
	}
	return New(opts...)
}

// STP returns the IUPAC standard temperature and pressure conditions
// (273.15 K, 100 kPa).
func STP() Operational {
	oc, _ := New(WithTemperature(273.15), WithPressure(100e3))
	return oc
}

// Value returns the value of a field and whether it is set.
func (oc Operational) Value(f Field) (float64, bool) {
	i, ok := index(f)
	if !ok || !oc.set[i] {
		return 0, false
	}
	return oc.vals[i], true
}

// Has reports whether a field is set.
func (oc Operational) Has(f Field) bool {
	_, ok := oc.Value(f)
	return ok
}

// Temperature returns the temperature in K and whether it is set.
func (oc Operational) Temperature() (float64, bool) { return oc.Value(Temperature) }

// Pressure returns the pressure in Pa and whether it is set.
func (oc Operational) Pressure() (float64, bool) { return oc.Value(Pressure) }

// Set lists the fields that are set, in canonical order.
func (oc Operational) Set() []Field {
	var out []Field
	for i, name := range fields {
		if oc.set[i] {
			out = append(out, name)
		}
	}
	return out
}

func (oc Operational) String() string {
	s := "Operational("
	first := true
	for i, name := range fields {
		if !oc.set[i] {
			continue
		}
		if !first {
			s += ", "
		}
		s += fmt.Sprintf("%s=%g", name, oc.vals[i])
		first = false
	}
	return s + ")"
}
