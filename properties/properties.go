// Package properties models named physical properties of a material as
// explicit parameterisations: constants, functions of operating conditions,
// or interpolated tables. Evaluation is deterministic and side-effect free;
// conditions outside a property's declared validity fail rather than
// extrapolate.
package properties

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/nvandessel/matprop/conditions"
)

// EvalFunc computes a property value from operating conditions. The fields
// it reads must be declared with Needs when the property is constructed.
type EvalFunc func(oc conditions.Operational) float64

// Kind identifies a property parameterisation.
type Kind string

const (
	KindConstant Kind = "constant"
	KindFunc     Kind = "function"
	KindTable    Kind = "table"
	KindDerived  Kind = "derived"
)

// Bounds restricts the valid range of one condition field for a property.
type Bounds struct {
	Lower float64
	Upper float64
}

// Between bounds a condition field to [lo, hi].
func Between(lo, hi float64) Bounds { return Bounds{Lower: lo, Upper: hi} }

// AtLeast bounds a condition field from below only.
func AtLeast(lo float64) Bounds { return Bounds{Lower: lo, Upper: math.Inf(1)} }

// NotFoundError reports a property name missing from a group.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("property %q not found", e.Name)
}

// EvaluationError reports a condition field required by a property but
// absent from the supplied conditions.
type EvaluationError struct {
	Property string
	Field    conditions.Field
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("property %q: condition %q required but not set", e.Property, e.Field)
}

// DomainError reports a condition value outside a property's valid range.
type DomainError struct {
	Property string
	Field    conditions.Field
	Value    float64
	Lower    float64
	Upper    float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("property %q: condition %q = %g outside valid range [%g, %g]",
		e.Property, e.Field, e.Value, e.Lower, e.Upper)
}

// Property is a named quantity with a unit and an evaluation rule. The zero
// value is not usable; construct with Constant, Func or Table.
type Property struct {
	name   string
	unit   string
	kind   Kind
	value  float64
	fn     EvalFunc
	needs  []conditions.Field
	field  conditions.Field // table predictor field
	xs, ys []float64
	pl     interp.PiecewiseLinear
	fnE    func(conditions.Operational) (float64, error)
	bounds map[conditions.Field]Bounds
}

// Constant defines a property that evaluates to v under any conditions.
func Constant(name, unit string, v float64) Property {
	return Property{name: name, unit: unit, kind: KindConstant, value: v}
}

// Func defines a property computed by fn from the declared condition fields.
// Evaluation fails with an EvaluationError when a declared field is absent.
func Func(name, unit string, fn EvalFunc, needs ...conditions.Field) Property {
	return Property{name: name, unit: unit, kind: KindFunc, fn: fn, needs: needs}
}

// Table defines a property interpolated piecewise-linearly over one
// condition field. The xs must be strictly increasing; evaluation outside
// [xs[0], xs[len-1]] fails with a DomainError.
func Table(name, unit string, field conditions.Field, xs, ys []float64) (Property, error) {
	if len(xs) != len(ys) {
		return Property{}, fmt.Errorf("property %q: table has %d abscissae but %d values", name, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return Property{}, fmt.Errorf("property %q: table needs at least 2 points", name)
	}
	p := Property{name: name, unit: unit, kind: KindTable, field: field}
	p.xs = append([]float64(nil), xs...)
	p.ys = append([]float64(nil), ys...)
	if err := p.pl.Fit(p.xs, p.ys); err != nil {
		return Property{}, fmt.Errorf("property %q: %w", name, err)
	}
	return p, nil
}

// Derived defines a property computed by fn, where fn performs its own
// condition validation and may fail. Used for properties composed from
// other properties, such as those of a mixture.
func Derived(name, unit string, fn func(oc conditions.Operational) (float64, error)) Property {
	return Property{name: name, unit: unit, kind: KindDerived, fnE: fn}
}

// MustTable is Table for static definitions known to be well formed.
func MustTable(name, unit string, field conditions.Field, xs, ys []float64) Property {
	p, err := Table(name, unit, field, xs, ys)
	if err != nil {
		panic(err)
	}
	return p
}

// WithBounds returns a copy of the property with a validity bound on one
// condition field. Bounds are checked only for fields present in the
// supplied conditions.
func (p Property) WithBounds(field conditions.Field, b Bounds) Property {
	nb := make(map[conditions.Field]Bounds, len(p.bounds)+1)
	for k, v := range p.bounds {
		nb[k] = v
	}
	nb[field] = b
	p.bounds = nb
	return p
}

// Name returns the property name; it is the lookup key within a group.
func (p Property) Name() string { return p.name }

// Unit returns the unit the property evaluates in.
func (p Property) Unit() string { return p.unit }

// Kind returns the parameterisation kind.
func (p Property) Kind() Kind { return p.kind }

// ConstantValue returns the constant value for a constant property.
func (p Property) ConstantValue() (float64, bool) {
	return p.value, p.kind == KindConstant
}

// TableData returns the predictor field and data of a table property.
func (p Property) TableData() (field conditions.Field, xs, ys []float64, ok bool) {
	if p.kind != KindTable {
		return "", nil, nil, false
	}
	return p.field, append([]float64(nil), p.xs...), append([]float64(nil), p.ys...), true
}

// Needs returns the condition fields the property requires at evaluation.
func (p Property) Needs() []conditions.Field {
	switch p.kind {
	case KindFunc:
		return append([]conditions.Field(nil), p.needs...)
	case KindTable:
		return []conditions.Field{p.field}
	}
	return nil
}

// Bound returns the validity bound for a field, if one is set.
func (p Property) Bound(field conditions.Field) (Bounds, bool) {
	b, ok := p.bounds[field]
	return b, ok
}

// Evaluate computes the property value at the given conditions.
func (p Property) Evaluate(oc conditions.Operational) (float64, error) {
	for field, b := range p.bounds {
		v, ok := oc.Value(field)
		if !ok {
			continue
		}
		if v < b.Lower || v > b.Upper {
			return 0, &DomainError{Property: p.name, Field: field, Value: v, Lower: b.Lower, Upper: b.Upper}
		}
	}

	switch p.kind {
	case KindConstant:
		return p.value, nil
	case KindFunc:
		for _, field := range p.needs {
			if !oc.Has(field) {
				return 0, &EvaluationError{Property: p.name, Field: field}
			}
		}
		return p.fn(oc), nil
	case KindTable:
		x, ok := oc.Value(p.field)
		if !ok {
			return 0, &EvaluationError{Property: p.name, Field: p.field}
		}
		if x < p.xs[0] || x > p.xs[len(p.xs)-1] {
			return 0, &DomainError{Property: p.name, Field: p.field, Value: x, Lower: p.xs[0], Upper: p.xs[len(p.xs)-1]}
		}
		return p.pl.Predict(x), nil
	case KindDerived:
		return p.fnE(oc)
	}
	return 0, fmt.Errorf("property %q has no evaluation rule", p.name)
}
