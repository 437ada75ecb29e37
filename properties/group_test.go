package properties

import (
	"errors"
	"testing"

	"github.com/nvandessel/matprop/conditions"
)

func TestNewGroup(t *testing.T) {
	g, err := NewGroup(
		Constant("density", "kg/m^3", 7850),
		Constant("poissons_ratio", "", 0.3),
	)
	if err != nil {
		t.Fatalf("NewGroup() error = %v", err)
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
	if !g.Has("density") || g.Has("viscosity") {
		t.Error("Has() misreports membership")
	}
	names := g.Names()
	if len(names) != 2 || names[0] != "density" || names[1] != "poissons_ratio" {
		t.Errorf("Names() = %v", names)
	}
}

func TestNewGroupRejectsDuplicates(t *testing.T) {
	_, err := NewGroup(
		Constant("density", "kg/m^3", 1),
		Constant("density", "kg/m^3", 2),
	)
	if err == nil {
		t.Error("NewGroup should reject duplicate property names")
	}
}

func TestNewGroupRejectsEmptyName(t *testing.T) {
	if _, err := NewGroup(Constant("", "", 1)); err == nil {
		t.Error("NewGroup should reject empty property names")
	}
}

func TestGroupGet(t *testing.T) {
	g, err := NewGroup(Constant("density", "kg/m^3", 7850))
	if err != nil {
		t.Fatal(err)
	}
	p, err := g.Get("density")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.Unit() != "kg/m^3" {
		t.Errorf("Unit() = %q", p.Unit())
	}

	_, err = g.Get("viscosity")
	var nerr *NotFoundError
	if !errors.As(err, &nerr) {
		t.Fatalf("Get() error = %v, want *NotFoundError", err)
	}
	if nerr.Name != "viscosity" {
		t.Errorf("NotFoundError.Name = %q", nerr.Name)
	}
}

func TestConstants(t *testing.T) {
	g, err := Constants(map[string]float64{
		"density":        5,
		"poissons_ratio": 0.33,
	})
	if err != nil {
		t.Fatalf("Constants() error = %v", err)
	}
	p, err := g.Get("density")
	if err != nil {
		t.Fatal(err)
	}
	if p.Unit() != "kg/m^3" {
		t.Errorf("density unit = %q, want kg/m^3", p.Unit())
	}
	v, err := g.Evaluate("density", conditions.Operational{})
	if err != nil || v != 5 {
		t.Errorf("Evaluate() = %v, %v, want 5, nil", v, err)
	}
}

func TestUnitFor(t *testing.T) {
	if u, ok := UnitFor("specific_heat_capacity"); !ok || u != "J/kg/K" {
		t.Errorf("UnitFor(specific_heat_capacity) = %q, %v", u, ok)
	}
	if _, ok := UnitFor("unheard_of"); ok {
		t.Error("UnitFor should miss unknown names")
	}
}
