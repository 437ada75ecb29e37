package conditions

import (
	"errors"
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	oc, err := New(WithTemperature(300), WithPressure(1e5))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if v, ok := oc.Temperature(); !ok || v != 300 {
		t.Errorf("Temperature() = %v, %v, want 300, true", v, ok)
	}
	if v, ok := oc.Pressure(); !ok || v != 1e5 {
		t.Errorf("Pressure() = %v, %v, want 1e5, true", v, ok)
	}
	if oc.Has(Strain) {
		t.Error("Strain should not be set")
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"negative temperature", WithTemperature(-1)},
		{"unknown field", With("viscosity", 1)},
		{"NaN temperature", WithTemperature(math.NaN())},
		{"infinite pressure", WithPressure(math.Inf(1))},
		{"negative infinite strain", WithStrain(math.Inf(-1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("New() error = %v, want *ValidationError", err)
			}
		})
	}
}

func TestZeroTemperatureAllowed(t *testing.T) {
	oc, err := New(WithTemperature(0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if v, ok := oc.Temperature(); !ok || v != 0 {
		t.Errorf("Temperature() = %v, %v, want 0, true", v, ok)
	}
}

func TestFromMap(t *testing.T) {
	oc, err := FromMap(map[string]float64{
		"temperature":    550,
		"neutron_damage": 2.5,
	})
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}
	if v, _ := oc.Value(NeutronDamage); v != 2.5 {
		t.Errorf("neutron_damage = %v, want 2.5", v)
	}
	if got := oc.Set(); len(got) != 2 || got[0] != Temperature || got[1] != NeutronDamage {
		t.Errorf("Set() = %v", got)
	}

	if _, err := FromMap(map[string]float64{"bogus": 1}); err == nil {
		t.Error("FromMap should reject unknown fields")
	}
}

func TestSTP(t *testing.T) {
	oc := STP()
	if v, _ := oc.Temperature(); v != 273.15 {
		t.Errorf("STP temperature = %v, want 273.15", v)
	}
	if v, _ := oc.Pressure(); v != 100e3 {
		t.Errorf("STP pressure = %v, want 100e3", v)
	}
}

func TestComparable(t *testing.T) {
	a, _ := New(WithTemperature(300))
	b, _ := New(WithTemperature(300))
	c, _ := New(WithTemperature(300), WithPressure(1e5))
	if a != b {
		t.Error("identical conditions should compare equal")
	}
	if a == c {
		t.Error("conditions with different fields should not compare equal")
	}
}

func TestFieldUnit(t *testing.T) {
	tests := []struct {
		field Field
		want  string
	}{
		{Temperature, "K"},
		{Pressure, "Pa"},
		{MagneticField, "T"},
		{Strain, ""},
		{NeutronDamage, "dpa"},
		{NeutronFluence, "1/m^2"},
	}
	for _, tt := range tests {
		if got := tt.field.Unit(); got != tt.want {
			t.Errorf("Unit(%s) = %q, want %q", tt.field, got, tt.want)
		}
	}
}
