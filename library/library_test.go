package library

import (
	"math"
	"strings"
	"testing"

	"github.com/nvandessel/matprop/conditions"
)

func at(t *testing.T, opts ...conditions.Option) conditions.Operational {
	t.Helper()
	oc, err := conditions.New(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return oc
}

func eval(t *testing.T, mat, prop string, oc conditions.Operational) float64 {
	t.Helper()
	def, err := Get(mat)
	if err != nil {
		t.Fatalf("Get(%q) error = %v", mat, err)
	}
	v, err := def.Instantiate().Evaluate(prop, oc)
	if err != nil {
		t.Fatalf("%s.%s: %v", mat, prop, err)
	}
	return v
}

func approx(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 13 {
		t.Fatalf("Names() = %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}
	for _, want := range []string{"SS316L", "PlanseeTungsten", "Water", "DTPlasma"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Names() missing %q", want)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("Unobtainium")
	if err == nil || !strings.Contains(err.Error(), "Unobtainium") {
		t.Errorf("Get(unknown) error = %v", err)
	}
}

func TestGetShared(t *testing.T) {
	a, err := Get("Water")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Get("Water")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("Get should return the same definition on repeat calls")
	}
}

func TestWater(t *testing.T) {
	oc := at(t, conditions.WithTemperature(300), conditions.WithPressure(1e5))
	approx(t, eval(t, "Water", "density", oc), 997.047, 1e-9)
	approx(t, eval(t, "Water", "specific_heat_capacity", oc), 4186, 1e-9)
	approx(t, eval(t, "Water", "thermal_conductivity", oc), 0.606, 1e-9)
}

func TestPlanseeTungsten(t *testing.T) {
	oc := at(t, conditions.WithTemperature(293.15))
	approx(t, eval(t, "PlanseeTungsten", "density", oc), 19250, 1e-9)
	approx(t, eval(t, "PlanseeTungsten", "thermal_conductivity", oc), 164, 1e-9)
	approx(t, eval(t, "PlanseeTungsten", "poissons_ratio", oc), 0.28, 1e-9)

	def, err := Get("PlanseeTungsten")
	if err != nil {
		t.Fatal(err)
	}
	if got := def.Elements().Formula(); got != "W" {
		t.Errorf("Formula = %q", got)
	}
}

func TestSS316L(t *testing.T) {
	oc := at(t, conditions.WithTemperature(400))
	approx(t, eval(t, "SS316L", "density", oc),
		8084.2-4.2086e-1*400-3.8942e-5*400*400, 1e-9)
	approx(t, eval(t, "SS316L", "specific_heat_capacity", oc),
		4.184*(0.1097+3.174e-5*400)*1e3, 1e-9)
	approx(t, eval(t, "SS316L", "thermal_conductivity", oc),
		9.248+1.571e-2*400, 1e-9)
	approx(t, eval(t, "SS316L", "coefficient_thermal_expansion", oc),
		1.7887e-5+2.3977e-9*400+3.2692e-13*400*400, 1e-18)
}

func TestSS316LBounds(t *testing.T) {
	def, err := Get("SS316L")
	if err != nil {
		t.Fatal(err)
	}
	m := def.Instantiate()
	oc := at(t, conditions.WithTemperature(1400))
	if _, err := m.Evaluate("density", oc); err != nil {
		t.Errorf("density at 1400 K: %v", err)
	}
	if _, err := m.Evaluate("specific_heat_capacity", oc); err == nil {
		t.Error("specific_heat_capacity should reject 1400 K")
	}
}

func TestLi4SiO4(t *testing.T) {
	// 50 C table point.
	approx(t, eval(t, "Li4SiO4", "specific_heat_capacity",
		at(t, conditions.WithTemperature(323.15))), 1450, 1e-9)

	oc := at(t, conditions.WithTemperature(373.15), conditions.With(conditions.Strain, 0.02))
	approx(t, eval(t, "Li4SiO4", "coefficient_thermal_expansion", oc),
		0.768+4.96e-4*100+0.045*0.02, 1e-12)
}

func TestVoid(t *testing.T) {
	def, err := Get("Void")
	if err != nil {
		t.Fatal(err)
	}
	if def.Elements().Len() != 1 {
		t.Errorf("Void nuclides = %d, want 1", def.Elements().Len())
	}
	// One hydrogen atom per cm^3.
	v := eval(t, "Void", "density", at(t, conditions.WithTemperature(300)))
	approx(t, v, 1.674e-21, 1e-23)
}

func TestHeliumIdealGas(t *testing.T) {
	oc := at(t, conditions.WithTemperature(300), conditions.WithPressure(1e5))
	want := 1e5 * 4.002602e-3 / (gasConstant * 300)
	approx(t, eval(t, "Helium", "density", oc), want, 1e-12)

	def, err := Get("Helium")
	if err != nil {
		t.Fatal(err)
	}
	cold := at(t, conditions.WithTemperature(1), conditions.WithPressure(1e5))
	if _, err := def.Instantiate().Evaluate("density", cold); err == nil {
		t.Error("helium density should reject temperatures below the lambda point")
	}
}

func TestPlasmas(t *testing.T) {
	dt, err := Get("DTPlasma")
	if err != nil {
		t.Fatal(err)
	}
	if got := dt.Elements().Len(); got != 2 {
		t.Errorf("DTPlasma nuclides = %d, want 2", got)
	}
	approx(t, eval(t, "DTPlasma", "density", at(t, conditions.WithTemperature(300))), 1e-3, 1e-12)

	dd, err := Get("DDPlasma")
	if err != nil {
		t.Fatal(err)
	}
	if got := dd.Elements().Len(); got != 1 {
		t.Errorf("DDPlasma nuclides = %d, want 1", got)
	}
}

func TestConvertersRegistered(t *testing.T) {
	tests := []struct {
		material string
		want     []string
	}{
		{"SS316L", []string{"matml", "mcnp", "openmc", "serpent"}},
		{"PlanseeTungsten", []string{"matml", "mcnp", "openmc", "serpent"}},
		{"Water", []string{"openmc"}},
		{"Li2TiO3", []string{"openmc"}},
	}
	for _, tt := range tests {
		def, err := Get(tt.material)
		if err != nil {
			t.Fatal(err)
		}
		got := def.Instantiate().ConverterNames()
		if len(got) != len(tt.want) {
			t.Errorf("%s converters = %v, want %v", tt.material, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s converters = %v, want %v", tt.material, got, tt.want)
				break
			}
		}
	}
}

func TestSerpentCard(t *testing.T) {
	def, err := Get("PlanseeTungsten")
	if err != nil {
		t.Fatal(err)
	}
	out, err := def.Instantiate().Convert("serpent", at(t, conditions.WithTemperature(293.15)))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	card, ok := out.(string)
	if !ok {
		t.Fatalf("Convert() returned %T, want string", out)
	}
	if !strings.HasPrefix(card, "mat PlanseeTungsten -1.92500000e+01") {
		t.Errorf("card header = %q", strings.SplitN(card, "\n", 2)[0])
	}
	if !strings.Contains(card, "074184") {
		t.Error("card should list the W184 ZAID")
	}
}
