package library

import (
	"github.com/nvandessel/matprop/conditions"
	"github.com/nvandessel/matprop/converters/neutronics"
	"github.com/nvandessel/matprop/material"
	"github.com/nvandessel/matprop/nucleides"
	"github.com/nvandessel/matprop/properties"
)

// gasConstant is the molar gas constant in J/mol/K.
const gasConstant = 8.31446261815324

// water builds liquid water at atmospheric pressure with tabulated
// saturation-line data.
func water() *material.Definition {
	tK := []float64{273.15, 280, 290, 300, 310, 320, 330, 340, 350, 360, 370}
	props := mustGroup(
		properties.MustTable("density", "kg/m^3", conditions.Temperature, tK,
			[]float64{999.84, 999.91, 998.77, 997.047, 993.38, 989.43, 984.75, 979.5, 973.7, 967.4, 960.6}),
		properties.MustTable("specific_heat_capacity", "J/kg/K", conditions.Temperature, tK,
			[]float64{4219, 4198, 4184, 4186, 4178, 4180, 4184, 4188, 4195, 4203, 4214}),
		properties.MustTable("thermal_conductivity", "W/m/K", conditions.Temperature, tK,
			[]float64{0.561, 0.5715, 0.5892, 0.606, 0.6182, 0.6299, 0.6405, 0.6499, 0.6581, 0.6651, 0.6709}),
		properties.Constant("youngs_modulus", "Pa", 0),
		properties.Constant("poissons_ratio", "", 0),
	)
	return mustDef("Water", "H2O", props, neutronics.OpenMC{})
}

// helium builds gaseous helium with an ideal-gas density.
func helium() *material.Definition {
	const molarMass = 4.002602e-3 // kg/mol
	props := mustGroup(
		properties.Func("density", "kg/m^3", func(oc conditions.Operational) float64 {
			t, _ := oc.Temperature()
			p, _ := oc.Pressure()
			return p * molarMass / (gasConstant * t)
		}, conditions.Temperature, conditions.Pressure).
			WithBounds(conditions.Temperature, properties.AtLeast(1.58842)),
		properties.Constant("youngs_modulus", "Pa", 0),
		properties.Constant("poissons_ratio", "", 0),
	)
	return mustDef("Helium", "He", props, neutronics.OpenMC{})
}

// void builds the void pseudo-material: a single hydrogen atom per cubic
// centimetre, so neutronics cards have a near-empty region to point at.
func void() *material.Definition {
	comp := mustComp(map[string]float64{"H": 1}, nucleides.Atomic)
	molar, err := comp.MolarMass()
	if err != nil {
		panic(err)
	}
	props := mustGroup(
		properties.Constant("density", "kg/m^3", molar/nucleides.NAvogadro*1e3),
	)
	return mustDefComp("Void", comp, props, neutronics.OpenMC{})
}

// plasmaProps is shared by the fuel plasma pseudo-materials.
func plasmaProps() *properties.Group {
	return mustGroup(
		properties.Constant("density", "kg/m^3", 1e-3),
		properties.Constant("youngs_modulus", "Pa", 0),
		properties.Constant("poissons_ratio", "", 0),
	)
}

func dtPlasma() *material.Definition {
	comp := mustComp(map[string]float64{"H2": 0.5, "H3": 0.5}, nucleides.Atomic)
	return mustDefComp("DTPlasma", comp, plasmaProps(), neutronics.OpenMC{})
}

func ddPlasma() *material.Definition {
	comp := mustComp(map[string]float64{"H2": 1}, nucleides.Atomic)
	return mustDefComp("DDPlasma", comp, plasmaProps(), neutronics.OpenMC{})
}
