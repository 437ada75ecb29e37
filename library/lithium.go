package library

import (
	"github.com/nvandessel/matprop/conditions"
	"github.com/nvandessel/matprop/converters/neutronics"
	"github.com/nvandessel/matprop/material"
	"github.com/nvandessel/matprop/nucleides"
	"github.com/nvandessel/matprop/properties"
)

// li4SiO4 builds the lithium orthosilicate breeder ceramic. The specific
// heat table is from Fokkens 2003, given against Celsius temperatures.
func li4SiO4() *material.Definition {
	tC := []float64{
		0, 50, 100, 150, 200, 250, 300, 350, 400, 450, 500, 550, 600, 650, 700, 750, 800,
		850, 900, 950, 1000,
	}
	shc := []float64{
		1392.4, 1450, 1513.4, 1580, 1648.5, 1718.2, 1788.8, 1859.9, 1931.4,
		2003.3, 2075.3, 2147.5, 2219.8, 2292.3, 2364.8, 2437.4, 2510.1, 2582.8, 2655.5,
		2728.3, 2801.1,
	}
	tK := make([]float64, len(tC))
	for i, t := range tC {
		tK[i] = t + 273.15
	}
	props := mustGroup(
		properties.MustTable("specific_heat_capacity", "J/kg/K", conditions.Temperature, tK, shc),

		// Strain-dependent expansion, doi 10.1016/S0920-3796(02)00165-5.
		properties.Func("coefficient_thermal_expansion", "1e-6/K", func(oc conditions.Operational) float64 {
			t, _ := oc.Value(conditions.Temperature)
			strain, _ := oc.Value(conditions.Strain)
			return 0.768 + 4.96e-4*(t-273.15) + 0.045*strain
		}, conditions.Temperature, conditions.Strain).
			WithBounds(conditions.Temperature, properties.Between(298.15, 1073.15)),
	)
	return mustDef("Li4SiO4", "Li4SiO4", props, neutronics.OpenMC{})
}

func li2SiO3() *material.Definition {
	return mustDef("Li2SiO3", "Li2SiO3", nil, neutronics.OpenMC{})
}

func li2TiO3() *material.Definition {
	return mustDef("Li2TiO3", "Li2TiO3", nil, neutronics.OpenMC{})
}

func li2ZrO3() *material.Definition {
	return mustDef("Li2ZrO3", "Li2ZrO3", nil, neutronics.OpenMC{})
}

// pbLiEutectic builds the lead-lithium eutectic breeder with its trace
// impurity inventory.
func pbLiEutectic() *material.Definition {
	comp := mustComp(map[string]float64{
		"Pb": 0.99283,
		"Li": 0.0062,
		"Ag": 0.00001,
		"Cu": 0.00001,
		"Nb": 0.00001,
		"Pd": 0.00001,
		"Zn": 0.00001,
		"Fe": 0.00005,
		"Cr": 0.00005,
		"Mn": 0.00005,
		"Mo": 0.00005,
		"Ni": 0.00005,
		"V":  0.00005,
		"Si": 0.0001,
		"Al": 0.0001,
		"Bi": 0.0002,
		"Sn": 0.0002,
		"W":  0.00002,
	}, nucleides.Atomic)
	props := mustGroup(
		properties.Constant("density", "kg/m^3", 10000),
		properties.Constant("poissons_ratio", "", 0.33),
	)
	return mustDefComp("PbLi_eutectic", comp, props, neutronics.OpenMC{})
}
