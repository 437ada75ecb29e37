package library

import (
	"github.com/nvandessel/matprop/conditions"
	"github.com/nvandessel/matprop/converters/matml"
	"github.com/nvandessel/matprop/converters/neutronics"
	"github.com/nvandessel/matprop/material"
	"github.com/nvandessel/matprop/nucleides"
	"github.com/nvandessel/matprop/properties"
)

// ss316L builds stainless steel 316L with property correlations from the
// publicly available Choong 1975 report (equations 7, 18, 24 and 30).
func ss316L() *material.Definition {
	temp := func(oc conditions.Operational) float64 {
		t, _ := oc.Temperature()
		return t
	}
	props := mustGroup(
		properties.Func("density", "kg/m^3", func(oc conditions.Operational) float64 {
			t := temp(oc)
			return 8084.2 - 4.2086e-1*t - 3.8942e-5*t*t
		}, conditions.Temperature).WithBounds(conditions.Temperature, properties.Between(300, 1600)),

		// Choong gives the correlation in calories.
		properties.Func("specific_heat_capacity", "J/kg/K", func(oc conditions.Operational) float64 {
			return 4.184 * (0.1097 + 3.174e-5*temp(oc)) * 1e3
		}, conditions.Temperature).WithBounds(conditions.Temperature, properties.Between(300, 1170)),

		properties.Func("coefficient_thermal_expansion", "1/K", func(oc conditions.Operational) float64 {
			t := temp(oc)
			return 1.7887e-5 + 2.3977e-9*t + 3.2692e-13*t*t
		}, conditions.Temperature).WithBounds(conditions.Temperature, properties.Between(300, 1600)),

		properties.Func("thermal_conductivity", "W/m/K", func(oc conditions.Operational) float64 {
			return 9.248 + 1.571e-2*temp(oc)
		}, conditions.Temperature).WithBounds(conditions.Temperature, properties.Between(300, 1600)),
	)
	comp := mustComp(map[string]float64{
		"Fe": 0.70345,
		"C":  0.0003,
		"Cr": 0.17,
		"Ni": 0.105,
		"Mo": 0.02125,
	}, nucleides.Mass)
	return mustDefComp("SS316L", comp, props,
		neutronics.OpenMC{}, neutronics.Serpent{}, neutronics.MCNP{}, matml.Converter{})
}

// ss316LN builds stainless steel 316LN with the density table from ITER
// material handbook data, given against Celsius temperatures.
func ss316LN() *material.Definition {
	tC := []float64{
		20, 50, 100, 150, 200, 250, 300, 350, 400, 450, 500, 550, 600, 650, 700, 750, 800,
	}
	rho := []float64{
		7930, 7919, 7899, 7879, 7858, 7837, 7815, 7793, 7770, 7747, 7724, 7701, 7677,
		7654, 7630, 7606, 7582,
	}
	tK := make([]float64, len(tC))
	for i, t := range tC {
		tK[i] = t + 273.15
	}
	props := mustGroup(
		properties.MustTable("density", "kg/m^3", conditions.Temperature, tK, rho),
	)
	comp := mustComp(map[string]float64{
		"Fe": 0.67845,
		"C":  0.0003,
		"Cr": 0.17,
		"Ni": 0.12,
		"Mo": 0.025,
		"Mn": 0.006,
	}, nucleides.Mass)
	return mustDefComp("SS316LN", comp, props,
		neutronics.OpenMC{}, neutronics.Serpent{}, neutronics.MCNP{}, matml.Converter{})
}
