package library

import (
	"github.com/nvandessel/matprop/conditions"
	"github.com/nvandessel/matprop/converters/matml"
	"github.com/nvandessel/matprop/converters/neutronics"
	"github.com/nvandessel/matprop/material"
	"github.com/nvandessel/matprop/properties"
)

// planseeTungsten builds pure sintered tungsten with Plansee datasheet
// values.
func planseeTungsten() *material.Definition {
	props := mustGroup(
		properties.Constant("density", "kg/m^3", 19250),
		properties.Constant("poissons_ratio", "", 0.28),
		properties.Constant("youngs_modulus", "Pa", 4.05e11),
		properties.MustTable("thermal_conductivity", "W/m/K", conditions.Temperature,
			[]float64{293.15, 500, 1000, 1500, 2000},
			[]float64{164, 146, 118, 105, 98}),
		properties.MustTable("coefficient_thermal_expansion", "1/K", conditions.Temperature,
			[]float64{293.15, 500, 1000, 1500, 2000},
			[]float64{4.4e-6, 4.6e-6, 4.8e-6, 5.2e-6, 5.8e-6}),
	)
	return mustDef("PlanseeTungsten", "W", props,
		neutronics.OpenMC{}, neutronics.Serpent{}, neutronics.MCNP{}, matml.Converter{})
}
