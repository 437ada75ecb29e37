package matml

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/nvandessel/matprop/conditions"
	"github.com/nvandessel/matprop/material"
	"github.com/nvandessel/matprop/nucleides"
	"github.com/nvandessel/matprop/properties"
)

// ParseError reports a MatML document that could not be read.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("matml: parsing %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ansysSkipped lists property names exported by ANSYS that have no
// material-property meaning here.
var ansysSkipped = []string{
	"Color",
	"Magnetic Flux Density",
	"Magnetic Field Intensity",
	"Strain-Life Parameters",
	"Alternating Stress",
}

// nameTranslations maps imported property names onto the canonical names
// used across the library.
var nameTranslations = map[string]string{
	"specific_heat":                    "specific_heat_capacity",
	"tensile_ultimate_strength":        "average_ultimate_tensile_stress",
	"tensile_yield_strength":           "average_yield_stress",
	"coefficient_of_thermal_expansion": "coefficient_thermal_expansion",
	"resistivity":                      "electrical_resistivity",
	"yield_strength":                   "average_yield_stress",
}

// ImportOption adjusts how a document is turned into a definition.
type ImportOption func(*importConfig)

type importConfig struct {
	skip []string
}

// WithSkippedProperties replaces the default ANSYS skip list.
func WithSkippedProperties(names ...string) ImportOption {
	return func(c *importConfig) { c.skip = names }
}

// Decode parses a MatML document from bytes.
func Decode(data []byte) (*Doc, error) {
	var doc Doc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ImportFrom reads a MatML file and builds a material definition from its
// first material entry. Properties with a single dependent value become
// constants; dependent series paired with an independent parameter that
// names an operating condition become interpolation tables. The returned
// definition carries a matml converter so it can round-trip.
func ImportFrom(path string, opts ...ImportOption) (*material.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	def, err := doc.ToDefinition(opts...)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return def, nil
}

// ToDefinition builds a material definition from the document.
func (d *Doc) ToDefinition(opts ...ImportOption) (*material.Definition, error) {
	cfg := importConfig{skip: ansysSkipped}
	for _, opt := range opts {
		opt(&cfg)
	}
	skip := make(map[string]bool, len(cfg.skip))
	for _, s := range cfg.skip {
		skip[s] = true
	}

	if len(d.Materials) == 0 {
		return nil, fmt.Errorf("document has no materials")
	}
	if len(d.Materials) > 1 {
		return nil, fmt.Errorf("document has %d materials; fractional mixing of imports is not supported", len(d.Materials))
	}
	mat := d.Materials[0]

	comp, err := importComposition(mat.BulkDetails.Characterization)
	if err != nil {
		return nil, err
	}

	propDetails, paramDetails := d.detailsIndex()

	var props []properties.Property
	for _, pd := range mat.BulkDetails.PropertyData {
		det, ok := propDetails[pd.Property]
		if !ok || skip[det.Name] {
			continue
		}
		name := translate(snakeCase(det.Name))
		p, ok, err := importProperty(name, pd, paramDetails, skip)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", det.Name, err)
		}
		if ok {
			props = append(props, p)
		}
	}
	group, err := properties.NewGroup(props...)
	if err != nil {
		return nil, err
	}
	return material.NewFromComposition(mat.BulkDetails.Name, comp, group, Converter{})
}

func (d *Doc) detailsIndex() (props, params map[string]Details) {
	props = make(map[string]Details)
	params = make(map[string]Details)
	if d.Metadata == nil {
		return props, params
	}
	for _, det := range d.Metadata.PropertyDetails {
		props[det.ID] = det
	}
	for _, det := range d.Metadata.ParameterDetails {
		params[det.ID] = det
	}
	return props, params
}

func importComposition(char *Characterization) (nucleides.Composition, error) {
	if char == nil {
		return nucleides.Composition{}, nil
	}
	formula := char.Formula
	if formula == "" && char.ChemicalComposition != nil {
		var b strings.Builder
		for _, el := range char.ChemicalComposition.Elements {
			b.WriteString(el.Symbol.Value)
			if s := el.Symbol.Subscript; s != "" && s != "1" {
				b.WriteString(s)
			}
		}
		formula = b.String()
	}
	if formula == "" {
		return nucleides.Composition{}, nil
	}
	return nucleides.Parse(formula)
}

// series is one parameter's values within a property data block.
type series struct {
	values []float64
	unit   string
}

func importProperty(name string, pd PropertyData, params map[string]Details, skip map[string]bool) (properties.Property, bool, error) {
	var dep, indep *series
	var indepName string
	for _, pv := range pd.ParameterValues {
		det, ok := params[pv.Parameter]
		if !ok || skip[det.Name] {
			continue
		}
		values, err := parseData(pv, pd.Delimiter)
		if err != nil {
			return properties.Property{}, false, err
		}
		s := &series{values: values, unit: unitString(det.Units)}
		switch {
		case hasQualifier(pv, "Dependent"):
			dep = s
		case hasQualifier(pv, "Independent"):
			indep = s
			indepName = translate(snakeCase(det.Name))
		}
	}
	if dep == nil || len(dep.values) == 0 {
		return properties.Property{}, false, nil
	}

	unit := dep.unit
	if unit == "" {
		if u, ok := properties.UnitFor(name); ok {
			unit = u
		}
	}

	if len(dep.values) == 1 && indep == nil {
		return properties.Constant(name, unit, dep.values[0]), true, nil
	}
	if indep == nil {
		return properties.Property{}, false, fmt.Errorf("series of %d values with no independent parameter", len(dep.values))
	}
	if len(indep.values) != len(dep.values) {
		return properties.Property{}, false, fmt.Errorf("%d values against %d abscissae", len(dep.values), len(indep.values))
	}

	field := conditions.Field(indepName)
	if !fieldKnown(field) {
		slog.Warn("skipping property with unrecognised independent parameter",
			"property", name, "parameter", indepName)
		return properties.Property{}, false, nil
	}
	xs := append([]float64(nil), indep.values...)
	if field == conditions.Temperature && indep.unit == "C" {
		for i := range xs {
			xs[i] += 273.15
		}
	}
	p, err := properties.Table(name, unit, field, xs, dep.values)
	if err != nil {
		return properties.Property{}, false, err
	}
	return p, true, nil
}

func fieldKnown(f conditions.Field) bool {
	for _, known := range conditions.Fields() {
		if known == f {
			return true
		}
	}
	return false
}

func hasQualifier(pv ParameterValue, q string) bool {
	for _, have := range pv.Qualifiers {
		if have == q {
			return true
		}
	}
	return false
}

// parseData splits a delimited payload and parses each value per the
// declared format. The exponential format stores base-10 exponents.
func parseData(pv ParameterValue, delimiter string) ([]float64, error) {
	raw := []string{pv.Data}
	if delimiter != "" {
		raw = strings.Split(pv.Data, delimiter)
	}
	out := make([]float64, 0, len(raw))
	for _, s := range raw {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", pv.Parameter, err)
		}
		if pv.Format == "exponential" {
			v = math.Pow(10, v)
		}
		out = append(out, v)
	}
	return out, nil
}

// snakeCase lowercases an imported name and joins words with underscores.
func snakeCase(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "'", "")
	name = strings.ReplaceAll(name, "-", "_")
	return strings.Join(strings.Fields(name), "_")
}

func translate(name string) string {
	if t, ok := nameTranslations[name]; ok {
		return t
	}
	return name
}
