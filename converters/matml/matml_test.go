package matml

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvandessel/matprop/conditions"
	"github.com/nvandessel/matprop/material"
	"github.com/nvandessel/matprop/properties"
)

func simpleDef(t *testing.T) *material.Definition {
	t.Helper()
	group, err := properties.NewGroup(
		properties.Constant("density", "kg/m^3", 1),
		properties.Constant("poissons_ratio", "", 0.3),
	)
	if err != nil {
		t.Fatal(err)
	}
	d, err := material.New("Simple", "H2O", group, Converter{})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func testCond(t *testing.T) conditions.Operational {
	t.Helper()
	oc, err := conditions.New(conditions.WithTemperature(300), conditions.WithPressure(1e5))
	if err != nil {
		t.Fatal(err)
	}
	return oc
}

func TestConvert(t *testing.T) {
	out, err := simpleDef(t).Instantiate().Convert("matml", testCond(t))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	doc, ok := out.(*Doc)
	if !ok {
		t.Fatalf("Convert() returned %T, want *Doc", out)
	}

	if len(doc.Materials) != 1 {
		t.Fatalf("Materials = %d, want 1", len(doc.Materials))
	}
	bulk := doc.Materials[0].BulkDetails
	if bulk.Name != "Simple" {
		t.Errorf("Name = %q", bulk.Name)
	}
	if bulk.Characterization == nil || bulk.Characterization.Formula != "H2O" {
		t.Fatalf("Characterization = %+v", bulk.Characterization)
	}
	els := bulk.Characterization.ChemicalComposition.Elements
	if len(els) != 2 || els[0].Symbol.Value != "H" || els[0].Symbol.Subscript != "2" ||
		els[1].Symbol.Value != "O" || els[1].Symbol.Subscript != "1" {
		t.Errorf("composition elements = %+v", els)
	}

	if len(bulk.PropertyData) != 2 {
		t.Fatalf("PropertyData = %+v", bulk.PropertyData)
	}
	density := bulk.PropertyData[0]
	if density.Property != "pr01" || density.Delimiter != "," {
		t.Errorf("density PropertyData = %+v", density)
	}
	if density.Data.Format != "string" || density.Data.Value != "-" {
		t.Errorf("density Data = %+v", density.Data)
	}
	pv := density.ParameterValues[0]
	if pv.Parameter != "pa01" || pv.Format != "float" || pv.Data != "1" {
		t.Errorf("density ParameterValue = %+v", pv)
	}
	if len(pv.Qualifiers) != 1 || pv.Qualifiers[0] != "Dependent" {
		t.Errorf("Qualifiers = %v", pv.Qualifiers)
	}

	if doc.Metadata == nil {
		t.Fatal("missing Metadata")
	}
	pa01 := doc.Metadata.ParameterDetails[0]
	if pa01.ID != "pa01" || pa01.Name != "density" || pa01.Units == nil {
		t.Fatalf("pa01 = %+v", pa01)
	}
	units := pa01.Units.Units
	if len(units) != 2 || units[0].Name != "kg" || units[0].Power != "1.0" ||
		units[1].Name != "m" || units[1].Power != "-3.0" {
		t.Errorf("density units = %+v", units)
	}
	pa02 := doc.Metadata.ParameterDetails[1]
	if pa02.Name != "poissons_ratio" || pa02.Unitless == nil {
		t.Errorf("pa02 = %+v", pa02)
	}
}

func TestRoundTrip(t *testing.T) {
	out, err := simpleDef(t).Instantiate().Convert("matml", testCond(t))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "simple.xml")
	if err := out.(*Doc).Export(path); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "<?xml") {
		t.Error("exported file should start with an XML header")
	}

	def, err := ImportFrom(path)
	if err != nil {
		t.Fatalf("ImportFrom() error = %v", err)
	}
	if def.Name() != "Simple" {
		t.Errorf("Name = %q", def.Name())
	}
	if got := def.Elements().Formula(); got != "H2O" {
		t.Errorf("Formula = %q", got)
	}
	v, err := def.Properties().Evaluate("density", testCond(t))
	if err != nil || v != 1 {
		t.Errorf("density = %v, %v, want 1", v, err)
	}
	v, err = def.Properties().Evaluate("poissons_ratio", testCond(t))
	if err != nil || v != 0.3 {
		t.Errorf("poissons_ratio = %v, %v, want 0.3", v, err)
	}

	// The imported definition can round-trip again.
	if _, err := def.Instantiate().Convert("matml", testCond(t)); err != nil {
		t.Errorf("re-convert error = %v", err)
	}
}

const tabulatedXML = `<?xml version="1.0" encoding="UTF-8"?>
<MatMLXML>
  <Material id="1">
    <BulkDetails>
      <Name>Imported Steel</Name>
      <Characterization>
        <Formula>Fe</Formula>
      </Characterization>
      <PropertyData property="pr01" delimiter=",">
        <Data format="string">-</Data>
        <ParameterValue parameter="pa01" format="float">
          <Data>7850,7800,7750</Data>
          <Qualifier>Dependent</Qualifier>
        </ParameterValue>
        <ParameterValue parameter="pa02" format="float">
          <Data>20,200,400</Data>
          <Qualifier>Independent</Qualifier>
        </ParameterValue>
      </PropertyData>
      <PropertyData property="pr02" delimiter=",">
        <Data format="string">-</Data>
        <ParameterValue parameter="pa03" format="float">
          <Data>460</Data>
          <Qualifier>Dependent</Qualifier>
        </ParameterValue>
      </PropertyData>
      <PropertyData property="pr03" delimiter=",">
        <Data format="string">-</Data>
        <ParameterValue parameter="pa04" format="float">
          <Data>255</Data>
          <Qualifier>Dependent</Qualifier>
        </ParameterValue>
      </PropertyData>
    </BulkDetails>
  </Material>
  <Metadata>
    <ParameterDetails id="pa01">
      <Name>Density</Name>
      <Units system="SI">
        <Unit power="1.0"><Name>kg</Name></Unit>
        <Unit power="-3.0"><Name>m</Name></Unit>
      </Units>
    </ParameterDetails>
    <ParameterDetails id="pa02">
      <Name>Temperature</Name>
      <Units system="SI">
        <Unit power="1.0"><Name>C</Name></Unit>
      </Units>
    </ParameterDetails>
    <ParameterDetails id="pa03">
      <Name>Specific Heat</Name>
      <Units system="SI">
        <Unit power="1.0"><Name>J</Name></Unit>
        <Unit power="-1.0"><Name>kg</Name></Unit>
        <Unit power="-1.0"><Name>K</Name></Unit>
      </Units>
    </ParameterDetails>
    <ParameterDetails id="pa04">
      <Name>Color</Name>
      <Unitless/>
    </ParameterDetails>
    <PropertyDetails id="pr01">
      <Name>Density</Name>
      <Unitless/>
    </PropertyDetails>
    <PropertyDetails id="pr02">
      <Name>Specific Heat</Name>
      <Unitless/>
    </PropertyDetails>
    <PropertyDetails id="pr03">
      <Name>Color</Name>
      <Unitless/>
    </PropertyDetails>
  </Metadata>
</MatMLXML>
`

func TestImportTabulated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steel.xml")
	if err := os.WriteFile(path, []byte(tabulatedXML), 0o644); err != nil {
		t.Fatal(err)
	}

	def, err := ImportFrom(path)
	if err != nil {
		t.Fatalf("ImportFrom() error = %v", err)
	}
	if def.Name() != "Imported Steel" {
		t.Errorf("Name = %q", def.Name())
	}

	p, err := def.Properties().Get("density")
	if err != nil {
		t.Fatal(err)
	}
	if p.Kind() != properties.KindTable {
		t.Fatalf("density kind = %q, want table", p.Kind())
	}

	// 20 C converted to Kelvin.
	oc, err := conditions.New(conditions.WithTemperature(293.15))
	if err != nil {
		t.Fatal(err)
	}
	v, err := def.Properties().Evaluate("density", oc)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(v-7850) > 1e-9 {
		t.Errorf("density at 20 C = %v, want 7850", v)
	}

	// Translated name from Specific Heat.
	v, err = def.Properties().Evaluate("specific_heat_capacity", oc)
	if err != nil || v != 460 {
		t.Errorf("specific_heat_capacity = %v, %v, want 460", v, err)
	}

	// ANSYS default entries are skipped.
	if def.Properties().Has("color") {
		t.Error("Color should be skipped on import")
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ImportFrom(filepath.Join(dir, "missing.xml")); err == nil {
		t.Error("ImportFrom should fail on missing files")
	}

	bad := filepath.Join(dir, "bad.xml")
	if err := os.WriteFile(bad, []byte("<MatMLXML"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ImportFrom(bad)
	if err == nil {
		t.Fatal("ImportFrom should fail on malformed XML")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if perr.Path != bad {
		t.Errorf("ParseError.Path = %q", perr.Path)
	}
}

func TestUnitStringRoundTrip(t *testing.T) {
	tests := []string{"kg/m^3", "J/kg/K", "W/m/K", "Pa"}
	for _, unit := range tests {
		d := details("pa01", "x", unit)
		if got := unitString(d.Units); got != unit {
			t.Errorf("unitString(details(%q)) = %q", unit, got)
		}
	}
}
