// Package matml reads and writes MatML 3.1 material documents. Only bulk
// material details are handled: name, elemental composition, and property
// data. Graphs, glossaries and component hierarchies are out of scope.
package matml

import (
	"encoding/xml"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/nvandessel/matprop/conditions"
	"github.com/nvandessel/matprop/material"
)

// Doc is the root of a MatML document.
type Doc struct {
	XMLName   xml.Name      `xml:"MatMLXML"`
	Materials []MaterialXML `xml:"Material"`
	Metadata  *Metadata     `xml:"Metadata"`
}

// MaterialXML is one material entry.
type MaterialXML struct {
	ID          string      `xml:"id,attr"`
	BulkDetails BulkDetails `xml:"BulkDetails"`
}

// BulkDetails carries the bulk description of a material.
type BulkDetails struct {
	Name             string            `xml:"Name"`
	Characterization *Characterization `xml:"Characterization"`
	PropertyData     []PropertyData    `xml:"PropertyData"`
}

// Characterization describes the chemical makeup of a material.
type Characterization struct {
	Formula             string               `xml:"Formula,omitempty"`
	ChemicalComposition *ChemicalComposition `xml:"ChemicalComposition"`
}

// ChemicalComposition lists elements with formula subscripts.
type ChemicalComposition struct {
	Elements []CompElement `xml:"Element"`
}

// CompElement is one element of a chemical composition.
type CompElement struct {
	Symbol Symbol `xml:"Symbol"`
}

// Symbol is an element symbol with an optional formula subscript.
type Symbol struct {
	Subscript string `xml:"subscript,attr,omitempty"`
	Value     string `xml:",chardata"`
}

// PropertyData holds the values recorded for one property.
type PropertyData struct {
	Property        string           `xml:"property,attr"`
	Delimiter       string           `xml:"delimiter,attr,omitempty"`
	Data            Data             `xml:"Data"`
	ParameterValues []ParameterValue `xml:"ParameterValue"`
}

// Data is a delimited value payload with a format hint.
type Data struct {
	Format string `xml:"format,attr,omitempty"`
	Value  string `xml:",chardata"`
}

// ParameterValue is one parameter's data within a PropertyData block.
// Qualifiers mark values as Dependent or Independent.
type ParameterValue struct {
	Parameter  string   `xml:"parameter,attr"`
	Format     string   `xml:"format,attr,omitempty"`
	Data       string   `xml:"Data"`
	Qualifiers []string `xml:"Qualifier"`
}

// Metadata indexes the property and parameter definitions referenced by
// id from PropertyData blocks.
type Metadata struct {
	ParameterDetails []Details `xml:"ParameterDetails"`
	PropertyDetails  []Details `xml:"PropertyDetails"`
}

// Details names a property or parameter and gives its units.
type Details struct {
	ID       string    `xml:"id,attr"`
	Name     string    `xml:"Name"`
	Units    *Units    `xml:"Units"`
	Unitless *struct{} `xml:"Unitless"`
}

// Units is a product of base units with powers.
type Units struct {
	System string `xml:"system,attr,omitempty"`
	Units  []Unit `xml:"Unit"`
}

// Unit is one base unit raised to a power.
type Unit struct {
	Power string `xml:"power,attr,omitempty"`
	Name  string `xml:"Name"`
}

// Encode marshals the document with an XML header and two-space indent.
func (d *Doc) Encode() ([]byte, error) {
	body, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("matml: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// Export writes the document to a file.
func (d *Doc) Export(path string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("matml: %w", err)
	}
	return nil
}

// Converter renders a material as a MatML document. Conversion evaluates
// every property at the given conditions, so the document records a
// snapshot rather than the full parameterisation.
type Converter struct {
	Delimiter string
}

// Name implements material.Converter.
func (Converter) Name() string { return "matml" }

// Convert implements material.Converter, returning a *Doc.
func (c Converter) Convert(m *material.Material, oc conditions.Operational) (any, error) {
	delim := c.Delimiter
	if delim == "" {
		delim = ","
	}

	bulk := BulkDetails{Name: m.Name()}
	if m.Elements().Len() > 0 {
		bulk.Characterization = characterize(m)
	}

	var meta Metadata
	names := m.Properties().Names()
	sort.Strings(names)
	for i, name := range names {
		v, err := m.Evaluate(name, oc)
		if err != nil {
			return nil, fmt.Errorf("matml: material %q: %w", m.Name(), err)
		}
		prop, err := m.Properties().Get(name)
		if err != nil {
			return nil, err
		}
		prID := fmt.Sprintf("pr%02d", i+1)
		paID := fmt.Sprintf("pa%02d", i+1)
		bulk.PropertyData = append(bulk.PropertyData, PropertyData{
			Property:  prID,
			Delimiter: delim,
			Data:      Data{Format: "string", Value: "-"},
			ParameterValues: []ParameterValue{{
				Parameter:  paID,
				Format:     "float",
				Data:       strconv.FormatFloat(v, 'g', -1, 64),
				Qualifiers: []string{"Dependent"},
			}},
		})
		meta.ParameterDetails = append(meta.ParameterDetails, details(paID, name, prop.Unit()))
		meta.PropertyDetails = append(meta.PropertyDetails, details(prID, name, ""))
	}

	return &Doc{
		Materials: []MaterialXML{{ID: "1", BulkDetails: bulk}},
		Metadata:  &meta,
	}, nil
}

func characterize(m *material.Material) *Characterization {
	counts := m.Elements().Counts()
	char := &Characterization{
		Formula:             m.Elements().Formula(),
		ChemicalComposition: &ChemicalComposition{},
	}
	for _, ce := range counts {
		char.ChemicalComposition.Elements = append(char.ChemicalComposition.Elements, CompElement{
			Symbol: Symbol{Value: ce.Nuclide.Name(), Subscript: strconv.FormatInt(ce.Count, 10)},
		})
	}
	return char
}

// details builds a Details entry from a unit string such as "kg/m^3". An
// empty unit yields a Unitless marker.
func details(id, name, unit string) Details {
	d := Details{ID: id, Name: name}
	if unit == "" || unit == "-" {
		d.Unitless = &struct{}{}
		return d
	}
	d.Units = &Units{System: "SI"}
	for i, tok := range strings.Split(unit, "/") {
		uname, power := tok, 1.0
		if base, exp, ok := strings.Cut(tok, "^"); ok {
			uname = base
			if p, err := strconv.ParseFloat(exp, 64); err == nil {
				power = p
			}
		}
		if uname == "1" {
			continue
		}
		if i > 0 {
			power = -power
		}
		d.Units.Units = append(d.Units.Units, Unit{
			Name:  uname,
			Power: strconv.FormatFloat(power, 'f', 1, 64),
		})
	}
	return d
}

// unitString reconstructs a unit string such as "kg/m^3" from parsed
// Units. The inverse of details for the unit shapes this package emits.
func unitString(u *Units) string {
	if u == nil || len(u.Units) == 0 {
		return ""
	}
	var num, den []string
	for _, unit := range u.Units {
		power := 1.0
		if unit.Power != "" {
			if p, err := strconv.ParseFloat(unit.Power, 64); err == nil {
				power = p
			}
		}
		switch {
		case power > 0 && power != 1:
			num = append(num, fmt.Sprintf("%s^%g", unit.Name, power))
		case power > 0:
			num = append(num, unit.Name)
		case -power != 1:
			den = append(den, fmt.Sprintf("%s^%g", unit.Name, -power))
		default:
			den = append(den, unit.Name)
		}
	}
	s := strings.Join(num, ".")
	if s == "" {
		s = "1"
	}
	for _, d := range den {
		s += "/" + d
	}
	return s
}
