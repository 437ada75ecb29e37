// Package nucleides models elemental and isotopic material compositions.
// A composition is parsed from a chemical formula or built from a symbol to
// fraction map, and can be expressed as atomic, mass, or volume fractions.
package nucleides

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// NAvogadro is the Avogadro constant in 1/mol (2019 SI redefinition).
const NAvogadro = 6.02214076e23

// FractionType identifies how composition fractions are expressed.
type FractionType string

const (
	Atomic FractionType = "atomic"
	Mass   FractionType = "mass"
	Volume FractionType = "volume"
)

// CompositionError reports a malformed composition input.
type CompositionError struct {
	Input  string
	Rest   string // unparsed remainder, empty unless the formula scan stalled
	Reason string
}

func (e *CompositionError) Error() string {
	if e.Rest != "" {
		return fmt.Sprintf("composition %q: unparsed remainder %q", e.Input, e.Rest)
	}
	return fmt.Sprintf("composition %q: %s", e.Input, e.Reason)
}

// Nuclide identifies an element or a specific isotope.
type Nuclide struct {
	Symbol string // element symbol, e.g. "Fe"
	Z      int
	A      int // mass number; 0 for a natural element
}

// Name returns the symbol with the mass number appended for isotopes,
// e.g. "Fe" or "Li6".
func (n Nuclide) Name() string {
	if n.A == 0 {
		return n.Symbol
	}
	return fmt.Sprintf("%s%d", n.Symbol, n.A)
}

// MassNumber returns the mass number, rounding the standard atomic weight
// for natural elements.
func (n Nuclide) MassNumber() int {
	if n.A != 0 {
		return n.A
	}
	return int(math.Round(elementTable[n.Symbol].weight))
}

// ZAID returns the six digit ZZZAAA nuclide identifier used by MCNP and
// Serpent material cards.
func (n Nuclide) ZAID() string {
	return fmt.Sprintf("%03d%03d", n.Z, n.MassNumber())
}

// AtomicMass returns the isotope mass, or the standard atomic weight for a
// natural element, in unified atomic mass units.
func (n Nuclide) AtomicMass() float64 {
	el := elementTable[n.Symbol]
	if n.A == 0 {
		return el.weight
	}
	for _, iso := range el.isotopes {
		if iso.a == n.A {
			return iso.mass
		}
	}
	// Isotope outside the natural table: the mass number is a close
	// approximation in u.
	return float64(n.A)
}

// ParseSymbol parses an element or isotope symbol such as "Fe" or "Li6".
func ParseSymbol(s string) (Nuclide, error) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	sym, digits := s[:i], s[i:]
	el, ok := elementTable[sym]
	if !ok {
		return Nuclide{}, &CompositionError{Input: s, Reason: fmt.Sprintf("unknown element symbol %q", sym)}
	}
	n := Nuclide{Symbol: sym, Z: el.z}
	if digits != "" {
		a := 0
		for _, c := range digits {
			a = a*10 + int(c-'0')
		}
		if a < el.z {
			return Nuclide{}, &CompositionError{Input: s, Reason: fmt.Sprintf("mass number %d below proton number of %s", a, sym)}
		}
		n.A = a
	}
	return n, nil
}

// Entry pairs a nuclide with its fraction within a composition.
type Entry struct {
	Nuclide  Nuclide
	Fraction float64
}

// Composition is an ordered set of nuclide fractions. The zero value is an
// empty composition. Compositions are immutable once constructed.
type Composition struct {
	entries []Entry
	ftype   FractionType
}

// FromEntries builds a composition from explicit entries, normalising the
// fractions to sum to one. Duplicate nuclides and non-positive fractions are
// rejected.
func FromEntries(entries []Entry, ftype FractionType) (Composition, error) {
	if ftype == "" {
		ftype = Atomic
	}
	seen := make(map[string]bool, len(entries))
	total := 0.0
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		name := e.Nuclide.Name()
		if seen[name] {
			return Composition{}, &CompositionError{Input: name, Reason: "duplicate nuclide"}
		}
		if e.Fraction <= 0 {
			return Composition{}, &CompositionError{Input: name, Reason: fmt.Sprintf("fraction %v is not positive", e.Fraction)}
		}
		if e.Fraction > 1 {
			return Composition{}, &CompositionError{Input: name, Reason: fmt.Sprintf("fraction %v is greater than 1", e.Fraction)}
		}
		seen[name] = true
		total += e.Fraction
		out = append(out, e)
	}
	for i := range out {
		out[i].Fraction /= total
	}
	return Composition{entries: out, ftype: ftype}, nil
}

// FromMap builds a composition from a symbol to fraction map. Symbols may
// name isotopes ("Li6"). Entries are ordered by symbol for determinism.
func FromMap(fractions map[string]float64, ftype FractionType) (Composition, error) {
	symbols := make([]string, 0, len(fractions))
	for sym := range fractions {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	entries := make([]Entry, 0, len(symbols))
	for _, sym := range symbols {
		n, err := ParseSymbol(sym)
		if err != nil {
			return Composition{}, err
		}
		entries = append(entries, Entry{Nuclide: n, Fraction: fractions[sym]})
	}
	return FromEntries(entries, ftype)
}

// Parse parses a chemical formula such as "H2O", "C1Fe12" or nested forms
// like "C(H3(Be2HO4)2)3C2". Counts are atom counts and the result is
// normalised to atomic fractions.
func Parse(formula string) (Composition, error) {
	p := &parser{input: formula, rest: formula}
	counts, order, err := p.group(0)
	if err != nil {
		return Composition{}, err
	}
	if p.rest != "" {
		return Composition{}, &CompositionError{Input: formula, Rest: p.rest}
	}
	if len(order) == 0 {
		return Composition{}, &CompositionError{Input: formula, Reason: "empty formula"}
	}
	total := 0.0
	for _, c := range counts {
		total += c
	}
	entries := make([]Entry, 0, len(order))
	for _, sym := range order {
		n, err := ParseSymbol(sym)
		if err != nil {
			return Composition{}, err
		}
		entries = append(entries, Entry{Nuclide: n, Fraction: counts[sym] / total})
	}
	return Composition{entries: entries, ftype: Atomic}, nil
}

type parser struct {
	input string
	rest  string
}

// group scans one parenthesised group (or, at depth 0, the whole formula)
// and returns aggregated atom counts with symbols in first-seen order.
func (p *parser) group(depth int) (map[string]float64, []string, error) {
	counts := map[string]float64{}
	var order []string
	add := func(sym string, n float64) {
		if _, ok := counts[sym]; !ok {
			order = append(order, sym)
		}
		counts[sym] += n
	}

	for p.rest != "" {
		switch c := p.rest[0]; {
		case c == ')':
			if depth == 0 {
				return counts, order, nil // caller reports the remainder
			}
			p.rest = p.rest[1:]
			mult, err := p.count()
			if err != nil {
				return nil, nil, err
			}
			for sym := range counts {
				counts[sym] *= mult
			}
			return counts, order, nil
		case c == '(':
			p.rest = p.rest[1:]
			inner, innerOrder, err := p.group(depth + 1)
			if err != nil {
				return nil, nil, err
			}
			for _, sym := range innerOrder {
				add(sym, inner[sym])
			}
		case c >= 'A' && c <= 'Z':
			sym := p.symbol()
			if _, ok := elementTable[sym]; !ok {
				return nil, nil, &CompositionError{Input: p.input, Reason: fmt.Sprintf("unknown element symbol %q", sym)}
			}
			n, err := p.count()
			if err != nil {
				return nil, nil, err
			}
			add(sym, n)
		default:
			return counts, order, nil // stall; caller reports the remainder
		}
	}
	if depth > 0 {
		return nil, nil, &CompositionError{Input: p.input, Reason: "unbalanced parentheses"}
	}
	return counts, order, nil
}

func (p *parser) symbol() string {
	i := 1
	for i < len(p.rest) && p.rest[i] >= 'a' && p.rest[i] <= 'z' {
		i++
	}
	sym := p.rest[:i]
	p.rest = p.rest[i:]
	return sym
}

// count scans an explicit atom count. A missing count means 1; an
// explicit count must be positive.
func (p *parser) count() (float64, error) {
	i := 0
	for i < len(p.rest) && p.rest[i] >= '0' && p.rest[i] <= '9' {
		i++
	}
	if i == 0 {
		return 1, nil
	}
	n := 0
	for _, c := range p.rest[:i] {
		n = n*10 + int(c-'0')
	}
	if n == 0 {
		return 0, &CompositionError{Input: p.input, Reason: fmt.Sprintf("count %q must be positive", p.rest[:i])}
	}
	p.rest = p.rest[i:]
	return float64(n), nil
}

// Entries returns a copy of the composition entries in order.
func (c Composition) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// FractionType reports how the fractions are expressed.
func (c Composition) FractionType() FractionType {
	if c.ftype == "" {
		return Atomic
	}
	return c.ftype
}

// Len returns the number of nuclides in the composition.
func (c Composition) Len() int { return len(c.entries) }

// Get returns the entry for the named nuclide ("Fe", "Li6").
func (c Composition) Get(name string) (Entry, bool) {
	for _, e := range c.entries {
		if e.Nuclide.Name() == name {
			return e, true
		}
	}
	return Entry{}, false
}

// MolarMass returns the mean molar mass in g/mol of an atomic-fraction
// composition.
func (c Composition) MolarMass() (float64, error) {
	at, err := c.Atomic()
	if err != nil {
		return 0, err
	}
	m := 0.0
	for _, e := range at.entries {
		m += e.Fraction * e.Nuclide.AtomicMass()
	}
	return m, nil
}

// Atomic returns the composition expressed as atomic fractions.
func (c Composition) Atomic() (Composition, error) {
	switch c.FractionType() {
	case Atomic:
		return c, nil
	case Mass:
		return c.rescale(Atomic, func(e Entry) float64 { return e.Fraction / e.Nuclide.AtomicMass() }), nil
	default:
		return Composition{}, &CompositionError{Input: string(c.ftype), Reason: "volume fractions need densities; use VolumeToMass"}
	}
}

// MassFractions returns the composition expressed as mass fractions.
func (c Composition) MassFractions() (Composition, error) {
	switch c.FractionType() {
	case Mass:
		return c, nil
	case Atomic:
		return c.rescale(Mass, func(e Entry) float64 { return e.Fraction * e.Nuclide.AtomicMass() }), nil
	default:
		return Composition{}, &CompositionError{Input: string(c.ftype), Reason: "volume fractions need densities; use VolumeToMass"}
	}
}

func (c Composition) rescale(ftype FractionType, weight func(Entry) float64) Composition {
	out := make([]Entry, len(c.entries))
	total := 0.0
	for i, e := range c.entries {
		out[i] = Entry{Nuclide: e.Nuclide, Fraction: weight(e)}
		total += out[i].Fraction
	}
	for i := range out {
		out[i].Fraction /= total
	}
	return Composition{entries: out, ftype: ftype}
}

// MassToVolume converts mass fractions to volume fractions given per-symbol
// densities (any consistent unit).
func MassToVolume(c Composition, densities map[string]float64) (Composition, error) {
	if c.FractionType() != Mass {
		return Composition{}, &CompositionError{Input: string(c.ftype), Reason: "MassToVolume needs mass fractions"}
	}
	return convertByDensity(c, densities, Volume, func(f, rho float64) float64 { return f / rho })
}

// VolumeToMass converts volume fractions to mass fractions given per-symbol
// densities.
func VolumeToMass(c Composition, densities map[string]float64) (Composition, error) {
	if c.FractionType() != Volume {
		return Composition{}, &CompositionError{Input: string(c.ftype), Reason: "VolumeToMass needs volume fractions"}
	}
	return convertByDensity(c, densities, Mass, func(f, rho float64) float64 { return f * rho })
}

func convertByDensity(c Composition, densities map[string]float64, ftype FractionType, conv func(f, rho float64) float64) (Composition, error) {
	out := make([]Entry, len(c.entries))
	total := 0.0
	for i, e := range c.entries {
		rho, ok := densities[e.Nuclide.Name()]
		if !ok || rho <= 0 {
			return Composition{}, &CompositionError{Input: e.Nuclide.Name(), Reason: "missing or non-positive density"}
		}
		out[i] = Entry{Nuclide: e.Nuclide, Fraction: conv(e.Fraction, rho)}
		total += out[i].Fraction
	}
	for i := range out {
		out[i].Fraction /= total
	}
	return Composition{entries: out, ftype: ftype}, nil
}

// ExpandNatural expands natural-element entries into their naturally
// occurring isotopes weighted by abundance. Isotope entries pass through.
// The input must be atomic fractions.
func (c Composition) ExpandNatural() (Composition, error) {
	at, err := c.Atomic()
	if err != nil {
		return Composition{}, err
	}
	var out []Entry
	for _, e := range at.entries {
		if e.Nuclide.A != 0 {
			out = append(out, e)
			continue
		}
		el := elementTable[e.Nuclide.Symbol]
		for _, iso := range el.isotopes {
			out = append(out, Entry{
				Nuclide:  Nuclide{Symbol: e.Nuclide.Symbol, Z: el.z, A: iso.a},
				Fraction: e.Fraction * iso.abundance,
			})
		}
	}
	return Composition{entries: out, ftype: Atomic}, nil
}

// CountEntry pairs a nuclide with an integer formula count.
type CountEntry struct {
	Nuclide Nuclide
	Count   int64
}

// Counts returns the smallest-integer formula counts of the composition,
// e.g. {H: 2/3, O: 1/3} -> H:2, O:1. Fractions are rationalised, so
// compositions that are not exact ratios of small integers come out with
// large counts.
func (c Composition) Counts() []CountEntry {
	if len(c.entries) == 0 {
		return nil
	}
	at, err := c.Atomic()
	if err != nil {
		at = c
	}
	nums := make([]int64, len(at.entries))
	dens := make([]int64, len(at.entries))
	lcm := int64(1)
	for i, e := range at.entries {
		nums[i], dens[i] = rationalize(e.Fraction, 10000)
		lcm = lcm / gcd(lcm, dens[i]) * dens[i]
	}
	counts := make([]int64, len(nums))
	g := int64(0)
	for i := range nums {
		counts[i] = nums[i] * (lcm / dens[i])
		g = gcd(g, counts[i])
	}
	out := make([]CountEntry, len(at.entries))
	for i, e := range at.entries {
		out[i] = CountEntry{Nuclide: e.Nuclide, Count: counts[i] / g}
	}
	return out
}

// Formula reconstructs the smallest-integer chemical formula of an
// atomic-fraction composition, e.g. {H: 2/3, O: 1/3} -> "H2O".
func (c Composition) Formula() string {
	var b strings.Builder
	for _, ce := range c.Counts() {
		b.WriteString(ce.Nuclide.Name())
		if ce.Count != 1 {
			fmt.Fprintf(&b, "%d", ce.Count)
		}
	}
	return b.String()
}

func (c Composition) String() string {
	parts := make([]string, len(c.entries))
	for i, e := range c.entries {
		parts[i] = fmt.Sprintf("%s: %g", e.Nuclide.Name(), e.Fraction)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// rationalize returns the best rational approximation n/d of x with d bounded,
// via continued fractions.
func rationalize(x float64, maxDen int64) (int64, int64) {
	if x <= 0 {
		return 0, 1
	}
	var h0, h1 int64 = 1, 0
	var k0, k1 int64 = 0, 1
	r := x
	for i := 0; i < 64; i++ {
		a := int64(math.Floor(r))
		h2 := a*h0 + h1
		k2 := a*k0 + k1
		if k2 > maxDen {
			break
		}
		h0, h1 = h2, h0
		k0, k1 = k2, k0
		frac := r - math.Floor(r)
		if frac < 1e-12 {
			break
		}
		r = 1 / frac
	}
	return h0, k0
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
