package adjust

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/banner/core"
)

// Range is an inclusive range of code points.
type Range struct {
	Lo, Hi rune
}

// Contains is true if r is in [Lo…Hi].
func (rg Range) Contains(r rune) bool {
	return rg.Lo <= r && r <= rg.Hi
}

type rangeRule struct {
	Range
	adj Adjustment
}

// RuleSet maps characters to adjustments. The zero value is not usable,
// use NewRuleSet or DefaultRuleSet.
type RuleSet struct {
	chars      map[rune]Adjustment
	ranges     []rangeRule // ordered, first match wins
	categories map[string]Adjustment
}

// NewRuleSet creates an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{
		chars:      make(map[rune]Adjustment),
		categories: make(map[string]Adjustment),
	}
}

// DefaultRuleSet creates a rule set pre-populated with corrections for the
// bold and bold-italic mathematical alphanumerics and for Fraktur.
func DefaultRuleSet() *RuleSet {
	rs := NewRuleSet()
	rs.ranges = append(rs.ranges, defaultRanges...)
	return rs
}

var defaultRanges = []rangeRule{
	{Range{0x1D468, 0x1D481}, Adjustment{Scale: 1.18, OffsetY: 8}}, // bold italic
	{Range{0x1D482, 0x1D49B}, Adjustment{Scale: 1.14, OffsetY: 8}}, // bold italic small
	{Range{0x1D504, 0x1D51D}, Adjustment{Scale: 1.10}},              // Fraktur capitals
	{Range{0x1D51E, 0x1D537}, Adjustment{Scale: 1.10}},              // Fraktur small
}

// AddCharRule sets the adjustment for a single code point, replacing an
// existing one.
func (rs *RuleSet) AddCharRule(r rune, adj Adjustment) error {
	if err := validate(adj); err != nil {
		return err
	}
	rs.chars[r] = adj
	return nil
}

// AddRangeRule appends a range rule. Ranges added earlier take precedence
// over ranges added later.
func (rs *RuleSet) AddRangeRule(lo, hi rune, adj Adjustment) error {
	if lo > hi {
		return core.Error(core.EINVALID, "invalid code point range %U…%U", lo, hi)
	}
	if err := validate(adj); err != nil {
		return err
	}
	rs.ranges = append(rs.ranges, rangeRule{Range{lo, hi}, adj})
	return nil
}

// AddCategoryRule sets the adjustment for a Unicode general category, given
// by its short name ("Lu", "So", …) or major class ("L", "S", …).
func (rs *RuleSet) AddCategoryRule(category string, adj Adjustment) error {
	if _, ok := unicode.Categories[category]; !ok {
		return core.Error(core.EINVALID, "unknown Unicode category %q", category)
	}
	if err := validate(adj); err != nil {
		return err
	}
	rs.categories[category] = adj
	return nil
}

func validate(adj Adjustment) error {
	if adj.Scale < 0 {
		return core.Error(core.EINVALID, "adjustment scale must not be negative: %g", adj.Scale)
	}
	return nil
}

// Lookup finds the adjustment for r. The second return value is false if
// no rule applies, which is different from an identity adjustment.
func (rs *RuleSet) Lookup(r rune) (Adjustment, bool) {
	if rs == nil {
		return Identity, false
	}
	if adj, ok := rs.chars[r]; ok {
		return adj, true
	}
	for _, rr := range rs.ranges {
		if rr.Contains(r) {
			return rr.adj, true
		}
	}
	if len(rs.categories) > 0 {
		if cat := Category(r); cat != "" {
			if adj, ok := rs.categories[cat]; ok {
				return adj, true
			}
			if adj, ok := rs.categories[cat[:1]]; ok {
				return adj, true
			}
		}
	}
	return Identity, false
}

// LookupCluster finds the adjustment for a grapheme cluster, which is the
// adjustment of its first code point.
func (rs *RuleSet) LookupCluster(cluster string) (Adjustment, bool) {
	if cluster == "" {
		return Identity, false
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return rs.Lookup(r)
}

// Ranges returns the range rules in order of precedence.
func (rs *RuleSet) Ranges() []Range {
	rgs := make([]Range, len(rs.ranges))
	for i, rr := range rs.ranges {
		rgs[i] = rr.Range
	}
	return rgs
}

// --- Unicode categories ----------------------------------------------------

var twoLetterCategories []string

func init() {
	for name := range unicode.Categories {
		if len(name) == 2 && name != "LC" { // LC overlaps Lu, Ll and Lt
			twoLetterCategories = append(twoLetterCategories, name)
		}
	}
	sort.Strings(twoLetterCategories)
}

// Category returns the two-letter Unicode general category of r.
func Category(r rune) string {
	for _, name := range twoLetterCategories {
		if unicode.Is(unicode.Categories[name], r) {
			return name
		}
	}
	return ""
}

// --- Configuration ---------------------------------------------------------

// RuleSpec is the configuration form of a rule. Exactly one of Char,
// From/To or Category selects the characters. Code points are given as
// "U+1D468", "0x1D468" or as the literal character.
type RuleSpec struct {
	Char     string  `yaml:"char,omitempty"`
	From     string  `yaml:"from,omitempty"`
	To       string  `yaml:"to,omitempty"`
	Category string  `yaml:"category,omitempty"`
	Scale    float64 `yaml:"scale"`
	OffsetX  float64 `yaml:"offset_x,omitempty"`
	OffsetY  float64 `yaml:"offset_y,omitempty"`
}

// Load adds rules from configuration, in order. A scale of 0 is read as 1.
func (rs *RuleSet) Load(specs []RuleSpec) error {
	for i, spec := range specs {
		adj := Adjustment{Scale: spec.Scale, OffsetX: spec.OffsetX, OffsetY: spec.OffsetY}
		if adj.Scale == 0 {
			adj.Scale = 1
		}
		var err error
		switch {
		case spec.Char != "":
			var r rune
			if r, err = ParseCodePoint(spec.Char); err == nil {
				err = rs.AddCharRule(r, adj)
			}
		case spec.From != "":
			to := spec.To
			if to == "" {
				to = spec.From
			}
			var lo, hi rune
			if lo, err = ParseCodePoint(spec.From); err == nil {
				if hi, err = ParseCodePoint(to); err == nil {
					err = rs.AddRangeRule(lo, hi, adj)
				}
			}
		case spec.Category != "":
			err = rs.AddCategoryRule(spec.Category, adj)
		default:
			err = core.Error(core.EINVALID, "adjustment rule #%d selects no characters", i+1)
		}
		if err != nil {
			return err
		}
		tracer().Debugf("adjustment rule #%d loaded: %s", i+1, adj)
	}
	return nil
}

// ParseCodePoint reads a code point in one of the notations "U+1D468",
// "0x1D468" or as a single literal character.
func ParseCodePoint(s string) (rune, error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "U+") || strings.HasPrefix(upper, "0X") {
		n, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil || n > unicode.MaxRune {
			return 0, core.WrapError(err, core.EINVALID, "invalid code point %q", s)
		}
		return rune(n), nil
	}
	if r, size := utf8.DecodeRuneInString(s); size > 0 && size == len(s) && r != utf8.RuneError {
		return r, nil
	}
	return 0, core.Error(core.EINVALID, "invalid code point %q", s)
}
