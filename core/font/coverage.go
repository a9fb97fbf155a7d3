package font

import (
	"bytes"
	"os"
	"sort"
	"unicode/utf8"

	gotext "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/banner/core"
)

// Coverage is the set of code points a font maps to a glyph. The zero value
// is an empty coverage. A Coverage is immutable once built and may be
// shared between goroutines.
type Coverage struct {
	runes map[rune]struct{}
}

// Supports is true if the font has a glyph for r.
func (c Coverage) Supports(r rune) bool {
	_, ok := c.runes[r]
	return ok
}

// SupportsCluster is true if every code point of a grapheme cluster is
// covered.
func (c Coverage) SupportsCluster(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !c.Supports(r) {
			return false
		}
	}
	return true
}

// Len returns the number of code points covered.
func (c Coverage) Len() int {
	return len(c.runes)
}

// IsEmpty is true for fonts without any usable character mapping.
func (c Coverage) IsEmpty() bool {
	return len(c.runes) == 0
}

// Union returns a coverage holding the code points of c and other.
func (c Coverage) Union(other Coverage) Coverage {
	u := Coverage{runes: make(map[rune]struct{}, len(c.runes)+len(other.runes))}
	for r := range c.runes {
		u.runes[r] = struct{}{}
	}
	for r := range other.runes {
		u.runes[r] = struct{}{}
	}
	return u
}

// Restrict returns a coverage holding the code points of c for which keep
// is true.
func (c Coverage) Restrict(keep func(rune) bool) Coverage {
	rc := Coverage{runes: make(map[rune]struct{})}
	for r := range c.runes {
		if keep(r) {
			rc.runes[r] = struct{}{}
		}
	}
	return rc
}

// Runes returns the covered code points in ascending order.
func (c Coverage) Runes() []rune {
	rs := make([]rune, 0, len(c.runes))
	for r := range c.runes {
		rs = append(rs, r)
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return rs
}

// NewCoverage creates a coverage from a list of code points.
func NewCoverage(runes ...rune) Coverage {
	c := Coverage{runes: make(map[rune]struct{}, len(runes))}
	for _, r := range runes {
		c.runes[r] = struct{}{}
	}
	return c
}

// LoadCoverage reads the character map of the font a resource points to.
// All subtables of the font's cmap contribute to the coverage.
func LoadCoverage(res Resource) (Coverage, error) {
	bytez, err := os.ReadFile(res.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Coverage{}, core.WrapError(err, core.EMISSING, "font file not found: %s", res.Path)
		}
		return Coverage{}, core.WrapError(err, core.EINVALID, "font file cannot be read: %s", res.Path)
	}
	return ParseCoverage(bytez, res.Index)
}

// ParseCoverage reads the character map from font data. For collections,
// index selects the face; index < 0 denotes a single-face font, but a
// collection is accepted and its first face used.
//
// Fonts without glyphs which can be drawn, i.e. without outlines and
// without CBDT color bitmaps, have an empty coverage.
func ParseCoverage(fbytes []byte, index int) (Coverage, error) {
	lds, err := ot.NewLoaders(bytes.NewReader(fbytes))
	if err != nil {
		return Coverage{}, core.WrapError(err, core.EINVALID, "cannot parse font")
	}
	if index < 0 {
		if len(lds) > 1 {
			tracer().Debugf("font is a collection, using first face")
		}
		index = 0
	}
	if index >= len(lds) {
		return Coverage{}, core.Error(core.EINVALID,
			"font collection has %d faces, requested #%d", len(lds), index)
	}
	ld := lds[index]
	if !hasOutlines(ld) && !hasColorBitmaps(ld) {
		tracer().Infof("font has no drawable glyphs, tables: %v", ld.Tables())
		return Coverage{}, nil
	}
	f, err := gotext.NewFont(ld)
	if err != nil {
		return Coverage{}, core.WrapError(err, core.EINVALID, "cannot parse character map")
	}
	face := gotext.NewFace(f)
	c := Coverage{runes: make(map[rune]struct{})}
	if face.Cmap == nil {
		return c, nil
	}
	iter := face.Cmap.Iter()
	for iter.Next() {
		r, gid := iter.Char()
		if gid == 0 || !utf8.ValidRune(r) {
			continue // .notdef
		}
		c.runes[r] = struct{}{}
	}
	tracer().Debugf("character map covers %d code points", len(c.runes))
	return c, nil
}
