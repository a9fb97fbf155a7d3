package fontregistry

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/banner/core"
	"github.com/npillmayer/banner/core/adjust"
	"github.com/npillmayer/banner/core/font"
	"github.com/npillmayer/banner/core/locate/resources"
	"gopkg.in/yaml.v3"
)

// Catalog is the configuration of fonts to use. Fonts are listed in order
// of priority, unless marked as unlisted.
type Catalog struct {
	Fonts []CatalogEntry `yaml:"fonts"`
}

// CatalogEntry configures a font. Path may be absolute or a bare file name,
// which is searched for in the system's font directories. Index selects a
// face within a font collection; it must be omitted for single-face fonts.
// Additional files may be given in Paths, contributing to the coverage of
// the font. UnicodeRange restricts the font to code point ranges, written
// as in CSS: "U+0000-00FF, U+2000-206F".
type CatalogEntry struct {
	Name         string   `yaml:"name"`
	Path         string   `yaml:"path"`
	Index        *int     `yaml:"index,omitempty"`
	Paths        []string `yaml:"paths,omitempty"`
	Unlisted     bool     `yaml:"unlisted,omitempty"`
	UnicodeRange string   `yaml:"unicode_range,omitempty"`
}

// Resources returns the font resources of a catalogue entry, with paths
// located on the host. The second return value is false if none of the
// entry's files has been found.
func (ce CatalogEntry) Resources() ([]font.Resource, bool) {
	var rs []font.Resource
	for _, p := range append([]string{ce.Path}, ce.Paths...) {
		if p == "" {
			continue
		}
		path, err := resources.LocateFont(p)
		if err != nil {
			tracer().Debugf("font %s: %v", ce.Name, err)
			continue
		}
		if ce.Index != nil {
			rs = append(rs, font.MultiFace(path, *ce.Index))
		} else {
			rs = append(rs, font.SingleFace(path))
		}
	}
	return rs, len(rs) > 0
}

//go:embed default_catalog.yaml
var defaultCatalog []byte

// DefaultCatalog returns the compiled-in catalogue of common Linux system
// fonts.
func DefaultCatalog() *Catalog {
	cat, err := ReadCatalog(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic("default font catalogue is corrupt: " + err.Error()) // this cannot happen
	}
	return cat
}

// ReadCatalog decodes a YAML font catalogue.
func ReadCatalog(r io.Reader) (*Catalog, error) {
	cat := &Catalog{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cat); err != nil {
		if err == io.EOF {
			return cat, nil
		}
		return nil, core.WrapError(err, core.EINVALID, "font catalogue cannot be read")
	}
	for i, e := range cat.Fonts {
		if e.Name == "" {
			return nil, core.Error(core.EINVALID, "font catalogue entry #%d has no name", i+1)
		}
		if e.Index != nil && *e.Index < 0 {
			return nil, core.Error(core.EINVALID, "font catalogue entry %s has negative index", e.Name)
		}
		if _, err := ParseUnicodeRange(e.UnicodeRange); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// LoadCatalogFile reads a YAML font catalogue from a file.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.WrapError(err, core.EMISSING, "font catalogue %s not found", path)
		}
		return nil, core.WrapError(err, core.EINVALID, "font catalogue %s cannot be opened", path)
	}
	defer f.Close()
	return ReadCatalog(f)
}

// NewRegistryFromCatalog creates a registry from a catalogue. All listed
// names enter the priority list, fonts not found on the host are listed but
// unavailable.
func NewRegistryFromCatalog(cat *Catalog) *Registry {
	fr := NewRegistry()
	if cat == nil {
		return fr
	}
	for _, ce := range cat.Fonts {
		name := NormalizeFontname(ce.Name)
		rs, found := ce.Resources()
		var ranges []adjust.Range
		if ce.UnicodeRange != "" {
			ranges, _ = ParseUnicodeRange(ce.UnicodeRange) // validated by ReadCatalog
		}
		switch {
		case found:
			fr.register(name, -1, !ce.Unlisted, ranges, rs)
		case !ce.Unlisted:
			fr.SetPriority(name, -1)
		}
	}
	tracer().Infof("%d fonts available, %d fonts in priority list",
		len(fr.Available()), len(fr.PriorityList()))
	return fr
}

// ParseUnicodeRange reads a comma separated list of code points and code
// point ranges in CSS notation, e.g. "U+0000-00FF, U+20AC". An empty string
// yields no ranges.
func ParseUnicodeRange(s string) ([]adjust.Range, error) {
	var ranges []adjust.Range
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.SplitN(part, "-", 2)
		lo, err := adjust.ParseCodePoint(bounds[0])
		if err != nil {
			return nil, err
		}
		hi := lo
		if len(bounds) == 2 {
			h := strings.TrimSpace(bounds[1])
			if u := strings.ToUpper(h); !strings.HasPrefix(u, "U+") && !strings.HasPrefix(u, "0X") {
				h = "U+" + h
			}
			if hi, err = adjust.ParseCodePoint(h); err != nil {
				return nil, err
			}
		}
		if lo > hi {
			return nil, core.Error(core.EINVALID, "invalid unicode range %q", part)
		}
		ranges = append(ranges, adjust.Range{Lo: lo, Hi: hi})
	}
	return ranges, nil
}
