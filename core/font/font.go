package font

import (
	"fmt"
	"os"

	"github.com/npillmayer/banner/core"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Resource locates a font on disk. It is either a single face (Index < 0)
// or the face at Index within a font collection.
type Resource struct {
	Path  string
	Index int
}

// SingleFace is a resource for a font file containing exactly one font.
func SingleFace(path string) Resource {
	return Resource{Path: path, Index: -1}
}

// MultiFace is a resource for the face at position index within a font
// collection file.
func MultiFace(path string, index int) Resource {
	return Resource{Path: path, Index: index}
}

// IsCollection is true for resources pointing into a font collection.
func (res Resource) IsCollection() bool {
	return res.Index >= 0
}

// Exists checks if the resource's file is present.
func (res Resource) Exists() bool {
	fi, err := os.Stat(res.Path)
	return err == nil && !fi.IsDir()
}

func (res Resource) String() string {
	if res.IsCollection() {
		return fmt.Sprintf("%s#%d", res.Path, res.Index)
	}
	return res.Path
}

// ScalableFont is a parsed font, independent of size.
type ScalableFont struct {
	Fontname string
	Resource Resource
	Binary   []byte       // raw data
	SFNT     *sfnt.Font   // the font's container
	Bitmaps  BitmapGlyphs // color bitmaps, nil for outline fonts
}

// TypeCase is a font at a pixel size.
type TypeCase struct {
	scalableFontParent *ScalableFont
	face               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	size               int
}

// LoadScalableFont reads and parses the font a resource points to.
// A missing file results in an error with code EMISSING, a file which
// cannot be parsed in an error with code EINVALID.
func LoadScalableFont(name string, res Resource) (*ScalableFont, error) {
	bytez, err := os.ReadFile(res.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.WrapError(err, core.EMISSING, "font file not found: %s", res.Path)
		}
		return nil, core.WrapError(err, core.EINVALID, "font file cannot be read: %s", res.Path)
	}
	f, err := ParseScalableFont(name, bytez, res.Index)
	if err != nil {
		return nil, err
	}
	f.Resource = res
	return f, nil
}

// ParseScalableFont parses font data. For collections, index selects the
// face; an index < 0 expects a single-face font file, but will accept a
// collection and use its first face.
func ParseScalableFont(name string, fbytes []byte, index int) (*ScalableFont, error) {
	f := &ScalableFont{Fontname: name, Binary: fbytes}
	var err error
	if f.Bitmaps, err = loadColorBitmaps(fbytes, index); err != nil {
		tracer().Debugf("font %s: %v", name, err)
	}
	if index < 0 {
		if f.SFNT, err = sfnt.Parse(fbytes); err == nil {
			f.setNameFromFont()
			return f, nil
		}
		tracer().Debugf("font %s is not a single face font, trying as collection", name)
		index = 0
	}
	var coll *sfnt.Collection
	if coll, err = sfnt.ParseCollection(fbytes); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font %s", name)
	}
	if index >= coll.NumFonts() {
		return nil, core.Error(core.EINVALID, "font collection for %s has %d faces, requested #%d",
			name, coll.NumFonts(), index)
	}
	if f.SFNT, err = coll.Font(index); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse face #%d of font %s", index, name)
	}
	f.setNameFromFont()
	return f, nil
}

func (sf *ScalableFont) setNameFromFont() {
	if sf.Fontname != "" {
		return
	}
	sf.Fontname, _ = sf.SFNT.Name(nil, sfnt.NameIDFull)
}

// PrepareCase derives a typecase at a size given in pixels.
func (sf *ScalableFont) PrepareCase(size int) (*TypeCase, error) {
	if size < 1 {
		tracer().Errorf("font size must be positive, is %d (set to 1px)", size)
		size = 1
	}
	options := &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72, // 1pt = 1px
		Hinting: xfont.HintingNone,
	}
	face, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot create face for font %s at %dpx",
			sf.Fontname, size)
	}
	if sf.Bitmaps != nil {
		face = NewColorFace(face, sf.SFNT, sf.Bitmaps, size)
	}
	return &TypeCase{
		scalableFontParent: sf,
		face:               face,
		size:               size,
	}, nil
}

// ScalableFontParent returns the font a typecase has been derived from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// Face returns the x/image face for drawing and measuring.
func (tc *TypeCase) Face() xfont.Face {
	return tc.face
}

// Size is the pixel size of the typecase.
func (tc *TypeCase) Size() int {
	return tc.size
}

// Ascent is the distance from the top of the line box to the baseline,
// in pixels.
func (tc *TypeCase) Ascent() int {
	return tc.face.Metrics().Ascent.Ceil()
}

// Close releases the underlying face.
func (tc *TypeCase) Close() error {
	if tc == nil || tc.face == nil {
		return nil
	}
	return tc.face.Close()
}
