package font

import (
	"bytes"
	"image"

	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/gogpu/gg/text/emoji"
	"github.com/npillmayer/banner/core"
	xdraw "golang.org/x/image/draw"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

var (
	tagGlyf = ot.MustNewTag("glyf")
	tagCFF  = ot.MustNewTag("CFF ")
	tagCFF2 = ot.MustNewTag("CFF2")
	tagCBDT = ot.MustNewTag("CBDT")
	tagCBLC = ot.MustNewTag("CBLC")
)

func hasOutlines(ld *ot.Loader) bool {
	return ld.HasTable(tagGlyf) || ld.HasTable(tagCFF) || ld.HasTable(tagCFF2)
}

func hasColorBitmaps(ld *ot.Loader) bool {
	return ld.HasTable(tagCBDT) && ld.HasTable(tagCBLC)
}

// BitmapGlyphs yields color bitmaps for glyphs, e.g. from the CBDT table of
// an emoji font.
type BitmapGlyphs interface {
	GetGlyph(glyphID uint16, ppem uint16) (*emoji.BitmapGlyph, error)
}

// loadColorBitmaps extracts the CBDT color bitmaps of a font, if it has any.
// It returns nil for fonts without color bitmaps.
func loadColorBitmaps(fbytes []byte, index int) (BitmapGlyphs, error) {
	lds, err := ot.NewLoaders(bytes.NewReader(fbytes))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read font tables")
	}
	if index < 0 {
		index = 0
	}
	if index >= len(lds) || !hasColorBitmaps(lds[index]) {
		return nil, nil
	}
	ld := lds[index]
	cbdt, err := ld.RawTable(tagCBDT)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read CBDT table")
	}
	cblc, err := ld.RawTable(tagCBLC)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read CBLC table")
	}
	x, err := emoji.NewCBDTExtractor(cbdt, cblc)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse color bitmaps")
	}
	tracer().Debugf("font has color bitmaps at %v ppem", x.AvailablePPEMs())
	return x, nil
}

// ColorFace is a face for fonts with color bitmap glyphs. Glyphs with a
// bitmap are scaled to the size of the face; all other glyphs, and all
// metrics, are taken from the outline face.
//
// As a plain xfont.Face, a ColorFace draws bitmap glyphs as their
// silhouette. ColorGlyph returns the glyph in its own colors.
type ColorFace struct {
	xfont.Face
	sfnt    *sfnt.Font
	bitmaps BitmapGlyphs
	size    int
	buf     sfnt.Buffer
	glyphs  map[rune]*colorGlyph // nil entries for runes without bitmap
}

type colorGlyph struct {
	img    *image.RGBA // origin at (0, 0)
	offset image.Point // top left corner relative to the dot
}

// NewColorFace wraps an outline face of f at size pixels, adding the color
// bitmaps of bitmaps.
func NewColorFace(face xfont.Face, f *sfnt.Font, bitmaps BitmapGlyphs, size int) *ColorFace {
	return &ColorFace{
		Face:    face,
		sfnt:    f,
		bitmaps: bitmaps,
		size:    size,
		glyphs:  make(map[rune]*colorGlyph),
	}
}

func (cf *ColorFace) glyph(r rune) *colorGlyph {
	if g, ok := cf.glyphs[r]; ok {
		return g
	}
	var g *colorGlyph
	defer func() { cf.glyphs[r] = g }()
	gid, err := cf.sfnt.GlyphIndex(&cf.buf, r)
	if err != nil || gid == 0 {
		return nil
	}
	bm, err := cf.bitmaps.GetGlyph(uint16(gid), uint16(cf.size))
	if err != nil {
		return nil
	}
	src, err := bm.Decode()
	if err != nil {
		tracer().Debugf("cannot decode bitmap of glyph %d: %v", gid, err)
		return nil
	}
	scale := 1.0
	if bm.PPEM > 0 {
		scale = float64(cf.size) / float64(bm.PPEM)
	}
	w := int(float64(src.Bounds().Dx())*scale + 0.5)
	h := int(float64(src.Bounds().Dy())*scale + 0.5)
	if w <= 0 || h <= 0 {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Rect, src, src.Bounds(), xdraw.Over, nil)
	g = &colorGlyph{
		img: dst,
		offset: image.Pt(
			int(float64(bm.OriginX)*scale+0.5),
			-int(float64(bm.OriginY)*scale+0.5),
		),
	}
	return g
}

// ColorGlyph returns the bitmap of r, placed for a dot position. ok is false
// for runes without a bitmap glyph.
func (cf *ColorFace) ColorGlyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, img image.Image, ok bool) {
	g := cf.glyph(r)
	if g == nil {
		return image.Rectangle{}, nil, false
	}
	at := image.Pt(dot.X.Round(), dot.Y.Round()).Add(g.offset)
	return g.img.Rect.Add(at), g.img, true
}

// Glyph implements xfont.Face. Bitmap glyphs are returned as a mask.
func (cf *ColorFace) Glyph(dot fixed.Point26_6, r rune) (
	dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	//
	dr, img, ok := cf.ColorGlyph(dot, r)
	if !ok {
		return cf.Face.Glyph(dot, r)
	}
	advance, _ = cf.Face.GlyphAdvance(r)
	return dr, img, image.Point{}, advance, true
}

// GlyphBounds implements xfont.Face.
func (cf *ColorFace) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	g := cf.glyph(r)
	if g == nil {
		return cf.Face.GlyphBounds(r)
	}
	advance, _ = cf.Face.GlyphAdvance(r)
	b := g.img.Rect.Add(g.offset)
	bounds = fixed.R(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
	return bounds, advance, true
}
