package gfx

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/npillmayer/banner/core"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Canvas is a raster drawing surface. Text positions denote the top left
// corner of the line box, the baseline is one ascent below.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas creates a transparent canvas of w × h pixels.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// CanvasFromImage creates a canvas holding a copy of img, translated to the
// origin.
func CanvasFromImage(img image.Image) *Canvas {
	b := img.Bounds()
	c := NewCanvas(b.Dx(), b.Dy())
	draw.Draw(c.img, c.img.Rect, img, b.Min, draw.Src)
	return c
}

// Image returns the canvas' underlying image. Changes to the image are
// visible on the canvas.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Rect returns the extent of the canvas.
func (c *Canvas) Rect() image.Rectangle {
	return c.img.Rect
}

// ColorFace is a font face with glyphs in color, e.g. emoji. ColorGlyph
// returns the image of a glyph and where to put it for a given dot; ok is
// false for glyphs to be drawn from the face's mask.
type ColorFace interface {
	font.Face
	ColorGlyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, img image.Image, ok bool)
}

// DrawString draws text with a font face, starting at (x, y). Color glyphs
// keep their own colors.
func (c *Canvas) DrawString(face font.Face, text string, x, y int, col color.Color) {
	if text == "" {
		return
	}
	d := c.drawer(face, x, y, col)
	cf, ok := face.(ColorFace)
	if !ok {
		d.DrawString(text)
		return
	}
	prev := rune(-1)
	for _, r := range text {
		if prev >= 0 {
			d.Dot.X += face.Kern(prev, r)
		}
		if dr, img, ok := cf.ColorGlyph(d.Dot, r); ok {
			draw.Draw(c.img, dr, img, img.Bounds().Min, draw.Over)
			adv, _ := face.GlyphAdvance(r)
			d.Dot.X += adv
		} else {
			d.DrawString(string(r))
		}
		prev = r
	}
}

// DrawShadow draws text in a uniform color, starting at (x, y). Color glyphs
// are reduced to their silhouette.
func (c *Canvas) DrawShadow(face font.Face, text string, x, y int, col color.Color) {
	if text == "" {
		return
	}
	d := c.drawer(face, x, y, col)
	d.DrawString(text)
}

func (c *Canvas) drawer(face font.Face, x, y int, col color.Color) *font.Drawer {
	return &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+ascent(face)),
	}
}

// Bounds returns the ink box of text set with face, relative to the text
// position. The box of an empty text is empty.
func (c *Canvas) Bounds(face font.Face, text string) image.Rectangle {
	return InkBounds(face, text)
}

// InkBounds returns the ink box of text set with face, relative to the top
// left corner of the line box.
func InkBounds(face font.Face, text string) image.Rectangle {
	if text == "" {
		return image.Rectangle{}
	}
	b, _ := font.BoundString(face, text)
	asc := ascent(face)
	return image.Rect(b.Min.X.Floor(), b.Min.Y.Floor()+asc, b.Max.X.Ceil(), b.Max.Y.Ceil()+asc)
}

// Advance returns the distance from the start of text to the position where
// text following it is placed: the farther of the right edge of the ink and
// the typographic advance. Spaces at either end of text count.
func (c *Canvas) Advance(face font.Face, text string) int {
	return Advance(face, text)
}

// Advance returns the advance of text set with face, see Canvas.Advance.
func Advance(face font.Face, text string) int {
	if text == "" {
		return 0
	}
	b, adv := font.BoundString(face, text)
	if b.Max.X > adv && !b.Empty() {
		return b.Max.X.Ceil()
	}
	return adv.Ceil()
}

func ascent(face font.Face) int {
	return face.Metrics().Ascent.Ceil()
}

// Paste composites img over the canvas, with the top left corner of img
// placed at (x, y).
func (c *Canvas) Paste(img image.Image, x, y int) {
	b := img.Bounds()
	r := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(c.img, r, img, b.Min, draw.Over)
}

// PasteMasked composites img over the canvas through the alpha channel of
// mask. Mask and image are aligned at their top left corners.
func (c *Canvas) PasteMasked(img image.Image, mask image.Image, x, y int) {
	b := img.Bounds()
	r := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.DrawMask(c.img, r, img, b.Min, mask, mask.Bounds().Min, draw.Over)
}

// FillRect composites a rectangle of uniform color over the canvas.
func (c *Canvas) FillRect(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot encode PNG")
	}
	tracer().Debugf("encoded %dx%d canvas as PNG", c.img.Rect.Dx(), c.img.Rect.Dy())
	return nil
}
