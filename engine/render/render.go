package render

import (
	"image"
	"image/color"

	"github.com/npillmayer/banner/core"
	"github.com/npillmayer/banner/core/font"
	"github.com/npillmayer/banner/core/font/fontregistry"
	"github.com/npillmayer/banner/engine/text"
	xfont "golang.org/x/image/font"
)

// Measurer measures text set with a font face. Bounds returns the ink box
// relative to the text position, see the package documentation. Advance
// returns the horizontal distance to the text following, including spaces
// at either end.
type Measurer interface {
	Bounds(face xfont.Face, text string) image.Rectangle
	Advance(face xfont.Face, text string) int
}

// Surface is a drawing target for text. DrawShadow draws in a uniform color,
// even for color glyphs.
type Surface interface {
	Measurer
	DrawString(face xfont.Face, text string, x, y int, c color.Color)
	DrawShadow(face xfont.Face, text string, x, y int, c color.Color)
}

// BaselineProbe is the text used to find the baseline offset of a face.
const BaselineProbe = "Ay"

// ShadowColor is the color of text shadows.
var ShadowColor = color.NRGBA{R: 0, G: 0, B: 0, A: 128}

// Options control the rendering of a line of text.
type Options struct {
	Size         int         // nominal font size in pixels
	Color        color.Color // text color, defaults to white
	Shadow       bool        // draw a shadow below the text
	ShadowOffset int         // shadow displacement, defaults to 2
	Preferred    string      // name of the preferred font, may be empty
}

// Renderer draws text with font fallback. A Renderer is safe for concurrent
// use as long as every call uses its own surface.
type Renderer struct {
	segmenter *text.Segmenter
}

// NewRenderer creates a renderer on top of a segmenter.
func NewRenderer(segmenter *text.Segmenter) *Renderer {
	if segmenter == nil {
		segmenter = text.NewSegmenter(nil, nil)
	}
	return &Renderer{segmenter: segmenter}
}

// Segmenter returns the segmenter of the renderer.
func (r *Renderer) Segmenter() *text.Segmenter {
	return r.segmenter
}

// Render draws txt at (x, y) and returns the horizontal advance, together
// with the fonts used for the characters of txt.
//
// If a font selected for a segment cannot be loaded, the next font in
// priority order is used instead. If no font at all can be loaded, Render
// fails with error code ENOFONT.
func (r *Renderer) Render(s Surface, txt string, x, y int, opts Options) (int, *fontregistry.Usage, error) {
	if opts.Color == nil {
		opts.Color = color.White
	}
	if opts.ShadowOffset == 0 {
		opts.ShadowOffset = 2
	}
	segments, usage := r.segmenter.Segment(txt, opts.Size, opts.Preferred)
	if len(segments) == 0 {
		return 0, usage, nil
	}
	cases := newCaseCache(r.segmenter.Registry())
	defer cases.close()
	ref, err := cases.reference(opts.Size)
	if err != nil {
		return 0, usage, err
	}
	refBaseline := s.Bounds(ref.Face(), BaselineProbe).Max.Y
	cursor := x
	for _, seg := range segments {
		tc, err := cases.get(seg.Font, seg.Size)
		if err != nil {
			return cursor - x, usage, err
		}
		face := tc.Face()
		sx, sy := seg.Adjustment.ApplyToPosition(cursor, y, opts.Size)
		sy += refBaseline - s.Bounds(face, BaselineProbe).Max.Y
		if opts.Shadow {
			s.DrawShadow(face, seg.Text, sx+opts.ShadowOffset, sy+opts.ShadowOffset, ShadowColor)
		}
		s.DrawString(face, seg.Text, sx, sy, opts.Color)
		cursor += s.Advance(face, seg.Text)
		tracer().Debugf("rendered %s at (%d,%d)", seg, sx, sy)
	}
	return cursor - x, usage, nil
}

// Width returns the horizontal advance Render would produce for txt,
// without drawing anything.
func (r *Renderer) Width(m Measurer, txt string, size int, preferred string) (int, error) {
	segments, _ := r.segmenter.Segment(txt, size, preferred)
	if len(segments) == 0 {
		return 0, nil
	}
	cases := newCaseCache(r.segmenter.Registry())
	defer cases.close()
	width := 0
	for _, seg := range segments {
		tc, err := cases.get(seg.Font, seg.Size)
		if err != nil {
			return width, err
		}
		width += m.Advance(tc.Face(), seg.Text)
	}
	return width, nil
}

// BottomOffset returns the bottom of the ink box of BaselineProbe, set with
// the reference font at a given size.
func (r *Renderer) BottomOffset(m Measurer, size int) (int, error) {
	tc, _, err := r.segmenter.Registry().Resolve(size)
	if err != nil {
		return 0, err
	}
	defer tc.Close()
	return m.Bounds(tc.Face(), BaselineProbe).Max.Y, nil
}

// --- Type case cache -------------------------------------------------------

// caseCache holds the faces used during a single call. Faces are not safe
// for concurrent use and are never shared between calls.
type caseCache struct {
	registry *fontregistry.Registry
	cases    map[caseKey]*font.TypeCase
}

type caseKey struct {
	font string
	size int
}

func newCaseCache(registry *fontregistry.Registry) *caseCache {
	return &caseCache{registry: registry, cases: make(map[caseKey]*font.TypeCase)}
}

func (cc *caseCache) get(name string, size int) (*font.TypeCase, error) {
	key := caseKey{font: name, size: size}
	if tc, ok := cc.cases[key]; ok {
		return tc, nil
	}
	tc, used, err := cc.registry.TypeCaseOrFallback(name, size)
	if err != nil {
		return nil, core.WrapError(err, core.ENOFONT, "cannot render text at %dpx", size)
	}
	if used != name {
		tracer().Infof("segment font %q replaced by %q", name, used)
	}
	cc.cases[key] = tc
	return tc, nil
}

func (cc *caseCache) reference(size int) (*font.TypeCase, error) {
	return cc.get("", size)
}

func (cc *caseCache) close() {
	for _, tc := range cc.cases {
		tc.Close()
	}
}
