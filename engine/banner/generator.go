package banner

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"strings"

	"github.com/gogpu/gg"
	"github.com/npillmayer/banner/backend/gfx"
	"github.com/npillmayer/banner/core"
	"github.com/npillmayer/banner/core/font/fontregistry"
	"github.com/npillmayer/banner/core/locate/resources"
	"github.com/npillmayer/banner/engine/render"
)

// Request describes the content of a banner. Locations are http(s) URLs
// or local file names.
type Request struct {
	Title      string
	Subtitle   string
	Header     string
	Footer     string
	Suffix     string // smaller text following the title
	Strikeout  bool   // strike through the title
	TitleColor string // hex color, white if empty
	Avatar     string // location of the avatar image, no avatar if empty
	Background string // location of the background image, may be empty
	Theme      string
}

// Result is a generated banner.
type Result struct {
	PNG       []byte
	Image     *image.RGBA
	Usage     *fontregistry.Usage // fonts used for the characters of all texts
	TitleSize int                 // title font size after shrinking
}

// Text sizes in pixels and layout constants.
const (
	TitleSize     = 260
	MinTitleSize  = 50
	SuffixSize    = 100
	SubtitleSize  = 105
	HeaderSize    = 80
	FooterSize    = 70
	StrikeWidth   = 25
	titleGap      = 60  // between avatar and title
	suffixGap     = 20  // between title and suffix
	suffixReserve = 10  // added to the suffix width when fitting the title
	rightMargin   = 100 // of title and suffix
	suffixRaise   = 15
	titleRaise    = 170
)

var secondaryColor = color.NRGBA{R: 230, G: 230, B: 230, A: 255}

// Generator creates banners. It is safe for concurrent use.
type Generator struct {
	conf     Config
	renderer *render.Renderer
}

// NewGenerator creates a generator drawing text with a renderer.
func NewGenerator(conf Config, renderer *render.Renderer) *Generator {
	if renderer == nil {
		renderer = render.NewRenderer(nil)
	}
	return &Generator{conf: conf, renderer: renderer}
}

// Renderer returns the text renderer of the generator.
func (g *Generator) Renderer() *render.Renderer {
	return g.renderer
}

// Config returns the settings of the generator.
func (g *Generator) Config() Config {
	return g.conf
}

// Generate draws a banner and encodes it as PNG.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	themeName := req.Theme
	if themeName == "" {
		themeName = g.conf.Theme
	}
	th := ThemeByName(themeName)
	if g.conf.Overlay != nil {
		th.OverlayOpacity = *g.conf.Overlay
	}
	w, h, d := g.conf.Width, g.conf.Height, g.conf.AvatarDiameter
	tracer().Infof("generating %dx%d banner %q with %s", w, h, req.Title, th)
	var avatar resources.ImagePromise
	if req.Avatar != "" {
		avatar = resources.ResolveImage(ctx, req.Avatar)
	}
	var bg *image.RGBA
	if req.Background != "" {
		bg = LoadBackground(ctx, req.Background, w, h, th)
	} else {
		bg = CreateBackground(w, h, th)
	}
	l := &layout{
		canvas: gfx.CanvasFromImage(bg),
		theme:  th,
		r:      g.renderer,
		usage:  fontregistry.NewUsage(),
	}
	midY := int(float64(h) * 0.4)
	if avatar != nil {
		img, err := avatar.ImageContext(ctx)
		if err != nil {
			return nil, core.WrapError(err, core.Code(err), "avatar %s cannot be loaded", req.Avatar)
		}
		l.canvas.Paste(CircularAvatar(img, d, th), 0, midY-d/2)
	}
	if req.Header != "" {
		if err := l.centered(req.Header, w/2, int(float64(h)*0.08), HeaderSize); err != nil {
			return nil, err
		}
	}
	titleX, titleY := d+titleGap, midY-titleRaise
	size, err := l.fitTitle(req.Title, req.Suffix, w-titleX-rightMargin)
	if err != nil {
		return nil, err
	}
	titleColor := parseColor(req.TitleColor)
	titleW, err := l.draw(req.Title, titleX, titleY, size, titleColor, 3)
	if err != nil {
		return nil, err
	}
	if req.Strikeout && titleW > 0 {
		strikeColor := color.Color(color.NRGBA{R: 192, G: 192, B: 192, A: 255})
		if titleColor == (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
			strikeColor = titleColor
		}
		lineY := titleY + int(float64(size)/1.2)
		l.canvas.FillRect(image.Rect(titleX, lineY-StrikeWidth/2, titleX+titleW, lineY+StrikeWidth-StrikeWidth/2), strikeColor)
	}
	contentEnd := titleX + titleW
	if req.Suffix != "" {
		end, err := l.suffix(req.Suffix, titleX+titleW+suffixGap, titleY, size)
		if err != nil {
			return nil, err
		}
		contentEnd = end
	}
	if req.Subtitle != "" {
		if err := l.centered(req.Subtitle, contentEnd/2, int(float64(h)*0.7), SubtitleSize); err != nil {
			return nil, err
		}
	}
	if req.Footer != "" {
		if err := l.centered(req.Footer, w/2, int(float64(h)*0.85), FooterSize); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if err := l.canvas.WritePNG(&buf); err != nil {
		return nil, err
	}
	tracer().Infof("banner encoded, %d bytes", buf.Len())
	return &Result{
		PNG:       buf.Bytes(),
		Image:     l.canvas.Image(),
		Usage:     l.usage,
		TitleSize: size,
	}, nil
}

// layout holds the state of a single banner during generation.
type layout struct {
	canvas *gfx.Canvas
	theme  Theme
	r      *render.Renderer
	usage  *fontregistry.Usage
}

func (l *layout) draw(txt string, x, y, size int, c color.Color, shadowOffset int) (int, error) {
	w, usage, err := l.r.Render(l.canvas, txt, x, y, render.Options{
		Size:         size,
		Color:        c,
		Shadow:       l.theme.TextShadow,
		ShadowOffset: shadowOffset,
	})
	l.usage.Merge(usage)
	return w, err
}

// centered draws a line of secondary text centered horizontally at x.
func (l *layout) centered(txt string, x, y, size int) error {
	w, err := l.r.Width(l.canvas, txt, size, "")
	if err != nil {
		return err
	}
	_, err = l.draw(txt, x-w/2, y, size, secondaryColor, 2)
	return err
}

// fitTitle shrinks the title font until title and suffix fit into
// maxWidth, or the minimum size is reached.
func (l *layout) fitTitle(title, suffix string, maxWidth int) (int, error) {
	suffixW := 0
	if suffix != "" {
		w, err := l.r.Width(l.canvas, suffix, SuffixSize, "")
		if err != nil {
			return 0, err
		}
		suffixW = w + suffixReserve
	}
	size := TitleSize
	for ; size > MinTitleSize; size-- {
		w, err := l.r.Width(l.canvas, title, size, "")
		if err != nil {
			return 0, err
		}
		if w+suffixW <= maxWidth {
			break
		}
	}
	tracer().Debugf("title size is %dpx", size)
	return size, nil
}

// suffix draws the suffix with its baseline raised slightly above the
// title's baseline. It returns the right end of the suffix.
func (l *layout) suffix(txt string, x, titleY, titleSize int) (int, error) {
	titleBottom, err := l.r.BottomOffset(l.canvas, titleSize)
	if err != nil {
		return 0, err
	}
	suffixBottom, err := l.r.BottomOffset(l.canvas, SuffixSize)
	if err != nil {
		return 0, err
	}
	y := titleY + titleBottom - suffixBottom - suffixRaise
	w, err := l.draw(txt, x, y, SuffixSize, secondaryColor, 2)
	return x + w, err
}

// parseColor reads a hex color; an empty string denotes white.
func parseColor(hex string) color.NRGBA {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return gg.Hex(hex).Color().(color.NRGBA)
}
