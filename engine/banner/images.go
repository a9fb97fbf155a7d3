package banner

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/gg"
	"github.com/npillmayer/banner/backend/gfx"
	"github.com/npillmayer/banner/core/locate/resources"
	xdraw "golang.org/x/image/draw"
)

// AvatarBorder is the thickness of the solid ring around an avatar.
const AvatarBorder = 15

// CreateBackground generates a background from the colors of a theme.
func CreateBackground(w, h int, th Theme) *image.RGBA {
	gc := gg.NewContext(w, h)
	defer gc.Close()
	gc.ClearWithColor(gg.FromColor(th.Background))
	if th.Gradient {
		grad := gg.NewLinearGradientBrush(0, 0, 0, float64(h)).
			AddColorStop(0, gg.FromColor(th.GradientFrom)).
			AddColorStop(1, gg.FromColor(th.GradientTo))
		gc.SetFillBrush(grad)
		gc.DrawRectangle(0, 0, float64(w), float64(h))
		if err := gc.Fill(); err != nil {
			tracer().Errorf("cannot paint gradient: %v", err)
		}
	}
	return toRGBA(gc.Image())
}

// CoverBackground scales img to cover w × h pixels, keeping its aspect
// ratio, and crops the center. The result is darkened by the theme's
// overlay opacity.
func CoverBackground(img image.Image, w, h int, th Theme) *image.RGBA {
	b := img.Bounds()
	scale := math.Max(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	sw, sh := int(float64(b.Dx())*scale), int(float64(b.Dy())*scale)
	if sw < w {
		sw = w
	}
	if sh < h {
		sh = h
	}
	scaled := image.NewRGBA(image.Rect(0, 0, sw, sh))
	xdraw.CatmullRom.Scale(scaled, scaled.Rect, img, b, xdraw.Src, nil)
	left, top := (sw-w)/2, (sh-h)/2
	c := gfx.NewCanvas(w, h)
	draw.Draw(c.Image(), c.Rect(), scaled, image.Pt(left, top), draw.Src)
	if th.OverlayOpacity > 0 {
		c.FillRect(c.Rect(), color.NRGBA{A: uint8(th.OverlayOpacity.Of(255))})
	}
	return c.Image()
}

// LoadBackground loads a background image from a URL or file and fits it
// with CoverBackground. If loading fails, the theme's generated background
// is returned.
func LoadBackground(ctx context.Context, location string, w, h int, th Theme) *image.RGBA {
	img, err := resources.ResolveImage(ctx, location).ImageContext(ctx)
	if err != nil {
		tracer().Errorf("background %s not loaded, using theme background: %v", location, err)
		return CreateBackground(w, h, th)
	}
	return CoverBackground(img, w, h, th)
}

// CircularAvatar scales img to a circle of the given diameter and draws a
// border in the theme's style. The result has a transparent margin of
// AvatarBorder pixels around the circle, where glow rings may extend to.
func CircularAvatar(img image.Image, diameter int, th Theme) *image.RGBA {
	scaled := image.NewRGBA(image.Rect(0, 0, diameter, diameter))
	xdraw.CatmullRom.Scale(scaled, scaled.Rect, img, img.Bounds(), xdraw.Src, nil)
	total := diameter + 2*AvatarBorder
	c := gfx.NewCanvas(total, total)
	c.PasteMasked(scaled, circleMask(diameter), AvatarBorder, AvatarBorder)
	c.Paste(avatarBorder(diameter, th), 0, 0)
	return c.Image()
}

func circleMask(diameter int) image.Image {
	gc := gg.NewContext(diameter, diameter)
	defer gc.Close()
	r := float64(diameter) / 2
	gc.SetRGBA(1, 1, 1, 1)
	gc.DrawCircle(r, r, r)
	if err := gc.Fill(); err != nil {
		tracer().Errorf("cannot paint avatar mask: %v", err)
	}
	return gc.Image()
}

// avatarBorder paints the rings around an avatar onto a transparent layer.
// Ring geometry is given by the outer radius, rings grow inwards.
func avatarBorder(diameter int, th Theme) image.Image {
	total := diameter + 2*AvatarBorder
	gc := gg.NewContext(total, total)
	defer gc.Close()
	center := float64(total) / 2
	radius := float64(diameter) / 2
	ring := func(outer, width float64, col color.Color) {
		gc.SetColor(col)
		gc.SetLineWidth(width)
		gc.DrawCircle(center, center, outer-width/2)
		if err := gc.Stroke(); err != nil {
			tracer().Errorf("cannot paint avatar border: %v", err)
		}
	}
	bc := th.BorderColor
	switch th.Border {
	case BorderGlow:
		for i := 0; i < 5; i++ {
			glow := bc
			glow.A = uint8(255 * (0.3 - float64(i)*0.05))
			ring(radius+float64(2*i), float64(AvatarBorder+2*i), glow)
		}
	case BorderDouble:
		ring(radius+5, 5, bc)
	}
	ring(radius, AvatarBorder, bc)
	return gc.Image()
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	return gfx.CanvasFromImage(img).Image()
}
