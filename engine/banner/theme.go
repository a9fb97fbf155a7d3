package banner

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/npillmayer/banner/core/percent"
)

// BorderStyle selects how the avatar's border is drawn.
type BorderStyle int

// Border styles. Every style ends with a solid ring.
const (
	BorderSolid  BorderStyle = iota
	BorderGlow               // translucent rings fading outwards
	BorderDouble             // a thin additional ring outside the border
)

func (bs BorderStyle) String() string {
	switch bs {
	case BorderGlow:
		return "glow"
	case BorderDouble:
		return "double"
	}
	return "solid"
}

// Theme is a set of visual properties of a banner.
type Theme struct {
	Name           string
	Background     color.NRGBA
	Gradient       bool
	GradientFrom   color.NRGBA // top of a vertical gradient
	GradientTo     color.NRGBA // bottom of a vertical gradient
	TextShadow     bool
	Border         BorderStyle
	BorderColor    color.NRGBA
	OverlayOpacity percent.Percent // darkening of background images
}

func (th Theme) String() string {
	return fmt.Sprintf("theme[%s border=%s shadow=%v]", th.Name, th.Border, th.TextShadow)
}

// DefaultTheme is the name of the theme used for unknown names.
const DefaultTheme = "default"

func rgb(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

var themeNames = []string{"default", "minimal", "gradient", "dark", "colorful", "gaming", "cute"}

var themes = map[string]Theme{
	"default": {
		Border:      BorderSolid,
		BorderColor: rgb(255, 255, 255),
	},
	"minimal": {
		Background:  rgb(245, 245, 245),
		Border:      BorderSolid,
		BorderColor: rgb(200, 200, 200),
	},
	"gradient": {
		Gradient:       true,
		GradientFrom:   rgb(88, 101, 242),
		GradientTo:     rgb(237, 66, 69),
		TextShadow:     true,
		Border:         BorderGlow,
		BorderColor:    rgb(255, 255, 255),
		OverlayOpacity: 20,
	},
	"dark": {
		Background:  rgb(35, 39, 42),
		TextShadow:  true,
		Border:      BorderDouble,
		BorderColor: rgb(255, 255, 255),
	},
	"colorful": {
		Gradient:       true,
		GradientFrom:   rgb(255, 0, 150),
		GradientTo:     rgb(0, 150, 255),
		TextShadow:     true,
		Border:         BorderGlow,
		BorderColor:    rgb(255, 255, 255),
		OverlayOpacity: 30,
	},
	"gaming": {
		Background:     rgb(20, 20, 20),
		Gradient:       true,
		GradientFrom:   rgb(138, 43, 226),
		GradientTo:     rgb(0, 255, 127),
		TextShadow:     true,
		Border:         BorderGlow,
		BorderColor:    rgb(0, 255, 0),
		OverlayOpacity: 40,
	},
	"cute": {
		Background:     rgb(255, 240, 245),
		Gradient:       true,
		GradientFrom:   rgb(255, 182, 193),
		GradientTo:     rgb(255, 192, 203),
		Border:         BorderDouble,
		BorderColor:    rgb(255, 105, 180),
		OverlayOpacity: 10,
	},
}

// ThemeByName returns a theme. Names are case-insensitive, unknown names
// select the default theme.
func ThemeByName(name string) Theme {
	name = strings.ToLower(strings.TrimSpace(name))
	th, ok := themes[name]
	if !ok {
		if name != "" {
			tracer().Infof("unknown theme %q, using %s", name, DefaultTheme)
		}
		name = DefaultTheme
		th = themes[name]
	}
	th.Name = name
	return th
}

// ThemeNames lists the names of all themes.
func ThemeNames() []string {
	return append([]string(nil), themeNames...)
}
