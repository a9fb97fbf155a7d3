/*
Package banner composes welcome banners: a background, a circular avatar and
up to five lines of text (header, title with an optional suffix, subtitle
and footer).

The look of a banner is controlled by a Theme. Text is drawn with the font
fallback renderer of package render, so titles may mix scripts and emoji
freely. Every call to Generate reports which fonts have been used for which
characters.

Remote resources (background and avatar) are fetched with the context given
to Generate. A background which cannot be loaded is replaced by the theme's
generated background, a missing avatar is an error.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package banner

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'banner.banner'.
func tracer() tracing.Trace {
	return tracing.Select("banner.banner")
}
