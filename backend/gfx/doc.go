/*
Package gfx is the raster backend for banners.

A Canvas wraps an RGBA image and offers the operations the text renderer
and the banner layout need: drawing and measuring text, pasting images and
filling rectangles. All drawing composites with the Porter-Duff "over"
operator.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gfx

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'banner.gfx'.
func tracer() tracing.Trace {
	return tracing.Select("banner.gfx")
}
