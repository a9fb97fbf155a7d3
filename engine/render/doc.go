/*
Package render draws segmented text onto a surface.

Segments of a line of text may use different fonts at different sizes. The
renderer aligns them on a common baseline, which is derived from the
reference font of the registry at the nominal size. For every segment the
bottom of the ink box of "Ay" is compared to the same measure of the
reference font, and the segment is shifted vertically by the difference.

Coordinates are in pixels with the origin at the top left of the surface.
A text position (x, y) denotes the left edge of the text and the top of its
line box, i.e. the baseline lies one ascent below y.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package render

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'banner.text'.
func tracer() tracing.Trace {
	return tracing.Select("banner.text")
}
