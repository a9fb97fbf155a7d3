/*
Package text splits text into runs which can each be drawn with a single font.

Text is first normalized (see Normalize) and then broken into extended
grapheme clusters, following UAX #29. Clusters are never split between
fonts: a font is chosen for a cluster only if it covers every code point of
the cluster. Consecutive clusters drawn with the same font and needing the
same geometric adjustment form a Segment.

A Segmenter is safe for concurrent use, provided the font registry and the
adjustment rules are not modified concurrently.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package text

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'banner.text'.
func tracer() tracing.Trace {
	return tracing.Select("banner.text")
}
