/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Noto Sans CJK".
A TrueType collection (*.ttc) bundles several fonts of a typeface in one
file.

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Noto Sans CJK KR Bold".

* A "typecase" is a scaled font, i.e. a font in a certain pixel size. The
name is reminiscent of the wooden boxes of typesetters in the era of
metal type.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

A font is located by a Resource, which is either a single-face font file or
a face within a collection file. A font's Coverage is the set of code points
its character map assigns a glyph to.

Scalable fonts are safe to share between goroutines. Typecases are not,
as the underlying x/image faces cache glyph data without locking. Clients
derive a fresh typecase per rendering call.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'banner.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("banner.fonts")
}
