/*
Package fontregistry manages an ordered catalogue of fonts and decides which
font renders which piece of text.

The registry holds a priority list of font names. Index 0 is tried first.
A font is available if its file has been found on the host. Available fonts
missing from the priority list are still used, but only after all listed
fonts. Each available font carries its coverage, built once when the font
is registered.

The catalogue of fonts is explicit configuration, see Catalog. A default
catalogue listing common Linux system fonts is compiled in.

Which characters have been rendered with which font is recorded in a Usage,
which is created per rendering call and handed back to the caller.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'banner.fonts'
func tracer() tracing.Trace {
	return tracing.Select("banner.fonts")
}
