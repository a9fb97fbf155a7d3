/*
Package adjust holds per-character geometric corrections.

Some Unicode blocks are drawn noticeably too small or sitting too high by
most fonts covering them, the mathematical alphanumeric symbols being the
prominent example. An Adjustment scales the font size used for such
characters and moves them by a percentage of the nominal font size.

A RuleSet maps characters to adjustments. Rules are consulted in a fixed
order: exact code point first, then code point ranges in the order they
have been added, then Unicode general categories. The first hit wins;
rules are never combined implicitly. Clients wanting to combine two
adjustments call Merge explicitly.

A RuleSet is not safe for concurrent modification. It is meant to be set
up once at startup and then shared read-only.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package adjust

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'banner.text'.
func tracer() tracing.Trace {
	return tracing.Select("banner.text")
}
