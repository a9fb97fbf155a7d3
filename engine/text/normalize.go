package text

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Normalize prepares text for segmentation:
//
//   - ill-formed UTF-8 is replaced by U+FFFD
//   - surrogates and private use characters are removed
//   - tab, line feed, vertical tab and carriage return become spaces,
//     all other control characters are removed
//   - zero width space, zero width non-joiner and the byte order mark are
//     removed. The zero width joiner is kept, as it glues emoji sequences.
//
// Normalization never fails.
func Normalize(s string) string {
	t := transform.Chain(
		runes.ReplaceIllFormed(),
		runes.Remove(runes.In(unicode.Cs)),
		runes.Remove(runes.In(unicode.Co)),
		runes.Map(controlToSpace),
		runes.Remove(runes.In(unicode.Cc)),
		runes.Remove(runes.Predicate(isInvisible)),
	)
	n, _, err := transform.String(t, s)
	if err != nil { // cannot happen with in-memory strings
		tracer().Errorf("normalizing text: %v", err)
	}
	return n
}

func controlToSpace(r rune) rune {
	switch r {
	case '\t', '\n', '\v', '\r':
		return ' '
	}
	return r
}

func isInvisible(r rune) bool {
	switch r {
	case '\u200B', '\u200C', '\uFEFF': // ZWSP, ZWNJ, BOM
		return true
	}
	return false
}
