package fontregistry

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Usage records which font has been chosen for which code point, and which
// code points no font could render. A Usage belongs to a single rendering
// call and is not safe for concurrent use. All methods accept a nil Usage
// and do nothing in this case.
type Usage struct {
	supported   *treemap.Map // rune → font name, first font recorded wins
	unsupported *treeset.Set // of runes
}

// NewUsage creates an empty usage record.
func NewUsage() *Usage {
	return &Usage{
		supported:   treemap.NewWith(utils.RuneComparator),
		unsupported: treeset.NewWith(utils.RuneComparator),
	}
}

// RecordSupported notes that r is supported by a font, unless r has been
// recorded for a different font before.
func (u *Usage) RecordSupported(r rune, fontname string) {
	if u == nil {
		return
	}
	if _, found := u.supported.Get(r); !found {
		u.supported.Put(r, fontname)
	}
}

// RecordUnsupported notes that no font covers r.
func (u *Usage) RecordUnsupported(r rune) {
	if u == nil {
		return
	}
	u.unsupported.Add(r)
}

// FontFor returns the font recorded for r.
func (u *Usage) FontFor(r rune) (string, bool) {
	if u == nil {
		return "", false
	}
	v, found := u.supported.Get(r)
	if !found {
		return "", false
	}
	return v.(string), true
}

// IsUnsupported is true if r has been recorded as not covered by any font.
func (u *Usage) IsUnsupported(r rune) bool {
	if u == nil {
		return false
	}
	return u.unsupported.Contains(r)
}

// Supported returns the supported code points in ascending order.
func (u *Usage) Supported() []rune {
	if u == nil {
		return nil
	}
	return toRunes(u.supported.Keys())
}

// Unsupported returns the code points without a font, in ascending order.
func (u *Usage) Unsupported() []rune {
	if u == nil {
		return nil
	}
	return toRunes(u.unsupported.Values())
}

// Merge adds the records of other to u. Fonts already recorded in u take
// precedence.
func (u *Usage) Merge(other *Usage) {
	if u == nil || other == nil {
		return
	}
	it := other.supported.Iterator()
	for it.Next() {
		u.RecordSupported(it.Key().(rune), it.Value().(string))
	}
	u.unsupported.Add(other.unsupported.Values()...)
}

// Clear removes all records.
func (u *Usage) Clear() {
	if u == nil {
		return
	}
	u.supported.Clear()
	u.unsupported.Clear()
}

func toRunes(values []interface{}) []rune {
	runes := make([]rune, len(values))
	for i, v := range values {
		runes[i] = v.(rune)
	}
	return runes
}
