// Package percent implements a simple and straightforward type for percentage values.
package percent

import (
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/banner/core"
)

// Percent is a percentage between 0 and 100.
type Percent uint8

// FromInt clamps n to 0…100.
func FromInt(n int) Percent {
	switch {
	case n <= 0:
		return Percent(0)
	case n >= 100:
		return Percent(100)
	}
	return Percent(n)
}

// FromFloat rounds f and clamps it to 0…100.
func FromFloat(f float64) Percent {
	switch {
	case f <= 0 || math.IsNaN(f) || math.IsInf(f, -1):
		return Percent(0)
	case f >= 100 || math.IsInf(f, 1):
		return Percent(100)
	}
	return Percent(math.Round(f))
}

// FromString reads values like "40%" or "40".
func FromString(s string) (Percent, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "not a percentage: %q", s)
	}
	return FromInt(n), nil
}

// Fraction returns p as a value between 0 and 1.
func (p Percent) Fraction() float64 {
	return float64(p) / 100
}

// Of returns p percent of n, truncated.
func (p Percent) Of(n int) int {
	return n * int(p) / 100
}

func (p Percent) String() string {
	return strconv.Itoa(int(p)) + "%"
}

// UnmarshalText reads a percentage from configuration files.
func (p *Percent) UnmarshalText(text []byte) error {
	v, err := FromString(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
