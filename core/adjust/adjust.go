package adjust

import (
	"fmt"
	"math"
)

// Adjustment is a geometric correction for a character. Scale is applied to
// the font size, offsets are percentages of the nominal font size.
type Adjustment struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Identity is the adjustment leaving size and position untouched.
var Identity = Adjustment{Scale: 1}

// Merge combines two adjustments: scales multiply, offsets add.
func Merge(a, b Adjustment) Adjustment {
	return Adjustment{
		Scale:   a.Scale * b.Scale,
		OffsetX: a.OffsetX + b.OffsetX,
		OffsetY: a.OffsetY + b.OffsetY,
	}
}

// IsIdentity is true if a neither scales nor moves.
func (a Adjustment) IsIdentity() bool {
	return a == Identity
}

// ApplyToSize returns the font size to use for an adjusted character,
// rounded down to whole pixels.
func (a Adjustment) ApplyToSize(size int) int {
	return int(math.Floor(float64(size) * a.Scale))
}

// ApplyToPosition moves a drawing position by the adjustment's offsets.
// Offsets are relative to the nominal font size, not to the adjusted one.
func (a Adjustment) ApplyToPosition(x, y int, size int) (int, int) {
	fx := float64(x) + a.OffsetX*float64(size)/100
	fy := float64(y) + a.OffsetY*float64(size)/100
	return int(fx), int(fy)
}

func (a Adjustment) String() string {
	return fmt.Sprintf("[×%.2f %+.0f%% %+.0f%%]", a.Scale, a.OffsetX, a.OffsetY)
}
