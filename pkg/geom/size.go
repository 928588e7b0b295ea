package geom

import (
	"fmt"
	"math"
)

// Size is a width and height pair.
type Size struct {
	Width  float64
	Height float64
}

// Sz returns the size w×h.
func Sz(w, h float64) Size {
	return Size{Width: w, Height: h}
}

func (sz Size) String() string {
	return fmt.Sprintf("%g×%g", sz.Width, sz.Height)
}

// IsZero reports whether both dimensions are zero.
func (sz Size) IsZero() bool {
	return sz.Width == 0 && sz.Height == 0
}

// IsNaN reports whether at least one of width and height is NaN.
func (sz Size) IsNaN() bool {
	return math.IsNaN(sz.Width) || math.IsNaN(sz.Height)
}

// Transpose swaps width and height.
func (sz Size) Transpose() Size {
	return Size{Width: sz.Height, Height: sz.Width}
}

// Scale multiplies sz by f.
func (sz Size) Scale(f float64) Size {
	return Size{Width: sz.Width * f, Height: sz.Height * f}
}
