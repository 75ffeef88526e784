// Package mask provides the delete mask painted over a texture: a boolean
// bitmap that carries its own texture dimensions.
package mask

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned when the bit count differs from width*height.
var ErrDimensionMismatch = errors.New("mask size does not match texture dimensions")

// Mask is a row-major delete bitmap. Row 0 is the bottom texel row (v = 0).
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

// New creates an empty mask for a width x height texture.
func New(width, height int) Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Mask{Width: width, Height: height, Bits: make([]bool, width*height)}
}

// FromBits wraps an existing bitmap, checking its length.
func FromBits(width, height int, bits []bool) (Mask, error) {
	m := Mask{Width: width, Height: height, Bits: bits}
	if err := m.Validate(); err != nil {
		return Mask{}, err
	}
	return m, nil
}

// Validate checks that the bitmap covers exactly width*height texels.
func (m Mask) Validate() error {
	if m.Width < 0 || m.Height < 0 || len(m.Bits) != m.Width*m.Height {
		return fmt.Errorf("%w: %d bits for %dx%d", ErrDimensionMismatch, len(m.Bits), m.Width, m.Height)
	}
	return nil
}

// Index returns the bit index of texel (x, y), or -1 when outside the mask.
func (m Mask) Index(x, y int) int {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return -1
	}
	return y*m.Width + x
}

// At reports whether texel (x, y) is marked for deletion.
func (m Mask) At(x, y int) bool {
	i := m.Index(x, y)
	return i >= 0 && i < len(m.Bits) && m.Bits[i]
}

// Set marks or clears texel (x, y). Out-of-range texels are ignored.
func (m Mask) Set(x, y int, deleted bool) {
	i := m.Index(x, y)
	if i >= 0 && i < len(m.Bits) {
		m.Bits[i] = deleted
	}
}

// Count returns the number of marked texels.
func (m Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Empty reports whether no texel is marked.
func (m Mask) Empty() bool {
	return m.Count() == 0
}
