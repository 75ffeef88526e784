// Package math provides the float32 vector and matrix types used by mesh data.
package math

import "github.com/chewxy/math32"

// Vec2 is a 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float32
}

// Wrapped returns the coordinate folded into the repeating [0,1] tile.
// See Wrap01.
func (v Vec2) Wrapped() Vec2 {
	return Vec2{Wrap01(v.X), Wrap01(v.Y)}
}

// Wrap01 folds a texture coordinate into a single tile.
// Non-negative values keep their fractional part. Negative values map to
// 1 - |frac(c)|, so a negative whole number lands exactly on 1.
func Wrap01(c float32) float32 {
	f := math32.Abs(math32.Mod(c, 1))
	if c < 0 {
		return 1 - f
	}
	return f
}
