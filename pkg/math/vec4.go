package math

// Vec4 is a 4-component vector. Tangents store handedness in W,
// vertex colors store RGBA.
type Vec4 struct {
	X, Y, Z, W float32
}

// Array returns the components as a fixed array.
func (v Vec4) Array() [4]float32 {
	return [4]float32{v.X, v.Y, v.Z, v.W}
}

// Vec4From builds a Vec4 from a fixed array.
func Vec4From(a [4]float32) Vec4 {
	return Vec4{a[0], a[1], a[2], a[3]}
}
