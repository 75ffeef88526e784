package prune

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/maskcut/pkg/mask"
	"github.com/Faultbox/maskcut/pkg/math"
)

// TexelOf maps a texture coordinate to the texel it samples in a
// width x height texture. Coordinates wrap (see math.Wrap01). A coordinate
// that lands exactly on the far edge after wrapping has no texel and ok is
// false; those vertices never receive a deletion signal.
func TexelOf(uv math.Vec2, width, height int) (x, y int, ok bool) {
	if math32.IsNaN(uv.X) || math32.IsNaN(uv.Y) || math32.IsInf(uv.X, 0) || math32.IsInf(uv.Y, 0) {
		return 0, 0, false
	}
	w := uv.Wrapped()
	x = int(math32.Floor(w.X * float32(width)))
	y = int(math32.Floor(w.Y * float32(height)))
	if x >= width || y >= height {
		return 0, 0, false
	}
	return x, y, true
}

// MapToDeleteIndices returns the indices of the vertices whose texture
// coordinate falls on a marked texel.
func MapToDeleteIndices(uvs []math.Vec2, m mask.Mask) (map[int]struct{}, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	marked := make(map[int]struct{})
	for i, uv := range uvs {
		x, y, ok := TexelOf(uv, m.Width, m.Height)
		if !ok {
			continue
		}
		if m.At(x, y) {
			marked[i] = struct{}{}
		}
	}
	return marked, nil
}
