package prune

import (
	"github.com/Faultbox/maskcut/pkg/mask"
	"github.com/Faultbox/maskcut/pkg/math"
	"github.com/Faultbox/maskcut/pkg/mesh"
)

// texelCenter returns the uv at the center of texel i of a w x h texture.
func texelCenter(i, w, h int) math.Vec2 {
	x, y := i%w, (i/w)%h
	return math.Vec2{
		X: (float32(x) + 0.5) / float32(w),
		Y: (float32(y) + 0.5) / float32(h),
	}
}

// gridMesh creates n vertices where vertex i samples texel i (mod w*h) of a
// w x h texture. Every attribute stream is filled with values derived from
// the vertex index so filtering can be traced.
func gridMesh(n, w, h int, submeshes ...[]uint32) *mesh.Mesh {
	m := &mesh.Mesh{Name: "grid", Submeshes: submeshes}
	uv0 := make([]math.Vec2, n)
	uv1 := make([]math.Vec2, n)
	for i := 0; i < n; i++ {
		f := float32(i)
		m.Positions = append(m.Positions, math.Vec3{X: f})
		m.Normals = append(m.Normals, math.Vec3{Y: f})
		m.Tangents = append(m.Tangents, math.Vec4{Z: f, W: 1})
		m.Colors = append(m.Colors, math.Vec4{X: f, W: 1})
		m.BoneWeights = append(m.BoneWeights, mesh.BoneWeight{
			BoneIndices: [4]int32{int32(i)},
			Weights:     [4]float32{1},
		})
		uv0[i] = texelCenter(i, w, h)
		uv1[i] = math.Vec2{X: f, Y: f}
	}
	m.UVs = [][]math.Vec2{uv0, uv1}
	raised := math.Identity()
	raised[13] = 1
	m.BindPoses = []math.Mat4{math.Identity(), raised}
	return m
}

// maskOf creates a w x h mask with the given texel indices marked.
func maskOf(w, h int, marked ...int) mask.Mask {
	m := mask.New(w, h)
	for _, i := range marked {
		m.Bits[i] = true
	}
	return m
}

// positionsX returns the X component of every position, which gridMesh
// sets to the original vertex index.
func positionsX(m *mesh.Mesh) []float32 {
	out := make([]float32, len(m.Positions))
	for i, p := range m.Positions {
		out[i] = p.X
	}
	return out
}
