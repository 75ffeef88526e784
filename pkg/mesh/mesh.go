// Package mesh provides the in-memory mesh model the pruning pipeline reads
// and builds: parallel per-vertex attribute streams, submesh triangle lists,
// skinning data and blend shapes.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/maskcut/pkg/math"
)

// MaxUVChannels is the number of texture coordinate channels a mesh may carry.
const MaxUVChannels = 8

// ErrInvalidMesh is wrapped by every validation failure.
var ErrInvalidMesh = errors.New("invalid mesh")

// BoneWeight holds up to four skinning influences for one vertex.
type BoneWeight struct {
	BoneIndices [4]int32
	Weights     [4]float32
}

// BlendShapeFrame is one keyframe of a blend shape. Delta slices are either
// empty or hold one entry per vertex.
type BlendShapeFrame struct {
	Weight         float32
	DeltaPositions []math.Vec3
	DeltaNormals   []math.Vec3
	DeltaTangents  []math.Vec3
}

// BlendShape is a named morph target.
type BlendShape struct {
	Name   string
	Frames []BlendShapeFrame
}

// Mesh is a triangle mesh split into submeshes.
//
// Every per-vertex slice is either empty (attribute absent) or has exactly
// VertexCount() entries. Submeshes hold flat triangle lists, three indices
// per triangle.
type Mesh struct {
	Name string

	Positions   []math.Vec3
	Normals     []math.Vec3
	Tangents    []math.Vec4
	Colors      []math.Vec4
	UVs         [][]math.Vec2 // indexed by channel
	BoneWeights []BoneWeight

	Submeshes   [][]uint32
	BindPoses   []math.Mat4
	BlendShapes []BlendShape
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// SubmeshCount returns the number of submeshes.
func (m *Mesh) SubmeshCount() int {
	return len(m.Submeshes)
}

// TriangleCount returns the total triangle count across submeshes.
func (m *Mesh) TriangleCount() int {
	total := 0
	for _, tris := range m.Submeshes {
		total += len(tris) / 3
	}
	return total
}

// UV returns texture coordinate channel ch, or nil if the mesh has none.
func (m *Mesh) UV(ch int) []math.Vec2 {
	if ch < 0 || ch >= len(m.UVs) {
		return nil
	}
	return m.UVs[ch]
}

// Validate checks attribute lengths and triangle indices.
func (m *Mesh) Validate() error {
	n := m.VertexCount()

	check := func(name string, length int) error {
		if length != 0 && length != n {
			return fmt.Errorf("%w: %s has %d entries, want %d", ErrInvalidMesh, name, length, n)
		}
		return nil
	}

	if err := check("normals", len(m.Normals)); err != nil {
		return err
	}
	if err := check("tangents", len(m.Tangents)); err != nil {
		return err
	}
	if err := check("colors", len(m.Colors)); err != nil {
		return err
	}
	if err := check("bone weights", len(m.BoneWeights)); err != nil {
		return err
	}
	if len(m.UVs) > MaxUVChannels {
		return fmt.Errorf("%w: %d uv channels, max %d", ErrInvalidMesh, len(m.UVs), MaxUVChannels)
	}
	for ch, uv := range m.UVs {
		if err := check(fmt.Sprintf("uv%d", ch), len(uv)); err != nil {
			return err
		}
	}

	for sub, tris := range m.Submeshes {
		if len(tris)%3 != 0 {
			return fmt.Errorf("%w: submesh %d has %d indices, not a multiple of 3", ErrInvalidMesh, sub, len(tris))
		}
		for _, idx := range tris {
			if int(idx) >= n {
				return fmt.Errorf("%w: submesh %d references vertex %d of %d", ErrInvalidMesh, sub, idx, n)
			}
		}
	}

	for _, bs := range m.BlendShapes {
		for f, frame := range bs.Frames {
			prefix := fmt.Sprintf("blend shape %q frame %d", bs.Name, f)
			if err := check(prefix+" position deltas", len(frame.DeltaPositions)); err != nil {
				return err
			}
			if err := check(prefix+" normal deltas", len(frame.DeltaNormals)); err != nil {
				return err
			}
			if err := check(prefix+" tangent deltas", len(frame.DeltaTangents)); err != nil {
				return err
			}
		}
	}

	return nil
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Name:        m.Name,
		Positions:   cloneSlice(m.Positions),
		Normals:     cloneSlice(m.Normals),
		Tangents:    cloneSlice(m.Tangents),
		Colors:      cloneSlice(m.Colors),
		BoneWeights: cloneSlice(m.BoneWeights),
		BindPoses:   cloneSlice(m.BindPoses),
	}
	if m.UVs != nil {
		out.UVs = make([][]math.Vec2, len(m.UVs))
		for i, uv := range m.UVs {
			out.UVs[i] = cloneSlice(uv)
		}
	}
	if m.Submeshes != nil {
		out.Submeshes = make([][]uint32, len(m.Submeshes))
		for i, tris := range m.Submeshes {
			out.Submeshes[i] = cloneSlice(tris)
		}
	}
	if m.BlendShapes != nil {
		out.BlendShapes = make([]BlendShape, len(m.BlendShapes))
		for i, bs := range m.BlendShapes {
			frames := make([]BlendShapeFrame, len(bs.Frames))
			for f, frame := range bs.Frames {
				frames[f] = BlendShapeFrame{
					Weight:         frame.Weight,
					DeltaPositions: cloneSlice(frame.DeltaPositions),
					DeltaNormals:   cloneSlice(frame.DeltaNormals),
					DeltaTangents:  cloneSlice(frame.DeltaTangents),
				}
			}
			out.BlendShapes[i] = BlendShape{Name: bs.Name, Frames: frames}
		}
	}
	return out
}

// cloneSlice copies s, keeping nil as nil.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
