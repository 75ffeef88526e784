package prune

import (
	"sort"

	"github.com/Faultbox/maskcut/pkg/math"
	"github.com/Faultbox/maskcut/pkg/mesh"
)

// PruneVertices builds a mesh holding every per-vertex attribute of m
// except the deleted vertices, in original order. The deleted set is
// deleteSet minus protected; it is returned sorted ascending. Submeshes and
// blend shapes are left for the later stages.
func PruneVertices(m *mesh.Mesh, deleteSet map[int]struct{}, protected []int) (*mesh.Mesh, []int, error) {
	n := m.VertexCount()

	guarded := make(map[int]struct{}, len(protected))
	for _, idx := range protected {
		guarded[idx] = struct{}{}
	}

	deleted := make([]int, 0, len(deleteSet))
	for idx := range deleteSet {
		if idx < 0 || idx >= n {
			continue
		}
		if _, ok := guarded[idx]; ok {
			continue
		}
		deleted = append(deleted, idx)
	}
	if len(deleted) == 0 {
		return nil, nil, ErrNoVerticesToDelete
	}
	sort.Ints(deleted)

	keep := retained(n, deleted)
	out := &mesh.Mesh{
		Name:        m.Name,
		Positions:   filter(m.Positions, keep),
		Normals:     filter(m.Normals, keep),
		Tangents:    filter(m.Tangents, keep),
		Colors:      filter(m.Colors, keep),
		BoneWeights: filter(m.BoneWeights, keep),
	}
	if m.UVs != nil {
		out.UVs = make([][]math.Vec2, len(m.UVs))
		for ch, uv := range m.UVs {
			out.UVs[ch] = filter(uv, keep)
		}
	}
	// Bind poses are per bone, not per vertex.
	if m.BindPoses != nil {
		out.BindPoses = make([]math.Mat4, len(m.BindPoses))
		copy(out.BindPoses, m.BindPoses)
	}

	return out, deleted, nil
}

// retained returns keep[i] == true for every vertex not in deleted.
// Indices outside [0, n) are ignored.
func retained(n int, deleted []int) []bool {
	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
	}
	for _, idx := range deleted {
		if idx >= 0 && idx < n {
			keep[idx] = false
		}
	}
	return keep
}

// filter returns the entries of s whose index is kept. Absent attributes
// (nil) stay absent.
func filter[T any](s []T, keep []bool) []T {
	if s == nil {
		return nil
	}
	out := make([]T, 0, len(s))
	for i, v := range s {
		if keep[i] {
			out = append(out, v)
		}
	}
	return out
}
