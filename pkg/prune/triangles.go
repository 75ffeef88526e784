package prune

import "github.com/Faultbox/maskcut/pkg/mesh"

// ProgressFunc receives the percentage of submeshes processed (0-100).
// Returning false cancels the operation.
type ProgressFunc func(percent int) bool

// remapTable maps each original vertex index to its index in the pruned
// mesh, or -1 when the vertex was deleted. Indices outside [0, n) are
// ignored.
func remapTable(n int, deleted []int) []int32 {
	remap := make([]int32, n)
	for _, idx := range deleted {
		if idx >= 0 && idx < n {
			remap[idx] = -1
		}
	}
	next := int32(0)
	for i := range remap {
		if remap[i] == -1 {
			continue
		}
		remap[i] = next
		next++
	}
	return remap
}

// ReindexTriangles rebuilds the submeshes of m into out. A triangle touching
// any deleted vertex is dropped whole; surviving indices are renumbered to
// the pruned vertex order. Submeshes left without triangles are flagged in
// the returned slice and get no slot in out, so the remaining submeshes are
// numbered densely in their original order.
//
// progress is consulted before every submesh and once more at 100%.
// On cancellation out is not modified. m must pass mesh.Validate.
func ReindexTriangles(m, out *mesh.Mesh, deleted []int, progress ProgressFunc) ([]bool, error) {
	remap := remapTable(m.VertexCount(), deleted)
	total := len(m.Submeshes)

	empty := make([]bool, total)
	submeshes := make([][]uint32, 0, total)
	for sub, tris := range m.Submeshes {
		if progress != nil && !progress(sub*100/total) {
			return nil, ErrOperationCancelled
		}

		kept := make([]uint32, 0, len(tris))
		for i := 0; i+2 < len(tris); i += 3 {
			a, b, c := remap[tris[i]], remap[tris[i+1]], remap[tris[i+2]]
			if a < 0 || b < 0 || c < 0 {
				continue
			}
			kept = append(kept, uint32(a), uint32(b), uint32(c))
		}

		if len(kept) == 0 {
			empty[sub] = true
			continue
		}
		submeshes = append(submeshes, kept)
	}

	if progress != nil && !progress(100) {
		return nil, ErrOperationCancelled
	}

	out.Submeshes = submeshes
	return empty, nil
}
