package prune

import (
	"sort"

	"github.com/Faultbox/maskcut/pkg/mesh"
)

// ProtectedVertices returns, sorted ascending, every vertex referenced by a
// submesh outside targets. Such vertices are shared with geometry the user
// is not editing and must survive whatever the mask says.
func ProtectedVertices(m *mesh.Mesh, targets []int) []int {
	targeted := make(map[int]bool, len(targets))
	for _, t := range targets {
		targeted[t] = true
	}

	seen := make(map[uint32]struct{})
	for sub, tris := range m.Submeshes {
		if targeted[sub] {
			continue
		}
		for _, idx := range tris {
			seen[idx] = struct{}{}
		}
	}

	protected := make([]int, 0, len(seen))
	for idx := range seen {
		protected = append(protected, int(idx))
	}
	sort.Ints(protected)
	return protected
}
