package prune

import (
	"github.com/Faultbox/maskcut/pkg/math"
	"github.com/Faultbox/maskcut/pkg/mesh"
)

// ProjectBlendShapes copies the blend shapes of m into out with the deleted
// vertices removed from every delta stream. Only the first frame of each
// shape is kept; shapes without frames are dropped. Missing delta streams
// are treated as zero deltas so every projected stream matches the pruned
// vertex count.
func ProjectBlendShapes(m, out *mesh.Mesh, deleted []int) {
	n := m.VertexCount()
	keep := retained(n, deleted)

	for _, bs := range m.BlendShapes {
		if len(bs.Frames) == 0 {
			continue
		}
		frame := bs.Frames[0]
		out.BlendShapes = append(out.BlendShapes, mesh.BlendShape{
			Name: bs.Name,
			Frames: []mesh.BlendShapeFrame{{
				Weight:         frame.Weight,
				DeltaPositions: filter(deltas(frame.DeltaPositions, n), keep),
				DeltaNormals:   filter(deltas(frame.DeltaNormals, n), keep),
				DeltaTangents:  filter(deltas(frame.DeltaTangents, n), keep),
			}},
		})
	}
}

// deltas returns s, or n zero deltas when the stream is absent.
func deltas(s []math.Vec3, n int) []math.Vec3 {
	if len(s) == 0 {
		return make([]math.Vec3, n)
	}
	return s
}
