// Package prune removes the geometry under a painted delete mask from a mesh.
//
// The work runs as a strict pipeline over an untouched input mesh:
// texture coordinates are mapped to mask texels, vertices shared with
// submeshes outside the selection are protected, the remaining marked
// vertices are removed from every attribute stream, triangles are filtered
// and renumbered per submesh, and blend shapes are projected onto the
// surviving vertices. The input mesh is never modified.
package prune

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/maskcut/pkg/mask"
	"github.com/Faultbox/maskcut/pkg/mesh"
)

// Result is the outcome of a successful pruning.
type Result struct {
	Mesh *mesh.Mesh
	// EmptySubmeshes has one entry per original submesh, true where the
	// submesh lost all of its triangles and was dropped.
	EmptySubmeshes []bool
	// Removed lists the deleted original vertex indices, ascending.
	Removed []int
}

// EmptyCount returns how many submeshes were dropped.
func (r *Result) EmptyCount() int {
	n := 0
	for _, e := range r.EmptySubmeshes {
		if e {
			n++
		}
	}
	return n
}

type options struct {
	progress ProgressFunc
	log      *zap.Logger
}

// Option configures RemoveMaskedGeometry.
type Option func(*options)

// WithProgress installs a progress callback consulted between submeshes.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithLogger sets the logger for stage diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// RemoveMaskedGeometry removes from m every vertex whose channel 0 texture
// coordinate lands on a marked texel of dm, limited to vertices not used by
// submeshes outside targets, and returns the pruned copy.
//
// Failures are all-or-nothing: ErrDimensionMismatch, ErrSubmeshOutOfRange,
// mesh.ErrInvalidMesh, ErrNoVerticesToDelete or ErrOperationCancelled.
func RemoveMaskedGeometry(m *mesh.Mesh, dm mask.Mask, targets []int, opts ...Option) (*Result, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := dm.Validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: nil mesh", mesh.ErrInvalidMesh)
	}
	for _, t := range targets {
		if t < 0 || t >= m.SubmeshCount() {
			return nil, fmt.Errorf("%w: %d (mesh has %d)", ErrSubmeshOutOfRange, t, m.SubmeshCount())
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	log := o.log.With(zap.String("mesh", m.Name))

	marked, err := MapToDeleteIndices(m.UV(0), dm)
	if err != nil {
		return nil, err
	}
	protected := ProtectedVertices(m, targets)
	log.Debug("mapped mask",
		zap.Int("marked", len(marked)),
		zap.Int("protected", len(protected)),
		zap.Int("vertices", m.VertexCount()))

	out, deleted, err := PruneVertices(m, marked, protected)
	if err != nil {
		return nil, err
	}

	empty, err := ReindexTriangles(m, out, deleted, o.progress)
	if err != nil {
		log.Debug("triangle pass cancelled")
		return nil, err
	}

	ProjectBlendShapes(m, out, deleted)

	result := &Result{Mesh: out, EmptySubmeshes: empty, Removed: deleted}
	log.Debug("pruned mesh",
		zap.Int("removed_vertices", len(deleted)),
		zap.Int("vertices", out.VertexCount()),
		zap.Int("triangles", out.TriangleCount()),
		zap.Int("dropped_submeshes", result.EmptyCount()),
		zap.Int("blend_shapes", len(out.BlendShapes)))

	return result, nil
}
