package prune

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/maskcut/pkg/mesh"
)

func TestRemapTable(t *testing.T) {
	assert.Equal(t, []int32{0, -1, 1, -1, -1, 2}, remapTable(6, []int{1, 3, 4}))
	assert.Equal(t, []int32{-1, -1}, remapTable(2, []int{0, 1}))
	assert.Equal(t, []int32{0, -1, 1}, remapTable(3, []int{1, 3, -2, 99}))
}

func TestReindexTrianglesIgnoresOutOfRangeDeletes(t *testing.T) {
	m := gridMesh(4, 4, 1, []uint32{0, 1, 2, 1, 2, 3})
	out := &mesh.Mesh{}

	var empty []bool
	var err error
	require.NotPanics(t, func() {
		empty, err = ReindexTriangles(m, out, []int{3, 4, 50, -1}, nil)
	})
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, empty)
	assert.Equal(t, [][]uint32{{0, 1, 2}}, out.Submeshes)
}

func TestReindexTriangles(t *testing.T) {
	m := gridMesh(7, 7, 1,
		[]uint32{0, 1, 2, 2, 3, 4, 4, 5, 6}, // middle triangle touches 3
		[]uint32{3, 2, 1},                   // fully dropped
		[]uint32{6, 5, 4, 0, 2, 6},
	)
	out := &mesh.Mesh{}

	empty, err := ReindexTriangles(m, out, []int{3}, nil)
	require.NoError(t, err)

	assert.Equal(t, []bool{false, true, false}, empty)
	require.Len(t, out.Submeshes, 2)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, out.Submeshes[0])
	assert.Equal(t, []uint32{5, 4, 3, 0, 2, 5}, out.Submeshes[1])
}

func TestReindexTrianglesAllEmpty(t *testing.T) {
	m := gridMesh(3, 3, 1, []uint32{0, 1, 2}, []uint32{})
	out := &mesh.Mesh{}

	empty, err := ReindexTriangles(m, out, []int{1}, nil)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, empty)
	assert.Empty(t, out.Submeshes)
}

func TestReindexTrianglesProgress(t *testing.T) {
	m := gridMesh(6, 6, 1,
		[]uint32{0, 1, 2},
		[]uint32{1, 2, 3},
		[]uint32{3, 4, 5},
		[]uint32{0, 4, 5},
	)

	var seen []int
	out := &mesh.Mesh{}
	_, err := ReindexTriangles(m, out, []int{0}, func(p int) bool {
		seen = append(seen, p)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 25, 50, 75, 100}, seen)
}

func TestReindexTrianglesCancel(t *testing.T) {
	m := gridMesh(6, 6, 1,
		[]uint32{0, 1, 2},
		[]uint32{3, 4, 5},
	)

	calls := 0
	out := &mesh.Mesh{}
	empty, err := ReindexTriangles(m, out, []int{0}, func(p int) bool {
		calls++
		return calls < 2
	})
	assert.ErrorIs(t, err, ErrOperationCancelled)
	assert.Nil(t, empty)
	assert.Nil(t, out.Submeshes, "cancelled pass must not touch the output")
	assert.Equal(t, 2, calls)
}
