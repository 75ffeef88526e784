package prune

import (
	"errors"

	"github.com/Faultbox/maskcut/pkg/mask"
)

// Pruning errors. Callers classify failures with errors.Is.
var (
	// ErrDimensionMismatch: the mask does not cover width*height texels.
	ErrDimensionMismatch = mask.ErrDimensionMismatch
	// ErrNoVerticesToDelete: the mask marks no vertex that may be removed.
	// Recoverable; the mesh is left as it was.
	ErrNoVerticesToDelete = errors.New("mask marks no deletable vertices")
	// ErrOperationCancelled: the progress callback asked to stop.
	ErrOperationCancelled = errors.New("operation cancelled")
	// ErrSubmeshOutOfRange: a selected submesh does not exist.
	ErrSubmeshOutOfRange = errors.New("submesh index out of range")
	// ErrMaterialNotFound: no slot of the renderer uses the material.
	ErrMaterialNotFound = errors.New("material not assigned to any slot")
)
