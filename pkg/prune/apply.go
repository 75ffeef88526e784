package prune

import (
	"fmt"

	"github.com/Faultbox/maskcut/pkg/mask"
	"github.com/Faultbox/maskcut/pkg/mesh"
)

// Apply prunes the mesh of src and, on success, installs the result on the
// renderer. Material slots of submeshes that became empty are removed so the
// remaining materials stay aligned with the remaining submeshes; slots past
// the submesh count are kept. On failure src is left untouched.
func Apply(src mesh.Source, dm mask.Mask, targets []int, opts ...Option) (*Result, error) {
	res, err := RemoveMaskedGeometry(src.Mesh(), dm, targets, opts...)
	if err != nil {
		return nil, err
	}

	materials := src.Materials()
	kept := make([]string, 0, len(materials))
	for slot, name := range materials {
		if slot < len(res.EmptySubmeshes) && res.EmptySubmeshes[slot] {
			continue
		}
		kept = append(kept, name)
	}

	src.SetMesh(res.Mesh)
	src.SetMaterials(kept)
	return res, nil
}

// ApplyToMaterial prunes every slot of src bound to material.
func ApplyToMaterial(src mesh.Source, dm mask.Mask, material string, opts ...Option) (*Result, error) {
	slots := mesh.SlotsUsingMaterial(src, material)
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMaterialNotFound, material)
	}
	return Apply(src, dm, slots, opts...)
}
