package mesh

import "fmt"

// SourceKind identifies which renderer variant holds a mesh.
type SourceKind int

const (
	SourceStatic  SourceKind = iota // Mesh filter + mesh renderer
	SourceSkinned                   // Skinned mesh renderer
)

// String returns a human-readable kind name.
func (k SourceKind) String() string {
	switch k {
	case SourceStatic:
		return "static"
	case SourceSkinned:
		return "skinned"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Source is a renderer that owns a mesh and one material per submesh slot.
type Source interface {
	Kind() SourceKind
	Mesh() *Mesh
	SetMesh(m *Mesh)
	Materials() []string
	SetMaterials(materials []string)
}

// StaticRenderer renders an unskinned mesh.
type StaticRenderer struct {
	mesh      *Mesh
	materials []string
}

// NewStaticRenderer creates a static renderer.
func NewStaticRenderer(m *Mesh, materials []string) *StaticRenderer {
	return &StaticRenderer{mesh: m, materials: materials}
}

func (r *StaticRenderer) Kind() SourceKind {
	return SourceStatic
}

func (r *StaticRenderer) Mesh() *Mesh {
	return r.mesh
}

func (r *StaticRenderer) SetMesh(m *Mesh) {
	r.mesh = m
}

func (r *StaticRenderer) Materials() []string {
	return r.materials
}

func (r *StaticRenderer) SetMaterials(materials []string) {
	r.materials = materials
}

// SkinnedRenderer renders a mesh deformed by a bone hierarchy.
type SkinnedRenderer struct {
	mesh      *Mesh
	materials []string

	Bones    []string // bone names, aligned with the mesh bind poses
	RootBone string
}

// NewSkinnedRenderer creates a skinned renderer.
func NewSkinnedRenderer(m *Mesh, materials []string, bones []string, rootBone string) *SkinnedRenderer {
	return &SkinnedRenderer{mesh: m, materials: materials, Bones: bones, RootBone: rootBone}
}

func (r *SkinnedRenderer) Kind() SourceKind {
	return SourceSkinned
}

func (r *SkinnedRenderer) Mesh() *Mesh {
	return r.mesh
}

func (r *SkinnedRenderer) SetMesh(m *Mesh) {
	r.mesh = m
}

func (r *SkinnedRenderer) Materials() []string {
	return r.materials
}

func (r *SkinnedRenderer) SetMaterials(materials []string) {
	r.materials = materials
}

// SlotsUsingMaterial returns every slot index bound to the named material.
// A material may be assigned to several slots.
func SlotsUsingMaterial(src Source, material string) []int {
	var slots []int
	for i, name := range src.Materials() {
		if name == material {
			slots = append(slots, i)
		}
	}
	return slots
}
