// Package scene reads and writes the YAML scene files used by the maskcut
// tool: one renderer, its material slots, the texture being painted and
// the mesh itself.
package scene

// Document is the on-disk layout of a scene file.
type Document struct {
	Renderer  string     `yaml:"renderer"` // "static" or "skinned"
	Materials []string   `yaml:"materials,flow"`
	Bones     []string   `yaml:"bones,flow,omitempty"`
	RootBone  string     `yaml:"root_bone,omitempty"`
	Texture   TextureDoc `yaml:"texture"`
	Mesh      MeshDoc    `yaml:"mesh"`
}

// TextureDoc describes the texture the delete mask is painted over.
type TextureDoc struct {
	Name   string `yaml:"name,omitempty"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// MeshDoc mirrors mesh.Mesh with plain arrays.
type MeshDoc struct {
	Name        string          `yaml:"name,omitempty"`
	Positions   [][3]float32    `yaml:"positions,flow"`
	Normals     [][3]float32    `yaml:"normals,flow,omitempty"`
	Tangents    [][4]float32    `yaml:"tangents,flow,omitempty"`
	Colors      [][4]float32    `yaml:"colors,flow,omitempty"`
	UVs         [][][2]float32  `yaml:"uvs,flow,omitempty"`
	BoneWeights []BoneWeightDoc `yaml:"bone_weights,omitempty"`
	BindPoses   [][16]float32   `yaml:"bind_poses,flow,omitempty"`
	Submeshes   [][]uint32      `yaml:"submeshes,flow"`
	BlendShapes []BlendShapeDoc `yaml:"blend_shapes,omitempty"`
}

// BoneWeightDoc is one vertex's skinning influences.
type BoneWeightDoc struct {
	Bones   [4]int32   `yaml:"bones,flow"`
	Weights [4]float32 `yaml:"weights,flow"`
}

// BlendShapeDoc is a named blend shape.
type BlendShapeDoc struct {
	Name   string     `yaml:"name"`
	Frames []FrameDoc `yaml:"frames"`
}

// FrameDoc is one blend shape frame.
type FrameDoc struct {
	Weight         float32      `yaml:"weight"`
	DeltaPositions [][3]float32 `yaml:"delta_positions,flow,omitempty"`
	DeltaNormals   [][3]float32 `yaml:"delta_normals,flow,omitempty"`
	DeltaTangents  [][3]float32 `yaml:"delta_tangents,flow,omitempty"`
}
