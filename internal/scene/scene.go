package scene

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/maskcut/pkg/math"
	"github.com/Faultbox/maskcut/pkg/mesh"
)

// Errors returned while reading a scene.
var (
	ErrUnknownRenderer = errors.New("unknown renderer")
	ErrBindPoses       = errors.New("bind pose count does not match bones")
)

// Scene is a decoded scene file.
type Scene struct {
	Source  mesh.Source
	Texture TextureDoc
}

// Load reads a scene file from disk.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene document and builds its renderer.
func Parse(data []byte) (*Scene, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	src, err := doc.Source()
	if err != nil {
		return nil, err
	}
	return &Scene{Source: src, Texture: doc.Texture}, nil
}

// Save writes the scene to path.
func Save(path string, s *Scene) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing scene: %w", err)
	}
	return nil
}

// Marshal encodes the scene as YAML.
func Marshal(s *Scene) ([]byte, error) {
	doc := FromSource(s.Source)
	doc.Texture = s.Texture
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("encoding scene: %w", err)
	}
	return data, nil
}

// Source builds the renderer described by the document.
// Skinned renderers listing bones without bind poses get identity poses.
func (d *Document) Source() (mesh.Source, error) {
	m := d.Mesh.toMesh()

	switch d.Renderer {
	case "", "static":
		if err := m.Validate(); err != nil {
			return nil, err
		}
		return mesh.NewStaticRenderer(m, d.Materials), nil
	case "skinned":
		if len(m.BindPoses) == 0 && len(d.Bones) > 0 {
			m.BindPoses = make([]math.Mat4, len(d.Bones))
			for i := range m.BindPoses {
				m.BindPoses[i] = math.Identity()
			}
		}
		if len(d.Bones) > 0 && len(m.BindPoses) != len(d.Bones) {
			return nil, fmt.Errorf("%w: %d poses, %d bones", ErrBindPoses, len(m.BindPoses), len(d.Bones))
		}
		if err := m.Validate(); err != nil {
			return nil, err
		}
		return mesh.NewSkinnedRenderer(m, d.Materials, d.Bones, d.RootBone), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, d.Renderer)
	}
}

// FromSource converts a renderer back into a document.
func FromSource(src mesh.Source) Document {
	doc := Document{
		Renderer:  src.Kind().String(),
		Materials: src.Materials(),
		Mesh:      meshDoc(src.Mesh()),
	}
	if sk, ok := src.(*mesh.SkinnedRenderer); ok {
		doc.Bones = sk.Bones
		doc.RootBone = sk.RootBone
	}
	return doc
}

func (md *MeshDoc) toMesh() *mesh.Mesh {
	m := &mesh.Mesh{
		Name:      md.Name,
		Positions: mapSlice(md.Positions, math.Vec3From),
		Normals:   mapSlice(md.Normals, math.Vec3From),
		Tangents:  mapSlice(md.Tangents, math.Vec4From),
		Colors:    mapSlice(md.Colors, math.Vec4From),
		Submeshes: md.Submeshes,
	}
	for _, ch := range md.UVs {
		m.UVs = append(m.UVs, mapSlice(ch, func(a [2]float32) math.Vec2 {
			return math.Vec2{X: a[0], Y: a[1]}
		}))
	}
	m.BoneWeights = mapSlice(md.BoneWeights, func(bw BoneWeightDoc) mesh.BoneWeight {
		return mesh.BoneWeight{BoneIndices: bw.Bones, Weights: bw.Weights}
	})
	m.BindPoses = mapSlice(md.BindPoses, func(a [16]float32) math.Mat4 {
		return math.Mat4(a)
	})
	for _, bs := range md.BlendShapes {
		shape := mesh.BlendShape{Name: bs.Name}
		for _, f := range bs.Frames {
			shape.Frames = append(shape.Frames, mesh.BlendShapeFrame{
				Weight:         f.Weight,
				DeltaPositions: mapSlice(f.DeltaPositions, math.Vec3From),
				DeltaNormals:   mapSlice(f.DeltaNormals, math.Vec3From),
				DeltaTangents:  mapSlice(f.DeltaTangents, math.Vec3From),
			})
		}
		m.BlendShapes = append(m.BlendShapes, shape)
	}
	return m
}

func meshDoc(m *mesh.Mesh) MeshDoc {
	if m == nil {
		return MeshDoc{}
	}
	vec3 := func(v math.Vec3) [3]float32 { return v.Array() }
	md := MeshDoc{
		Name:      m.Name,
		Positions: mapSlice(m.Positions, vec3),
		Normals:   mapSlice(m.Normals, vec3),
		Tangents:  mapSlice(m.Tangents, math.Vec4.Array),
		Colors:    mapSlice(m.Colors, math.Vec4.Array),
		Submeshes: m.Submeshes,
	}
	for _, ch := range m.UVs {
		md.UVs = append(md.UVs, mapSlice(ch, func(v math.Vec2) [2]float32 {
			return [2]float32{v.X, v.Y}
		}))
	}
	md.BoneWeights = mapSlice(m.BoneWeights, func(bw mesh.BoneWeight) BoneWeightDoc {
		return BoneWeightDoc{Bones: bw.BoneIndices, Weights: bw.Weights}
	})
	md.BindPoses = mapSlice(m.BindPoses, func(p math.Mat4) [16]float32 {
		return [16]float32(p)
	})
	for _, bs := range m.BlendShapes {
		shape := BlendShapeDoc{Name: bs.Name}
		for _, f := range bs.Frames {
			shape.Frames = append(shape.Frames, FrameDoc{
				Weight:         f.Weight,
				DeltaPositions: mapSlice(f.DeltaPositions, vec3),
				DeltaNormals:   mapSlice(f.DeltaNormals, vec3),
				DeltaTangents:  mapSlice(f.DeltaTangents, vec3),
			})
		}
		md.BlendShapes = append(md.BlendShapes, shape)
	}
	return md
}

// mapSlice converts each element, keeping nil as nil.
func mapSlice[S, D any](in []S, fn func(S) D) []D {
	if in == nil {
		return nil
	}
	out := make([]D, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
