package stagecraft

import (
	"context"
	"io"
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// GLTFLoader loads a .gltf or .glb file.
type GLTFLoader struct {
	Path string
	// DefaultMaterial is assigned to every imported mesh.
	DefaultMaterial *Material
}

// Load opens and imports the file.
func (l GLTFLoader) Load(ctx context.Context) (*Asset, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrAssetNotFound, "open %s", l.Path)
		}
		return nil, errors.Wrapf(err, "open %s", l.Path)
	}
	defer f.Close()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := DecodeGLTF(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", l.Path)
	}
	return ImportGLTF(doc, l.DefaultMaterial)
}

// DecodeGLTF reads a glTF document (JSON or binary) from r. External buffers
// are not resolved; embedded and GLB buffers are.
func DecodeGLTF(r io.Reader) (*gltf.Document, error) {
	doc := &gltf.Document{}
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrapf(err, "decode gltf")
	}
	return doc, nil
}

// ImportGLTF converts the document's default scene into a node tree and its
// animations into clips. mat is shared by every mesh; nil selects a grey
// lit material.
func ImportGLTF(doc *gltf.Document, mat *Material) (*Asset, error) {
	if mat == nil {
		mat = NewMaterial(ColorHex(0x999999))
	}
	imp := &gltfImporter{doc: doc, mat: mat, nodes: make(map[uint32]*Node), skinned: make(map[*Node]uint32)}

	root := NewGroup("gltf")
	if len(doc.Scenes) > 0 {
		sceneIdx := 0
		if doc.Scene != nil {
			sceneIdx = int(*doc.Scene)
		}
		if sceneIdx >= len(doc.Scenes) {
			return nil, errors.Errorf("gltf: scene %d out of range", sceneIdx)
		}
		for _, idx := range doc.Scenes[sceneIdx].Nodes {
			n, err := imp.node(idx)
			if err != nil {
				return nil, err
			}
			root.AddChild(n)
		}
	}

	for n, idx := range imp.skinned {
		skin, err := imp.skin(idx)
		if err != nil {
			return nil, errors.Wrapf(err, "gltf: node %q", n.Name)
		}
		for _, v := range n.Geometry.Joints {
			for _, j := range v {
				if int(j) >= len(skin.Joints) {
					return nil, errors.Errorf("gltf: node %q: joint %d out of range for skin %d", n.Name, j, idx)
				}
			}
		}
		n.Skin = skin
	}

	asset := &Asset{Root: root}
	for i, anim := range doc.Animations {
		clip, err := imp.clip(anim, i)
		if err != nil {
			return nil, err
		}
		asset.Clips = append(asset.Clips, clip)
	}
	return asset, nil
}

type gltfImporter struct {
	doc   *gltf.Document
	mat   *Material
	nodes map[uint32]*Node
	// skinned maps imported mesh nodes to their skin index, resolved once
	// every joint node exists.
	skinned map[*Node]uint32
}

func (imp *gltfImporter) node(idx uint32) (*Node, error) {
	if int(idx) >= len(imp.doc.Nodes) {
		return nil, errors.Errorf("gltf: node %d out of range", idx)
	}
	src := imp.doc.Nodes[idx]
	var n *Node
	if src.Mesh != nil {
		geom, err := imp.mesh(*src.Mesh)
		if err != nil {
			return nil, errors.Wrapf(err, "gltf: node %q", src.Name)
		}
		n = NewMesh(src.Name, geom, imp.mat)
		if src.Skin != nil && geom.Skinned() {
			imp.skinned[n] = *src.Skin
		}
	} else {
		n = NewGroup(src.Name)
	}
	t, r, s := src.Translation, src.Rotation, src.Scale
	n.Position = mgl64.Vec3{float64(t[0]), float64(t[1]), float64(t[2])}
	n.Rotation = mgl64.Quat{W: float64(r[3]), V: mgl64.Vec3{float64(r[0]), float64(r[1]), float64(r[2])}}
	if n.Rotation.Len() == 0 {
		n.Rotation = mgl64.QuatIdent()
	}
	n.Scale = mgl64.Vec3{float64(s[0]), float64(s[1]), float64(s[2])}
	if n.Scale == (mgl64.Vec3{}) {
		n.Scale = mgl64.Vec3{1, 1, 1}
	}
	imp.nodes[idx] = n
	for _, c := range src.Children {
		child, err := imp.node(c)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

func (imp *gltfImporter) accessor(idx uint32) (*gltf.Accessor, error) {
	if int(idx) >= len(imp.doc.Accessors) {
		return nil, errors.Errorf("accessor %d out of range", idx)
	}
	return imp.doc.Accessors[idx], nil
}

func (imp *gltfImporter) mesh(idx uint32) (*Geometry, error) {
	if int(idx) >= len(imp.doc.Meshes) {
		return nil, errors.Errorf("gltf: mesh %d out of range", idx)
	}
	g := &Geometry{}
	for pi, prim := range imp.doc.Meshes[idx].Primitives {
		if err := imp.primitive(g, prim); err != nil {
			return nil, errors.Wrapf(err, "mesh %d primitive %d", idx, pi)
		}
	}
	if err := g.Validate(); err != nil {
		return nil, errors.Wrapf(err, "mesh %d", idx)
	}
	return g, nil
}

// primitive appends one primitive's vertices, influences and triangles to g.
func (imp *gltfImporter) primitive(g *Geometry, prim *gltf.Primitive) error {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil
	}
	acr, err := imp.accessor(posIdx)
	if err != nil {
		return err
	}
	positions, err := modeler.ReadPosition(imp.doc, acr, nil)
	if err != nil {
		return errors.Wrap(err, "read positions")
	}
	base := uint32(len(g.Positions))
	for _, p := range positions {
		g.Positions = append(g.Positions, mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])})
	}
	if err := imp.influences(g, prim, len(positions)); err != nil {
		return err
	}

	count := uint32(len(positions))
	if prim.Indices == nil {
		for i := uint32(0); i+2 < count; i += 3 {
			g.Indices = append(g.Indices, base+i, base+i+1, base+i+2)
		}
		return nil
	}
	acr, err = imp.accessor(*prim.Indices)
	if err != nil {
		return err
	}
	indices, err := modeler.ReadIndices(imp.doc, acr, nil)
	if err != nil {
		return errors.Wrap(err, "read indices")
	}
	for _, i := range indices {
		if i >= count {
			return errors.Errorf("vertex index %d out of range for %d positions", i, count)
		}
		g.Indices = append(g.Indices, base+i)
	}
	return nil
}

// influences reads JOINTS_0 and WEIGHTS_0. Once any primitive of a mesh is
// skinned, unskinned primitives are padded with zero weights so the slices
// stay aligned with the positions.
func (imp *gltfImporter) influences(g *Geometry, prim *gltf.Primitive, count int) error {
	jIdx, hasJoints := prim.Attributes["JOINTS_0"]
	wIdx, hasWeights := prim.Attributes["WEIGHTS_0"]
	if !hasJoints || !hasWeights {
		if len(g.Joints) > 0 {
			g.Joints = append(g.Joints, make([][4]uint16, count)...)
			g.Weights = append(g.Weights, make([][4]float64, count)...)
		}
		return nil
	}
	jAcr, err := imp.accessor(jIdx)
	if err != nil {
		return err
	}
	wAcr, err := imp.accessor(wIdx)
	if err != nil {
		return err
	}
	joints, err := modeler.ReadJoints(imp.doc, jAcr, nil)
	if err != nil {
		return errors.Wrap(err, "read joints")
	}
	weights, err := modeler.ReadWeights(imp.doc, wAcr, nil)
	if err != nil {
		return errors.Wrap(err, "read weights")
	}
	if len(joints) != count || len(weights) != count {
		return errors.Errorf("%d joints and %d weights for %d positions", len(joints), len(weights), count)
	}
	if pad := len(g.Positions) - count - len(g.Joints); pad > 0 {
		g.Joints = append(g.Joints, make([][4]uint16, pad)...)
		g.Weights = append(g.Weights, make([][4]float64, pad)...)
	}
	g.Joints = append(g.Joints, joints...)
	for _, w := range weights {
		g.Weights = append(g.Weights, [4]float64{float64(w[0]), float64(w[1]), float64(w[2]), float64(w[3])})
	}
	return nil
}

// skin resolves a skin's joints against the imported nodes.
func (imp *gltfImporter) skin(idx uint32) (*Skin, error) {
	if int(idx) >= len(imp.doc.Skins) {
		return nil, errors.Errorf("skin %d out of range", idx)
	}
	src := imp.doc.Skins[idx]
	joints := make([]*Node, len(src.Joints))
	for i, j := range src.Joints {
		n, ok := imp.nodes[j]
		if !ok {
			return nil, errors.Errorf("skin %d: joint node %d is not in the scene", idx, j)
		}
		joints[i] = n
	}
	var ibm []mgl64.Mat4
	if src.InverseBindMatrices != nil {
		acr, err := imp.accessor(*src.InverseBindMatrices)
		if err != nil {
			return nil, err
		}
		data, err := modeler.ReadAccessor(imp.doc, acr, nil)
		if err != nil {
			return nil, errors.Wrap(err, "read inverse bind matrices")
		}
		mats, ok := data.([][4][4]float32)
		if !ok {
			return nil, errors.Errorf("skin %d: inverse bind matrices are %T, want float mat4", idx, data)
		}
		for _, m := range mats {
			var out mgl64.Mat4
			// glTF matrices are column-major, as is mgl64.
			for c := 0; c < 4; c++ {
				for r := 0; r < 4; r++ {
					out[c*4+r] = float64(m[c][r])
				}
			}
			ibm = append(ibm, out)
		}
	}
	return NewSkin(joints, ibm), nil
}

func (imp *gltfImporter) clip(anim *gltf.Animation, index int) (*AnimationClip, error) {
	name := anim.Name
	if name == "" {
		name = "animation_" + strconv.Itoa(index)
	}
	var tracks []*Track
	for _, ch := range anim.Channels {
		if ch.Sampler == nil || ch.Target.Node == nil {
			continue
		}
		target, ok := imp.nodes[*ch.Target.Node]
		if !ok {
			continue
		}
		var path TrackPath
		switch ch.Target.Path {
		case gltf.TRSTranslation:
			path = PathTranslation
		case gltf.TRSRotation:
			path = PathRotation
		case gltf.TRSScale:
			path = PathScale
		default:
			// morph target weights are not supported
			continue
		}
		if int(*ch.Sampler) >= len(anim.Samplers) {
			return nil, errors.Errorf("gltf: animation %q sampler %d out of range", name, *ch.Sampler)
		}
		sampler := anim.Samplers[*ch.Sampler]
		if sampler.Input == nil || sampler.Output == nil {
			continue
		}
		times, err := imp.readFloats(*sampler.Input)
		if err != nil {
			return nil, errors.Wrapf(err, "animation %q input", name)
		}
		values, err := imp.readFloats(*sampler.Output)
		if err != nil {
			return nil, errors.Wrapf(err, "animation %q output", name)
		}
		tracks = append(tracks, &Track{NodeName: target.Name, Path: path, Times: times, Values: values})
	}
	return NewAnimationClip(name, 0, tracks...), nil
}

// readFloats flattens a float accessor of any element type to []float64.
func (imp *gltfImporter) readFloats(accessor uint32) ([]float64, error) {
	acr, err := imp.accessor(accessor)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadAccessor(imp.doc, acr, nil)
	if err != nil {
		return nil, err
	}
	var out []float64
	switch v := data.(type) {
	case []float32:
		for _, f := range v {
			out = append(out, float64(f))
		}
	case [][3]float32:
		for _, f := range v {
			out = append(out, float64(f[0]), float64(f[1]), float64(f[2]))
		}
	case [][4]float32:
		for _, f := range v {
			out = append(out, float64(f[0]), float64(f[1]), float64(f[2]), float64(f[3]))
		}
	default:
		return nil, errors.Errorf("accessor %d: unsupported component layout %T", accessor, data)
	}
	return out, nil
}
