// Package model decodes glTF assets and derives the transforms needed to
// present them at a predictable size.
package model

import (
	"bytes"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/vitrinelabs/vitrine/pkg/math"
)

// maxNodeDepth caps recursion through malformed node graphs with cycles.
const maxNodeDepth = 64

// Model is the decoded summary of a glTF asset: its world-space bounds with
// all node transforms applied, its animation clips, and basic geometry counts.
type Model struct {
	Name       string
	Bounds     math.Box
	Clips      []string
	Nodes      int
	Meshes     int
	Primitives int
	Vertices   int
}

// Decode parses a glTF asset from raw bytes. Both binary (.glb) and JSON
// (.gltf with embedded buffers) containers are accepted. Geometry problems
// such as missing meshes or non-finite vertex data do not fail the decode;
// they surface as an empty or non-finite Bounds instead.
func Decode(data []byte) (*Model, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode gltf: %w", err)
	}
	return fromDocument(doc), nil
}

func fromDocument(doc *gltf.Document) *Model {
	m := &Model{
		Name:   sceneName(doc),
		Bounds: sceneBounds(doc),
		Clips:  clipNames(doc),
		Nodes:  len(doc.Nodes),
		Meshes: len(doc.Meshes),
	}
	for _, mesh := range doc.Meshes {
		m.Primitives += len(mesh.Primitives)
		for _, prim := range mesh.Primitives {
			if idx, ok := prim.Attributes[gltf.POSITION]; ok && int(idx) < len(doc.Accessors) {
				m.Vertices += int(doc.Accessors[idx].Count)
			}
		}
	}
	return m
}

func sceneName(doc *gltf.Document) string {
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Name
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Name
	}
	return ""
}

func clipNames(doc *gltf.Document) []string {
	if len(doc.Animations) == 0 {
		return nil
	}
	names := make([]string, len(doc.Animations))
	for i, anim := range doc.Animations {
		if anim.Name != "" {
			names[i] = anim.Name
		} else {
			names[i] = fmt.Sprintf("clip %d", i+1)
		}
	}
	return names
}

// sceneBounds unions the transformed bounds of every mesh reachable from the
// default scene. Documents without scenes fall back to the root nodes of the
// node list.
func sceneBounds(doc *gltf.Document) math.Box {
	box := math.EmptyBox()
	for _, root := range rootNodes(doc) {
		box = box.Union(nodeBounds(doc, root, math.Identity(), 0))
	}
	return box
}

func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
			idx = int(*doc.Scene)
		}
		roots := make([]int, 0, len(doc.Scenes[idx].Nodes))
		for _, n := range doc.Scenes[idx].Nodes {
			roots = append(roots, int(n))
		}
		return roots
	}
	child := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if int(c) < len(child) {
				child[int(c)] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func nodeBounds(doc *gltf.Document, idx int, parent math.Mat4, depth int) math.Box {
	box := math.EmptyBox()
	if idx < 0 || idx >= len(doc.Nodes) || depth > maxNodeDepth {
		return box
	}
	node := doc.Nodes[idx]
	world := parent.Mul(nodeLocal(node))
	if node.Mesh != nil && int(*node.Mesh) < len(doc.Meshes) {
		for _, prim := range doc.Meshes[*node.Mesh].Primitives {
			box = box.Union(primitiveBounds(doc, prim).Transformed(world))
		}
	}
	for _, c := range node.Children {
		box = box.Union(nodeBounds(doc, int(c), world, depth+1))
	}
	return box
}

// nodeLocal returns the node's local transform. Matrix and TRS are mutually
// exclusive in glTF; a node carrying only TRS leaves the matrix zeroed, which
// MatrixOrDefault maps to identity, so the TRS path below still applies.
func nodeLocal(node *gltf.Node) math.Mat4 {
	var local math.Mat4
	for i, v := range node.MatrixOrDefault() {
		local[i] = float32(v)
	}
	if local != math.Identity() {
		return local
	}
	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	return math.Compose(
		math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])},
		math.Quat{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])},
		math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])},
	)
}

// primitiveBounds reads the POSITION accessor's min/max when the exporter
// provided them and falls back to scanning the vertex data when it did not.
func primitiveBounds(doc *gltf.Document, prim *gltf.Primitive) math.Box {
	idx, ok := prim.Attributes[gltf.POSITION]
	if !ok || int(idx) >= len(doc.Accessors) {
		return math.EmptyBox()
	}
	acc := doc.Accessors[idx]
	if len(acc.Min) == 3 && len(acc.Max) == 3 {
		return math.NewBox(
			math.Vec3{X: float32(acc.Min[0]), Y: float32(acc.Min[1]), Z: float32(acc.Min[2])},
			math.Vec3{X: float32(acc.Max[0]), Y: float32(acc.Max[1]), Z: float32(acc.Max[2])},
		)
	}
	positions, err := modeler.ReadPosition(doc, acc, nil)
	if err != nil {
		return math.EmptyBox()
	}
	box := math.EmptyBox()
	for _, p := range positions {
		box = box.ExpandPoint(math.Vec3{X: p[0], Y: p[1], Z: p[2]})
	}
	return box
}
