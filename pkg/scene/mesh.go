package scene

import (
	"image/color"

	"github.com/philipparndt/stlview/pkg/geometry"
	"github.com/philipparndt/stlview/pkg/stl"
)

// BufferGeometry stores triangles as flat float32 attribute arrays,
// three components per vertex and three vertices per triangle.
type BufferGeometry struct {
	Positions []float32
	Normals   []float32
}

// NewBufferGeometry flattens a decoded model. Facet normals that are
// missing from the file are recomputed from the winding order.
func NewBufferGeometry(model *stl.Model) *BufferGeometry {
	vertexCount := len(model.Triangles) * 3
	g := &BufferGeometry{
		Positions: make([]float32, 0, vertexCount*3),
		Normals:   make([]float32, 0, vertexCount*3),
	}

	for _, triangle := range model.Triangles {
		normal := triangle.Normal
		if normal == (geometry.Vector3{}) {
			normal = triangle.CalculateNormal()
		}
		n := normal.Float32()
		for _, v := range triangle.Vertices() {
			p := v.Float32()
			g.Positions = append(g.Positions, p[:]...)
			g.Normals = append(g.Normals, n[:]...)
		}
	}

	return g
}

// VertexCount returns the number of vertices
func (g *BufferGeometry) VertexCount() int {
	return len(g.Positions) / 3
}

// TriangleCount returns the number of triangles
func (g *BufferGeometry) TriangleCount() int {
	return g.VertexCount() / 3
}

// Vertex returns vertex i as a vector
func (g *BufferGeometry) Vertex(i int) geometry.Vector3 {
	return geometry.FromFloat32([3]float32{g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]})
}

// Triangle returns the corners of triangle i
func (g *BufferGeometry) Triangle(i int) [3]geometry.Vector3 {
	return [3]geometry.Vector3{g.Vertex(i * 3), g.Vertex(i*3 + 1), g.Vertex(i*3 + 2)}
}

// BoundingBox returns the box around all vertices
func (g *BufferGeometry) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for i := 0; i < g.VertexCount(); i++ {
		bbox.Extend(g.Vertex(i))
	}
	return bbox
}

// BasicMaterial is an unlit material. With Wireframe set only the
// triangle edges are drawn.
type BasicMaterial struct {
	Color     color.RGBA
	Wireframe bool
}

// NewWireframeMaterial returns an unlit wireframe material
func NewWireframeMaterial(c color.RGBA) BasicMaterial {
	return BasicMaterial{Color: c, Wireframe: true}
}

// Mesh pairs geometry with a material
type Mesh struct {
	Object3D
	Geometry *BufferGeometry
	Material BasicMaterial
}

// NewMesh creates a mesh at the origin
func NewMesh(name string, g *BufferGeometry, m BasicMaterial) *Mesh {
	return &Mesh{
		Object3D: newObject3D(name),
		Geometry: g,
		Material: m,
	}
}
