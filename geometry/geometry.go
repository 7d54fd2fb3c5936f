// Package geometry defines the inputs accepted by meshpack encoders: point clouds and
// triangle meshes.
//
// A Mesh carries its point cloud view, so a mesh can be used anywhere a point cloud
// is expected through Mesh.PointCloud. The Geometry interface is the closed sum of
// the two kinds; it is implemented only by *PointCloud and *Mesh.
package geometry

import (
	"fmt"
	"math"

	"github.com/arloliu/meshpack/errs"
	"github.com/arloliu/meshpack/format"
)

// Geometry is either a *PointCloud or a *Mesh.
type Geometry interface {
	// Kind reports which variant the geometry is.
	Kind() format.GeometryKind
	// PointCloud returns the point cloud view of the geometry.
	PointCloud() *PointCloud

	sealed()
}

var (
	_ Geometry = (*PointCloud)(nil)
	_ Geometry = (*Mesh)(nil)
)

// PointCloud is an ordered collection of attributes sampled over the same points.
//
// Note: PointCloud is NOT thread-safe for mutation. Encoders only read it.
type PointCloud struct {
	attributes []*Attribute
}

// NewPointCloud creates a point cloud from the given attributes.
func NewPointCloud(attrs ...*Attribute) (*PointCloud, error) {
	pc := &PointCloud{}
	for _, a := range attrs {
		if _, err := pc.AddAttribute(a); err != nil {
			return nil, err
		}
	}

	return pc, nil
}

func (pc *PointCloud) sealed() {}

// Kind implements Geometry.
func (pc *PointCloud) Kind() format.GeometryKind { return format.KindPointCloud }

// PointCloud implements Geometry.
func (pc *PointCloud) PointCloud() *PointCloud { return pc }

// AddAttribute appends an attribute and returns its id.
//
// Every attribute must cover the same number of points as the first one.
func (pc *PointCloud) AddAttribute(a *Attribute) (int32, error) {
	if a == nil {
		return -1, fmt.Errorf("%w: nil attribute", errs.ErrInvalidAttribute)
	}
	if len(pc.attributes) >= math.MaxUint16 {
		return -1, fmt.Errorf("%w: too many attributes", errs.ErrInvalidAttribute)
	}
	if len(pc.attributes) > 0 && a.NumPoints() != pc.NumPoints() {
		return -1, fmt.Errorf("%w: attribute has %d points, point cloud has %d",
			errs.ErrAttributeSizeMismatch, a.NumPoints(), pc.NumPoints())
	}

	pc.attributes = append(pc.attributes, a)

	return int32(len(pc.attributes) - 1), nil //nolint:gosec
}

// NumAttributes returns the number of attributes.
func (pc *PointCloud) NumAttributes() int {
	return len(pc.attributes)
}

// Attribute returns the attribute with the given id, or nil if out of range.
func (pc *PointCloud) Attribute(id int) *Attribute {
	if id < 0 || id >= len(pc.attributes) {
		return nil
	}

	return pc.attributes[id]
}

// NamedAttributeID returns the id of the first attribute of the given type, or -1.
func (pc *PointCloud) NamedAttributeID(t format.AttributeType) int {
	for i, a := range pc.attributes {
		if a.Type() == t {
			return i
		}
	}

	return -1
}

// NumPoints returns the number of points, 0 for a point cloud without attributes.
func (pc *PointCloud) NumPoints() int {
	if len(pc.attributes) == 0 {
		return 0
	}

	return pc.attributes[0].NumPoints()
}

// Mesh is a point cloud plus triangle connectivity.
type Mesh struct {
	pc    PointCloud
	faces [][3]uint32
}

// NewMesh creates a mesh over the given attributes.
func NewMesh(attrs ...*Attribute) (*Mesh, error) {
	m := &Mesh{}
	for _, a := range attrs {
		if _, err := m.pc.AddAttribute(a); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Mesh) sealed() {}

// Kind implements Geometry.
func (m *Mesh) Kind() format.GeometryKind { return format.KindMesh }

// PointCloud returns the mesh's point cloud view. Attributes added through it belong
// to the mesh.
func (m *Mesh) PointCloud() *PointCloud { return &m.pc }

// AddFace appends a triangle. Indices must refer to existing points.
func (m *Mesh) AddFace(a, b, c uint32) error {
	n := uint32(m.pc.NumPoints()) //nolint:gosec
	if a >= n || b >= n || c >= n {
		return fmt.Errorf("%w: face (%d, %d, %d) references point beyond %d", errs.ErrInvalidFace, a, b, c, n)
	}
	if a == b || b == c || a == c {
		return fmt.Errorf("%w: degenerate face (%d, %d, %d)", errs.ErrInvalidFace, a, b, c)
	}

	m.faces = append(m.faces, [3]uint32{a, b, c})

	return nil
}

// NumFaces returns the number of triangles.
func (m *Mesh) NumFaces() int {
	return len(m.faces)
}

// Face returns triangle i.
func (m *Mesh) Face(i int) [3]uint32 {
	return m.faces[i]
}

// Faces returns all triangles. The caller must not modify the slice.
func (m *Mesh) Faces() [][3]uint32 {
	return m.faces
}
