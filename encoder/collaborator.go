package encoder

import (
	"github.com/arloliu/meshpack/buffer"
	"github.com/arloliu/meshpack/config"
	"github.com/arloliu/meshpack/geometry"
	"github.com/arloliu/meshpack/mesh"
	"github.com/arloliu/meshpack/pointcloud"
)

// PointCloudEncoder is a concrete point cloud encoding algorithm.
type PointCloudEncoder interface {
	SetPointCloud(pc *geometry.PointCloud)
	Encode(opts *config.Options, out *buffer.Buffer) error
}

// MeshEncoder is a concrete mesh encoding algorithm.
type MeshEncoder interface {
	SetMesh(m *geometry.Mesh)
	Encode(opts *config.Options, out *buffer.Buffer) error
}

// Factories constructs the concrete encoders an Encoder delegates to.
// A nil field falls back to the package's implementation.
type Factories struct {
	PointCloudSequential func() PointCloudEncoder
	PointCloudKdTree     func() PointCloudEncoder
	MeshSequential       func() MeshEncoder
	MeshEdgebreaker      func() MeshEncoder
}

// DefaultFactories returns factories for the encoders of the pointcloud and mesh
// packages.
func DefaultFactories() Factories {
	return Factories{
		PointCloudSequential: func() PointCloudEncoder { return pointcloud.NewSequentialEncoder() },
		PointCloudKdTree:     func() PointCloudEncoder { return pointcloud.NewKdTreeEncoder() },
		MeshSequential:       func() MeshEncoder { return mesh.NewSequentialEncoder() },
		MeshEdgebreaker:      func() MeshEncoder { return mesh.NewEdgebreakerEncoder() },
	}
}

func (f Factories) withDefaults() Factories {
	def := DefaultFactories()
	if f.PointCloudSequential == nil {
		f.PointCloudSequential = def.PointCloudSequential
	}
	if f.PointCloudKdTree == nil {
		f.PointCloudKdTree = def.PointCloudKdTree
	}
	if f.MeshSequential == nil {
		f.MeshSequential = def.MeshSequential
	}
	if f.MeshEdgebreaker == nil {
		f.MeshEdgebreaker = def.MeshEdgebreaker
	}

	return f
}
