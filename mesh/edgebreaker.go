package mesh

import (
	"github.com/arloliu/meshpack/buffer"
	"github.com/arloliu/meshpack/config"
	"github.com/arloliu/meshpack/format"
	"github.com/arloliu/meshpack/geometry"
	"github.com/arloliu/meshpack/internal/attrcodec"
	"github.com/arloliu/meshpack/internal/pool"
	"github.com/arloliu/meshpack/internal/stream"
	"github.com/arloliu/meshpack/section"
)

// Traversal opcodes.
//
// A start opcode opens a new connected component: the low 3 bits flag which of the
// face's corners refer to an already numbered vertex.
//
// A face opcode attaches a face to an edge of an already decoded face:
//
//	bits 0-1  edge of the parent face (corner i to corner i+1)
//	bit  2    face lists the shared edge in the same direction as its parent
//	bits 3-4  corner of the face holding the opposite vertex
//	bit  5    opposite vertex was already numbered
//
// opEnd closes the list of faces attached to the face popped last.
const (
	opStart       byte = 0x80
	opEnd         byte = 0x03
	opRevisit     byte = 0x20
	opFlipped     byte = 0x04
	opCornerShift      = 3
)

// EdgebreakerEncoder encodes mesh connectivity by traversing faces across shared
// edges and renumbering vertices in traversal order.
//
// Body layout:
//
//	uvarint(len(opcodes)) opcodes
//	uvarint(len(refs)) refs
//	attributes in traversal order
//
// refs holds, for every revisited vertex, the distance back from the most recently
// numbered vertex as a uvarint.
type EdgebreakerEncoder struct {
	m *geometry.Mesh
}

// NewEdgebreakerEncoder creates an edgebreaker mesh encoder.
func NewEdgebreakerEncoder() *EdgebreakerEncoder {
	return &EdgebreakerEncoder{}
}

// SetMesh binds the mesh to encode.
func (e *EdgebreakerEncoder) SetMesh(m *geometry.Mesh) {
	e.m = m
}

// Method returns format.MeshEdgebreaker.
func (e *EdgebreakerEncoder) Method() format.EncodingMethod {
	return format.MeshEdgebreaker
}

// Encode appends the encoded mesh to out.
func (e *EdgebreakerEncoder) Encode(opts *config.Options, out *buffer.Buffer) error {
	if err := checkMesh(e.m); err != nil {
		return err
	}

	refs := pool.GetBodyBuffer()
	defer pool.PutBodyBuffer(refs)

	tr := newTraversal(e.m, refs)
	tr.run()

	body := pool.GetBodyBuffer()
	defer pool.PutBodyBuffer(body)

	body.AppendUvarint(uint64(len(tr.opcodes)))
	_, _ = body.Write(tr.opcodes)
	body.AppendUvarint(uint64(refs.Len())) //nolint:gosec
	_, _ = body.Write(refs.Bytes())

	quantized, err := attrcodec.EncodeAll(body, e.m.PointCloud(), opts, tr.order)
	if err != nil {
		return err
	}

	h := newHeader(e.m, format.MeshEdgebreaker)
	h.SetFlag(section.FlagQuantized, quantized)

	return stream.Finish(out, h, body.Bytes(), opts)
}

type edgeKey struct {
	a, b uint32
}

func keyOf(a, b uint32) edgeKey {
	if a > b {
		a, b = b, a
	}

	return edgeKey{a: a, b: b}
}

type traversal struct {
	faces   [][3]uint32
	edges   map[edgeKey][]int32
	visited []bool
	// ids maps an original vertex to its traversal number, -1 if not yet reached.
	ids     []int32
	order   []int
	opcodes []byte
	refs    *buffer.Buffer
	stack   []int32
}

func newTraversal(m *geometry.Mesh, refs *buffer.Buffer) *traversal {
	faces := m.Faces()
	numPoints := m.PointCloud().NumPoints()

	tr := &traversal{
		faces:   faces,
		edges:   make(map[edgeKey][]int32, len(faces)*3/2),
		visited: make([]bool, len(faces)),
		ids:     make([]int32, numPoints),
		order:   make([]int, 0, numPoints),
		opcodes: make([]byte, 0, len(faces)),
		refs:    refs,
	}
	for i := range tr.ids {
		tr.ids[i] = -1
	}
	for f, face := range faces {
		for i := range 3 {
			k := keyOf(face[i], face[(i+1)%3])
			tr.edges[k] = append(tr.edges[k], int32(f)) //nolint:gosec
		}
	}

	return tr
}

func (tr *traversal) run() {
	for f := range tr.faces {
		if tr.visited[f] {
			continue
		}
		tr.start(int32(f)) //nolint:gosec
		tr.walk()
	}

	// Points referenced by no face keep their relative order at the end.
	for v, id := range tr.ids {
		if id < 0 {
			tr.number(uint32(v)) //nolint:gosec
		}
	}
}

func (tr *traversal) start(f int32) {
	tr.visited[f] = true
	op := opStart
	for i, v := range tr.faces[f] {
		if tr.visit(v) {
			op |= 1 << i
		}
	}
	tr.opcodes = append(tr.opcodes, op)
	tr.stack = append(tr.stack[:0], f)
}

func (tr *traversal) walk() {
	for len(tr.stack) > 0 {
		f := tr.stack[len(tr.stack)-1]
		tr.stack = tr.stack[:len(tr.stack)-1]
		face := tr.faces[f]

		for e := range 3 {
			a, b := face[e], face[(e+1)%3]
			for _, g := range tr.edges[keyOf(a, b)] {
				if tr.visited[g] {
					continue
				}
				tr.visited[g] = true
				tr.attach(byte(e), a, b, tr.faces[g])
				tr.stack = append(tr.stack, g)
			}
		}
		tr.opcodes = append(tr.opcodes, opEnd)
	}
}

// attach emits the opcode of face g sharing edge (a, b) with its parent.
func (tr *traversal) attach(edge byte, a, b uint32, g [3]uint32) {
	op := edge
	corner := 0
	for i, v := range g {
		if v == a && g[(i+1)%3] == b {
			op |= opFlipped
		}
		if v != a && v != b {
			corner = i
		}
	}
	op |= byte(corner) << opCornerShift //nolint:gosec

	if tr.visit(g[corner]) {
		op |= opRevisit
	}
	tr.opcodes = append(tr.opcodes, op)
}

// visit numbers v if it has not been reached yet, otherwise records a back
// reference. It reports whether v was already numbered.
func (tr *traversal) visit(v uint32) bool {
	id := tr.ids[v]
	if id < 0 {
		tr.number(v)
		return false
	}

	last := int32(len(tr.order) - 1) //nolint:gosec
	tr.refs.AppendUvarint(uint64(last - id))

	return true
}

func (tr *traversal) number(v uint32) {
	tr.ids[v] = int32(len(tr.order)) //nolint:gosec
	tr.order = append(tr.order, int(v))
}
