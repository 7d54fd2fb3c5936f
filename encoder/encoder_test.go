package encoder

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arloliu/meshpack/buffer"
	"github.com/arloliu/meshpack/config"
	"github.com/arloliu/meshpack/errs"
	"github.com/arloliu/meshpack/format"
	"github.com/arloliu/meshpack/geometry"
	"github.com/arloliu/meshpack/section"
)

// fakeEncoder records which collaborator was built and writes its name to the buffer.
type fakeEncoder struct {
	rec  *recorder
	name string
	err  error
	pc   *geometry.PointCloud
	mesh *geometry.Mesh
}

func (f *fakeEncoder) SetPointCloud(pc *geometry.PointCloud) { f.pc = pc }
func (f *fakeEncoder) SetMesh(m *geometry.Mesh)              { f.mesh = m }

func (f *fakeEncoder) Encode(opts *config.Options, out *buffer.Buffer) error {
	f.rec.encoded = append(f.rec.encoded, f)
	f.rec.opts = opts
	if f.err != nil {
		return f.err
	}
	_, _ = out.Write([]byte(f.name))

	return nil
}

type recorder struct {
	built   []string
	encoded []*fakeEncoder
	opts    *config.Options
	err     error
}

func (r *recorder) factories() Factories {
	build := func(name string) *fakeEncoder {
		r.built = append(r.built, name)
		return &fakeEncoder{rec: r, name: name, err: r.err}
	}

	return Factories{
		PointCloudSequential: func() PointCloudEncoder { return build("pc-sequential") },
		PointCloudKdTree:     func() PointCloudEncoder { return build("pc-kdtree") },
		MeshSequential:       func() MeshEncoder { return build("mesh-sequential") },
		MeshEdgebreaker:      func() MeshEncoder { return build("mesh-edgebreaker") },
	}
}

func withFakes(t *testing.T, e *Encoder) *recorder {
	t.Helper()
	rec := &recorder{}
	e.SetFactories(rec.factories())

	return rec
}

func attribute[T geometry.Number](t *testing.T, attType format.AttributeType, comps int, values []T) *geometry.Attribute {
	t.Helper()
	att, err := geometry.NewAttribute(attType, comps, values)
	require.NoError(t, err)

	return att
}

func uint32Positions(t *testing.T) *geometry.Attribute {
	return attribute(t, format.AttributePosition, 3, []uint32{0, 0, 0, 1, 2, 3, 4, 5, 6})
}

func float32Positions(t *testing.T) *geometry.Attribute {
	return attribute(t, format.AttributePosition, 3, []float32{0, 0, 0, 1, 2, 3, 4, 5, 6})
}

func cloud(t *testing.T, attrs ...*geometry.Attribute) *geometry.PointCloud {
	t.Helper()
	pc, err := geometry.NewPointCloud(attrs...)
	require.NoError(t, err)

	return pc
}

func triangle(t *testing.T) *geometry.Mesh {
	t.Helper()
	m, err := geometry.NewMesh(float32Positions(t))
	require.NoError(t, err)
	require.NoError(t, m.AddFace(0, 1, 2))

	return m
}

func TestEncodeToBuffer_PointCloudSelection(t *testing.T) {
	colors := func(t *testing.T) *geometry.Attribute {
		return attribute(t, format.AttributeColor, 3, []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9})
	}

	tests := []struct {
		name  string
		attrs func(t *testing.T) []*geometry.Attribute
		opts  []config.Option
		want  string
	}{
		{
			name:  "uint32 position below max speed",
			attrs: func(t *testing.T) []*geometry.Attribute { return []*geometry.Attribute{uint32Positions(t)} },
			want:  "pc-kdtree",
		},
		{
			name:  "uint32 position at max speed",
			attrs: func(t *testing.T) []*geometry.Attribute { return []*geometry.Attribute{uint32Positions(t)} },
			opts:  []config.Option{config.WithSpeed(10, 10)},
			want:  "pc-sequential",
		},
		{
			name:  "decoding speed alone reaches max tier",
			attrs: func(t *testing.T) []*geometry.Attribute { return []*geometry.Attribute{uint32Positions(t)} },
			opts:  []config.Option{config.WithSpeed(0, 10)},
			want:  "pc-sequential",
		},
		{
			name:  "float32 position without quantization",
			attrs: func(t *testing.T) []*geometry.Attribute { return []*geometry.Attribute{float32Positions(t)} },
			want:  "pc-sequential",
		},
		{
			name:  "float32 position with 11 quantization bits",
			attrs: func(t *testing.T) []*geometry.Attribute { return []*geometry.Attribute{float32Positions(t)} },
			opts:  []config.Option{config.WithAttributeQuantization(0, 11)},
			want:  "pc-kdtree",
		},
		{
			name:  "two attributes",
			attrs: func(t *testing.T) []*geometry.Attribute { return []*geometry.Attribute{uint32Positions(t), colors(t)} },
			want:  "pc-sequential",
		},
		{
			name:  "single non-position attribute",
			attrs: func(t *testing.T) []*geometry.Attribute { return []*geometry.Attribute{colors(t)} },
			want:  "pc-sequential",
		},
		{
			name: "two-component position",
			attrs: func(t *testing.T) []*geometry.Attribute {
				return []*geometry.Attribute{attribute(t, format.AttributePosition, 2, []uint32{1, 2, 3, 4})}
			},
			want: "pc-sequential",
		},
		{
			// An explicit sequential request does not stop automatic k-d tree
			// selection below the maximum speed. This is deliberate.
			name:  "explicit sequential on eligible cloud",
			attrs: func(t *testing.T) []*geometry.Attribute { return []*geometry.Attribute{uint32Positions(t)} },
			opts:  []config.Option{config.WithEncodingMethod(format.PointCloudSequential)},
			want:  "pc-kdtree",
		},
		{
			name:  "explicit sequential at max speed",
			attrs: func(t *testing.T) []*geometry.Attribute { return []*geometry.Attribute{uint32Positions(t)} },
			opts:  []config.Option{config.WithEncodingMethod(format.PointCloudSequential), config.WithSpeed(10, 10)},
			want:  "pc-sequential",
		},
		{
			name:  "explicit k-d tree at max speed",
			attrs: func(t *testing.T) []*geometry.Attribute { return []*geometry.Attribute{uint32Positions(t)} },
			opts:  []config.Option{config.WithEncodingMethod(format.PointCloudKdTree), config.WithSpeed(10, 10)},
			want:  "pc-kdtree",
		},
		{
			// Unknown point cloud methods fall through to sequential, unlike meshes.
			name:  "unknown explicit method",
			attrs: func(t *testing.T) []*geometry.Attribute { return []*geometry.Attribute{colors(t), colors(t)} },
			opts:  []config.Option{config.WithEncodingMethod(7)},
			want:  "pc-sequential",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := cloud(t, tt.attrs(t)...)
			e, err := New(pc, tt.opts...)
			require.NoError(t, err)
			rec := withFakes(t, e)

			buf := buffer.New(0)
			require.NoError(t, e.EncodeToBuffer(buf))
			require.Equal(t, []string{tt.want}, rec.built)
			require.Equal(t, tt.want, string(buf.Bytes()))
			require.Same(t, pc, rec.encoded[0].pc)
			require.Same(t, e.Options(), rec.opts)
		})
	}
}

func TestEncodeToBuffer_ExplicitKdTreeRejected(t *testing.T) {
	colors := attribute(t, format.AttributeColor, 3, []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9})

	tests := []struct {
		name string
		pc   *geometry.PointCloud
	}{
		{"two attributes", cloud(t, uint32Positions(t), colors)},
		{"no attributes", cloud(t)},
		{"float32 without quantization", cloud(t, float32Positions(t))},
		{"non-position attribute", cloud(t, colors)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.pc, config.WithEncodingMethod(format.PointCloudKdTree))
			require.NoError(t, err)
			rec := withFakes(t, e)

			buf := buffer.New(0)
			_, _ = buf.Write([]byte("keep"))

			err = e.EncodeToBuffer(buf)
			require.ErrorIs(t, err, errs.ErrInvalidEncodingMethod)
			require.Empty(t, rec.built)
			require.Equal(t, "keep", string(buf.Bytes()))
		})
	}
}

func TestEncodeToBuffer_MeshSelection(t *testing.T) {
	tests := []struct {
		name string
		opts []config.Option
		want string
	}{
		{"default speed", nil, "mesh-edgebreaker"},
		{"slowest", []config.Option{config.WithSpeed(0, 0)}, "mesh-edgebreaker"},
		{"speed 9", []config.Option{config.WithSpeed(9, 9)}, "mesh-edgebreaker"},
		{"max speed", []config.Option{config.WithSpeed(10, 10)}, "mesh-sequential"},
		{"explicit sequential", []config.Option{config.WithEncodingMethod(format.MeshSequential)}, "mesh-sequential"},
		{
			"explicit edgebreaker at max speed",
			[]config.Option{config.WithEncodingMethod(format.MeshEdgebreaker), config.WithSpeed(10, 10)},
			"mesh-edgebreaker",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := triangle(t)
			e, err := New(m, tt.opts...)
			require.NoError(t, err)
			rec := withFakes(t, e)

			buf := buffer.New(0)
			require.NoError(t, e.EncodeToBuffer(buf))
			require.Equal(t, []string{tt.want}, rec.built)
			require.Same(t, m, rec.encoded[0].mesh)
			require.Nil(t, rec.encoded[0].pc)
		})
	}
}

// Meshes reject unknown methods while point clouds fall back to sequential.
func TestEncodeToBuffer_MeshUnknownMethod(t *testing.T) {
	e, err := New(triangle(t), config.WithEncodingMethod(5))
	require.NoError(t, err)
	rec := withFakes(t, e)

	buf := buffer.New(0)
	require.ErrorIs(t, e.EncodeToBuffer(buf), errs.ErrInvalidEncodingMethod)
	require.Empty(t, rec.built)
	require.Zero(t, buf.Len())
}

// Keyed methods outside the int8 range must not wrap onto a valid method.
func TestEncodeToBuffer_KeyedMethodOutOfRange(t *testing.T) {
	for _, v := range []int{255, 256, 257} {
		t.Run(strconv.Itoa(v), func(t *testing.T) {
			e := NewForMesh(triangle(t))
			e.Options().SetGlobalInt(config.KeyEncodingMethod, v)
			rec := withFakes(t, e)

			buf := buffer.New(0)
			require.ErrorIs(t, e.EncodeToBuffer(buf), errs.ErrInvalidEncodingMethod)
			require.Empty(t, rec.built)
			require.Zero(t, buf.Len())

			colors := attribute(t, format.AttributeColor, 3, []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9})
			pe := NewForPointCloud(cloud(t, uint32Positions(t), colors))
			pe.Options().SetGlobalInt(config.KeyEncodingMethod, v)
			prec := withFakes(t, pe)

			require.NoError(t, pe.EncodeToBuffer(buffer.New(0)))
			require.Equal(t, []string{"pc-sequential"}, prec.built)
		})
	}
}

func TestEncoder_SetOptionsZeroValue(t *testing.T) {
	e := NewForMesh(triangle(t))
	e.SetOptions(&config.Options{})
	rec := withFakes(t, e)

	require.NoError(t, e.EncodeToBuffer(buffer.New(0)))
	require.Equal(t, []string{"mesh-edgebreaker"}, rec.built)
	require.True(t, e.Options().BuiltInAttributeCompression())
	require.NoError(t, e.SetAttributeQuantization(0, 11))
}

func TestEncodeToBuffer_InvalidInput(t *testing.T) {
	var nilCloud *geometry.PointCloud
	var nilMesh *geometry.Mesh

	tests := []struct {
		name string
		enc  func(t *testing.T) *Encoder
		buf  *buffer.Buffer
	}{
		{"nil geometry", func(t *testing.T) *Encoder {
			e, err := New(nil)
			require.NoError(t, err)
			return e
		}, buffer.New(0)},
		{"typed nil point cloud", func(t *testing.T) *Encoder {
			e, err := New(nilCloud)
			require.NoError(t, err)
			return e
		}, buffer.New(0)},
		{"typed nil mesh", func(t *testing.T) *Encoder {
			e, err := New(nilMesh)
			require.NoError(t, err)
			return e
		}, buffer.New(0)},
		{"nil point cloud constructor", func(*testing.T) *Encoder { return NewForPointCloud(nil) }, buffer.New(0)},
		{"nil mesh constructor", func(*testing.T) *Encoder { return NewForMesh(nil) }, buffer.New(0)},
		{"nil buffer", func(t *testing.T) *Encoder { return NewForMesh(triangle(t)) }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.enc(t)
			rec := withFakes(t, e)
			require.ErrorIs(t, e.EncodeToBuffer(tt.buf), errs.ErrInvalidInput)
			require.Empty(t, rec.built)
		})
	}
}

func TestEncodeToBuffer_DelegatedErrorIdentity(t *testing.T) {
	sentinel := errors.New("collaborator failed")

	for _, g := range []geometry.Geometry{cloud(t, uint32Positions(t)), triangle(t)} {
		e, err := New(g)
		require.NoError(t, err)
		rec := &recorder{err: sentinel}
		e.SetFactories(rec.factories())

		err = e.EncodeToBuffer(buffer.New(0))
		require.Same(t, sentinel, err)
	}
}

func TestEncodeToBuffer_FreshEncoderPerCall(t *testing.T) {
	e := NewForPointCloud(cloud(t, uint32Positions(t)))
	rec := withFakes(t, e)

	require.NoError(t, e.EncodeToBuffer(buffer.New(0)))
	require.NoError(t, e.SetSpeedOptions(10, 10))
	require.NoError(t, e.EncodeToBuffer(buffer.New(0)))

	require.Equal(t, []string{"pc-kdtree", "pc-sequential"}, rec.built)
	require.NotSame(t, rec.encoded[0], rec.encoded[1])
}

func TestEncoder_QuantizationIsPerAttribute(t *testing.T) {
	e := NewForPointCloud(cloud(t, float32Positions(t)))
	rec := withFakes(t, e)

	require.NoError(t, e.SetAttributeQuantization(1, 11))
	require.NoError(t, e.EncodeToBuffer(buffer.New(0)))

	require.NoError(t, e.SetAttributeQuantization(0, 11))
	require.NoError(t, e.EncodeToBuffer(buffer.New(0)))

	require.Equal(t, []string{"pc-sequential", "pc-kdtree"}, rec.built)
	require.Equal(t, -1, e.Options().QuantizationBits(2, -1))
}

func TestEncoder_Mutators(t *testing.T) {
	e := NewForMesh(triangle(t))

	require.NoError(t, e.SetSpeedOptions(2, 4))
	require.Equal(t, 4, e.Options().Speed())
	require.ErrorIs(t, e.SetSpeedOptions(11, 0), errs.ErrInvalidOption)

	e.SetEncodingMethod(format.MeshSequential)
	require.Equal(t, format.MeshSequential, e.Options().EncodingMethod())

	e.SetUseBuiltInAttributeCompression(false)
	require.False(t, e.Options().BuiltInAttributeCompression())

	require.NoError(t, e.SetAttributePredictionScheme(0, format.PredictionNone))
	require.Equal(t, format.PredictionNone, e.Options().PredictionScheme(0, format.PredictionUndefined))
	require.ErrorIs(t, e.SetAttributePredictionScheme(0, 42), errs.ErrInvalidOption)

	require.ErrorIs(t, e.SetAttributeQuantization(0, 31), errs.ErrInvalidOption)

	e.Reset()
	require.Equal(t, format.MethodUnset, e.Options().EncodingMethod())
	require.Equal(t, format.DefaultSpeed, e.Options().Speed())
	require.True(t, e.Options().BuiltInAttributeCompression())
}

func TestEncoder_SetOptionsClones(t *testing.T) {
	opts, err := config.New(config.WithEncodingMethod(format.MeshSequential))
	require.NoError(t, err)

	e := NewForMesh(triangle(t))
	e.SetOptions(opts)
	opts.SetEncodingMethod(format.MeshEdgebreaker)
	require.Equal(t, format.MeshSequential, e.Options().EncodingMethod())

	e.SetOptions(nil)
	require.Equal(t, format.MethodUnset, e.Options().EncodingMethod())
}

func TestNew_InvalidOption(t *testing.T) {
	_, err := New(triangle(t), config.WithSpeed(-5, 0))
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}

func TestEncodeToBuffer_Deterministic(t *testing.T) {
	build := func() geometry.Geometry {
		m, err := geometry.NewMesh(
			attribute(t, format.AttributePosition, 3, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0}),
			attribute(t, format.AttributeNormal, 3, []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1}),
		)
		require.NoError(t, err)
		require.NoError(t, m.AddFace(0, 1, 2))
		require.NoError(t, m.AddFace(1, 3, 2))

		return m
	}

	for _, speed := range []int{0, 5, 10} {
		var outputs [][]byte
		for range 2 {
			e, err := New(build(), config.WithSpeed(speed, speed), config.WithAttributeQuantization(0, 12))
			require.NoError(t, err)
			buf := buffer.New(0)
			require.NoError(t, e.EncodeToBuffer(buf))
			outputs = append(outputs, buf.Bytes())
		}
		require.Equal(t, outputs[0], outputs[1])
	}
}

func TestEncodeToBuffer_RealEncoders(t *testing.T) {
	t.Run("point cloud k-d tree", func(t *testing.T) {
		e := NewForPointCloud(cloud(t, float32Positions(t)))
		require.NoError(t, e.SetAttributeQuantization(0, 11))

		buf := buffer.New(0)
		require.NoError(t, e.EncodeToBuffer(buf))

		h, err := section.ParseHeader(buf.Bytes())
		require.NoError(t, err)
		require.Equal(t, format.KindPointCloud, h.Kind)
		require.Equal(t, format.PointCloudKdTree, h.Method)
		require.Equal(t, uint32(3), h.NumPoints)
	})

	t.Run("mesh at max speed", func(t *testing.T) {
		e := NewForMesh(triangle(t))
		require.NoError(t, e.SetSpeedOptions(10, 10))

		buf := buffer.New(0)
		require.NoError(t, e.EncodeToBuffer(buf))

		h, err := section.ParseHeader(buf.Bytes())
		require.NoError(t, err)
		require.Equal(t, format.MeshSequential, h.Method)
		require.Equal(t, format.CompressionNone, h.Compression)
		require.Equal(t, uint32(1), h.NumFaces)
	})

	t.Run("delegated error", func(t *testing.T) {
		m, err := geometry.NewMesh(float32Positions(t))
		require.NoError(t, err)

		err = NewForMesh(m).EncodeToBuffer(buffer.New(0))
		require.ErrorIs(t, err, errs.ErrEmptyGeometry)
	})
}

func TestLogger_RecordsSelection(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	e := NewForPointCloud(cloud(t, uint32Positions(t)))
	withFakes(t, e)
	require.NoError(t, e.EncodeToBuffer(buffer.New(0)))

	entries := logs.FilterMessage("selected point cloud encoder").All()
	require.Len(t, entries, 1)
	require.Equal(t, "PointCloudKdTree", entries[0].ContextMap()["method"])

	e2 := NewForPointCloud(cloud(t, float32Positions(t)))
	e2.SetEncodingMethod(format.PointCloudKdTree)
	require.ErrorIs(t, e2.EncodeToBuffer(buffer.New(0)), errs.ErrInvalidEncodingMethod)
	require.Equal(t, 1, logs.FilterMessage("k-d tree encoding rejected").Len())
}

func BenchmarkEncodeToBuffer_Mesh(b *testing.B) {
	pos := make([]float32, 0, 3*33*33)
	for y := range 33 {
		for x := range 33 {
			pos = append(pos, float32(x), float32(y), float32(x*y)*0.01)
		}
	}
	att, err := geometry.NewAttribute(format.AttributePosition, 3, pos)
	require.NoError(b, err)
	m, err := geometry.NewMesh(att)
	require.NoError(b, err)
	for y := range 32 {
		for x := range 32 {
			v := uint32(y*33 + x)
			require.NoError(b, m.AddFace(v, v+1, v+33))
			require.NoError(b, m.AddFace(v+1, v+34, v+33))
		}
	}

	e, err := New(m, config.WithAttributeQuantization(0, 14))
	require.NoError(b, err)
	buf := buffer.New(0)

	for b.Loop() {
		buf.Reset()
		_ = e.EncodeToBuffer(buf)
	}
}
