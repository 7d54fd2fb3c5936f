package stream

import (
	"bytes"
	"testing"

	"github.com/arloliu/meshpack/buffer"
	"github.com/arloliu/meshpack/compress"
	"github.com/arloliu/meshpack/config"
	"github.com/arloliu/meshpack/format"
	"github.com/arloliu/meshpack/section"
	"github.com/stretchr/testify/require"
)

func TestFinish(t *testing.T) {
	body := bytes.Repeat([]byte{1, 2, 3, 4}, 512)

	tests := []struct {
		name    string
		opts    []config.Option
		want    format.CompressionType
		builtIn bool
	}{
		{"default speed", nil, format.CompressionS2, true},
		{"slowest", []config.Option{config.WithSpeed(0, 0)}, format.CompressionZstd, true},
		{"fast", []config.Option{config.WithSpeed(8, 8)}, format.CompressionLZ4, true},
		{"fastest", []config.Option{config.WithSpeed(10, 10)}, format.CompressionNone, true},
		{"built-in disabled", []config.Option{config.WithBuiltInAttributeCompression(false)}, format.CompressionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := config.New(tt.opts...)
			require.NoError(t, err)

			out := buffer.New(0)
			h := section.NewHeader(format.KindPointCloud, format.PointCloudSequential)
			require.NoError(t, Finish(out, h, body, opts))

			parsed, err := section.ParseHeader(out.Bytes())
			require.NoError(t, err)
			require.Equal(t, tt.want, parsed.Compression)
			require.Equal(t, tt.builtIn, parsed.HasFlag(section.FlagBuiltInCompression))

			payload, err := parsed.Body(out.Bytes())
			require.NoError(t, err)

			codec, err := compress.CreateCodec(parsed.Compression, "body")
			require.NoError(t, err)
			decoded, err := codec.Decompress(payload)
			require.NoError(t, err)
			require.Equal(t, body, decoded)
		})
	}
}

func TestFinish_AppendsAfterExistingData(t *testing.T) {
	opts := config.NewDefault()
	out := buffer.New(0)
	_, _ = out.Write([]byte("existing"))

	h := section.NewHeader(format.KindMesh, format.MeshSequential)
	require.NoError(t, Finish(out, h, []byte{1, 2, 3}, opts))

	require.Equal(t, []byte("existing"), out.Bytes()[:8])
	_, err := section.ParseHeader(out.Bytes()[8:])
	require.NoError(t, err)
}
