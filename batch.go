package meshpack

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/meshpack/config"
	"github.com/arloliu/meshpack/geometry"
)

// EncodeBatch encodes several geometries concurrently with the same options.
//
// Each geometry gets its own encoder, so the geometries must not share mutable
// state. At most GOMAXPROCS encodes run at once. The first error cancels the
// remaining work and is returned; results are in input order.
func EncodeBatch(ctx context.Context, geometries []geometry.Geometry, opts ...config.Option) ([][]byte, error) {
	out := make([][]byte, len(geometries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, geom := range geometries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := Encode(geom, opts...)
			if err != nil {
				return err
			}
			out[i] = data

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
