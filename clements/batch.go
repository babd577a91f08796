// SPDX-License-Identifier: MIT

package clements

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/clements/matrix"
)

// DecomposeBatch decomposes independent matrices concurrently, at most
// WithConcurrency at a time. Results keep input order. The first failure
// cancels the remaining work and is returned with its index.
func DecomposeBatch(ctx context.Context, us []matrix.Matrix, opts ...Option) ([]*Decomposition, error) {
	o := gatherOptions(opts...)
	out := make([]*Decomposition, len(us))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, u := range us {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			dec, err := Decompose(u, opts...)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			out[i] = dec

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, clementsErrorf(opDecomposeBatch, err)
	}

	return out, nil
}

// ReconstructBatch is the concurrent counterpart of Reconstruct.
func ReconstructBatch(ctx context.Context, decs []*Decomposition, opts ...Option) ([]*matrix.Dense, error) {
	o := gatherOptions(opts...)
	out := make([]*matrix.Dense, len(decs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, dec := range decs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			u, err := Reconstruct(dec, opts...)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			out[i] = u

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, clementsErrorf(opReconstructBatch, err)
	}

	return out, nil
}
