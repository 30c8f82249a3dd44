package persistence

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/hupe1980/compactvec"
	"github.com/hupe1980/compactvec/blobstore"
	"golang.org/x/sync/errgroup"
)

// SaveAll writes every vector in vectors to store, keyed by name, with at
// most WithConcurrency writes in flight. The first failure cancels the
// remaining writes and is returned; blobs already written are kept.
func SaveAll(ctx context.Context, store blobstore.BlobStore, vectors map[string]*compactvec.CompactVector, opts ...Option) error {
	o := applyOptions(opts)

	names := make([]string, 0, len(vectors))
	for name := range vectors {
		names = append(names, name)
	}
	slices.Sort(names)

	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	var waitErr error
	for _, name := range names {
		if waitErr = wait(gctx, o); waitErr != nil {
			break
		}
		cv := vectors[name]
		g.Go(func() error {
			if err := save(gctx, store, name, cv, o); err != nil {
				failed.Add(1)
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = waitErr
	}
	o.logger.LogBatch(ctx, "save", len(names), int(failed.Load()))
	return err
}

// LoadAll reads the named blobs from store with at most WithConcurrency
// reads in flight. It returns the vectors keyed by name, or the first error.
func LoadAll(ctx context.Context, store blobstore.BlobStore, names []string, opts ...Option) (map[string]*compactvec.CompactVector, error) {
	o := applyOptions(opts)

	results := make([]*compactvec.CompactVector, len(names))
	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	var waitErr error
	for i, name := range names {
		if waitErr = wait(gctx, o); waitErr != nil {
			break
		}
		g.Go(func() error {
			cv, err := load(gctx, store, name, o)
			if err != nil {
				failed.Add(1)
				return err
			}
			results[i] = cv
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = waitErr
	}
	o.logger.LogBatch(ctx, "load", len(names), int(failed.Load()))
	if err != nil {
		return nil, err
	}

	out := make(map[string]*compactvec.CompactVector, len(names))
	for i, name := range names {
		out[name] = results[i]
	}
	return out, nil
}

// wait blocks on the rate limiter, if any.
func wait(ctx context.Context, o options) error {
	if o.limiter == nil {
		return ctx.Err()
	}
	return o.limiter.Wait(ctx)
}
