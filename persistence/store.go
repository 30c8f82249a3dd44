package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/compactvec"
	"github.com/hupe1980/compactvec/blobstore"
)

// Save encodes cv and writes it to store under name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, cv *compactvec.CompactVector, opts ...Option) error {
	return save(ctx, store, name, cv, applyOptions(opts))
}

func save(ctx context.Context, store blobstore.BlobStore, name string, cv *compactvec.CompactVector, o options) (err error) {
	start := time.Now()
	var size int
	defer func() {
		o.metrics.RecordSave(size, time.Since(start), err)
		o.logger.LogSave(ctx, name, size, err)
	}()

	data, err := encode(cv, o)
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	size = len(data)

	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// Load reads the blob name from store and decodes it.
//
// A missing blob yields an error matching blobstore.ErrNotFound.
func Load(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (*compactvec.CompactVector, error) {
	return load(ctx, store, name, applyOptions(opts))
}

func load(ctx context.Context, store blobstore.BlobStore, name string, o options) (cv *compactvec.CompactVector, err error) {
	start := time.Now()
	var size int
	defer func() {
		o.metrics.RecordLoad(size, time.Since(start), err)
		o.logger.LogLoad(ctx, name, size, cv, err)
	}()

	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	size = len(data)

	cv, err = decode(data, o)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return cv, nil
}
