package persistence

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hupe1980/compactvec"
	"github.com/hupe1980/compactvec/blobstore"
	"github.com/hupe1980/compactvec/internal/mmap"
)

// SaveToFile atomically writes cv to filename: the container is written to
// a temp file in the same directory, synced, then renamed over filename.
func SaveToFile(filename string, cv *compactvec.CompactVector, opts ...Option) error {
	dir, base := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}
	return Save(context.Background(), blobstore.NewLocalStore(dir), base, cv, opts...)
}

// LoadFromFile reads a container written by SaveToFile.
//
// The file is memory-mapped and decoded in place, so only the decoded
// vector is allocated on the heap.
func LoadFromFile(filename string, opts ...Option) (cv *compactvec.CompactVector, err error) {
	o := applyOptions(opts)

	start := time.Now()
	var size int
	defer func() {
		o.metrics.RecordLoad(size, time.Since(start), err)
		o.logger.LogLoad(context.Background(), filename, size, cv, err)
	}()

	m, err := mmap.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filename, err)
	}
	defer func() {
		err = errors.Join(err, m.Close())
	}()

	size = m.Size()
	_ = m.Advise(mmap.AccessSequential)

	cv, err = decode(m.Bytes(), o)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filename, err)
	}
	return cv, nil
}
