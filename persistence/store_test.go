package persistence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hupe1980/compactvec"
	"github.com/hupe1980/compactvec/blobstore"
	"github.com/hupe1980/compactvec/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var errInjected = errors.New("injected failure")

// failingStore fails Put and Get for a single blob name.
type failingStore struct {
	blobstore.BlobStore
	name string
}

func (s *failingStore) Put(ctx context.Context, name string, data []byte) error {
	if name == s.name {
		return errInjected
	}
	return s.BlobStore.Put(ctx, name, data)
}

func (s *failingStore) Get(ctx context.Context, name string) ([]byte, error) {
	if name == s.name {
		return nil, errInjected
	}
	return s.BlobStore.Get(ctx, name)
}

func newTestLogger(buf *bytes.Buffer) *compactvec.Logger {
	return compactvec.NewLogger(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func randomVectors(t *testing.T, n int) map[string]*compactvec.CompactVector {
	t.Helper()
	rng := testutil.NewRNG(42)
	out := make(map[string]*compactvec.CompactVector, n)
	for i := range n {
		cv, err := compactvec.FromSlice(rng.Ints(100+i, 1<<uint(i%20+1)))
		require.NoError(t, err)
		out[fmt.Sprintf("vec-%02d.cv", i)] = cv
	}
	return out
}

func TestSaveLoad_MemoryStore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	metrics := &compactvec.BasicMetricsCollector{}
	var logs bytes.Buffer

	cv := repetitiveVector(t)
	opts := []Option{WithMetrics(metrics), WithLogger(newTestLogger(&logs)), WithCompression(CompressionZSTD)}

	require.NoError(t, Save(ctx, store, "ids.cv", cv, opts...))
	got, err := Load(ctx, store, "ids.cv", opts...)
	require.NoError(t, err)
	assert.True(t, cv.Equal(got))

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.SaveCount)
	assert.Equal(t, int64(1), stats.LoadCount)
	assert.Zero(t, stats.SaveErrors)
	assert.Zero(t, stats.LoadErrors)
	assert.Positive(t, stats.SaveBytes)
	assert.Equal(t, stats.SaveBytes, stats.LoadBytes)

	assert.Contains(t, logs.String(), "save completed")
	assert.Contains(t, logs.String(), "load completed")
	assert.Contains(t, logs.String(), "name=ids.cv")
}

func TestLoad_Missing(t *testing.T) {
	metrics := &compactvec.BasicMetricsCollector{}
	var logs bytes.Buffer

	_, err := Load(context.Background(), blobstore.NewMemoryStore(), "nope.cv",
		WithMetrics(metrics), WithLogger(newTestLogger(&logs)))
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
	assert.Equal(t, int64(1), metrics.GetStats().LoadErrors)
	assert.Contains(t, logs.String(), "load failed")
}

func TestLoad_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, Save(ctx, store, "a.cv", repetitiveVector(t)))

	data, err := store.Get(ctx, "a.cv")
	require.NoError(t, err)
	data[len(data)-1] ^= 0x01
	require.NoError(t, store.Put(ctx, "a.cv", data))

	_, err = Load(ctx, store, "a.cv")
	assert.True(t, IsChecksumMismatch(err))
	assert.Contains(t, err.Error(), "load a.cv")
}

func TestSave_StoreError(t *testing.T) {
	metrics := &compactvec.BasicMetricsCollector{}
	store := &failingStore{BlobStore: blobstore.NewMemoryStore(), name: "bad.cv"}

	err := Save(context.Background(), store, "bad.cv", repetitiveVector(t), WithMetrics(metrics))
	assert.ErrorIs(t, err, errInjected)
	assert.Equal(t, int64(1), metrics.GetStats().SaveErrors)
}

func TestSave_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Save(ctx, blobstore.NewMemoryStore(), "a.cv", repetitiveVector(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSaveLoadFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "positions.cv")
	cv, err := compactvec.FromSlice(testutil.NewRNG(3).WidthInts(1000, 33))
	require.NoError(t, err)

	require.NoError(t, SaveToFile(filename, cv, WithCompression(CompressionSnappy)))

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	metrics := &compactvec.BasicMetricsCollector{}
	got, err := LoadFromFile(filename, WithMetrics(metrics))
	require.NoError(t, err)
	assert.True(t, cv.Equal(got))
	assert.Equal(t, int64(1), metrics.GetStats().LoadCount)
	assert.Equal(t, info.Size(), metrics.GetStats().LoadBytes)

	// Overwrite in place.
	cv2, err := compactvec.FromSlice([]uint64{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, SaveToFile(filename, cv2))

	got, err = LoadFromFile(filename)
	require.NoError(t, err)
	assert.True(t, cv2.Equal(got))

	entries, err := os.ReadDir(filepath.Dir(filename))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.cv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFromFile_Corrupt(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bad.cv")
	require.NoError(t, os.WriteFile(filename, []byte("not a container"), 0o600))

	_, err := LoadFromFile(filename)
	assert.ErrorIs(t, err, ErrTruncated)

	require.NoError(t, os.WriteFile(filename, nil, 0o600))
	_, err = LoadFromFile(filename)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestSaveAllLoadAll(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewLocalStore(t.TempDir())
	vectors := randomVectors(t, 12)
	var logs bytes.Buffer

	require.NoError(t, SaveAll(ctx, store, vectors, WithConcurrency(3), WithLogger(newTestLogger(&logs))))
	assert.Contains(t, logs.String(), "op=save count=12")

	names, err := store.List(ctx, "vec-")
	require.NoError(t, err)
	assert.Len(t, names, len(vectors))

	loaded, err := LoadAll(ctx, store, names, WithConcurrency(3), WithLogger(newTestLogger(&logs)))
	require.NoError(t, err)
	require.Len(t, loaded, len(vectors))
	for name, cv := range vectors {
		assert.True(t, cv.Equal(loaded[name]), name)
	}
	assert.Contains(t, logs.String(), "op=load count=12")
}

func TestSaveAll_Empty(t *testing.T) {
	require.NoError(t, SaveAll(context.Background(), blobstore.NewMemoryStore(), nil))

	loaded, err := LoadAll(context.Background(), blobstore.NewMemoryStore(), nil)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSaveAll_PropagatesFailure(t *testing.T) {
	vectors := randomVectors(t, 8)
	store := &failingStore{BlobStore: blobstore.NewMemoryStore(), name: "vec-03.cv"}
	var logs bytes.Buffer

	err := SaveAll(context.Background(), store, vectors, WithConcurrency(2), WithLogger(newTestLogger(&logs)))
	assert.ErrorIs(t, err, errInjected)
	assert.Contains(t, logs.String(), "batch completed with failures")
}

func TestLoadAll_PropagatesFailure(t *testing.T) {
	ctx := context.Background()
	mem := blobstore.NewMemoryStore()
	vectors := randomVectors(t, 4)
	require.NoError(t, SaveAll(ctx, mem, vectors))

	store := &failingStore{BlobStore: mem, name: "vec-01.cv"}
	loaded, err := LoadAll(ctx, store, []string{"vec-00.cv", "vec-01.cv", "vec-02.cv"})
	assert.ErrorIs(t, err, errInjected)
	assert.Nil(t, loaded)

	_, err = LoadAll(ctx, mem, []string{"vec-00.cv", "missing.cv"})
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestSaveAll_RateLimit(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	vectors := randomVectors(t, 5)

	require.NoError(t, SaveAll(ctx, store, vectors, WithRateLimit(rate.Inf, 1)))
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, names, 5)
}

func TestSaveAll_RateLimitExceedsDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	store := blobstore.NewMemoryStore()
	vectors := randomVectors(t, 3)

	// One token up front, the next one in 1000s.
	err := SaveAll(ctx, store, vectors, WithRateLimit(rate.Limit(0.001), 1))
	require.Error(t, err)

	names, listErr := store.List(context.Background(), "")
	require.NoError(t, listErr)
	assert.Len(t, names, 1)
}
