package compactvec

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_SaveLoad(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	cv, err := FromSlice([]uint64{1, 2, 3})
	require.NoError(t, err)

	logger.LogSave(ctx, "postings.cv", 2048, nil)
	assert.Contains(t, buf.String(), "save completed")
	assert.Contains(t, buf.String(), "2.0 KiB")

	buf.Reset()
	logger.LogLoad(ctx, "postings.cv", 64, cv, nil)
	assert.Contains(t, buf.String(), "load completed")
	assert.Contains(t, buf.String(), "width=2")

	buf.Reset()
	logger.LogLoad(ctx, "postings.cv", 0, nil, errors.New("boom"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "boom")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, nil))

	cv, err := WithLen(3, 5)
	require.NoError(t, err)

	logger.WithName("a.cv").WithVector(cv).Info("hello")
	assert.Contains(t, buf.String(), "name=a.cv")
	assert.Contains(t, buf.String(), "len=3")
	assert.Contains(t, buf.String(), "width=5")

	buf.Reset()
	logger.LogBatch(context.Background(), "save", 4, 1)
	assert.Contains(t, buf.String(), "failed=1")
}

func TestNoopLogger(t *testing.T) {
	logger := NoopLogger()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
