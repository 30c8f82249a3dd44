package persistence

import (
	"fmt"
	"sync"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const (
	// maxZstdDecodedSize caps the memory a single zstd payload may decode
	// into. Larger inputs are stored uncompressed.
	maxZstdDecodedSize uint64 = 1 << 32

	// Upper bounds on decoded bytes per payload byte. An LZ4 sequence adds
	// at most 255 match bytes per length byte; a snappy copy emits at most
	// 64 bytes for a 3-byte tag.
	maxLZ4Expansion    = 255
	maxSnappyExpansion = 32
)

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxZstdDecodedSize),
	)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// compress encodes data with the requested codec. It falls back to
// CompressionNone when the codec does not shrink the data and reports the
// codec actually used.
func compress(data []byte, c Compression) ([]byte, Compression, error) {
	if c == CompressionNone || len(data) == 0 {
		return data, CompressionNone, nil
	}

	var out []byte
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, 0, err
		}
		out = buf[:n] // n == 0 means incompressible
	case CompressionZSTD:
		if uint64(len(data)) > maxZstdDecodedSize {
			return data, CompressionNone, nil
		}
		enc := getZstdEncoder()
		out = enc.EncodeAll(data, nil)
		putZstdEncoder(enc)
	case CompressionSnappy:
		out = snappy.Encode(nil, data)
	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}

	if len(out) == 0 || len(out) >= len(data) {
		return data, CompressionNone, nil
	}
	return out, c, nil
}

// checkExpansion rejects a rawSize that payload cannot decode to under a
// codec producing at most ratio bytes per input byte. It runs before any
// buffer is sized from rawSize.
func checkExpansion(payload []byte, rawSize int, ratio uint64) error {
	if uint64(rawSize) > ratio*uint64(len(payload)) {
		return fmt.Errorf("%w: %d payload bytes cannot decode to %d", ErrSizeMismatch, len(payload), rawSize)
	}
	return nil
}

// decompress reverses compress. rawSize is the expected decoded size.
func decompress(payload []byte, c Compression, rawSize int) ([]byte, error) {
	switch c {
	case CompressionNone:
		if len(payload) != rawSize {
			return nil, fmt.Errorf("%w: stored %d bytes, header says %d", ErrSizeMismatch, len(payload), rawSize)
		}
		return payload, nil

	case CompressionLZ4:
		if err := checkExpansion(payload, rawSize, maxLZ4Expansion); err != nil {
			return nil, err
		}
		out := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, err
		}
		if n != rawSize {
			return nil, fmt.Errorf("%w: decompressed %d bytes, header says %d", ErrSizeMismatch, n, rawSize)
		}
		return out, nil

	case CompressionZSTD:
		if uint64(rawSize) > maxZstdDecodedSize {
			return nil, fmt.Errorf("%w: %d bytes exceeds zstd limit %d", ErrSizeMismatch, rawSize, maxZstdDecodedSize)
		}
		var frame zstd.Header
		if err := frame.Decode(payload); err != nil {
			return nil, err
		}
		if frame.HasFCS && frame.FrameContentSize != uint64(rawSize) {
			return nil, fmt.Errorf("%w: zstd frame holds %d bytes, header says %d", ErrSizeMismatch, frame.FrameContentSize, rawSize)
		}

		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		out, err := dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, err
		}
		if len(out) != rawSize {
			return nil, fmt.Errorf("%w: decompressed %d bytes, header says %d", ErrSizeMismatch, len(out), rawSize)
		}
		return out, nil

	case CompressionSnappy:
		if err := checkExpansion(payload, rawSize, maxSnappyExpansion); err != nil {
			return nil, err
		}
		n, err := snappy.DecodedLen(payload)
		if err != nil {
			return nil, err
		}
		if n != rawSize {
			return nil, fmt.Errorf("%w: snappy block holds %d bytes, header says %d", ErrSizeMismatch, n, rawSize)
		}
		return snappy.Decode(make([]byte, rawSize), payload)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}
}
