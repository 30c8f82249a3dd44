package persistence

import (
	"errors"
	"fmt"
)

const (
	// MagicNumber identifies compactvec containers (ASCII: "CVEC")
	MagicNumber = 0x43564543
	// Version is the current container format version.
	Version = 1

	// HeaderSize is the encoded size of FileHeader.
	HeaderSize = 32

	// checksumOffset is where the checksum starts inside the header; the
	// bytes before it are covered by the checksum.
	checksumOffset = 24
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrUnknownCompression = errors.New("unknown compression")
	ErrTruncated          = errors.New("truncated container")
	ErrSizeMismatch       = errors.New("container size mismatch")
)

// Compression selects the payload codec.
type Compression uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, good for hot data).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD compression (better ratio, good for cold data).
	CompressionZSTD Compression = 2
	// CompressionSnappy uses Snappy block compression.
	CompressionSnappy Compression = 3
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	case CompressionSnappy:
		return "snappy"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

func (c Compression) valid() bool {
	return c <= CompressionSnappy
}

// FileHeader is the 32-byte header at the start of every container.
type FileHeader struct {
	Magic       uint32      // 0x43564543 ("CVEC")
	Version     uint16      // Container format version
	Compression Compression // Payload codec
	Flags       uint8       // Reserved, zero
	RawSize     uint64      // Size of the uncompressed compactvec encoding
	PayloadSize uint64      // Size of the stored payload
	Checksum    uint64      // xxhash64 of header[:24] and payload
}
