package persistence

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/compactvec"
	"github.com/hupe1980/compactvec/internal/conv"
)

// Encode serializes cv into a container.
func Encode(cv *compactvec.CompactVector, opts ...Option) ([]byte, error) {
	o := applyOptions(opts)
	return encode(cv, o)
}

func encode(cv *compactvec.CompactVector, o options) ([]byte, error) {
	if !o.compression.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, o.compression)
	}

	raw, err := cv.MarshalBinary()
	if err != nil {
		return nil, err
	}

	payload, used, err := compress(raw, o.compression)
	if err != nil {
		return nil, fmt.Errorf("compress %s: %w", o.compression, err)
	}

	header := FileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: used,
		RawSize:     uint64(len(raw)),
		PayloadSize: uint64(len(payload)),
	}

	var buf bytes.Buffer
	buf.Grow(HeaderSize + len(payload))
	if err := binary.Write(&buf, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	header.Checksum = computeChecksum(out[:checksumOffset], payload)
	binary.LittleEndian.PutUint64(out[checksumOffset:], header.Checksum)

	return append(out, payload...), nil
}

// ReadHeader parses and validates the container header at the start of data.
func ReadHeader(data []byte) (*FileHeader, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncated, len(data), HeaderSize)
	}

	var header FileHeader
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if header.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, header.Magic)
	}
	if header.Version != Version {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVersion, header.Version)
	}
	if !header.Compression.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, header.Compression)
	}
	return &header, nil
}

// Decode parses a container produced by Encode.
func Decode(data []byte, opts ...Option) (*compactvec.CompactVector, error) {
	o := applyOptions(opts)
	return decode(data, o)
}

func decode(data []byte, o options) (*compactvec.CompactVector, error) {
	header, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}

	body := data[HeaderSize:]
	if uint64(len(body)) < header.PayloadSize {
		return nil, fmt.Errorf("%w: payload has %d bytes, header says %d", ErrTruncated, len(body), header.PayloadSize)
	}
	if uint64(len(body)) > header.PayloadSize {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSizeMismatch, uint64(len(body))-header.PayloadSize)
	}

	if actual := computeChecksum(data[:checksumOffset], body); actual != header.Checksum {
		return nil, &ChecksumMismatchError{Expected: header.Checksum, Actual: actual}
	}

	rawSize, err := conv.Uint64ToInt(header.RawSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSizeMismatch, err)
	}
	raw, err := decompress(body, header.Compression, rawSize)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", header.Compression, err)
	}

	r := bytes.NewReader(raw)
	cv, err := compactvec.ReadFrom(r, o.decodeOpts...)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d bytes left after vector", ErrSizeMismatch, r.Len())
	}
	return cv, nil
}
