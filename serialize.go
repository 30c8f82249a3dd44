package compactvec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/compactvec/internal/bitvec"
	"github.com/hupe1980/compactvec/internal/conv"
)

// trailerSize is the size of the len and width fields written after the
// bit store.
const trailerSize = 16

// SizeInBytes returns the number of bytes WriteTo will produce.
func (cv *CompactVector) SizeInBytes() int {
	return cv.store.SerializedSize() + trailerSize
}

// WriteTo serializes the vector as the bit store's own encoding followed by
// len and width as little-endian uint64 values. The returned count is the
// number of bytes written to w. It implements io.WriterTo.
func (cv *CompactVector) WriteTo(w io.Writer) (int64, error) {
	n, err := cv.store.WriteTo(w)
	if err != nil {
		return n, err
	}

	var trailer [trailerSize]byte
	binary.LittleEndian.PutUint64(trailer[0:], uint64(cv.len))
	binary.LittleEndian.PutUint64(trailer[8:], uint64(cv.width))
	m, err := w.Write(trailer[:])
	return n + int64(m), err
}

// ReadFrom decodes a vector written by WriteTo.
//
// Every failure matches ErrMalformedData; truncated input additionally
// matches io.ErrUnexpectedEOF. No partially decoded vector is returned.
func ReadFrom(r io.Reader, opts ...Option) (*CompactVector, error) {
	o := applyOptions(opts)

	store, err := bitvec.ReadFrom(r)
	if err != nil {
		return nil, malformed("bit store", err)
	}

	var trailer [trailerSize]byte
	if _, err := io.ReadFull(r, trailer[:]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, malformed("trailer", err)
	}

	n, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(trailer[0:]))
	if err != nil {
		return nil, malformed("length", err)
	}
	rawWidth := binary.LittleEndian.Uint64(trailer[8:])
	if rawWidth > MaxWidth {
		return nil, malformed("width", fmt.Errorf("%d exceeds %d", rawWidth, MaxWidth))
	}
	width := int(rawWidth)

	if !o.trustedInput {
		want, err := conv.MulInt(n, width)
		if err != nil {
			return nil, malformed("length", err)
		}
		if want != store.Len() {
			return nil, malformed("length", fmt.Errorf("bit store holds %d bits, want %d elements of %d bits", store.Len(), n, width))
		}
	}

	return &CompactVector{store: store, len: n, width: width}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (cv *CompactVector) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(cv.SizeInBytes())
	if _, err := cv.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Trailing bytes
// after the encoded vector are rejected.
func (cv *CompactVector) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	decoded, err := ReadFrom(r)
	if err != nil {
		return err
	}
	if r.Len() != 0 {
		return malformed("trailer", fmt.Errorf("%d unexpected trailing bytes", r.Len()))
	}
	*cv = *decoded
	return nil
}
