package bitvec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/compactvec/internal/conv"
)

// ErrMalformed is returned when serialized bytes do not describe a valid
// BitVector.
var ErrMalformed = errors.New("bitvec: malformed data")

// readChunkWords bounds the allocation done per read so that a corrupt
// word count fails on EOF instead of on a huge make.
const readChunkWords = 8192

// SerializedSize returns the number of bytes WriteTo will produce.
func (b *BitVector) SerializedSize() int {
	return 8 + 8*len(b.words) + 8
}

// WriteTo writes the word count, the words and the bit length, all little
// endian. It implements io.WriterTo.
func (b *BitVector) WriteTo(w io.Writer) (int64, error) {
	var total int64

	buf := make([]byte, 0, 8*min(len(b.words)+2, readChunkWords))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(b.words)))

	for _, word := range b.words {
		if len(buf)+8 > cap(buf) {
			n, err := w.Write(buf)
			total += int64(n)
			if err != nil {
				return total, err
			}
			buf = buf[:0]
		}
		buf = binary.LittleEndian.AppendUint64(buf, word)
	}

	if len(buf)+8 > cap(buf) {
		n, err := w.Write(buf)
		total += int64(n)
		if err != nil {
			return total, err
		}
		buf = buf[:0]
	}
	buf = binary.LittleEndian.AppendUint64(buf, uint64(b.len))

	n, err := w.Write(buf)
	total += int64(n)
	return total, err
}

// ReadFrom decodes a BitVector written by WriteTo. Truncated input is
// reported as io.ErrUnexpectedEOF; inconsistent lengths as ErrMalformed.
func ReadFrom(r io.Reader) (*BitVector, error) {
	var scratch [8]byte

	rawWords, err := readUint64(r, scratch[:])
	if err != nil {
		return nil, fmt.Errorf("read word count: %w", err)
	}
	numWords, err := conv.Uint64ToInt(rawWords)
	if err != nil || rawWords > 1<<58 {
		return nil, fmt.Errorf("%w: word count %d", ErrMalformed, rawWords)
	}

	words := make([]uint64, 0, min(numWords, readChunkWords))
	buf := make([]byte, 8*min(numWords, readChunkWords))
	for remaining := numWords; remaining > 0; {
		chunk := min(remaining, readChunkWords)
		if _, err := io.ReadFull(r, buf[:8*chunk]); err != nil {
			return nil, fmt.Errorf("read words: %w", unexpectedEOF(err))
		}
		for i := 0; i < chunk; i++ {
			words = append(words, binary.LittleEndian.Uint64(buf[8*i:]))
		}
		remaining -= chunk
	}

	rawLen, err := readUint64(r, scratch[:])
	if err != nil {
		return nil, fmt.Errorf("read bit length: %w", err)
	}
	bitLen, err := conv.Uint64ToInt(rawLen)
	if err != nil {
		return nil, fmt.Errorf("%w: bit length %d", ErrMalformed, rawLen)
	}
	if wordsFor(bitLen) != numWords {
		return nil, fmt.Errorf("%w: %d words cannot hold exactly %d bits", ErrMalformed, numWords, bitLen)
	}
	if tail := uint(bitLen % WordBits); tail != 0 && words[numWords-1]>>tail != 0 {
		return nil, fmt.Errorf("%w: bits set beyond length %d", ErrMalformed, bitLen)
	}

	return &BitVector{words: words, len: bitLen}, nil
}

func readUint64(r io.Reader, scratch []byte) (uint64, error) {
	if _, err := io.ReadFull(r, scratch[:8]); err != nil {
		return 0, unexpectedEOF(err)
	}
	return binary.LittleEndian.Uint64(scratch[:8]), nil
}

// unexpectedEOF turns a clean EOF into io.ErrUnexpectedEOF: every field is
// mandatory, so running out of input is always truncation.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
