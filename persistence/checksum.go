package persistence

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Checksums detect accidental corruption only; xxhash is not a
// cryptographic hash and offers no tamper protection.

// computeChecksum hashes the checksummed header prefix followed by payload.
func computeChecksum(headerPrefix, payload []byte) uint64 {
	d := xxhash.New()
	_, _ = d.Write(headerPrefix)
	_, _ = d.Write(payload)
	return d.Sum64()
}

// ChecksumMismatchError is returned when checksum verification fails.
type ChecksumMismatchError struct {
	Expected uint64
	Actual   uint64
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%016x, got 0x%016x", e.Expected, e.Actual)
}

// IsChecksumMismatch returns true if err is or wraps a checksum mismatch error.
func IsChecksumMismatch(err error) bool {
	var cm *ChecksumMismatchError
	return errors.As(err, &cm)
}
