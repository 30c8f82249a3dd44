//go:build !unix && !windows

package mmap

import (
	"io"
	"os"
)

// osMap reads the file into the heap where mapping is unavailable.
func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, nil, err
	}
	return data, nil, nil
}

func osAdvise([]byte, AccessPattern) error {
	return nil
}
