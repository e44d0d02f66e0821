package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const compareBufferSize = 64 * 1024

// CompareFiles reports whether two files have identical contents.
func CompareFiles(left, right string) (bool, error) {
	leftInfo, err := os.Stat(left)

	if err != nil {
		return false, fmt.Errorf("failed to stat file for left-hand comparison: %w", err)
	}

	rightInfo, err := os.Stat(right)

	if err != nil {
		return false, fmt.Errorf("failed to stat file for right-hand comparison: %w", err)
	}

	if leftInfo.Size() != rightInfo.Size() {
		return false, nil
	}

	f1, err := os.Open(filepath.Clean(left))

	if err != nil {
		return false, fmt.Errorf("failed to open file for left-hand comparison: %w", err)
	}

	defer f1.Close()

	f2, err := os.Open(filepath.Clean(right))

	if err != nil {
		return false, fmt.Errorf("failed to open file for right-hand comparison: %w", err)
	}

	defer f2.Close()

	buf1 := make([]byte, compareBufferSize)
	buf2 := make([]byte, compareBufferSize)

	for {
		n1, err1 := io.ReadFull(f1, buf1)
		n2, err2 := io.ReadFull(f2, buf2)

		if err1 != nil && err1 != io.EOF && err1 != io.ErrUnexpectedEOF {
			return false, fmt.Errorf("error reading file for left-hand comparison: %w", err1)
		}

		if err2 != nil && err2 != io.EOF && err2 != io.ErrUnexpectedEOF {
			return false, fmt.Errorf("error reading file for right-hand comparison: %w", err2)
		}

		if n1 != n2 || !bytes.Equal(buf1[:n1], buf2[:n2]) {
			return false, nil
		}

		if err1 != nil && err2 != nil {
			return true, nil
		}
	}
}
