// Package storage does the raw file work for the editor: reading a file
// into newline stripped lines and writing the buffer back atomically.
package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReadLines reads the file at path into one byte slice per line, with
// trailing newline and carriage return stripped.
func ReadLines(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storage: error opening %s: %w", path, err)
	}
	defer f.Close()

	var lines [][]byte
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			line = bytes.TrimRight(line, "\r\n")
			lines = append(lines, line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("storage: error reading %s: %w", path, err)
		}
	}
	return lines, nil
}

// WriteAtomic writes data to path through a temporary file in the same
// directory plus a rename, so a failed write never leaves a truncated
// target behind. Returns the number of bytes written.
func WriteAtomic(path string, data []byte) (int, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return 0, fmt.Errorf("storage: error creating temp file in %s: %w", dir, err)
	}

	n, err := tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o644)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return n, fmt.Errorf("storage: error writing %s: %w", path, err)
	}
	return n, nil
}
