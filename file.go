// Copyright 2026 The bloom Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bloom

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile persists f to path.  The filter is encoded in full, written to
// a temporary file in the same directory and renamed over path, so readers
// never observe a partially written filter.
func WriteFile(path string, f *Filter) error {
	buf, err := f.MarshalBinary()
	if err != nil {
		return fmt.Errorf("MarshalBinary: %w", err)
	}

	// we want to write to a new file and do an atomic rename when we're done on disk
	path, err = filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("filepath.Abs: %w", err)
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "bloom.*.tmp")
	if err != nil {
		return fmt.Errorf("CreateTemp failed (may need permissions for dir %q): %w", dir, err)
	}
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}

	if n, err := tmp.Write(buf); err != nil {
		cleanup()
		return fmt.Errorf("write: %w", err)
	} else if n != len(buf) {
		cleanup()
		return fmt.Errorf("write: short write of %d (wanted %d)", n, len(buf))
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("f.Sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("f.Close: %w", err)
	}
	// make the file read-only
	if err := os.Chmod(tmp.Name(), 0444); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("os.Chmod(0444): %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("os.Rename: %w", err)
	}

	f.logger.Debug("wrote bloom filter", "path", path, "bytes", len(buf))
	return nil
}

// ReadFile loads the filter persisted at path.  Errors opening or reading
// the file are returned wrapped; a file that does not hold a filter yields
// an error matching ErrFormat (or ErrCorruptCompressedData).
func ReadFile(path string, opts ...Option) (*Filter, error) {
	data, release, err := readAll(path)
	if err != nil {
		return nil, err
	}
	defer release()

	f, err := Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("Decode(%s): %w", path, err)
	}
	f.logger.Debug("read bloom filter", "path", path, "bytes", len(data))
	return f, nil
}
