// Copyright 2026 The bloom Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bloom

import (
	"errors"

	"github.com/bpowers/bloom/internal/bitset"
	"github.com/bpowers/bloom/internal/lzw"
)

var (
	// ErrConfig is returned by New for a non-positive capacity or a
	// false-positive rate outside (0, 1).
	ErrConfig = errors.New("bloom: invalid configuration")

	// ErrFormat is returned when decoding a buffer that is too short, has a
	// length field running past its end, or is otherwise inconsistent.
	ErrFormat = errors.New("bloom: invalid format")

	// ErrCorruptCompressedData is returned when the compressed bitset of an
	// LZW-mode filter references a code that was never defined.
	ErrCorruptCompressedData = lzw.ErrCorrupt
)

// BoundsError reports an access past the end of a filter's bitset.
type BoundsError = bitset.BoundsError
