// Copyright 2026 The bloom Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitset

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// An encoded bitset is laid out as (all integers big-endian):
//
//	+----------------+------------------------+----------------+
//	| u64 byteLength | byteLength packed bits | u64 bitLength  |
//	+----------------+------------------------+----------------+
const (
	lenFieldSize = 8

	// MinEncodedLen is the size of an encoded zero-length bitset.
	MinEncodedLen = 2 * lenFieldSize
)

// ErrFormat is returned when an encoded bitset is truncated or inconsistent.
var ErrFormat = errors.New("bitset: invalid encoding")

// EncodedLen returns the number of bytes MarshalBinary will produce.
func (b *Bitset) EncodedLen() int {
	return MinEncodedLen + len(b.bits)
}

// AppendBinary appends the encoded form of b to dst.
func (b *Bitset) AppendBinary(dst []byte) ([]byte, error) {
	dst = binary.BigEndian.AppendUint64(dst, uint64(len(b.bits)))
	dst = append(dst, b.bits...)
	dst = binary.BigEndian.AppendUint64(dst, b.length)
	return dst, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (b *Bitset) MarshalBinary() ([]byte, error) {
	return b.AppendBinary(make([]byte, 0, b.EncodedLen()))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.  The input must
// contain exactly one encoded bitset; the packed bits are copied.
func (b *Bitset) UnmarshalBinary(data []byte) error {
	if len(data) < MinEncodedLen {
		return fmt.Errorf("%w: %d bytes is shorter than the minimum %d", ErrFormat, len(data), MinEncodedLen)
	}

	byteLength := binary.BigEndian.Uint64(data[:lenFieldSize])
	rest := data[lenFieldSize:]
	if byteLength > uint64(len(rest)-lenFieldSize) {
		return fmt.Errorf("%w: byte length %d runs past the end of %d-byte buffer", ErrFormat, byteLength, len(data))
	}
	packed := rest[:byteLength]
	rest = rest[byteLength:]
	if len(rest) != lenFieldSize {
		return fmt.Errorf("%w: %d trailing bytes after bit length", ErrFormat, len(rest)-lenFieldSize)
	}
	length := binary.BigEndian.Uint64(rest)
	if byteLen(length) != byteLength {
		return fmt.Errorf("%w: %d bits do not fit %d bytes", ErrFormat, length, byteLength)
	}

	b.bits = append([]byte(nil), packed...)
	if b.bits == nil {
		b.bits = []byte{}
	}
	b.length = length
	return nil
}

// Decode returns the bitset encoded in data.
func Decode(data []byte) (*Bitset, error) {
	var b Bitset
	if err := b.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &b, nil
}
