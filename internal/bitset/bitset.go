// Copyright 2026 The bloom Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitset

import (
	"fmt"
	"math/bits"
	"strings"
)

// BoundsError is returned when a bit offset at or beyond the length of
// the Bitset is accessed.
type BoundsError struct {
	Off   uint64
	Limit uint64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("bitset: offset %d out of range (limit %d)", e.Off, e.Limit)
}

// Bitset is a fixed-length, byte-packed bitmap.  Bit `off` lives in
// byte off/8, counting from the most-significant bit of that byte.
type Bitset struct {
	bits   []byte
	length uint64
}

// New returns a zeroed bitset that can hold `length` bits.
func New(length uint64) *Bitset {
	return &Bitset{
		bits:   make([]byte, byteLen(length)),
		length: length,
	}
}

func byteLen(length uint64) uint64 {
	return (length + 7) / 8
}

func (b *Bitset) bytePosition(off uint64) (byteOff uint64, bitOff uint8, err error) {
	if off >= b.length {
		return 0, 0, &BoundsError{Off: off, Limit: b.length}
	}
	return off / 8, uint8(off % 8), nil
}

func mask(bitOff uint8) byte {
	return 0x80 >> bitOff
}

// Set sets the bit at position `off` to value.
func (b *Bitset) Set(off uint64, value bool) error {
	byteOff, bitOff, err := b.bytePosition(off)
	if err != nil {
		return err
	}
	if value {
		b.bits[byteOff] |= mask(bitOff)
	} else {
		b.bits[byteOff] &^= mask(bitOff)
	}
	return nil
}

// IsSet returns true if the bit at position `off` is 1.
func (b *Bitset) IsSet(off uint64) (bool, error) {
	byteOff, bitOff, err := b.bytePosition(off)
	if err != nil {
		return false, err
	}
	return b.bits[byteOff]&mask(bitOff) != 0, nil
}

// Len returns the number of addressable bits.
func (b *Bitset) Len() uint64 {
	return b.length
}

// Bytes returns the packed backing storage.  Callers must not modify it.
func (b *Bitset) Bytes() []byte {
	return b.bits
}

// Count returns the number of bits set to 1.
func (b *Bitset) Count() uint64 {
	var n int
	for _, v := range b.bits {
		n += bits.OnesCount8(v)
	}
	return uint64(n)
}

// Equal reports whether b and other have the same length and bit pattern.
func (b *Bitset) Equal(other *Bitset) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.length == other.length && string(b.bits) == string(other.bits)
}

// String renders the bitset as a string of '0' and '1', lowest offset first.
func (b *Bitset) String() string {
	var sb strings.Builder
	sb.Grow(int(b.length))
	for off := uint64(0); off < b.length; off++ {
		if b.bits[off/8]&mask(uint8(off%8)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
