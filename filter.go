// Copyright 2026 The bloom Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bloom

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/dgryski/go-farm"

	"github.com/bpowers/bloom/internal/bitset"
	"github.com/bpowers/bloom/internal/hashing"
	"github.com/bpowers/bloom/internal/unsafestring"
)

const (
	// maxBitCount bounds the bitset so its backing storage stays under 1 TiB.
	maxBitCount = 1 << 43

	// maxHashCount bounds the work done per key.  It is reached at a
	// false-positive rate of 2^-128.
	maxHashCount = 128
)

// Filter is a bloom filter: a set of keys that never reports an inserted
// key as absent, and reports a key that was never inserted as present with
// a probability close to the false-positive rate it was sized for.
//
// Filters are created by New or Decode.  The zero Filter has no bits: it
// reports every key absent, and Insert panics.
//
// A Filter is not safe for concurrent use when any goroutine calls Insert.
type Filter struct {
	bits        *bitset.Bitset
	hashCount   uint64
	compression Compression
	logger      *slog.Logger
}

// Sizing returns the bit count and hash count for a filter holding
// `capacity` keys at false-positive rate p:
//
//	bits   = ceil(-capacity * ln(p) / ln(2)^2)
//	hashes = ceil(-ln(p) / ln(2))
func Sizing(capacity int, p float64) (bitCount, hashCount uint64, err error) {
	if capacity <= 0 {
		return 0, 0, fmt.Errorf("%w: capacity %d must be positive", ErrConfig, capacity)
	}
	if !(p > 0 && p < 1) {
		return 0, 0, fmt.Errorf("%w: false-positive rate %v must be in (0, 1)", ErrConfig, p)
	}

	lnP := math.Log(p)
	bits := math.Ceil(-float64(capacity) * lnP / (math.Ln2 * math.Ln2))
	if bits > maxBitCount {
		return 0, 0, fmt.Errorf("%w: %d keys at rate %v need %.0f bits (max %d)", ErrConfig, capacity, p, bits, uint64(maxBitCount))
	}
	hashes := math.Ceil(-lnP / math.Ln2)
	if hashes > maxHashCount {
		return 0, 0, fmt.Errorf("%w: rate %v needs %.0f hashes per key (max %d)", ErrConfig, p, hashes, maxHashCount)
	}

	return uint64(bits), uint64(hashes), nil
}

// New returns an empty filter sized for `capacity` keys.
func New(capacity int, opts ...Option) (*Filter, error) {
	o := buildOptions(opts)
	if !o.compression.valid() {
		return nil, fmt.Errorf("%w: unknown compression %d", ErrConfig, o.compression)
	}

	bitCount, hashCount, err := Sizing(capacity, o.falsePosRate)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("sized bloom filter",
		"capacity", capacity,
		"falsePositiveRate", o.falsePosRate,
		"bits", bitCount,
		"hashes", hashCount)

	return &Filter{
		bits:        bitset.New(bitCount),
		hashCount:   hashCount,
		compression: o.compression,
		logger:      o.logger,
	}, nil
}

func (f *Filter) indexes(key []byte) []uint64 {
	var buf [16]uint64
	return hashing.Indexes(buf[:0], key, f.bits.Len(), f.hashCount)
}

// Lookup reports whether key may have been inserted.  A false result is
// definitive.
func (f *Filter) Lookup(key []byte) bool {
	if f.bits == nil {
		return false
	}
	for _, off := range f.indexes(key) {
		if ok, err := f.bits.IsSet(off); err != nil || !ok {
			return false
		}
	}
	return true
}

// Insert adds key to the filter.  It returns false, without changing
// anything, if Lookup already reports key as present -- which may be a
// false positive.
func (f *Filter) Insert(key []byte) bool {
	if f.bits == nil {
		panic("bloom: Insert on a Filter not created by New or Decode")
	}
	if f.Lookup(key) {
		return false
	}
	for _, off := range f.indexes(key) {
		if err := f.bits.Set(off, true); err != nil {
			panic(fmt.Errorf("invariant broken: hashed offset outside bitset: %w", err))
		}
	}
	return true
}

// LookupString is Lookup for a string key, without copying it.
func (f *Filter) LookupString(key string) bool {
	return f.Lookup(unsafestring.ToBytes(key))
}

// InsertString is Insert for a string key, without copying it.
func (f *Filter) InsertString(key string) bool {
	return f.Insert(unsafestring.ToBytes(key))
}

// BitCount returns the size of the filter's bitset.
func (f *Filter) BitCount() uint64 {
	if f.bits == nil {
		return 0
	}
	return f.bits.Len()
}

// HashCount returns the number of bits each key sets.
func (f *Filter) HashCount() uint64 {
	return f.hashCount
}

// Compression returns how MarshalBinary stores the bitset.
func (f *Filter) Compression() Compression {
	return f.compression
}

// SetCompression changes how MarshalBinary stores the bitset.
func (f *Filter) SetCompression(c Compression) error {
	if !c.valid() {
		return fmt.Errorf("%w: unknown compression %d", ErrConfig, c)
	}
	f.compression = c
	return nil
}

// Bits returns the filter's bitset.  Callers must not modify it.
func (f *Filter) Bits() *bitset.Bitset {
	return f.bits
}

// FillRatio returns the fraction of bits that are set.
func (f *Filter) FillRatio() float64 {
	if f.BitCount() == 0 {
		return 0
	}
	return float64(f.bits.Count()) / float64(f.bits.Len())
}

// EstimatedCount estimates how many distinct keys have been inserted from
// the number of set bits.  It returns +Inf once every bit is set.
func (f *Filter) EstimatedCount() float64 {
	if f.BitCount() == 0 {
		return 0
	}
	m := float64(f.bits.Len())
	k := float64(f.hashCount)
	x := float64(f.bits.Count())
	if x == 0 {
		return 0
	}
	if x >= m {
		return math.Inf(1)
	}
	return -m / k * math.Log(1-x/m)
}

// Fingerprint returns a 64-bit hash of the filter's contents (bit pattern
// and hash count).  It does not depend on the compression mode, so a filter
// and its decoded copy always share a fingerprint.
func (f *Filter) Fingerprint() uint64 {
	if f.bits == nil {
		return 0
	}
	raw, err := f.appendRaw(make([]byte, 0, f.EncodedLen()))
	if err != nil {
		panic(fmt.Errorf("invariant broken: %w", err))
	}
	return farm.Fingerprint64(raw)
}
