// Copyright 2026 The bloom Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bloom

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bpowers/bloom/internal/bitset"
	"github.com/bpowers/bloom/internal/lzw"
)

// An encoded filter is its encoded bitset, optionally compressed, followed
// by a fixed trailer (integers big-endian):
//
//	+--------------------------------+---------------+-------------+
//	| bitset segment (maybe LZW'd)   | u64 hashCount | u8 compress |
//	+--------------------------------+---------------+-------------+
//
// The bitset segment is
//
//	+----------------+------------------------+----------------+
//	| u64 byteLength | byteLength packed bits | u64 bitLength  |
//	+----------------+------------------------+----------------+
//
// There is no magic number or version; the compression byte is the only
// discriminator.
const (
	trailerSize = 8 + 1

	// MinEncodedLen is the smallest buffer Decode will consider: the
	// trailer plus one length field.
	MinEncodedLen = 8 + trailerSize
)

// Compression selects how the bitset segment of an encoded filter is stored.
type Compression uint8

const (
	// None stores the bitset segment as-is.
	None Compression = 0
	// LZW stores the bitset segment compressed with a 16-bit LZW coder.
	LZW Compression = 1
)

type segmentCodec struct {
	name   string
	encode func([]byte) []byte
	decode func([]byte) ([]byte, error)
}

var segmentCodecs = [...]segmentCodec{
	None: {
		name:   "none",
		encode: func(b []byte) []byte { return b },
		decode: func(b []byte) ([]byte, error) { return b, nil },
	},
	LZW: {
		name:   "lzw",
		encode: lzw.Compress,
		decode: lzw.Decompress,
	},
}

func (c Compression) valid() bool {
	return int(c) < len(segmentCodecs)
}

func (c Compression) String() string {
	if !c.valid() {
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
	return segmentCodecs[c].name
}

// ParseCompression returns the Compression named by s ("none" or "lzw").
func ParseCompression(s string) (Compression, error) {
	for c, codec := range segmentCodecs {
		if codec.name == s {
			return Compression(c), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown compression %q", ErrConfig, s)
}

// EncodedLen returns the size of the filter's encoding without compression.
func (f *Filter) EncodedLen() int {
	if f.bits == nil {
		return 0
	}
	return f.bits.EncodedLen() + trailerSize
}

// appendRaw appends the uncompressed bitset segment and hash count.
func (f *Filter) appendRaw(dst []byte) ([]byte, error) {
	dst, err := f.bits.AppendBinary(dst)
	if err != nil {
		return nil, fmt.Errorf("bitset.AppendBinary: %w", err)
	}
	return binary.BigEndian.AppendUint64(dst, f.hashCount), nil
}

// MarshalBinary implements encoding.BinaryMarshaler, producing the
// persisted form of the filter.
func (f *Filter) MarshalBinary() ([]byte, error) {
	if f.bits == nil {
		return nil, fmt.Errorf("%w: filter was not created by New or Decode", ErrConfig)
	}
	segment, err := f.bits.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("bitset.MarshalBinary: %w", err)
	}
	segment = segmentCodecs[f.compression].encode(segment)

	out := make([]byte, 0, len(segment)+trailerSize)
	out = append(out, segment...)
	out = binary.BigEndian.AppendUint64(out, f.hashCount)
	out = append(out, byte(f.compression))

	f.logger.Debug("encoded bloom filter",
		"compression", f.compression,
		"rawBytes", f.EncodedLen(),
		"encodedBytes", len(out))

	return out, nil
}

// WriteTo implements io.WriterTo.  The filter is encoded completely before
// anything is written.
func (f *Filter) WriteTo(w io.Writer) (int64, error) {
	buf, err := f.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("write: %w", err)
	}
	return int64(n), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, replacing the
// contents of f with the filter encoded in data.  f keeps its logger.
func (f *Filter) UnmarshalBinary(data []byte) error {
	if len(data) < MinEncodedLen {
		return fmt.Errorf("%w: %d bytes is shorter than the minimum %d", ErrFormat, len(data), MinEncodedLen)
	}

	compression := Compression(data[len(data)-1])
	if !compression.valid() {
		return fmt.Errorf("%w: unknown compression mode %d", ErrFormat, uint8(compression))
	}
	hashCount := binary.BigEndian.Uint64(data[len(data)-trailerSize:])
	if hashCount == 0 || hashCount > maxHashCount {
		return fmt.Errorf("%w: hash count %d outside [1, %d]", ErrFormat, hashCount, maxHashCount)
	}

	segment, err := segmentCodecs[compression].decode(data[:len(data)-trailerSize])
	if err != nil {
		return fmt.Errorf("decompress bitset: %w", err)
	}
	bits, err := bitset.Decode(segment)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if bits.Len() == 0 {
		return fmt.Errorf("%w: bitset is empty", ErrFormat)
	}
	// sized filters always have fewer hashes than bits
	if hashCount > bits.Len() {
		return fmt.Errorf("%w: hash count %d exceeds bit count %d", ErrFormat, hashCount, bits.Len())
	}

	if f.logger == nil {
		f.logger = defaultOptions().logger
	}
	f.logger.Debug("decoded bloom filter",
		"compression", compression,
		"encodedBytes", len(data),
		"bits", bits.Len(),
		"hashes", hashCount)

	f.bits = bits
	f.hashCount = hashCount
	f.compression = compression
	return nil
}

// Decode returns the filter encoded in data.  Only the WithLogger option
// has an effect; sizing and compression come from the encoding.
func Decode(data []byte, opts ...Option) (*Filter, error) {
	o := buildOptions(opts)
	f := &Filter{logger: o.logger}
	if err := f.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return f, nil
}
