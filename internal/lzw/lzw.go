// Copyright 2026 The bloom Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package lzw implements the dictionary compressor applied to persisted
// bloom filter bitsets.
//
// The output is a sequence of 16-bit big-endian codes.  Codes 0-255 stand
// for single bytes; each further code stands for an earlier code extended
// by one byte.  The dictionary grows by one entry per emitted code until
// it holds maxEntries entries, at which point both sides drop back to the
// 256 single-byte entries and keep their prior code:
//
//   - the compressor resets before consuming the next byte;
//   - the decompressor resets before handling the next code.
//
// A full dictionary is only ever reached by an insertion, which leaves the
// compressor's prior code a single byte, so it stays valid after the reset.
package lzw

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// noCode is the reserved "no prior code" sentinel.  It is never emitted.
	noCode = 0xFFFF

	// maxEntries is the dictionary size at which it is reset.
	maxEntries = 0xFFFF

	alphabetSize = 256
	codeSize     = 2
)

// ErrCorrupt is returned by Decompress for input no compressor produced.
var ErrCorrupt = errors.New("lzw: corrupt compressed data")

func dictKey(prior uint16, c byte) uint32 {
	return uint32(prior)<<8 | uint32(c)
}

// Compress returns the compressed form of src.  An empty input compresses
// to an empty output.
func Compress(src []byte) []byte {
	return compress(src, maxEntries)
}

func compress(src []byte, limit int) []byte {
	// single-byte codes are implicit: code c is the byte c
	dict := make(map[uint32]uint16, min(limit, len(src)))
	next := alphabetSize
	prior := uint16(noCode)

	out := make([]byte, 0, len(src)/2+codeSize)
	for _, c := range src {
		if next == limit {
			clear(dict)
			next = alphabetSize
		}

		if prior == noCode {
			prior = uint16(c)
			continue
		}
		if code, ok := dict[dictKey(prior, c)]; ok {
			prior = code
			continue
		}

		out = binary.BigEndian.AppendUint16(out, prior)
		dict[dictKey(prior, c)] = uint16(next)
		next++
		prior = uint16(c)
	}
	if prior != noCode {
		out = binary.BigEndian.AppendUint16(out, prior)
	}

	return out
}

// Decompress reverses Compress.  It fails with ErrCorrupt if src has an
// odd length or refers to a code not yet defined.
func Decompress(src []byte) ([]byte, error) {
	return decompress(src, maxEntries)
}

type entry struct {
	prefix uint16
	c      byte
}

type table []entry

func newTable(limit int) table {
	t := make(table, alphabetSize, limit)
	for i := range t {
		t[i] = entry{prefix: noCode, c: byte(i)}
	}
	return t
}

// expand appends the bytes code stands for to dst.
func (t table) expand(dst []byte, code uint16) []byte {
	start := len(dst)
	for code != noCode {
		e := t[code]
		dst = append(dst, e.c)
		code = e.prefix
	}
	// walked back-to-front
	for i, j := start, len(dst)-1; i < j; i, j = i+1, j-1 {
		dst[i], dst[j] = dst[j], dst[i]
	}
	return dst
}

func (t table) first(code uint16) byte {
	for t[code].prefix != noCode {
		code = t[code].prefix
	}
	return t[code].c
}

func decompress(src []byte, limit int) ([]byte, error) {
	if len(src)%codeSize != 0 {
		return nil, fmt.Errorf("%w: odd input length %d", ErrCorrupt, len(src))
	}

	t := newTable(limit)
	prior := uint16(noCode)

	out := make([]byte, 0, 2*len(src))
	for off := 0; off < len(src); off += codeSize {
		code := binary.BigEndian.Uint16(src[off:])
		if len(t) == limit {
			t = t[:alphabetSize]
			if prior != noCode && int(prior) >= alphabetSize {
				return nil, fmt.Errorf("%w: multi-byte code %d fills the dictionary at offset %d", ErrCorrupt, prior, off)
			}
		}

		switch {
		case int(code) > len(t), prior == noCode && int(code) >= len(t):
			return nil, fmt.Errorf("%w: code %d at offset %d exceeds dictionary length %d", ErrCorrupt, code, off, len(t))
		case prior == noCode:
			out = t.expand(out, code)
		case int(code) == len(t):
			// the encoder defined this code while emitting prior: it is
			// prior followed by prior's own first byte
			t = append(t, entry{prefix: prior, c: t.first(prior)})
			out = t.expand(out, code)
		default:
			start := len(out)
			out = t.expand(out, code)
			t = append(t, entry{prefix: prior, c: out[start]})
		}
		prior = code
	}

	return out, nil
}
