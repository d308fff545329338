// Copyright 2026 The bloom Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package hashing derives bloom filter bit offsets from a key.
//
// The constants and formulas here determine which bits persisted filters
// have set; changing any of them makes existing files unreadable in
// practice (lookups of inserted keys would start failing).
package hashing

import (
	"github.com/spaolacci/murmur3"
)

const (
	// Seed is the murmur3 seed used for the first base hash.
	Seed uint32 = 0xDEADCAFE

	fnvOffsetBasis uint32 = 0x811c9dc5
	fnvPrime       uint32 = 0x01000193
)

// Murmur3 returns the 32-bit x86 MurmurHash3 of key.
func Murmur3(key []byte, seed uint32) uint32 {
	return murmur3.Sum32WithSeed(key, seed)
}

// FNV1a returns the 32-bit FNV-1a hash of key.
func FNV1a(key []byte) uint32 {
	hash := fnvOffsetBasis
	for _, c := range key {
		hash ^= uint32(c)
		hash *= fnvPrime
	}
	return hash
}

// Indexes appends the k bit offsets for key in a table of m bits to dst,
// using double hashing: offset_j = (h1 + j*h2) mod m.
//
// m must be non-zero.
func Indexes(dst []uint64, key []byte, m, k uint64) []uint64 {
	h1 := uint64(Murmur3(key, Seed)) % m
	h2 := uint64(FNV1a(key)) % m
	for j := uint64(0); j < k; j++ {
		dst = append(dst, (h1+j*h2)%m)
	}
	return dst
}
