// Copyright 2026 The bloom Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hashing

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMurmur3(t *testing.T) {
	for _, tc := range []struct {
		input    string
		seed     uint32
		expected uint32
	}{
		{"", 0x00000000, 0x00000000},
		{"", 0x00000001, 0x514e28b7},
		{"", 0xffffffff, 0x81f16f39},
		{"test", 0x00000000, 0xba6bd213},
		{"test", 0x9747b28c, 0x704b81dc},
		{"Hello, world!", 0x00000000, 0xc0363e43},
		{"Hello, world!", 0x9747b28c, 0x24884cba},
		{"The quick brown fox jumps over the lazy dog", 0x00000000, 0x2e4ff723},
		{"The quick brown fox jumps over the lazy dog", 0x9747b28c, 0x2fa826cd},
	} {
		require.Equal(t, tc.expected, Murmur3([]byte(tc.input), tc.seed), "murmur3(%q, %#x)", tc.input, tc.seed)
	}
}

func TestFNV1a(t *testing.T) {
	repeat := func(s string, n int) string {
		return string(bytes.Repeat([]byte(s), n))
	}

	for _, tc := range []struct {
		input    string
		expected uint32
	}{
		{"", 0x811c9dc5},
		{"a", 0xe40c292c},
		{"b", 0xe70c2de5},
		{"foo", 0xa9f37ed7},
		{"foobar", 0xbf9cf968},
		{"\x00", 0x050c5d1f},
		{"foobar\x00", 0x0c1c9eb8},
		{"chongo was here!\n", 0xd49930d5},
		{"curds and whey\n", 0x19a1470c},
		{"hello", 0x4f9f2cab},
		{"\xff\x00\x00\x01", 0xc48fb86d},
		{"\x01\x00\x00\xff", 0x2269f369},
		{"127.0.0.1", 0x08a3d11e},
		{"64.81.78.84\x00", 0x3c1a2017},
		{"feedfacedeadbeef", 0xf1760448},
		{"line 1\nline 2\nline 3", 0x97b4ea23},
		{"http://www.isthe.com/chongo/tech/comp/fnv/index.html", 0xd0c71b71},
		{repeat("21701", 10), 0xe415e2bb},
		{repeat("\xfe\xdc\xba\x98\x76\x54\x32\x10", 10), 0x0ae4ff65},
		{repeat("\x00", 500), 0xfa823dd5},
		{repeat("\x7f", 500), 0x813b0881},
	} {
		require.Equal(t, tc.expected, FNV1a([]byte(tc.input)), "fnv1a(%q)", tc.input)
	}
}

func TestIndexes(t *testing.T) {
	// a 2-item filter has 20 bits and 7 hashes
	require.Equal(t, []uint64{5, 10, 15, 0, 5, 10, 15}, Indexes(nil, []byte("test"), 20, 7))
	require.Equal(t, []uint64{0, 4, 8, 12, 16, 0, 4}, Indexes(nil, []byte("test1"), 20, 7))

	// storage is reused when provided
	buf := make([]uint64, 0, 7)
	out := Indexes(buf, []byte("test"), 20, 7)
	require.Equal(t, 7, len(out))
	require.Equal(t, &buf[:1][0], &out[0])

	for _, key := range []string{"", "a", "abound", "a much longer key than the others"} {
		for _, m := range []uint64{1, 2, 10, 959, 1 << 20} {
			idx := Indexes(nil, []byte(key), m, 7)
			require.Len(t, idx, 7)
			for _, i := range idx {
				require.Less(t, i, m)
			}
		}
	}
}

func BenchmarkIndexes(b *testing.B) {
	key := []byte("b3a5f1c63e0d4b2ab8b5c9a9a2f7c0d1")
	buf := make([]uint64, 0, 7)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = Indexes(buf[:0], key, 95851, 7)
	}
}
