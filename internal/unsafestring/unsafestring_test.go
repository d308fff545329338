// Copyright 2026 The bloom Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package unsafestring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToBytes(t *testing.T) {
	for _, input := range []string{
		"",
		"abc",
		"test1",
		"😀",
	} {
		var b []byte
		allocs := testing.AllocsPerRun(1, func() {
			b = ToBytes(input)
		})
		require.Zero(t, allocs)
		require.Equal(t, input, string(b))
		// len and cap should match the string
		require.Equal(t, len(input), len(b))
		require.Equal(t, len(input), cap(b))
	}
}
