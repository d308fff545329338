// Copyright 2026 The bloom Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgryski/go-farm"
	"github.com/stretchr/testify/require"

	"github.com/bpowers/bloom"
)

func runCmd(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = run(args, strings.NewReader(stdin), &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestBuildQuery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.bloom")

	_, _, err := runCmd(t, "apple\nbanana\n\ncherry\n", "build", "-o", path)
	require.NoError(t, err)

	f, err := bloom.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, bloom.LZW, f.Compression())
	require.Equal(t, uint64(29), f.BitCount())

	stdout, _, err := runCmd(t, "", "query", "-f", path, "apple", "cherry")
	require.NoError(t, err)
	require.Equal(t, "apple: maybe present\ncherry: maybe present\n", stdout)

	stdout, _, err = runCmd(t, "", "query", "-f", path, "banana", "definitely-not-inserted")
	var exit exitError
	require.ErrorAs(t, err, &exit)
	require.Equal(t, 1, exit.ExitCode())
	require.True(t, strings.HasPrefix(stdout, "banana: maybe present\n"))
}

func TestBuild_KeyFile(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "keys.txt")
	require.NoError(t, os.WriteFile(keyFile, []byte("a\nb\nc\n"), 0644))
	path := filepath.Join(dir, "keys.bloom")

	_, stderr, err := runCmd(t, "", "build", "--capacity", "100", "--fp-rate", "0.1", "--no-compress", "--verbose", "-o", path, keyFile)
	require.NoError(t, err)
	require.Contains(t, stderr, "built filter")

	f, err := bloom.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, bloom.None, f.Compression())
	require.Equal(t, uint64(480), f.BitCount())
	require.Equal(t, uint64(4), f.HashCount())
	for _, key := range []string{"a", "b", "c"} {
		require.True(t, f.LookupString(key))
	}
}

func TestBuild_Compression(t *testing.T) {
	dir := t.TempDir()
	for flag, want := range map[string]bloom.Compression{
		"--compression=none": bloom.None,
		"--compression=lzw":  bloom.LZW,
		"--no-compress":      bloom.None,
	} {
		path := filepath.Join(dir, strings.TrimLeft(flag, "-"))
		_, _, err := runCmd(t, "a\nb\n", "build", flag, "-o", path)
		require.NoError(t, err, flag)

		f, err := bloom.ReadFile(path)
		require.NoError(t, err, flag)
		require.Equal(t, want, f.Compression(), flag)
	}

	_, _, err := runCmd(t, "a\n", "build", "--compression=zstd", "-o", filepath.Join(dir, "x"))
	require.ErrorIs(t, err, bloom.ErrConfig)

	_, _, err = runCmd(t, "a\n", "build", "--compression=lzw", "--no-compress", "-o", filepath.Join(dir, "y"))
	require.Error(t, err)
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.bloom")
	_, _, err := runCmd(t, "x\ny\n", "build", "--capacity", "2", "--no-compress", "-o", path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	stdout, _, err := runCmd(t, "", "inspect", "-f", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "bits:            20\n")
	require.Contains(t, stdout, "hashes:          7\n")
	require.Contains(t, stdout, "compression:     none\n")
	require.Contains(t, stdout, fmt.Sprintf("file checksum:   %016x\n", farm.Fingerprint64(raw)))
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage")
	require.NoError(t, os.WriteFile(garbage, []byte("garbage"), 0644))

	for name, args := range map[string][]string{
		"no command":      {},
		"unknown command": {"frobnicate"},
		"build no output": {"build"},
		"build bad rate":  {"build", "--fp-rate", "2", "-o", filepath.Join(dir, "x")},
		"bad flag":        {"query", "--nope"},
		"query no file":   {"query", "k"},
		"query garbage":   {"query", "-f", garbage, "k"},
		"inspect missing": {"inspect", "-f", filepath.Join(dir, "missing")},
	} {
		_, _, err := runCmd(t, "k\n", args...)
		require.Error(t, err, name)
	}

	_, _, err := runCmd(t, "", "inspect", "-f", garbage)
	require.ErrorIs(t, err, bloom.ErrFormat)
}
