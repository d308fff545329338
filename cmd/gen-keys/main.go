// Copyright 2026 The bloom Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// gen-keys prints pseudo-random keys, one per line, for loading into a
// filter with `bloomctl build`.  A fixed --seed produces the same keys on
// every run.
package main

import (
	"bufio"
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/spf13/pflag"
)

const (
	suffixLen = 16
	hmacKey   = "d259c7f656caf7f1"
)

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		var seedBytes [8]byte
		_, _ = crand.Read(seedBytes[:])
		seed = int64(binary.LittleEndian.Uint64(seedBytes[:]))
	}
	return rand.New(rand.NewSource(seed))
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flagSet := pflag.NewFlagSet("gen-keys", pflag.ContinueOnError)
	count := flagSet.IntP("count", "n", 1000000, "number of keys to print")
	seed := flagSet.Int64("seed", 0, "random seed (0 picks one at random)")
	prefix := flagSet.String("prefix", "pref_", "prefix of the value each key is derived from")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if *count < 0 {
		return fmt.Errorf("--count must not be negative, got %d", *count)
	}

	w := bufio.NewWriter(stdout)
	if err := generate(w, newRand(*seed), *count, *prefix); err != nil {
		return err
	}
	return w.Flush()
}

// generate writes n keys, each the hex HMAC-SHA256 of prefix plus a random
// suffix.
func generate(w io.Writer, rng *rand.Rand, n int, prefix string) error {
	h := hmac.New(sha256.New, []byte(hmacKey))
	for i := 0; i < n; i++ {
		var buf [suffixLen / 2]byte
		if _, err := rng.Read(buf[:]); err != nil {
			return fmt.Errorf("rng.Read: %w", err)
		}
		h.Reset()
		fmt.Fprintf(h, "%s%x", prefix, buf)
		if _, err := fmt.Fprintln(w, hex.EncodeToString(h.Sum(nil))); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	return nil
}
