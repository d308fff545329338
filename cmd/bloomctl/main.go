// Copyright 2026 The bloom Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// bloomctl builds, queries and inspects persisted bloom filters.
//
//	bloomctl build [--capacity N] [--fp-rate P] [--compression none|lzw] [--no-compress] -o FILE [KEYFILE]
//	bloomctl query -f FILE KEY...
//	bloomctl inspect -f FILE
//
// build reads newline-separated keys from KEYFILE, or stdin when KEYFILE is
// omitted.  query exits with status 1 if any key is definitely absent.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgryski/go-farm"
	"github.com/spf13/pflag"

	"github.com/bpowers/bloom"
)

const usage = `usage:
  bloomctl build [--capacity N] [--fp-rate P] [--compression none|lzw] [--no-compress] -o FILE [KEYFILE]
  bloomctl query -f FILE KEY...
  bloomctl inspect -f FILE
`

// exitError carries a process exit status without an error message.
type exitError int

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }
func (e exitError) ExitCode() int { return int(e) }

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

var commands = map[string]func(e *env, args []string) error{
	"build":   build,
	"query":   query,
	"inspect": inspect,
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitError(2)
	}
	if args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		fmt.Fprint(stdout, usage)
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
	return cmd(&env{stdin: stdin, stdout: stdout, stderr: stderr}, args[1:])
}

// newFlagSet returns a flag set carrying the flags every command accepts.
func (e *env) newFlagSet(name string) (*pflag.FlagSet, *bool) {
	flagSet := pflag.NewFlagSet("bloomctl "+name, pflag.ContinueOnError)
	flagSet.SetOutput(e.stderr)
	verbose := flagSet.BoolP("verbose", "v", false, "log debug detail to stderr")
	return flagSet, verbose
}

func (e *env) parse(flagSet *pflag.FlagSet, verbose *bool, args []string) error {
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitError(0)
		}
		return err
	}
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	e.logger = slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func build(e *env, args []string) error {
	flagSet, verbose := e.newFlagSet("build")
	capacity := flagSet.Int("capacity", 0, "number of keys to size the filter for (default: the number of keys read)")
	fpRate := flagSet.Float64("fp-rate", bloom.DefaultFalsePositiveRate, "target false-positive rate")
	compressionName := flagSet.String("compression", bloom.LZW.String(), "how to store the bitset: none or lzw")
	noCompress := flagSet.Bool("no-compress", false, "shorthand for --compression=none")
	output := flagSet.StringP("output", "o", "", "path to write the filter to")
	if err := e.parse(flagSet, verbose, args); err != nil {
		return err
	}
	if *output == "" {
		return errors.New("build: --output is required")
	}
	compression, err := bloom.ParseCompression(*compressionName)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	if *noCompress {
		if flagSet.Changed("compression") && compression != bloom.None {
			return fmt.Errorf("build: --no-compress conflicts with --compression=%s", compression)
		}
		compression = bloom.None
	}
	if flagSet.NArg() > 1 {
		return fmt.Errorf("build: unexpected argument %q", flagSet.Arg(1))
	}

	in := e.stdin
	if flagSet.NArg() == 1 {
		f, err := os.Open(flagSet.Arg(0))
		if err != nil {
			return fmt.Errorf("build: %w", err)
		}
		defer f.Close()
		in = f
	}
	keys, err := readKeys(in)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	n := *capacity
	if n == 0 {
		n = max(len(keys), 1)
	}
	filter, err := bloom.New(n,
		bloom.WithFalsePositiveRate(*fpRate),
		bloom.WithCompression(compression),
		bloom.WithLogger(e.logger))
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	inserted := 0
	for _, key := range keys {
		if filter.InsertString(key) {
			inserted++
		}
	}
	if err := bloom.WriteFile(*output, filter); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	e.logger.Info("built filter", "keys", len(keys), "inserted", inserted, "path", *output)
	return nil
}

// readKeys returns the non-empty lines of r.
func readKeys(r io.Reader) ([]string, error) {
	var keys []string
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for s.Scan() {
		if line := s.Text(); line != "" {
			keys = append(keys, line)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading keys: %w", err)
	}
	return keys, nil
}

func query(e *env, args []string) error {
	flagSet, verbose := e.newFlagSet("query")
	path := flagSet.StringP("file", "f", "", "filter to query")
	if err := e.parse(flagSet, verbose, args); err != nil {
		return err
	}
	if *path == "" {
		return errors.New("query: --file is required")
	}

	filter, err := bloom.ReadFile(*path, bloom.WithLogger(e.logger))
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	absent := false
	for _, key := range flagSet.Args() {
		if filter.LookupString(key) {
			fmt.Fprintf(e.stdout, "%s: maybe present\n", key)
		} else {
			fmt.Fprintf(e.stdout, "%s: absent\n", key)
			absent = true
		}
	}
	if absent {
		return exitError(1)
	}
	return nil
}

func inspect(e *env, args []string) error {
	flagSet, verbose := e.newFlagSet("inspect")
	path := flagSet.StringP("file", "f", "", "filter to inspect")
	if err := e.parse(flagSet, verbose, args); err != nil {
		return err
	}
	if *path == "" {
		return errors.New("inspect: --file is required")
	}

	raw, err := os.ReadFile(*path)
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	filter, err := bloom.Decode(raw, bloom.WithLogger(e.logger))
	if err != nil {
		return fmt.Errorf("inspect: Decode(%s): %w", *path, err)
	}

	w := e.stdout
	fmt.Fprintf(w, "bits:            %d\n", filter.BitCount())
	fmt.Fprintf(w, "hashes:          %d\n", filter.HashCount())
	fmt.Fprintf(w, "compression:     %s\n", filter.Compression())
	fmt.Fprintf(w, "set bits:        %d\n", filter.Bits().Count())
	fmt.Fprintf(w, "fill ratio:      %.4f\n", filter.FillRatio())
	fmt.Fprintf(w, "estimated keys:  %.0f\n", filter.EstimatedCount())
	fmt.Fprintf(w, "file size:       %d (uncompressed %d)\n", len(raw), filter.EncodedLen())
	fmt.Fprintf(w, "file checksum:   %016x\n", farm.Fingerprint64(raw))
	fmt.Fprintf(w, "fingerprint:     %016x\n", filter.Fingerprint())
	return nil
}
