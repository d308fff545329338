// Copyright 2026 The bloom Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bloom

import (
	"io"
	"log/slog"
)

// DefaultFalsePositiveRate is the false-positive rate filters are sized for
// unless WithFalsePositiveRate says otherwise.
const DefaultFalsePositiveRate = 0.01

// Option configures a Filter.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	compression  Compression
	falsePosRate float64
}

func defaultOptions() options {
	return options{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		compression:  None,
		falsePosRate: DefaultFalsePositiveRate,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets an optional logger for debug output about sizing and
// persistence.  If not provided, no logging output will be produced.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCompression selects how the bitset is stored by MarshalBinary.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithFalsePositiveRate overrides the target false-positive rate used to
// size a new filter.
func WithFalsePositiveRate(p float64) Option {
	return func(o *options) {
		o.falsePosRate = p
	}
}
