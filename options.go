package cborhttp

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/harrybrwn/cborhttp/body"
	"github.com/harrybrwn/cborhttp/codec"
)

// Option configures extraction and responses.
type Option func(*options)

type options struct {
	codec    codec.Codec
	limit    int64
	logger   *slog.Logger
	validate *validator.Validate
}

func newOptions(opts []Option) *options {
	o := options{
		codec: codec.CBOR,
		limit: body.DefaultLimit,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &o
}

// WithCodec replaces the default cbor codec.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithBodyLimit sets the largest request body that will be buffered. Zero
// keeps the default of 2MiB and a negative limit turns the check off.
func WithBodyLimit(n int64) Option {
	return func(o *options) {
		switch {
		case n == 0:
			o.limit = body.DefaultLimit
		case n < 0:
			o.limit = -1
		default:
			o.limit = n
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithValidator runs struct validation on decoded values. A value that
// fails validation is rejected the same way as one that fails to decode.
func WithValidator(v *validator.Validate) Option {
	return func(o *options) { o.validate = v }
}
