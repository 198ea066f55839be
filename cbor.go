package cborhttp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/pkg/errors"

	"github.com/harrybrwn/cborhttp/body"
)

const serializeFailure = "Failed to serialize"

// Cbor wraps a value that is read from or written to an http body as cbor.
type Cbor[T any] struct {
	Value T
}

// New wraps v.
func New[T any](v T) Cbor[T] { return Cbor[T]{Value: v} }

// Extract decodes the request body into a Cbor[T].
//
// The content-type is checked before the body is touched so requests
// without a cbor content-type never have their body consumed. Reading the
// body is one shot, so nothing else should read it after Extract.
//
// The returned error is always a *Rejection.
func Extract[T any](r *http.Request, opts ...Option) (Cbor[T], error) {
	return extract[T](r, newOptions(opts))
}

func extract[T any](r *http.Request, o *options) (Cbor[T], error) {
	if !IsCborContentType(r.Header) {
		return Cbor[T]{}, missingContentType()
	}
	b, err := body.Read(r, o.limit)
	if err != nil {
		return Cbor[T]{}, bodyReadFailure(body.AsError(err))
	}
	var v T
	if err = o.codec.Unmarshal(b, &v); err != nil {
		o.logger.Debug("failed to decode cbor body",
			slog.String("type", fmt.Sprintf("%T", v)),
			slog.Any("error", err))
		return Cbor[T]{}, decodeFailure()
	}
	if o.validate != nil {
		if err = validate(r.Context(), o, v); err != nil {
			o.logger.Debug("cbor body failed validation",
				slog.String("type", fmt.Sprintf("%T", v)),
				slog.Any("error", err))
			return Cbor[T]{}, decodeFailure()
		}
	}
	return Cbor[T]{Value: v}, nil
}

func validate(ctx context.Context, o *options, v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	return o.validate.StructCtx(ctx, rv.Interface())
}

// Write encodes the value and writes it with a 200 status.
func (c Cbor[T]) Write(w http.ResponseWriter, opts ...Option) error {
	return c.write(w, http.StatusOK, newOptions(opts))
}

// WriteStatus encodes the value and writes it with the given status.
func (c Cbor[T]) WriteStatus(w http.ResponseWriter, status int, opts ...Option) error {
	return c.write(w, status, newOptions(opts))
}

// ServeHTTP lets a Cbor value be used as an http.Handler.
func (c Cbor[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	o := newOptions(nil)
	if err := c.write(w, http.StatusOK, o); err != nil {
		o.logger.Warn("failed to write cbor response",
			slog.String("method", r.Method),
			slog.String("uri", r.RequestURI),
			slog.Any("error", err))
	}
}

// write encodes before anything is written so an encoding failure can
// still produce a clean 500.
func (c Cbor[T]) write(w http.ResponseWriter, status int, o *options) error {
	b, err := o.codec.Marshal(c.Value)
	if err != nil {
		o.logger.Error("cannot marshal cbor response",
			slog.String("type", fmt.Sprintf("%T", c.Value)),
			slog.Any("error", err))
		w.Header().Set("Content-Type", textPlainUTF8)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(serializeFailure))
		return errors.Wrap(err, "failed to serialize cbor response")
	}
	w.Header().Set("Content-Type", ContentType)
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	_, err = w.Write(b)
	return errors.WithStack(err)
}
