// Package body buffers HTTP request bodies into memory.
package body

import (
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/pkg/errors"
)

// DefaultLimit is the largest body Read accepts when no limit is given.
const DefaultLimit int64 = 2 << 20

const failedToBuffer = "Failed to buffer the request body"

// Error is returned when the body could not be buffered. It carries the
// status and message that should be sent back to the client.
type Error struct {
	Status  int
	Message string
	// Inner is the underlying read error, if there was one.
	Inner error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Inner }

// Cause is for [errors.Cause].
func (e *Error) Cause() error { return e.Inner }

// StatusCode returns the http status for the error.
func (e *Error) StatusCode() int { return e.Status }

// Body returns the text sent to the client.
func (e *Error) Body() string { return e.Message }

// IsLengthLimit reports whether the body was rejected for being too large.
func (e *Error) IsLengthLimit() bool { return e.Status == http.StatusRequestEntityTooLarge }

func lengthLimit(inner error) *Error {
	return &Error{
		Status:  http.StatusRequestEntityTooLarge,
		Message: failedToBuffer + ": length limit exceeded",
		Inner:   inner,
	}
}

func unknown(inner error) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("%s: %v", failedToBuffer, inner),
		Inner:   inner,
	}
}

// AsError returns err as an *Error. Errors that did not come from Read
// are treated as unknown read failures.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return unknown(err)
}

// Read consumes the whole request body. A negative limit disables the
// size check. A missing body reads as empty. Read closes the body and
// can only be called once per request.
func Read(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return []byte{}, nil
	}
	defer r.Body.Close()
	if limit >= 0 && r.ContentLength > limit {
		return nil, lengthLimit(nil)
	}
	var rd io.Reader = r.Body
	// one byte past the limit is read to detect bodies that are too large
	if limit >= 0 && limit < math.MaxInt64 {
		rd = io.LimitReader(r.Body, limit+1)
	}
	b, err := io.ReadAll(rd)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, lengthLimit(err)
		}
		return nil, unknown(err)
	}
	if limit >= 0 && int64(len(b)) > limit {
		return nil, lengthLimit(nil)
	}
	return b, nil
}
