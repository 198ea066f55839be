package cborhttp

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pkg/errors"
)

// StatusCoder is an error that knows its http status.
type StatusCoder interface {
	error
	StatusCode() int
}

// Responder is an error that writes its own response.
type Responder interface {
	WriteResponse(w http.ResponseWriter)
}

// HTTPError is a handler error with a status and a client facing message.
type HTTPError struct {
	Status  int
	Message string
	// Inner is a private internal error. It is logged but never sent to
	// clients.
	Inner error
}

// NewError creates an HTTPError. An empty message uses the status text.
func NewError(status int, msg string, args ...any) *HTTPError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &HTTPError{Status: status, Message: msg}
}

func (e *HTTPError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s: %v", e.message(), e.Inner)
	}
	return e.message()
}

func (e *HTTPError) Unwrap() error { return e.Inner }

// Cause is for [errors.Cause].
func (e *HTTPError) Cause() error { return e.Inner }

// StatusCode returns Status, or 500 when Status is not a valid http status.
func (e *HTTPError) StatusCode() int {
	if e.Status < 100 || e.Status >= 600 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// Wrap sets the Inner error field.
func (e *HTTPError) Wrap(err error) *HTTPError {
	e.Inner = err
	return e
}

// WithStatus sets the Status field.
func (e *HTTPError) WithStatus(status int) *HTTPError {
	e.Status = status
	return e
}

// WithMsgf sets the Message field with an [fmt.Sprintf] format string.
func (e *HTTPError) WithMsgf(format string, args ...any) *HTTPError {
	e.Message = fmt.Sprintf(format, args...)
	return e
}

// WriteResponse writes the status and client facing message as plain text.
// Inner is never written.
func (e *HTTPError) WriteResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", textPlainUTF8)
	w.WriteHeader(e.StatusCode())
	_, _ = w.Write([]byte(e.message()))
}

func (e *HTTPError) message() string {
	if len(e.Message) == 0 {
		return http.StatusText(e.StatusCode())
	}
	return e.Message
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// WriteError writes err as a plain text response. Errors that can write
// themselves do so. Errors with a status code get that status and their
// Error text. Everything else is a 500 with no detail sent to the client.
func WriteError(l *slog.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	if l == nil {
		l = slog.Default()
	}
	var (
		status  = http.StatusInternalServerError
		rw      Responder
		sc      StatusCoder
		logargs = []any{slog.Any("error", err)}
	)
	switch {
	case errors.As(err, &rw):
		if s, ok := rw.(StatusCoder); ok {
			status = s.StatusCode()
		}
	case errors.As(err, &sc):
		status = sc.StatusCode()
	}
	if stacker, ok := errors.Cause(err).(stackTracer); ok {
		logargs = append(logargs, slog.String("stacktrace", fmt.Sprintf("%+v", stacker.StackTrace())))
	} else if stacker, ok := err.(stackTracer); ok {
		logargs = append(logargs, slog.String("stacktrace", fmt.Sprintf("%+v", stacker.StackTrace())))
	}
	logargs = append(logargs, slog.Int("status", status))
	logfn := l.Error
	if status >= 200 && status < 300 {
		logfn = l.Debug
	} else if status >= 400 && status < 500 {
		logfn = l.Info
	}
	logfn("request failed", logargs...)

	switch {
	case rw != nil:
		rw.WriteResponse(w)
	case sc != nil:
		w.Header().Set("Content-Type", textPlainUTF8)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(sc.Error()))
	default:
		w.Header().Set("Content-Type", textPlainUTF8)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(http.StatusText(status)))
	}
}
