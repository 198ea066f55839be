package cborhttp

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/harrybrwn/cborhttp/body"
)

// RejectionKind identifies why a request could not be extracted.
type RejectionKind uint8

const (
	// MissingContentType means the content-type header was absent,
	// unparsable, or not a cbor media type.
	MissingContentType RejectionKind = iota + 1
	// BodyReadFailure means the request body could not be buffered.
	BodyReadFailure
	// DecodeFailure means the body was not valid cbor or did not fit the
	// target type.
	DecodeFailure
)

func (k RejectionKind) String() string {
	switch k {
	case MissingContentType:
		return "MissingContentType"
	case BodyReadFailure:
		return "BodyReadFailure"
	case DecodeFailure:
		return "DecodeFailure"
	default:
		return fmt.Sprintf("RejectionKind(%d)", k)
	}
}

var (
	// ErrMissingContentType matches any MissingContentType rejection with
	// errors.Is.
	ErrMissingContentType error = &Rejection{kind: MissingContentType}
	// ErrInvalidCbor matches any DecodeFailure rejection with errors.Is.
	ErrInvalidCbor error = &Rejection{kind: DecodeFailure}
)

// Rejection is the error returned by Extract. It is exactly one of the
// RejectionKind variants and knows how to write itself as a response.
type Rejection struct {
	kind RejectionKind
	// only set for BodyReadFailure
	body *body.Error
}

func missingContentType() *Rejection { return &Rejection{kind: MissingContentType} }

func bodyReadFailure(err *body.Error) *Rejection {
	return &Rejection{kind: BodyReadFailure, body: err}
}

func decodeFailure() *Rejection { return &Rejection{kind: DecodeFailure} }

// Kind returns the variant of the rejection.
func (r *Rejection) Kind() RejectionKind { return r.kind }

// StatusCode returns the http status sent for the rejection. A Rejection
// that was not created by Extract is a 500.
func (r *Rejection) StatusCode() int {
	switch r.kind {
	case MissingContentType:
		return http.StatusUnsupportedMediaType
	case BodyReadFailure:
		if r.body == nil {
			return http.StatusInternalServerError
		}
		return r.body.StatusCode()
	case DecodeFailure:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Body returns the plain text response body for the rejection.
func (r *Rejection) Body() string {
	switch r.kind {
	case MissingContentType:
		return "Expected request with `content-type: application/cbor`"
	case BodyReadFailure:
		if r.body == nil {
			return http.StatusText(http.StatusInternalServerError)
		}
		return r.body.Body()
	case DecodeFailure:
		return "Invalid Request"
	default:
		return http.StatusText(http.StatusInternalServerError)
	}
}

func (r *Rejection) Error() string {
	if r.kind == BodyReadFailure && r.body != nil {
		return r.body.Error()
	}
	return r.Body()
}

// Unwrap returns the body error for BodyReadFailure rejections and nil
// otherwise.
func (r *Rejection) Unwrap() error {
	if r.body == nil {
		return nil
	}
	return r.body
}

// Is matches rejections of the same kind.
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	return ok && t.kind == r.kind
}

// WriteResponse writes the rejection status and body as plain text.
func (r *Rejection) WriteResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", textPlainUTF8)
	w.WriteHeader(r.StatusCode())
	_, _ = w.Write([]byte(r.Body()))
}

// LogValue groups the kind and status, plus the body read error when
// there is one.
func (r *Rejection) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", r.kind.String()),
		slog.Int("status", r.StatusCode()),
	}
	if r.body != nil && r.body.Inner != nil {
		attrs = append(attrs, slog.Any("inner", r.body.Inner))
	}
	return slog.GroupValue(attrs...)
}
