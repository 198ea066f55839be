package cborhttp

import (
	"log/slog"
	"net/http"
)

// HandlerFunc handles a decoded cbor request and returns the value to
// encode as the response.
type HandlerFunc[In, Out any] func(r *http.Request, in In) (Out, error)

// Handle adapts fn into an http.HandlerFunc. The request is extracted as a
// Cbor[In] and the result is written as a Cbor[Out]. Rejections and errors
// returned by fn are written with WriteError.
func Handle[In, Out any](fn HandlerFunc[In, Out], opts ...Option) http.HandlerFunc {
	o := newOptions(opts)
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := extract[In](r, o)
		if err != nil {
			WriteError(o.logger, w, err)
			return
		}
		out, err := fn(r, in.Value)
		if err != nil {
			WriteError(o.logger, w, err)
			return
		}
		if err = (Cbor[Out]{Value: out}).write(w, http.StatusOK, o); err != nil {
			o.logger.Warn("failed to write cbor response",
				slog.String("method", r.Method),
				slog.String("uri", r.RequestURI),
				slog.Any("error", err))
		}
	}
}
