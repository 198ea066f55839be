package middleware

import (
	"log/slog"
	"net/http"
	"strings"
)

// NewRequestLogger logs the start and end of every request. The request
// content-type and the response status, content-type and size are
// included so rejected cbor requests are easy to spot.
func NewRequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			args := make([]any, 0, 8)
			args = append(args,
				headerGroup(r.Header),
				slog.String("method", r.Method),
				slog.String("uri", r.RequestURI),
				slog.String("content_type", r.Header.Get("Content-Type")),
				slog.Int64("content_length", r.ContentLength),
			)
			logger.DebugContext(ctx, "starting request", args...)
			sw := StatusWriter{w: w, Status: http.StatusOK}
			next.ServeHTTP(&sw, r)
			if len(r.Pattern) > 0 {
				args = append(args, slog.String("pattern", r.Pattern))
			}
			args = append(args,
				slog.Int("status", sw.Status),
				slog.Int("bytes", sw.Bytes),
				slog.String("response_content_type", sw.Header().Get("Content-Type")),
			)
			switch {
			case sw.Status >= 500:
				logger.ErrorContext(ctx, "finished request", args...)
			case sw.Status >= 400:
				logger.WarnContext(ctx, "finished request", args...)
			default:
				logger.InfoContext(ctx, "finished request", args...)
			}
		})
	}
}

// StatusWriter records the status and number of body bytes written.
type StatusWriter struct {
	w      http.ResponseWriter
	Status int
	Bytes  int
}

func (sw *StatusWriter) WriteHeader(status int) {
	sw.Status = status
	sw.w.WriteHeader(status)
}

func (sw *StatusWriter) Header() http.Header { return sw.w.Header() }

func (sw *StatusWriter) Write(b []byte) (int, error) {
	n, err := sw.w.Write(b)
	sw.Bytes += n
	return n, err
}

func headerGroup(header http.Header) slog.Attr {
	args := make([]any, 0, len(header))
	for k, v := range header {
		switch strings.ToLower(k) {
		case "authorization", "cookie":
			continue
		}
		args = append(args, slog.String(k, strings.Join(v, ",")))
	}
	return slog.Group("headers", args...)
}
