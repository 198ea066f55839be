// Package cbortest has helpers for testing handlers that speak cbor.
package cbortest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harrybrwn/cborhttp/codec"
)

// ContentType is set on every request built by this package.
const ContentType = "application/cbor"

// Encode marshals v with the default codec and fails the test on error.
func Encode(tb testing.TB, v any) []byte {
	tb.Helper()
	b, err := codec.Marshal(v)
	if err != nil {
		tb.Fatalf("cbortest: failed to encode %T: %v", v, err)
	}
	return b
}

// NewRequest builds a server side test request with v encoded as the body.
func NewRequest(tb testing.TB, method, target string, v any) *http.Request {
	tb.Helper()
	r := httptest.NewRequest(method, target, bytes.NewReader(Encode(tb, v)))
	r.Header.Set("Content-Type", ContentType)
	return r
}

// NewClientRequest builds an outgoing client request with v encoded as the
// body.
func NewClientRequest(tb testing.TB, method, url string, v any) *http.Request {
	tb.Helper()
	r, err := http.NewRequest(method, url, bytes.NewReader(Encode(tb, v)))
	if err != nil {
		tb.Fatalf("cbortest: failed to create request: %v", err)
	}
	r.Header.Set("Content-Type", ContentType)
	return r
}

// Post sends v as a cbor body to url.
func Post(tb testing.TB, client *http.Client, url string, v any) *http.Response {
	tb.Helper()
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(NewClientRequest(tb, http.MethodPost, url, v))
	if err != nil {
		tb.Fatalf("cbortest: request failed: %v", err)
	}
	return res
}

// Decode unmarshals b into a T and fails the test on error.
func Decode[T any](tb testing.TB, b []byte) T {
	tb.Helper()
	var v T
	if err := codec.Unmarshal(b, &v); err != nil {
		tb.Fatalf("cbortest: failed to decode %T: %v", v, err)
	}
	return v
}

// DecodeResponse reads and closes the response body then decodes it.
func DecodeResponse[T any](tb testing.TB, res *http.Response) T {
	tb.Helper()
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		tb.Fatalf("cbortest: failed to read response body: %v", err)
	}
	return Decode[T](tb, b)
}

// DecodeRecorder decodes the body captured by a ResponseRecorder.
func DecodeRecorder[T any](tb testing.TB, rec *httptest.ResponseRecorder) T {
	tb.Helper()
	return Decode[T](tb, rec.Body.Bytes())
}
