package cborhttp

import (
	"net/http"
	"testing"

	"github.com/matryer/is"
)

func TestIsCborContentType(t *testing.T) {
	for _, tt := range []struct {
		value string
		want  bool
	}{
		{"application/cbor", true},
		{"application/cbor; charset=utf-8", true},
		{"application/cbor;charset=utf-8", true},
		{"application/cbor ; charset=utf-8", true},
		{"Application/CBOR", true},
		{"application/cloudevents+cbor", true},
		{"application/cloudevents+cbor; charset=utf-8", true},
		{"application/vnd.a+b+cbor", true},
		{"application/json", false},
		{"application/cbor-seq", false},
		{"application/cbor+json", false},
		{"text/cbor", false},
		{"text/plain", false},
		{"foobar", false},
		{"application/", false},
		{"application/cbor; charset", false},
		{"", false},
		{"application/cbor\xff", false},
	} {
		h := make(http.Header)
		h.Set("Content-Type", tt.value)
		if got := IsCborContentType(h); got != tt.want {
			t.Errorf("IsCborContentType(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestIsCborContentTypeMissing(t *testing.T) {
	is := is.New(t)
	is.True(!IsCborContentType(http.Header{}))
	is.True(!IsCborContentType(nil))
}
