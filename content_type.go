package cborhttp

import (
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"
)

// ContentType is the media type written on successful responses.
const ContentType = "application/cbor"

const textPlainUTF8 = "text/plain; charset=utf-8"

// IsCborContentType reports whether the content-type header names a cbor
// media type. Both application/cbor and structured syntax suffixes like
// application/cloudevents+cbor are accepted. Parameters are ignored.
func IsCborContentType(h http.Header) bool {
	v := h.Get("Content-Type")
	if len(v) == 0 || !utf8.ValidString(v) {
		return false
	}
	mediatype, _, err := mime.ParseMediaType(v)
	if err != nil {
		return false
	}
	typ, subtype, ok := strings.Cut(mediatype, "/")
	if !ok || typ != "application" {
		return false
	}
	if subtype == "cbor" {
		return true
	}
	if i := strings.LastIndexByte(subtype, '+'); i >= 0 {
		return subtype[i+1:] == "cbor"
	}
	return false
}
