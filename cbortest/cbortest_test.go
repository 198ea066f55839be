package cbortest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"
)

type point struct {
	X int `cbor:"x"`
	Y int `cbor:"y"`
}

func TestNewRequest(t *testing.T) {
	is := is.New(t)
	r := NewRequest(t, "POST", "/", point{1, 2})
	is.Equal(r.Header.Get("Content-Type"), "application/cbor")
	b, err := io.ReadAll(r.Body)
	is.NoErr(err)
	is.Equal(Decode[point](t, b), point{1, 2})
}

func TestPost(t *testing.T) {
	is := is.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.Header.Get("Content-Type"), ContentType)
		b, err := io.ReadAll(r.Body)
		is.NoErr(err)
		p := Decode[point](t, b)
		p.X, p.Y = p.Y, p.X
		w.Header().Set("Content-Type", ContentType)
		_, _ = w.Write(Encode(t, p))
	}))
	defer srv.Close()
	res := Post(t, srv.Client(), srv.URL, point{X: 3, Y: 4})
	is.Equal(res.StatusCode, 200)
	is.Equal(DecodeResponse[point](t, res), point{X: 4, Y: 3})
}

func TestDecodeRecorder(t *testing.T) {
	is := is.New(t)
	rec := httptest.NewRecorder()
	_, _ = rec.Write(Encode(t, []string{"a", "b"}))
	is.Equal(DecodeRecorder[[]string](t, rec), []string{"a", "b"})
}
