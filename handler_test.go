package cborhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"

	"github.com/harrybrwn/cborhttp/cbortest"
)

func TestHandleEcho(t *testing.T) {
	is := is.New(t)
	srv := testServer(t, func(r chi.Router) {
		r.Post("/echo", Handle(func(_ *http.Request, d data) (data, error) { return d, nil }, discard))
	})
	want := data{Text: "Hello, world!", Number: 7}
	res := cbortest.Post(t, srv.Client(), srv.URL+"/echo", want)
	is.Equal(res.StatusCode, http.StatusOK)
	is.Equal(res.Header.Get("Content-Type"), "application/cbor")
	is.Equal(cbortest.DecodeResponse[data](t, res), want)
}

func TestHandleErrors(t *testing.T) {
	is := is.New(t)
	h := Handle(func(_ *http.Request, d data) (data, error) {
		if d.Number == 0 {
			return data{}, NewError(http.StatusUnprocessableEntity, "number is required")
		}
		return d, nil
	}, discard)

	rec := httptest.NewRecorder()
	h(rec, cbortest.NewRequest(t, "POST", "/", data{Text: "x"}))
	is.Equal(rec.Code, http.StatusUnprocessableEntity)
	is.Equal(rec.Body.String(), "number is required")

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest("POST", "/", nil))
	is.Equal(rec.Code, http.StatusUnsupportedMediaType)
}

func TestHandleSerializeFailure(t *testing.T) {
	is := is.New(t)
	h := Handle(func(*http.Request, data) (unserializable, error) {
		return unserializable{}, nil
	}, discard)
	rec := httptest.NewRecorder()
	h(rec, cbortest.NewRequest(t, "POST", "/", data{Number: 1}))
	is.Equal(rec.Code, http.StatusInternalServerError)
	is.Equal(rec.Body.String(), "Failed to serialize")
}

func TestHandlePathParams(t *testing.T) {
	is := is.New(t)
	srv := testServer(t, func(r chi.Router) {
		r.Post("/{name}", Handle(func(r *http.Request, d data) (data, error) {
			d.Text = chi.URLParam(r, "name")
			return d, nil
		}, discard))
	})
	res := cbortest.Post(t, srv.Client(), srv.URL+"/joe", data{Number: 3})
	out := cbortest.DecodeResponse[data](t, res)
	is.Equal(out, data{Text: "joe", Number: 3})
}
