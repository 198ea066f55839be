// Package cborhttp reads and writes cbor http bodies.
//
// Extract decodes a request into a Cbor[T]. A request is rejected when
//   - it has no cbor content-type (415),
//   - the body can't be buffered (status chosen by the body package),
//   - the body isn't valid cbor or doesn't fit T (400).
//
// A Cbor[T] written to a response is encoded and sent with
// content-type: application/cbor. If the value can't be encoded the
// client gets a 500 with the text "Failed to serialize".
//
//	type CreateUser struct {
//		Email    string `cbor:"email"`
//		Password string `cbor:"password"`
//	}
//
//	r.Post("/users", cborhttp.Handle(func(r *http.Request, u CreateUser) (User, error) {
//		return createUser(r.Context(), u)
//	}))
package cborhttp
