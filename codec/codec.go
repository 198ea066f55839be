// Package codec holds the binary codecs used to encode and decode request
// and response bodies.
package codec

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// Codec turns values into bytes and back.
type Codec interface {
	Marshaler
	Unmarshaler
}

type Unmarshaler interface {
	Unmarshal(b []byte, dst any) error
}

type Marshaler interface {
	Marshal(v any) ([]byte, error)
}

type MarshalFunc func(any) ([]byte, error)

func (f MarshalFunc) Marshal(v any) ([]byte, error) { return f(v) }

type UnmarshalFunc func([]byte, any) error

func (f UnmarshalFunc) Unmarshal(b []byte, dst any) error { return f(b, dst) }

// Funcs builds a Codec out of a marshal and unmarshal function pair.
func Funcs(m MarshalFunc, u UnmarshalFunc) Codec {
	return funcs{MarshalFunc: m, UnmarshalFunc: u}
}

type funcs struct {
	MarshalFunc
	UnmarshalFunc
}

// CBOR is the default codec. Encoding is Core Deterministic (RFC 8949
// §4.2). Decoding rejects unknown struct fields, duplicate map keys and
// trailing bytes after the first data item.
var CBOR Codec

func init() {
	c, err := New(cbor.CoreDetEncOptions(), StrictDecOptions())
	if err != nil {
		panic("codec: cbor initialization failed: " + err.Error())
	}
	CBOR = c
}

// StrictDecOptions are the decode options used by CBOR.
func StrictDecOptions() cbor.DecOptions {
	return cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}
}

// New creates a CBOR codec from fxamacker options.
func New(encOpts cbor.EncOptions, decOpts cbor.DecOptions) (Codec, error) {
	em, err := encOpts.EncMode()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build cbor encode mode")
	}
	dm, err := decOpts.DecMode()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build cbor decode mode")
	}
	return &cborCodec{enc: em, dec: dm}, nil
}

type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func (c *cborCodec) Marshal(v any) ([]byte, error) { return c.enc.Marshal(v) }

func (c *cborCodec) Unmarshal(b []byte, dst any) error { return c.dec.Unmarshal(b, dst) }

// Marshal encodes v with the default codec.
func Marshal(v any) ([]byte, error) { return CBOR.Marshal(v) }

// Unmarshal decodes b into dst with the default codec.
func Unmarshal(b []byte, dst any) error { return CBOR.Unmarshal(b, dst) }
