package rpc

import (
	"encoding/json"
	"io"
)

// Encoder for payloads
type Encoder interface {
	// Encode encodes the provided payload with its format to the
	// provided writer. In case of failure it is possible a partial
	// write of the serialization to the writer
	Encode(writer io.Writer, v interface{}) error
}

// JsonEncoder is a payload encoder that serializes to JSON. HTML
// characters are not escaped, so Move type tags such as
// 0x2::coin::Coin<0x2::sui::SUI> are written as is
type JsonEncoder struct{}

// Encode is the implementation of Encoder for JsonEncoder
func (e JsonEncoder) Encode(writer io.Writer, v interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
