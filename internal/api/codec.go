// Package api defines the ContentLedger gRPC service: request and response
// messages, the service descriptor and a client. Messages travel as JSON
// through a codec registered under the "json" content subtype.
package api

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// Codec is the content subtype clients must select with grpc.CallContentSubtype.
const Codec = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return Codec }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
