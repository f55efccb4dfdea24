// Package enginev1 is the wire contract between encounter clients and the
// engine service: request and response messages, the gRPC service descriptor,
// and the JSON codec both sides speak.
package enginev1

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// CodecName is the gRPC content subtype used by every Engine call.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec encodes protobuf messages with protojson and everything else with
// encoding/json, so plain Go message structs and well-known types such as
// emptypb.Empty share one content subtype.
type Codec struct{}

// Marshal encodes v.
func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("enginev1: marshal %T: %w", v, err)
	}
	return data, nil
}

// Unmarshal decodes data into v.
//
// Precondition: v must be a non-nil pointer.
func (Codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("enginev1: unmarshal %T: %w", v, err)
	}
	return nil
}

// Name returns CodecName.
func (Codec) Name() string { return CodecName }
