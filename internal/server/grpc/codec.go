package grpc

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/go-msgpack/codec"
	"google.golang.org/grpc/encoding"
)

// codecName is the content-subtype clients select with grpc.CallContentSubtype. The
// server picks the codec per request, so the proto codec stays available for reflection.
const codecName = "msgpack"

var msgpackHandle = &codec.MsgpackHandle{WriteExt: true}

func init() {
	encoding.RegisterCodec(msgpackCodec{})
}

// msgpackCodec carries the service messages as MessagePack. Byte fields travel as
// binary, and clocks keep their full 64 bits.
type msgpackCodec struct{}

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := codec.NewEncoder(&buf, msgpackHandle).Encode(v); err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	return buf.Bytes(), nil
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := codec.NewDecoder(bytes.NewReader(data), msgpackHandle).Decode(v); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", v, err)
	}
	return nil
}

func (msgpackCodec) Name() string {
	return codecName
}
