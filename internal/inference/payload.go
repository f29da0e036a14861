package inference

import (
	"bytes"
	"encoding/json"
	"fmt"

	"medipredict/internal/schema"
)

// EncodeTabularPayload serializes a tabular input as the upstream predict
// body: {"input_data": {...}, "additional_info": {...}}.
//
// The trained models receive features positionally, so the key order
// inside input_data must equal the schema's declared field order.
// encoding/json sorts map keys, hence the hand-rolled object encoding.
// Values are sent as entered (strings); the service coerces them.
func EncodeTabularPayload(in *schema.Input) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"input_data":{`)
	for i, f := range in.Schema.Fields {
		raw, ok := in.Values[f.Name]
		if !ok {
			return nil, fmt.Errorf("field %q has no value", f.Name)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(f.Name)
		val, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("encode field %q: %w", f.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteString(`},"additional_info":`)

	meta, err := json.Marshal(in.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encode additional_info: %w", err)
	}
	buf.Write(meta)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EncodeMetadata serializes patient metadata for the multipart
// `additional_info` form field (sent as an opaque JSON string).
func EncodeMetadata(in *schema.Input) ([]byte, error) {
	meta, err := json.Marshal(in.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encode additional_info: %w", err)
	}
	return meta, nil
}
