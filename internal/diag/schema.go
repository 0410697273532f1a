package diag

import (
	"bytes"
	"encoding/json"
	"sort"
)

// SchemaV1 versions the JSON envelope a Diagnostic/Obligation/TypeHole is
// wrapped in when emitted standalone to an agent consumer (as opposed to
// embedded in a compiler.Result, which carries its own top-level
// shape). Grounded on the teacher's schema.ErrorV1 versioning convention
// in internal/schema/registry.go + internal/errors/json_encoder.go.
const SchemaV1 = "clank.diagnostic/v1"

// Envelope wraps a single record with its schema version, mirroring
// errors.Encoded's Schema field.
type Envelope struct {
	Schema string `json:"schema"`
	Kind   string `json:"kind"`
	Data   any    `json:"data"`
}

// NewEnvelope wraps data (a *Diagnostic, *Obligation, or *TypeHole) with
// the current schema version and a kind discriminator.
func NewEnvelope(kind string, data any) Envelope {
	return Envelope{Schema: SchemaV1, Kind: kind, Data: data}
}

// MarshalDeterministic marshals v with map keys sorted, so two runs over
// the same logical value produce byte-identical JSON. This matters for
// golden-file diagnostic tests and for any consumer that hashes the
// output. Adapted from schema.MarshalDeterministic's
// marshal-then-resort-generic-map approach.
func MarshalDeterministic(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	data := bytes.TrimRight(buf.Bytes(), "\n")

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		// Not a JSON object/array (e.g. a bare string or number): the
		// encoding has nothing left to sort.
		return data, nil
	}
	return marshalSorted(generic)
}

func marshalSorted(v any) ([]byte, error) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyJSON, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(keyJSON)
			buf.WriteByte(':')
			valJSON, err := marshalSorted(val[k])
			if err != nil {
				return nil, err
			}
			buf.Write(valJSON)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil

	case []any:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			itemJSON, err := marshalSorted(item)
			if err != nil {
				return nil, err
			}
			buf.Write(itemJSON)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil

	default:
		return json.Marshal(v)
	}
}
