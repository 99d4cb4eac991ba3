package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FieldValue pairs a field name with its normalised value.
type FieldValue struct {
	Name  string
	Value Value
}

// PredictionRequest is the payload sent to the prediction service. It is
// built once per submission and cannot be mutated after construction.
type PredictionRequest struct {
	names  []string
	values map[string]Value
}

// NewPredictionRequest copies the supplied values into a new request. Later
// duplicates replace earlier ones but keep the first position.
func NewPredictionRequest(fields ...FieldValue) PredictionRequest {
	req := PredictionRequest{
		names:  make([]string, 0, len(fields)),
		values: make(map[string]Value, len(fields)),
	}
	for _, field := range fields {
		if _, exists := req.values[field.Name]; !exists {
			req.names = append(req.names, field.Name)
		}
		req.values[field.Name] = field.Value
	}
	return req
}

// Get returns the value recorded for name.
func (r PredictionRequest) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names returns the field names in insertion order.
func (r PredictionRequest) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r PredictionRequest) Len() int {
	return len(r.names)
}

// Map returns a plain map copy, suitable for schema validation.
func (r PredictionRequest) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for name, value := range r.values {
		out[name] = value.Interface()
	}
	return out
}

// MarshalJSON emits the fields as one JSON object in insertion order.
func (r PredictionRequest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("model: marshal field name %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.values[name].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("model: marshal field %q: %w", name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object into a request. Key order follows the
// decoded document.
func (r *PredictionRequest) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("model: prediction request must be a JSON object")
	}

	var fields []FieldValue
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("model: unexpected key token %v", keyTok)
		}
		var value Value
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("model: decode field %q: %w", key, err)
		}
		fields = append(fields, FieldValue{Name: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = NewPredictionRequest(fields...)
	return nil
}
