package model

import (
	"encoding/json"
	"strconv"
)

// ValueKind distinguishes string payload values from numeric ones.
type ValueKind uint8

const (
	ValueKindString ValueKind = iota
	ValueKindNumber
)

// Value is a normalised control value. The zero value is the empty string.
type Value struct {
	kind ValueKind
	str  string
	num  float64
}

// StringValue wraps a textual value.
func StringValue(s string) Value {
	return Value{kind: ValueKindString, str: s}
}

// NumberValue wraps a numeric value.
func NumberValue(n float64) Value {
	return Value{kind: ValueKindNumber, num: n}
}

// FlagValue maps a checked state onto 1/0.
func FlagValue(checked bool) Value {
	if checked {
		return NumberValue(1)
	}
	return NumberValue(0)
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNumber() bool { return v.kind == ValueKindNumber }

// Str returns the string form. Numbers are formatted without trailing zeros.
func (v Value) Str() string {
	if v.kind == ValueKindNumber {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// Number returns the numeric payload and whether the value is numeric.
func (v Value) Number() (float64, bool) {
	if v.kind != ValueKindNumber {
		return 0, false
	}
	return v.num, true
}

// Interface returns the value as a JSON-compatible Go value (string or float64).
func (v Value) Interface() any {
	if v.kind == ValueKindNumber {
		return v.num
	}
	return v.str
}

func (v Value) String() string {
	return v.Str()
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == ValueKindNumber {
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	}
	return json.Marshal(v.str)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch typed := raw.(type) {
	case float64:
		*v = NumberValue(typed)
	case bool:
		*v = FlagValue(typed)
	case string:
		*v = StringValue(typed)
	case nil:
		*v = Value{}
	default:
		*v = StringValue(string(data))
	}
	return nil
}
