package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Kind is the primitive type held by a Value.
type Kind uint8

const (
	KindString Kind = iota
	KindNumber
	KindBool
)

// Value is a form value: a string, a number or a boolean.
// The zero Value is the empty string.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

func String(s string) Value  { return Value{kind: KindString, str: s} }
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }

func (v Value) Kind() Kind { return v.kind }

// Num returns the number and whether v holds one.
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// Truthy reports whether v is a true boolean, a non-zero number or a non-empty string.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num != 0
	default:
		return v.str != ""
	}
}

// IsBlank reports a string value that is empty after trimming.
func (v Value) IsBlank() bool {
	return v.kind == KindString && strings.TrimSpace(v.str) == ""
}

// String renders v the way it is written into an input.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return v.str
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.num)
	default:
		return json.Marshal(v.str)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = String("")
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*v = Bool(data[0] == 't')
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("form.Value: unsupported json %s", data)
		}
		*v = Number(n)
	}
	return nil
}

// Values maps field names to their current value.
type Values map[string]Value

// Get returns the value of name, or the empty string.
func (vs Values) Get(name string) Value { return vs[name] }

// Clone returns a shallow copy.
func (vs Values) Clone() Values {
	if vs == nil {
		return Values{}
	}
	return maps.Clone(vs)
}
