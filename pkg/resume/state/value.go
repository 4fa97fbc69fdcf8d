package state

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the concrete type held by a Value.
type Kind int

// Value kinds. The zero value is KindNil.
const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindInts
	KindFloats
	KindStrings
	KindMap
)

// String returns the wire name for a kind.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindInts:
		return "ints"
	case KindFloats:
		return "floats"
	case KindStrings:
		return "strings"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a tagged-union of the serializable types a checkpoint can
// carry: scalars, strings, numeric arrays, and nested string-keyed
// mappings. The JSON form includes an explicit kind tag so a decoded
// value has exactly the kind it was encoded with (no float64 collapse
// of integers).
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	is   []int64
	fs   []float64
	ss   []string
	m    map[string]Value
}

// Nil returns the nil value.
func Nil() Value { return Value{} }

// Bool wraps a boolean.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int wraps a 64-bit integer.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float wraps a 64-bit float.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// String wraps a string.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Ints wraps an integer array.
func Ints(v []int64) Value { return Value{kind: KindInts, is: v} }

// Floats wraps a float array.
func Floats(v []float64) Value { return Value{kind: KindFloats, fs: v} }

// Strings wraps a string array.
func Strings(v []string) Value { return Value{kind: KindStrings, ss: v} }

// Map wraps a nested mapping.
func Map(v map[string]Value) Value { return Value{kind: KindMap, m: v} }

// Kind returns the kind tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether the value is the nil value.
func (v Value) IsNil() bool { return v.kind == KindNil }

// Bool returns the boolean payload. ok is false if the kind differs.
func (v Value) Bool() (val bool, ok bool) { return v.b, v.kind == KindBool }

// Int returns the integer payload. ok is false if the kind differs.
func (v Value) Int() (val int64, ok bool) { return v.i, v.kind == KindInt }

// Float returns the float payload. ok is false if the kind differs.
func (v Value) Float() (val float64, ok bool) { return v.f, v.kind == KindFloat }

// String returns the string payload. ok is false if the kind differs.
func (v Value) String() (val string, ok bool) { return v.s, v.kind == KindString }

// Ints returns the integer array payload. ok is false if the kind differs.
func (v Value) Ints() (val []int64, ok bool) { return v.is, v.kind == KindInts }

// Floats returns the float array payload. ok is false if the kind differs.
func (v Value) Floats() (val []float64, ok bool) { return v.fs, v.kind == KindFloats }

// Strings returns the string array payload. ok is false if the kind differs.
func (v Value) Strings() (val []string, ok bool) { return v.ss, v.kind == KindStrings }

// Map returns the nested mapping payload. ok is false if the kind differs.
func (v Value) Map() (val map[string]Value, ok bool) { return v.m, v.kind == KindMap }

// Clone returns a deep copy of the value. Array and map payloads are
// copied so mutations of the original cannot leak into the clone.
func (v Value) Clone() Value {
	switch v.kind {
	case KindInts:
		cp := make([]int64, len(v.is))
		copy(cp, v.is)
		return Value{kind: KindInts, is: cp}
	case KindFloats:
		cp := make([]float64, len(v.fs))
		copy(cp, v.fs)
		return Value{kind: KindFloats, fs: cp}
	case KindStrings:
		cp := make([]string, len(v.ss))
		copy(cp, v.ss)
		return Value{kind: KindStrings, ss: cp}
	case KindMap:
		cp := make(map[string]Value, len(v.m))
		for k, elem := range v.m {
			cp[k] = elem.Clone()
		}
		return Value{kind: KindMap, m: cp}
	default:
		return v
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindInts:
		if len(v.is) != len(other.is) {
			return false
		}
		for i := range v.is {
			if v.is[i] != other.is[i] {
				return false
			}
		}
		return true
	case KindFloats:
		if len(v.fs) != len(other.fs) {
			return false
		}
		for i := range v.fs {
			if v.fs[i] != other.fs[i] {
				return false
			}
		}
		return true
	case KindStrings:
		if len(v.ss) != len(other.ss) {
			return false
		}
		for i := range v.ss {
			if v.ss[i] != other.ss[i] {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for k, elem := range v.m {
			o, ok := other.m[k]
			if !ok || !elem.Equal(o) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// wireValue is the JSON form of a Value.
type wireValue struct {
	Kind string          `json:"t"`
	Val  json.RawMessage `json:"v,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	var payload any
	switch v.kind {
	case KindNil:
		return json.Marshal(wireValue{Kind: "nil"})
	case KindBool:
		payload = v.b
	case KindInt:
		payload = v.i
	case KindFloat:
		payload = v.f
	case KindString:
		payload = v.s
	case KindInts:
		payload = v.is
	case KindFloats:
		payload = v.fs
	case KindStrings:
		payload = v.ss
	case KindMap:
		payload = v.m
	default:
		return nil, fmt.Errorf("marshal value: unknown kind %d", v.kind)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireValue{Kind: v.kind.String(), Val: raw})
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case "nil", "":
		*v = Value{}
		return nil
	case "bool":
		var b bool
		if err := json.Unmarshal(w.Val, &b); err != nil {
			return err
		}
		*v = Bool(b)
	case "int":
		var i int64
		if err := json.Unmarshal(w.Val, &i); err != nil {
			return err
		}
		*v = Int(i)
	case "float":
		var f float64
		if err := json.Unmarshal(w.Val, &f); err != nil {
			return err
		}
		*v = Float(f)
	case "string":
		var s string
		if err := json.Unmarshal(w.Val, &s); err != nil {
			return err
		}
		*v = String(s)
	case "ints":
		var is []int64
		if err := json.Unmarshal(w.Val, &is); err != nil {
			return err
		}
		*v = Ints(is)
	case "floats":
		var fs []float64
		if err := json.Unmarshal(w.Val, &fs); err != nil {
			return err
		}
		*v = Floats(fs)
	case "strings":
		var ss []string
		if err := json.Unmarshal(w.Val, &ss); err != nil {
			return err
		}
		*v = Strings(ss)
	case "map":
		var m map[string]Value
		if err := json.Unmarshal(w.Val, &m); err != nil {
			return err
		}
		*v = Map(m)
	default:
		return fmt.Errorf("unmarshal value: unknown kind %q", w.Kind)
	}
	return nil
}
