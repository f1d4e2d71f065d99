// Package rawtree models the loosely-typed JSON trees returned by the
// extraction service. The schema of those payloads varies between service
// versions, so every accessor is total: looking up a missing key, indexing
// a non-list, or coercing a non-scalar yields a zero value, never a panic.
package rawtree

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind identifies the shape of a Value.
type Kind int

const (
	// Absent marks a value that was not present in the source payload.
	Absent Kind = iota
	// Null marks an explicit JSON null.
	Null
	// String marks a JSON string.
	String
	// Number marks a JSON number.
	Number
	// Bool marks a JSON boolean.
	Bool
	// List marks a JSON array.
	List
	// Object marks a JSON object.
	Object
)

// Value is one node of a raw extraction payload.
// The zero Value has Kind Absent.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
	obj  map[string]Value
}

// Decode parses JSON bytes into a Value. Malformed JSON is the only error
// condition; a valid document of any shape decodes successfully.
func Decode(data []byte) (Value, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Value{}, err
	}
	return FromAny(raw), nil
}

// FromAny converts a decoded JSON value (as produced by encoding/json into
// any) to a Value. Unknown Go types map to Absent.
func FromAny(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Value{kind: Null}
	case string:
		return Value{kind: String, str: v}
	case float64:
		return Value{kind: Number, num: v}
	case bool:
		return Value{kind: Bool, b: v}
	case []any:
		list := make([]Value, 0, len(v))
		for _, item := range v {
			list = append(list, FromAny(item))
		}
		return Value{kind: List, list: list}
	case map[string]any:
		obj := make(map[string]Value, len(v))
		for key, item := range v {
			obj[key] = FromAny(item)
		}
		return Value{kind: Object, obj: obj}
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return Value{kind: Number, num: f}
		}
		return Value{kind: String, str: v.String()}
	default:
		return Value{}
	}
}

// Str constructs a String value.
func Str(s string) Value { return Value{kind: String, str: s} }

// Kind reports the shape of the value.
func (v Value) Kind() Kind { return v.kind }

// Field returns the named member of an object. For any other kind the
// result is Absent.
func (v Value) Field(key string) Value {
	if v.kind != Object {
		return Value{}
	}
	child, ok := v.obj[key]
	if !ok {
		return Value{}
	}
	return child
}

// Items returns the elements of a list, or nil for any other kind.
func (v Value) Items() []Value {
	if v.kind != List {
		return nil
	}
	return v.list
}

// Text coerces a scalar to its string form. Strings are returned verbatim,
// numbers format without an exponent or trailing zeros, booleans as
// "true"/"false". Lists, objects, nulls and absent values yield "".
func (v Value) Text() string {
	switch v.kind {
	case String:
		return v.str
	case Number:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case Bool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Strings coerces a list's scalar elements to strings, skipping blanks.
// Non-list values yield nil.
func (v Value) Strings() []string {
	items := v.Items()
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s := strings.TrimSpace(item.Text())
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// IsBlank is the single truthiness predicate used for fallback decisions.
// Absent, null, empty or whitespace-only strings, empty lists and empty
// objects are blank. Numbers and booleans are never blank, zero included,
// since 0 is a legitimate extracted value.
func (v Value) IsBlank() bool {
	switch v.kind {
	case Absent, Null:
		return true
	case String:
		return strings.TrimSpace(v.str) == ""
	case List:
		return len(v.list) == 0
	case Object:
		return len(v.obj) == 0
	default:
		return false
	}
}
