// Package slashtypes defines the core types for the slashline command runtime.
// This file contains the value type system used for argument conversion and
// handler invocation: every bound argument is converted from its raw token
// into a tagged Value before a handler ever sees it.
package slashtypes

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueType identifies the declared type of a command argument.
type ValueType int

const (
	// TypeString accepts any token verbatim.
	TypeString ValueType = iota
	// TypeInt requires the token to parse as a base-10 integer.
	TypeInt
	// TypeFloat requires the token to parse as a floating point number.
	TypeFloat
	// TypePath accepts any token and marks it as a filesystem path,
	// which selects the path completer by default.
	TypePath
)

// String returns the human-readable name of the value type.
func (t ValueType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypePath:
		return "path"
	default:
		return "string"
	}
}

// Value is a tagged union over the argument value kinds. Exactly one of the
// payload fields is meaningful, selected by Kind; repeated arguments carry
// their elements in List with Repeated set.
type Value struct {
	Kind     ValueType
	Repeated bool

	Str   string
	Int   int
	Float float64
	List  []Value
}

// StringValue wraps a plain string.
func StringValue(s string) Value {
	return Value{Kind: TypeString, Str: s}
}

// IntValue wraps an integer.
func IntValue(i int) Value {
	return Value{Kind: TypeInt, Int: i}
}

// FloatValue wraps a float.
func FloatValue(f float64) Value {
	return Value{Kind: TypeFloat, Float: f}
}

// PathValue wraps a filesystem path.
func PathValue(p string) Value {
	return Value{Kind: TypePath, Str: p}
}

// ListValue wraps an ordered sequence of values for a repeatable argument.
func ListValue(kind ValueType, items []Value) Value {
	return Value{Kind: kind, Repeated: true, List: items}
}

// Text returns the display form of the value, used for history recording
// and prompt default hints. Repeated values are comma-joined.
func (v Value) Text() string {
	if v.Repeated {
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = item.Text()
		}
		return strings.Join(parts, ", ")
	}
	switch v.Kind {
	case TypeInt:
		return strconv.Itoa(v.Int)
	case TypeFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	default:
		return v.Str
	}
}

// IsZero reports whether the value carries no content: an empty string or
// path, or an empty repeated sequence. Numeric zero is not a zero value.
func (v Value) IsZero() bool {
	if v.Repeated {
		return len(v.List) == 0
	}
	switch v.Kind {
	case TypeString, TypePath:
		return v.Str == ""
	default:
		return false
	}
}

// Convert parses a raw token into a Value of the given type.
func Convert(t ValueType, raw string) (Value, error) {
	switch t {
	case TypeInt:
		i, err := strconv.Atoi(raw)
		if err != nil {
			return Value{}, fmt.Errorf("not an integer: %q", raw)
		}
		return IntValue(i), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("not a number: %q", raw)
		}
		return FloatValue(f), nil
	case TypePath:
		return PathValue(raw), nil
	default:
		return StringValue(raw), nil
	}
}
