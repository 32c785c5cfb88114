package protocol

import (
	"strconv"
	"strings"
)

// Kind identifies the concrete type held by a Value.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindText
)

// Value is the tagged variant for info field values. Coercion order is
// deterministic: integer, then float, then trimmed text.
type Value struct {
	kind Kind
	i    int
	f    float64
	s    string
}

// IntValue returns a Value holding an integer.
func IntValue(i int) Value { return Value{kind: KindInt, i: i} }

// FloatValue returns a Value holding a float.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// TextValue returns a Value holding text.
func TextValue(s string) Value { return Value{kind: KindText, s: s} }

// CoerceValue converts a raw field value using the int → float → text
// fallback chain. Numeric parsing ignores surrounding whitespace; the
// text fallback is the trimmed input.
func CoerceValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return IntValue(n)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return FloatValue(f)
	}
	return TextValue(trimmed)
}

// Kind returns the tag of the value.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer payload; ok is false for other kinds.
func (v Value) Int() (n int, ok bool) { return v.i, v.kind == KindInt }

// Float returns the float payload; ok is false for other kinds.
func (v Value) Float() (f float64, ok bool) { return v.f, v.kind == KindFloat }

// Text returns the text payload; ok is false for other kinds.
func (v Value) Text() (s string, ok bool) { return v.s, v.kind == KindText }

// String renders the payload regardless of kind.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}
