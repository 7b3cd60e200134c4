package debugger

import (
	"strconv"
)

type Kind int

const (
	TextKind Kind = iota
	IntKind
	UintKind
	FloatKind
	CharKind
)

// Value is one printable item: a text, an integer, an unsigned integer, a float or a character.
type Value struct {
	kind Kind
	text string
	i    int64
	u    uint64
	f    float64
	c    rune
}

func Text(s string) Value   { return Value{kind: TextKind, text: s} }
func Int(i int64) Value     { return Value{kind: IntKind, i: i} }
func Uint(u uint64) Value   { return Value{kind: UintKind, u: u} }
func Float(f float64) Value { return Value{kind: FloatKind, f: f} }
func Char(c rune) Value     { return Value{kind: CharKind, c: c} }
func (v Value) Kind() Kind  { return v.kind }

// String formats floats with two decimals.
func (v Value) String() string {
	switch v.kind {
	case IntKind:
		return strconv.FormatInt(v.i, 10)
	case UintKind:
		return strconv.FormatUint(v.u, 10)
	case FloatKind:
		return strconv.FormatFloat(v.f, 'f', 2, 64)
	case CharKind:
		return string(v.c)
	}
	return v.text
}
