// Package value implements the tagged-variant runtime value used by the
// chunk constant pool and the VM's value stack, together with the heap
// object model strings (and, as reserved future work, functions and class
// instances) are built on.
package value

import (
	"fmt"
	"strconv"
)

// Kind tags the payload a Value currently holds.
type Kind byte

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObj
)

// Value is a small tagged union: exactly one of its payload fields is
// meaningful, selected by Kind. It is passed and returned by value, never
// by pointer, the same way clox's `value` struct is copied around.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	obj     *Object
}

func Nil() Value             { return Value{kind: KindNil} }
func Bool(b bool) Value      { return Value{kind: KindBool, boolean: b} }
func Number(n float64) Value { return Value{kind: KindNumber, number: n} }
func Obj(o *Object) Value    { return Value{kind: KindObj, obj: o} }

func (v Value) IsNil() bool    { return v.kind == KindNil }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsObj() bool    { return v.kind == KindObj }

// AsBool returns the boolean payload. The caller must have checked IsBool.
func (v Value) AsBool() bool {
	if v.kind != KindBool {
		panic("value: AsBool on a non-bool Value")
	}
	return v.boolean
}

// AsNumber returns the number payload. The caller must have checked IsNumber.
func (v Value) AsNumber() float64 {
	if v.kind != KindNumber {
		panic("value: AsNumber on a non-number Value")
	}
	return v.number
}

// AsObj returns the object payload. The caller must have checked IsObj.
func (v Value) AsObj() *Object {
	if v.kind != KindObj {
		panic("value: AsObj on a non-object Value")
	}
	return v.obj
}

// IsString reports whether v holds a string object.
func (v Value) IsString() bool {
	return v.IsObj() && v.obj.Kind == ObjString
}

// AsString returns the string object's contents. The caller must have
// checked IsString.
func (v Value) AsString() string {
	if !v.IsString() {
		panic("value: AsString on a non-string Value")
	}
	return v.obj.Chars
}

// IsFalsey implements Lox's truthiness rule: nil and false are falsey,
// everything else (including 0 and "") is truthy.
func (v Value) IsFalsey() bool {
	return v.IsNil() || (v.IsBool() && !v.AsBool())
}

// AreEqual implements structural equality: NIL equals NIL, BOOL and NUMBER
// compare their payload (NaN never equals itself, matching IEEE-754 and Go's
// native float64 ==), strings compare by content, and any other object kind
// compares by identity. Values of different kinds are never equal.
func AreEqual(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.boolean == b.boolean
	case KindNumber:
		return a.number == b.number
	case KindObj:
		if a.obj.Kind == ObjString && b.obj.Kind == ObjString {
			return a.obj.Chars == b.obj.Chars
		}
		return a.obj == b.obj
	default:
		return false
	}
}

// Print renders v the way the VM's print/OP_PRINT sink does: "nil",
// "true"/"false", a shortest-round-trip decimal for numbers, or a string's
// raw contents with no surrounding quotes.
func Print(v Value) string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindNumber:
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	case KindObj:
		return printObj(v.obj)
	default:
		return fmt.Sprintf("<unknown value kind %d>", v.kind)
	}
}
