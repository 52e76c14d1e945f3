package vm

import (
	"strconv"
)

// Type is the stored runtime tag of a Value.
type Type uint8

const (
	TypeNone Type = iota
	TypeInt
	TypeDouble
	TypeString
	TypeObject
	TypeInstance
)

var typeNames = [...]string{
	TypeNone:     "none",
	TypeInt:      "int",
	TypeDouble:   "double",
	TypeString:   "string",
	TypeObject:   "object",
	TypeInstance: "instance",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Value is anything that can be stored in an instance slot.
//
// Object references, small scalars and instances are all values. A nil
// Value and the empty Ref are both "empty"; see IsEmpty.
type Value interface {
	Type() Type
}

// Scalar values.
type (
	Int    int64
	Double float64
	String string
)

func (Int) Type() Type    { return TypeInt }
func (Double) Type() Type { return TypeDouble }
func (String) Type() Type { return TypeString }

// IsEmpty reports whether v holds nothing: a nil interface or the empty Ref.
func IsEmpty(v Value) bool {
	if v == nil {
		return true
	}
	if r, ok := v.(Ref); ok {
		return r.IsEmpty()
	}
	if inst, ok := v.(*Instance); ok {
		return inst == nil
	}
	return false
}

// TypeOf returns the stored type of v, or TypeNone when v is empty.
func TypeOf(v Value) Type {
	if IsEmpty(v) {
		return TypeNone
	}
	return v.Type()
}
