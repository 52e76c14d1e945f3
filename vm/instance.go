package vm

import (
	"io"
	"slices"
)

// Instance is an immutable object built from a class, a set of attribute
// values and a list of positional components.
//
// All values live in one packed slice:
//
//	sons[2*i], sons[2*i+1]   attribute i of the class's AttrSet and its value
//	sons[2*nbattrs+j]        component j
//
// Attribute pairs that were not supplied at construction hold nil.
type Instance struct {
	class   Ref
	nbattrs int
	sons    []Value
}

// Type reports TypeInstance.
func (*Instance) Type() Type { return TypeInstance }

// Class returns the stored class reference.
func (inst *Instance) Class() Ref {
	return inst.class
}

// Size returns the number of slots: 2*NbAttributes() + NbComponents().
func (inst *Instance) Size() int {
	return len(inst.sons)
}

// NbAttributes returns the cardinal of the attribute set the instance was
// laid out against.
func (inst *Instance) NbAttributes() int {
	return inst.nbattrs
}

// NbComponents returns the number of positional components.
func (inst *Instance) NbComponents() int {
	return len(inst.sons) - 2*inst.nbattrs
}

// ---------------------------------------------------------------------------
// Slot access
// ---------------------------------------------------------------------------

// Slot returns the value at slot index i, nil for an absent attribute pair.
// Panics if i is out of range.
func (inst *Instance) Slot(i int) Value {
	if i < 0 || i >= len(inst.sons) {
		panic("Instance.Slot: index out of range")
	}
	return inst.sons[i]
}

// Component returns component i.
// Panics if i is out of range.
func (inst *Instance) Component(i int) Value {
	if i < 0 || i >= inst.NbComponents() {
		panic("Instance.Component: index out of range")
	}
	return inst.sons[2*inst.nbattrs+i]
}

// Components returns a copy of the positional components in order.
func (inst *Instance) Components() []Value {
	return slices.Clone(inst.sons[2*inst.nbattrs:])
}

// Attribute returns the value stored for attr, and false if attr was not
// set on this instance.
func (inst *Instance) Attribute(attr Ref) (Value, bool) {
	if attr.IsEmpty() {
		return nil, false
	}
	for i := 0; i < inst.nbattrs; i++ {
		if k, ok := inst.sons[2*i].(Ref); ok && k == attr {
			return inst.sons[2*i+1], true
		}
	}
	return nil, false
}

// ForEachAttribute calls fn for every attribute pair that is set, in
// attribute-set order.
func (inst *Instance) ForEachAttribute(fn func(attr Ref, value Value)) {
	for i := 0; i < inst.nbattrs; i++ {
		if k, ok := inst.sons[2*i].(Ref); ok && !k.IsEmpty() {
			fn(k, inst.sons[2*i+1])
		}
	}
}

// ---------------------------------------------------------------------------
// Class introspection
// ---------------------------------------------------------------------------

// EffectiveClass returns the instance's class. A well-formed instance
// always has a class carrying a class-info payload; anything else panics.
func (inst *Instance) EffectiveClass() Ref {
	if inst.Type() != TypeInstance {
		panic("vm: EffectiveClass: stored type is not instance")
	}
	if inst.class.IsEmpty() || !inst.class.ob.IsClass() {
		panic("vm: EffectiveClass: class " + inst.class.String() + " has no class-info payload")
	}
	return inst.class
}

// EffectiveAttributes returns the current attribute set of the instance's
// class, or nil. It never panics.
func (inst *Instance) EffectiveAttributes() *AttrSet {
	return ClassAttrSet(inst.class)
}

// Render is meant to write a textual form of the instance to w, nesting at
// most depth levels. The format is not settled, so it only logs a warning,
// writes nothing and returns ErrRenderNotImplemented.
func (inst *Instance) Render(w io.Writer, depth int) error {
	log.Warning("instance rendering is not implemented", "class", inst.class.String(), "depth", depth)
	return ErrRenderNotImplemented
}
