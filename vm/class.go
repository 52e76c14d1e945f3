package vm

// ---------------------------------------------------------------------------
// ClassInfo: the payload that makes an object a class
// ---------------------------------------------------------------------------

// ClassInfo describes a class: its name, its superclass and the attribute
// set its instances carry. A ClassInfo is immutable once attached; changing
// a class's schema means attaching a new ClassInfo, so instances built
// against the previous one keep a consistent layout.
type ClassInfo struct {
	name       string
	superclass Ref
	attributes *AttrSet
}

// NewClassInfo creates a class-info payload. attrs may be nil for a class
// that declares no attribute set.
func NewClassInfo(name string, superclass Ref, attrs *AttrSet) *ClassInfo {
	return &ClassInfo{name: name, superclass: superclass, attributes: attrs}
}

// PayloadName implements Payload.
func (ci *ClassInfo) PayloadName() string { return "classinfo" }

// Name returns the class name (informational only; classes are identified
// by oid).
func (ci *ClassInfo) Name() string { return ci.name }

// Superclass returns the superclass reference, possibly empty.
func (ci *ClassInfo) Superclass() Ref { return ci.superclass }

// Attributes returns the class's attribute set, or nil if none is declared.
func (ci *ClassInfo) Attributes() *AttrSet { return ci.attributes }

// WithAttributes returns a copy of ci with a different attribute set.
func (ci *ClassInfo) WithAttributes(attrs *AttrSet) *ClassInfo {
	return &ClassInfo{name: ci.name, superclass: ci.superclass, attributes: attrs}
}

// NewClass creates a class object with a fresh oid whose instances carry
// the given attributes.
func NewClass(name string, superclass Ref, attrs ...Ref) *Object {
	ob := NewObject()
	ob.SetPayload(NewClassInfo(name, superclass, NewAttrSet(attrs...)))
	return ob
}

// ---------------------------------------------------------------------------
// Class metadata access
// ---------------------------------------------------------------------------

// ClassAttrSet returns the attribute set of the class referenced by class.
// It returns nil, never failing, when class is empty, when the object has
// no class-info payload, or when the class declares no attribute set.
//
// The class's lock is held only while its payload is read.
func ClassAttrSet(class Ref) *AttrSet {
	if class.IsEmpty() {
		return nil
	}
	var attrs *AttrSet
	class.ob.Guarded(func(p Payload) {
		if ci, ok := p.(*ClassInfo); ok {
			attrs = ci.attributes
		}
	})
	return attrs
}
