package vm

// Object is the runtime descriptor of any entity: a class, an attribute,
// or an ordinary object. Objects are identified by their oid and carry an
// optional payload guarded by a per-object recursive mutex.
//
// Objects are owned by an ObjectSpace (or by the caller); references to
// them are handed out as Refs.
type Object struct {
	oid Oid
	mu  RecursiveMutex

	// Guarded by mu.
	payload Payload
}

// Payload is the typed extension attached to an Object. ClassInfo is the
// payload that makes an object a class.
type Payload interface {
	PayloadName() string
}

// NewObject creates an object with a fresh random oid and no payload.
func NewObject() *Object {
	return &Object{oid: NewOid()}
}

// NewObjectWithOid creates an object with the given oid and no payload.
// Panics if the oid is out of range.
func NewObjectWithOid(oid Oid) *Object {
	if !oid.Valid() {
		panic("vm: NewObjectWithOid: invalid oid " + oid.String())
	}
	return &Object{oid: oid}
}

// Oid returns the object's identifier.
func (ob *Object) Oid() Oid {
	return ob.oid
}

// Ref returns a reference to ob.
func (ob *Object) Ref() Ref {
	return Ref{ob: ob}
}

// Lock acquires the object's recursive mutex.
func (ob *Object) Lock() {
	ob.mu.Lock()
}

// Unlock releases the object's recursive mutex.
func (ob *Object) Unlock() {
	ob.mu.Unlock()
}

// Guarded calls fn with the object's lock held and its current payload.
// The lock is released when fn returns, even if fn panics.
func (ob *Object) Guarded(fn func(p Payload)) {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	fn(ob.payload)
}

// Payload returns the object's payload, or nil.
func (ob *Object) Payload() Payload {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	return ob.payload
}

// SetPayload replaces the object's payload.
func (ob *Object) SetPayload(p Payload) {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	ob.payload = p
}

// ClassInfo returns the object's class-info payload, or nil if the object
// is not a class.
func (ob *Object) ClassInfo() *ClassInfo {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	ci, _ := ob.payload.(*ClassInfo)
	return ci
}

// IsClass reports whether the object carries a class-info payload.
func (ob *Object) IsClass() bool {
	return ob.ClassInfo() != nil
}

// String returns the oid text, followed by the class name for classes.
func (ob *Object) String() string {
	if ci := ob.ClassInfo(); ci != nil && ci.Name() != "" {
		return ob.oid.String() + "/" + ci.Name()
	}
	return ob.oid.String()
}

// ---------------------------------------------------------------------------
// Ref: object reference
// ---------------------------------------------------------------------------

// Ref is a nullable, identity-comparable reference to an Object.
// The zero Ref is empty. Two Refs are == exactly when they refer to the
// same Object.
type Ref struct {
	ob *Object
}

// EmptyRef is the empty reference.
var EmptyRef = Ref{}

// Type reports TypeObject; Refs are values.
func (Ref) Type() Type { return TypeObject }

// IsEmpty reports whether r refers to nothing.
func (r Ref) IsEmpty() bool {
	return r.ob == nil
}

// Object returns the referenced object, or nil for the empty Ref.
func (r Ref) Object() *Object {
	return r.ob
}

// Oid returns the referenced object's oid, or the zero oid.
func (r Ref) Oid() Oid {
	if r.ob == nil {
		return Oid{}
	}
	return r.ob.oid
}

// Compare orders references by oid. The empty Ref sorts first.
func (r Ref) Compare(other Ref) int {
	switch {
	case r.ob == other.ob:
		return 0
	case r.ob == nil:
		return -1
	case other.ob == nil:
		return 1
	}
	return r.ob.oid.Compare(other.ob.oid)
}

func (r Ref) String() string {
	if r.ob == nil {
		return "<empty>"
	}
	return r.ob.String()
}
