package vm

import (
	"math"
)

// DefaultMaxInstanceSize is the default limit on the number of slots of a
// single instance.
const DefaultMaxInstanceSize = math.MaxUint32 / 2

// Builder constructs instances, validating them against their class's
// attribute set. A Builder is safe for concurrent use.
type Builder struct {
	alloc   Allocator
	maxSize int
}

// NewBuilder creates a builder that allocates with alloc and refuses
// instances of more than maxSize slots. A nil alloc means a fresh
// HeapAllocator; a non-positive maxSize means DefaultMaxInstanceSize.
func NewBuilder(alloc Allocator, maxSize int) *Builder {
	if alloc == nil {
		alloc = NewHeapAllocator()
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxInstanceSize
	}
	return &Builder{alloc: alloc, maxSize: maxSize}
}

// MaxSize returns the slot limit.
func (b *Builder) MaxSize() int {
	return b.maxSize
}

// Allocator returns the builder's allocator.
func (b *Builder) Allocator() Allocator {
	return b.alloc
}

// Build creates an instance of class with the given positional components
// and attribute values.
//
// class must not be empty, and neither keys nor values of attrs may be
// empty; violating that panics. Build fails with a *ClassError when the
// class has no class-info payload (ErrClassWithoutPayload), declares no
// attribute set (ErrClassWithoutAttributes), or does not know one of the
// keys of attrs (ErrUnknownAttribute). Nothing is allocated on failure.
//
// An instance needing more than MaxSize slots panics with *OversizeError.
func (b *Builder) Build(class Ref, comps []Value, attrs map[Ref]Value) (*Instance, error) {
	if class.IsEmpty() {
		panic("vm: Builder.Build: empty class")
	}
	const op = "build instance"

	// Only the payload read happens under the class lock.
	var ci *ClassInfo
	class.ob.Guarded(func(p Payload) {
		ci, _ = p.(*ClassInfo)
	})
	if ci == nil {
		log.Debug("refusing instance of non-class", "class", class.String())
		return nil, &ClassError{Op: op, Class: class, Err: ErrClassWithoutPayload}
	}
	attrset := ci.Attributes()
	if attrset == nil {
		log.Debug("refusing instance of class without attributes", "class", class.String())
		return nil, &ClassError{Op: op, Class: class, Err: ErrClassWithoutAttributes}
	}

	for attr, val := range attrs {
		if attr.IsEmpty() {
			panic("vm: Builder.Build: empty attribute for class " + class.String())
		}
		if IsEmpty(val) {
			panic("vm: Builder.Build: empty value for attribute " + attr.String())
		}
		if !attrset.Contains(attr) {
			log.Debug("refusing unknown attribute", "class", class.String(), "attribute", attr.String())
			return nil, &ClassError{Op: op, Class: class, Attr: attr, Err: ErrUnknownAttribute}
		}
	}

	nbattrs := attrset.Cardinal()
	nbcomps := len(comps)
	size := 2*nbattrs + nbcomps
	if size > b.maxSize || size < 0 {
		err := &OversizeError{Class: class, Size: size, Max: b.maxSize}
		log.Critical(err.Error())
		panic(err)
	}

	inst := b.alloc.AllocateVariable(class, size)
	if inst == nil || len(inst.sons) != size {
		panic("vm: Builder.Build: allocator returned a malformed instance")
	}
	inst.class = class
	inst.nbattrs = nbattrs
	for attr, val := range attrs {
		ix := attrset.ElementIndex(attr)
		if ix < 0 {
			panic("vm: Builder.Build: attribute " + attr.String() + " vanished from its set")
		}
		inst.sons[2*ix] = attr
		inst.sons[2*ix+1] = val
	}
	copy(inst.sons[2*nbattrs:], comps)
	return inst, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild(class Ref, comps []Value, attrs map[Ref]Value) *Instance {
	inst, err := b.Build(class, comps, attrs)
	if err != nil {
		panic(err)
	}
	return inst
}

var defaultBuilder = NewBuilder(nil, 0)

// MakeInstance builds an instance with the default builder.
func MakeInstance(class Ref, comps []Value, attrs map[Ref]Value) (*Instance, error) {
	return defaultBuilder.Build(class, comps, attrs)
}
