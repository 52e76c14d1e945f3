package vm

import (
	"fmt"
)

// ClassSpec describes a class to define at boot.
type ClassSpec struct {
	Oid        string
	Name       string
	Superclass string   // oid, optional
	Attributes []string // attribute oids
}

// BootOptions configures a Runtime.
type BootOptions struct {
	MaxInstanceSize int
	ConstantCount   int
	ConstantOids    []string
	Classes         []ClassSpec
}

// DefaultBootOptions returns the compiled-in configuration.
func DefaultBootOptions() BootOptions {
	return BootOptions{
		MaxInstanceSize: DefaultMaxInstanceSize,
		ConstantCount:   DefaultConstantCount,
		ConstantOids:    DefaultConstantOids,
	}
}

// Runtime ties together an object space, its constant table and an
// instance builder.
type Runtime struct {
	Space     *ObjectSpace
	Constants *ConstantTable
	Builder   *Builder
	Allocator *HeapAllocator
}

// Boot creates a runtime: it validates and installs the constant table,
// defines the immutable-instance class and every class in opts, and sets
// up the builder. Any inconsistency fails the whole boot.
func Boot(opts BootOptions) (*Runtime, error) {
	consts, err := NewConstantTable(opts.ConstantCount, opts.ConstantOids)
	if err != nil {
		return nil, fmt.Errorf("boot: %w", err)
	}
	sp := NewObjectSpace()
	if err := consts.Install(sp); err != nil {
		return nil, fmt.Errorf("boot: %w", err)
	}

	immutable := MustParseOid(ImmutableInstanceClassOid)
	sp.DefineClass(immutable, "immutable_instance", EmptyRef)

	defined := map[Oid]string{immutable: "immutable_instance"}
	for _, cs := range opts.Classes {
		oid, err := defineClass(sp, cs, defined)
		if err != nil {
			return nil, fmt.Errorf("boot: class %q: %w", cs.Name, err)
		}
		defined[oid] = cs.Name
	}

	alloc := NewHeapAllocator()
	rt := &Runtime{
		Space:     sp,
		Constants: consts,
		Builder:   NewBuilder(alloc, opts.MaxInstanceSize),
		Allocator: alloc,
	}
	log.Infof("booted runtime with %d objects, %d constants", sp.Len(), consts.Len())
	return rt, nil
}

func defineClass(sp *ObjectSpace, cs ClassSpec, defined map[Oid]string) (Oid, error) {
	oid, err := ParseOid(cs.Oid)
	if err != nil {
		return Oid{}, err
	}
	if prev, dup := defined[oid]; dup {
		return Oid{}, fmt.Errorf("duplicate class oid %s (already defined as %q)", oid, prev)
	}
	super := EmptyRef
	if cs.Superclass != "" {
		soid, err := ParseOid(cs.Superclass)
		if err != nil {
			return Oid{}, fmt.Errorf("superclass: %w", err)
		}
		super = sp.Intern(soid)
	}
	attrs := make([]Ref, 0, len(cs.Attributes))
	for _, s := range cs.Attributes {
		aoid, err := ParseOid(s)
		if err != nil {
			return Oid{}, fmt.Errorf("attribute: %w", err)
		}
		attrs = append(attrs, sp.Intern(aoid))
	}
	sp.DefineClass(oid, cs.Name, super, attrs...)
	return oid, nil
}

// ImmutableInstanceClass returns the class of immutable instances.
func (rt *Runtime) ImmutableInstanceClass() Ref {
	return rt.Space.Resolve(MustParseOid(ImmutableInstanceClassOid))
}

// Build builds an instance with the runtime's builder.
func (rt *Runtime) Build(class Ref, comps []Value, attrs map[Ref]Value) (*Instance, error) {
	return rt.Builder.Build(class, comps, attrs)
}
