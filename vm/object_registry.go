package vm

import (
	"fmt"
	"slices"
	"sync"
)

// ---------------------------------------------------------------------------
// ObjectSpace: oid -> object registry
// ---------------------------------------------------------------------------

// ObjectSpace maps oids to live objects. It stands in for the persistent
// object store: the rest of the runtime only resolves oids through it.
// It's thread-safe for concurrent access.
type ObjectSpace struct {
	mu      sync.RWMutex
	objects map[Oid]*Object
}

// NewObjectSpace creates an empty object space.
func NewObjectSpace() *ObjectSpace {
	return &ObjectSpace{
		objects: make(map[Oid]*Object),
	}
}

// Register adds ob to the space. It fails if a different object with the
// same oid is already registered.
func (sp *ObjectSpace) Register(ob *Object) error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if old, ok := sp.objects[ob.oid]; ok && old != ob {
		return fmt.Errorf("object %s already registered", ob.oid)
	}
	sp.objects[ob.oid] = ob
	return nil
}

// Resolve returns a reference to the object with the given oid, or the
// empty Ref if it is unknown.
func (sp *ObjectSpace) Resolve(oid Oid) Ref {
	sp.mu.RLock()
	defer sp.mu.RUnlock()
	return Ref{ob: sp.objects[oid]}
}

// ResolveString parses s as an oid and resolves it.
func (sp *ObjectSpace) ResolveString(s string) (Ref, error) {
	oid, err := ParseOid(s)
	if err != nil {
		return EmptyRef, err
	}
	return sp.Resolve(oid), nil
}

// Intern returns the object with the given oid, creating and registering
// an empty one if needed.
func (sp *ObjectSpace) Intern(oid Oid) Ref {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if ob, ok := sp.objects[oid]; ok {
		return ob.Ref()
	}
	ob := NewObjectWithOid(oid)
	sp.objects[oid] = ob
	return ob.Ref()
}

// NewObject creates an object with a fresh oid and registers it.
func (sp *ObjectSpace) NewObject() Ref {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	for {
		ob := NewObject()
		if _, taken := sp.objects[ob.oid]; taken {
			continue
		}
		sp.objects[ob.oid] = ob
		return ob.Ref()
	}
}

// DefineClass interns oid and attaches a class-info payload naming the
// given attributes. Any previous payload is replaced.
func (sp *ObjectSpace) DefineClass(oid Oid, name string, superclass Ref, attrs ...Ref) Ref {
	ref := sp.Intern(oid)
	ref.ob.SetPayload(NewClassInfo(name, superclass, NewAttrSet(attrs...)))
	return ref
}

// Remove unregisters the object with the given oid.
// Returns true if an object was removed.
func (sp *ObjectSpace) Remove(oid Oid) bool {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if _, ok := sp.objects[oid]; !ok {
		return false
	}
	delete(sp.objects, oid)
	return true
}

// Len returns the number of registered objects.
func (sp *ObjectSpace) Len() int {
	sp.mu.RLock()
	defer sp.mu.RUnlock()
	return len(sp.objects)
}

// Classes returns references to every registered class, in oid order.
func (sp *ObjectSpace) Classes() []Ref {
	sp.mu.RLock()
	refs := make([]Ref, 0, len(sp.objects))
	for _, ob := range sp.objects {
		refs = append(refs, ob.Ref())
	}
	sp.mu.RUnlock()

	refs = slices.DeleteFunc(refs, func(r Ref) bool { return !r.ob.IsClass() })
	slices.SortFunc(refs, Ref.Compare)
	return refs
}
