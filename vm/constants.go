package vm

import (
	"fmt"
	"sync"
)

// Well-known objects the runtime refers to by oid.
const (
	// ImmutableInstanceClassOid names the class of immutable instances.
	ImmutableInstanceClassOid = "_6ulDdOP2ZNr001cqVZ"
)

// DefaultConstantOids lists the constant objects compiled into the
// runtime. DefaultConstantCount must equal its length.
var DefaultConstantOids = []string{
	"_41OFI3r0S1t03qdB2E",
	"_9uwZtDshW4401x6MsY",
}

// DefaultConstantCount is the declared size of the default constant table.
const DefaultConstantCount = 2

// ---------------------------------------------------------------------------
// ConstantTable: well-known objects resolved once at boot
// ---------------------------------------------------------------------------

// ConstantTable holds the constant objects of the runtime: a fixed list of
// oids, each bound to a slot that is filled when the table is installed
// into an object space.
type ConstantTable struct {
	mu      sync.RWMutex
	oids    []Oid
	index   map[Oid]int
	slots   []Ref
	installed bool
}

// NewConstantTable validates the given oids against the declared count and
// returns a table with empty slots. It fails on a malformed or duplicated
// oid, or when len(oids) differs from declared.
func NewConstantTable(declared int, oids []string) (*ConstantTable, error) {
	if len(oids) != declared {
		return nil, fmt.Errorf("constant table: %d oids listed, %d declared", len(oids), declared)
	}
	t := &ConstantTable{
		oids:  make([]Oid, 0, len(oids)),
		index: make(map[Oid]int, len(oids)),
		slots: make([]Ref, len(oids)),
	}
	for i, s := range oids {
		oid, err := ParseOid(s)
		if err != nil {
			return nil, fmt.Errorf("constant table entry %d: %w", i, err)
		}
		if _, dup := t.index[oid]; dup {
			return nil, fmt.Errorf("constant table entry %d: duplicate oid %s", i, oid)
		}
		t.index[oid] = i
		t.oids = append(t.oids, oid)
	}
	return t, nil
}

// Install binds every slot to its object in sp, creating missing objects.
// Installing twice is an error.
func (t *ConstantTable) Install(sp *ObjectSpace) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.installed {
		return fmt.Errorf("constant table already installed")
	}
	for i, oid := range t.oids {
		t.slots[i] = sp.Intern(oid)
	}
	t.installed = true
	log.Debugf("installed %d constant objects", len(t.oids))
	return nil
}

// Len returns the number of constants.
func (t *ConstantTable) Len() int {
	return len(t.oids)
}

// Oids returns the constant oids in table order.
func (t *ConstantTable) Oids() []Oid {
	out := make([]Oid, len(t.oids))
	copy(out, t.oids)
	return out
}

// Get returns the constant with the given oid, or the empty Ref if the oid
// is not a constant or the table is not installed.
func (t *ConstantTable) Get(oid Oid) Ref {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i, ok := t.index[oid]
	if !ok {
		return EmptyRef
	}
	return t.slots[i]
}

// MustGet is like Get but takes the oid text and panics if the constant is
// missing.
func (t *ConstantTable) MustGet(s string) Ref {
	r := t.Get(MustParseOid(s))
	if r.IsEmpty() {
		panic("vm: constant " + s + " is not installed")
	}
	return r
}
