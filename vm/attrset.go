package vm

import (
	"slices"
	"strings"
)

// AttrSet is an immutable, duplicate-free set of object references kept in
// oid order. It is the attribute schema of a class: the position of an
// attribute in the set is the index of its slot pair in every instance of
// that class.
type AttrSet struct {
	elems []Ref
}

// NewAttrSet builds a set from refs, sorting them by oid and dropping
// duplicates. Panics if any ref is empty.
func NewAttrSet(refs ...Ref) *AttrSet {
	elems := make([]Ref, 0, len(refs))
	for _, r := range refs {
		if r.IsEmpty() {
			panic("vm: NewAttrSet: empty reference")
		}
		elems = append(elems, r)
	}
	slices.SortStableFunc(elems, Ref.Compare)
	// Drop repeats of the same object. Distinct objects that share an oid
	// sort together and are all kept.
	out := elems[:0]
	run := 0
	for _, r := range elems {
		if len(out) > 0 && out[len(out)-1].Oid() != r.Oid() {
			run = len(out)
		}
		if !slices.Contains(out[run:], r) {
			out = append(out, r)
		}
	}
	return &AttrSet{elems: slices.Clip(out)}
}

// Cardinal returns the number of elements.
func (s *AttrSet) Cardinal() int {
	if s == nil {
		return 0
	}
	return len(s.elems)
}

// Contains reports whether r is an element of the set.
func (s *AttrSet) Contains(r Ref) bool {
	return s.ElementIndex(r) >= 0
}

// ElementIndex returns the position of r in the set.
// Returns -1 if r is empty or not an element.
func (s *AttrSet) ElementIndex(r Ref) int {
	if s == nil || r.IsEmpty() {
		return -1
	}
	i, _ := slices.BinarySearchFunc(s.elems, r, Ref.Compare)
	// Distinct objects sharing an oid compare equal; match on identity.
	for ; i < len(s.elems) && s.elems[i].Oid() == r.Oid(); i++ {
		if s.elems[i] == r {
			return i
		}
	}
	return -1
}

// At returns the element at index i.
// Panics if i is out of range.
func (s *AttrSet) At(i int) Ref {
	if s == nil || i < 0 || i >= len(s.elems) {
		panic("vm: AttrSet.At: index out of range")
	}
	return s.elems[i]
}

// Elements returns a copy of the elements in set order.
func (s *AttrSet) Elements() []Ref {
	if s == nil {
		return nil
	}
	return slices.Clone(s.elems)
}

// ForEach calls fn for each element in set order.
func (s *AttrSet) ForEach(fn func(index int, r Ref)) {
	if s == nil {
		return
	}
	for i, r := range s.elems {
		fn(i, r)
	}
}

func (s *AttrSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	s.ForEach(func(i int, r Ref) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(r.String())
	})
	sb.WriteByte('}')
	return sb.String()
}
