package vm

import (
	"testing"
)

// testObject returns an object whose oid sorts at position n.
func testObject(n uint64) *Object {
	return NewObjectWithOid(Oid{Hi: oidMinHi + n, Lo: oidMinLo})
}

// testClass creates a class whose attribute set is attrs.
func testClass(t *testing.T, name string, attrs ...Ref) Ref {
	t.Helper()
	c := NewClass(name, EmptyRef, attrs...)
	return c.Ref()
}

// mustPanic runs fn and returns the recovered panic value, failing the
// test if fn returns normally.
func mustPanic(t *testing.T, fn func()) (v any) {
	t.Helper()
	defer func() {
		v = recover()
		if v == nil {
			t.Fatal("expected panic")
		}
	}()
	fn()
	return nil
}
