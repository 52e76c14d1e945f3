package vm

import (
	"math"
	"testing"
)

func TestDigestStableAcrossBuilds(t *testing.T) {
	x := NewObject().Ref()
	y := NewObject().Ref()
	class := testClass(t, "c", x, y)

	build := func(comp Value) *Instance {
		inst, err := MakeInstance(class, []Value{comp, Double(1.5)}, map[Ref]Value{x: String("x"), y: y})
		if err != nil {
			t.Fatalf("MakeInstance: %v", err)
		}
		return inst
	}

	d1, err := build(Int(1)).Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	d2, _ := build(Int(1)).Digest()
	d3, _ := build(Int(2)).Digest()

	if d1 != d2 {
		t.Error("identical layouts have different digests")
	}
	if d1 == d3 {
		t.Error("different components have the same digest")
	}
}

func TestDigestDistinguishesAbsentPairs(t *testing.T) {
	x := NewObject().Ref()
	y := NewObject().Ref()
	class := testClass(t, "c", x, y)

	withX, _ := MakeInstance(class, nil, map[Ref]Value{x: Int(1)})
	withY, _ := MakeInstance(class, nil, map[Ref]Value{y: Int(1)})
	dx, _ := withX.Digest()
	dy, _ := withY.Digest()
	if dx == dy {
		t.Error("instances with different attributes set share a digest")
	}
}

func TestDigestNested(t *testing.T) {
	class := testClass(t, "c")
	a, _ := MakeInstance(class, []Value{Int(1)}, nil)
	b, _ := MakeInstance(class, []Value{Int(2)}, nil)
	outerA, _ := MakeInstance(class, []Value{a}, nil)
	outerB, _ := MakeInstance(class, []Value{b}, nil)

	da, err := outerA.Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	db, _ := outerB.Digest()
	if da == db {
		t.Error("nested instances with different content share a digest")
	}
}

func TestDigestDistinguishesSignedZero(t *testing.T) {
	class := testClass(t, "c")
	pos, _ := MakeInstance(class, []Value{Double(0)}, nil)
	neg, _ := MakeInstance(class, []Value{Double(math.Copysign(0, -1))}, nil)
	dp, err := pos.Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	dn, _ := neg.Digest()
	if dp == dn {
		t.Error("0 and -0 share a digest")
	}
}

type opaqueValue struct{}

func (opaqueValue) Type() Type { return Type(99) }

func TestDigestRejectsUnknownValue(t *testing.T) {
	inst, _ := MakeInstance(testClass(t, "c"), []Value{opaqueValue{}}, nil)
	if _, err := inst.Digest(); err == nil {
		t.Error("Digest of unsupported value succeeded")
	}
}
