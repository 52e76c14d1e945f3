package vm

import (
	"bytes"
	"errors"
	"testing"
)

func TestEffectiveClassIdempotent(t *testing.T) {
	class := testClass(t, "c", NewObject().Ref())
	inst, err := MakeInstance(class, []Value{Int(1)}, nil)
	if err != nil {
		t.Fatalf("MakeInstance: %v", err)
	}
	first := inst.EffectiveClass()
	second := inst.EffectiveClass()
	if first != second || first != class {
		t.Errorf("EffectiveClass() = %s then %s, want %s", first, second, class)
	}
}

func TestEffectiveClassPanicsWhenClassLosesPayload(t *testing.T) {
	cls := NewClass("c", EmptyRef)
	inst, err := MakeInstance(cls.Ref(), nil, nil)
	if err != nil {
		t.Fatalf("MakeInstance: %v", err)
	}
	cls.SetPayload(nil)

	mustPanic(t, func() { inst.EffectiveClass() })
	if got := inst.EffectiveAttributes(); got != nil {
		t.Errorf("EffectiveAttributes() = %v, want nil", got)
	}
}

func TestEffectiveAttributes(t *testing.T) {
	x := NewObject().Ref()
	y := NewObject().Ref()
	class := testClass(t, "c", x, y)
	inst, _ := MakeInstance(class, nil, map[Ref]Value{x: String("x")})

	attrs := inst.EffectiveAttributes()
	if attrs != ClassAttrSet(class) {
		t.Error("EffectiveAttributes() differs from ClassAttrSet(class)")
	}
	if attrs.Cardinal() != 2 {
		t.Errorf("Cardinal() = %d, want 2", attrs.Cardinal())
	}
}

func TestInstanceAttribute(t *testing.T) {
	x := NewObject().Ref()
	y := NewObject().Ref()
	class := testClass(t, "c", x, y)
	inst, _ := MakeInstance(class, nil, map[Ref]Value{y: Int(7)})

	if v, ok := inst.Attribute(y); !ok || v != Int(7) {
		t.Errorf("Attribute(y) = %v, %v; want 7, true", v, ok)
	}
	if _, ok := inst.Attribute(x); ok {
		t.Error("Attribute(x) found an unset attribute")
	}
	if _, ok := inst.Attribute(EmptyRef); ok {
		t.Error("Attribute(empty) = true")
	}

	var seen []Ref
	inst.ForEachAttribute(func(attr Ref, value Value) {
		seen = append(seen, attr)
	})
	if len(seen) != 1 || seen[0] != y {
		t.Errorf("ForEachAttribute visited %v, want [%s]", seen, y)
	}
}

func TestInstanceIsValue(t *testing.T) {
	class := testClass(t, "c")
	inner, _ := MakeInstance(class, []Value{Int(1)}, nil)
	outer, err := MakeInstance(class, []Value{inner}, nil)
	if err != nil {
		t.Fatalf("MakeInstance: %v", err)
	}
	if TypeOf(outer.Component(0)) != TypeInstance {
		t.Errorf("TypeOf(component) = %s, want instance", TypeOf(outer.Component(0)))
	}
}

func TestInstanceSlotOutOfRange(t *testing.T) {
	inst, _ := MakeInstance(testClass(t, "c"), []Value{Int(1)}, nil)
	mustPanic(t, func() { inst.Slot(1) })
	mustPanic(t, func() { inst.Slot(-1) })
	mustPanic(t, func() { inst.Component(1) })
}

func TestRenderIsNotImplemented(t *testing.T) {
	inst, _ := MakeInstance(testClass(t, "c"), []Value{Int(1)}, nil)
	var buf bytes.Buffer
	err := inst.Render(&buf, 2)
	if !errors.Is(err, ErrRenderNotImplemented) {
		t.Errorf("Render() = %v, want ErrRenderNotImplemented", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Render wrote %q, want nothing", buf.String())
	}
}

func TestIsEmpty(t *testing.T) {
	var nilInst *Instance
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"nil", nil, true},
		{"empty ref", EmptyRef, true},
		{"nil instance", nilInst, true},
		{"ref", NewObject().Ref(), false},
		{"zero int", Int(0), false},
		{"empty string", String(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEmpty(tt.v); got != tt.want {
				t.Errorf("IsEmpty(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}
