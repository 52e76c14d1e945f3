package vm

import (
	"errors"
	"strings"
	"testing"
)

func TestBootDefaults(t *testing.T) {
	rt, err := Boot(DefaultBootOptions())
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if rt.Constants.Len() != DefaultConstantCount {
		t.Errorf("constants = %d, want %d", rt.Constants.Len(), DefaultConstantCount)
	}
	cls := rt.ImmutableInstanceClass()
	if cls.IsEmpty() || !cls.Object().IsClass() {
		t.Fatal("immutable_instance class missing")
	}

	inst, err := rt.Build(cls, []Value{Int(1), Int(2)}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if inst.NbComponents() != 2 || inst.NbAttributes() != 0 {
		t.Errorf("layout = %d attrs / %d comps", inst.NbAttributes(), inst.NbComponents())
	}
	if rt.Allocator.Count() != 1 {
		t.Errorf("allocations = %d, want 1", rt.Allocator.Count())
	}
}

func TestBootClasses(t *testing.T) {
	opts := DefaultBootOptions()
	opts.MaxInstanceSize = 16
	opts.Classes = []ClassSpec{{
		Oid:        "_2fFrq6Cb2oY00n3Xqe",
		Name:       "point",
		Superclass: ImmutableInstanceClassOid,
		Attributes: []string{"_0aaaaaaaaaa0000aaa", "_0bbbbbbbbbb0000bbb"},
	}}
	rt, err := Boot(opts)
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}
	point, _ := rt.Space.ResolveString("_2fFrq6Cb2oY00n3Xqe")
	ci := point.Object().ClassInfo()
	if ci == nil || ci.Name() != "point" {
		t.Fatalf("point class = %v", ci)
	}
	if ci.Superclass() != rt.ImmutableInstanceClass() {
		t.Errorf("Superclass() = %s", ci.Superclass())
	}
	x, _ := rt.Space.ResolveString("_0aaaaaaaaaa0000aaa")
	inst, err := rt.Build(point, nil, map[Ref]Value{x: Double(1)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if v, ok := inst.Attribute(x); !ok || v != Double(1) {
		t.Errorf("Attribute(x) = %v, %v", v, ok)
	}
	if rt.Builder.MaxSize() != 16 {
		t.Errorf("MaxSize() = %d, want 16", rt.Builder.MaxSize())
	}

	_, err = rt.Build(point, nil, map[Ref]Value{rt.ImmutableInstanceClass(): Int(1)})
	if !errors.Is(err, ErrUnknownAttribute) {
		t.Errorf("err = %v, want ErrUnknownAttribute", err)
	}
}

func TestBootFailsFast(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BootOptions)
		want   string
	}{
		{"count mismatch", func(o *BootOptions) { o.ConstantCount = 5 }, "declared"},
		{"bad class oid", func(o *BootOptions) {
			o.Classes = []ClassSpec{{Oid: "x", Name: "bad"}}
		}, `class "bad"`},
		{"bad attribute oid", func(o *BootOptions) {
			o.Classes = []ClassSpec{{Oid: "_2fFrq6Cb2oY00n3Xqe", Name: "c", Attributes: []string{"y"}}}
		}, "attribute"},
		{"duplicate class oid", func(o *BootOptions) {
			o.Classes = []ClassSpec{
				{Oid: "_2fFrq6Cb2oY00n3Xqe", Name: "first"},
				{Oid: "_2fFrq6Cb2oY00n3Xqe", Name: "second"},
			}
		}, "duplicate class oid"},
		{"redefines immutable_instance", func(o *BootOptions) {
			o.Classes = []ClassSpec{{Oid: ImmutableInstanceClassOid, Name: "shadow"}}
		}, "duplicate class oid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultBootOptions()
			tt.mutate(&opts)
			_, err := Boot(opts)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Boot err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
