package insightful

import (
	"errors"
	"reflect"
	"testing"
)

type named struct{ Name string }

func (n named) String() string { return "Named(" + n.Name + ")" }

type pointerNamed struct{ Name string }

func (n *pointerNamed) String() string { return "PointerNamed(" + n.Name + ")" }

func TestResolveTarget(t *testing.T) {
	t.Parallel()

	f := &fixture{}
	proxy := MustObserve(f)

	tcs := []struct {
		name         string
		in           any
		wantType     reflect.Type
		wantInstance bool
		wantErr      error
	}{
		{name: "struct type", in: reflect.TypeFor[fixture](), wantType: reflect.TypeFor[fixture]()},
		{name: "pointer type", in: reflect.TypeFor[*fixture](), wantType: reflect.TypeFor[fixture]()},
		{name: "pointer instance", in: f, wantType: reflect.TypeFor[fixture](), wantInstance: true},
		{name: "struct value", in: fixture{}, wantType: reflect.TypeFor[fixture]()},
		{name: "proxy", in: proxy, wantType: reflect.TypeFor[fixture](), wantInstance: true},
		{name: "nil", in: nil, wantErr: ErrTarget},
		{name: "nil pointer", in: (*fixture)(nil), wantErr: ErrTarget},
		{name: "nil proxy", in: (*Proxy)(nil), wantErr: ErrTarget},
		{name: "non struct type", in: reflect.TypeFor[string](), wantErr: ErrTarget},
		{name: "non struct pointer", in: new(int), wantErr: ErrTarget},
		{name: "scalar", in: 3, wantErr: ErrTarget},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			typ, inst, err := resolveTarget(tc.in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("resolveTarget(%#v) error = %v, want %v", tc.in, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveTarget(%#v) unexpected error: %v", tc.in, err)
			}
			if typ != tc.wantType {
				t.Fatalf("resolveTarget(%#v) type = %v, want %v", tc.in, typ, tc.wantType)
			}
			if inst.IsValid() != tc.wantInstance {
				t.Fatalf("resolveTarget(%#v) instance valid = %t, want %t", tc.in, inst.IsValid(), tc.wantInstance)
			}
			if tc.wantInstance && inst.Pointer() != reflect.ValueOf(f).Pointer() {
				t.Fatalf("resolveTarget(%#v) resolved a different instance", tc.in)
			}
		})
	}
}

func TestReprOf(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		in   any
		want string
	}{
		{name: "value stringer", in: &named{Name: "a"}, want: "Named(a)"},
		{name: "pointer stringer", in: &pointerNamed{Name: "b"}, want: "PointerNamed(b)"},
		{name: "fields", in: &fixture{N: 1, S: "x"}, want: "fixture{N:1 S:x}"},
		{name: "anonymous", in: &struct{ A int }{A: 2}, want: "struct { A int }{A:2}"},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := reprOf(reflect.ValueOf(tc.in)); got != tc.want {
				t.Fatalf("reprOf(%#v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
