package render_test

import (
	"errors"
	"testing"

	"github.com/mickamy/insightful/internal/render"
)

type named struct{ name string }

func (n named) String() string { return "Named(" + n.name + ")" }

func TestValue(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		in   any
		want string
	}{
		{name: "int", in: 0, want: "0"},
		{name: "string", in: "a", want: `"a"`},
		{name: "empty string", in: "", want: `""`},
		{name: "nil", in: nil, want: "<nil>"},
		{name: "stringer", in: named{name: "x"}, want: "Named(x)"},
		{name: "error", in: errors.New("Oh No!"), want: "Oh No!"},
		{name: "slice", in: []int{1, 2}, want: "[1 2]"},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := render.Value(tc.in); got != tc.want {
				t.Fatalf("Value(%#v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCall(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name   string
		recv   string
		method string
		params []string
		args   []any
		want   string
	}{
		{name: "no args", recv: "Test()", method: "Test", want: "Test().Test(self=Test())"},
		{name: "named param", recv: "Test()", method: "Whoops", params: []string{"arg"}, args: []any{0}, want: "Test().Whoops(self=Test(), arg=0)"},
		{name: "unnamed params", recv: "Test(a)", method: "Add", args: []any{1, "x"}, want: `Test(a).Add(self=Test(a), arg0=1, arg1="x")`},
		{name: "partially named", recv: "T", method: "M", params: []string{"first"}, args: []any{1, 2}, want: "T.M(self=T, first=1, arg1=2)"},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := render.Call(tc.recv, tc.method, tc.params, tc.args)
			if got != tc.want {
				t.Fatalf("Call(%q, %q, %#v, %#v) = %q, want %q", tc.recv, tc.method, tc.params, tc.args, got, tc.want)
			}
		})
	}
}

func TestResults(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		in   []any
		want string
	}{
		{name: "none", in: nil, want: "()"},
		{name: "single", in: []any{1}, want: "1"},
		{name: "several", in: []any{1, "two"}, want: `(1, "two")`},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := render.Results(tc.in); got != tc.want {
				t.Fatalf("Results(%#v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestLines(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		got  string
		want string
	}{
		{name: "read", got: render.Read("Test()", "Value", 0), want: "Test().Value -> 0"},
		{name: "write", got: render.Write("Test()", "Value", 1), want: "Test().Value = 1"},
		{name: "delete", got: render.Delete("Test()", "Useless"), want: "del Test().Useless"},
		{name: "returned", got: render.Returned("Test().Test(self=Test())", []any{1}), want: "Test().Test(self=Test()) -> 1"},
		{name: "failure", got: render.Failure(errors.New("Oh No!")), want: "*errors.errorString: Oh No!"},
		{name: "panic value", got: render.Failure("boom"), want: "string: boom"},
		{name: "during", got: render.During("Test().Property"), want: "  during: Test().Property"},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if tc.got != tc.want {
				t.Fatalf("got %q, want %q", tc.got, tc.want)
			}
		})
	}
}
