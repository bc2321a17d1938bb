package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Value renders a value the way it appears in log lines.
// Strings are quoted so that empty and whitespace values stay visible.
func Value(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}

// Attr renders an attribute reference on a receiver, e.g. Test().Value.
func Attr(recv, name string) string {
	return recv + "." + name
}

// Read renders an attribute read and the value it produced.
func Read(recv, name string, v any) string {
	return Attr(recv, name) + " -> " + Value(v)
}

// Write renders an attribute assignment.
func Write(recv, name string, v any) string {
	return Attr(recv, name) + " = " + Value(v)
}

// Delete renders an attribute deletion.
func Delete(recv, name string) string {
	return "del " + Attr(recv, name)
}

// Call renders a method invocation with the receiver bound to self.
func Call(recv, method string, params []string, args []any) string {
	var b strings.Builder
	b.WriteString(Attr(recv, method))
	b.WriteString("(self=")
	b.WriteString(recv)
	for i, a := range args {
		b.WriteString(", ")
		b.WriteString(ParamName(params, i))
		b.WriteByte('=')
		b.WriteString(Value(a))
	}
	b.WriteByte(')')
	return b.String()
}

// ParamName returns the name of the i-th parameter, falling back to argN.
func ParamName(params []string, i int) string {
	if i < len(params) && params[i] != "" {
		return params[i]
	}
	return "arg" + strconv.Itoa(i)
}

// Results renders the results of a call.
func Results(out []any) string {
	switch len(out) {
	case 0:
		return "()"
	case 1:
		return Value(out[0])
	}
	parts := make([]string, len(out))
	for i, v := range out {
		parts[i] = Value(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Returned renders a completed call and its results.
func Returned(call string, out []any) string {
	return call + " -> " + Results(out)
}

// Failure renders a failed call as "Type: message".
func Failure(f any) string {
	return fmt.Sprintf("%T: %s", f, fmt.Sprint(f))
}

// During renders one frame of a failure trace.
func During(desc string) string {
	return "  during: " + desc
}
