package signature

import (
	"regexp"
	"strings"
	"unicode"
)

// Signature names the parameters of a method, for rendering calls.
type Signature struct {
	Method string
	Params []string
}

var (
	reSignature = regexp.MustCompile(`(?s)^\s*([A-Za-z_][A-Za-z0-9_]*)\s*\(([^()]*)\)\s*$`)
	reIdent     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Parse recognizes "Method(a, b int)" and returns the method and parameter names.
// A context.Context parameter is dropped since it is never rendered.
func Parse(s string) (Signature, bool) {
	m := reSignature.FindStringSubmatch(s)
	if len(m) != 3 {
		return Signature{}, false
	}
	sig := Signature{Method: m[1], Params: []string{}}
	list := strings.TrimSpace(m[2])
	if list == "" {
		return sig, true
	}
	for _, part := range strings.Split(list, ",") {
		name, typ := splitParam(part)
		if !reIdent.MatchString(name) {
			return Signature{}, false
		}
		if typ == "context.Context" {
			continue
		}
		sig.Params = append(sig.Params, name)
	}
	return sig, true
}

// splitParam splits "name type" into its name and (possibly empty) type.
func splitParam(s string) (string, string) {
	s = strings.TrimSpace(s)
	for i, r := range s {
		if unicode.IsSpace(r) {
			return s[:i], strings.TrimSpace(s[i:])
		}
	}
	return s, ""
}
