package insightful

import (
	"fmt"
	"strings"

	"github.com/jinzhu/inflection"
)

// summarize renders the tally printed on exit, e.g. "Test: 1 call, 2 reads".
func summarize(name string, c counts) string {
	var parts []string
	add := func(n int, noun string) {
		if n == 0 {
			return
		}
		if n != 1 {
			noun = inflection.Plural(noun)
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, noun))
	}
	add(c.calls, "call")
	add(c.reads, "read")
	add(c.writes, "write")
	add(c.deletions, "deletion")
	add(c.failures, "failure")
	if len(parts) == 0 {
		return name + ": no interactions"
	}
	return name + ": " + strings.Join(parts, ", ")
}
