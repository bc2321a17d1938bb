package insightful

// kind classifies an observed interaction.
type kind int

const (
	kindRead kind = iota
	kindWrite
	kindDelete
	kindCall
	kindFailure
)

// counts tallies printed events for the optional summary line.
type counts struct {
	reads     int
	writes    int
	deletions int
	calls     int
	failures  int
}

func (c *counts) add(k kind) {
	switch k {
	case kindRead:
		c.reads++
	case kindWrite:
		c.writes++
	case kindDelete:
		c.deletions++
	case kindCall:
		c.calls++
	case kindFailure:
		c.failures++
	}
}
