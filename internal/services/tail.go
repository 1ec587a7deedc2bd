package services

import "strings"

// Tail retains the most recent lines of a subprocess's diagnostic output
// so failures can be reported without buffering unbounded logs.
type Tail struct {
	max   int
	lines []string
}

// NewTail returns a Tail keeping at most max lines.
func NewTail(max int) *Tail {
	if max <= 0 {
		max = 20
	}
	return &Tail{max: max}
}

// Add records one output line, discarding the oldest when full. Blank
// lines are ignored.
func (t *Tail) Add(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}
	if len(t.lines) == t.max {
		copy(t.lines, t.lines[1:])
		t.lines[len(t.lines)-1] = trimmed
		return
	}
	t.lines = append(t.lines, trimmed)
}

// String joins the retained lines.
func (t *Tail) String() string {
	return strings.Join(t.lines, "\n")
}
