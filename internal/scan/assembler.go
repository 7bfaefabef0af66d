package scan

import (
	"bufio"
	"io"
	"strings"
)

// Assembler reads physical lines and joins them into logical lines. A line
// whose trailing run of backslashes has odd length continues on the next
// physical line; the continuation marker is stripped and a single space
// marks the join point. An even run (including none) ends the logical line.
type Assembler struct {
	s            *bufio.Scanner
	continuation bool
	line         int // physical line number of the last line read
}

// NewAssembler returns an Assembler reading from r.
func NewAssembler(r io.Reader, continuation bool) *Assembler {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Assembler{s: s, continuation: continuation}
}

// Next returns the next non-empty logical line and the physical line number
// it started on. ok is false at end of input.
func (a *Assembler) Next() (text string, line int, ok bool) {
	for {
		logical, start, any := a.assemble()
		if !any {
			return "", 0, false
		}
		if strings.TrimSpace(logical) == "" {
			continue
		}
		return logical, start, true
	}
}

// Err returns the first I/O error encountered, if any.
func (a *Assembler) Err() error {
	return a.s.Err()
}

func (a *Assembler) assemble() (string, int, bool) {
	if !a.s.Scan() {
		return "", 0, false
	}
	a.line++
	start := a.line
	raw := a.s.Text()

	if !a.continuation {
		return raw, start, true
	}

	var b strings.Builder
	for {
		n := trailingBackslashes(raw)
		if n%2 == 0 {
			b.WriteString(raw)
			return b.String(), start, true
		}
		b.WriteString(raw[:len(raw)-1])
		b.WriteByte(' ')
		if !a.s.Scan() {
			// Dangling continuation at EOF: emit what was gathered.
			return b.String(), start, true
		}
		a.line++
		raw = a.s.Text()
	}
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}
