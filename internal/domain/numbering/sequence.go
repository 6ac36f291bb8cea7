// Package numbering derives the human readable identifiers handed out for
// parties and quotations: sequential codes, unique titles and revision numbers.
package numbering

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sequence describes an identifier made of a fixed prefix and a zero padded
// numeric suffix, such as P001 or QT2610-004.
type Sequence struct {
	Prefix string
	Width  int
	Floor  int64
}

var (
	// PartyCodes yields P001, P002, ...
	PartyCodes = Sequence{Prefix: "P", Width: 3, Floor: 1}

	// AutoIncrement yields bare numbers starting at 1000
	AutoIncrement = Sequence{Floor: 1000}
)

// QuotationNumbers returns the per year-month sequence for quotation
// numbers created at t, e.g. QT2610-001.
func QuotationNumbers(t time.Time) Sequence {
	return Sequence{Prefix: "QT" + t.Format("0601") + "-", Width: 3, Floor: 1}
}

// Name identifies the sequence when it is backed by a stored counter
func (s Sequence) Name() string {
	if s.Prefix == "" {
		return "seq"
	}
	return "seq:" + s.Prefix
}

// Format renders n with the sequence prefix and padding
func (s Sequence) Format(n int64) string {
	return s.Prefix + fmt.Sprintf("%0*d", s.Width, n)
}

// Parse extracts the numeric suffix of id. ok is false when id does not
// belong to the sequence.
func (s Sequence) Parse(id string) (n int64, ok bool) {
	rest, found := strings.CutPrefix(id, s.Prefix)
	if !found || rest == "" {
		return 0, false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Next returns the identifier following latest. An empty or unparsable
// latest restarts the sequence at its floor.
func (s Sequence) Next(latest string) string {
	n, ok := s.Parse(latest)
	if !ok {
		return s.Format(s.Floor)
	}
	return s.Format(n + 1)
}

// Last returns the highest suffix among ids, or Floor-1 when none of them
// belong to the sequence. Incrementing the result always yields a value at
// or above the floor.
func (s Sequence) Last(ids []string) int64 {
	last := s.Floor - 1
	for _, id := range ids {
		if n, ok := s.Parse(id); ok && n > last {
			last = n
		}
	}
	return last
}
