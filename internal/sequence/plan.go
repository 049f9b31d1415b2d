package sequence

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	serr "renumber/internal/errors"
)

// SortMode decides the order in which a sequence's entries receive their
// new numbers.
type SortMode int

const (
	// SortLexical orders by the number string, so "10" comes before "9".
	// This is the historical behavior and stays the default.
	SortLexical SortMode = iota
	// SortNumeric orders by integer value. An empty number sorts first and
	// equal values ("7", "007") fall back to string order.
	SortNumeric
)

// String returns the config spelling of the mode
func (m SortMode) String() string {
	switch m {
	case SortNumeric:
		return "numeric"
	default:
		return "lexical"
	}
}

// ParseSortMode reads "lexical" or "numeric". The empty string means lexical.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lexical":
		return SortLexical, nil
	case "numeric":
		return SortNumeric, nil
	default:
		return SortLexical, serr.NewConfigError("unknown sort mode (want lexical or numeric)", s, serr.InvalidConfig, nil)
	}
}

// Rename is one planned file name change
type Rename struct {
	From   string
	To     string
	Number int
}

// Unchanged reports whether the file keeps its name
func (r Rename) Unchanged() bool {
	return r.From == r.To
}

// Plan maps every file of one sequence to its new name. Renames are in
// processing order.
type Plan struct {
	Key     Key
	Base    int
	Renames []Rename
}

// Targets returns the new names in processing order
func (p *Plan) Targets() []string {
	out := make([]string, len(p.Renames))
	for i, r := range p.Renames {
		out[i] = r.To
	}
	return out
}

// FormatNumber zero-pads n to at least padding digits. n is never negative
// here: Plan rejects a negative start and observed numbers are all digits.
func FormatNumber(n, padding int) string {
	return fmt.Sprintf("%0*d", padding, n)
}

func parseNumber(e FileEntry) (int, error) {
	n, err := strconv.Atoi(e.Number)
	if err != nil {
		return 0, serr.NewNameError("file number out of range", e.Name(), serr.MalformedName, err)
	}
	return n, nil
}

// Plan computes the renumbering of s. With startAt nil the sequence starts at
// its own lowest number; a sequence without any digits then has no start and
// fails with an AmbiguousStart error.
func (s *Sequence) Plan(startAt *int, padding int, mode SortMode) (*Plan, error) {
	if padding < 0 {
		return nil, serr.NewConfigError("padding must be >= 0", "padding", serr.InvalidConfig, nil)
	}

	values := make([]int, len(s.Entries))
	haveMin := false
	lowest := 0
	for i, e := range s.Entries {
		values[i] = -1
		if e.Number == "" {
			continue
		}
		n, err := parseNumber(e)
		if err != nil {
			return nil, err
		}
		values[i] = n
		if !haveMin || n < lowest {
			lowest, haveMin = n, true
		}
	}

	var base int
	switch {
	case startAt != nil:
		if *startAt < 0 {
			return nil, serr.NewConfigError("start_at must be >= 0", "start_at", serr.InvalidConfig, nil)
		}
		base = *startAt
	case haveMin:
		base = lowest
	default:
		return nil, serr.NewSequenceError("sequence has no numbered files and no start was given", s.Key.String(), serr.AmbiguousStart, nil)
	}
	if len(s.Entries) > 0 && base > math.MaxInt-(len(s.Entries)-1) {
		return nil, serr.NewSequenceError("renumbered range overflows", s.Key.String(), serr.InvalidConfig, nil)
	}

	order := make([]int, len(s.Entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ea, eb := s.Entries[order[a]], s.Entries[order[b]]
		if mode == SortNumeric {
			va, vb := values[order[a]], values[order[b]]
			if va != vb {
				return va < vb
			}
		}
		return ea.Number < eb.Number
	})

	p := &Plan{Key: s.Key, Base: base, Renames: make([]Rename, 0, len(order))}
	for i, idx := range order {
		e := s.Entries[idx]
		n := base + i
		target := FileEntry{Prefix: e.Prefix, Number: FormatNumber(n, padding), Extension: e.Extension}
		p.Renames = append(p.Renames, Rename{From: e.Name(), To: target.Name(), Number: n})
	}
	return p, nil
}
