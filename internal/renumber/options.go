package renumber

import (
	"renumber/internal/sequence"
)

// DefaultPadding is the minimum digit width of new numbers
const DefaultPadding = 2

// Options controls a renumbering run
type Options struct {
	// Destination receives the renumbered copies. Empty means a fresh
	// directory named by Namer inside the source. Ignored when InPlace.
	Destination string
	// InPlace moves the results back into the source directory
	InPlace bool
	// StartAt fixes the first number of every sequence. Nil starts each
	// sequence at its own lowest number.
	StartAt *int
	// Padding is the minimum zero-filled width of new numbers
	Padding int
	// Sort decides which file receives which number
	Sort sequence.SortMode
	// Match restricts the run to files whose names match one of these
	// glob patterns. Empty means every regular file.
	Match []string
	// DryRun computes the plan without touching the filesystem
	DryRun bool
	// Lock takes an exclusive lock on the source directory for the run
	Lock bool
	// Namer names generated destination and staging directories
	Namer DirNamer
}

// DefaultOptions returns copy mode into a generated directory, padding 2,
// lexical order and locking enabled.
func DefaultOptions() Options {
	return Options{
		Padding: DefaultPadding,
		Sort:    sequence.SortLexical,
		Lock:    true,
		Namer:   UUIDNamer{},
	}
}
