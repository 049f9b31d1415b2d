package renumber

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultDirPrefix starts the name of every generated destination directory
const DefaultDirPrefix = "renumbered"

// DirNamer names the directory created inside the source directory when no
// destination is given, and the staging directory used by in-place runs.
type DirNamer interface {
	DirName() string
}

// DirNamerFunc adapts a plain function to DirNamer
type DirNamerFunc func() string

// DirName calls f
func (f DirNamerFunc) DirName() string {
	return f()
}

// UUIDNamer produces "<prefix>_<8 hex chars>" from a random UUID
type UUIDNamer struct {
	Prefix string
}

// DirName returns a fresh random directory name
func (n UUIDNamer) DirName() string {
	prefix := n.Prefix
	if prefix == "" {
		prefix = DefaultDirPrefix
	}
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + hex[:8]
}

// FixedNamer always returns the same name. Tests use it to know where
// results land.
type FixedNamer string

// DirName returns n
func (n FixedNamer) DirName() string {
	return string(n)
}
