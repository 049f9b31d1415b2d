package sequence

import (
	"strings"

	serr "renumber/internal/errors"
)

// FileEntry is one file name split into its parts.
// Prefix + Number is the stem and Number holds only digits, or is empty.
type FileEntry struct {
	Prefix    string
	Number    string
	Extension string
}

// Name rebuilds the on-disk file name
func (f FileEntry) Name() string {
	return f.Prefix + f.Number + "." + f.Extension
}

// Stem returns the name without its extension
func (f FileEntry) Stem() string {
	return f.Prefix + f.Number
}

// Key returns the sequence the entry belongs to
func (f FileEntry) Key() Key {
	return Key{Prefix: f.Prefix, Extension: f.Extension}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// SplitNameNumber splits stem into the longest all-digit suffix and
// everything before it. A stem ending in a non-digit has an empty number;
// an all-digit stem has an empty prefix. An empty stem is malformed.
func SplitNameNumber(stem string) (prefix, number string, err error) {
	if stem == "" {
		return "", "", serr.NewNameError("empty file stem", stem, serr.MalformedName, nil)
	}
	i := len(stem)
	for i > 0 && isDigit(stem[i-1]) {
		i--
	}
	return stem[:i], stem[i:], nil
}

// SplitExtension splits name on its last '.'. A name without a '.' has no
// extension and is malformed.
func SplitExtension(name string) (stem, ext string, err error) {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return "", "", serr.NewNameError("file name has no extension", name, serr.MalformedName, nil)
	}
	return name[:dot], name[dot+1:], nil
}

// ParseEntry splits a file name into prefix, number and extension
func ParseEntry(name string) (FileEntry, error) {
	stem, ext, err := SplitExtension(name)
	if err != nil {
		return FileEntry{}, err
	}
	prefix, number, err := SplitNameNumber(stem)
	if err != nil {
		return FileEntry{}, serr.NewNameError("file name has an empty stem", name, serr.MalformedName, err)
	}
	return FileEntry{Prefix: prefix, Number: number, Extension: ext}, nil
}
