package sequence

import (
	"fmt"
	"sort"
)

// Key identifies a sequence
type Key struct {
	Prefix    string
	Extension string
}

// String renders the key with '#' standing in for the number, e.g. "weta#.jpg"
func (k Key) String() string {
	return fmt.Sprintf("%s#.%s", k.Prefix, k.Extension)
}

// Sequence holds every entry sharing one Key, in the order they were added
type Sequence struct {
	Key     Key
	Entries []FileEntry
}

// Numbers returns the original number strings of the sequence
func (s *Sequence) Numbers() []string {
	nums := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		nums[i] = e.Number
	}
	return nums
}

// Len returns the number of entries
func (s *Sequence) Len() int {
	return len(s.Entries)
}

// Group parses every name and buckets the entries by Key. The first
// malformed name aborts grouping.
func Group(names []string) (map[Key]*Sequence, error) {
	seqs := make(map[Key]*Sequence)
	for _, name := range names {
		entry, err := ParseEntry(name)
		if err != nil {
			return nil, err
		}
		key := entry.Key()
		seq, ok := seqs[key]
		if !ok {
			seq = &Sequence{Key: key}
			seqs[key] = seq
		}
		seq.Entries = append(seq.Entries, entry)
	}
	return seqs, nil
}

// SortedKeys returns the keys of seqs ordered by prefix, then extension
func SortedKeys(seqs map[Key]*Sequence) []Key {
	keys := make([]Key, 0, len(seqs))
	for k := range seqs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Prefix != keys[j].Prefix {
			return keys[i].Prefix < keys[j].Prefix
		}
		return keys[i].Extension < keys[j].Extension
	})
	return keys
}
