package testutils

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// ImageSequence is the mixed directory used throughout the tests: two
// prodeng sequences (jpg and png) and one weta sequence.
var ImageSequence = []string{
	"prodeng11.jpg", "prodeng11.png", "prodeng27.jpg", "prodeng32.jpg",
	"prodeng32.png", "prodeng33.png", "prodeng47.png", "prodeng55.jpg",
	"prodeng55.png", "prodeng56.jpg", "prodeng68.jpg", "prodeng72.png",
	"prodeng94.png", "weta17.jpg", "weta22.jpg", "weta37.jpg",
	"weta55.jpg", "weta96.jpg",
}

// CreateTestFilesWithContent creates test files with specific content
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		require.NoError(t, err)
	}
}

// CreateSequenceFiles creates one file per name whose content is the name
// itself, so tests can tell which original ended up where.
func CreateSequenceFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	files := make(map[string]string, len(names))
	for _, name := range names {
		files[name] = name
	}
	CreateTestFilesWithContent(t, dir, files)
}

// ListFiles returns the sorted names of the regular files in dir
func ListFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// ListDirs returns the sorted names of the directories in dir
func ListDirs(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// ReadContents maps every regular file in dir to its content
func ReadContents(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	for _, name := range ListFiles(t, dir) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		out[name] = string(data)
	}
	return out
}

// Sorted returns a sorted copy of names
func Sorted(names ...string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	var result []rune
	inEscape := false
	for _, r := range str {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
