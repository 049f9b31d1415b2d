package renumber

import (
	"os"
	"path/filepath"
	"testing"

	serr "renumber/internal/errors"
	"renumber/internal/log"
	"renumber/internal/sequence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameDir(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	link := filepath.Join(t.TempDir(), "link")
	require.NoError(t, os.Symlink(dir, link))

	assert.True(t, sameDir(dir, dir))
	assert.True(t, sameDir(dir, filepath.Join(dir, ".")))
	assert.True(t, sameDir(dir, link))
	assert.False(t, sameDir(dir, other))
	assert.False(t, sameDir(dir, filepath.Join(dir, "not-yet")))
}

func TestCopyFileRefusesSameFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a01.jpg")
	require.NoError(t, os.WriteFile(src, []byte("one"), 0644))
	link := filepath.Join(dir, "alias.jpg")
	require.NoError(t, os.Symlink(src, link))

	_, err := copyFile(src, link)
	require.Error(t, err)

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestCopyFileExclusive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dst := filepath.Join(dir, "dst.jpg")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0644))
	require.NoError(t, os.WriteFile(dst, []byte("keep"), 0644))

	_, err := copyFileExclusive(src, dst)
	require.Error(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestSwapInPlaceReportsStagingOnFailure(t *testing.T) {
	srcDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "a1.jpg"), []byte("a1"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "b01.jpg"), []byte("keep"), 0644))

	e, err := New(Options{Padding: 2, Namer: FixedNamer("stage")})
	require.NoError(t, err)

	// b01.jpg is not part of the plan, so copying back onto it must fail
	plans := []*sequence.Plan{{
		Key:     sequence.Key{Prefix: "a", Extension: "jpg"},
		Base:    1,
		Renames: []sequence.Rename{{From: "a1.jpg", To: "b01.jpg", Number: 1}},
	}}

	staging := filepath.Join(srcDir, "stage")
	_, err = e.swapInPlace(srcDir, plans, log.Default())
	require.Error(t, err)
	assert.True(t, serr.IsRelocationFailed(err))
	assert.Contains(t, err.Error(), staging)

	kept, err := os.ReadFile(filepath.Join(srcDir, "b01.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "keep", string(kept))

	staged, err := os.ReadFile(filepath.Join(staging, "b01.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "a1", string(staged))
}
