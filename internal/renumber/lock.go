package renumber

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	serr "renumber/internal/errors"
)

// dirLock guards a source directory against a second concurrent run.
// The lock file lives in the OS temp dir so it never shows up as a
// sequence member.
type dirLock struct {
	flock *flock.Flock
	path  string
}

func lockPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum([]byte(abs))
	return filepath.Join(os.TempDir(), "renumber-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// lockDirectory takes the lock without blocking. A lock held elsewhere is
// reported as a DirectoryLocked error.
func lockDirectory(dir string) (*dirLock, error) {
	path, err := lockPath(dir)
	if err != nil {
		return nil, serr.NewFileError("failed to resolve source directory", dir, serr.DirectoryNotFound, err)
	}
	fl := flock.New(path)
	acquired, err := fl.TryLock()
	if err != nil {
		return nil, serr.NewFileError("failed to lock source directory", dir, serr.DirectoryLocked, err)
	}
	if !acquired {
		return nil, serr.NewFileError("source directory is being renumbered by another process", dir, serr.DirectoryLocked, nil)
	}
	return &dirLock{flock: fl, path: path}, nil
}

func (l *dirLock) unlock() error {
	return l.flock.Unlock()
}
