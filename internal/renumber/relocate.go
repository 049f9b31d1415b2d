package renumber

import (
	"fmt"
	"os"
	"path/filepath"

	serr "renumber/internal/errors"
	"renumber/internal/log"
	"renumber/internal/sequence"
	"renumber/pkg/types"
)

func buildResults(plans []*sequence.Plan, srcDir, dstDir string, applied bool) []types.RenameResult {
	var out []types.RenameResult
	for _, p := range plans {
		for _, r := range p.Renames {
			out = append(out, types.RenameResult{
				Sequence:        p.Key.String(),
				SourcePath:      filepath.Join(srcDir, r.From),
				DestinationPath: filepath.Join(dstDir, r.To),
				Number:          r.Number,
				Unchanged:       r.Unchanged(),
				Applied:         applied,
			})
		}
	}
	return out
}

// sameDir reports whether a and b name the same directory, following
// symlinks. A path that does not exist yet is only equal to itself.
func sameDir(a, b string) bool {
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	if errA == nil && errB == nil {
		return os.SameFile(infoA, infoB)
	}
	if realA, err := filepath.EvalSymlinks(a); err == nil {
		a = realA
	}
	if realB, err := filepath.EvalSymlinks(b); err == nil {
		b = realB
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// copyOut copies every file to its new name in the destination directory.
// The source directory is left untouched.
func (e *Engine) copyOut(srcDir string, plans []*sequence.Plan, logger *log.Logger) (*Result, error) {
	dstDir := e.opts.Destination
	generated := dstDir == ""
	if generated {
		dstDir = filepath.Join(srcDir, e.opts.Namer.DirName())
	} else if sameDir(srcDir, dstDir) {
		return nil, serr.NewConfigError("destination must differ from the source; use in-place mode instead", dstDir, serr.InvalidConfig, nil)
	}

	if e.opts.DryRun {
		return &Result{Dir: dstDir, Renames: buildResults(plans, srcDir, dstDir, false), DryRun: true}, nil
	}

	var err error
	if generated {
		err = os.Mkdir(dstDir, 0755)
	} else {
		err = os.MkdirAll(dstDir, 0755)
	}
	if err != nil {
		return nil, serr.NewFileError("failed to create destination directory", dstDir, serr.RelocationFailed, err)
	}

	res := &Result{Dir: dstDir, Renames: buildResults(plans, srcDir, dstDir, true)}
	for _, p := range plans {
		for _, r := range p.Renames {
			src := filepath.Join(srcDir, r.From)
			dst := filepath.Join(dstDir, r.To)
			n, err := copyFile(src, dst)
			if err != nil {
				return nil, serr.NewFileError("failed to copy file", src, serr.RelocationFailed, err)
			}
			res.Bytes += n
			logger.Debugf("copied %s -> %s", r.From, dst)
		}
	}
	return res, nil
}

// swapInPlace stages every renamed file in a scratch directory inside the
// source, deleting each original as soon as its copy exists. Only after all
// sequences are staged are the files copied back under their new names.
// Copying back earlier could overwrite an original that still awaits its
// own turn, e.g. "a05" becoming "a06" while "a06" is unprocessed.
func (e *Engine) swapInPlace(srcDir string, plans []*sequence.Plan, logger *log.Logger) (*Result, error) {
	if e.opts.Destination != "" {
		logger.Debugf("in-place run ignores destination %s", e.opts.Destination)
	}

	if e.opts.DryRun {
		return &Result{Dir: srcDir, Renames: buildResults(plans, srcDir, srcDir, false), DryRun: true}, nil
	}

	staging := filepath.Join(srcDir, e.opts.Namer.DirName())
	if err := os.Mkdir(staging, 0755); err != nil {
		return nil, serr.NewFileError("failed to create staging directory", staging, serr.RelocationFailed, err)
	}
	logger.Debugf("staging in %s", staging)

	for _, p := range plans {
		for _, r := range p.Renames {
			src := filepath.Join(srcDir, r.From)
			if _, err := copyFileExclusive(src, filepath.Join(staging, r.To)); err != nil {
				return nil, stagingError("failed to stage file", src, staging, err)
			}
			if err := os.Remove(src); err != nil {
				return nil, stagingError("failed to remove original file", src, staging, err)
			}
		}
	}

	res := &Result{Dir: srcDir, Renames: buildResults(plans, srcDir, srcDir, true)}
	for _, p := range plans {
		for _, r := range p.Renames {
			staged := filepath.Join(staging, r.To)
			// originals are gone by now, so an existing target is never ours
			n, err := copyFileExclusive(staged, filepath.Join(srcDir, r.To))
			if err != nil {
				return nil, stagingError("failed to copy staged file back", staged, staging, err)
			}
			if err := os.Remove(staged); err != nil {
				return nil, stagingError("failed to remove staged file", staged, staging, err)
			}
			res.Bytes += n
			logger.Debugf("renamed %s -> %s", r.From, r.To)
		}
	}

	if err := os.Remove(staging); err != nil {
		return nil, stagingError("failed to remove staging directory", staging, staging, err)
	}
	logger.Debugf("removed staging directory %s", staging)
	return res, nil
}

// stagingError names the staging directory so files already moved out of
// the source can be recovered by hand.
func stagingError(msg, path, staging string, err error) error {
	return serr.NewFileError(fmt.Sprintf("%s (staged files are kept in %s)", msg, staging), path, serr.RelocationFailed, err)
}
