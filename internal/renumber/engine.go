// Package renumber renames the numbered files of a directory so that every
// sequence becomes a contiguous run of integers.
//
// Renamed files are always copied first, never renamed in place, because a
// new name can equal the old name of a file that has not been processed
// yet. In-place runs stage every result in a scratch directory and copy
// them back once all originals are gone.
//
// A failure part way through leaves the directories as they are at that
// point. There is no rollback.
package renumber

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	serr "renumber/internal/errors"
	"renumber/internal/log"
	"renumber/internal/sequence"
	"renumber/pkg/types"
)

// Result describes a finished (or planned) run
type Result struct {
	// Dir holds the renumbered files: the source directory for in-place
	// runs, the destination otherwise.
	Dir     string
	Renames []types.RenameResult
	// Bytes counts data copied into Dir's final files
	Bytes  int64
	DryRun bool
}

// Engine renumbers directories according to its Options
type Engine struct {
	opts     Options
	matchers []glob.Glob
}

// New validates opts and builds an Engine
func New(opts Options) (*Engine, error) {
	if opts.Padding < 0 {
		return nil, serr.NewConfigError("padding must be >= 0", "padding", serr.InvalidConfig, nil)
	}
	if opts.StartAt != nil && *opts.StartAt < 0 {
		return nil, serr.NewConfigError("start_at must be >= 0", "start_at", serr.InvalidConfig, nil)
	}
	if opts.Namer == nil {
		opts.Namer = UUIDNamer{}
	}

	e := &Engine{opts: opts}
	for _, pattern := range opts.Match {
		if pattern == "" {
			return nil, serr.NewConfigError("empty match pattern", "match", serr.InvalidConfig, nil)
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, serr.NewConfigError("invalid match pattern", pattern, serr.InvalidConfig, err)
		}
		e.matchers = append(e.matchers, g)
	}
	return e, nil
}

// Options returns the options the engine runs with
func (e *Engine) Options() Options {
	return e.opts
}

// Renumber is the one-shot form of New(opts).Renumber(srcDir). It returns
// the directory holding the renumbered files.
func Renumber(srcDir string, opts Options) (string, error) {
	e, err := New(opts)
	if err != nil {
		return "", err
	}
	res, err := e.Renumber(srcDir)
	if err != nil {
		return "", err
	}
	return res.Dir, nil
}

// Renumber plans every sequence found directly inside srcDir and then
// relocates the files. Every plan is computed before the first file is
// touched, so naming problems never leave a half-done directory.
func (e *Engine) Renumber(srcDir string) (*Result, error) {
	logger := log.LogWithFields(log.F("source", srcDir))

	info, err := os.Stat(srcDir)
	if err != nil {
		return nil, serr.NewFileError("source directory not found", srcDir, serr.DirectoryNotFound, err)
	}
	if !info.IsDir() {
		return nil, serr.NewFileError("source is not a directory", srcDir, serr.DirectoryNotFound, nil)
	}

	if e.opts.Lock && !e.opts.DryRun {
		lock, err := lockDirectory(srcDir)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.unlock(); err != nil {
				logger.Warnf("failed to release lock %s: %v", lock.path, err)
			}
		}()
	}

	names, bystanders, err := e.listFiles(srcDir)
	if err != nil {
		return nil, err
	}

	plans, err := e.plan(names)
	if err != nil {
		return nil, err
	}
	if e.opts.InPlace {
		if err := checkTargets(plans, bystanders); err != nil {
			return nil, err
		}
	}

	var res *Result
	switch {
	case e.opts.InPlace:
		res, err = e.swapInPlace(srcDir, plans, logger)
	default:
		res, err = e.copyOut(srcDir, plans, logger)
	}
	if err != nil {
		return nil, err
	}

	if res.DryRun {
		logger.Infof("planned %d files in %d sequences", len(res.Renames), len(plans))
	} else {
		logger.With(log.F("dir", res.Dir)).Infof("renumbered %d files in %d sequences", len(res.Renames), len(plans))
	}
	return res, nil
}

// listFiles returns the names of the regular files directly inside dir that
// pass the match filter. Symlinks count when they point at a regular file.
// Every other entry (subdirectories, filtered-out files, dangling links) is
// returned as a bystander: it stays where it is and must not be overwritten.
func (e *Engine) listFiles(dir string) (names []string, bystanders map[string]bool, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, serr.NewFileError("failed to read source directory", dir, serr.DirectoryNotFound, err)
	}

	bystanders = make(map[string]bool)
	for _, entry := range entries {
		mode := entry.Type()
		if mode&os.ModeSymlink != 0 {
			fi, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil {
				bystanders[entry.Name()] = true
				continue
			}
			mode = fi.Mode().Type()
		}
		if !mode.IsRegular() {
			bystanders[entry.Name()] = true
			continue
		}
		if !e.matches(entry.Name()) {
			log.Debugf("skipping %s: no match pattern applies", entry.Name())
			bystanders[entry.Name()] = true
			continue
		}
		names = append(names, entry.Name())
	}
	return names, bystanders, nil
}

// checkTargets fails when an in-place rename would land on an entry that
// takes no part in the run.
func checkTargets(plans []*sequence.Plan, bystanders map[string]bool) error {
	for _, p := range plans {
		for _, r := range p.Renames {
			if bystanders[r.To] {
				return serr.NewFileError(
					fmt.Sprintf("%s would overwrite a file outside the renumbered set", r.From),
					r.To, serr.InvalidConfig, nil)
			}
		}
	}
	return nil
}

func (e *Engine) matches(name string) bool {
	if len(e.matchers) == 0 {
		return true
	}
	for _, g := range e.matchers {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// plan groups names into sequences and plans each of them, in key order.
func (e *Engine) plan(names []string) ([]*sequence.Plan, error) {
	seqs, err := sequence.Group(names)
	if err != nil {
		return nil, err
	}

	plans := make([]*sequence.Plan, 0, len(seqs))
	for _, key := range sequence.SortedKeys(seqs) {
		seq := seqs[key]
		p, err := seq.Plan(e.opts.StartAt, e.opts.Padding, e.opts.Sort)
		if err != nil {
			return nil, err
		}
		log.LogWithFields(
			log.F("sequence", key.String()),
			log.F("files", seq.Len()),
			log.F("base", p.Base),
		).Debug("planned sequence")
		plans = append(plans, p)
	}
	return plans, nil
}
