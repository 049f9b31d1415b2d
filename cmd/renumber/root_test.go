package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"renumber/internal/config"
	serr "renumber/internal/errors"
	"renumber/internal/log"
	"renumber/internal/renumber"
	"renumber/internal/sequence"
	"renumber/pkg/testutils"
	"renumber/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenumberer records the options it was built with
type fakeRenumberer struct {
	opts renumber.Options
	src  string
}

func (f *fakeRenumberer) Renumber(srcDir string) (*renumber.Result, error) {
	f.src = srcDir
	return &renumber.Result{
		Dir: filepath.Join(srcDir, "out"),
		Renames: []types.RenameResult{
			{Sequence: "a#.jpg", SourcePath: filepath.Join(srcDir, "a7.jpg"), DestinationPath: filepath.Join(srcDir, "out", "a05.jpg"), Number: 5, Applied: true},
		},
		Bytes: 2048,
	}, nil
}

func useFake(t *testing.T) *fakeRenumberer {
	t.Helper()
	fake := &fakeRenumberer{}
	renumber.SetRenumbererFactory(func(opts renumber.Options) (renumber.Renumberer, error) {
		fake.opts = opts
		return fake, nil
	})
	t.Cleanup(renumber.ResetRenumbererFactory)
	return fake
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := log.Default()
	t.Cleanup(func() {
		log.SetDefault(prev)
		log.SetDebug(false)
	})

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return testutils.StripANSI(out.String()), err
}

func noConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.yaml")
}

func TestRootInPlace(t *testing.T) {
	srcDir := t.TempDir()
	testutils.CreateSequenceFiles(t, srcDir, "weta17.jpg", "weta22.jpg", "weta37.jpg")

	out, err := execute(t, "--config", noConfig(t), "--in-place", "--padding", "3", "--no-lock", srcDir)
	require.NoError(t, err)

	assert.Equal(t, []string{"weta017.jpg", "weta018.jpg", "weta019.jpg"}, testutils.ListFiles(t, srcDir))
	assert.Contains(t, out, "weta#.jpg")
	assert.Contains(t, out, "weta22.jpg -> weta018.jpg")
	assert.Contains(t, out, "Renumbered 3 files")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, srcDir, lines[len(lines)-1])
}

func TestPlanCommandChangesNothing(t *testing.T) {
	srcDir := t.TempDir()
	testutils.CreateSequenceFiles(t, srcDir, "prodeng11.jpg", "prodeng27.jpg", "prodeng32.jpg")

	out, err := execute(t, "plan", "--config", noConfig(t), "--in-place", srcDir)
	require.NoError(t, err)

	assert.Contains(t, out, "prodeng27.jpg -> prodeng12.jpg")
	assert.Contains(t, out, "prodeng32.jpg -> prodeng13.jpg")
	assert.NotContains(t, out, "prodeng11.jpg ->")
	assert.Contains(t, out, "Dry run: 3 files (1 unchanged)")
	assert.Equal(t, []string{"prodeng11.jpg", "prodeng27.jpg", "prodeng32.jpg"}, testutils.ListFiles(t, srcDir))
	assert.Empty(t, testutils.ListDirs(t, srcDir))
}

func TestFlagsOverrideConfig(t *testing.T) {
	fake := useFake(t)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("renumber:\n  padding: 4\n  sort: numeric\n  match: [\"*.png\"]\n"), 0644))

	out, err := execute(t, "--config", cfgPath, "--start-at", "5", "--match", "*.jpg", "--match", "*.tif", "--no-lock", "--dest", "/tmp/out", "src")
	require.NoError(t, err)

	assert.Equal(t, "src", fake.src)
	assert.Equal(t, 4, fake.opts.Padding, "config value kept when flag not set")
	assert.Equal(t, sequence.SortNumeric, fake.opts.Sort)
	require.NotNil(t, fake.opts.StartAt)
	assert.Equal(t, 5, *fake.opts.StartAt)
	assert.Equal(t, []string{"*.jpg", "*.tif"}, fake.opts.Match)
	assert.False(t, fake.opts.Lock)
	assert.Equal(t, "/tmp/out", fake.opts.Destination)
	assert.False(t, fake.opts.DryRun)

	assert.Contains(t, out, "a7.jpg -> a05.jpg")
	assert.Contains(t, out, "2.0 kB")
}

func TestDefaultsWithoutFlags(t *testing.T) {
	fake := useFake(t)

	_, err := execute(t, "--config", noConfig(t), "src")
	require.NoError(t, err)

	assert.Equal(t, 2, fake.opts.Padding)
	assert.Nil(t, fake.opts.StartAt)
	assert.False(t, fake.opts.InPlace)
	assert.Equal(t, sequence.SortLexical, fake.opts.Sort)
	assert.True(t, fake.opts.Lock)
}

func TestPlanForcesDryRun(t *testing.T) {
	fake := useFake(t)

	_, err := execute(t, "plan", "--config", noConfig(t), "src")
	require.NoError(t, err)
	assert.True(t, fake.opts.DryRun)
}

func TestCommandErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := execute(t, "--config", noConfig(t), filepath.Join(t.TempDir(), "gone"))
		require.Error(t, err)
		assert.True(t, serr.IsDirectoryNotFound(err))
	})

	t.Run("unknown sort mode", func(t *testing.T) {
		_, err := execute(t, "--config", noConfig(t), "--sort", "natural", t.TempDir())
		require.Error(t, err)
		assert.True(t, serr.IsInvalidConfig(err))
	})

	t.Run("negative start", func(t *testing.T) {
		_, err := execute(t, "--config", noConfig(t), "--start-at", "-1", t.TempDir())
		require.Error(t, err)
		assert.True(t, serr.IsInvalidConfig(err))
	})

	t.Run("missing argument", func(t *testing.T) {
		_, err := execute(t, "--config", noConfig(t))
		assert.Error(t, err)
	})
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renumber", "config.yaml")

	out, err := execute(t, "init-config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, renumber.DefaultPadding, cfg.Renumber.Padding)
	assert.Equal(t, sequence.SortLexical.String(), cfg.Renumber.Sort)
	assert.True(t, cfg.Settings.Lock)

	_, err = execute(t, "init-config", "--config", path)
	require.Error(t, err)
	assert.True(t, serr.IsInvalidConfig(err))

	_, err = execute(t, "init-config", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestRunWithSavedTestConfig(t *testing.T) {
	srcDir := t.TempDir()
	testutils.CreateSequenceFiles(t, srcDir, "s2.tif", "s8.tif")

	cfg := config.NewTestConfig()
	cfg.Renumber.InPlace = true
	cfg.Renumber.Padding = 4
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.SaveConfig(cfg, cfgPath))

	_, err := execute(t, "--config", cfgPath, srcDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"s0002.tif", "s0003.tif"}, testutils.ListFiles(t, srcDir))
}

func TestUnreadableConfig(t *testing.T) {
	_, err := execute(t, "--config", t.TempDir(), "src")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading config")
}
