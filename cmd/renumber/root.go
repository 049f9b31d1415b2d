package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"renumber/internal/config"
	serr "renumber/internal/errors"
	"renumber/internal/log"
	"renumber/internal/renumber"
	"renumber/internal/sequence"
)

// runFlags holds every command line flag shared by the root and plan commands
type runFlags struct {
	configFile  string
	destination string
	inPlace     bool
	startAt     int
	padding     int
	sort        string
	match       []string
	dryRun      bool
	noLock      bool
	verbose     bool
	jsonLogs    bool
}

func newRootCmd() *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "renumber [flags] <source-dir>",
		Short: "Renumber image sequences into contiguous runs",
		Long: `Renumber renames the numbered files of a directory so that every
sequence (files sharing a name prefix and extension) becomes a contiguous
run of numbers, e.g. shot11.jpg shot27.jpg shot32.jpg -> shot11.jpg
shot12.jpg shot13.jpg.

By default the renamed copies go to a new renumbered_XXXXXXXX directory
inside the source and the originals are left alone.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRenumber(cmd, f, args[0], false)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configFile, "config", "", "config file (default is $HOME/.config/renumber/config.yaml)")
	pf.StringVarP(&f.destination, "dest", "d", "", "Directory receiving the renumbered files (ignored with --in-place)")
	pf.BoolVarP(&f.inPlace, "in-place", "i", false, "Rename the files inside the source directory")
	pf.IntVarP(&f.startAt, "start-at", "s", 0, "First number of every sequence (default: lowest number found)")
	pf.IntVarP(&f.padding, "padding", "p", renumber.DefaultPadding, "Minimum number of digits, zero filled")
	pf.StringVar(&f.sort, "sort", sequence.SortLexical.String(), "Order of files within a sequence: lexical or numeric")
	pf.StringArrayVarP(&f.match, "match", "m", nil, "Only renumber files matching this glob (repeatable)")
	pf.BoolVarP(&f.dryRun, "dry-run", "n", false, "Show what would be done without touching any file")
	pf.BoolVar(&f.noLock, "no-lock", false, "Do not lock the source directory")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&f.jsonLogs, "json-logs", false, "Write log lines as JSON")

	cmd.AddCommand(newPlanCmd(f))
	cmd.AddCommand(newInitConfigCmd(f))
	return cmd
}

// newPlanCmd prints the renumbering without applying it
func newPlanCmd(f *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:           "plan [flags] <source-dir>",
		Short:         "Show how a directory would be renumbered",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRenumber(cmd, f, args[0], true)
		},
	}
}

// newInitConfigCmd writes the default configuration so it can be edited
func newInitConfigCmd(f *runFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:           "init-config",
		Short:         "Write a default config file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := f.configFile
			if path == "" {
				var err error
				path, err = config.DefaultPath()
				if err != nil {
					return serr.Wrap(err, "error locating config file")
				}
			}
			if _, err := os.Stat(path); err == nil && !force {
				return serr.NewConfigError("config file already exists (use --force to overwrite)", path, serr.InvalidConfig, nil)
			}
			if err := config.SaveConfig(config.New(), path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Wrote default config to"))
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

// loadConfig reads --config if given, otherwise the default location.
func loadConfig(f *runFlags) (*config.Config, error) {
	if f.configFile != "" {
		return config.LoadConfigFile(f.configFile)
	}
	return config.LoadConfig()
}

// buildOptions layers explicitly set flags over the config file.
func buildOptions(cmd *cobra.Command, f *runFlags, cfg *config.Config) (renumber.Options, error) {
	flags := cmd.Flags()
	if flags.Changed("dest") {
		cfg.Renumber.Destination = f.destination
	}
	if flags.Changed("in-place") {
		cfg.Renumber.InPlace = f.inPlace
	}
	if flags.Changed("start-at") {
		start := f.startAt
		cfg.Renumber.StartAt = &start
	}
	if flags.Changed("padding") {
		cfg.Renumber.Padding = f.padding
	}
	if flags.Changed("sort") {
		cfg.Renumber.Sort = f.sort
	}
	if flags.Changed("match") {
		cfg.Renumber.Match = f.match
	}
	if flags.Changed("dry-run") {
		cfg.Settings.DryRun = f.dryRun
	}
	if flags.Changed("no-lock") {
		cfg.Settings.Lock = !f.noLock
	}
	if flags.Changed("verbose") {
		cfg.Logging.Debug = f.verbose
	}
	if flags.Changed("json-logs") {
		cfg.Logging.JSON = f.jsonLogs
	}
	return cfg.Options()
}

func setupLogging(cmd *cobra.Command, cfg *config.Config) {
	opts := []log.Option{log.WithOutput(cmd.ErrOrStderr())}
	if cfg.Logging.JSON {
		opts = append(opts, log.WithJSON())
	}
	log.SetDefault(log.NewLogger(opts...))
	log.SetDebug(cfg.Logging.Debug)
}

func runRenumber(cmd *cobra.Command, f *runFlags, srcDir string, planOnly bool) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return serr.Wrap(err, "error loading config")
	}

	opts, err := buildOptions(cmd, f, cfg)
	if err != nil {
		return err
	}
	setupLogging(cmd, cfg)
	if planOnly {
		opts.DryRun = true
	}

	r, err := renumber.CurrentRenumbererFactory(opts)
	if err != nil {
		return err
	}

	res, err := r.Renumber(srcDir)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), res)
	return nil
}
