package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/practice/internal/config"
	"github.com/Makepad-fr/practice/internal/logger"
	"github.com/Makepad-fr/practice/internal/store/jsonstore"
	"github.com/Makepad-fr/practice/internal/ui"
)

const version = "0.1.0"

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	dataFile   string
	logLevel   string
	noColor    bool
}

// app is the state subcommands share once the root has loaded config.
type app struct {
	opts   rootOptions
	cfg    *config.Config
	store  *jsonstore.Store
	logger *logger.Logger
}

// usageError marks mistakes in how the command was invoked (exit code 2).
type usageError struct{ error }

func usagef(format string, args ...interface{}) error {
	return usageError{fmt.Errorf(format, args...)}
}

// Execute runs the CLI and returns an exit code (0 ok, 1 error, 2 usage).
func Execute(args []string, stdout, stderr io.Writer) int {
	root, a := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if a.logger != nil {
		if err != nil {
			zl := a.logger.Zerolog()
			zl.Debug().Err(err).Msg("command failed")
		}
		a.logger.Close()
	}
	if err == nil {
		return 0
	}

	ui.Fail(stderr, err.Error())
	code := exitCode(err)
	if code == 2 {
		fmt.Fprintln(stderr, ui.Dim("Hint: run `practice --help` for usage"))
	}
	return code
}

func exitCode(err error) int {
	var ue usageError
	switch {
	case errors.As(err, &ue),
		strings.HasPrefix(err.Error(), "unknown command"),
		errors.Is(err, jsonstore.ErrInvalidDate),
		errors.Is(err, jsonstore.ErrInvalidDuration),
		errors.Is(err, jsonstore.ErrMissingField),
		errors.Is(err, jsonstore.ErrNotFound),
		errors.Is(err, jsonstore.ErrAmbiguousID):
		return 2
	}
	return 1
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:   "practice",
		Short: "practice - a personal practice-session log",
		Long: `practice records what you practiced, on which instrument, and for how long.
Sessions live in a single JSON file; list, summarize, edit and export them
from the command line or browse them with "practice tui".`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.opts.configPath, "config", "", "config file (default is $HOME/.practice/config.yaml)")
	pf.StringVar(&a.opts.dataFile, "data", "", "session store file (overrides data_file)")
	pf.StringVar(&a.opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.BoolVar(&a.opts.noColor, "no-color", false, "disable colored output")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })
	root.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newTotalCmd(a),
		newWeekCmd(a),
		newShowCmd(a),
		newEditCmd(a),
		newRmCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newTUICmd(a),
	)
	return root, a
}

// setup loads config, then builds the logger and the store.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewLoader(a.opts.configPath).Load()
	if err != nil {
		return err
	}
	if a.opts.dataFile != "" {
		cfg.DataFile = a.opts.dataFile
	}
	if a.opts.logLevel != "" {
		cfg.Logging.Level = a.opts.logLevel
		if err := cfg.Validate(); err != nil {
			return usageError{err}
		}
	}

	ui.SetColorForcing(false, a.opts.noColor)
	ui.SetTheme(cfg.Theme)

	lg, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		File:   cfg.Logging.File,
		Pretty: cfg.Logging.Pretty,
		Out:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	opts := []jsonstore.Option{
		jsonstore.WithLogger(lg.Zerolog().With().Str("component", "store").Logger()),
	}
	if cfg.ExportFile != "" {
		opts = append(opts, jsonstore.WithExportPath(cfg.ExportFile))
	}

	a.cfg = cfg
	a.logger = lg
	a.store = jsonstore.New(cfg.DataFile, opts...)
	zl := lg.Zerolog()
	zl.Debug().Str("command", cmd.Name()).Str("data_file", cfg.DataFile).Msg("store ready")
	return nil
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: practice %s", usage)
		}
		return nil
	}
}

func rangeArgs(lo, hi int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < lo || len(args) > hi {
			return usagef("usage: practice %s", usage)
		}
		return nil
	}
}
