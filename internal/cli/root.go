// Package cli wires the todo command tree.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todotxt/internal/config"
	"github.com/idilsaglam/todotxt/internal/logging"
	"github.com/idilsaglam/todotxt/internal/model"
	"github.com/idilsaglam/todotxt/internal/store"
	"github.com/idilsaglam/todotxt/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// app carries per-invocation state shared by all subcommands.
type app struct {
	out, errOut io.Writer
	cfgFile     string

	cfg    *config.Config
	theme  ui.Theme
	logger *log.Logger
	store  store.Store
}

// usageError marks a bad invocation (exit 2).
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, stdout, stderr io.Writer) int {
	a := &app{
		out:    stdout,
		errOut: stderr,
		theme:  ui.ThemeByName(""),
		logger: logging.New(stderr, logging.DefaultLevel),
	}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		return a.report(err)
	}
	return ExitOK
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "todo",
		Short:             "A flat-file to-do list",
		Args:              cobra.ArbitraryArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(a.out, "You need to pass some arguments.")
				fmt.Fprintln(a.out, "Use `todo help` to get a list of arguments")
				return nil
			}
			// Unknown commands are a silent no-op.
			a.logger.Debug("ignoring unknown command", "command", args[0])
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default <config dir>/todo/config.yaml)")
	flags.StringP("file", "f", "", "todo file (default ~/todo.txt)")
	flags.String("theme", "classic", "output theme: classic, neon or mono")
	flags.String("log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")
	flags.Bool("skip-malformed", false, "skip records without a separator instead of failing")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrorf("%v", err)
	})
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		PrintHelp(cmd.OutOrStdout())
	})
	root.SetHelpCommand(newHelpCmd())

	root.AddCommand(
		newGetCmd(a),
		newListCmd(a),
		newAddCmd(a),
		newIndexCmd(a, "delete", "Delete the item at <index>", "removed", (*model.List).Delete),
		newIndexCmd(a, "check", "Check the item at <index>", "checked", (*model.List).Check),
		newIndexCmd(a, "uncheck", "Uncheck the item at <index>", "unchecked", (*model.List).Uncheck),
		newEditCmd(a),
		newTUICmd(a),
	)
	return root
}

// setup resolves config after flag parsing and opens the store.
func (a *app) setup(cmd *cobra.Command) error {
	v, err := config.NewViper(a.cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	bindings := []struct{ key, flag string }{
		{config.KeyFile, "file"},
		{config.KeyTheme, "theme"},
		{config.KeyLogLevel, "log-level"},
		{config.KeyGroup, "group"},
	}
	for _, b := range bindings {
		f := flags.Lookup(b.flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(b.key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", b.flag, err)
		}
	}
	if skip, _ := flags.GetBool("skip-malformed"); skip {
		v.Set(config.KeyOnMalformed, config.PolicySkip)
	}

	cfg := config.New(v)
	if err := cfg.Validate(); err != nil {
		return usageErrorf("config: %v", err)
	}
	a.cfg = cfg
	a.theme = ui.ThemeByName(cfg.Theme)
	a.logger = logging.New(a.errOut, cfg.LogLevel)
	a.store = store.Open(cfg.File, store.Options{
		SkipMalformed: cfg.SkipMalformed(),
		Logger:        a.logger,
		Notice:        a.out,
	})
	a.logger.Debug("config resolved", "file", cfg.File, "theme", cfg.Theme, "on_malformed", cfg.OnMalformed)
	return nil
}

// report prints err and maps it to an exit code.
func (a *app) report(err error) int {
	var ue *usageError
	switch {
	case errors.As(err, &ue):
		a.theme.Fail(a.errOut, ue.Error())
		return ExitUsage
	case errors.Is(err, model.ErrIndexOutOfRange):
		a.theme.Fail(a.errOut, err.Error())
		a.theme.Hint(a.errOut, "run `todo get` to see valid indexes")
		return ExitUsage
	// Stored records are data errors even when the cause is invalid text.
	case errors.Is(err, model.ErrMalformedRecord):
		a.theme.Fail(a.errOut, err.Error())
		a.theme.Hint(a.errOut, "fix the line or rerun with --skip-malformed")
		return ExitError
	case errors.Is(err, model.ErrInvalidText):
		a.theme.Fail(a.errOut, err.Error())
		return ExitUsage
	default:
		a.theme.Fail(a.errOut, err.Error())
		return ExitError
	}
}
