package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todotxt/internal/model"
	"github.com/idilsaglam/todotxt/internal/tui"
)

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todo - a flat-file to-do list

Usage:
  todo [flags] <command> [args]

Commands:
  get                      Print the todo list with indexes
  ls [--group]             Show the list in a panel with progress
  add "Some text"          Add a new unchecked item
  delete <index>           Delete the item at <index>
  check <index>            Check the item at <index>
  uncheck <index>          Uncheck the item at <index>
  edit <index> "Some text" Change the text of the item at <index>
  tui                      Edit the list interactively
  help                     Print this message

Flags:
  -f, --file <path>        todo file (default ~/todo.txt, env TODO_FILE)
      --config <path>      config file (default <config dir>/todo/config.yaml)
      --theme <name>       classic, neon or mono
      --log-level <level>  debug, info, warn or error
      --skip-malformed     skip lines without " - " instead of failing

Indexes start at 0 and shift down after a delete.

Examples:
  todo add "Buy milk"
  todo get
  todo check 0
  todo delete 1
  todo add -- "-x buy"     Use -- before text that starts with a dash
`)
}

func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Print usage",
		Args:  cobra.ArbitraryArgs,
		// help works even with a broken config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			PrintHelp(cmd.OutOrStdout())
		},
	}
}

// usageArgs turns a cobra argument check failure into a usage error.
func usageArgs(check cobra.PositionalArgs, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageErrorf("usage: %s", usage)
		}
		return nil
	}
}

func parseIndex(cmd, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, usageErrorf("%s: not a number: %s", cmd, s)
	}
	return n, nil
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print all items with their indexes",
		Args:  usageArgs(cobra.NoArgs, "todo get"),
		RunE: func(*cobra.Command, []string) error {
			l, err := a.load()
			if err != nil {
				return err
			}
			_, err = l.WriteTo(a.out)
			return err
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Show the list in a panel with progress",
		Args:    usageArgs(cobra.NoArgs, "todo ls [--group]"),
		RunE: func(*cobra.Command, []string) error {
			l, err := a.load()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, a.panel(l, a.cfg.Group))
			return nil
		},
	}
	cmd.Flags().Bool("group", false, "group output by pending/done")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new unchecked item",
		Args:  usageArgs(cobra.MinimumNArgs(1), "todo add <text...>"),
		RunE: func(_ *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return a.mutate("added", func(l *model.List) error {
				return l.Add(text, false)
			})
		},
	}
}

// newIndexCmd builds delete/check/uncheck, which share the shape "<cmd> <index>".
func newIndexCmd(a *app, name, short, done string, op func(*model.List, int) error) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <index>",
		Short: short,
		Args:  usageArgs(cobra.ExactArgs(1), "todo "+name+" <index>"),
		RunE: func(_ *cobra.Command, args []string) error {
			i, err := parseIndex(name, args[0])
			if err != nil {
				return err
			}
			return a.mutate(done, func(l *model.List) error {
				return op(l, i)
			})
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index> <text...>",
		Short: "Change the text of the item at <index>",
		Args:  usageArgs(cobra.MinimumNArgs(2), "todo edit <index> <text...>"),
		RunE: func(_ *cobra.Command, args []string) error {
			i, err := parseIndex("edit", args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			return a.mutate("edited", func(l *model.List) error {
				return l.Edit(i, text)
			})
		},
	}
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Edit the list interactively",
		Args:  usageArgs(cobra.NoArgs, "todo tui"),
		RunE: func(*cobra.Command, []string) error {
			l, err := a.load()
			if err != nil {
				return err
			}
			changed, err := tui.Run(l, a.theme)
			if err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			if !changed {
				return nil
			}
			if err := a.store.Save(l); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			a.theme.OK(a.out, "saved")
			return nil
		},
	}
}

func (a *app) load() (*model.List, error) {
	l, err := a.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return l, nil
}

// mutate loads the list, applies fn and persists the result. The file is
// left untouched when fn fails.
func (a *app) mutate(done string, fn func(l *model.List) error) error {
	l, err := a.load()
	if err != nil {
		return err
	}
	if err := fn(l); err != nil {
		return err
	}
	if err := a.store.Save(l); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	a.logger.Debug("list updated", "action", done, "items", l.Len())
	a.theme.OK(a.out, done)
	return nil
}
