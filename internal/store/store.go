// Package store persists a todo list to a single local file.
//
// Two formats are supported and picked by extension: the line format
// ("[x] - Buy milk", one item per line) and a JSON array for *.json paths.
// No locking; fine for a local single-user CLI. Two concurrent runs are
// last-writer-wins.
package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todotxt/internal/model"
)

// FreshListNotice is printed when the file cannot be opened and an empty
// list is used instead.
const FreshListNotice = "Couldn't read the todo file, creating a new todolist."

type Store interface {
	Load() (*model.List, error)
	Save(l *model.List) error
	Path() string
}

// Options tune load behavior.
type Options struct {
	// SkipMalformed drops bad records with a warning instead of failing the load.
	SkipMalformed bool
	Logger        *log.Logger
	// Notice receives FreshListNotice. Nil discards it.
	Notice io.Writer
}

// Open returns the store matching the file extension of path.
func Open(path string, opts Options) Store {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return &JSONStore{path: path, opts: opts}
	}
	return &TextStore{path: path, opts: opts}
}

// openOrFresh opens path for reading. Any failure, not only a missing file,
// means "first run": the notice is printed and ok is false.
func openOrFresh(path string, opts Options) (f *os.File, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		opts.Logger.Debug("todo file unreadable, starting empty", "path", path, "err", err)
		if opts.Notice != nil {
			fmt.Fprintln(opts.Notice, FreshListNotice)
		}
		return nil, false
	}
	return f, true
}

func writeFile(path string, b []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
