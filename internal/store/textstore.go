package store

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/idilsaglam/todotxt/internal/model"
)

// ParseError points at a record that cannot be loaded: no " - " separator,
// or text that does not fit on one line. It always matches
// model.ErrMalformedRecord; Err holds the underlying cause.
type ParseError struct {
	Path   string
	Line   int
	Record string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %q", e.Path, e.Line, model.ErrMalformedRecord, e.Record)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil || errors.Is(e.Err, model.ErrMalformedRecord) {
		return []error{model.ErrMalformedRecord}
	}
	return []error{model.ErrMalformedRecord, e.Err}
}

// TextStore reads and writes the line format.
type TextStore struct {
	path string
	opts Options
}

func (s *TextStore) Path() string { return s.path }

func (s *TextStore) Load() (*model.List, error) {
	f, ok := openOrFresh(s.path, s.opts)
	if !ok {
		return model.NewList(), nil
	}
	defer f.Close()

	l := model.NewList()
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		if line == "" {
			continue
		}
		it, err := model.ParseItem(line)
		if err == nil {
			err = l.Add(it.Text, it.Checked)
		}
		if err != nil {
			perr := &ParseError{Path: s.path, Line: n, Record: line, Err: err}
			if !s.opts.SkipMalformed {
				return nil, perr
			}
			s.opts.Logger.Warn("skipping malformed record", "path", s.path, "line", n, "err", err)
			continue
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	s.opts.Logger.Debug("loaded todo file", "path", s.path, "items", l.Len())
	return l, nil
}

func (s *TextStore) Save(l *model.List) error {
	var b strings.Builder
	for _, it := range l.Items() {
		b.WriteString(it.Render())
		b.WriteByte('\n')
	}
	if err := writeFile(s.path, []byte(b.String())); err != nil {
		return err
	}
	s.opts.Logger.Debug("saved todo file", "path", s.path, "items", l.Len())
	return nil
}
