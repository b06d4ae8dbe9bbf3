package store

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/idilsaglam/todotxt/internal/model"
)

// JSONStore keeps the list as an indented JSON array. Human-readable,
// portable, and immune to separators inside item text.
type JSONStore struct {
	path string
	opts Options
}

func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) Load() (*model.List, error) {
	f, ok := openOrFresh(s.path, s.opts)
	if !ok {
		return model.NewList(), nil
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var items []model.Item
	if len(b) > 0 {
		if err := json.Unmarshal(b, &items); err != nil {
			return nil, fmt.Errorf("json unmarshal %s: %w: %w", s.path, model.ErrMalformedRecord, err)
		}
	}
	l := model.NewList()
	for i, it := range items {
		if err := l.Add(it.Text, it.Checked); err != nil {
			if s.opts.SkipMalformed {
				s.opts.Logger.Warn("skipping malformed record", "path", s.path, "index", i)
				continue
			}
			return nil, fmt.Errorf("item %d: %w: %w", i, model.ErrMalformedRecord, err)
		}
	}
	s.opts.Logger.Debug("loaded todo file", "path", s.path, "items", l.Len())
	return l, nil
}

func (s *JSONStore) Save(l *model.List) error {
	b, err := json.MarshalIndent(l.Items(), "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if err := writeFile(s.path, b); err != nil {
		return err
	}
	s.opts.Logger.Debug("saved todo file", "path", s.path, "items", l.Len())
	return nil
}
