package model

import (
	"errors"
	"strings"
)

// Record format: "<marker> - <text>".
const (
	MarkerChecked   = "[x]"
	MarkerUnchecked = "[ ]"
	Separator       = " - "
)

// ErrMalformedRecord is returned for a line that has no separator.
var ErrMalformedRecord = errors.New("malformed record")

// Item is the domain model for a todo entry.
type Item struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

func NewItem(text string, checked bool) Item {
	return Item{Text: text, Checked: checked}
}

func (i *Item) SetChecked()         { i.Checked = true }
func (i *Item) SetUnchecked()       { i.Checked = false }
func (i *Item) Toggle()             { i.Checked = !i.Checked }
func (i *Item) SetText(text string) { i.Text = text }

// Marker returns "[x]" or "[ ]".
func (i Item) Marker() string {
	if i.Checked {
		return MarkerChecked
	}
	return MarkerUnchecked
}

// Render formats the item the way it is persisted, e.g. "[x] - Buy milk".
func (i Item) Render() string {
	return i.Marker() + Separator + i.Text
}

func (i Item) String() string { return i.Render() }

// ParseItem reads one persisted record. Only the first separator splits the
// line, so text that itself contains " - " survives a round trip. Any marker
// other than "[x]" reads as unchecked.
func ParseItem(line string) (Item, error) {
	marker, text, found := strings.Cut(line, Separator)
	if !found {
		return Item{}, ErrMalformedRecord
	}
	return Item{Text: text, Checked: marker == MarkerChecked}, nil
}
