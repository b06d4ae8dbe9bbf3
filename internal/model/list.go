package model

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrIndexOutOfRange is matched by every *IndexError.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidText rejects text that cannot be stored on a single line.
	ErrInvalidText = errors.New("invalid item text")
)

// IndexError reports an index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index out of range: have %d, got %d", e.Len, e.Index)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }

// List is an ordered sequence of items. Position is the only identity and
// shifts down after a Delete.
type List struct {
	items []Item
}

func NewList(items ...Item) *List {
	l := &List{items: make([]Item, 0, len(items))}
	l.items = append(l.items, items...)
	return l
}

func (l *List) Len() int { return len(l.items) }

// Items returns a copy of the items in list order.
func (l *List) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List) At(i int) (Item, error) {
	if err := l.checkIndex(i); err != nil {
		return Item{}, err
	}
	return l.items[i], nil
}

// Add appends a new item at the end.
func (l *List) Add(text string, checked bool) error {
	if err := validateText(text); err != nil {
		return err
	}
	l.items = append(l.items, NewItem(text, checked))
	return nil
}

// Insert places it at position i, 0 <= i <= Len.
func (l *List) Insert(i int, it Item) error {
	if i < 0 || i > len(l.items) {
		return &IndexError{Index: i, Len: len(l.items)}
	}
	if err := validateText(it.Text); err != nil {
		return err
	}
	l.items = append(l.items, Item{})
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = it
	return nil
}

func (l *List) Check(i int) error {
	return l.update(i, (*Item).SetChecked)
}

func (l *List) Uncheck(i int) error {
	return l.update(i, (*Item).SetUnchecked)
}

func (l *List) Toggle(i int) error {
	return l.update(i, (*Item).Toggle)
}

func (l *List) Edit(i int, text string) error {
	if err := validateText(text); err != nil {
		return err
	}
	return l.update(i, func(it *Item) { it.SetText(text) })
}

func (l *List) Delete(i int) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}

// Lines renders every item as "<index> <item>", index starting at 0.
func (l *List) Lines() []string {
	out := make([]string, 0, len(l.items))
	for i, it := range l.items {
		out = append(out, fmt.Sprintf("%d %s", i, it.Render()))
	}
	return out
}

// WriteTo prints Lines to w, one per line.
func (l *List) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, ln := range l.Lines() {
		n, err := io.WriteString(w, ln+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Stats counts checked and unchecked items.
func (l *List) Stats() (done, pending int) {
	for _, it := range l.items {
		if it.Checked {
			done++
		} else {
			pending++
		}
	}
	return
}

func (l *List) update(i int, fn func(*Item)) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	fn(&l.items[i])
	return nil
}

func (l *List) checkIndex(i int) error {
	if i < 0 || i >= len(l.items) {
		return &IndexError{Index: i, Len: len(l.items)}
	}
	return nil
}

func validateText(text string) error {
	if strings.ContainsAny(text, "\r\n") {
		return fmt.Errorf("%w: text must fit on one line", ErrInvalidText)
	}
	return nil
}
