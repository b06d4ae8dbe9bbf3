// Package tui is the interactive list editor.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todotxt/internal/model"
	"github.com/idilsaglam/todotxt/internal/ui"
)

// listItem adapts model.Item to bubbles/list.Item.
type listItem struct {
	model.Item
}

func (i listItem) Title() string       { return i.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Text }

type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modeEdit
)

type modelTUI struct {
	todos   *model.List
	theme   ui.Theme
	list    list.Model
	ti      textinput.Model
	mode    inputMode
	editIdx int
	errMsg  string
	changed bool
	width   int
	height  int
}

// itemDelegate renders one line per item.
type itemDelegate struct {
	theme ui.Theme
}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd     { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := d.theme.Muted.Render(d.theme.BoxUnchecked)
	text := it.Text
	if it.Checked {
		box = d.theme.Success.Render(d.theme.BoxChecked)
		text = d.theme.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.theme.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}

func newModel(todos *model.List, th ui.Theme) modelTUI {
	items := make([]list.Item, 0, todos.Len())
	for _, it := range todos.Items() {
		items = append(items, listItem{it})
	}

	l := list.New(items, itemDelegate{theme: th}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = th.Title
	l.Styles.HelpStyle = th.Help
	l.Styles.PaginationStyle = th.Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	delBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	extra := func() []key.Binding { return []key.Binding{toggleBind, addBind, editBind, delBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := modelTUI{todos: todos, theme: th, list: l, ti: ti, width: 80, height: 24}
	m.refreshTitle()
	return m
}

// Run edits todos interactively until the user quits and reports whether
// anything changed. todos is updated in place.
func Run(todos *model.List, th ui.Theme) (changed bool, err error) {
	p := tea.NewProgram(newModel(todos, th), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(modelTUI)
	if !ok {
		return false, nil
	}
	return fm.changed, nil
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}
	if m.mode != modeBrowse {
		return m.updateInput(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch km.String() {
	case "q", "esc":
		if m.list.FilterState() == list.FilterApplied {
			m.list.ResetFilter()
			return m, nil
		}
		return m, tea.Quit
	case " ":
		i := m.list.GlobalIndex()
		if err := m.todos.Toggle(i); err == nil {
			it, _ := m.todos.At(i)
			m.list.SetItem(i, listItem{it})
			m.markChanged()
		}
		return m, nil
	case "d":
		i := m.list.GlobalIndex()
		if err := m.todos.Delete(i); err == nil {
			m.list.RemoveItem(i)
			m.markChanged()
		}
		return m, nil
	case "a":
		m.startInput(modeAdd, "", "New item title...")
		return m, textinput.Blink
	case "e":
		i := m.list.GlobalIndex()
		it, err := m.todos.At(i)
		if err != nil {
			return m, nil
		}
		m.editIdx = i
		m.startInput(modeEdit, it.Text, "Edit item title...")
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.errMsg = "Title cannot be empty"
				return m, nil
			}
			if m.mode == modeAdd {
				at := 0
				if m.todos.Len() > 0 {
					at = m.list.GlobalIndex() + 1
				}
				if err := m.todos.Insert(at, model.NewItem(title, false)); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
				m.list.InsertItem(at, listItem{model.NewItem(title, false)})
				m.list.Select(at)
			} else {
				if err := m.todos.Edit(m.editIdx, title); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
				it, _ := m.todos.At(m.editIdx)
				m.list.SetItem(m.editIdx, listItem{it})
			}
			m.markChanged()
			m.stopInput()
			return m, nil
		case "esc":
			m.stopInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *modelTUI) startInput(mode inputMode, value, placeholder string) {
	m.mode = mode
	m.errMsg = ""
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	m.ti.Focus()
	m.resize()
}

func (m *modelTUI) stopInput() {
	m.mode = modeBrowse
	m.errMsg = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m *modelTUI) markChanged() {
	m.changed = true
	m.refreshTitle()
}

// refreshTitle shows live counts in the list header.
func (m *modelTUI) refreshTitle() {
	done, pending := m.todos.Stats()
	m.list.Title = fmt.Sprintf("Todos   %s %d  %s %d  Total %d",
		m.theme.SymDone, done, m.theme.SymPending, pending, m.todos.Len())
}

func (m *modelTUI) resize() {
	h := m.height - 4
	if m.mode != modeBrowse {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m modelTUI) View() string {
	content := m.list.View()
	if m.mode != modeBrowse {
		title := "Add new item"
		if m.mode == modeEdit {
			title = "Edit item"
		}
		if m.errMsg != "" {
			title += "  " + m.theme.Error.Render(m.errMsg)
		}
		content += "\n" + m.theme.Frame(title+"\n"+m.ti.View())
	}
	return m.theme.Frame(content)
}
