package cli

import (
	"fmt"

	"github.com/idilsaglam/todotxt/internal/model"
	"github.com/idilsaglam/todotxt/internal/ui"
)

const maxTitle = 80

type indexed struct {
	i  int
	it model.Item
}

// panel renders the `ls` view: header with counts, progress, items, tip.
func (a *app) panel(l *model.List, group bool) string {
	t := a.theme
	d, p := l.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), l.Len(),
	)

	var rows []indexed
	for i, it := range l.Items() {
		rows = append(rows, indexed{i, it})
	}

	var lines []string
	lines = append(lines, header)
	lines = append(lines, t.Muted.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")
	if group {
		lines = append(lines, groupLines(t, rows)...)
	} else {
		lines = append(lines, flatLines(t, rows)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	return t.Panel(lines)
}

// flatLines keeps each item's list index so it can be passed to check/delete.
func flatLines(t ui.Theme, rows []indexed) []string {
	if len(rows) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		style := t.Muted
		if r.it.Checked {
			style = t.Success
		}
		box := style.Render(t.Box(r.it.Checked))
		out = append(out, fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%2d.", r.i)), box, truncate(r.it.Text)))
	}
	return out
}

func groupLines(t ui.Theme, rows []indexed) []string {
	var pend, done []indexed
	for _, r := range rows {
		if r.it.Checked {
			done = append(done, r)
		} else {
			pend = append(pend, r)
		}
	}
	section := func(title string, rs []indexed) []string {
		lines := []string{t.Accent.Render(title)}
		if len(rs) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, flatLines(t, rs)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > maxTitle {
		return string(r[:maxTitle-3]) + "..."
	}
	return s
}
