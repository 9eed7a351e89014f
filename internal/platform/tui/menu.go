package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-portal/internal/catalog"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// Home view rows. The entry list starts below the title and the tabs.
const (
	titleRow     = 0
	tabRow       = 1
	listTop      = 3
	footerHeight = 3 // Blank line, help line, status line
	tabStartX    = 1
)

// tabSpan is the clickable column range of a category tab.
type tabSpan struct {
	id         string
	start, end int // end is exclusive
}

// tabSpans lays out category tabs left to right, separated by one space.
func tabSpans(cats []catalog.Category) []tabSpan {
	spans := make([]tabSpan, 0, len(cats))
	x := tabStartX
	for _, c := range cats {
		w := lipgloss.Width(c.Title) + 2 // Padding on both sides
		spans = append(spans, tabSpan{id: c.ID, start: x, end: x + w})
		x += w + 1
	}
	return spans
}

// listRows is the number of entry rows that fit on the home view.
func listRows(height int) int {
	return max(1, height-listTop-footerHeight)
}

// listOffset is the first visible entry for the cursor to stay on screen.
func listOffset(cursor, rows int) int {
	return max(0, cursor-rows+1)
}

// viewHome renders the catalog: title, category tabs, the filtered entry
// list and the key help.
func (m *PortalModel) viewHome() string {
	var b strings.Builder
	sh := m.shell

	b.WriteString(m.theme.Title.Render(centerText("A R C A D E   P O R T A L", m.width)))
	b.WriteString("\n")

	b.WriteString(strings.Repeat(" ", tabStartX))
	for i, c := range sh.Catalog().Categories() {
		if i > 0 {
			b.WriteString(" ")
		}
		if c.ID == sh.Category() {
			b.WriteString(m.theme.TabOn.Render(c.Title))
		} else {
			b.WriteString(m.theme.Tab.Render(c.Title))
		}
	}
	b.WriteString("\n\n")

	entries := sh.Visible()
	rows := listRows(m.height)
	offset := listOffset(sh.Cursor(), rows)
	for i := offset; i < len(entries) && i < offset+rows; i++ {
		b.WriteString(m.entryLine(entries[i], i == sh.Cursor()))
		b.WriteString("\n")
	}
	if len(entries) == 0 {
		b.WriteString(m.theme.Muted.Render("  Nothing here yet."))
		b.WriteString("\n")
	}
	for range rows - min(rows, max(len(entries)-offset, 1)) {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render(truncate(
		"↑/↓ select  ←/→ category  enter play  t theme  S scores  : route  q quit", m.width)))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

// entryLine renders one catalog entry. Entries without a playable module
// are marked as coming soon.
func (m *PortalModel) entryLine(e catalog.Entry, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}
	name := fmt.Sprintf("%s%s %-14s", cursor, e.Emoji, e.Title)
	if !registry.Exists(e.ID) {
		name += " (soon)"
	}
	desc := ""
	if room := m.width - lipgloss.Width(name) - 3; room > 8 {
		desc = "  " + truncate(e.Description, room)
	}
	if selected {
		return m.theme.Selected.Render(name) + m.theme.Accent.Render(desc)
	}
	return name + m.theme.Muted.Render(desc)
}

// homeClick resolves a click on the home view: a tab switches category,
// an entry row opens that entry.
func (m *PortalModel) homeClick(x, y int) {
	sh := m.shell
	switch {
	case y == tabRow:
		for _, t := range tabSpans(sh.Catalog().Categories()) {
			if x >= t.start && x < t.end {
				_ = sh.SetCategory(t.id)
				return
			}
		}
	case y >= listTop:
		rows := listRows(m.height)
		row := y - listTop
		if row >= rows {
			return
		}
		idx := listOffset(sh.Cursor(), rows) + row
		if idx >= len(sh.Visible()) {
			return
		}
		sh.MoveCursor(idx - sh.Cursor())
		m.open(sh.OpenHighlighted())
	}
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// truncate shortens s to at most n columns, ending with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
