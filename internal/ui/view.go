package ui

import (
	"fmt"
	"strings"
)

// chrome rows: title, three inputs, toggle line, status line, help line
const chromeHeight = 8

func (m *Model) resultsHeight() int {
	h := m.height - chromeHeight
	if h < 3 {
		h = 3
	}
	return h
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("grepagrip"))
	if root := m.coord.Root(); root != "" {
		b.WriteString("  " + m.styles.Dim.Render(root))
	}
	b.WriteString("\n")

	b.WriteString(m.inputLine("Search ", m.queryInput.View(), m.focus == focusQuery))
	b.WriteString(m.inputLine("Filter ", m.filterInput.View(), m.focus == focusFilter))
	b.WriteString(m.inputLine("Replace", m.replaceInput.View(), m.focus == focusReplace))

	b.WriteString(m.toggleLine())
	b.WriteString("\n")

	b.WriteString(m.renderResults())

	b.WriteString(m.statusLine())
	b.WriteString(m.styles.Help.Render("tab focus · alt+c/r/w toggles · enter view · r/R replace · ctrl+l clear · ctrl+c quit"))

	return b.String()
}

func (m *Model) inputLine(label, input string, active bool) string {
	style := m.styles.Label
	if active {
		style = m.styles.LabelActive
	}
	return fmt.Sprintf("%s %s\n", style.Render(label+":"), input)
}

func (m *Model) toggleLine() string {
	opts := m.coord.Options()
	render := func(on bool, tag string) string {
		if on {
			return m.styles.ToggleOn.Render("[" + tag + "]")
		}
		return m.styles.Toggle.Render("[" + tag + "]")
	}
	return strings.Join([]string{
		render(opts.CaseSensitive, "Aa case"),
		render(opts.UseRegex, ".* regex"),
		render(opts.WholeWord, "\\b word"),
	}, " ")
}

type resultRow struct {
	text     string
	flatIdx  int // -1 for file headers
	selected bool
}

// renderResults draws the grouped match list with the selection kept in view
func (m *Model) renderResults() string {
	height := m.resultsHeight()

	if m.regexError != "" {
		return m.styles.Error.Render("Pattern error: "+m.regexError) +
			strings.Repeat("\n", height)
	}
	if len(m.results) == 0 {
		placeholder := "No results"
		if strings.TrimSpace(m.queryInput.Value()) == "" {
			placeholder = "Type to search"
		}
		return m.styles.Dim.Render(placeholder) + strings.Repeat("\n", height)
	}

	rows := m.buildRows()

	// keep the selected row visible
	selLine := 0
	for i, r := range rows {
		if r.selected {
			selLine = i
			break
		}
	}
	if selLine < m.scroll {
		m.scroll = selLine
	}
	if selLine >= m.scroll+height {
		m.scroll = selLine - height + 1
	}
	if m.scroll > len(rows)-height {
		m.scroll = len(rows) - height
	}
	if m.scroll < 0 {
		m.scroll = 0
	}

	end := m.scroll + height
	if end > len(rows) {
		end = len(rows)
	}

	var b strings.Builder
	for _, r := range rows[m.scroll:end] {
		b.WriteString(r.text)
		b.WriteString("\n")
	}
	for i := end - m.scroll; i < height; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) buildRows() []resultRow {
	var rows []resultRow
	flatIdx := 0
	for _, file := range m.results {
		header := fmt.Sprintf("%s (%d)", file.RelativePath, file.MatchCount())
		rows = append(rows, resultRow{
			text:    m.styles.FileHeader.Render(header),
			flatIdx: -1,
		})
		for _, match := range file.Matches {
			line := match.LineContent
			if m.width > 8 && len(line) > m.width-8 {
				line = line[:m.width-8]
			}
			text := fmt.Sprintf("  %s %s",
				m.styles.LineNumber.Render(fmt.Sprintf("%4d:", match.LineNumber)),
				m.styles.MatchLine.Render(line))
			selected := flatIdx == m.selected
			if selected {
				text = m.styles.Selected.Render(fmt.Sprintf("  %4d: %s", match.LineNumber, line))
			}
			rows = append(rows, resultRow{text: text, flatIdx: flatIdx, selected: selected})
			flatIdx++
		}
	}
	return rows
}

func (m *Model) statusLine() string {
	var parts []string

	if m.isSearching {
		parts = append(parts, m.spin.View()+" searching…")
	} else if m.isReplacing {
		parts = append(parts, m.spin.View()+" replacing…")
	} else if m.totalMatches > 0 {
		parts = append(parts, fmt.Sprintf("%d match(es) in %d file(s)", m.totalMatches, len(m.results)))
	}

	if m.statusMsg != "" {
		parts = append(parts, m.statusMsg)
	}

	return m.styles.Status.Render(strings.Join(parts, " · ")) + "\n"
}
