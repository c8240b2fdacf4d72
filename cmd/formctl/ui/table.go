package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"formstate/internal/form"
	"formstate/internal/record"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable renders static rows with a header and a divider.
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string

	// Highlight marks one row with the Selected style; -1 for none.
	Highlight int
}

// NewSimpleTable creates a new SimpleTable with the given title and headers.
func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{
		Title:     title,
		Headers:   headers,
		Rows:      make([][]string, 0),
		Highlight: -1,
	}
}

// AddRow adds a row to the table.
func (t *SimpleTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table using the provided styles. An empty table renders
// its title and a muted placeholder.
func (t *SimpleTable) View(styles Styles) string {
	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}
	if len(t.Rows) == 0 {
		sb.WriteString(styles.Muted.Render("(no records)"))
		sb.WriteString("\n")
		return sb.String()
	}

	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}
	// lipgloss Width includes padding
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	sepStyle := styles.Muted

	for i, h := range t.Headers {
		sb.WriteString(headerStyle.Width(colWidths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")

	totalWidth := len(t.Headers) - 1
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	for r, row := range t.Rows {
		rowStyle := styles.Body.Padding(0, 1)
		if r == t.Highlight {
			rowStyle = styles.Selected.Padding(0, 1)
		}
		for i, cell := range row {
			if i >= len(colWidths) {
				break
			}
			sb.WriteString(rowStyle.Width(colWidths[i]).Render(cell))
			if i < len(row)-1 {
				sb.WriteString(sepStyle.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// StateTable lays out one row per slot: index, dirty marker, value and
// default. Slots past the shorter collection show an empty cell.
func StateTable(title string, s form.State) *SimpleTable {
	t := NewSimpleTable(title, []string{"#", "dirty", "values", "defaults"})
	for i := 0; i < max(len(s.Values), len(s.Defaults)); i++ {
		marker := ""
		if s.Dirty.Has(i) {
			marker = "*"
		}
		var value, def string
		if i < len(s.Values) {
			value = FormatRecord(s.Values[i])
		}
		if i < len(s.Defaults) {
			def = FormatRecord(s.Defaults[i])
		}
		t.AddRow(strconv.Itoa(i), marker, value, def)
	}
	return t
}

// FormatRecord prints r as sorted key=value pairs.
func FormatRecord(r record.Record) string {
	if len(r) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, r[k])
	}
	return strings.Join(parts, " ")
}
