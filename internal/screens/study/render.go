package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/adedotun/medprep/internal/guide"
	"github.com/adedotun/medprep/internal/ui/theme"
)

// renderBlocks turns parsed guide markdown into styled terminal lines.
// selectedTerm, when non-empty, highlights that bold term for the
// pronounce/define cursor.
func renderBlocks(blocks []guide.Block, width int, selectedTerm string) []string {
	var lines []string

	for _, block := range blocks {
		switch b := block.(type) {
		case guide.Section:
			lines = append(lines, "",
				lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("── "+b.Title),
				"")

		case guide.SubHeading:
			lines = append(lines, "",
				lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(b.Text))

		case guide.CodeBlock:
			style := lipgloss.NewStyle().
				Background(theme.BgCard).
				Foreground(theme.Accent).
				Width(width)
			for _, l := range b.Lines {
				lines = append(lines, style.Render("  "+l))
			}

		case guide.Table:
			lines = append(lines, renderTable(b, width)...)

		case guide.List:
			lines = append(lines, renderList(b, 0, width, selectedTerm)...)

		case guide.Paragraph:
			lines = append(lines, wrapStyled(renderSpans(b.Text, selectedTerm), width)...)
		}
	}

	return lines
}

// renderSpans styles a line's inline spans, underlining bold terms and
// highlighting the selected one.
func renderSpans(text, selectedTerm string) string {
	var b strings.Builder
	for _, span := range guide.ParseSpans(text) {
		switch {
		case span.Term && span.Text == selectedTerm:
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Bold(true).
				Render(span.Text))
		case span.Term:
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Accent).
				Bold(true).
				Underline(true).
				Render(span.Text))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(span.Text))
		}
	}
	return b.String()
}

func renderList(list guide.List, depth, width int, selectedTerm string) []string {
	var lines []string
	indent := strings.Repeat("  ", depth+1)
	for _, item := range list.Items {
		if item.Nested != nil {
			lines = append(lines, renderList(*item.Nested, depth+1, width, selectedTerm)...)
			continue
		}
		bullet := lipgloss.NewStyle().Foreground(theme.Secondary).Render("•")
		lines = append(lines, indent+bullet+" "+renderSpans(item.Text, selectedTerm))
	}
	return lines
}

func renderTable(t guide.Table, width int) []string {
	cols := len(t.Header)
	if cols == 0 {
		return nil
	}

	// Column widths from the widest cell.
	widths := make([]int, cols)
	for i, h := range t.Header {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < cols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	formatRow := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, 0, cols)
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts = append(parts, fmt.Sprintf("%-*s", widths[i], cell))
		}
		return "  " + style.Render(strings.Join(parts, "  │  "))
	}

	var lines []string
	lines = append(lines, "")
	lines = append(lines, formatRow(t.Header,
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)))

	total := 2
	for _, w := range widths {
		total += w
	}
	total += (cols - 1) * 5
	lines = append(lines, "  "+lipgloss.NewStyle().Foreground(theme.Border).
		Render(strings.Repeat("─", total)))

	bodyStyle := lipgloss.NewStyle().Foreground(theme.Text)
	for _, row := range t.Rows {
		lines = append(lines, formatRow(row, bodyStyle))
	}
	lines = append(lines, "")
	return lines
}

// wrapStyled wraps a styled line to the given width. lipgloss handles
// the ANSI-aware wrapping.
func wrapStyled(line string, width int) []string {
	if width <= 0 || lipgloss.Width(line) <= width {
		return []string{line}
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(line)
	return strings.Split(wrapped, "\n")
}
