package guide

import (
	"regexp"
	"strings"
)

// Block is one parsed element of a study guide.
type Block interface{ block() }

// Section is a "## " heading. Sections carry the progress checkbox and
// anchor the table of contents.
type Section struct {
	Title string
	Slug  string
}

// SubHeading is a "### " heading.
type SubHeading struct {
	Text string
}

// CodeBlock is a fenced block: mnemonics, algorithms, criteria.
type CodeBlock struct {
	Lines []string
}

// Table is a pipe table with trimmed cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// List is a dash list; items may nest through indentation.
type List struct {
	Items []ListItem
}

// ListItem is either a text item or a nested sub-list.
type ListItem struct {
	Text   string
	Nested *List
}

// Paragraph is a plain text line.
type Paragraph struct {
	Text string
}

func (Section) block()    {}
func (SubHeading) block() {}
func (CodeBlock) block()  {}
func (Table) block()      {}
func (List) block()       {}
func (Paragraph) block()  {}

// Parse splits guide markdown into typed blocks, recognizing the dialect
// the guide prompt asks for: fenced code, pipe tables, ## and ###
// headings, nested dash lists, and paragraphs. Blank lines separate
// blocks and produce nothing themselves.
func Parse(content string) []Block {
	lines := strings.Split(content, "\n")
	var blocks []Block

	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "```"):
			var code []string
			i++
			for i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
				code = append(code, lines[i])
				i++
			}
			i++ // closing fence
			blocks = append(blocks, CodeBlock{Lines: code})

		case isTableRow(trimmed) && i+1 < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i+1]), "|--"):
			header := splitCells(trimmed)
			i += 2 // header + separator
			var rows [][]string
			for i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i]), "|") {
				rows = append(rows, splitCells(strings.TrimSpace(lines[i])))
				i++
			}
			blocks = append(blocks, Table{Header: header, Rows: rows})

		case strings.HasPrefix(trimmed, "###"):
			blocks = append(blocks, SubHeading{Text: strings.TrimSpace(trimSubHeading(trimmed))})
			i++

		case strings.HasPrefix(trimmed, "##"):
			title := strings.TrimSpace(trimmed[2:])
			blocks = append(blocks, Section{Title: title, Slug: Slugify(title)})
			i++

		case strings.HasPrefix(trimmed, "- "):
			list, next := parseList(lines, i, indentOf(line))
			blocks = append(blocks, list)
			i = next

		case trimmed != "":
			blocks = append(blocks, Paragraph{Text: line})
			i++

		default:
			i++
		}
	}

	return blocks
}

// parseList gathers consecutive "- " lines at the given indent; deeper
// indents recurse into nested lists, a shallower indent ends the list.
func parseList(lines []string, start, indent int) (List, int) {
	var list List
	i := start

	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "- ") {
			break
		}

		current := indentOf(line)
		if current < indent {
			break
		}
		if current > indent {
			nested, next := parseList(lines, i, current)
			list.Items = append(list.Items, ListItem{Nested: &nested})
			i = next
			continue
		}

		list.Items = append(list.Items, ListItem{Text: trimmed[2:]})
		i++
	}

	return list, i
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func isTableRow(trimmed string) bool {
	return len(trimmed) > 1 && strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|")
}

// splitCells drops the outer pipes and trims each cell.
func splitCells(row string) []string {
	parts := strings.Split(row, "|")
	if len(parts) < 3 {
		return nil
	}
	cells := make([]string, 0, len(parts)-2)
	for _, p := range parts[1 : len(parts)-1] {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

func trimSubHeading(trimmed string) string {
	// "### Title" — drop the marker and the following space if present.
	s := strings.TrimPrefix(trimmed, "###")
	return strings.TrimPrefix(s, " ")
}

// Span is one run of inline text. Term spans come from **bold** markup
// and are offered for pronunciation.
type Span struct {
	Text string
	Term bool
}

var boldRE = regexp.MustCompile(`\*\*.*?\*\*`)

// ParseSpans splits a line of text on **bold** markers, yielding plain
// and term spans in order.
func ParseSpans(text string) []Span {
	var spans []Span
	last := 0
	for _, loc := range boldRE.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Text: text[last:loc[0]]})
		}
		spans = append(spans, Span{Text: text[loc[0]+2 : loc[1]-2], Term: true})
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}
