package guide

import (
	"reflect"
	"testing"
)

func TestParseDialect(t *testing.T) {
	content := `## Diagnosis
Spirometry confirms **obstruction**.

### Criteria
` + "```" + `
ABCD mnemonic
` + "```" + `

| Drug | Class |
|------|-------|
| Salbutamol | SABA |
| Budesonide | ICS |

- First line
  - Nested point
- Second line
`

	blocks := Parse(content)

	want := []Block{
		Section{Title: "Diagnosis", Slug: "diagnosis"},
		Paragraph{Text: "Spirometry confirms **obstruction**."},
		SubHeading{Text: "Criteria"},
		CodeBlock{Lines: []string{"ABCD mnemonic"}},
		Table{
			Header: []string{"Drug", "Class"},
			Rows:   [][]string{{"Salbutamol", "SABA"}, {"Budesonide", "ICS"}},
		},
		List{Items: []ListItem{
			{Text: "First line"},
			{Nested: &List{Items: []ListItem{{Text: "Nested point"}}}},
			{Text: "Second line"},
		}},
	}

	if len(blocks) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %#v", len(want), len(blocks), blocks)
	}
	for i := range want {
		if !reflect.DeepEqual(blocks[i], want[i]) {
			t.Errorf("block %d:\n got  %#v\n want %#v", i, blocks[i], want[i])
		}
	}
}

func TestParseUnterminatedCodeBlock(t *testing.T) {
	blocks := Parse("```\nline one\nline two")
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	code, ok := blocks[0].(CodeBlock)
	if !ok {
		t.Fatalf("expected CodeBlock, got %T", blocks[0])
	}
	if len(code.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", code.Lines)
	}
}

func TestParsePipeRowWithoutSeparatorIsParagraph(t *testing.T) {
	blocks := Parse("| only | row |\nplain text\n")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %#v", len(blocks), blocks)
	}
	if _, ok := blocks[0].(Paragraph); !ok {
		t.Fatalf("a lone pipe row is a paragraph, got %T", blocks[0])
	}
}

func TestParseTableCellsTrimmed(t *testing.T) {
	blocks := Parse("|  Test  |  Value |\n|---|---|\n|  WBC |  7.5  |\n")
	table, ok := blocks[0].(Table)
	if !ok {
		t.Fatalf("expected Table, got %T", blocks[0])
	}
	if table.Header[0] != "Test" || table.Rows[0][1] != "7.5" {
		t.Fatalf("cells not trimmed: %#v", table)
	}
}

func TestParseSpans(t *testing.T) {
	spans := ParseSpans("Start **dyspnea** then **orthopnea** end")
	want := []Span{
		{Text: "Start "},
		{Text: "dyspnea", Term: true},
		{Text: " then "},
		{Text: "orthopnea", Term: true},
		{Text: " end"},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("got %#v, want %#v", spans, want)
	}
}

func TestParseSpansPlainText(t *testing.T) {
	spans := ParseSpans("no markup here")
	if len(spans) != 1 || spans[0].Term {
		t.Fatalf("got %#v", spans)
	}
}

func TestParseSpansEmpty(t *testing.T) {
	if spans := ParseSpans(""); len(spans) != 0 {
		t.Fatalf("got %#v", spans)
	}
}
