package guide

import (
	"regexp"
	"strings"
)

// TOCEntry is one section heading in a study guide.
type TOCEntry struct {
	Title string
	Slug  string
}

var (
	nonWordRE  = regexp.MustCompile(`[^\w\s-]`)
	hyphenRunRE = regexp.MustCompile(`[\s_-]+`)
	edgeHyphenRE = regexp.MustCompile(`^-+|-+$`)
)

// Slugify turns a section title into a stable anchor id: lowercased,
// trimmed, non-word characters stripped, runs of whitespace, underscores
// and hyphens collapsed to a single hyphen, leading and trailing hyphens
// removed. Applying it twice gives the same result.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = nonWordRE.ReplaceAllString(s, "")
	s = hyphenRunRE.ReplaceAllString(s, "-")
	return edgeHyphenRE.ReplaceAllString(s, "")
}

// ExtractTOC collects the "## " section headings of a guide, in order.
func ExtractTOC(content string) []TOCEntry {
	var toc []TOCEntry
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "## ") {
			continue
		}
		title := strings.TrimSpace(strings.TrimPrefix(trimmed, "## "))
		toc = append(toc, TOCEntry{Title: title, Slug: Slugify(title)})
	}
	return toc
}

// SectionCount returns the number of "## " sections in a guide. Saved
// guide listings use it to compute progress percentages without a full
// parse.
func SectionCount(content string) int {
	return len(ExtractTOC(content))
}
