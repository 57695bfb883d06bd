package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/adedotun/medprep/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D", "E"}

// OptionList renders multiple-choice options with a movable cursor and,
// once the answer is locked, a reveal: correct option green, a wrong
// pick red, everything else dimmed. The answer state itself lives in
// the quiz session; this component only displays it.
type OptionList struct {
	Options      []string
	CorrectIndex int
	Cursor       int

	Answered bool
	Chosen   int // -1 when answered by timeout
}

// NewOptionList creates an option list for one question.
func NewOptionList(options []string, correctIndex int) OptionList {
	return OptionList{
		Options:      options,
		CorrectIndex: correctIndex,
		Chosen:       -1,
	}
}

// MoveUp moves the cursor up, stopping at the first option.
func (o *OptionList) MoveUp() {
	if !o.Answered && o.Cursor > 0 {
		o.Cursor--
	}
}

// MoveDown moves the cursor down, stopping at the last option.
func (o *OptionList) MoveDown() {
	if !o.Answered && o.Cursor < len(o.Options)-1 {
		o.Cursor++
	}
}

// Reveal locks the list into its answered state. chosen is -1 on
// timeout.
func (o *OptionList) Reveal(chosen int) {
	o.Answered = true
	o.Chosen = chosen
}

// View renders the options.
func (o OptionList) View(width int) string {
	var s string
	for i, opt := range o.Options {
		label := ""
		if i < len(optionLabels) {
			label = optionLabels[i]
		}

		prefix := "  "
		if i == o.Cursor && !o.Answered {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		var style lipgloss.Style
		switch {
		case o.Answered && i == o.CorrectIndex:
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case o.Answered && i == o.Chosen:
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		case o.Answered:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == o.Cursor:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		default:
			style = lipgloss.NewStyle().Foreground(theme.Text)
		}

		if width > 0 {
			style = style.Width(width)
		}
		s += style.Render(line) + "\n"
	}
	return s
}
