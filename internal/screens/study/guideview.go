package study

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/adedotun/medprep/internal/guide"
	"github.com/adedotun/medprep/internal/screen"
	"github.com/adedotun/medprep/internal/speech"
	"github.com/adedotun/medprep/internal/store"
	"github.com/adedotun/medprep/internal/ui/components"
	"github.com/adedotun/medprep/internal/ui/layout"
	"github.com/adedotun/medprep/internal/ui/theme"
)

const guideFailedText = "An error occurred while generating the study guide. Please try another topic."

// guide view tabs.
const (
	tabContent = iota
	tabTOC
	tabVideos
)

// chunkMsg carries one streamed fragment.
type chunkMsg struct {
	GenID string
	Text  string
}

// streamDoneMsg signals the end of the stream. Err is non-nil only for
// a hard failure before any content arrived; mid-stream failures are
// folded into the content by the guide service.
type streamDoneMsg struct {
	GenID string
	Err   error
}

// videosMsg delivers the recommended videos, possibly empty.
type videosMsg struct {
	GenID  string
	Videos []guide.Video
}

// pronounceDoneMsg reports a finished pronunciation attempt.
type pronounceDoneMsg struct {
	Term string
	Err  error
}

// GuideView streams and displays one study guide: markdown content, a
// table of contents with progress checkboxes, recommended videos, and
// pronunciation of bold terms.
type GuideView struct {
	svc    *guide.Service
	guides *store.GuideRepo
	speech *speech.Cache

	topic string
	genID string

	content   strings.Builder
	chunks    chan string
	streaming bool
	failed    bool

	toc       []guide.TOCEntry
	completed map[string]bool
	saved     bool

	videos       []guide.Video
	videosLoaded bool

	terms   []string
	termIdx int

	tab      int
	tocIdx   int
	videoIdx int
	scroll   int

	pronouncing string
	speechErr   string

	// definition panel, shared lookup flow with the search screen
	lookupID   string
	lookingUp  string
	definition string
	defTerm    string
}

var _ screen.Screen = (*GuideView)(nil)
var _ screen.KeyHintProvider = (*GuideView)(nil)

// NewGuideView opens a guide. A non-empty content snapshot (a saved
// guide) is shown as-is; otherwise the guide is streamed in.
func NewGuideView(svc *guide.Service, guides *store.GuideRepo, sp *speech.Cache, topic, content string) *GuideView {
	v := &GuideView{
		svc:       svc,
		guides:    guides,
		speech:    sp,
		topic:     topic,
		genID:     uuid.New().String(),
		completed: map[string]bool{},
	}
	if content != "" {
		v.content.WriteString(content)
		v.finishContent()
	} else {
		v.streaming = true
	}
	return v
}

func (v *GuideView) Init() tea.Cmd {
	cmds := []tea.Cmd{v.loadVideos()}
	if v.streaming {
		v.chunks = make(chan string, 64)
		cmds = append(cmds, v.startStream(), v.waitChunk())
	}
	return tea.Batch(cmds...)
}

func (v *GuideView) Title() string {
	return v.topic
}

func (v *GuideView) KeyHints() []layout.KeyHint {
	switch v.tab {
	case tabTOC:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Section"},
			{Key: "Enter", Description: "Mark done"},
			{Key: "Tab", Description: "Next pane"},
			{Key: "Esc", Description: "Back"},
		}
	case tabVideos:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Video"},
			{Key: "Tab", Description: "Next pane"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		hints := []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "←→", Description: "Term"},
			{Key: "P", Description: "Pronounce"},
			{Key: "Enter", Description: "Define"},
			{Key: "Tab", Description: "Next pane"},
		}
		if !v.streaming && !v.failed {
			if v.saved {
				hints = append(hints, layout.KeyHint{Key: "S", Description: "Unsave"})
			} else {
				hints = append(hints, layout.KeyHint{Key: "S", Description: "Save"})
			}
		}
		return hints
	}
}

// startStream runs the gateway stream, feeding the chunk channel.
func (v *GuideView) startStream() tea.Cmd {
	genID := v.genID
	svc := v.svc
	topic := v.topic
	ch := v.chunks
	return func() tea.Msg {
		err := svc.Generate(context.Background(), topic, func(chunk string) {
			ch <- chunk
		})
		close(ch)
		return streamDoneMsg{GenID: genID, Err: err}
	}
}

// waitChunk blocks for the next fragment. A closed channel yields nil,
// which the runtime discards.
func (v *GuideView) waitChunk() tea.Cmd {
	genID := v.genID
	ch := v.chunks
	return func() tea.Msg {
		chunk, ok := <-ch
		if !ok {
			return nil
		}
		return chunkMsg{GenID: genID, Text: chunk}
	}
}

func (v *GuideView) loadVideos() tea.Cmd {
	genID := v.genID
	svc := v.svc
	topic := v.topic
	return func() tea.Msg {
		return videosMsg{GenID: genID, Videos: svc.FindVideos(context.Background(), topic)}
	}
}

func (v *GuideView) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case chunkMsg:
		if msg.GenID != v.genID {
			return v, nil
		}
		v.content.WriteString(msg.Text)
		v.toc = guide.ExtractTOC(v.content.String())
		return v, v.waitChunk()

	case streamDoneMsg:
		if msg.GenID != v.genID {
			return v, nil
		}
		v.streaming = false
		if msg.Err != nil {
			v.failed = true
			return v, nil
		}
		v.finishContent()
		return v, nil

	case videosMsg:
		if msg.GenID != v.genID {
			return v, nil
		}
		v.videos = msg.Videos
		v.videosLoaded = true
		return v, nil

	case pronounceDoneMsg:
		if v.pronouncing == msg.Term {
			v.pronouncing = ""
		}
		if msg.Err != nil {
			v.speechErr = fmt.Sprintf("Could not pronounce %q.", msg.Term)
		}
		return v, nil

	case definitionMsg:
		if msg.LookupID != v.lookupID {
			return v, nil
		}
		v.lookingUp = ""
		v.defTerm = msg.Term
		v.definition = msg.Text
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg.String())
	}

	return v, nil
}

// finishContent derives the TOC, term list, progress, and saved state
// once the full content is in.
func (v *GuideView) finishContent() {
	content := v.content.String()
	v.toc = guide.ExtractTOC(content)
	v.terms = collectTerms(content)
	v.saved = v.guides.IsSaved(v.topic)
	v.completed = map[string]bool{}
	for _, title := range v.guides.Progress(v.topic) {
		v.completed[title] = true
	}
}

// collectTerms gathers unique bold terms in order of first appearance.
func collectTerms(content string) []string {
	seen := map[string]bool{}
	var terms []string
	for _, line := range strings.Split(content, "\n") {
		for _, span := range guide.ParseSpans(line) {
			if span.Term && !seen[span.Text] {
				seen[span.Text] = true
				terms = append(terms, span.Text)
			}
		}
	}
	return terms
}

func (v *GuideView) handleKey(key string) (screen.Screen, tea.Cmd) {
	if key == "tab" {
		v.tab = (v.tab + 1) % 3
		if v.tab == tabVideos && len(v.videos) == 0 {
			v.tab = tabContent
		}
		return v, nil
	}

	switch v.tab {
	case tabTOC:
		return v.handleTOCKey(key)
	case tabVideos:
		return v.handleVideosKey(key)
	}
	return v.handleContentKey(key)
}

func (v *GuideView) handleContentKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k":
		if v.scroll > 0 {
			v.scroll--
		}
	case "down", "j":
		v.scroll++
	case "pgup":
		v.scroll -= 10
		if v.scroll < 0 {
			v.scroll = 0
		}
	case "pgdown":
		v.scroll += 10
	case "left", "h":
		if v.termIdx > 0 {
			v.termIdx--
		}
	case "right", "l":
		if v.termIdx < len(v.terms)-1 {
			v.termIdx++
		}
	case "p", "P":
		return v, v.pronounceSelected()
	case "enter":
		if len(v.terms) > 0 {
			return v, v.lookup(v.terms[v.termIdx])
		}
	case "x":
		v.definition = ""
	case "s", "S":
		if !v.streaming && !v.failed {
			saved, err := v.guides.Toggle(v.topic, v.content.String())
			if err == nil {
				v.saved = saved
			}
		}
	}
	return v, nil
}

func (v *GuideView) handleTOCKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k":
		if v.tocIdx > 0 {
			v.tocIdx--
		}
	case "down", "j":
		if v.tocIdx < len(v.toc)-1 {
			v.tocIdx++
		}
	case "enter", " ":
		if v.tocIdx < len(v.toc) {
			title := v.toc[v.tocIdx].Title
			if err := v.guides.ToggleSection(v.topic, title); err == nil {
				v.completed[title] = !v.completed[title]
			}
		}
	}
	return v, nil
}

func (v *GuideView) handleVideosKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k":
		if v.videoIdx > 0 {
			v.videoIdx--
		}
	case "down", "j":
		if v.videoIdx < len(v.videos)-1 {
			v.videoIdx++
		}
	}
	return v, nil
}

func (v *GuideView) pronounceSelected() tea.Cmd {
	if len(v.terms) == 0 || v.pronouncing != "" {
		return nil
	}
	term := v.terms[v.termIdx]
	v.pronouncing = term
	v.speechErr = ""

	sp := v.speech
	return func() tea.Msg {
		return pronounceDoneMsg{Term: term, Err: sp.Pronounce(context.Background(), term)}
	}
}

func (v *GuideView) lookup(term string) tea.Cmd {
	v.lookupID = uuid.New().String()
	v.lookingUp = term
	v.definition = ""

	id := v.lookupID
	svc := v.svc
	return func() tea.Msg {
		return definitionMsg{LookupID: id, Term: term, Text: svc.Define(context.Background(), term)}
	}
}

func (v *GuideView) View(width, height int) string {
	if v.failed {
		msg := lipgloss.NewStyle().Foreground(theme.Error).Render(guideFailedText)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	sidebarWidth := 0
	if width >= layout.CompactWidthThreshold {
		sidebarWidth = 34
	}
	mainWidth := width - sidebarWidth - 4

	var main string
	if v.tab == tabVideos {
		main = v.renderVideos(mainWidth, height)
	} else {
		main = v.renderContent(mainWidth, height)
	}

	if sidebarWidth == 0 {
		return main
	}

	sidebar := v.renderSidebar(sidebarWidth-2, height)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(mainWidth+2).Render(main),
		lipgloss.NewStyle().Width(sidebarWidth).Render(sidebar))
}

func (v *GuideView) renderContent(width, height int) string {
	content := v.content.String()
	if content == "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render(fmt.Sprintf("Generating study guide for %q...", v.topic)))
	}

	selectedTerm := ""
	if v.tab == tabContent && len(v.terms) > 0 {
		selectedTerm = v.terms[v.termIdx]
	}

	lines := renderBlocks(guide.Parse(content), width, selectedTerm)

	// Definition panel floats above the tail of the content.
	var panel []string
	if v.lookingUp != "" {
		panel = append(panel, theme.Hint.Render(fmt.Sprintf("Looking up %q...", v.lookingUp)))
	}
	if v.definition != "" {
		panel = append(panel,
			theme.Card.Width(width-2).Render(
				theme.Body.Bold(true).Render(v.defTerm)+"\n"+
					lipgloss.NewStyle().Foreground(theme.Text).Render(v.definition)+"\n"+
					theme.Hint.Render("x to close")))
	}
	if v.pronouncing != "" {
		panel = append(panel, theme.Hint.Render(fmt.Sprintf("Pronouncing %q...", v.pronouncing)))
	}
	if v.speechErr != "" {
		panel = append(panel, lipgloss.NewStyle().Foreground(theme.Error).Render(v.speechErr))
	}

	panelHeight := 0
	for _, p := range panel {
		panelHeight += lipgloss.Height(p)
	}

	visible := height - panelHeight - 1
	if visible < 1 {
		visible = 1
	}

	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if v.scroll > maxScroll {
		v.scroll = maxScroll
	}
	// Follow the stream while it grows.
	if v.streaming {
		v.scroll = maxScroll
	}

	end := v.scroll + visible
	if end > len(lines) {
		end = len(lines)
	}

	out := strings.Join(lines[v.scroll:end], "\n")
	if len(panel) > 0 {
		out += "\n" + strings.Join(panel, "\n")
	}
	if v.streaming {
		out += "\n" + theme.Hint.Render("▌ streaming...")
	}
	return out
}

func (v *GuideView) renderVideos(width, height int) string {
	if !v.videosLoaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Finding videos..."))
	}
	if len(v.videos) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No videos found for this topic."))
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Recommended videos") + "\n\n")
	for i, vid := range v.videos {
		titleStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
		prefix := "  "
		if i == v.videoIdx {
			titleStyle = titleStyle.Foreground(theme.Primary)
			prefix = "▸ "
		}
		b.WriteString(titleStyle.Render(prefix+vid.Title) + "\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(width).
			Render("    "+vid.Description) + "\n")
		b.WriteString(theme.Hint.Render("    https://www.youtube.com/watch?v="+vid.VideoID) + "\n\n")
	}
	return b.String()
}

func (v *GuideView) renderSidebar(width, height int) string {
	var b strings.Builder

	title := theme.Subtitle.Render("Contents")
	if v.tab == tabTOC {
		title = theme.Selected.Render("Contents")
	}
	b.WriteString(title + "\n")

	done := 0
	for _, e := range v.toc {
		if v.completed[e.Title] {
			done++
		}
	}
	if len(v.toc) > 0 {
		bar := components.NewProgressBar("", float64(done)/float64(len(v.toc)), true, width)
		b.WriteString(bar.View() + "\n\n")
	}

	for i, e := range v.toc {
		check := "☐"
		if v.completed[e.Title] {
			check = "☑"
		}
		line := fmt.Sprintf("%s %s", check, e.Title)
		style := lipgloss.NewStyle().Foreground(theme.Text).Width(width)
		if v.tab == tabTOC && i == v.tocIdx {
			style = style.Foreground(theme.Primary).Bold(true)
		} else if v.completed[e.Title] {
			style = style.Foreground(theme.TextDim)
		}
		b.WriteString(style.Render(line) + "\n")
	}

	if v.saved {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Success).Render("★ Saved"))
	}

	if len(v.videos) > 0 {
		b.WriteString("\n\n" + theme.Hint.Render(
			fmt.Sprintf("%d videos — Tab to view", len(v.videos))))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Height(height - 2).
		Render(b.String())
}
