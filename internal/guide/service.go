package guide

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/adedotun/medprep/internal/llm"
)

// PopularTopics is the fixed starter list on the study search view.
var PopularTopics = []string{
	"Cardiology",
	"Neurology",
	"Pulmonology",
	"Psychiatry",
	"Pediatrics",
	"Public Health",
	"Medical Ethics",
	"OB/GYN",
}

// TermNotFound is the marker the glossary prompt asks for on unknown
// terms. Callers match it case-insensitively.
const TermNotFound = "Term not found."

// Video is one recommended explanation video.
type Video struct {
	VideoID     string `json:"videoId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// videoListSchema validates the video recommendation response.
var videoListSchema = &llm.Schema{
	Name:        "video-recommendations",
	Description: "Educational video recommendations for a study topic",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"videoId": map[string]any{
					"type":        "string",
					"description": "The unique YouTube video ID.",
				},
				"title": map[string]any{
					"type":        "string",
					"description": "A concise, relevant title for the video.",
				},
				"description": map[string]any{
					"type":        "string",
					"description": "A brief (1-2 sentence) description of the video's content and why it's useful.",
				},
			},
			"required":             []any{"videoId", "title", "description"},
			"additionalProperties": false,
		},
	},
}

// Service generates study guides, video lists, and glossary definitions.
type Service struct {
	gateway *llm.Gateway
}

// New creates a Service on the given gateway.
func New(gateway *llm.Gateway) *Service {
	return &Service{gateway: gateway}
}

// Generate streams a markdown study guide for topic through onChunk.
//
// A failure before any content arrived is returned to the caller, who
// reverts to the search view. A failure mid-stream instead appends an
// inline error notice after the partial content and returns nil: the
// reader keeps what was already generated.
func (s *Service) Generate(ctx context.Context, topic string, onChunk func(string)) error {
	ctx = llm.WithPurpose(ctx, "study-guide")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGuidePrompt(topic)},
		},
	}

	delivered := false
	err := s.gateway.GenerateStream(ctx, req, func(chunk string) {
		delivered = true
		onChunk(chunk)
	})
	if err == nil {
		return nil
	}

	fmt.Fprintf(os.Stderr, "warning: study guide stream for %q failed: %v\n", topic, err)
	if !delivered {
		return err
	}

	onChunk(fmt.Sprintf("\n\n---\n\n**An error occurred while generating the study guide for \"%s\". Please try again.**", topic))
	return nil
}

// FindVideos recommends explanation videos for topic. It is best-effort:
// any failure yields an empty list and the guide renders without videos.
func (s *Service) FindVideos(ctx context.Context, topic string) []Video {
	ctx = llm.WithPurpose(ctx, "video-search")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildVideoPrompt(topic)},
		},
		Schema: videoListSchema,
	}

	resp, err := s.gateway.Generate(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: video search for %q failed: %v\n", topic, err)
		return nil
	}

	var videos []Video
	if err := json.Unmarshal(resp.Content, &videos); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to parse video list for %q: %v\n", topic, err)
		return nil
	}
	return videos
}

// Define looks up a medical term. Unknown terms come back containing
// TermNotFound; a transport failure yields a describable fallback so the
// glossary panel always has something to show.
func (s *Service) Define(ctx context.Context, term string) string {
	ctx = llm.WithPurpose(ctx, "glossary")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGlossaryPrompt(term)},
		},
	}

	resp, err := s.gateway.Generate(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: glossary lookup for %q failed: %v\n", term, err)
		return fmt.Sprintf("An error occurred while fetching the definition for %q. Please try again.", term)
	}
	return strings.TrimSpace(string(resp.Content))
}

func buildGuidePrompt(topic string) string {
	return fmt.Sprintf(`Generate a comprehensive study guide for the topic of %q for a physician preparing for the MCCQE1 exam. Use standard Markdown for formatting. This should include:
- Main headings using '##' and sub-headings using '###'.
- Bold text for key terms using '**term**'.
- Unordered lists using dashes ('-'), including nested lists (using indentation).
- Tables for comparative data (e.g., differential diagnoses, drug side effects).
- Code blocks with triple backticks for things like mnemonics, algorithms, or classification criteria.`, topic)
}

func buildVideoPrompt(topic string) string {
	return fmt.Sprintf(`Find 4 highly relevant, educational YouTube videos for a physician studying the topic %q for the MCCQE1 exam. Focus on videos from reputable medical channels (e.g., Osmosis, Armando Hasudungan, Ninja Nerd, Strong Medicine). For each video, provide its YouTube Video ID, a clear title, and a brief description.`, topic)
}

func buildGlossaryPrompt(term string) string {
	return fmt.Sprintf(`Provide a concise definition for the medical term %q suitable for a physician studying for the MCCQE1 exam. If the term is not a valid medical term, respond with "Term not found.".`, term)
}
