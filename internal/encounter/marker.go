package encounter

import (
	"regexp"
	"strings"
)

// completeMarker ends the simulation when it appears in a reply.
const completeMarker = "[ENCOUNTER_COMPLETE]"

// MarkerKind identifies a structured side-channel payload.
type MarkerKind string

const (
	MarkerExam    MarkerKind = "EXAM_RESULTS"
	MarkerLab     MarkerKind = "LAB_RESULTS"
	MarkerImaging MarkerKind = "IMAGING_RESULTS"
)

// markerRE matches one structured marker and its JSON payload. The
// payload spans to the last closing brace in the reply, across newlines.
var markerRE = regexp.MustCompile(`(?s)\[(EXAM_RESULTS|LAB_RESULTS|IMAGING_RESULTS)\]\s*(\{.*\})`)

// extractMarker finds the structured marker in a reply, if any,
// returning its kind, raw JSON payload, and the reply with the marker
// and payload removed.
func extractMarker(text string) (kind MarkerKind, payload string, remainder string, found bool) {
	m := markerRE.FindStringSubmatchIndex(text)
	if m == nil {
		return "", "", text, false
	}

	kind = MarkerKind(text[m[2]:m[3]])
	payload = text[m[4]:m[5]]
	remainder = strings.TrimSpace(text[:m[0]] + text[m[1]:])
	return kind, payload, remainder, true
}

// stripComplete removes the completion token, reporting whether it was
// present.
func stripComplete(text string) (string, bool) {
	if !strings.Contains(text, completeMarker) {
		return text, false
	}
	return strings.TrimSpace(strings.Replace(text, completeMarker, "", 1)), true
}
