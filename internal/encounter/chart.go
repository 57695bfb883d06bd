package encounter

import (
	"encoding/json"
	"fmt"
	"sort"
)

// LabResult is one row of a lab panel.
type LabResult struct {
	Test      string `json:"test"`
	Value     string `json:"value"`
	Unit      string `json:"unit"`
	Reference string `json:"reference"`
}

// ImagingReport is one imaging study.
type ImagingReport struct {
	Findings   string `json:"findings"`
	Impression string `json:"impression"`
}

// Chart accumulates the structured findings revealed during an
// encounter. Repeat orders merge key-wise: a new exam keeps earlier
// vitals unless the payload carries its own, a repeated panel replaces
// that panel only.
type Chart struct {
	Vitals  map[string]string
	Exam    map[string]string
	Labs    map[string][]LabResult
	Imaging map[string]ImagingReport
}

// Empty reports whether nothing has been charted yet.
func (c *Chart) Empty() bool {
	return len(c.Vitals) == 0 && len(c.Exam) == 0 && len(c.Labs) == 0 && len(c.Imaging) == 0
}

// Apply merges one structured payload into the chart. A payload that
// fails to parse leaves the chart untouched.
func (c *Chart) Apply(kind MarkerKind, payload string) error {
	switch kind {
	case MarkerExam:
		return c.applyExam(payload)
	case MarkerLab:
		var panels map[string][]LabResult
		if err := json.Unmarshal([]byte(payload), &panels); err != nil {
			return fmt.Errorf("parse lab results: %w", err)
		}
		if c.Labs == nil {
			c.Labs = map[string][]LabResult{}
		}
		for panel, results := range panels {
			c.Labs[panel] = results
		}
		return nil
	case MarkerImaging:
		var studies map[string]ImagingReport
		if err := json.Unmarshal([]byte(payload), &studies); err != nil {
			return fmt.Errorf("parse imaging results: %w", err)
		}
		if c.Imaging == nil {
			c.Imaging = map[string]ImagingReport{}
		}
		for study, report := range studies {
			c.Imaging[study] = report
		}
		return nil
	default:
		return fmt.Errorf("unknown marker kind %q", kind)
	}
}

// applyExam splits the payload into the vitals subsection and per-system
// findings. Non-string findings are stringified rather than rejected.
func (c *Chart) applyExam(payload string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return fmt.Errorf("parse exam results: %w", err)
	}

	for key, val := range raw {
		if key == "vitals" {
			var vitals map[string]any
			if err := json.Unmarshal(val, &vitals); err != nil {
				return fmt.Errorf("parse vitals: %w", err)
			}
			if c.Vitals == nil {
				c.Vitals = map[string]string{}
			}
			for name, v := range vitals {
				c.Vitals[name] = fmt.Sprint(v)
			}
			continue
		}

		var finding any
		if err := json.Unmarshal(val, &finding); err != nil {
			return fmt.Errorf("parse exam finding %q: %w", key, err)
		}
		if c.Exam == nil {
			c.Exam = map[string]string{}
		}
		c.Exam[key] = fmt.Sprint(finding)
	}
	return nil
}

// VitalNames returns the charted vital names, sorted for stable display.
func (c *Chart) VitalNames() []string { return sortedKeys(c.Vitals) }

// ExamSystems returns the charted exam systems, sorted.
func (c *Chart) ExamSystems() []string { return sortedKeys(c.Exam) }

// LabPanels returns the charted panel names, sorted.
func (c *Chart) LabPanels() []string { return sortedKeys(c.Labs) }

// ImagingStudies returns the charted study names, sorted.
func (c *Chart) ImagingStudies() []string { return sortedKeys(c.Imaging) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
