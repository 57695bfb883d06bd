package study

import (
	"strings"
	"testing"

	"github.com/adedotun/medprep/internal/store"
)

func openTestGuides(t *testing.T) *store.GuideRepo {
	t.Helper()
	s, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() {
		s.Clear()
		s.Close()
	})
	return store.NewGuideRepo(s)
}

func TestSavedGuideListShowsSectionProgress(t *testing.T) {
	guides := openTestGuides(t)

	content := "## Overview\n\ntext\n\n## Diagnosis\n\ntext\n"
	if _, err := guides.Toggle("Asthma", content); err != nil {
		t.Fatalf("save guide: %v", err)
	}
	if err := guides.ToggleSection("Asthma", "Overview"); err != nil {
		t.Fatalf("toggle section: %v", err)
	}

	s := New(nil, guides, nil)
	list := s.renderLists(120)

	if !strings.Contains(list, "Asthma") {
		t.Fatal("saved guide missing from the list")
	}
	if !strings.Contains(list, "1/2") {
		t.Errorf("list does not show section progress:\n%s", list)
	}
}
