package domain

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"TODO", StatusTodo, true},
		{"doing", StatusDoing, true},
		{" Done ", StatusDone, true},
		{"archived", StatusArchived, true},
		{"BLOCKED", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := ParseStatus(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseStatus(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPriority_ParseAndRank(t *testing.T) {
	p, ok := ParsePriority("critical")
	if !ok || p != PriorityCritical {
		t.Fatalf("ParsePriority(critical) = %q, %v", p, ok)
	}
	if _, ok := ParsePriority("urgent"); ok {
		t.Error("ParsePriority(urgent) should fail")
	}
	if !(PriorityLow.Rank() < PriorityMedium.Rank() &&
		PriorityMedium.Rank() < PriorityHigh.Rank() &&
		PriorityHigh.Rank() < PriorityCritical.Rank()) {
		t.Error("priority ranks should ascend LOW < MEDIUM < HIGH < CRITICAL")
	}
	if Priority("x").Rank() != -1 {
		t.Error("unknown priority should rank -1")
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" work", "home", "work ", "", "  ", "errand"})
	want := []string{"errand", "home", "work"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTags = %v, want %v", got, want)
	}
	if got := NormalizeTags(nil); len(got) != 0 {
		t.Errorf("NormalizeTags(nil) = %v, want empty", got)
	}
}

func TestTask_Validate(t *testing.T) {
	base := func() *Task { return &Task{ProjectID: "p1", Title: "  Write report "} }

	t.Run("defaults", func(t *testing.T) {
		task := base()
		if err := task.Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if task.Title != "Write report" {
			t.Errorf("Title = %q, want trimmed", task.Title)
		}
		if task.Status != StatusTodo || task.Priority != PriorityMedium {
			t.Errorf("defaults = %q/%q, want TODO/MEDIUM", task.Status, task.Priority)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Task)
	}{
		{"empty title", func(t *Task) { t.Title = "  " }},
		{"long title", func(t *Task) { t.Title = strings.Repeat("a", MaxTitleLen+1) }},
		{"long description", func(t *Task) { t.Description = strings.Repeat("d", MaxDescriptionLen+1) }},
		{"missing project", func(t *Task) { t.ProjectID = "" }},
		{"bad status", func(t *Task) { t.Status = "BLOCKED" }},
		{"bad priority", func(t *Task) { t.Priority = "URGENT" }},
		{"long tag", func(t *Task) { t.Tags = []string{strings.Repeat("t", MaxTagLen+1)} }},
		{"long non-ASCII title", func(t *Task) { t.Title = strings.Repeat("é", MaxTitleLen+1) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := base()
			tc.mutate(task)
			if err := task.Validate(); err == nil {
				t.Error("Validate should fail")
			}
		})
	}
}

func TestTask_ValidateCountsCharacters(t *testing.T) {
	task := &Task{
		ProjectID:   "p1",
		Title:       strings.Repeat("é", MaxTitleLen),
		Description: strings.Repeat("日", MaxDescriptionLen),
		Tags:        []string{strings.Repeat("ü", MaxTagLen)},
	}
	if err := task.Validate(); err != nil {
		t.Errorf("Validate at the character limits: %v", err)
	}
}

func TestFoldCase(t *testing.T) {
	if got := FoldCase("Über CAFÉ"); got != "über café" {
		t.Errorf("FoldCase = %q", got)
	}
}

func TestTask_HasAnyTag(t *testing.T) {
	task := &Task{Tags: []string{"home", "work"}}
	if !task.HasAnyTag([]string{"x", "work"}) {
		t.Error("should match on work")
	}
	if task.HasAnyTag([]string{"x"}) {
		t.Error("should not match")
	}
	if task.HasAnyTag(nil) {
		t.Error("empty filter set never matches")
	}
}
