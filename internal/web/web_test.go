package web

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"
)

type testTask struct {
	ID        int64
	Text      string
	Completed bool
}

type testView struct {
	Tasks     []testTask
	Total     int
	Completed int
	Empty     bool
}

func TestParseTemplates_RegistersAll(t *testing.T) {
	tmpl, err := ParseTemplates()
	if err != nil {
		t.Fatalf("ParseTemplates failed: %v", err)
	}

	for _, name := range []string{"index.html", "app.html", "task_list.html", "task_item.html"} {
		if tmpl.Lookup(name) == nil {
			t.Errorf("expected template %s to be registered", name)
		}
	}
}

func TestTaskList_EscapesTextAndCounts(t *testing.T) {
	tmpl, err := ParseTemplates()
	if err != nil {
		t.Fatalf("ParseTemplates failed: %v", err)
	}

	view := testView{
		Tasks:     []testTask{{ID: 1, Text: `<script>alert("x")</script>`, Completed: true}},
		Total:     1,
		Completed: 1,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "task_list.html", view); err != nil {
		t.Fatalf("ExecuteTemplate failed: %v", err)
	}
	body := buf.String()

	if strings.Contains(body, "<script>") {
		t.Errorf("expected task text to be escaped, got %s", body)
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Errorf("expected escaped markup in output, got %s", body)
	}
	if !strings.Contains(body, "Total: 1 task<") {
		t.Errorf("expected singular task count, got %s", body)
	}
	if !strings.Contains(body, "Completed: 1") {
		t.Errorf("expected completed count, got %s", body)
	}
	if strings.Contains(body, "empty-state") {
		t.Error("expected no empty state for a non-empty view")
	}
}

func TestTaskList_EmptyState(t *testing.T) {
	tmpl, err := ParseTemplates()
	if err != nil {
		t.Fatalf("ParseTemplates failed: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "task_list.html", testView{Empty: true, Total: 2}); err != nil {
		t.Fatalf("ExecuteTemplate failed: %v", err)
	}
	body := buf.String()

	if !strings.Contains(body, `id="empty-state"`) {
		t.Errorf("expected empty state, got %s", body)
	}
	if !strings.Contains(body, "Total: 2 tasks") {
		t.Errorf("expected plural task count, got %s", body)
	}
}

func TestStatic_ServesStylesheet(t *testing.T) {
	if _, err := fs.Stat(Static(), "style.css"); err != nil {
		t.Fatalf("expected style.css in static assets: %v", err)
	}
}
