package vision_test

import (
	"strings"
	"testing"

	"github.com/casedesk/casedesk/pkg/ai/vision"
)

func TestBuildPrompt_Deterministic(t *testing.T) {
	fields := []string{"会社名", "売上高"}
	a := vision.BuildPrompt(fields, vision.TemplateFields)
	b := vision.BuildPrompt(fields, vision.TemplateFields)
	if a != b {
		t.Fatal("same inputs produced different prompts")
	}
}

func TestBuildPrompt_IncludesFieldsAndConventions(t *testing.T) {
	p := vision.BuildPrompt([]string{"会社名", "売上高"}, vision.TemplateFields)

	for _, want := range []string{"会社名", "売上高", "JSON", "半角", "O（オー）"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestBuildPrompt_TableShape(t *testing.T) {
	p := vision.BuildPrompt([]string{"明細"}, vision.TemplateTable)
	if !strings.Contains(p, `"columns"`) || !strings.Contains(p, `"data"`) {
		t.Fatalf("table prompt missing columns/data shape:\n%s", p)
	}
}

func TestPagePrompt(t *testing.T) {
	p := vision.PagePrompt("base", 3)
	if !strings.HasPrefix(p, "base") {
		t.Fatalf("page prompt lost the base prompt: %q", p)
	}
	if !strings.Contains(p, "3ページ目") {
		t.Fatalf("page prompt missing 1-based page index: %q", p)
	}
}
