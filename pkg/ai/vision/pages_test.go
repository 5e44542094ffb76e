package vision_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/casedesk/casedesk/pkg/ai/vision"
	"github.com/casedesk/casedesk/pkg/imaging"
)

func twoPages() []imaging.Page {
	return []imaging.Page{
		{Number: 1, PNG: []byte{1}},
		{Number: 2, PNG: []byte{2}},
	}
}

func TestReadPages_TwoPageJoinOrder(t *testing.T) {
	got, err := vision.ReadPages(context.Background(), "base", twoPages(),
		func(_ context.Context, prompt string, page imaging.Page) (string, error) {
			return prompt, nil
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	segments := strings.Split(got, "\n")
	if len(segments) != 2 {
		t.Fatalf("expected 2 newline-joined segments, got %d: %q", len(segments), got)
	}
	if !strings.Contains(segments[0], "1ページ目") || !strings.Contains(segments[1], "2ページ目") {
		t.Fatalf("expected page-indexed segments in page order, got %q", got)
	}
}

func TestReadPages_SinglePageUnsuffixed(t *testing.T) {
	got, err := vision.ReadPages(context.Background(), "base",
		[]imaging.Page{{Number: 1}},
		func(_ context.Context, prompt string, _ imaging.Page) (string, error) {
			return prompt, nil
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "base" {
		t.Fatalf("single-page prompt should be unsuffixed, got %q", got)
	}
}

func TestReadPages_FailedPagePlaceholder(t *testing.T) {
	got, err := vision.ReadPages(context.Background(), "base", twoPages(),
		func(_ context.Context, _ string, page imaging.Page) (string, error) {
			if page.Number == 1 {
				return "", errors.New("boom")
			}
			return "page two text", nil
		})
	if err != nil {
		t.Fatalf("expected partial success, got error: %v", err)
	}

	segments := strings.Split(got, "\n")
	if !strings.Contains(segments[0], "エラー") {
		t.Fatalf("expected error placeholder for page 1, got %q", segments[0])
	}
	if segments[1] != "page two text" {
		t.Fatalf("expected page 2 text preserved, got %q", segments[1])
	}
}

func TestReadPages_AllPagesFailed(t *testing.T) {
	_, err := vision.ReadPages(context.Background(), "base", twoPages(),
		func(_ context.Context, _ string, _ imaging.Page) (string, error) {
			return "", errors.New("boom")
		})
	if err == nil {
		t.Fatal("expected error when every page fails")
	}
}
