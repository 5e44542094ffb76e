package vision

import (
	"context"
	"strings"

	"github.com/casedesk/casedesk/pkg/imaging"
)

// PageFunc reads a single page with an already page-indexed prompt.
type PageFunc func(ctx context.Context, prompt string, page imaging.Page) (string, error)

// ReadPages implements the shared multi-page contract for adapters: one
// provider call per page, page-indexed prompts, newline join in page order.
// A single-page document uses the prompt unsuffixed and propagates its error
// directly. For multi-page documents a failed page contributes a placeholder
// segment; an error is returned only when every page fails.
func ReadPages(ctx context.Context, prompt string, pages []imaging.Page, read PageFunc) (string, error) {
	if len(pages) == 1 {
		return read(ctx, prompt, pages[0])
	}

	segments := make([]string, 0, len(pages))
	var lastErr error
	failed := 0

	for _, page := range pages {
		text, err := read(ctx, PagePrompt(prompt, page.Number), page)
		if err != nil {
			segments = append(segments, PageErrorPlaceholder(page.Number, err))
			lastErr = err
			failed++
			continue
		}
		segments = append(segments, text)
	}

	if failed == len(pages) {
		return "", lastErr
	}
	return strings.Join(segments, "\n"), nil
}
