package visiontesseract

import "strings"

// NoMatchPlaceholder is returned when keyword filtering removes every line.
const NoMatchPlaceholder = "(該当する行がありません)"

// FilterLines keeps only the lines of text that contain at least one of the
// target fields. Empty fields are skipped; with no usable fields the text is
// returned unchanged.
func FilterLines(text string, fields []string) string {
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			keywords = append(keywords, f)
		}
	}
	if len(keywords) == 0 {
		return text
	}

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		for _, kw := range keywords {
			if strings.Contains(line, kw) {
				kept = append(kept, line)
				break
			}
		}
	}
	if len(kept) == 0 {
		return NoMatchPlaceholder
	}
	return strings.Join(kept, "\n")
}
