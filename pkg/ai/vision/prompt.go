package vision

import (
	"fmt"
	"strings"
)

// TemplateKind selects the requested output shape for an extraction prompt.
type TemplateKind string

const (
	// TemplateFields asks for a flat {field: value} JSON object.
	TemplateFields TemplateKind = "fields"
	// TemplateTable asks for a {columns, data} JSON table.
	TemplateTable TemplateKind = "table"
)

// Prompts are written in Japanese because the documents being digitized are
// Japanese financial paperwork and providers transcribe best when instructed
// in the document language.
const (
	promptHeader = "画像内のテキストと数値を正確に読み取り、次の点に留意して、以下のすべての項目を抽出してください: %s\n"

	promptConventions = "元のレイアウト・表形式をできるだけ保持してください（行・列の対応関係が分かるように）。\n" +
		"「0（ゼロ）」と「O（オー）」、「1（イチ）」と「I（アイ）」など、誤認識されやすい文字に注意してください。\n" +
		"「,」「.」「円」などの通貨や桁区切りの記号も正確に認識してください。\n" +
		"数値は半角で、単位（例：千円、百万円）はそのまま記載してください。\n"

	promptShapeFields = "結果は JSON 形式で {項目名: 抽出内容} の形にしてください。解説は不要です。"
	promptShapeTable  = "結果は JSON 形式で {\"columns\": [...], \"data\": [[...], ...]} の形にしてください。解説は不要です。"
)

// BuildPrompt produces the deterministic extraction prompt for the given
// target fields. The same fields and kind always yield the same string.
func BuildPrompt(fields []string, kind TemplateKind) string {
	var b strings.Builder
	fmt.Fprintf(&b, promptHeader, strings.Join(fields, "、"))
	b.WriteString(promptConventions)
	if kind == TemplateTable {
		b.WriteString(promptShapeTable)
	} else {
		b.WriteString(promptShapeFields)
	}
	return b.String()
}

// PagePrompt suffixes a prompt with a 1-based page index so multi-page
// responses keep per-page provenance when joined.
func PagePrompt(prompt string, page int) string {
	return fmt.Sprintf("%s（%dページ目）", prompt, page)
}

// PageErrorPlaceholder is inserted in place of a failed page so the joined
// document result keeps its page positions.
func PageErrorPlaceholder(page int, err error) string {
	return fmt.Sprintf("（%dページ目: 読み取りエラー: %v）", page, err)
}
