package vision

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractedTable is the normalized tabular shape recovered from free-form
// provider text. Every row in Data has exactly len(Columns) cells; rows that
// did not conform are kept in Rejected for diagnostic display.
type ExtractedTable struct {
	Columns  []string   `json:"columns"`
	Data     [][]string `json:"data"`
	Rejected [][]string `json:"rejected,omitempty"`
}

// ParseTable recovers a {columns, data} table from raw provider output.
// It takes the greedy span from the first '{' to the last '}' and attempts a
// JSON decode. The second return value is false when no structured table is
// present, in which case the caller falls back to the raw text. ParseTable
// never panics and never returns an error for malformed input.
func ParseTable(raw string) (*ExtractedTable, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, false
	}

	var decoded struct {
		Columns []any `json:"columns"`
		Data    []any `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &decoded); err != nil {
		return nil, false
	}
	if decoded.Columns == nil || decoded.Data == nil {
		return nil, false
	}

	table := &ExtractedTable{
		Columns: make([]string, 0, len(decoded.Columns)),
	}
	for _, c := range decoded.Columns {
		table.Columns = append(table.Columns, stringifyCell(c))
	}

	for _, rawRow := range decoded.Data {
		cells, ok := rawRow.([]any)
		if !ok {
			// Scalar rows cannot match the column count unless it is 1.
			row := []string{stringifyCell(rawRow)}
			if len(table.Columns) == 1 {
				table.Data = append(table.Data, row)
			} else {
				table.Rejected = append(table.Rejected, row)
			}
			continue
		}
		row := make([]string, 0, len(cells))
		for _, c := range cells {
			row = append(row, stringifyCell(c))
		}
		if len(row) == len(table.Columns) {
			table.Data = append(table.Data, row)
		} else {
			table.Rejected = append(table.Rejected, row)
		}
	}

	return table, true
}

// stringifyCell renders any decoded JSON value as a display string.
// Numbers keep their JSON literal form, nested structures are re-encoded.
func stringifyCell(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	case float64:
		return trimFloat(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(data)
	}
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}
