package vision_test

import (
	"testing"

	"github.com/casedesk/casedesk/pkg/ai/vision"
)

func TestParseTable_Conforming(t *testing.T) {
	raw := `The extracted table is:
{"columns": ["item", "amount"], "data": [["A", "100"], ["B", "200"]]}
Let me know if you need anything else.`

	table, ok := vision.ParseTable(raw)
	if !ok {
		t.Fatal("expected a table")
	}
	if len(table.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(table.Columns))
	}
	if len(table.Data) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Data))
	}
	for _, row := range table.Data {
		if len(row) != len(table.Columns) {
			t.Fatalf("row length %d does not match column count %d", len(row), len(table.Columns))
		}
	}
	if len(table.Rejected) != 0 {
		t.Fatalf("expected no rejected rows, got %d", len(table.Rejected))
	}
}

func TestParseTable_QuarantinesNonConformingRows(t *testing.T) {
	raw := `{"columns": ["a", "b"], "data": [["1", "2"], ["only-one"], ["x", "y", "z"], ["3", "4"]]}`

	table, ok := vision.ParseTable(raw)
	if !ok {
		t.Fatal("expected a table")
	}
	if len(table.Data) != 2 {
		t.Fatalf("expected 2 conforming rows, got %d", len(table.Data))
	}
	if len(table.Rejected) != 2 {
		t.Fatalf("expected 2 rejected rows, got %d", len(table.Rejected))
	}
	if got, want := len(table.Data)+len(table.Rejected), 4; got != want {
		t.Fatalf("kept+rejected = %d, want original row count %d", got, want)
	}
	for _, row := range table.Data {
		if len(row) != len(table.Columns) {
			t.Fatalf("conforming row has length %d, want %d", len(row), len(table.Columns))
		}
	}
}

func TestParseTable_NoBraces(t *testing.T) {
	table, ok := vision.ParseTable("plain transcription without any structure")
	if ok || table != nil {
		t.Fatalf("expected no table, got %+v", table)
	}
}

func TestParseTable_MalformedJSON(t *testing.T) {
	if _, ok := vision.ParseTable(`{"columns": ["a", oops`); ok {
		t.Fatal("expected no table for malformed JSON")
	}
}

func TestParseTable_MissingKeys(t *testing.T) {
	if _, ok := vision.ParseTable(`{"rows": [["a"]]}`); ok {
		t.Fatal("expected no table when columns/data are absent")
	}
	if _, ok := vision.ParseTable(`{"columns": ["a"]}`); ok {
		t.Fatal("expected no table when data is absent")
	}
}

func TestParseTable_GreedySpan(t *testing.T) {
	// Nested braces inside cells must survive the first-{ to last-} span.
	raw := `prefix {"columns": ["note"], "data": [["{inner}"]]} suffix`

	table, ok := vision.ParseTable(raw)
	if !ok {
		t.Fatal("expected a table")
	}
	if table.Data[0][0] != "{inner}" {
		t.Fatalf("expected nested braces preserved, got %q", table.Data[0][0])
	}
}

func TestParseTable_NumericCells(t *testing.T) {
	raw := `{"columns": ["item", "amount"], "data": [["A", 1200], ["B", 3.5]]}`

	table, ok := vision.ParseTable(raw)
	if !ok {
		t.Fatal("expected a table")
	}
	if table.Data[0][1] != "1200" {
		t.Fatalf("expected integer cell rendered as 1200, got %q", table.Data[0][1])
	}
	if table.Data[1][1] != "3.5" {
		t.Fatalf("expected float cell rendered as 3.5, got %q", table.Data[1][1])
	}
}
