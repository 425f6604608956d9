package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	cols := []column{{title: "Command"}, {title: "Attempts", right: true}, {title: "Success", right: true}}
	rows := [][]string{
		{"dir", "12", "97.50%"},
		{"get-process", "3", "8.00%"},
	}

	lines := formatTable(cols, rows)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Command      Attempts  Success" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "dir                12   97.50%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "get-process         3    8.00%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableTrimsTrailingPadding(t *testing.T) {
	lines := formatTable([]column{{title: "A"}, {title: "B"}}, [][]string{{"long value"}})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[1] != "long value" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}

func TestFormatTableTruncatesLongCells(t *testing.T) {
	lines := formatTable([]column{{title: "Title", max: 10}, {title: "Status"}}, [][]string{{"Advanced PowerShell Scripting", "quizzed"}})
	if lines[1] != "Advance...  quizzed" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}

func TestDisplayWidthCountsWideRunes(t *testing.T) {
	if got := displayWidth("日本"); got != 4 {
		t.Fatalf("expected width 4, got %d", got)
	}
	if got := padCell("日本", 6, false); got != "日本  " {
		t.Fatalf("unexpected padding: %q", got)
	}
}
