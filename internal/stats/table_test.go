package stats

import (
	"bytes"
	"testing"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Keys", "Latest", "Past"}
	rows := [][]string{
		{"Actual", "120", "45"},
		{"Correct", "9", "1000"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Keys    Latest Past" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Actual     120   45" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Correct      9 1000" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestDisplayWidthCountsWideRunes(t *testing.T) {
	if got := displayWidth("日本"); got != 4 {
		t.Fatalf("expected width 4, got %d", got)
	}
	if got := displayWidth("abc"); got != 3 {
		t.Fatalf("expected width 3, got %d", got)
	}
}

func TestWriteTableTrimsTrailingSpace(t *testing.T) {
	var buf bytes.Buffer
	err := writeTable(&buf, []string{"Key set", "Latest"}, [][]string{{"Wrong", "a"}, {"Missed", "-"}}, nil)
	if err != nil {
		t.Fatalf("writeTable failed: %v", err)
	}
	want := "Key set Latest\nWrong   a\nMissed  -\n\n"
	if buf.String() != want {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
