package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/drillreport/internal/model"
)

func sampleSummary() *Summary {
	a := drill(1, model.Float(32.4), time.Minute)
	a.Accuracy = model.Float(91.04)
	a.ActualKeyCount, a.CorrectKeyCount, a.WrongKeyCount, a.MissedKeyCount = 120, 110, 7, 3
	a.WrongKeys = []string{"j", "k"}
	a.MissedKeys = []string{";"}
	b := drill(2, model.Float(41), 2*time.Minute)
	b.Accuracy = model.Float(96)
	b.ActualKeyCount, b.CorrectKeyCount, b.WrongKeyCount, b.MissedKeyCount = 80, 78, 1, 1
	b.WrongKeys = []string{"k"}
	return ComputeAggregate([]model.DrillRecord{a, b})
}

func TestSummaryText(t *testing.T) {
	text := SummaryText("Exercise", sampleSummary())
	for _, want := range []string{
		"Exercise Report:",
		"- Played drill: Home Row.",
		"- WPM (Latest): 41.0, Accuracy: 96.0%",
		"- Average WPM: 36.7, Accuracy: 93.5%",
		"- Highest WPM: 41.0, Lowest WPM: 32.4",
		"- Total Keys: 200, Correct: 188, Wrong: 8, Missed: 4",
		"- Weakest keys: 'k j ;' (frequently missed or mistyped).",
		"- Skill Level: Intermediate",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in summary:\n%s", want, text)
		}
	}
}

func TestSummaryTextNoData(t *testing.T) {
	if got := SummaryText("Pool", nil); got != "No Pool data available." {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestLatestText(t *testing.T) {
	s := sampleSummary()
	latest := s.Latest
	latest.DrillTypeName = ""
	latest.DrillTypeID = 4
	latest.WrongKeys = []string{"k"}
	latest.MissedKeys = []string{"l"}
	text := LatestText(&latest)
	for _, want := range []string{
		"Latest Drill Report:",
		"- Drill: Drill Type 4",
		"- WPM: 41.0 | Accuracy: 96.0%",
		"- Total Keys Typed: 80",
		"  - Correct: 78 | Wrong: 1 | Missed: 1",
		"- Weakest Keys (this drill): 'k l'",
		"- Skill Level: Advanced",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in latest report:\n%s", want, text)
		}
	}
	if got := LatestText(nil); got != "No recent drill found." {
		t.Fatalf("unexpected empty latest text: %q", got)
	}
}

func TestRenderOverall(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderOverall(&buf, sampleSummary()); err != nil {
		t.Fatalf("RenderOverall failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "- Total Drills Played: 2\n") {
		t.Fatalf("expected drill count in output:\n%s", out)
	}
	if !strings.Contains(out, "- Most Missed/Mistyped Keys: 'k j ;'\n") {
		t.Fatalf("expected weakest keys in output:\n%s", out)
	}
	if !strings.Contains(out, "- Skill Progression: Intermediate\n") {
		t.Fatalf("expected skill progression in output:\n%s", out)
	}
	if got := OverallText(nil); got != "No overall stats available." {
		t.Fatalf("unexpected empty overall text: %q", got)
	}
}

func TestRenderSections(t *testing.T) {
	latest := SectionSummary{ActualKeyCount: 40, WrongKeyCount: 4, MissedKeyCount: 2, CorrectKeyCount: 34, TotalKeyCount: 80, WrongKeys: []string{" ", "a"}}
	past := SectionSummary{ActualKeyCount: 20, CorrectKeyCount: 20, TotalKeyCount: 40}
	var buf bytes.Buffer
	if err := RenderSections(&buf, "Ada Lovelace", latest, past, 60, false); err != nil {
		t.Fatalf("RenderSections failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"===== Ada Lovelace =====",
		"Total       80   40",
		"Wrong   <space> a -",
		"Key Count Comparison",
		"Legend:",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
