package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/drillreport/internal/model"
)

// NoDataText is rendered in place of a summary when a mode has no records.
func NoDataText(label string) string {
	return fmt.Sprintf("No %s data available.", label)
}

// RenderSummary prints the mode summary used by the report endpoint.
func RenderSummary(w io.Writer, label string, s *Summary) error {
	return writeLines(w, summaryLines(label, s))
}

// SummaryText returns the mode summary as a string.
func SummaryText(label string, s *Summary) string {
	return strings.Join(summaryLines(label, s), "\n")
}

// RenderLatest prints the latest drill block.
func RenderLatest(w io.Writer, latest *model.DrillRecord) error {
	return writeLines(w, latestLines(latest))
}

// LatestText returns the latest drill block as a string.
func LatestText(latest *model.DrillRecord) string {
	return strings.Join(latestLines(latest), "\n")
}

// RenderOverall prints the overall performance block.
func RenderOverall(w io.Writer, s *Summary) error {
	return writeLines(w, overallLines(s))
}

// OverallText returns the overall performance block as a string.
func OverallText(s *Summary) string {
	return strings.Join(overallLines(s), "\n")
}

func summaryLines(label string, s *Summary) []string {
	if s == nil {
		return []string{NoDataText(label)}
	}
	latest := s.Latest
	lines := []string{
		fmt.Sprintf("%s Report:", label),
		fmt.Sprintf("- Played drill: %s.", latest.DrillName()),
		fmt.Sprintf("- WPM (Latest): %.1f, Accuracy: %.1f%%", latest.WPM(), latest.AccuracyPct()),
		fmt.Sprintf("- Average WPM: %.1f, Accuracy: %.1f%%", s.AvgWPM, s.AvgAccuracy),
		fmt.Sprintf("- Highest WPM: %.1f, Lowest WPM: %.1f", s.HighestWPM.WPM(), s.LowestWPM.WPM()),
		fmt.Sprintf("- Total Keys: %d, Correct: %d, Wrong: %d, Missed: %d", s.TotalKeys, s.CorrectKeys, s.WrongKeys, s.MissedKeys),
	}
	if len(s.WeakestKeys) > 0 {
		lines = append(lines, fmt.Sprintf("- Weakest keys: '%s' (frequently missed or mistyped).", s.WeakestKeyString()))
	}
	lines = append(lines, fmt.Sprintf("- Skill Level: %s", s.SkillLevel))
	return lines
}

func latestLines(r *model.DrillRecord) []string {
	if r == nil {
		return []string{"No recent drill found."}
	}
	keys := strings.TrimSpace(strings.Join(keyLabels(r.WrongKeys), " ") + " " + strings.Join(keyLabels(r.MissedKeys), " "))
	return []string{
		"Latest Drill Report:",
		fmt.Sprintf("- Drill: %s", r.DrillName()),
		fmt.Sprintf("- WPM: %.1f | Accuracy: %.1f%%", r.WPM(), r.AccuracyPct()),
		fmt.Sprintf("- Total Keys Typed: %d", r.ActualKeyCount),
		fmt.Sprintf("  - Correct: %d | Wrong: %d | Missed: %d", r.CorrectKeyCount, r.WrongKeyCount, r.MissedKeyCount),
		fmt.Sprintf("- Weakest Keys (this drill): '%s'", keys),
		fmt.Sprintf("- Skill Level: %s", ClassifySkillLevel(r.WPM(), r.AccuracyPct())),
	}
}

func overallLines(s *Summary) []string {
	if s == nil {
		return []string{"No overall stats available."}
	}
	weakest := s.WeakestKeyString()
	if weakest == "" {
		weakest = "None"
	}
	return []string{
		"Overall Performance Summary:",
		fmt.Sprintf("- Total Drills Played: %d", s.TotalDrills),
		fmt.Sprintf("- Average WPM: %.1f | Average Accuracy: %.1f%%", s.AvgWPM, s.AvgAccuracy),
		fmt.Sprintf("- Highest WPM: %.1f | Lowest WPM: %.1f", s.HighestWPM.WPM(), s.LowestWPM.WPM()),
		fmt.Sprintf("- Total Keys Typed: %d, Correct: %d, Wrong: %d, Missed: %d", s.TotalKeys, s.CorrectKeys, s.WrongKeys, s.MissedKeys),
		fmt.Sprintf("- Most Missed/Mistyped Keys: '%s'", weakest),
		fmt.Sprintf("- Skill Progression: %s", s.SkillLevel),
	}
}

// RenderSections prints latest and past section totals, key sets and a bar chart.
func RenderSections(w io.Writer, title string, latest, past SectionSummary, width int, useColor bool) error {
	if title != "" {
		if _, err := fmt.Fprintf(w, "===== %s =====\n", title); err != nil {
			return err
		}
	}
	countRows := [][]string{
		{"Actual", fmt.Sprintf("%d", latest.ActualKeyCount), fmt.Sprintf("%d", past.ActualKeyCount)},
		{"Wrong", fmt.Sprintf("%d", latest.WrongKeyCount), fmt.Sprintf("%d", past.WrongKeyCount)},
		{"Missed", fmt.Sprintf("%d", latest.MissedKeyCount), fmt.Sprintf("%d", past.MissedKeyCount)},
		{"Correct", fmt.Sprintf("%d", latest.CorrectKeyCount), fmt.Sprintf("%d", past.CorrectKeyCount)},
		{"Total", fmt.Sprintf("%d", latest.TotalKeyCount), fmt.Sprintf("%d", past.TotalKeyCount)},
	}
	if err := writeTable(w, []string{"Keys", "Latest", "Past"}, countRows, map[int]bool{1: true, 2: true}); err != nil {
		return err
	}

	keyRows := [][]string{
		{"Actual", joinKeys(latest.ActualKeys), joinKeys(past.ActualKeys)},
		{"Wrong", joinKeys(latest.WrongKeys), joinKeys(past.WrongKeys)},
		{"Missed", joinKeys(latest.MissedKeys), joinKeys(past.MissedKeys)},
		{"Correct", joinKeys(latest.CorrectKeys), joinKeys(past.CorrectKeys)},
	}
	if err := writeTable(w, []string{"Key set", "Latest", "Past"}, keyRows, nil); err != nil {
		return err
	}

	return RenderBars(w, "Key Count Comparison", []string{"Latest", "Past"}, []BarGroup{
		{Label: "Actual", Values: []float64{float64(latest.ActualKeyCount), float64(past.ActualKeyCount)}},
		{Label: "Wrong", Values: []float64{float64(latest.WrongKeyCount), float64(past.WrongKeyCount)}},
		{Label: "Missed", Values: []float64{float64(latest.MissedKeyCount), float64(past.MissedKeyCount)}},
		{Label: "Correct", Values: []float64{float64(latest.CorrectKeyCount), float64(past.CorrectKeyCount)}},
	}, width, useColor)
}

func joinKeys(keys []string) string {
	if len(keys) == 0 {
		return "-"
	}
	return strings.Join(keyLabels(keys), " ")
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
