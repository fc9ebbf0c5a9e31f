package feedback

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/drillreport/internal/stats"
)

// BuildPrompt renders the coaching prompt for one mode summary.
func BuildPrompt(summary *stats.Summary, studentName, modeLabel string) string {
	weakest := summary.WeakestKeyString()
	if weakest == "" {
		weakest = "None"
	}
	latest := summary.Latest

	var b strings.Builder
	b.WriteString("You are a friendly typing coach for students aged 8 to 16.\n")
	fmt.Fprintf(&b, "Write a short, motivational %s performance report for %s based on this data:\n", modeLabel, studentName)
	fmt.Fprintf(&b, "- Drill: %s\n", latest.DrillName())
	fmt.Fprintf(&b, "- WPM (Latest): %.1f, Accuracy: %.1f%%\n", latest.WPM(), latest.AccuracyPct())
	fmt.Fprintf(&b, "- Average WPM: %.1f, Avg Accuracy: %.1f%%\n", summary.AvgWPM, summary.AvgAccuracy)
	fmt.Fprintf(&b, "- Highest WPM: %.1f, Lowest WPM: %.1f\n", summary.HighestWPM.WPM(), summary.LowestWPM.WPM())
	fmt.Fprintf(&b, "- Weakest Keys: %s\n", weakest)
	fmt.Fprintf(&b, "- Skill Level: %s\n\n", summary.SkillLevel)
	b.WriteString("Tone: Friendly and supportive. Length: under 80 words.")
	return b.String()
}
