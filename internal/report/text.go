package report

import (
	"fmt"
	"io"

	"github.com/verte-zerg/drillreport/internal/stats"
)

// WriteText prints the report in the CLI layout.
func WriteText(w io.Writer, r StudentReport) error {
	if _, err := fmt.Fprintf(w, "============== TYPING REPORT for %s ==============\n", r.StudentName); err != nil {
		return err
	}
	for i, mode := range []ModeReport{r.Exercise, r.Pool} {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeMode(w, mode); err != nil {
			return err
		}
	}
	return nil
}

func writeMode(w io.Writer, m ModeReport) error {
	label := m.Mode.Label()
	if _, err := fmt.Fprintf(w, "%s Mode Summary:\n", label); err != nil {
		return err
	}
	if err := stats.RenderSummary(w, label, m.Stats); err != nil {
		return err
	}
	if m.Stats != nil {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := stats.RenderOverall(w, m.Stats); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := stats.RenderLatest(w, &m.Stats.Latest); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if m.SkippedRecords > 0 {
		if _, err := fmt.Fprintf(w, "(%d malformed drill records skipped)\n\n", m.SkippedRecords); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "AI Feedback (%s):\n%s\n", label, m.AIFeedback)
	return err
}
