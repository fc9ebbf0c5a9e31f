// Package report assembles per-student typing reports from drill data and model feedback.
package report

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/verte-zerg/drillreport/internal/apperr"
	"github.com/verte-zerg/drillreport/internal/model"
	"github.com/verte-zerg/drillreport/internal/stats"
)

// FeedbackUnavailable replaces the AI feedback when the provider fails.
const FeedbackUnavailable = "AI feedback is unavailable right now."

// DataSource fetches student names and drill records.
type DataSource interface {
	StudentDisplayName(ctx context.Context, studentID int64) (string, error)
	FetchDrillRecords(ctx context.Context, studentID int64, mode model.Mode) ([]model.DrillRecord, error)
}

// FeedbackWriter produces the coaching note for a mode summary.
type FeedbackWriter interface {
	Feedback(ctx context.Context, summary *stats.Summary, studentName string, mode model.Mode) (string, error)
}

// ModeReport is the rendered report for one practice mode.
type ModeReport struct {
	Mode              model.Mode     `json:"-"`
	Summary           string         `json:"summary"`
	Latest            string         `json:"latest"`
	AIFeedback        string         `json:"ai_feedback"`
	FeedbackAvailable bool           `json:"feedback_available"`
	SkippedRecords    int            `json:"skipped_records,omitempty"`
	Stats             *stats.Summary `json:"-"`
}

// StudentReport holds both mode reports for a student.
type StudentReport struct {
	StudentID   int64      `json:"student_id"`
	StudentName string     `json:"student_name"`
	Exercise    ModeReport `json:"exercise"`
	Pool        ModeReport `json:"pool"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// KeyBreakdown compares the latest attempt of every drill against earlier attempts.
type KeyBreakdown struct {
	StudentID   int64                `json:"student_id"`
	StudentName string               `json:"student_name"`
	Latest      stats.SectionSummary `json:"latest"`
	Past        stats.SectionSummary `json:"past"`
}

// Reporter runs fetch, aggregation, formatting and feedback for a student.
type Reporter struct {
	source   DataSource
	feedback FeedbackWriter
	logger   *slog.Logger
	now      func() time.Time
}

// NewReporter wires the collaborators. A nil logger discards log output.
func NewReporter(source DataSource, feedback FeedbackWriter, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reporter{source: source, feedback: feedback, logger: logger, now: time.Now}
}

// ModeReport builds the report for one mode. Feedback failures are absorbed into the
// placeholder text; data source failures are returned.
func (r *Reporter) ModeReport(ctx context.Context, studentID int64, studentName string, mode model.Mode) (ModeReport, error) {
	records, err := r.fetchValid(ctx, studentID, mode)
	if err != nil {
		return ModeReport{}, err
	}
	out := ModeReport{Mode: mode, SkippedRecords: records.skipped}

	summary := stats.ComputeAggregate(records.valid)
	out.Stats = summary
	out.Summary = stats.SummaryText(mode.Label(), summary)
	if summary != nil {
		out.Latest = stats.LatestText(&summary.Latest)
	} else {
		out.Latest = stats.LatestText(nil)
	}

	text, err := r.feedback.Feedback(ctx, summary, studentName, mode)
	switch {
	case err == nil:
		out.AIFeedback = text
		out.FeedbackAvailable = true
	case ctx.Err() != nil:
		return ModeReport{}, ctx.Err()
	default:
		r.logger.Warn("feedback_failed",
			"student_id", studentID,
			"mode", string(mode),
			"err", err,
		)
		out.AIFeedback = FeedbackUnavailable
	}
	return out, nil
}

// StudentReport builds the exercise and pool reports sequentially.
func (r *Reporter) StudentReport(ctx context.Context, studentID int64) (StudentReport, error) {
	if studentID <= 0 {
		return StudentReport{}, apperr.ErrInvalidStudentID
	}
	name, err := r.source.StudentDisplayName(ctx, studentID)
	if err != nil {
		return StudentReport{}, err
	}
	out := StudentReport{StudentID: studentID, StudentName: name}
	if out.Exercise, err = r.ModeReport(ctx, studentID, name, model.ModeExercise); err != nil {
		return StudentReport{}, err
	}
	if out.Pool, err = r.ModeReport(ctx, studentID, name, model.ModePool); err != nil {
		return StudentReport{}, err
	}
	out.GeneratedAt = r.now()
	r.logger.Info("report_generated",
		"student_id", studentID,
		"exercise_feedback", out.Exercise.FeedbackAvailable,
		"pool_feedback", out.Pool.FeedbackAvailable,
	)
	return out, nil
}

// KeyBreakdown combines both modes and splits them into latest and past attempts.
// It returns apperr.ErrNoData when the student has no eligible drills.
func (r *Reporter) KeyBreakdown(ctx context.Context, studentID int64) (KeyBreakdown, error) {
	if studentID <= 0 {
		return KeyBreakdown{}, apperr.ErrInvalidStudentID
	}
	name, err := r.source.StudentDisplayName(ctx, studentID)
	if err != nil {
		return KeyBreakdown{}, err
	}
	var combined []model.DrillRecord
	for _, mode := range model.Modes {
		records, err := r.fetchValid(ctx, studentID, mode)
		if err != nil {
			return KeyBreakdown{}, err
		}
		combined = append(combined, records.valid...)
	}
	if len(combined) == 0 {
		return KeyBreakdown{StudentID: studentID, StudentName: name}, apperr.ErrNoData
	}
	latest, past := stats.SplitLatestPast(combined)
	return KeyBreakdown{
		StudentID:   studentID,
		StudentName: name,
		Latest:      stats.AggregateSection(latest),
		Past:        stats.AggregateSection(past),
	}, nil
}

type fetched struct {
	valid   []model.DrillRecord
	skipped int
}

func (r *Reporter) fetchValid(ctx context.Context, studentID int64, mode model.Mode) (fetched, error) {
	records, err := r.source.FetchDrillRecords(ctx, studentID, mode)
	if err != nil {
		var dsErr *apperr.DataSourceError
		if !errors.As(err, &dsErr) {
			err = &apperr.DataSourceError{Op: "fetch " + string(mode) + " drills", Err: err}
		}
		r.logger.Error("fetch_failed", "student_id", studentID, "mode", string(mode), "err", err)
		return fetched{}, err
	}
	valid, rejected := stats.FilterValid(records)
	for _, rej := range rejected {
		r.logger.Warn("drill_record_skipped",
			"student_id", studentID,
			"mode", string(mode),
			"record_id", rej.RecordID,
			"drill_id", rej.DrillID,
			"field", rej.Field,
			"reason", rej.Reason,
		)
	}
	return fetched{valid: valid, skipped: len(rejected)}, nil
}
