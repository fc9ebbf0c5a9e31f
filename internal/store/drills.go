package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/drillreport/internal/apperr"
	"github.com/verte-zerg/drillreport/internal/model"
)

// DefaultStudentName is returned when a student has no matching user row.
const DefaultStudentName = "Student"

type modeTables struct {
	drills     string
	activities string
	foreignKey string
}

func tablesFor(mode model.Mode) modeTables {
	if mode == model.ModePool {
		return modeTables{
			drills:     "student_pool_activity_drills",
			activities: "student_pool_activities",
			foreignKey: "student_pool_activity_id",
		}
	}
	return modeTables{
		drills:     "student_activity_drills",
		activities: "student_activities",
		foreignKey: "student_activity_id",
	}
}

// StudentDisplayName returns "first last" for the student, or DefaultStudentName.
func (s *Store) StudentDisplayName(ctx context.Context, studentID int64) (string, error) {
	query := s.rebind(`SELECT u.first_name, u.last_name
		FROM students s
		JOIN users u ON s.userId = u.id
		WHERE s.id = ?`)
	var first, last sql.NullString
	err := s.db.QueryRowContext(ctx, query, studentID).Scan(&first, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultStudentName, nil
	}
	if err != nil {
		return "", &apperr.DataSourceError{Op: "student name", Err: err}
	}
	name := strings.TrimSpace(first.String + " " + last.String)
	if name == "" {
		return DefaultStudentName, nil
	}
	return name, nil
}

// FetchDrillRecords returns the student's active, non-deleted drills of a mode ordered by end date.
func (s *Store) FetchDrillRecords(ctx context.Context, studentID int64, mode model.Mode) ([]model.DrillRecord, error) {
	t := tablesFor(mode)
	query := s.rebind(fmt.Sprintf(`SELECT d.id, d.drill_type, dt.drill_type, d.drill_id,
			d.word_per_min, d.accuracy,
			d.actual_key_count, d.correct_key_count, d.wrong_key_count, d.missed_key_count,
			d.actual_key, d.correct_key, d.wrong_key, d.missed_key,
			d.drill_start_date, d.drill_end_date, d.activity_drill_status
		FROM %s d
		JOIN %s a ON d.%s = a.id
		LEFT JOIN drill_types dt ON dt.id = d.drill_type
		WHERE a.student_id = ? AND d.activity_drill_status = ? AND d.deleted_at IS NULL
		ORDER BY d.drill_end_date ASC, d.id ASC`, t.drills, t.activities, t.foreignKey))

	op := "fetch " + string(mode) + " drills"
	rows, err := s.db.QueryContext(ctx, query, studentID, model.ActiveDrillStatus)
	if err != nil {
		return nil, &apperr.DataSourceError{Op: op, Err: err}
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.DrillRecord
	for rows.Next() {
		rec, err := scanDrill(rows)
		if err != nil {
			return nil, &apperr.DataSourceError{Op: op, Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &apperr.DataSourceError{Op: op, Err: err}
	}
	return records, nil
}

func scanDrill(rows *sql.Rows) (model.DrillRecord, error) {
	var (
		rec                                model.DrillRecord
		drillType, drillID, status         sql.NullInt64
		typeName                           sql.NullString
		wpm, accuracy                      sql.NullFloat64
		actualN, correctN, wrongN, missedN sql.NullInt64
		actualK, correctK, wrongK, missedK sql.NullString
		startedAt, endedAt                 nullTime
	)
	if err := rows.Scan(&rec.ID, &drillType, &typeName, &drillID,
		&wpm, &accuracy,
		&actualN, &correctN, &wrongN, &missedN,
		&actualK, &correctK, &wrongK, &missedK,
		&startedAt, &endedAt, &status); err != nil {
		return rec, err
	}
	rec.DrillTypeID = drillType.Int64
	rec.DrillTypeName = typeName.String
	rec.DrillID = drillID.Int64
	if wpm.Valid {
		rec.WordsPerMinute = model.Float(wpm.Float64)
	}
	if accuracy.Valid {
		rec.Accuracy = model.Float(accuracy.Float64)
	}
	rec.ActualKeyCount = int(actualN.Int64)
	rec.CorrectKeyCount = int(correctN.Int64)
	rec.WrongKeyCount = int(wrongN.Int64)
	rec.MissedKeyCount = int(missedN.Int64)
	rec.ActualKeys = ParseKeys(actualK.String)
	rec.CorrectKeys = ParseKeys(correctK.String)
	rec.WrongKeys = ParseKeys(wrongK.String)
	rec.MissedKeys = ParseKeys(missedK.String)
	rec.DrillStartDate = startedAt.Time
	rec.DrillEndDate = endedAt.Time
	rec.ActivityDrillStatus = int(status.Int64)
	return rec, nil
}
