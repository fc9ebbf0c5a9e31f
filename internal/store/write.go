package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/verte-zerg/drillreport/internal/model"
)

// insert runs an INSERT and returns the new row id.
func (s *Store) insert(ctx context.Context, query string, args ...any) (int64, error) {
	if s.driver == DriverPostgres {
		var id int64
		err := s.db.QueryRowContext(ctx, s.rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertStudent creates a user and the student row that references it.
func (s *Store) InsertStudent(ctx context.Context, firstName, lastName string) (int64, error) {
	userID, err := s.insert(ctx, `INSERT INTO users (first_name, last_name) VALUES (?, ?)`, firstName, lastName)
	if err != nil {
		return 0, err
	}
	return s.insert(ctx, `INSERT INTO students (userId) VALUES (?)`, userID)
}

// InsertDrillType stores a drill type name.
func (s *Store) InsertDrillType(ctx context.Context, name string) (int64, error) {
	return s.insert(ctx, `INSERT INTO drill_types (drill_type) VALUES (?)`, name)
}

// InsertActivity creates an activity for the student in the given mode.
func (s *Store) InsertActivity(ctx context.Context, mode model.Mode, studentID int64) (int64, error) {
	t := tablesFor(mode)
	return s.insert(ctx, `INSERT INTO `+t.activities+` (student_id) VALUES (?)`, studentID)
}

// InsertDrill stores a drill attempt under an activity.
func (s *Store) InsertDrill(ctx context.Context, mode model.Mode, activityID int64, rec model.DrillRecord) (int64, error) {
	keys := make([]string, 4)
	for i, list := range [][]string{rec.ActualKeys, rec.CorrectKeys, rec.WrongKeys, rec.MissedKeys} {
		encoded, err := EncodeKeys(list)
		if err != nil {
			return 0, err
		}
		keys[i] = encoded
	}
	t := tablesFor(mode)
	return s.insert(ctx,
		`INSERT INTO `+t.drills+` (`+t.foreignKey+`, drill_type, drill_id, word_per_min, accuracy,
			actual_key_count, correct_key_count, wrong_key_count, missed_key_count,
			actual_key, correct_key, wrong_key, missed_key,
			drill_start_date, drill_end_date, activity_drill_status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		activityID,
		nullInt(rec.DrillTypeID),
		nullInt(rec.DrillID),
		nullFloat(rec.WordsPerMinute),
		nullFloat(rec.Accuracy),
		rec.ActualKeyCount,
		rec.CorrectKeyCount,
		rec.WrongKeyCount,
		rec.MissedKeyCount,
		keys[0], keys[1], keys[2], keys[3],
		formatTime(rec.DrillStartDate),
		formatTime(rec.DrillEndDate),
		rec.ActivityDrillStatus,
	)
}

// SoftDeleteDrill marks a drill as deleted so it is excluded from reports.
func (s *Store) SoftDeleteDrill(ctx context.Context, mode model.Mode, drillRowID int64, at time.Time) error {
	t := tablesFor(mode)
	_, err := s.db.ExecContext(ctx, s.rebind(`UPDATE `+t.drills+` SET deleted_at = ? WHERE id = ?`), formatTime(at), drillRowID)
	return err
}

func nullInt(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
