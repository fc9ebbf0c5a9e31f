package store

import (
	"context"
	"fmt"

	"github.com/verte-zerg/drillreport/internal/model"
)

func drillTableDDL(table, parent, fk string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY,
			%s INTEGER NOT NULL REFERENCES %s(id),
			drill_type INTEGER,
			drill_id INTEGER,
			word_per_min REAL,
			accuracy REAL,
			actual_key_count INTEGER,
			correct_key_count INTEGER,
			wrong_key_count INTEGER,
			missed_key_count INTEGER,
			actual_key TEXT,
			correct_key TEXT,
			wrong_key TEXT,
			missed_key TEXT,
			drill_start_date TEXT,
			drill_end_date TEXT,
			activity_drill_status INTEGER NOT NULL DEFAULT 0,
			deleted_at TEXT
		);`, table, fk, parent)
}

// Migrate creates the SQLite schema. Other drivers are expected to point at an existing database.
func (s *Store) Migrate(ctx context.Context) error {
	if s.driver != DriverSQLite {
		return fmt.Errorf("migrate: unsupported for driver %s", s.driver)
	}
	exercise := tablesFor(model.ModeExercise)
	pool := tablesFor(model.ModePool)
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			first_name TEXT,
			last_name TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS students (
			id INTEGER PRIMARY KEY,
			userId INTEGER NOT NULL REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS drill_types (
			id INTEGER PRIMARY KEY,
			drill_type TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS student_activities (
			id INTEGER PRIMARY KEY,
			student_id INTEGER NOT NULL REFERENCES students(id)
		);`,
		`CREATE TABLE IF NOT EXISTS student_pool_activities (
			id INTEGER PRIMARY KEY,
			student_id INTEGER NOT NULL REFERENCES students(id)
		);`,
		drillTableDDL(exercise.drills, exercise.activities, exercise.foreignKey),
		drillTableDDL(pool.drills, pool.activities, pool.foreignKey),
		`CREATE INDEX IF NOT EXISTS idx_student_activities_student ON student_activities(student_id);`,
		`CREATE INDEX IF NOT EXISTS idx_student_pool_activities_student ON student_pool_activities(student_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
