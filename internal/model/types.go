// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// ActiveDrillStatus marks a completed drill eligible for reporting.
const ActiveDrillStatus = 1

// Mode selects one of the two parallel practice categories.
type Mode string

const (
	ModeExercise Mode = "exercise"
	ModePool     Mode = "pool"
)

// Modes lists every mode in report order.
var Modes = []Mode{ModeExercise, ModePool}

// Label returns the display name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeExercise:
		return "Exercise"
	case ModePool:
		return "Pool"
	default:
		return string(m)
	}
}

// ParseMode maps a user supplied mode name to a Mode.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeExercise:
		return ModeExercise, nil
	case ModePool:
		return ModePool, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected exercise or pool)", value)
	}
}

// SkillLevel is the three-tier classification derived from WPM and accuracy.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
)

// DrillRecord is one completed typing drill attempt.
type DrillRecord struct {
	ID            int64
	DrillTypeID   int64
	DrillTypeName string
	DrillID       int64

	WordsPerMinute *float64 `validate:"omitnil,gte=0"`
	Accuracy       *float64 `validate:"omitnil,gte=0,lte=100"`

	ActualKeyCount  int `validate:"gte=0"`
	CorrectKeyCount int `validate:"gte=0"`
	WrongKeyCount   int `validate:"gte=0"`
	MissedKeyCount  int `validate:"gte=0"`

	ActualKeys  []string
	CorrectKeys []string
	WrongKeys   []string
	MissedKeys  []string

	DrillStartDate time.Time
	DrillEndDate   time.Time `validate:"omitempty,gtefield=DrillStartDate"`

	ActivityDrillStatus int
}

// WPM returns the words per minute, treating a missing value as 0.
func (r DrillRecord) WPM() float64 {
	if r.WordsPerMinute == nil {
		return 0
	}
	return *r.WordsPerMinute
}

// AccuracyPct returns the accuracy percentage, treating a missing value as 0.
func (r DrillRecord) AccuracyPct() float64 {
	if r.Accuracy == nil {
		return 0
	}
	return *r.Accuracy
}

// DrillName returns the drill type name with id-based fallbacks.
func (r DrillRecord) DrillName() string {
	if name := strings.TrimSpace(r.DrillTypeName); name != "" {
		return name
	}
	if r.DrillTypeID == 0 {
		return "Unknown Drill"
	}
	return fmt.Sprintf("Drill Type %d", r.DrillTypeID)
}

// DrillKey identifies a specific drill for latest/past grouping.
type DrillKey struct {
	DrillTypeID int64
	DrillID     int64
}

// Key returns the grouping key of the record.
func (r DrillRecord) Key() DrillKey {
	return DrillKey{DrillTypeID: r.DrillTypeID, DrillID: r.DrillID}
}

// Float returns a pointer to v, used for nullable record fields.
func Float(v float64) *float64 {
	return &v
}
