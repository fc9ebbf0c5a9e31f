package store

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/drillreport/internal/model"
)

type demoDrill struct {
	typeIdx  int
	drillID  int64
	wpm      float64
	accuracy float64
	actual   []string
	wrong    []string
	missed   []string
}

var demoDrills = map[model.Mode][]demoDrill{
	model.ModeExercise: {
		{typeIdx: 0, drillID: 1, wpm: 24.5, accuracy: 88, actual: []string{"a", "s", "d", "f"}, wrong: []string{"s"}, missed: []string{"f"}},
		{typeIdx: 0, drillID: 1, wpm: 29.8, accuracy: 91.5, actual: []string{"a", "s", "d", "f"}, wrong: []string{"d"}},
		{typeIdx: 1, drillID: 2, wpm: 31.2, accuracy: 93, actual: []string{"q", "w", "e", "r"}, wrong: []string{"q", "w"}, missed: []string{"q"}},
	},
	model.ModePool: {
		{typeIdx: 1, drillID: 7, wpm: 35.4, accuracy: 96.2, actual: []string{"j", "k", "l", ";"}, missed: []string{";"}},
		{typeIdx: 0, drillID: 8, wpm: 38.9, accuracy: 94.1, actual: []string{"g", "h"}, wrong: []string{"h"}},
	},
}

// SeedDemo inserts a sample student with drills in both modes and returns the student id.
func (s *Store) SeedDemo(ctx context.Context, now time.Time) (int64, error) {
	studentID, err := s.InsertStudent(ctx, "Ada", "Lovelace")
	if err != nil {
		return 0, fmt.Errorf("seed student: %w", err)
	}
	var typeIDs []int64
	for _, name := range []string{"Home Row", "Top Row"} {
		id, err := s.InsertDrillType(ctx, name)
		if err != nil {
			return 0, fmt.Errorf("seed drill type: %w", err)
		}
		typeIDs = append(typeIDs, id)
	}

	start := now.Add(-48 * time.Hour)
	for _, mode := range model.Modes {
		activityID, err := s.InsertActivity(ctx, mode, studentID)
		if err != nil {
			return 0, fmt.Errorf("seed %s activity: %w", mode, err)
		}
		for i, d := range demoDrills[mode] {
			began := start.Add(time.Duration(i) * 6 * time.Hour)
			wrongN := len(d.wrong) * 2
			missedN := len(d.missed)
			actualN := 60 + i*10
			rec := model.DrillRecord{
				DrillTypeID:         typeIDs[d.typeIdx],
				DrillID:             d.drillID,
				WordsPerMinute:      model.Float(d.wpm),
				Accuracy:            model.Float(d.accuracy),
				ActualKeyCount:      actualN,
				CorrectKeyCount:     actualN - wrongN - missedN,
				WrongKeyCount:       wrongN,
				MissedKeyCount:      missedN,
				ActualKeys:          d.actual,
				CorrectKeys:         d.actual,
				WrongKeys:           d.wrong,
				MissedKeys:          d.missed,
				DrillStartDate:      began,
				DrillEndDate:        began.Add(3 * time.Minute),
				ActivityDrillStatus: model.ActiveDrillStatus,
			}
			if _, err := s.InsertDrill(ctx, mode, activityID, rec); err != nil {
				return 0, fmt.Errorf("seed %s drill: %w", mode, err)
			}
		}
	}
	return studentID, nil
}
