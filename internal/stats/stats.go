// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/drillreport/internal/model"
)

// WeakKeyLimit is the number of ranked weakest keys kept in a summary.
const WeakKeyLimit = 4

const (
	advancedWPM          = 40
	advancedAccuracy     = 95
	intermediateWPM      = 30
	intermediateAccuracy = 85
)

// Summary aggregates a set of drill records for one student and mode.
type Summary struct {
	Latest     model.DrillRecord
	HighestWPM model.DrillRecord
	LowestWPM  model.DrillRecord

	AvgWPM      float64
	AvgAccuracy float64
	TotalDrills int

	TotalKeys   int
	CorrectKeys int
	WrongKeys   int
	MissedKeys  int

	WeakestKeys []string
	SkillLevel  model.SkillLevel
}

// WeakestKeyString joins the ranked weakest keys with spaces. The space key is
// shown as <space>.
func (s *Summary) WeakestKeyString() string {
	if s == nil {
		return ""
	}
	return strings.Join(keyLabels(s.WeakestKeys), " ")
}

// ComputeAggregate summarizes the records. It returns nil for empty input.
//
// Missing WPM and accuracy values count as 0 in the averages while the divisor
// stays the full record count. The latest record is the one with the greatest
// end date regardless of input order.
func ComputeAggregate(records []model.DrillRecord) *Summary {
	if len(records) == 0 {
		return nil
	}

	latest, highest, lowest := 0, 0, 0
	highVal := records[0].WPM()
	lowVal := lowWPMValue(records[0])

	s := &Summary{TotalDrills: len(records)}
	var sumWPM, sumAcc float64
	for i, r := range records {
		if i > 0 {
			if !r.DrillEndDate.Before(records[latest].DrillEndDate) {
				latest = i
			}
			if v := r.WPM(); v > highVal {
				highest, highVal = i, v
			}
			if v := lowWPMValue(r); v < lowVal {
				lowest, lowVal = i, v
			}
		}
		sumWPM += r.WPM()
		sumAcc += r.AccuracyPct()
		s.TotalKeys += r.ActualKeyCount
		s.CorrectKeys += r.CorrectKeyCount
		s.WrongKeys += r.WrongKeyCount
		s.MissedKeys += r.MissedKeyCount
	}

	count := float64(len(records))
	s.Latest = records[latest]
	s.HighestWPM = records[highest]
	s.LowestWPM = records[lowest]
	s.AvgWPM = sumWPM / count
	s.AvgAccuracy = sumAcc / count
	s.WeakestKeys = RankWeakKeys(records, WeakKeyLimit)
	s.SkillLevel = ClassifySkillLevel(s.AvgWPM, s.AvgAccuracy)
	return s
}

// ClassifySkillLevel maps WPM and accuracy to a skill tier. Boundary values
// belong to the higher tier.
func ClassifySkillLevel(wpm, accuracy float64) model.SkillLevel {
	switch {
	case wpm >= advancedWPM && accuracy >= advancedAccuracy:
		return model.SkillAdvanced
	case wpm >= intermediateWPM && accuracy >= intermediateAccuracy:
		return model.SkillIntermediate
	default:
		return model.SkillBeginner
	}
}

// lowWPMValue substitutes +Inf for a missing WPM so it never wins the minimum.
func lowWPMValue(r model.DrillRecord) float64 {
	if r.WordsPerMinute == nil {
		return math.Inf(1)
	}
	return *r.WordsPerMinute
}
