package stats

import (
	"testing"
	"time"

	"github.com/verte-zerg/drillreport/internal/model"
)

func TestValidateRecord(t *testing.T) {
	valid := drill(1, model.Float(30), time.Minute)
	if err := ValidateRecord(valid); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}

	noWPM := valid
	noWPM.WordsPerMinute = nil
	noWPM.Accuracy = nil
	if err := ValidateRecord(noWPM); err != nil {
		t.Fatalf("expected nil metrics to be valid, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(r *model.DrillRecord)
		field  string
	}{
		{"negative count", func(r *model.DrillRecord) { r.WrongKeyCount = -1 }, "WrongKeyCount"},
		{"negative wpm", func(r *model.DrillRecord) { r.WordsPerMinute = model.Float(-3) }, "WordsPerMinute"},
		{"accuracy above 100", func(r *model.DrillRecord) { r.Accuracy = model.Float(100.5) }, "Accuracy"},
		{"end before start", func(r *model.DrillRecord) { r.DrillEndDate = r.DrillStartDate.Add(-time.Second) }, "DrillEndDate"},
	}
	for _, tc := range cases {
		r := valid
		tc.mutate(&r)
		err := ValidateRecord(r)
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		if err.Field != tc.field {
			t.Fatalf("%s: expected field %s, got %s", tc.name, tc.field, err.Field)
		}
		if err.RecordID != 1 {
			t.Fatalf("%s: expected record id 1, got %d", tc.name, err.RecordID)
		}
	}
}

func TestFilterValidSkipsMalformed(t *testing.T) {
	good := drill(1, model.Float(30), time.Minute)
	bad := drill(2, model.Float(30), 2*time.Minute)
	bad.MissedKeyCount = -4
	also := drill(3, nil, 3*time.Minute)

	valid, rejected := FilterValid([]model.DrillRecord{good, bad, also})
	if len(valid) != 2 || valid[0].ID != 1 || valid[1].ID != 3 {
		t.Fatalf("unexpected valid records: %+v", valid)
	}
	if len(rejected) != 1 || rejected[0].RecordID != 2 {
		t.Fatalf("unexpected rejected records: %+v", rejected)
	}
	if rejected[0].Reason != "must be >= 0" {
		t.Fatalf("unexpected reason: %q", rejected[0].Reason)
	}
}

func TestValidateRecordAllowsMissingDates(t *testing.T) {
	r := model.DrillRecord{ID: 9, DrillStartDate: baseTime}
	if err := ValidateRecord(r); err != nil {
		t.Fatalf("expected missing end date to be accepted, got %v", err)
	}
}
