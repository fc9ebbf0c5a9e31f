package stats

import (
	"reflect"
	"testing"
	"time"

	"github.com/verte-zerg/drillreport/internal/model"
)

func TestSplitLatestPast(t *testing.T) {
	t2 := model.DrillRecord{ID: 2, DrillTypeID: 1, DrillID: 10, DrillEndDate: baseTime.Add(2 * time.Hour)}
	t1 := model.DrillRecord{ID: 1, DrillTypeID: 1, DrillID: 10, DrillEndDate: baseTime.Add(time.Hour)}
	other := model.DrillRecord{ID: 3, DrillTypeID: 2, DrillID: 10, DrillEndDate: baseTime}

	latest, past := SplitLatestPast([]model.DrillRecord{t2, t1, other})
	if len(latest) != 2 || len(past) != 1 {
		t.Fatalf("expected 2 latest and 1 past, got %d and %d", len(latest), len(past))
	}
	if latest[0].ID != 3 || latest[1].ID != 2 {
		t.Fatalf("unexpected latest records: %d, %d", latest[0].ID, latest[1].ID)
	}
	if past[0].ID != 1 {
		t.Fatalf("expected record 1 in past, got %d", past[0].ID)
	}
}

func TestSplitLatestPastTieTakesLaterInput(t *testing.T) {
	a := model.DrillRecord{ID: 1, DrillTypeID: 1, DrillID: 1, DrillEndDate: baseTime}
	b := model.DrillRecord{ID: 2, DrillTypeID: 1, DrillID: 1, DrillEndDate: baseTime}
	latest, past := SplitLatestPast([]model.DrillRecord{a, b})
	if len(latest) != 1 || latest[0].ID != 2 {
		t.Fatalf("expected record 2 as latest, got %+v", latest)
	}
	if len(past) != 1 || past[0].ID != 1 {
		t.Fatalf("expected record 1 as past, got %+v", past)
	}
}

func TestAggregateSection(t *testing.T) {
	records := []model.DrillRecord{
		{
			ActualKeyCount: 10, WrongKeyCount: 2, MissedKeyCount: 1, CorrectKeyCount: 7,
			ActualKeys: []string{"f", "j"}, WrongKeys: []string{"j"}, MissedKeys: []string{"k"}, CorrectKeys: []string{"f"},
		},
		{
			ActualKeyCount: 5, WrongKeyCount: 1, MissedKeyCount: 0, CorrectKeyCount: 4,
			ActualKeys: []string{"d", "f"}, WrongKeys: []string{"d"}, CorrectKeys: []string{"f", "d"},
		},
	}
	got := AggregateSection(records)
	if got.Drills != 2 {
		t.Fatalf("expected 2 drills, got %d", got.Drills)
	}
	if got.ActualKeyCount != 15 || got.WrongKeyCount != 3 || got.MissedKeyCount != 1 || got.CorrectKeyCount != 11 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.TotalKeyCount != 30 {
		t.Fatalf("expected total 30, got %d", got.TotalKeyCount)
	}
	if !reflect.DeepEqual(got.ActualKeys, []string{"d", "f", "j"}) {
		t.Fatalf("unexpected actual keys: %v", got.ActualKeys)
	}
	if !reflect.DeepEqual(got.WrongKeys, []string{"d", "j"}) {
		t.Fatalf("unexpected wrong keys: %v", got.WrongKeys)
	}
	if !reflect.DeepEqual(got.CorrectKeys, []string{"d", "f"}) {
		t.Fatalf("unexpected correct keys: %v", got.CorrectKeys)
	}
}

func TestAggregateSectionEmpty(t *testing.T) {
	got := AggregateSection(nil)
	if got.Drills != 0 || got.TotalKeyCount != 0 || got.ActualKeys != nil {
		t.Fatalf("expected zero section, got %+v", got)
	}
}
