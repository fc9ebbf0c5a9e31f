package stats

import (
	"reflect"
	"testing"

	"github.com/verte-zerg/drillreport/internal/model"
)

func TestRankWeakKeysOrdersByFrequencyThenFirstSeen(t *testing.T) {
	records := []model.DrillRecord{
		{WrongKeys: []string{"b", "a"}, MissedKeys: []string{"c"}},
		{WrongKeys: []string{"a"}, MissedKeys: []string{"b"}},
		{MissedKeys: []string{"a", "b"}},
	}
	got := RankWeakKeys(records, WeakKeyLimit)
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRankWeakKeysLimit(t *testing.T) {
	records := []model.DrillRecord{
		{WrongKeys: []string{"q", "w", "e", "r", "t"}, MissedKeys: []string{"t"}},
	}
	got := RankWeakKeys(records, 4)
	want := []string{"t", "q", "w", "e"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRankWeakKeysEmpty(t *testing.T) {
	records := []model.DrillRecord{{WrongKeys: []string{""}}, {}}
	if got := RankWeakKeys(records, 4); got != nil {
		t.Fatalf("expected no keys, got %v", got)
	}
	s := ComputeAggregate(records)
	if len(s.WeakestKeys) != 0 || s.WeakestKeyString() != "" {
		t.Fatalf("expected empty weakest keys, got %v", s.WeakestKeys)
	}
}

func TestSpaceKeyRanksAndMatchesSections(t *testing.T) {
	records := []model.DrillRecord{
		{DrillID: 1, WrongKeys: []string{" ", "a"}, MissedKeys: []string{"  "}},
		{DrillID: 2, WrongKeys: []string{" a "}},
	}
	got := RankWeakKeys(records, WeakKeyLimit)
	want := []string{" ", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if s := ComputeAggregate(records); s.WeakestKeyString() != "<space> a" {
		t.Fatalf("unexpected weakest key string %q", s.WeakestKeyString())
	}
	section := AggregateSection(records)
	if !reflect.DeepEqual(section.WrongKeys, []string{" ", "a"}) || !reflect.DeepEqual(section.MissedKeys, []string{" "}) {
		t.Fatalf("expected sections to share key normalization, got wrong=%q missed=%q", section.WrongKeys, section.MissedKeys)
	}
}
