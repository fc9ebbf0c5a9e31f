package stats

import (
	"sort"

	"github.com/verte-zerg/drillreport/internal/model"
)

// SectionSummary totals the key counts and key sets of a group of drills.
type SectionSummary struct {
	Drills int `json:"drills"`

	ActualKeyCount  int `json:"actual_key_count"`
	WrongKeyCount   int `json:"wrong_key_count"`
	MissedKeyCount  int `json:"missed_key_count"`
	CorrectKeyCount int `json:"correct_key_count"`
	// TotalKeyCount is the sum of the four counts above.
	TotalKeyCount int `json:"total_key_count"`

	ActualKeys  []string `json:"actual_keys"`
	WrongKeys   []string `json:"wrong_keys"`
	MissedKeys  []string `json:"missed_keys"`
	CorrectKeys []string `json:"correct_keys"`
}

// SplitLatestPast separates the most recent attempt of every drill from the
// earlier attempts. Drills are identified by drill type and drill id. Both
// results are ordered by end date.
func SplitLatestPast(records []model.DrillRecord) (latest, past []model.DrillRecord) {
	sorted := sortByEndDate(records)
	lastIdx := make(map[model.DrillKey]int, len(sorted))
	for i, r := range sorted {
		lastIdx[r.Key()] = i
	}
	for i, r := range sorted {
		if lastIdx[r.Key()] == i {
			latest = append(latest, r)
		} else {
			past = append(past, r)
		}
	}
	return latest, past
}

// AggregateSection sums counts and unions the observed keys of the records.
func AggregateSection(records []model.DrillRecord) SectionSummary {
	var out SectionSummary
	actual := map[string]struct{}{}
	wrong := map[string]struct{}{}
	missed := map[string]struct{}{}
	correct := map[string]struct{}{}
	for _, r := range records {
		out.Drills++
		out.ActualKeyCount += r.ActualKeyCount
		out.WrongKeyCount += r.WrongKeyCount
		out.MissedKeyCount += r.MissedKeyCount
		out.CorrectKeyCount += r.CorrectKeyCount
		addKeys(actual, r.ActualKeys)
		addKeys(wrong, r.WrongKeys)
		addKeys(missed, r.MissedKeys)
		addKeys(correct, r.CorrectKeys)
	}
	out.TotalKeyCount = out.ActualKeyCount + out.WrongKeyCount + out.MissedKeyCount + out.CorrectKeyCount
	out.ActualKeys = sortedKeys(actual)
	out.WrongKeys = sortedKeys(wrong)
	out.MissedKeys = sortedKeys(missed)
	out.CorrectKeys = sortedKeys(correct)
	return out
}

func sortByEndDate(records []model.DrillRecord) []model.DrillRecord {
	sorted := make([]model.DrillRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DrillEndDate.Before(sorted[j].DrillEndDate)
	})
	return sorted
}

func addKeys(set map[string]struct{}, keys []string) {
	for _, k := range keys {
		if k, ok := normalizeKey(k); ok {
			set[k] = struct{}{}
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
