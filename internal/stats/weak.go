package stats

import (
	"sort"
	"strings"

	"github.com/verte-zerg/drillreport/internal/model"
)

// RankWeakKeys returns the n most frequent wrong or missed keys across records.
// Keys with equal counts keep the order in which they were first seen.
func RankWeakKeys(records []model.DrillRecord, n int) []string {
	if n <= 0 || len(records) == 0 {
		return nil
	}
	counts := map[string]int{}
	var order []string
	add := func(keys []string) {
		for _, key := range keys {
			key, ok := normalizeKey(key)
			if !ok {
				continue
			}
			if _, ok := counts[key]; !ok {
				order = append(order, key)
			}
			counts[key]++
		}
	}
	for _, r := range records {
		add(r.WrongKeys)
		add(r.MissedKeys)
	}
	if len(order) == 0 {
		return nil
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if n > len(order) {
		n = len(order)
	}
	out := make([]string, n)
	copy(out, order[:n])
	return out
}

// normalizeKey trims a stored key token. A token made only of whitespace is the
// space bar and becomes " ". Empty tokens are rejected.
func normalizeKey(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	if trimmed := strings.TrimSpace(key); trimmed != "" {
		return trimmed, true
	}
	return " ", true
}

func keyLabel(key string) string {
	if key == " " {
		return "<space>"
	}
	return key
}

func keyLabels(keys []string) []string {
	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = keyLabel(k)
	}
	return labels
}
