package store

import (
	"strings"

	"github.com/goccy/go-json"
)

// ParseKeys decodes a stored key column. It accepts a JSON array, a comma separated
// list or a whitespace separated list. null, None and empty values yield no keys.
func ParseKeys(raw string) []string {
	value := strings.TrimSpace(raw)
	switch value {
	case "", "null", "None", "[]":
		return nil
	}
	if strings.HasPrefix(value, "[") {
		var decoded []string
		if err := json.Unmarshal([]byte(value), &decoded); err == nil {
			return nonEmpty(decoded)
		}
	}

	cleaned := strings.NewReplacer("[", "", "]", "", `"`, "").Replace(value)
	var parts []string
	if strings.Contains(cleaned, ",") {
		parts = strings.Split(cleaned, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
	} else {
		parts = strings.Fields(cleaned)
	}
	return nonEmpty(parts)
}

// EncodeKeys stores keys as a JSON array.
func EncodeKeys(keys []string) (string, error) {
	if len(keys) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(keys)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
