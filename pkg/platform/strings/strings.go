// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// SplitList splits a comma separated value, trimming each element and
// dropping empties and repeats. Order is preserved.
//
// Example:
//
//	SplitList(" k1:9092, k2:9092,,k1:9092 ")
//	// Returns: []string{"k1:9092", "k2:9092"}
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	seen := make(map[string]struct{}, len(parts))
	var result []string

	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}
