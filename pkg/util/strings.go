package util

import "strings"

func ContainsString(s []string, str string) bool {
	for _, v := range s {
		if v == str {
			return true
		}
	}

	return false
}

// NormaliseKey lower-cases and trims a free-text value for table lookups
func NormaliseKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
