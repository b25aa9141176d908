package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// idSortKey extracts the numeric value from an ID for sorting.
// For IDs like "1", "T2", "task10", it returns 1, 2, 10 respectively.
// If the ID doesn't end in a number, it returns -1.
func idSortKey(id string) int64 {
	i := 0
	for i < len(id) && (id[i] < '0' || id[i] > '9') {
		i++
	}
	if i == len(id) {
		return -1
	}
	num, err := strconv.ParseInt(id[i:], 10, 64)
	if err != nil {
		return -1
	}
	return num
}

// CompareIDs returns true if id1 should come before id2 in numeric-aware ordering.
// If both IDs have numeric parts, compares numerically. Otherwise falls back to
// lexicographic comparison.
func CompareIDs(id1, id2 string) bool {
	k1 := idSortKey(id1)
	k2 := idSortKey(id2)
	if k1 >= 0 && k2 >= 0 && k1 != k2 {
		return k1 < k2
	}
	return id1 < id2
}

// IsIntID reports whether id is a non-empty run of decimal digits.
func IsIntID(id string) bool {
	if id == "" || len(id) > 19 {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// SplitIDs splits a list of task ids separated by commas, whitespace, or
// both. Empty entries are dropped.
func SplitIDs(list string) []string {
	return strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
