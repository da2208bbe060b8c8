package util

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// MustAnyToInt coerces any value to an int, returning 0 when it does not
// parse as one.
func MustAnyToInt(v interface{}) int {
	str := fmt.Sprintf("%v", v)
	if i, err := strconv.Atoi(str); err == nil {
		return i
	}
	return 0
}

// IsNumeric reports whether s is a non-empty run of decimal digits.
func IsNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// Str2List splits a separated string into trimmed, de-duplicated, non-empty
// elements, preserving first-seen order.
func Str2List(str string, sep string) []string {
	list := make([]string, 0)

	if str == "" {
		return list
	}

	listMap := make(map[string]bool)
	for _, elem := range strings.Split(str, sep) {
		elem = strings.TrimSpace(elem)
		if len(elem) == 0 {
			continue
		}
		if _, ok := listMap[elem]; ok {
			continue
		}
		listMap[elem] = true
		list = append(list, elem)
	}

	return list
}
