package utils

import "regexp"

var leadingYearRegex = regexp.MustCompile(`^(\d{4})`)

// ExtractYear returns the leading 4-digit year of a date like "2021-10-22".
// Returns "" when the date does not start with one.
func ExtractYear(date string) string {
	matches := leadingYearRegex.FindStringSubmatch(date)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}
