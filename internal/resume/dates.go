package resume

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reDisplayDate = regexp.MustCompile(`^\d{2}/\d{4}$`)
	reStorageDate = regexp.MustCompile(`^\d{4}-\d{2}$`)
	reNonDigit    = regexp.MustCompile(`\D`)
)

// FormatMonthYear normalizes free typing into MM/YYYY as the user enters a
// date: digits only, capped at six, slash inserted after the month.
func FormatMonthYear(value string) string {
	numbers := reNonDigit.ReplaceAllString(value, "")
	if len(numbers) > 6 {
		numbers = numbers[:6]
	}
	if len(numbers) <= 2 {
		return numbers
	}
	return numbers[:2] + "/" + numbers[2:]
}

func ValidateMonthYear(value string) bool {
	if len(value) < 7 {
		return false
	}
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 1900 || year > 2099 {
		return false
	}
	return true
}

// ToDisplayDate converts a stored YYYY-MM date to MM/YYYY. Values already in
// display form, and anything unrecognized, pass through unchanged so the
// conversion never destroys data.
func ToDisplayDate(s string) string {
	if s == "" || reDisplayDate.MatchString(s) {
		return s
	}
	if reStorageDate.MatchString(s) {
		return s[5:7] + "/" + s[:4]
	}
	return s
}

// ToStorageDate is the inverse of ToDisplayDate: MM/YYYY → YYYY-MM.
func ToStorageDate(s string) string {
	if s == "" || reStorageDate.MatchString(s) {
		return s
	}
	if reDisplayDate.MatchString(s) {
		return s[3:] + "-" + s[:2]
	}
	return s
}
