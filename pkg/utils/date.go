package utils

import (
	"fmt"
	"time"
)

const questDateLayout = "2006-01-02"

// Today returns the current calendar day as a YYYY-MM-DD string.
func Today() string {
	return time.Now().Format(questDateLayout)
}

// ValidQuestDate reports whether s is a real calendar day in
// YYYY-MM-DD form. "2024-13-01" and "2024-1-1" are both rejected.
func ValidQuestDate(s string) bool {
	if len(s) != len(questDateLayout) {
		return false
	}
	_, err := time.Parse(questDateLayout, s)
	return err == nil
}

// MonthRange returns the inclusive [first, last] day strings of the
// given month, using the true calendar month end.
func MonthRange(year, month int) (string, string, bool) {
	if year < 1 || month < 1 || month > 12 {
		return "", "", false
	}
	first := fmt.Sprintf("%04d-%02d-01", year, month)
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	last := fmt.Sprintf("%04d-%02d-%02d", year, month, lastDay)
	return first, last, true
}
