package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateOnly is the canonical storage format for policy dates.
const DateOnly = "2006-01-02"

// Layouts seen across the legacy spreadsheet/HTML exports, tried in
// order. Day-first before month-first: the source data is day-first.
var legacyLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2/1/2006",
	"02.01.2006",
	"2 Jan 2006",
	"02 January 2006",
	"Jan 2, 2006",
	"2006/01/02",
}

// excelEpoch is day 0 of Excel's 1900 date system (which counts the
// phantom 1900-02-29, hence Dec 30 and not Dec 31).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseFlexibleDate standardizes one legacy date cell. It accepts the
// known textual layouts plus raw Excel serial numbers, and returns an
// error naming the input when nothing matches.
func ParseFlexibleDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range legacyLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	// Excel serial date (e.g. "45292" = 2024-01-01)
	if serial, err := strconv.Atoi(s); err == nil && serial > 20000 && serial < 80000 {
		return excelEpoch.AddDate(0, 0, serial), nil
	}

	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// FormatDate renders a nullable date for storage; nil becomes "".
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateOnly)
}
