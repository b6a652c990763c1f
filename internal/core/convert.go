package core

// convert.go turns raw input cells into null-aware values.
//
// Exports of medical record tables mark missing values in many ways: an
// empty cell, "NA", "NaN", "null", "<NA>" or "NaT". All of them become an
// invalid (null) pgtype value. Timestamps come in whatever format the
// source system wrote, so they are parsed with dateparse.

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jackc/pgx/v5/pgtype"
)

// nullTokens are cell contents treated as missing (compared lowercase).
var nullTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
	"<na>": true,
	"nat":  true,
}

// fallbackTimeLayouts are tried when dateparse cannot read a timestamp.
var fallbackTimeLayouts = []string{
	"02-Jan-2006 15:04:05",
	"02-Jan-2006",
	"2006-01-02T15:04:05.999999999",
}

// IsNullCell reports whether a cleaned cell denotes a missing value.
func IsNullCell(s string) bool {
	return nullTokens[strings.ToLower(strings.TrimSpace(s))]
}

// ToPgText converts a cell to pgtype.Text.
// Returns invalid for empty cells and null tokens.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if IsNullCell(s) {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToPgFloat8 converts a cell to pgtype.Float8.
// Thousands separators are not accepted; "1,5" is not a number.
func ToPgFloat8(s string) pgtype.Float8 {
	s = strings.TrimSpace(s)
	if IsNullCell(s) {
		return pgtype.Float8{Valid: false}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return pgtype.Float8{Valid: false}
	}
	return pgtype.Float8{Float64: f, Valid: true}
}

// ToPgTimestamp converts a cell to pgtype.Timestamp.
// Returns invalid for empty cells, null tokens and unparseable input.
func ToPgTimestamp(s string) pgtype.Timestamp {
	t, ok := parseTime(s)
	if !ok {
		return pgtype.Timestamp{Valid: false}
	}
	return pgtype.Timestamp{Time: t, Valid: true}
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if IsNullCell(s) {
		return time.Time{}, false
	}
	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return t.UTC(), true
	}
	for _, layout := range fallbackTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Keys are lowercased for case-insensitive matching; the first occurrence
// of a repeated name wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// surrounding whitespace, an Excel formula prefix (="...") and surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	}

	return strings.Trim(s, `"'`)
}

// Cell returns the cleaned cell for a column, or "" when the column is
// absent or the row is short.
func Cell(row []string, idx HeaderIndex, name string) string {
	pos, ok := idx[strings.ToLower(name)]
	if !ok || pos >= len(row) {
		return ""
	}
	return CleanCell(row[pos])
}

// ParseValue converts a free-form cell into a Value: null tokens become
// null, numbers become numeric, anything else is text.
func ParseValue(s string) Value {
	s = CleanCell(s)
	if IsNullCell(s) {
		return NullValue()
	}
	if f := ToPgFloat8(s); f.Valid {
		return NumericValue(f.Float64)
	}
	return TextValue(s)
}
