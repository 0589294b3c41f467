// Package parser turns spreadsheet and delimited-text files into tables.
package parser

import (
	"strconv"
	"strings"
)

// parseValue attempts to parse a raw cell string as a number.
// Returns int64 for integers, float64 for decimals, nil for blank cells,
// or the original string.
func parseValue(s string) interface{} {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	// Try integer first
	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return f
	}
	// Keep the untrimmed text so previews show what was in the file
	return s
}
