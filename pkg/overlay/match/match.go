// Package match finds columns two tables have in common and suggests
// default axis selections.
package match

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// DefaultTimeSuffix marks a column as a time axis candidate.
const DefaultTimeSuffix = "_time"

// CommonColumns returns the sorted set of names present in both lists.
// Names are compared with exact, case-sensitive equality.
func CommonColumns(left, right []string) []string {
	common := lo.Uniq(lo.Intersect(left, right))
	sort.Strings(common)
	return common
}

// SuggestTimeColumns returns the names whose lowercase form ends with one
// of the suffixes, in input order. Defaults to DefaultTimeSuffix.
func SuggestTimeColumns(names []string, suffixes ...string) []string {
	suffixes = normalizeSuffixes(suffixes)
	return lo.Filter(names, func(name string, _ int) bool {
		return isTimeColumn(name, suffixes)
	})
}

// DefaultX picks the default X column: the first time-suffixed name,
// else the first name, else "".
func DefaultX(names []string, suffixes ...string) string {
	if t := SuggestTimeColumns(names, suffixes...); len(t) > 0 {
		return t[0]
	}
	if len(names) > 0 {
		return names[0]
	}
	return ""
}

// YCandidates returns the names offered for Y selection: everything except
// the X column and time-suffixed columns.
func YCandidates(names []string, x string, suffixes ...string) []string {
	suffixes = normalizeSuffixes(suffixes)
	return lo.Filter(names, func(name string, _ int) bool {
		return name != x && !isTimeColumn(name, suffixes)
	})
}

// Report summarizes the column situation of two tables.
type Report struct {
	Left        []string `json:"left"`
	Right       []string `json:"right"`
	Common      []string `json:"common"`
	TimeColumns []string `json:"time_columns"`
	DefaultX    string   `json:"default_x"`
	YCandidates []string `json:"y_candidates"`
}

// NewReport builds a Report for the two column lists.
func NewReport(left, right []string, suffixes ...string) Report {
	common := CommonColumns(left, right)
	x := DefaultX(common, suffixes...)
	return Report{
		Left:        left,
		Right:       right,
		Common:      common,
		TimeColumns: SuggestTimeColumns(common, suffixes...),
		DefaultX:    x,
		YCandidates: YCandidates(common, x, suffixes...),
	}
}

func normalizeSuffixes(suffixes []string) []string {
	out := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{DefaultTimeSuffix}
	}
	return out
}

func isTimeColumn(name string, suffixes []string) bool {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}
