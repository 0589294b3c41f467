// Package overlay compares two tabular datasets by overlaying their series.
package overlay

import (
	"github.com/ukaji3/overlay-go/pkg/overlay/match"
	"github.com/ukaji3/overlay-go/pkg/overlay/pairing"
)

// Mode represents how columns are selected across the two tables.
type Mode string

const (
	// ModeShared assumes both tables use the same column names.
	ModeShared Mode = "shared"
	// ModeIndependent selects columns per table, pairing by pairing.
	ModeIndependent Mode = "independent"
)

// Default legend labels, matching the usual measured-vs-simulated comparison.
const (
	DefaultLabel1 = "Actual"
	DefaultLabel2 = "PSCAD"
)

// Options carries every selection a render pass depends on.
type Options struct {
	// Mode selects shared-name or independent pairing.
	Mode Mode
	// Label1 is the legend label of File-1.
	Label1 string
	// Label2 is the legend label of File-2.
	Label2 string
	// Shared is used in ModeShared.
	Shared pairing.SharedSelection
	// Independent is used in ModeIndependent.
	Independent pairing.IndependentSelection
	// TimeSuffixes mark default X columns.
	// If empty, defaults to match.DefaultTimeSuffix.
	TimeSuffixes []string
	// MaxPlots bounds the independent-mode plot count.
	// If zero, defaults to pairing.DefaultMaxPlots.
	MaxPlots int
}

// DefaultOptions returns shared-name mode with the default labels.
func DefaultOptions() Options {
	return Options{
		Mode:         ModeShared,
		Label1:       DefaultLabel1,
		Label2:       DefaultLabel2,
		TimeSuffixes: []string{match.DefaultTimeSuffix},
		MaxPlots:     pairing.DefaultMaxPlots,
	}
}

// labels returns the legend labels with defaults applied.
func (o Options) labels() (string, string) {
	l1, l2 := o.Label1, o.Label2
	if l1 == "" {
		l1 = DefaultLabel1
	}
	if l2 == "" {
		l2 = DefaultLabel2
	}
	return l1, l2
}
