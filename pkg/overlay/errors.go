package overlay

import (
	"errors"
	"fmt"

	"github.com/ukaji3/overlay-go/pkg/overlay/align"
	"github.com/ukaji3/overlay-go/pkg/overlay/pairing"
	"github.com/ukaji3/overlay-go/pkg/overlay/parser"
)

// ErrUnsupportedFileType indicates the file extension is not recognized.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ErrNoSelection indicates plotting was requested with zero pairings.
var ErrNoSelection = errors.New("no columns selected for plotting")

// ErrNoCommonColumns indicates shared-name mode with an empty column intersection.
var ErrNoCommonColumns = pairing.ErrNoCommonColumns

// ErrColumnNotFound indicates a selected column is absent from its table.
var ErrColumnNotFound = align.ErrColumnNotFound

// ErrInvalidPlotCount indicates an independent-mode plot count out of range.
var ErrInvalidPlotCount = pairing.ErrInvalidPlotCount

// ErrEmptyTable indicates a file without a header row.
var ErrEmptyTable = parser.ErrEmptyTable

// LoadError represents an error while reading an input file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// PairingError represents an error while aligning one pairing.
type PairingError struct {
	Index int
	Title string
	Err   error
}

func (e *PairingError) Error() string {
	return fmt.Sprintf("plot %d (%q): %v", e.Index+1, e.Title, e.Err)
}

func (e *PairingError) Unwrap() error {
	return e.Err
}

// IsUserError reports whether err belongs to the taxonomy that is shown to
// the user as a plain message rather than treated as an internal failure.
func IsUserError(err error) bool {
	for _, target := range []error{
		ErrUnsupportedFileType,
		ErrNoCommonColumns,
		ErrNoSelection,
		ErrColumnNotFound,
		ErrInvalidPlotCount,
		ErrEmptyTable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
