package overlay

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/overlay-go/pkg/overlay/cache"
	"github.com/ukaji3/overlay-go/pkg/overlay/models"
	"github.com/ukaji3/overlay-go/pkg/overlay/parser"
)

// FileKind classifies an input file by extension.
type FileKind string

const (
	// KindUnknown is any unsupported extension.
	KindUnknown FileKind = ""
	// KindSpreadsheet is an OOXML workbook; the first sheet is read.
	KindSpreadsheet FileKind = "spreadsheet"
	// KindDelimited is delimited text (CSV, TSV, ...).
	KindDelimited FileKind = "delimited"
)

var fileKinds = map[string]FileKind{
	".xlsx": KindSpreadsheet,
	".xlsm": KindSpreadsheet,
	".xltx": KindSpreadsheet,
	".xltm": KindSpreadsheet,
	".csv":  KindDelimited,
	".tsv":  KindDelimited,
	".txt":  KindDelimited,
	".dat":  KindDelimited,
}

// KindOf returns the kind of a file name, KindUnknown if unsupported.
func KindOf(name string) FileKind {
	return fileKinds[strings.ToLower(filepath.Ext(name))]
}

// Loader parses input files, memoizing tables by file identity.
type Loader struct {
	cache  cache.Tables
	logger *slog.Logger
}

// NewLoader creates a Loader. A nil cache disables memoization and a nil
// logger discards log output.
func NewLoader(c cache.Tables, logger *slog.Logger) *Loader {
	if c == nil {
		c = cache.Nop{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{cache: c, logger: logger}
}

// LoadFile reads and parses the file at path.
func (l *Loader) LoadFile(path string) (*models.Table, error) {
	if KindOf(path) == KindUnknown {
		return nil, &LoadError{Path: path, Err: unsupported(path)}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return l.Load(filepath.Base(path), data)
}

// Load parses file content. The name determines the format and is kept as
// the table name.
func (l *Loader) Load(name string, data []byte) (*models.Table, error) {
	kind := KindOf(name)
	if kind == KindUnknown {
		return nil, &LoadError{Path: name, Err: unsupported(name)}
	}

	key := cache.KeyOf(name, data)
	if t, ok := l.cache.Get(key); ok {
		l.logger.Debug("table cache hit", "key", key.String())
		return t, nil
	}

	var (
		t   *models.Table
		err error
	)
	switch kind {
	case KindSpreadsheet:
		t, err = parser.ReadWorkbook(name, bytes.NewReader(data))
	case KindDelimited:
		t, err = parser.ReadDelimited(name, data)
	}
	if err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}

	l.logger.Debug("table loaded",
		"name", name,
		"kind", string(kind),
		"range", t.Range,
		"columns", len(t.Columns),
		"rows", t.NumRows(),
	)
	l.cache.Put(key, t)
	return t, nil
}

// LoadFile parses the file at path without caching.
func LoadFile(path string) (*models.Table, error) {
	return NewLoader(nil, nil).LoadFile(path)
}

func unsupported(name string) error {
	ext := filepath.Ext(name)
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
}
