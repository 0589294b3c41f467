package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/overlay-go/pkg/overlay/models"
	"golang.org/x/text/encoding/charmap"
)

// candidateDelimiters are tried in order; ties go to the earlier entry.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// sniffLines is how many leading non-empty lines are inspected.
const sniffLines = 5

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadDelimited parses delimited text into a Table.
func ReadDelimited(name string, data []byte) (*models.Table, error) {
	text, err := DecodeText(data)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = SniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	// Leading-space trimming would swallow empty fields of tab-separated input
	r.TrimLeadingSpace = r.Comma != '\t'

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return BuildTable(name, rows)
}

// DecodeText decodes data as UTF-8, falling back to Windows-1252 when the
// bytes are not valid UTF-8. A leading UTF-8 byte order mark is removed.
func DecodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// SniffDelimiter picks the delimiter that occurs most consistently in the
// first lines of text. It prefers a delimiter that appears the same number
// of times on every sampled line, then the one with the highest count on
// the first line. Defaults to ','.
func SniffDelimiter(text string) rune {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() && len(lines) < sniffLines {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return ','
	}

	best, bestCount, bestConsistent := ',', 0, false
	for _, d := range candidateDelimiters {
		first := strings.Count(lines[0], string(d))
		if first == 0 {
			continue
		}
		consistent := true
		for _, l := range lines[1:] {
			if strings.Count(l, string(d)) != first {
				consistent = false
				break
			}
		}
		switch {
		case consistent && !bestConsistent:
			best, bestCount, bestConsistent = d, first, true
		case consistent == bestConsistent && first > bestCount:
			best, bestCount = d, first
		}
	}
	return best
}
