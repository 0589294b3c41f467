package parser

import (
	"errors"
	"io"

	"github.com/ukaji3/overlay-go/pkg/overlay/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoSheets indicates a workbook without any worksheet.
var ErrNoSheets = errors.New("workbook has no sheets")

// ReadWorkbook parses the first sheet of a spreadsheet into a Table.
func ReadWorkbook(name string, r io.Reader) (*models.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, ErrNoSheets
	}

	return ExtractTable(f, name, sheetList[0])
}

// ExtractTable reads one sheet of an open workbook into a Table.
// Raw cell values are used so numbers are not subject to display formats.
func ExtractTable(f *excelize.File, name, sheetName string) (*models.Table, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	return BuildTable(name, rows)
}
