package parser

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "B2", "t_time")
	f.SetCellValue(sheetName, "C2", "P")
	f.SetCellValue(sheetName, "B3", 0)
	f.SetCellValue(sheetName, "C3", 1.25)
	f.SetCellValue(sheetName, "B4", 0.5)
	f.SetCellValue(sheetName, "C4", "bad")

	// A second sheet must be ignored
	if _, err := f.NewSheet("Other"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	f.SetCellValue("Other", "A1", "ignored")

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}

	table, err := ReadWorkbook("book.xlsx", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}

	if table.Name != "book.xlsx" {
		t.Errorf("Expected name book.xlsx, got %q", table.Name)
	}
	if table.Range != "B2:C4" {
		t.Errorf("Expected range B2:C4, got %q", table.Range)
	}
	if len(table.Columns) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(table.Columns))
	}
	if table.Columns[0].Name != "t_time" || table.Columns[1].Name != "P" {
		t.Errorf("Unexpected header %v", table.ColumnNames())
	}

	p := table.Columns[1].Cells
	if len(p) != 2 {
		t.Fatalf("Expected 2 data rows, got %d", len(p))
	}
	if p[0] != 1.25 {
		t.Errorf("Expected 1.25, got %v (type: %T)", p[0], p[0])
	}
	if p[1] != "bad" {
		t.Errorf("Expected 'bad', got %v", p[1])
	}
}

func TestReadWorkbookInvalid(t *testing.T) {
	if _, err := ReadWorkbook("broken.xlsx", bytes.NewReader([]byte("not a zip"))); err == nil {
		t.Error("Expected error for invalid workbook")
	}
}
