package parser

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuildTable(t *testing.T) {
	rows := [][]string{
		{"t_time", "P", "Q"},
		{"0", "1.5", "x"},
		{"0.1", "", "2"},
		{"0.2"},
	}

	table, err := BuildTable("a.csv", rows)
	if err != nil {
		t.Fatalf("BuildTable failed: %v", err)
	}

	if got := table.ColumnNames(); !reflect.DeepEqual(got, []string{"t_time", "P", "Q"}) {
		t.Errorf("unexpected columns %v", got)
	}
	if table.NumRows() != 3 {
		t.Errorf("expected 3 data rows, got %d", table.NumRows())
	}

	p, _ := table.Column("P")
	expected := []interface{}{1.5, nil, nil}
	if !reflect.DeepEqual(p.Cells, expected) {
		t.Errorf("P cells = %v, expected %v", p.Cells, expected)
	}

	q, _ := table.Column("Q")
	if q.Cells[0] != "x" || q.Cells[1] != int64(2) {
		t.Errorf("unexpected Q cells %v", q.Cells)
	}
}

func TestBuildTableHeaderNames(t *testing.T) {
	rows := [][]string{
		{"a", "", "a", "a"},
		{"1", "2", "3", "4"},
	}

	table, err := BuildTable("dup.csv", rows)
	if err != nil {
		t.Fatalf("BuildTable failed: %v", err)
	}

	expected := []string{"a", "Unnamed: 1", "a.1", "a.2"}
	if got := table.ColumnNames(); !reflect.DeepEqual(got, expected) {
		t.Errorf("ColumnNames() = %v, expected %v", got, expected)
	}
}

func TestBuildTableEmpty(t *testing.T) {
	_, err := BuildTable("empty.csv", [][]string{{""}, {}})
	if !errors.Is(err, ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}
