package parser

import (
	"reflect"
	"testing"
)

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected rune
	}{
		{"comma", "a,b,c\n1,2,3\n", ','},
		{"semicolon with decimal commas", "a;b\n1,5;2,5\n3,0;4,0\n", ';'},
		{"tab", "a\tb\tc\n1\t2\t3\n", '\t'},
		{"pipe", "a|b\n1|2\n", '|'},
		{"single column", "a\n1\n2\n", ','},
		{"empty", "", ','},
	}

	for _, tt := range tests {
		if got := SniffDelimiter(tt.text); got != tt.expected {
			t.Errorf("%s: SniffDelimiter() = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func TestDecodeText(t *testing.T) {
	// "Temp °C" in Windows-1252: the degree sign is a single 0xB0 byte
	latin := []byte{'T', 'e', 'm', 'p', ' ', 0xB0, 'C'}
	got, err := DecodeText(latin)
	if err != nil {
		t.Fatalf("DecodeText failed: %v", err)
	}
	if got != "Temp °C" {
		t.Errorf("DecodeText() = %q, expected %q", got, "Temp °C")
	}

	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b")...)
	got, err = DecodeText(withBOM)
	if err != nil {
		t.Fatalf("DecodeText failed: %v", err)
	}
	if got != "a,b" {
		t.Errorf("DecodeText() = %q, expected %q", got, "a,b")
	}
}

func TestReadDelimited(t *testing.T) {
	data := []byte("t_time;P\n0;1\n1;bad\n2;\n")

	table, err := ReadDelimited("run.csv", data)
	if err != nil {
		t.Fatalf("ReadDelimited failed: %v", err)
	}

	if got := table.ColumnNames(); !reflect.DeepEqual(got, []string{"t_time", "P"}) {
		t.Errorf("unexpected columns %v", got)
	}
	p, _ := table.Column("P")
	expected := []interface{}{int64(1), "bad", nil}
	if !reflect.DeepEqual(p.Cells, expected) {
		t.Errorf("P cells = %v, expected %v", p.Cells, expected)
	}
}

func TestReadDelimitedTabKeepsEmptyFields(t *testing.T) {
	table, err := ReadDelimited("run.tsv", []byte("a\tb\tc\n1\t\t3\n"))
	if err != nil {
		t.Fatalf("ReadDelimited failed: %v", err)
	}
	b, _ := table.Column("b")
	c, _ := table.Column("c")
	if b.Cells[0] != nil || c.Cells[0] != int64(3) {
		t.Errorf("unexpected cells b=%v c=%v", b.Cells, c.Cells)
	}
}
