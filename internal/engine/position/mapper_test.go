package position

import (
	"errors"
	"testing"
)

type text string

func (t text) Len() int64 { return int64(len(t)) }

func (t text) ByteAt(off int64) (byte, error) {
	if off < 0 || off >= int64(len(t)) {
		return 0, errors.New("out of range")
	}
	return t[off], nil
}

func TestNextColumn(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		col  int
		c    byte
		want int
	}{
		{"printable", nil, 3, 'a', 4},
		{"newline", nil, 17, '\n', 0},
		{"tab to next stop", []Option{WithTabWidth(4)}, 5, '\t', 8},
		{"tab on stop", []Option{WithTabWidth(4)}, 8, '\t', 12},
		{"tab width 8", []Option{WithTabWidth(8)}, 1, '\t', 8},
		{"wrap at last column", []Option{WithColumns(10)}, 9, 'x', 0},
		{"clamp at last column", []Option{WithColumns(10), WithWrap(false)}, 9, 'x', 9},
		{"tab past last column wraps", []Option{WithColumns(10), WithTabWidth(4)}, 8, '\t', 0},
		{"tab past last column clamps", []Option{WithColumns(10), WithTabWidth(4), WithWrap(false)}, 8, '\t', 9},
		{"newline without wrap", []Option{WithWrap(false)}, 40, '\n', 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(text(""), tt.opts...)
			if got := m.NextColumn(tt.col, tt.c); got != tt.want {
				t.Errorf("NextColumn(%d, %q) = %d, want %d", tt.col, tt.c, got, tt.want)
			}
		})
	}
}

func TestPhysicalLines(t *testing.T) {
	m := New(text("ab\ncd\n"))

	if n, err := m.LineLength(0); err != nil || n != 2 {
		t.Errorf("LineLength(0) = %d, %v; want 2", n, err)
	}
	if p, err := m.PhysicalLineStart(3); err != nil || p != 3 {
		t.Errorf("PhysicalLineStart(3) = %d, %v; want 3", p, err)
	}
	if p, err := m.PreviousPhysicalLineStart(3); err != nil || p != 0 {
		t.Errorf("PreviousPhysicalLineStart(3) = %d, %v; want 0", p, err)
	}
	if p, err := m.PhysicalLineStart(5); err != nil || p != 3 {
		t.Errorf("PhysicalLineStart(5) = %d, %v; want 3", p, err)
	}
	if p, err := m.PreviousPhysicalLineStart(1); err != nil || p != 0 {
		t.Errorf("PreviousPhysicalLineStart(1) = %d, %v; want 0", p, err)
	}
	if p, err := m.LineEnd(4); err != nil || p != 5 {
		t.Errorf("LineEnd(4) = %d, %v; want 5", p, err)
	}
	if p, err := m.LineEnd(6); err != nil || p != 6 {
		t.Errorf("LineEnd(6) = %d, %v; want 6", p, err)
	}
}

func TestDisplayLinesWithWrap(t *testing.T) {
	// Ten columns: the first physical line takes two display lines.
	doc := text("0123456789abc\nxy")
	m := New(doc, WithColumns(10))

	tests := []struct {
		name string
		fn   func(int64) (int64, error)
		in   int64
		want int64
	}{
		{"next from start", m.NextDisplayLineStart, 0, 10},
		{"next from wrap", m.NextDisplayLineStart, 10, 14},
		{"next on last line", m.NextDisplayLineStart, 14, 16},
		{"previous of second row", m.PreviousDisplayLineStart, 10, 0},
		{"previous of next physical line", m.PreviousDisplayLineStart, 14, 10},
		{"containing wrapped byte", m.DisplayLineContaining, 12, 10},
		{"containing first row", m.DisplayLineContaining, 4, 0},
		{"containing at wrap point", m.DisplayLineContaining, 10, 10},
		{"containing last line", m.DisplayLineContaining, 15, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.in)
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestColumnAt(t *testing.T) {
	doc := text("a\tb\n0123456789abc")
	m := New(doc, WithColumns(10), WithTabWidth(4))

	tests := []struct {
		off  int64
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 4},
		{3, 5},
		{4, 0},
		{13, 9},
		{14, 0},
		{16, 2},
	}
	for _, tt := range tests {
		got, err := m.ColumnAt(tt.off)
		if err != nil {
			t.Fatalf("ColumnAt(%d): %v", tt.off, err)
		}
		if got != tt.want {
			t.Errorf("ColumnAt(%d) = %d, want %d", tt.off, got, tt.want)
		}
	}
}

func TestScanRows(t *testing.T) {
	doc := text("one\ntwo\nthree\nfour\n")
	m := New(doc)

	row, col, err := m.ScanRows(0, 9, 10)
	if err != nil {
		t.Fatalf("ScanRows: %v", err)
	}
	if row != 2 || col != 1 {
		t.Errorf("ScanRows(0, 9) = %d,%d; want 2,1", row, col)
	}

	row, _, err = m.ScanRows(0, doc.Len(), 2)
	if err != nil {
		t.Fatalf("ScanRows: %v", err)
	}
	if row != 2 {
		t.Errorf("ScanRows with maxRow 2 reached row %d", row)
	}

	// Asking for more bytes than the document holds stops at the end.
	row, col, err = m.ScanRows(14, 100, 10)
	if err != nil || row != 1 || col != 0 {
		t.Errorf("ScanRows past end = %d,%d,%v; want 1,0,nil", row, col, err)
	}
}

func TestOffsetOfLine(t *testing.T) {
	doc := text("one\ntwo\nthree")
	m := New(doc)

	tests := []struct {
		line int64
		want int64
	}{
		{0, 0},
		{1, 0},
		{2, 4},
		{3, 8},
		{9, 13},
	}
	for _, tt := range tests {
		got, err := m.OffsetOfLine(tt.line)
		if err != nil {
			t.Fatalf("OffsetOfLine(%d): %v", tt.line, err)
		}
		if got != tt.want {
			t.Errorf("OffsetOfLine(%d) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestSourceErrorsPropagate(t *testing.T) {
	m := New(failing{})
	if _, err := m.PhysicalLineStart(5); err == nil {
		t.Error("PhysicalLineStart ignored a source error")
	}
	if _, err := m.NextDisplayLineStart(0); err == nil {
		t.Error("NextDisplayLineStart ignored a source error")
	}
}

type failing struct{}

func (failing) Len() int64                 { return 10 }
func (failing) ByteAt(int64) (byte, error) { return 0, errors.New("disk gone") }
