package table

import (
	"github.com/shopspring/decimal"
)

// Table is a matrix of table cells.
type Table struct {
	width int
	rows  []*Row
}

// New creates a new table with the given number of columns.
func New(width int) *Table {
	return &Table{width: width}
}

// Width returns the number of columns of this table.
func (t *Table) Width() int {
	return t.width
}

// AddRow adds a row.
func (t *Table) AddRow() *Row {
	row := &Row{cells: make([]cell, 0, t.width)}
	t.rows = append(t.rows, row)
	return row
}

// AddSeparatorRow adds a horizontal rule.
func (t *Table) AddSeparatorRow() {
	r := t.AddRow()
	for i := 0; i < t.width; i++ {
		r.addCell(separatorCell{})
	}
}

// AddEmptyRow adds a row of empty cells.
func (t *Table) AddEmptyRow() {
	r := t.AddRow()
	for i := 0; i < t.width; i++ {
		r.AddEmpty()
	}
}

// Row is a table row.
type Row struct {
	cells []cell
}

func (r *Row) addCell(c cell) {
	r.cells = append(r.cells, c)
}

// AddEmpty adds an empty cell.
func (r *Row) AddEmpty() *Row {
	r.addCell(emptyCell{})
	return r
}

// AddText adds a text cell.
func (r *Row) AddText(content string, align Alignment) *Row {
	r.addCell(textCell{Content: content, Align: align})
	return r
}

// AddIndented adds a left-aligned text cell with an indent.
func (r *Row) AddIndented(content string, indent int) *Row {
	r.addCell(indentedCell{Content: content, Indent: indent})
	return r
}

// AddNumber adds a number cell.
func (r *Row) AddNumber(n decimal.Decimal) *Row {
	r.addCell(numberCell{n: n})
	return r
}

// FillEmpty pads the row with empty cells up to the table width.
func (r *Row) FillEmpty() {
	for i := len(r.cells); i < cap(r.cells); i++ {
		r.AddEmpty()
	}
}

// Alignment is the alignment of a table cell.
type Alignment int

const (
	// Left aligns to the left.
	Left Alignment = iota
	// Right aligns to the right.
	Right
	// Center centers.
	Center
)

type cell interface {
	isSep() bool
}

type separatorCell struct{}

func (separatorCell) isSep() bool { return true }

type emptyCell struct{}

func (emptyCell) isSep() bool { return false }

type textCell struct {
	Content string
	Align   Alignment
}

func (textCell) isSep() bool { return false }

type indentedCell struct {
	Content string
	Indent  int
}

func (indentedCell) isSep() bool { return false }

type numberCell struct {
	n decimal.Decimal
}

func (numberCell) isSep() bool { return false }
