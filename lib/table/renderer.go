package table

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

// Renderer renders a table to text.
type Renderer struct {
	Color bool
	Round int32

	green, red *color.Color
}

// NewConsoleRenderer returns a renderer for terminal output. Numbers
// are rounded to round digits and grouped by thousands.
func NewConsoleRenderer(enableColor bool, round int32) *Renderer {
	return &Renderer{
		Color: enableColor,
		Round: round,
		green: color.New(color.FgGreen),
		red:   color.New(color.FgRed),
	}
}

// Render writes the table to w.
func (r *Renderer) Render(t *Table, w io.Writer) error {
	color.NoColor = !r.Color

	widths := make([]int, t.Width())
	for _, row := range t.rows {
		for i, c := range row.cells {
			if l := r.minLength(c); widths[i] < l {
				widths[i] = l
			}
		}
	}
	for _, row := range t.rows {
		if err := r.renderRow(row, widths, w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (r *Renderer) renderRow(row *Row, widths []int, w io.Writer) error {
	lead := "| "
	if row.cells[0].isSep() {
		lead = "+-"
	}
	if _, err := io.WriteString(w, lead); err != nil {
		return err
	}
	for i, c := range row.cells {
		if err := r.renderCell(c, widths[i], w); err != nil {
			return err
		}
		if i < len(row.cells)-1 {
			if _, err := io.WriteString(w, createSep(c, row.cells[i+1])); err != nil {
				return err
			}
		}
	}
	tail := " |\n"
	if row.cells[len(row.cells)-1].isSep() {
		tail = "-+\n"
	}
	_, err := io.WriteString(w, tail)
	return err
}

func (r *Renderer) renderCell(c cell, width int, w io.Writer) error {
	switch t := c.(type) {

	case emptyCell:
		return writeSpace(w, width)

	case separatorCell:
		return writeStrings(w, "-", width)

	case textCell:
		var before int
		switch t.Align {
		case Left:
			before = 0
		case Right:
			before = width - utf8.RuneCountInString(t.Content)
		case Center:
			before = (width - utf8.RuneCountInString(t.Content)) / 2
		}
		if err := writeSpace(w, before); err != nil {
			return err
		}
		if _, err := io.WriteString(w, t.Content); err != nil {
			return err
		}
		return writeSpace(w, width-before-utf8.RuneCountInString(t.Content))

	case indentedCell:
		if err := writeSpace(w, t.Indent); err != nil {
			return err
		}
		if _, err := io.WriteString(w, t.Content); err != nil {
			return err
		}
		return writeSpace(w, width-t.Indent-utf8.RuneCountInString(t.Content))

	case numberCell:
		s := r.numToString(t.n)
		if err := writeSpace(w, width-utf8.RuneCountInString(s)); err != nil {
			return err
		}
		var err error
		switch {
		case t.n.IsNegative():
			_, err = r.red.Fprint(w, s)
		case t.n.IsZero():
			_, err = fmt.Fprint(w, s)
		default:
			_, err = r.green.Fprint(w, s)
		}
		return err
	}
	return fmt.Errorf("%v is not a valid cell type", c)
}

func (r *Renderer) minLength(c cell) int {
	switch t := c.(type) {
	case emptyCell, separatorCell:
		return 0
	case textCell:
		return utf8.RuneCountInString(t.Content)
	case indentedCell:
		return t.Indent + utf8.RuneCountInString(t.Content)
	case numberCell:
		return utf8.RuneCountInString(r.numToString(t.n))
	}
	return 0
}

// numToString formats on the decimal's own string form, so amounts too
// large for a float64 still render exactly.
func (r *Renderer) numToString(d decimal.Decimal) string {
	return addThousandsSep(d.StringFixed(r.Round))
}

func addThousandsSep(e string) string {
	index := strings.Index(e, ".")
	if index < 0 {
		index = len(e)
	}
	b := strings.Builder{}
	ok := false
	for i, ch := range e {
		if i >= index && ch != '-' {
			b.WriteString(e[i:])
			break
		}
		if (index-i)%3 == 0 && ok {
			b.WriteRune(',')
		}
		b.WriteRune(ch)
		if unicode.IsDigit(ch) {
			ok = true
		}
	}
	return b.String()
}

func createSep(c1, c2 cell) string {
	switch {
	case c1.isSep() && c2.isSep():
		return "-+-"
	case c1.isSep():
		return "-+ "
	case c2.isSep():
		return " +-"
	default:
		return " | "
	}
}

func writeStrings(w io.Writer, s string, n int) error {
	for i := 0; i < n; i++ {
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}

func writeSpace(w io.Writer, n int) error {
	return writeStrings(w, " ", n)
}
