package table

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
)

func TestGolden(t *testing.T) {
	tbl := New(2)
	tbl.AddSeparatorRow()
	tbl.AddRow().AddText("Account", Center).AddText("Balance", Center)
	tbl.AddSeparatorRow()
	tbl.AddRow().AddIndented("cash", 2).AddNumber(decimal.NewFromInt(1600))
	tbl.AddRow().AddIndented("equity", 2).AddNumber(decimal.NewFromInt(-100))
	tbl.AddSeparatorRow()

	var buf bytes.Buffer
	if err := NewConsoleRenderer(false, 2).Render(tbl, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	goldie.New(t).Assert(t, "simple", buf.Bytes())
}

func TestNumToString(t *testing.T) {
	r := NewConsoleRenderer(false, 2)
	tests := []struct {
		n    decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(0), "0.00"},
		{decimal.NewFromInt(999), "999.00"},
		{decimal.NewFromInt(1600), "1,600.00"},
		{decimal.New(-123456789, -2), "-1,234,567.89"},
		// Beyond float64 integer precision, must render exactly.
		{decimal.New(9007199254740993, 0), "9,007,199,254,740,993.00"},
	}
	for _, test := range tests {
		if got := r.numToString(test.n); got != test.want {
			t.Errorf("numToString(%s) = %q, want %q", test.n, got, test.want)
		}
	}
}

func TestFillEmpty(t *testing.T) {
	tbl := New(3)
	row := tbl.AddRow().AddText("x", Left)
	row.FillEmpty()

	if got := len(row.cells); got != 3 {
		t.Fatalf("row has %d cells, want 3", got)
	}
}
