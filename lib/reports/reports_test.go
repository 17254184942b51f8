package reports_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"

	"github.com/summafin/summa/lib/closing"
	"github.com/summafin/summa/lib/ledger"
	"github.com/summafin/summa/lib/model/account"
	"github.com/summafin/summa/lib/model/chart"
	"github.com/summafin/summa/lib/model/entry"
	"github.com/summafin/summa/lib/reports"
	"github.com/summafin/summa/lib/table"
)

func amt(i int64) decimal.Decimal {
	return decimal.NewFromInt(i)
}

func serviceChart(t *testing.T) *chart.Chart {
	t.Helper()
	c := chart.Default()
	for _, err := range []error{
		c.Add(account.Asset, "cash"),
		c.Add(account.Expense, "salaries"),
		c.Add(account.Expense, "rent"),
		c.Add(account.Capital, "equity"),
		c.Add(account.Income, "services", "cashback"),
	} {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return c
}

func serviceLedger(t *testing.T, c *chart.Chart) *ledger.Ledger {
	t.Helper()
	l := c.Ledger()
	opening, err := c.Opening(map[string]decimal.Decimal{
		"cash":   amt(1400),
		"equity": amt(1500),
		"re":     amt(-100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.PostMany([]entry.Entry{
		opening,
		entry.New("rent", "cash", amt(200)),
		entry.New("cash", "services", amt(825)),
		entry.New("cashback", "cash", amt(25)),
		entry.New("salaries", "cash", amt(400)),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return l
}

func TestStatements(t *testing.T) {
	c := serviceChart(t)
	l := serviceLedger(t, c)

	tb, is, bs, err := reports.Statements(c, l)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantIS := &reports.IncomeStatement{
		Income:   reports.Balances{"services": amt(800)},
		Expenses: reports.Balances{"salaries": amt(400), "rent": amt(200)},
	}
	if diff := cmp.Diff(wantIS, is); diff != "" {
		t.Errorf("unexpected diff (+got/-want):\n%s", diff)
	}
	if got, want := is.NetEarnings(), amt(200); !got.Equal(want) {
		t.Errorf("net earnings: got %s, want %s", got, want)
	}
	wantBS := &reports.BalanceSheet{
		Assets:      reports.Balances{"cash": amt(1600)},
		Capital:     reports.Balances{"equity": amt(1500), "re": amt(100)},
		Liabilities: reports.Balances{},
	}
	if diff := cmp.Diff(wantBS, bs); diff != "" {
		t.Errorf("unexpected diff (+got/-want):\n%s", diff)
	}
	debit, credit := tb.Sums()
	if !debit.Equal(credit) {
		t.Errorf("trial balance out of balance: debits %s, credits %s", debit, credit)
	}
	if got, want := bs.Assets.Sum(), bs.Capital.Sum().Add(bs.Liabilities.Sum()); !got.Equal(want) {
		t.Errorf("accounting equation violated: assets %s, capital and liabilities %s", got, want)
	}
}

func TestStatementsLeavesSourceOpen(t *testing.T) {
	c := serviceChart(t)
	l := serviceLedger(t, c)
	before := l.Balances()

	if _, _, _, err := reports.Statements(c, l); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if l.Stage() != ledger.Open {
		t.Errorf("source ledger stage: got %s, want %s", l.Stage(), ledger.Open)
	}
	if diff := cmp.Diff(before, l.Balances()); diff != "" {
		t.Errorf("unexpected diff (+got/-want):\n%s", diff)
	}
}

func TestTrialBalanceOrder(t *testing.T) {
	c := serviceChart(t)
	l := serviceLedger(t, c)

	tb := reports.NewTrialBalance(l)

	var got []string
	for _, line := range tb.Lines {
		got = append(got, line.Account)
	}
	want := []string{"cash", "salaries", "rent", "equity", "services", "cashback", "re", "current_profit", "null"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected diff (+got/-want):\n%s", diff)
	}
}

func TestTrialBalanceBeforeNetting(t *testing.T) {
	c := serviceChart(t)
	l := serviceLedger(t, c)

	tb := reports.NewTrialBalance(l)

	for _, line := range tb.Lines {
		if line.Account != "cash" {
			continue
		}
		if got, want := line.Debit, amt(2225); !got.Equal(want) {
			t.Errorf("cash debits: got %s, want %s", got, want)
		}
		if got, want := line.Credit, amt(625); !got.Equal(want) {
			t.Errorf("cash credits: got %s, want %s", got, want)
		}
		return
	}
	t.Fatal("cash not present in trial balance")
}

func TestBalanceSheetRequiresClose(t *testing.T) {
	c := serviceChart(t)
	l := serviceLedger(t, c)

	_, err := reports.NewBalanceSheet(c, l)

	var stateErr closing.StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("got %v, want a state error", err)
	}
	if stateErr.Stage != ledger.Open {
		t.Errorf("stage: got %s, want %s", stateErr.Stage, ledger.Open)
	}
}

func TestIncomeStatementRequiresContraClosed(t *testing.T) {
	c := serviceChart(t)
	l := serviceLedger(t, c)

	if _, err := reports.NewIncomeStatement(c, l); err == nil {
		t.Error("expected a state error on an open ledger")
	}
	_, closed, err := closing.Close(c, l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := reports.NewIncomeStatement(c, closed); err == nil {
		t.Error("expected a state error on a closed ledger")
	}
}

func TestBalanceSheetNetsPermanentContra(t *testing.T) {
	c := chart.Default()
	for _, err := range []error{
		c.Add(account.Asset, "cash"),
		c.Add(account.Asset, "ppe", "depreciation"),
		c.Add(account.Capital, "equity"),
		c.Add(account.Expense, "wear"),
	} {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	l := c.Ledger()
	if err := l.PostMany([]entry.Entry{
		entry.New("cash", "equity", amt(1000)),
		entry.New("ppe", "cash", amt(500)),
		entry.New("wear", "depreciation", amt(60)),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, closed, err := closing.Close(c, l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bs, err := reports.NewBalanceSheet(c, closed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := reports.Balances{"cash": amt(500), "ppe": amt(440)}
	if diff := cmp.Diff(want, bs.Assets); diff != "" {
		t.Errorf("unexpected diff (+got/-want):\n%s", diff)
	}
	if _, ok := bs.Assets["depreciation"]; ok {
		t.Error("contra account must not appear as a balance sheet line")
	}
}

func TestRenderBalanceSheet(t *testing.T) {
	c := serviceChart(t)
	l := serviceLedger(t, c)
	_, _, bs, err := reports.Statements(c, l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rn := reports.Renderer{Chart: c}
	var buf bytes.Buffer
	if err := table.NewConsoleRenderer(false, 2).Render(rn.BalanceSheet(bs), &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	goldie.New(t).Assert(t, "balance_sheet", buf.Bytes())
}
