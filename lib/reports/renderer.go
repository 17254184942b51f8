package reports

import (
	"github.com/shopspring/decimal"

	"github.com/summafin/summa/lib/model/account"
	"github.com/summafin/summa/lib/model/chart"
	"github.com/summafin/summa/lib/table"
)

// Renderer builds console tables from derived statements. Accounts
// appear in chart declaration order.
type Renderer struct {
	Chart *chart.Chart
}

// TrialBalance builds a three column table with per-account debit and
// credit totals and a sum row.
func (rn *Renderer) TrialBalance(tb *TrialBalance) *table.Table {
	t := table.New(3)
	t.AddSeparatorRow()
	t.AddRow().AddText("Account", table.Center).AddText("Debit", table.Center).AddText("Credit", table.Center)
	t.AddSeparatorRow()
	for _, line := range tb.Lines {
		t.AddRow().AddIndented(line.Account, 2).AddNumber(line.Debit).AddNumber(line.Credit)
	}
	t.AddSeparatorRow()
	debit, credit := tb.Sums()
	t.AddRow().AddIndented("Total", 0).AddNumber(debit).AddNumber(credit)
	t.AddSeparatorRow()
	return t
}

// BalanceSheet builds a sectioned two column table with totals per
// section and a closing total row for each side of the equation.
func (rn *Renderer) BalanceSheet(bs *BalanceSheet) *table.Table {
	t := table.New(2)
	t.AddSeparatorRow()
	t.AddRow().AddText("Balance sheet", table.Center).AddEmpty()
	t.AddSeparatorRow()
	rn.section(t, "Assets", account.Asset, bs.Assets)
	t.AddRow().AddIndented("Total assets", 0).AddNumber(bs.Assets.Sum())
	t.AddSeparatorRow()
	rn.section(t, "Capital", account.Capital, bs.Capital)
	rn.section(t, "Liabilities", account.Liability, bs.Liabilities)
	t.AddRow().AddIndented("Total capital and liabilities", 0).AddNumber(bs.Capital.Sum().Add(bs.Liabilities.Sum()))
	t.AddSeparatorRow()
	return t
}

// IncomeStatement builds a sectioned two column table ending in the
// net earnings row.
func (rn *Renderer) IncomeStatement(is *IncomeStatement) *table.Table {
	t := table.New(2)
	t.AddSeparatorRow()
	t.AddRow().AddText("Income statement", table.Center).AddEmpty()
	t.AddSeparatorRow()
	rn.section(t, "Income", account.Income, is.Income)
	rn.section(t, "Expenses", account.Expense, is.Expenses)
	t.AddRow().AddIndented("Net earnings", 0).AddNumber(is.NetEarnings())
	t.AddSeparatorRow()
	return t
}

func (rn *Renderer) section(t *table.Table, header string, at account.Type, balances Balances) {
	t.AddRow().AddText(header, table.Left).AddEmpty()
	for _, name := range rn.Chart.Names(at) {
		balance, ok := balances[name]
		if !ok {
			balance = decimal.Zero
		}
		t.AddRow().AddIndented(name, 2).AddNumber(balance)
	}
}
