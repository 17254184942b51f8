package reports

import (
	"github.com/shopspring/decimal"

	"github.com/summafin/summa/lib/closing"
	"github.com/summafin/summa/lib/ledger"
	"github.com/summafin/summa/lib/model/account"
	"github.com/summafin/summa/lib/model/chart"
)

// Balances maps account names to signed balances on their natural side.
type Balances map[string]decimal.Decimal

// Sum adds up every balance in the map.
func (b Balances) Sum() decimal.Decimal {
	var sum decimal.Decimal
	for _, balance := range b {
		sum = sum.Add(balance)
	}
	return sum
}

// Line is one trial balance row: an account's raw debit and credit
// totals before netting.
type Line struct {
	Account string
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// TrialBalance lists every account's pre-netting totals in chart
// declaration order. It is an audit view, not a business report, and
// may be taken at any stage.
type TrialBalance struct {
	Lines []Line
}

// NewTrialBalance derives a trial balance snapshot from l. The ledger
// is not modified.
func NewTrialBalance(l *ledger.Ledger) *TrialBalance {
	tb := &TrialBalance{}
	for _, ta := range l.Accounts() {
		debit, credit := ta.Totals()
		tb.Lines = append(tb.Lines, Line{Account: ta.Account().Name, Debit: debit, Credit: credit})
	}
	return tb
}

// Sums returns the debit and credit column totals, which match for any
// ledger built from balanced postings.
func (tb *TrialBalance) Sums() (debit, credit decimal.Decimal) {
	for _, line := range tb.Lines {
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	return debit, credit
}

// BalanceSheet is the permanent-account snapshot after a full close.
type BalanceSheet struct {
	Assets      Balances
	Capital     Balances
	Liabilities Balances
}

// NewBalanceSheet derives a balance sheet from a fully closed ledger.
// Contra accounts never appear: temporary contras are zero by now and
// permanent contras are netted into their hosts during derivation. The
// ledger is not modified.
func NewBalanceSheet(c *chart.Chart, l *ledger.Ledger) (*BalanceSheet, error) {
	if l.Stage() != ledger.Closed {
		return nil, closing.StateError{Op: "derive a balance sheet", Stage: l.Stage()}
	}
	bs := &BalanceSheet{
		Assets:      make(Balances),
		Capital:     make(Balances),
		Liabilities: make(Balances),
	}
	for t, section := range map[account.Type]Balances{
		account.Asset:     bs.Assets,
		account.Capital:   bs.Capital,
		account.Liability: bs.Liabilities,
	} {
		if err := fillNetted(c, l, t, section); err != nil {
			return nil, err
		}
	}
	return bs, nil
}

// fillNetted collects the balances of regular accounts of type t with
// their contra balances subtracted.
func fillNetted(c *chart.Chart, l *ledger.Ledger, t account.Type, into Balances) error {
	for _, ta := range l.Accounts() {
		meta := ta.Account()
		if !meta.IsType(t) {
			continue
		}
		balance := ta.Balance()
		for _, contra := range c.ContrasOf(meta.Name) {
			ct, err := l.Account(contra)
			if err != nil {
				return err
			}
			balance = balance.Sub(ct.Balance())
		}
		into[meta.Name] = balance
	}
	return nil
}

// IncomeStatement shows income and expense balances net of their contra
// accounts, before they are swept into the income summary account.
type IncomeStatement struct {
	Income   Balances
	Expenses Balances
}

// NewIncomeStatement derives an income statement from a ledger at the
// contra-closed stage: contra accounts are folded but income and
// expense balances are still on their own accounts. After the full
// close those balances are gone, so the intermediate snapshot must be
// retained to produce this report. The ledger is not modified.
func NewIncomeStatement(c *chart.Chart, l *ledger.Ledger) (*IncomeStatement, error) {
	if l.Stage() != ledger.ContraClosed {
		return nil, closing.StateError{Op: "derive an income statement", Stage: l.Stage()}
	}
	is := &IncomeStatement{Income: make(Balances), Expenses: make(Balances)}
	for _, ta := range l.Accounts() {
		meta := ta.Account()
		switch {
		case meta.IsType(account.Income):
			is.Income[meta.Name] = ta.Balance()
		case meta.IsType(account.Expense):
			is.Expenses[meta.Name] = ta.Balance()
		}
	}
	return is, nil
}

// NetEarnings returns total income less total expenses; negative for a
// loss.
func (is *IncomeStatement) NetEarnings() decimal.Decimal {
	return is.Income.Sum().Sub(is.Expenses.Sum())
}

// Statements derives the trial balance, income statement and balance
// sheet from a single closing pass over a copy of l. The trial balance
// reflects the pre-close ledger; l itself is never mutated.
func Statements(c *chart.Chart, l *ledger.Ledger) (*TrialBalance, *IncomeStatement, *BalanceSheet, error) {
	tb := NewTrialBalance(l)
	p := closing.NewPipeline(c, l)
	if err := p.CloseContra(); err != nil {
		return nil, nil, nil, err
	}
	is, err := NewIncomeStatement(c, p.Ledger())
	if err != nil {
		return nil, nil, nil, err
	}
	if err := p.CloseTemporary(); err != nil {
		return nil, nil, nil, err
	}
	if err := p.CloseISA(); err != nil {
		return nil, nil, nil, err
	}
	bs, err := NewBalanceSheet(c, p.Ledger())
	if err != nil {
		return nil, nil, nil, err
	}
	return tb, is, bs, nil
}
