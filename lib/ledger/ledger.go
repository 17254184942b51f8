package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/summafin/summa/lib/model/account"
	"github.com/summafin/summa/lib/model/entry"
)

// Stage tracks how far period-end closing has progressed on a ledger.
type Stage int

const (
	// Open accepts postings; no closing entries have been applied.
	Open Stage = iota
	// ContraClosed means contra income and contra expense balances
	// have been folded into their hosts.
	ContraClosed
	// TemporaryClosed means income and expense balances have been
	// moved to the income summary account.
	TemporaryClosed
	// Closed is terminal: net earnings sit in retained earnings and
	// every temporary account reads zero.
	Closed
)

func (s Stage) String() string {
	switch s {
	case Open:
		return "open"
	case ContraClosed:
		return "contra-closed"
	case TemporaryClosed:
		return "temporary-closed"
	case Closed:
		return "closed"
	}
	return ""
}

// TAccount holds one account's cumulative debit and credit totals
// together with the account's chart metadata.
type TAccount struct {
	meta    account.Account
	debits  decimal.Decimal
	credits decimal.Decimal
}

// Account returns the chart metadata of this T-account.
func (t *TAccount) Account() account.Account {
	return t.meta
}

// Totals returns the raw debit and credit totals, before netting.
func (t *TAccount) Totals() (debit, credit decimal.Decimal) {
	return t.debits, t.credits
}

// Balance returns the balance on the account's natural side:
// debits less credits for a debit-normal account, the reverse for a
// credit-normal one.
func (t *TAccount) Balance() decimal.Decimal {
	if t.meta.Side() == account.Debit {
		return t.debits.Sub(t.credits)
	}
	return t.credits.Sub(t.debits)
}

func (t *TAccount) clone() *TAccount {
	c := *t
	return &c
}

// condense nets the totals onto the account's natural side.
func (t *TAccount) condense() *TAccount {
	c := &TAccount{meta: t.meta}
	if t.meta.Side() == account.Debit {
		c.debits = t.Balance()
	} else {
		c.credits = t.Balance()
	}
	return c
}

// RestrictedBalanceError reports a posting that would push a restricted
// account's natural-side balance below zero.
type RestrictedBalanceError struct {
	Account string
	Balance decimal.Decimal // the balance the posting would have produced
}

func (e RestrictedBalanceError) Error() string {
	return fmt.Sprintf("posting would drive account %q to %s", e.Account, e.Balance)
}

// PostError reports which entry in a batch failed.
type PostError struct {
	Index int
	Err   error
}

func (e PostError) Error() string {
	return fmt.Sprintf("entry %d: %v", e.Index, e.Err)
}

func (e PostError) Unwrap() error {
	return e.Err
}

// Ledger maps account names to T-accounts. It is created once from a
// chart and thereafter mutated only through posting. Postings to the
// same ledger must be serialized by the caller; the restriction check
// and the mutation form a single check-then-act step.
type Ledger struct {
	order    []string
	accounts map[string]*TAccount
	null     string
	stage    Stage
}

// New builds a zero-balance ledger with one T-account per account. The
// slice must come from a validated chart, in declaration order.
func New(accounts []account.Account) *Ledger {
	l := &Ledger{accounts: make(map[string]*TAccount, len(accounts))}
	for _, a := range accounts {
		l.order = append(l.order, a.Name)
		l.accounts[a.Name] = &TAccount{meta: a}
		if a.Role == account.Null {
			l.null = a.Name
		}
	}
	return l
}

// Stage returns the closing stage of this ledger.
func (l *Ledger) Stage() Stage {
	return l.stage
}

// SetStage records closing progress. Only the closing pipeline should
// advance it.
func (l *Ledger) SetStage(s Stage) {
	l.stage = s
}

// Account returns the T-account for name.
func (l *Ledger) Account(name string) (*TAccount, error) {
	t, ok := l.accounts[name]
	if !ok {
		return nil, account.NotFoundError{Name: name}
	}
	return t, nil
}

// Accounts returns the T-accounts in chart declaration order.
func (l *Ledger) Accounts() []*TAccount {
	res := make([]*TAccount, 0, len(l.order))
	for _, name := range l.order {
		res = append(res, l.accounts[name])
	}
	return res
}

type delta struct {
	debit  decimal.Decimal
	credit decimal.Decimal
}

// Post applies a balanced entry atomically: either every leg is booked
// or none is. The entry fails with account.NotFoundError if it
// references a name absent from the ledger, entry.UnbalancedError if a
// multi-leg entry does not balance, and RestrictedBalanceError if the
// net effect would drive a restricted account's natural-side balance
// below zero.
func (l *Ledger) Post(e entry.Entry) error {
	atoms, err := e.Atoms(l.null)
	if err != nil {
		return err
	}
	var (
		deltas  = make(map[string]*delta)
		touched []string
	)
	record := func(name string) (*delta, error) {
		if _, ok := l.accounts[name]; !ok {
			return nil, account.NotFoundError{Name: name}
		}
		d, ok := deltas[name]
		if !ok {
			d = &delta{}
			deltas[name] = d
			touched = append(touched, name)
		}
		return d, nil
	}
	for _, a := range atoms {
		dr, err := record(a.Debit)
		if err != nil {
			return err
		}
		dr.debit = dr.debit.Add(a.Amount)
		cr, err := record(a.Credit)
		if err != nil {
			return err
		}
		cr.credit = cr.credit.Add(a.Amount)
	}
	// Check restrictions against the net effect before touching
	// anything, so a violation leaves the ledger unchanged.
	for _, name := range touched {
		t := l.accounts[name]
		if !t.meta.Restricted() {
			continue
		}
		d := deltas[name]
		debits, credits := t.debits.Add(d.debit), t.credits.Add(d.credit)
		balance := debits.Sub(credits)
		if t.meta.Side() == account.Credit {
			balance = credits.Sub(debits)
		}
		if balance.IsNegative() {
			return RestrictedBalanceError{Account: name, Balance: balance}
		}
	}
	for _, name := range touched {
		t, d := l.accounts[name], deltas[name]
		t.debits = t.debits.Add(d.debit)
		t.credits = t.credits.Add(d.credit)
	}
	return nil
}

// PostMany applies entries strictly in order. On the first failure the
// whole batch is rolled back and a PostError reports the offending
// entry's index.
func (l *Ledger) PostMany(entries []entry.Entry) error {
	saved := l.Copy()
	for i, e := range entries {
		if err := l.Post(e); err != nil {
			*l = *saved
			return PostError{Index: i, Err: err}
		}
	}
	return nil
}

// Totals is a pre-netting pair of cumulative debit and credit sums.
type Totals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Tuples returns each account's cumulative totals before netting.
func (l *Ledger) Tuples() map[string]Totals {
	res := make(map[string]Totals, len(l.order))
	for name, t := range l.accounts {
		debit, credit := t.Totals()
		res[name] = Totals{Debit: debit, Credit: credit}
	}
	return res
}

// Balances returns each account's signed balance on its natural side.
func (l *Ledger) Balances() map[string]decimal.Decimal {
	res := make(map[string]decimal.Decimal, len(l.order))
	for name, t := range l.accounts {
		res[name] = t.Balance()
	}
	return res
}

// Subset returns a view restricted to accounts matching pred, in chart
// declaration order. The view shares T-accounts with the ledger; use
// Copy first to detach it.
func (l *Ledger) Subset(pred func(account.Account) bool) *Ledger {
	s := &Ledger{accounts: make(map[string]*TAccount), null: l.null, stage: l.stage}
	for _, name := range l.order {
		t := l.accounts[name]
		if !pred(t.meta) {
			continue
		}
		s.order = append(s.order, name)
		s.accounts[name] = t
	}
	return s
}

// Copy deep-copies every T-account, so postings to the copy never
// affect the original.
func (l *Ledger) Copy() *Ledger {
	c := &Ledger{accounts: make(map[string]*TAccount, len(l.order)), null: l.null, stage: l.stage}
	for _, name := range l.order {
		c.order = append(c.order, name)
		c.accounts[name] = l.accounts[name].clone()
	}
	return c
}

// Condense returns a deep copy with every account's totals netted onto
// its natural side.
func (l *Ledger) Condense() *Ledger {
	c := &Ledger{accounts: make(map[string]*TAccount, len(l.order)), null: l.null, stage: l.stage}
	for _, name := range l.order {
		c.order = append(c.order, name)
		c.accounts[name] = l.accounts[name].condense()
	}
	return c
}
