package entry

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Entry is anything that can be posted to a ledger. Atoms reduces the
// entry to two-leg postings; multi-leg entries are routed through the
// null clearing account so that the posting primitive only ever sees
// two-leg entries.
type Entry interface {
	Atoms(null string) ([]Double, error)
}

// Double is a simple balanced posting: one debit account, one credit
// account, one amount.
type Double struct {
	Debit  string          `json:"debit"`
	Credit string          `json:"credit"`
	Amount decimal.Decimal `json:"amount"`
}

// New creates a two-leg entry.
func New(debit, credit string, amount decimal.Decimal) Double {
	return Double{Debit: debit, Credit: credit, Amount: amount}
}

// Atoms returns the entry itself; a two-leg entry is already atomic.
func (d Double) Atoms(string) ([]Double, error) {
	return []Double{d}, nil
}

func (d Double) String() string {
	return fmt.Sprintf("debit %s, credit %s, amount %s", d.Debit, d.Credit, d.Amount)
}

// Leg is one side of a multi-leg entry.
type Leg struct {
	Account string          `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}

// Multiple is an entry with any number of debit and credit legs. Debit
// and credit totals must match before it can be posted.
type Multiple struct {
	Debits  []Leg `json:"debits"`
	Credits []Leg `json:"credits"`
}

// NewMultiple creates an empty multi-leg entry. Add legs with Debit and
// Credit.
func NewMultiple() *Multiple {
	return &Multiple{}
}

// Debit appends a debit leg.
func (m *Multiple) Debit(name string, amount decimal.Decimal) *Multiple {
	m.Debits = append(m.Debits, Leg{Account: name, Amount: amount})
	return m
}

// Credit appends a credit leg.
func (m *Multiple) Credit(name string, amount decimal.Decimal) *Multiple {
	m.Credits = append(m.Credits, Leg{Account: name, Amount: amount})
	return m
}

// Sums returns the debit and credit totals.
func (m *Multiple) Sums() (debits, credits decimal.Decimal) {
	for _, l := range m.Debits {
		debits = debits.Add(l.Amount)
	}
	for _, l := range m.Credits {
		credits = credits.Add(l.Amount)
	}
	return debits, credits
}

// Validate checks the balance invariant.
func (m *Multiple) Validate() error {
	debits, credits := m.Sums()
	if !debits.Equal(credits) {
		return UnbalancedError{Debits: debits, Credits: credits}
	}
	return nil
}

// Atoms validates the balance invariant and decomposes the entry into
// two-leg entries routed through the null account: each debit leg
// debits its account against null, each credit leg credits its account
// against null. For a balanced entry the null account nets to zero.
func (m *Multiple) Atoms(null string) ([]Double, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	atoms := make([]Double, 0, len(m.Debits)+len(m.Credits))
	for _, l := range m.Debits {
		atoms = append(atoms, Double{Debit: l.Account, Credit: null, Amount: l.Amount})
	}
	for _, l := range m.Credits {
		atoms = append(atoms, Double{Debit: null, Credit: l.Account, Amount: l.Amount})
	}
	return atoms, nil
}

// UnbalancedError reports a multi-leg entry whose debit and credit
// totals differ.
type UnbalancedError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e UnbalancedError) Error() string {
	return fmt.Sprintf("entry is not balanced: debits %s != credits %s", e.Debits, e.Credits)
}
