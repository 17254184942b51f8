package chart

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/summafin/summa/lib/ledger"
	"github.com/summafin/summa/lib/model/account"
	"github.com/summafin/summa/lib/model/entry"
)

// Chart declares the accounts a ledger may hold: regular accounts with
// their type, contra accounts tied to a host, and the three singleton
// accounts every chart carries (retained earnings, income summary and
// the null clearing account). All names are globally unique.
type Chart struct {
	retainedEarnings string
	incomeSummary    string
	null             string
	accounts         []account.Account // declaration order, singletons excluded
	index            map[string]int
}

// New creates an empty chart with the given singleton account names.
func New(retainedEarnings, incomeSummary, null string) *Chart {
	return &Chart{
		retainedEarnings: retainedEarnings,
		incomeSummary:    incomeSummary,
		null:             null,
		index:            make(map[string]int),
	}
}

// Default returns an empty chart with the conventional singleton names.
func Default() *Chart {
	return New("re", "current_profit", "null")
}

// RetainedEarnings returns the retained earnings account name.
func (c *Chart) RetainedEarnings() string {
	return c.retainedEarnings
}

// IncomeSummary returns the income summary account name.
func (c *Chart) IncomeSummary() string {
	return c.incomeSummary
}

// NullAccount returns the null clearing account name.
func (c *Chart) NullAccount() string {
	return c.null
}

// DuplicateNameError reports an account name already present in the
// chart.
type DuplicateNameError struct {
	Name string
}

func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate account name %q", e.Name)
}

// UnknownHostError reports a contra account whose host is not a regular
// account in the chart.
type UnknownHostError struct {
	Host   string
	Contra string
}

func (e UnknownHostError) Error() string {
	return fmt.Sprintf("cannot offset %q: no regular account %q in chart", e.Contra, e.Host)
}

func (c *Chart) taken(name string) bool {
	if name == c.retainedEarnings || name == c.incomeSummary || name == c.null {
		return true
	}
	_, ok := c.index[name]
	return ok
}

// Add declares a regular account of type t, with optional contra
// accounts offsetting it.
func (c *Chart) Add(t account.Type, name string, contraNames ...string) error {
	if c.taken(name) {
		return DuplicateNameError{Name: name}
	}
	c.index[name] = len(c.accounts)
	c.accounts = append(c.accounts, account.Account{Name: name, Type: t})
	for _, contra := range contraNames {
		if err := c.Offset(name, contra); err != nil {
			return err
		}
	}
	return nil
}

// Offset declares contra as a contra account of host. The contra
// account carries the host's type with inverted polarity.
func (c *Chart) Offset(host, contra string) error {
	i, ok := c.index[host]
	if !ok || c.accounts[i].Contra {
		return UnknownHostError{Host: host, Contra: contra}
	}
	if c.taken(contra) {
		return DuplicateNameError{Name: contra}
	}
	c.index[contra] = len(c.accounts)
	c.accounts = append(c.accounts, account.Account{
		Name:   contra,
		Type:   c.accounts[i].Type,
		Contra: true,
		Host:   host,
	})
	return nil
}

// Validate re-checks the chart invariants: every name (including the
// singletons) is distinct and every contra account references a regular
// account. All violations found are reported, not just the first.
func (c *Chart) Validate() error {
	var errs error
	seen := make(map[string]bool)
	for _, name := range []string{c.retainedEarnings, c.incomeSummary, c.null} {
		if name == "" {
			errs = multierr.Append(errs, fmt.Errorf("chart is missing a singleton account name"))
			continue
		}
		if seen[name] {
			errs = multierr.Append(errs, DuplicateNameError{Name: name})
		}
		seen[name] = true
	}
	for _, a := range c.accounts {
		if seen[a.Name] {
			errs = multierr.Append(errs, DuplicateNameError{Name: a.Name})
		}
		seen[a.Name] = true
		if !a.Contra {
			continue
		}
		i, ok := c.index[a.Host]
		if !ok || c.accounts[i].Contra {
			errs = multierr.Append(errs, UnknownHostError{Host: a.Host, Contra: a.Name})
		}
	}
	return errs
}

// Accounts returns every account in the chart: the declared accounts in
// declaration order followed by the three singletons.
func (c *Chart) Accounts() []account.Account {
	all := make([]account.Account, 0, len(c.accounts)+3)
	all = append(all, c.accounts...)
	all = append(all,
		account.Account{Name: c.retainedEarnings, Type: account.Capital, Role: account.RetainedEarnings},
		account.Account{Name: c.incomeSummary, Role: account.IncomeSummary},
		account.Account{Name: c.null, Role: account.Null},
	)
	return all
}

// Ledger builds a fresh zero-balance ledger with one T-account per
// chart name. The chart itself is not modified.
func (c *Chart) Ledger() *ledger.Ledger {
	return ledger.New(c.Accounts())
}

// Pair is a (host, contra) relationship.
type Pair struct {
	Host   string
	Contra string
}

// ContraPairs lists the (host, contra) pairs whose host is of type t,
// in declaration order.
func (c *Chart) ContraPairs(t account.Type) []Pair {
	var pairs []Pair
	for _, a := range c.accounts {
		if a.IsContraOf(t) {
			pairs = append(pairs, Pair{Host: a.Host, Contra: a.Name})
		}
	}
	return pairs
}

// Names lists the regular (non-contra) account names of the given
// types, in declaration order. Retained earnings counts as a capital
// account.
func (c *Chart) Names(types ...account.Type) []string {
	var names []string
	for _, a := range c.Accounts() {
		for _, t := range types {
			if a.IsType(t) {
				names = append(names, a.Name)
				break
			}
		}
	}
	return names
}

// ContrasOf lists the contra account names offsetting host, in
// declaration order.
func (c *Chart) ContrasOf(host string) []string {
	var names []string
	for _, a := range c.accounts {
		if a.Contra && a.Host == host {
			names = append(names, a.Name)
		}
	}
	return names
}

// Opening builds a balanced multi-leg entry seeding a fresh ledger with
// prior-period closing balances. Each balance posts on its account's
// natural side; a negative balance stays a negative leg on that side,
// which only the unrestricted singletons can absorb.
func (c *Chart) Opening(balances map[string]decimal.Decimal) (*entry.Multiple, error) {
	m := entry.NewMultiple()
	matched := 0
	for _, a := range c.Accounts() {
		balance, ok := balances[a.Name]
		if !ok {
			continue
		}
		matched++
		if a.Side() == account.Debit {
			m.Debit(a.Name, balance)
		} else {
			m.Credit(a.Name, balance)
		}
	}
	if matched != len(balances) {
		for name := range balances {
			if !c.taken(name) {
				return nil, account.NotFoundError{Name: name}
			}
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
