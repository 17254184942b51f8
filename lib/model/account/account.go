package account

import "fmt"

// Side denotes the side of a T-account on which an amount is booked.
type Side int

const (
	// Debit is the left side of a T-account.
	Debit Side = iota
	// Credit is the right side of a T-account.
	Credit
)

func (s Side) String() string {
	switch s {
	case Debit:
		return "debit"
	case Credit:
		return "credit"
	}
	return ""
}

// Reverse returns the opposite side.
func (s Side) Reverse() Side {
	if s == Debit {
		return Credit
	}
	return Debit
}

// Type is the type of an account.
type Type int

const (
	// Asset represents an asset account.
	Asset Type = iota
	// Liability represents a liability account.
	Liability
	// Capital represents a capital (equity) account.
	Capital
	// Income represents an income account.
	Income
	// Expense represents an expense account.
	Expense
)

// Types is an array with the ordered account types.
var Types = []Type{Asset, Liability, Capital, Income, Expense}

func (t Type) String() string {
	switch t {
	case Asset:
		return "asset"
	case Liability:
		return "liability"
	case Capital:
		return "capital"
	case Income:
		return "income"
	case Expense:
		return "expense"
	}
	return ""
}

var types = map[string]Type{
	"asset":     Asset,
	"liability": Liability,
	"capital":   Capital,
	"income":    Income,
	"expense":   Expense,
}

// TypeOf parses an account type from its string form.
func TypeOf(s string) (Type, error) {
	t, ok := types[s]
	if !ok {
		return 0, fmt.Errorf("invalid account type %q", s)
	}
	return t, nil
}

// Side returns the natural side of accounts of this type: debit for
// assets and expenses, credit for the rest.
func (t Type) Side() Side {
	if t == Asset || t == Expense {
		return Debit
	}
	return Credit
}

// Temporary reports whether accounts of this type are zeroed at period
// close.
func (t Type) Temporary() bool {
	return t == Income || t == Expense
}

// Role distinguishes the singleton accounts every chart carries from
// regular business accounts.
type Role int

const (
	// Regular is an ordinary business account declared in the chart.
	Regular Role = iota
	// RetainedEarnings is the capital account receiving net earnings
	// at period close.
	RetainedEarnings
	// IncomeSummary is the intermediate account that nets income
	// against expenses during closing.
	IncomeSummary
	// Null is the clearing account used to decompose multi-leg
	// entries; its net balance is always zero.
	Null
)

// Account describes a single account in a chart: its name, its type and
// the capability flags that drive posting and closing. For a contra
// account, Type is the host's type and Host names the account it
// offsets.
type Account struct {
	Name   string
	Type   Type
	Contra bool
	Host   string
	Role   Role
}

// Side returns the side on which the account balance normally sits.
// Contra accounts invert their host's polarity. The income summary and
// null accounts are credit-normal by convention.
func (a Account) Side() Side {
	switch a.Role {
	case IncomeSummary, Null:
		return Credit
	}
	if a.Contra {
		return a.Type.Side().Reverse()
	}
	return a.Type.Side()
}

// Temporary reports whether the account is zeroed at period close.
// Income, expense and their contra accounts are temporary, as is the
// income summary account. Retained earnings and the null account carry
// forward.
func (a Account) Temporary() bool {
	switch a.Role {
	case IncomeSummary:
		return true
	case RetainedEarnings, Null:
		return false
	}
	return a.Type.Temporary()
}

// Restricted reports whether the account balance must stay non-negative
// on its natural side. All regular business accounts are restricted;
// retained earnings, income summary and the null account may run a
// deficit.
func (a Account) Restricted() bool {
	return a.Role == Regular
}

// IsType reports whether the account is a regular (non-contra) account
// of type t. Retained earnings counts as a capital account; the income
// summary and null accounts match no type.
func (a Account) IsType(t Type) bool {
	if a.Contra {
		return false
	}
	if a.Role != Regular && a.Role != RetainedEarnings {
		return false
	}
	return a.Type == t
}

// IsContraOf reports whether the account offsets a host of type t.
func (a Account) IsContraOf(t Type) bool {
	return a.Contra && a.Type == t
}

// NotFoundError is returned when a referenced account name does not
// exist.
type NotFoundError struct {
	Name string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("unknown account %q", e.Name)
}
