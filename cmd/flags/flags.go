// Package flags contains reusable flag types for the command line
// interface.
package flags

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

var _ pflag.Value = (*AccountFlag)(nil)

// AccountFlag collects account declarations of the form
// "name" or "name:contra1,contra2".
type AccountFlag struct {
	values []AccountValue
}

// AccountValue is one declared account with its contra accounts.
type AccountValue struct {
	Name   string
	Contra []string
}

// Values returns the collected declarations.
func (f *AccountFlag) Values() []AccountValue {
	return f.values
}

// Set implements pflag.Value.
func (f *AccountFlag) Set(v string) error {
	name, contra, found := strings.Cut(v, ":")
	value := AccountValue{Name: strings.TrimSpace(name)}
	if value.Name == "" {
		return fmt.Errorf("invalid account declaration %q", v)
	}
	if found {
		for _, c := range strings.Split(contra, ",") {
			c = strings.TrimSpace(c)
			if c == "" {
				return fmt.Errorf("invalid account declaration %q", v)
			}
			value.Contra = append(value.Contra, c)
		}
	}
	f.values = append(f.values, value)
	return nil
}

func (f *AccountFlag) String() string {
	var ss []string
	for _, v := range f.values {
		if len(v.Contra) == 0 {
			ss = append(ss, v.Name)
			continue
		}
		ss = append(ss, fmt.Sprintf("%s:%s", v.Name, strings.Join(v.Contra, ",")))
	}
	return strings.Join(ss, " ")
}

// Type implements pflag.Value.
func (f *AccountFlag) Type() string {
	return "name[:contra,...]"
}

var _ pflag.Value = (*LegFlag)(nil)

// LegFlag collects entry legs of the form "account:amount".
type LegFlag struct {
	values []LegValue
}

// LegValue is one parsed leg.
type LegValue struct {
	Account string
	Amount  decimal.Decimal
}

// Values returns the collected legs.
func (f *LegFlag) Values() []LegValue {
	return f.values
}

// Set implements pflag.Value.
func (f *LegFlag) Set(v string) error {
	account, amount, found := strings.Cut(v, ":")
	account = strings.TrimSpace(account)
	if !found || account == "" {
		return fmt.Errorf("invalid leg %q, want account:amount", v)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return fmt.Errorf("invalid leg %q: %v", v, err)
	}
	f.values = append(f.values, LegValue{Account: account, Amount: d})
	return nil
}

func (f *LegFlag) String() string {
	var ss []string
	for _, v := range f.values {
		ss = append(ss, fmt.Sprintf("%s:%s", v.Account, v.Amount))
	}
	return strings.Join(ss, " ")
}

// Type implements pflag.Value.
func (f *LegFlag) Type() string {
	return "account:amount"
}
