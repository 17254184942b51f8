// Package initialize contains the command to create a new book
// directory.
package initialize

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/summafin/summa/cmd/flags"
	"github.com/summafin/summa/lib/model/account"
	"github.com/summafin/summa/lib/model/chart"
	"github.com/summafin/summa/lib/store"
)

// CreateCmd creates the command.
func CreateCmd() *cobra.Command {
	var r runner
	c := &cobra.Command{
		Use:   "init <directory>",
		Short: "create a new book",
		Long: `Create a directory with a chart of accounts and an empty journal.

Accounts are declared per type, with contra accounts listed after a
colon, e.g. --income "sales:refunds,discounts".`,
		Args: cobra.ExactValidArgs(1),
		Run:  r.run,
	}
	r.setupFlags(c)
	return c
}

type runner struct {
	assets, liabilities, capital, income, expenses flags.AccountFlag

	retainedEarnings, incomeSummary, nullAccount string
}

func (r *runner) setupFlags(c *cobra.Command) {
	c.Flags().Var(&r.assets, "asset", "declare an asset account")
	c.Flags().Var(&r.liabilities, "liability", "declare a liability account")
	c.Flags().Var(&r.capital, "capital", "declare a capital account")
	c.Flags().Var(&r.income, "income", "declare an income account")
	c.Flags().Var(&r.expenses, "expense", "declare an expense account")
	c.Flags().StringVar(&r.retainedEarnings, "retained-earnings", "re", "name of the retained earnings account")
	c.Flags().StringVar(&r.incomeSummary, "income-summary", "current_profit", "name of the income summary account")
	c.Flags().StringVar(&r.nullAccount, "null-account", "null", "name of the null account")
}

func (r *runner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *runner) execute(cmd *cobra.Command, args []string) error {
	c := chart.New(r.retainedEarnings, r.incomeSummary, r.nullAccount)
	for _, group := range []struct {
		t    account.Type
		flag *flags.AccountFlag
	}{
		{account.Asset, &r.assets},
		{account.Liability, &r.liabilities},
		{account.Capital, &r.capital},
		{account.Income, &r.income},
		{account.Expense, &r.expenses},
	} {
		for _, v := range group.flag.Values() {
			if err := c.Add(group.t, v.Name, v.Contra...); err != nil {
				return err
			}
		}
	}
	if err := store.Init(args[0], c); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", args[0])
	return nil
}
