// Package post contains the command to record a journal entry.
package post

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/summafin/summa/cmd/flags"
	"github.com/summafin/summa/lib/store"
)

// CreateCmd creates the command.
func CreateCmd() *cobra.Command {
	var r runner
	c := &cobra.Command{
		Use:   "post <directory>",
		Short: "record a journal entry",
		Long: `Record a journal entry in the book.

Each entry takes one or more debit and credit legs of the form
account:amount. Debits and credits must balance.`,
		Args: cobra.ExactValidArgs(1),
		Run:  r.run,
	}
	r.setupFlags(c)
	return c
}

type runner struct {
	debits, credits flags.LegFlag
	title           string
}

func (r *runner) setupFlags(c *cobra.Command) {
	c.Flags().VarP(&r.debits, "debit", "d", "debit leg")
	c.Flags().VarP(&r.credits, "credit", "c", "credit leg")
	c.Flags().StringVarP(&r.title, "title", "t", "", "description of the entry")
}

func (r *runner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *runner) execute(cmd *cobra.Command, args []string) error {
	if len(r.debits.Values()) == 0 || len(r.credits.Values()) == 0 {
		return fmt.Errorf("an entry needs at least one debit and one credit leg")
	}
	e := store.Entry{Title: r.title}
	for _, leg := range r.debits.Values() {
		e.Debits = append(e.Debits, store.Leg{Account: leg.Account, Amount: leg.Amount})
	}
	for _, leg := range r.credits.Values() {
		e.Credits = append(e.Credits, store.Leg{Account: leg.Account, Amount: leg.Amount})
	}
	b, _, err := store.Load(args[0])
	if err != nil {
		return err
	}
	if err := b.Post(e.Multiple()); err != nil {
		return err
	}
	return store.Append(args[0], e)
}
