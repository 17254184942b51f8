// Package report contains the command to derive and print financial
// statements.
package report

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/summafin/summa/lib/model/chart"
	"github.com/summafin/summa/lib/reports"
	"github.com/summafin/summa/lib/store"
	"github.com/summafin/summa/lib/table"
)

// CreateCmd creates the command.
func CreateCmd() *cobra.Command {
	var r runner
	c := &cobra.Command{
		Use:   "report <directory>",
		Short: "print financial statements",
		Long: `Derive the trial balance, income statement and balance sheet from
the book. Without a statement flag, all three are printed. The book on
disk is never modified.`,
		Args: cobra.ExactValidArgs(1),
		Run:  r.run,
	}
	r.setupFlags(c)
	return c
}

type runner struct {
	trialBalance, incomeStatement, balanceSheet bool

	color  bool
	digits int32
}

func (r *runner) setupFlags(c *cobra.Command) {
	c.Flags().BoolVarP(&r.trialBalance, "trial-balance", "t", false, "print the trial balance")
	c.Flags().BoolVarP(&r.incomeStatement, "income-statement", "i", false, "print the income statement")
	c.Flags().BoolVarP(&r.balanceSheet, "balance-sheet", "b", false, "print the balance sheet")
	c.Flags().BoolVar(&r.color, "color", true, "print output in color")
	c.Flags().Int32Var(&r.digits, "digits", 2, "round to number of digits")
}

func (r *runner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *runner) execute(cmd *cobra.Command, args []string) error {
	var (
		c       *chart.Chart
		journal []store.Entry
	)
	g, _ := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		c, err = store.ReadChart(args[0])
		return err
	})
	g.Go(func() error {
		var err error
		journal, err = store.ReadJournal(args[0])
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	b, err := store.Replay(c, journal)
	if err != nil {
		return err
	}

	all := !r.trialBalance && !r.incomeStatement && !r.balanceSheet
	rn := reports.Renderer{Chart: c}
	renderer := table.NewConsoleRenderer(r.color, r.digits)
	out := cmd.OutOrStdout()

	if r.trialBalance || all {
		if err := renderer.Render(rn.TrialBalance(b.TrialBalance()), out); err != nil {
			return err
		}
	}
	if r.incomeStatement || all {
		is, err := b.IncomeStatement()
		if err != nil {
			return err
		}
		if err := renderer.Render(rn.IncomeStatement(is), out); err != nil {
			return err
		}
	}
	if r.balanceSheet || all {
		bs, err := b.BalanceSheet()
		if err != nil {
			return err
		}
		if err := renderer.Render(rn.BalanceSheet(bs), out); err != nil {
			return err
		}
	}
	return nil
}
