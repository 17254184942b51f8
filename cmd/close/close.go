// Package close contains the command to run the period end close.
package close

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/summafin/summa/lib/store"
	"github.com/summafin/summa/lib/table"
)

// CreateCmd creates the command.
func CreateCmd() *cobra.Command {
	var r runner
	c := &cobra.Command{
		Use:   "close <directory>",
		Short: "close the accounting period",
		Long: `Close the accounting period.

Contra accounts are folded into their hosts, temporary balances are
swept into the income summary account, and the result lands in
retained earnings. The closing entries are appended to the journal.`,
		Args: cobra.ExactValidArgs(1),
		Run:  r.run,
	}
	r.setupFlags(c)
	return c
}

type runner struct {
	color bool
}

func (r *runner) setupFlags(c *cobra.Command) {
	c.Flags().BoolVar(&r.color, "color", true, "print output in color")
}

func (r *runner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *runner) execute(cmd *cobra.Command, args []string) error {
	b, _, err := store.Load(args[0])
	if err != nil {
		return err
	}
	entries, err := b.Close()
	if err != nil {
		return err
	}
	if err := store.Append(args[0], store.ClosingEntries(entries)...); err != nil {
		return err
	}

	t := table.New(3)
	t.AddSeparatorRow()
	t.AddRow().AddText("Debit", table.Center).AddText("Credit", table.Center).AddText("Amount", table.Center)
	t.AddSeparatorRow()
	for _, d := range entries.All() {
		t.AddRow().AddIndented(d.Debit, 2).AddIndented(d.Credit, 2).AddNumber(d.Amount)
	}
	t.AddSeparatorRow()
	return table.NewConsoleRenderer(r.color, 2).Render(t, cmd.OutOrStdout())
}
