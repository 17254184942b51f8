// Package generate contains the command to create a synthetic book,
// mainly for demos and benchmarks.
package generate

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/summafin/summa/lib/model/account"
	"github.com/summafin/summa/lib/model/chart"
	"github.com/summafin/summa/lib/store"
)

// CreateCmd creates the command.
func CreateCmd() *cobra.Command {
	var r runner
	c := &cobra.Command{
		Use:   "generate <directory>",
		Short: "generate a synthetic book",
		Long:  `Generate a book with a sample chart of accounts and random activity.`,
		Args:  cobra.ExactValidArgs(1),
		Run:   r.run,
	}
	r.setupFlags(c)
	return c
}

type runner struct {
	entries int
	seed    int64
	quiet   bool
}

func (r *runner) setupFlags(c *cobra.Command) {
	c.Flags().IntVar(&r.entries, "entries", 1000, "number of journal entries to generate")
	c.Flags().Int64Var(&r.seed, "seed", 1, "random seed")
	c.Flags().BoolVarP(&r.quiet, "quiet", "q", false, "suppress the progress bar")
}

func (r *runner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *runner) execute(cmd *cobra.Command, args []string) error {
	if r.entries < 0 {
		return fmt.Errorf("entries must be nonnegative")
	}
	c, err := sampleChart()
	if err != nil {
		return err
	}
	if err := store.Init(args[0], c); err != nil {
		return err
	}

	g := &generator{rnd: rand.New(rand.NewSource(r.seed))}
	journal := make([]store.Entry, 0, r.entries+1)
	seed := g.amount(50000, 100000)
	g.cash = seed
	journal = append(journal, store.NewEntry("seed capital", "cash", "equity", seed))

	var bar *pb.ProgressBar
	if !r.quiet {
		bar = pb.StartNew(r.entries)
		defer bar.Finish()
	}
	for i := 0; i < r.entries; i++ {
		journal = append(journal, g.next())
		if bar != nil {
			bar.Increment()
		}
	}
	if err := store.Append(args[0], journal...); err != nil {
		return err
	}
	p := message.NewPrinter(language.English)
	p.Fprintf(cmd.OutOrStdout(), "generated %v entries in %s\n", number.Decimal(r.entries), args[0])
	return nil
}

func sampleChart() (*chart.Chart, error) {
	c := chart.Default()
	for _, err := range []error{
		c.Add(account.Asset, "cash"),
		c.Add(account.Asset, "receivables"),
		c.Add(account.Capital, "equity"),
		c.Add(account.Liability, "loans"),
		c.Add(account.Income, "sales", "refunds"),
		c.Add(account.Expense, "salaries"),
		c.Add(account.Expense, "rent"),
	} {
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

// generator tracks running cash, receivables and net sales so that no
// generated entry can push a restricted balance below zero, neither
// when posted nor when the period is later closed.
type generator struct {
	rnd                      *rand.Rand
	cash, receivables, sales decimal.Decimal
}

func (g *generator) next() store.Entry {
	switch g.rnd.Intn(6) {
	case 0:
		return g.invoice()
	case 1:
		return g.cashSale()
	case 2:
		if g.receivables.LessThan(decimal.NewFromInt(1)) {
			return g.invoice()
		}
		a := capAt(g.amount(10, 500), g.receivables)
		g.receivables = g.receivables.Sub(a)
		g.cash = g.cash.Add(a)
		return store.NewEntry("payment received", "cash", "receivables", a)
	case 3:
		return g.refund()
	case 4:
		return g.outflow("rent", "rent", 500, 1500)
	default:
		return g.outflow("payroll", "salaries", 1000, 3000)
	}
}

func (g *generator) invoice() store.Entry {
	a := g.amount(100, 5000)
	g.receivables = g.receivables.Add(a)
	g.sales = g.sales.Add(a)
	return store.NewEntry("invoice", "receivables", "sales", a)
}

func (g *generator) cashSale() store.Entry {
	a := g.amount(50, 2000)
	g.cash = g.cash.Add(a)
	g.sales = g.sales.Add(a)
	return store.NewEntry("cash sale", "cash", "sales", a)
}

// refund is capped by cash and by net sales, so folding the refunds
// account into sales at period close cannot overdraw sales.
func (g *generator) refund() store.Entry {
	lo := decimal.NewFromInt(10)
	if g.cash.LessThan(lo) || g.sales.LessThan(lo) {
		return g.cashSale()
	}
	a := capAt(capAt(g.amount(10, 200), g.cash), g.sales)
	g.cash = g.cash.Sub(a)
	g.sales = g.sales.Sub(a)
	return store.NewEntry("refund", "refunds", "cash", a)
}

func (g *generator) outflow(title, debit string, lo, hi int64) store.Entry {
	if g.cash.LessThan(decimal.NewFromInt(lo)) {
		return g.cashSale()
	}
	a := capAt(g.amount(lo, hi), g.cash)
	g.cash = g.cash.Sub(a)
	return store.NewEntry(title, debit, "cash", a)
}

func (g *generator) amount(lo, hi int64) decimal.Decimal {
	cents := lo*100 + g.rnd.Int63n((hi-lo)*100)
	return decimal.New(cents, -2)
}

func capAt(a, limit decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(limit) {
		return limit
	}
	return a
}
