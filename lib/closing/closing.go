package closing

import (
	"fmt"

	"github.com/summafin/summa/lib/ledger"
	"github.com/summafin/summa/lib/model/account"
	"github.com/summafin/summa/lib/model/chart"
	"github.com/summafin/summa/lib/model/entry"
)

// Entries records the closing entries a pipeline produced, grouped into
// the four batches of a period close and kept in posting order within
// each batch. Zero-amount transfers are omitted, so closing an already
// closed ledger yields an empty record.
type Entries struct {
	// ContraIncome folds contra income accounts into their hosts.
	ContraIncome []entry.Double
	// ContraExpense folds contra expense accounts into their hosts.
	ContraExpense []entry.Double
	// Temporary moves income and expense balances to the income
	// summary account.
	Temporary []entry.Double
	// ISA moves net earnings from the income summary account to
	// retained earnings. At most one entry.
	ISA []entry.Double
}

// All flattens the batches in posting order.
func (e *Entries) All() []entry.Double {
	all := make([]entry.Double, 0, len(e.ContraIncome)+len(e.ContraExpense)+len(e.Temporary)+len(e.ISA))
	all = append(all, e.ContraIncome...)
	all = append(all, e.ContraExpense...)
	all = append(all, e.Temporary...)
	all = append(all, e.ISA...)
	return all
}

// Empty reports whether no closing entries were produced.
func (e *Entries) Empty() bool {
	return len(e.All()) == 0
}

// StateError reports an operation attempted in the wrong closing stage.
type StateError struct {
	Op    string
	Stage ledger.Stage
}

func (e StateError) Error() string {
	return fmt.Sprintf("cannot %s: ledger is %s", e.Op, e.Stage)
}

// Pipeline drives a ledger copy through the period-end closing stages
//
//	Open -> ContraClosed -> TemporaryClosed -> Closed
//
// one transition per method. The source ledger is never mutated; the
// copy is available at every intermediate stage, which is what lets an
// income statement and a balance sheet come out of a single pass.
type Pipeline struct {
	chart   *chart.Chart
	ledger  *ledger.Ledger
	entries Entries
}

// NewPipeline copies l and positions the copy at the open stage.
func NewPipeline(c *chart.Chart, l *ledger.Ledger) *Pipeline {
	cp := l.Copy()
	cp.SetStage(ledger.Open)
	return &Pipeline{chart: c, ledger: cp}
}

// Ledger returns the pipeline's ledger at its current stage. Reports
// may read it freely; posting to it is the pipeline's job alone.
func (p *Pipeline) Ledger() *ledger.Ledger {
	return p.ledger
}

// Entries returns the closing entries produced so far.
func (p *Pipeline) Entries() *Entries {
	return &p.entries
}

// transfer moves the balance of account from into account to. The
// transfer direction follows the source's polarity: a debit-normal
// source is credited (and the destination debited), a credit-normal
// source is debited. Zero balances produce no entry.
func (p *Pipeline) transfer(from, to string) (entry.Double, bool, error) {
	src, err := p.ledger.Account(from)
	if err != nil {
		return entry.Double{}, false, err
	}
	if _, err := p.ledger.Account(to); err != nil {
		return entry.Double{}, false, err
	}
	balance := src.Balance()
	if balance.IsZero() {
		return entry.Double{}, false, nil
	}
	var e entry.Double
	if src.Account().Side() == account.Debit {
		e = entry.New(to, from, balance)
	} else {
		e = entry.New(from, to, balance)
	}
	if err := p.ledger.Post(e); err != nil {
		return entry.Double{}, false, err
	}
	return e, true, nil
}

// CloseContra folds every contra income and contra expense account into
// its host: Open -> ContraClosed. Afterwards income and expense
// accounts carry their net-of-contra balances and the ledger is ready
// for an income statement.
func (p *Pipeline) CloseContra() error {
	if p.ledger.Stage() != ledger.Open {
		return StateError{Op: "close contra accounts", Stage: p.ledger.Stage()}
	}
	for _, pair := range p.chart.ContraPairs(account.Income) {
		e, posted, err := p.transfer(pair.Contra, pair.Host)
		if err != nil {
			return err
		}
		if posted {
			p.entries.ContraIncome = append(p.entries.ContraIncome, e)
		}
	}
	for _, pair := range p.chart.ContraPairs(account.Expense) {
		e, posted, err := p.transfer(pair.Contra, pair.Host)
		if err != nil {
			return err
		}
		if posted {
			p.entries.ContraExpense = append(p.entries.ContraExpense, e)
		}
	}
	p.ledger.SetStage(ledger.ContraClosed)
	return nil
}

// CloseTemporary moves every income and expense balance to the income
// summary account: ContraClosed -> TemporaryClosed. The income summary
// account then holds net earnings, which may be negative.
func (p *Pipeline) CloseTemporary() error {
	if p.ledger.Stage() != ledger.ContraClosed {
		return StateError{Op: "close temporary accounts", Stage: p.ledger.Stage()}
	}
	isa := p.chart.IncomeSummary()
	for _, name := range p.chart.Names(account.Income) {
		e, posted, err := p.transfer(name, isa)
		if err != nil {
			return err
		}
		if posted {
			p.entries.Temporary = append(p.entries.Temporary, e)
		}
	}
	for _, name := range p.chart.Names(account.Expense) {
		e, posted, err := p.transfer(name, isa)
		if err != nil {
			return err
		}
		if posted {
			p.entries.Temporary = append(p.entries.Temporary, e)
		}
	}
	p.ledger.SetStage(ledger.TemporaryClosed)
	return nil
}

// CloseISA transfers net earnings from the income summary account to
// retained earnings: TemporaryClosed -> Closed. This is the terminal
// stage; every temporary account now reads zero.
func (p *Pipeline) CloseISA() error {
	if p.ledger.Stage() != ledger.TemporaryClosed {
		return StateError{Op: "close the income summary account", Stage: p.ledger.Stage()}
	}
	e, posted, err := p.transfer(p.chart.IncomeSummary(), p.chart.RetainedEarnings())
	if err != nil {
		return err
	}
	if posted {
		p.entries.ISA = append(p.entries.ISA, e)
	}
	p.ledger.SetStage(ledger.Closed)
	return nil
}

// Close runs the full pipeline on a copy of l and returns the closing
// entries and the closed ledger. l itself is left untouched. Closing an
// already closed ledger is a no-op: every transfer amount is zero, so
// no entries are generated.
func Close(c *chart.Chart, l *ledger.Ledger) (*Entries, *ledger.Ledger, error) {
	p := NewPipeline(c, l)
	if err := p.CloseContra(); err != nil {
		return nil, nil, err
	}
	if err := p.CloseTemporary(); err != nil {
		return nil, nil, err
	}
	if err := p.CloseISA(); err != nil {
		return nil, nil, err
	}
	return p.Entries(), p.Ledger(), nil
}
