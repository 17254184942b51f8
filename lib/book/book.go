// Package book provides a concurrency safe façade over a chart of
// accounts and its ledger. A book serializes all postings through a
// single writer lock and keeps the intermediate ledger snapshot that
// income statement derivation needs after the period is closed.
package book

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/summafin/summa/lib/closing"
	"github.com/summafin/summa/lib/ledger"
	"github.com/summafin/summa/lib/model/chart"
	"github.com/summafin/summa/lib/model/entry"
	"github.com/summafin/summa/lib/reports"
)

// ErrClosed is returned when posting to or re-closing an already
// closed book.
var ErrClosed = errors.New("book is closed")

// Book is a ledger with its chart and closing state. All methods are
// safe for concurrent use.
type Book struct {
	mu      sync.Mutex
	chart   *chart.Chart
	ledger  *ledger.Ledger
	interim *ledger.Ledger
	entries *closing.Entries
}

// New validates the chart and opens a book with zero balances.
func New(c *chart.Chart) (*Book, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Book{chart: c, ledger: c.Ledger()}, nil
}

// NewWithOpening opens a book carrying the given balances forward.
// Balances are stated on each account's natural side and must satisfy
// the accounting equation.
func NewWithOpening(c *chart.Chart, balances map[string]decimal.Decimal) (*Book, error) {
	b, err := New(c)
	if err != nil {
		return nil, err
	}
	opening, err := c.Opening(balances)
	if err != nil {
		return nil, err
	}
	if err := b.ledger.Post(opening); err != nil {
		return nil, err
	}
	return b, nil
}

// Chart returns the chart this book was opened with.
func (b *Book) Chart() *chart.Chart {
	return b.chart
}

// Post records a single entry.
func (b *Book) Post(e entry.Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.entries != nil {
		return ErrClosed
	}
	return b.ledger.Post(e)
}

// PostMany records entries as one batch. If any entry fails, none of
// the batch is applied.
func (b *Book) PostMany(entries []entry.Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.entries != nil {
		return ErrClosed
	}
	return b.ledger.PostMany(entries)
}

// Balances returns a snapshot of all account balances.
func (b *Book) Balances() map[string]decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.Balances()
}

// Closed reports whether the period has been closed.
func (b *Book) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.entries != nil
}

// Close runs the period end pipeline and records the closing entries.
// The intermediate ledger is retained so the income statement stays
// derivable after temporary balances are swept away.
func (b *Book) Close() (*closing.Entries, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.entries != nil {
		return nil, ErrClosed
	}
	p := closing.NewPipeline(b.chart, b.ledger)
	if err := p.CloseContra(); err != nil {
		return nil, err
	}
	interim := p.Ledger().Copy()
	if err := p.CloseTemporary(); err != nil {
		return nil, err
	}
	if err := p.CloseISA(); err != nil {
		return nil, err
	}
	b.interim = interim
	b.ledger = p.Ledger()
	b.entries = p.Entries()
	return b.entries, nil
}

// ClosingEntries returns the recorded closing entries, or nil before
// the close.
func (b *Book) ClosingEntries() *closing.Entries {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.entries
}

// TrialBalance derives the trial balance of the current ledger.
func (b *Book) TrialBalance() *reports.TrialBalance {
	b.mu.Lock()
	defer b.mu.Unlock()
	return reports.NewTrialBalance(b.ledger)
}

// IncomeStatement derives the income statement. Before the close it
// works on a throwaway copy with contra accounts folded, so the book
// itself is untouched.
func (b *Book) IncomeStatement() (*reports.IncomeStatement, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.entries != nil {
		return reports.NewIncomeStatement(b.chart, b.interim)
	}
	p := closing.NewPipeline(b.chart, b.ledger)
	if err := p.CloseContra(); err != nil {
		return nil, err
	}
	return reports.NewIncomeStatement(b.chart, p.Ledger())
}

// BalanceSheet derives the balance sheet. Before the close it runs the
// full pipeline on a throwaway copy, so the book itself is untouched.
func (b *Book) BalanceSheet() (*reports.BalanceSheet, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.entries != nil {
		return reports.NewBalanceSheet(b.chart, b.ledger)
	}
	_, closed, err := closing.Close(b.chart, b.ledger)
	if err != nil {
		return nil, err
	}
	return reports.NewBalanceSheet(b.chart, closed)
}
