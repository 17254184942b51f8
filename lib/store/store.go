// Package store persists a chart of accounts and a journal of entries
// in a directory, so the command line tool can work across
// invocations. The chart is kept as YAML, the journal as JSON. Writes
// go through a temporary file and an atomic rename.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"

	"github.com/summafin/summa/lib/book"
	"github.com/summafin/summa/lib/closing"
	"github.com/summafin/summa/lib/model/account"
	"github.com/summafin/summa/lib/model/chart"
	"github.com/summafin/summa/lib/model/entry"
)

const (
	// ChartFile is the chart file name inside a book directory.
	ChartFile = "chart.yaml"
	// JournalFile is the journal file name inside a book directory.
	JournalFile = "journal.json"
)

type chartDoc struct {
	RetainedEarnings string       `yaml:"retained_earnings"`
	IncomeSummary    string       `yaml:"income_summary"`
	NullAccount      string       `yaml:"null_account"`
	Accounts         []accountDoc `yaml:"accounts"`
}

type accountDoc struct {
	Type   string   `yaml:"type"`
	Name   string   `yaml:"name"`
	Contra []string `yaml:"contra,omitempty"`
}

// Leg is one side of a stored entry.
type Leg struct {
	Account string          `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}

// Entry is a stored journal entry. Simple two account entries are kept
// as one debit and one credit leg. Closing entries carry a marker so a
// reload can tell the business entries of a period from its close.
type Entry struct {
	Title   string `json:"title,omitempty"`
	Debits  []Leg  `json:"debits"`
	Credits []Leg  `json:"credits"`
	Closing bool   `json:"closing,omitempty"`
}

// NewEntry builds a stored entry from a debit account, a credit
// account and an amount.
func NewEntry(title, debit, credit string, amount decimal.Decimal) Entry {
	return Entry{
		Title:   title,
		Debits:  []Leg{{Account: debit, Amount: amount}},
		Credits: []Leg{{Account: credit, Amount: amount}},
	}
}

// ClosingEntries converts a closing record into marked journal
// entries, in posting order, titled per batch.
func ClosingEntries(rec *closing.Entries) []Entry {
	var stored []Entry
	for _, batch := range []struct {
		title   string
		doubles []entry.Double
	}{
		{"close contra income accounts", rec.ContraIncome},
		{"close contra expense accounts", rec.ContraExpense},
		{"close temporary accounts", rec.Temporary},
		{"close the income summary account", rec.ISA},
	} {
		for _, d := range batch.doubles {
			e := NewEntry(batch.title, d.Debit, d.Credit, d.Amount)
			e.Closing = true
			stored = append(stored, e)
		}
	}
	return stored
}

// Multiple converts the stored entry into a postable one.
func (e Entry) Multiple() *entry.Multiple {
	m := entry.NewMultiple()
	for _, leg := range e.Debits {
		m.Debit(leg.Account, leg.Amount)
	}
	for _, leg := range e.Credits {
		m.Credit(leg.Account, leg.Amount)
	}
	return m
}

// WriteChart serializes the chart to dir. Contra accounts are listed
// under their host.
func WriteChart(dir string, c *chart.Chart) error {
	doc := chartDoc{
		RetainedEarnings: c.RetainedEarnings(),
		IncomeSummary:    c.IncomeSummary(),
		NullAccount:      c.NullAccount(),
	}
	for _, a := range c.Accounts() {
		if a.Role != account.Regular || a.Contra {
			continue
		}
		doc.Accounts = append(doc.Accounts, accountDoc{
			Type:   a.Type.String(),
			Name:   a.Name,
			Contra: c.ContrasOf(a.Name),
		})
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return atomic.WriteFile(filepath.Join(dir, ChartFile), bytes.NewReader(data))
}

// ReadChart loads and validates the chart from dir.
func ReadChart(dir string) (*chart.Chart, error) {
	data, err := os.ReadFile(filepath.Join(dir, ChartFile))
	if err != nil {
		return nil, err
	}
	var doc chartDoc
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, err
	}
	c := chart.New(doc.RetainedEarnings, doc.IncomeSummary, doc.NullAccount)
	for _, a := range doc.Accounts {
		t, err := account.TypeOf(a.Type)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", a.Name, err)
		}
		if err := c.Add(t, a.Name, a.Contra...); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// WriteJournal serializes the journal to dir.
func WriteJournal(dir string, journal []Entry) error {
	if journal == nil {
		journal = []Entry{}
	}
	data, err := json.MarshalIndent(journal, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(filepath.Join(dir, JournalFile), bytes.NewReader(data))
}

// ReadJournal loads the journal from dir.
func ReadJournal(dir string) ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(dir, JournalFile))
	if err != nil {
		return nil, err
	}
	var journal []Entry
	if err := json.Unmarshal(data, &journal); err != nil {
		return nil, err
	}
	return journal, nil
}

// Append adds entries to the stored journal.
func Append(dir string, entries ...Entry) error {
	journal, err := ReadJournal(dir)
	if err != nil {
		return err
	}
	return WriteJournal(dir, append(journal, entries...))
}

// Init creates dir with the given chart and an empty journal. It fails
// if dir already holds a chart.
func Init(dir string, c *chart.Chart) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(dir, ChartFile)); err == nil {
		return fmt.Errorf("%s already contains a %s", dir, ChartFile)
	}
	if err := WriteChart(dir, c); err != nil {
		return err
	}
	return WriteJournal(dir, nil)
}

// Replay builds a fresh book from a stored journal. Business entries
// are posted in order; if the journal carries closing entries the
// period close is re-run, so the book comes back in the closed state
// with its income statement intact.
func Replay(c *chart.Chart, journal []Entry) (*book.Book, error) {
	b, err := book.New(c)
	if err != nil {
		return nil, err
	}
	var (
		business []entry.Entry
		closed   bool
	)
	for _, e := range journal {
		if e.Closing {
			closed = true
			continue
		}
		business = append(business, e.Multiple())
	}
	if err := b.PostMany(business); err != nil {
		return nil, err
	}
	if closed {
		if _, err := b.Close(); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Load reads the chart and journal from dir and replays the journal
// into a fresh book.
func Load(dir string) (*book.Book, []Entry, error) {
	c, err := ReadChart(dir)
	if err != nil {
		return nil, nil, err
	}
	journal, err := ReadJournal(dir)
	if err != nil {
		return nil, nil, err
	}
	b, err := Replay(c, journal)
	if err != nil {
		return nil, nil, err
	}
	return b, journal, nil
}
