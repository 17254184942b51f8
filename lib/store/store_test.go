package store_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summafin/summa/lib/book"
	"github.com/summafin/summa/lib/model/account"
	"github.com/summafin/summa/lib/model/chart"
	"github.com/summafin/summa/lib/model/entry"
	"github.com/summafin/summa/lib/store"
)

func amt(i int64) decimal.Decimal {
	return decimal.NewFromInt(i)
}

func testChart(t *testing.T) *chart.Chart {
	t.Helper()
	c := chart.Default()
	for _, err := range []error{
		c.Add(account.Asset, "cash"),
		c.Add(account.Capital, "equity"),
		c.Add(account.Income, "services", "cashback", "discounts"),
		c.Add(account.Expense, "salaries"),
	} {
		require.NoError(t, err)
	}
	return c
}

func TestChartRoundtrip(t *testing.T) {
	dir := t.TempDir()
	c := testChart(t)

	require.NoError(t, store.Init(dir, c))
	got, err := store.ReadChart(dir)
	require.NoError(t, err)

	assert.Equal(t, c.RetainedEarnings(), got.RetainedEarnings())
	assert.Equal(t, c.IncomeSummary(), got.IncomeSummary())
	assert.Equal(t, c.NullAccount(), got.NullAccount())
	if diff := cmp.Diff(c.Accounts(), got.Accounts()); diff != "" {
		t.Errorf("unexpected diff (+got/-want):\n%s", diff)
	}
}

func TestInitRefusesExistingChart(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, store.Init(dir, testChart(t)))

	assert.Error(t, store.Init(dir, testChart(t)))
}

func TestJournalRoundtrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, store.Init(dir, testChart(t)))

	want := []store.Entry{
		store.NewEntry("seed capital", "cash", "equity", amt(1000)),
		{
			Title:   "invoice with discount",
			Debits:  []store.Leg{{Account: "cash", Amount: amt(95)}, {Account: "discounts", Amount: amt(5)}},
			Credits: []store.Leg{{Account: "services", Amount: amt(100)}},
		},
	}
	require.NoError(t, store.Append(dir, want...))

	got, err := store.ReadJournal(dir)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected diff (+got/-want):\n%s", diff)
	}
}

func TestLoadReplaysJournal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, store.Init(dir, testChart(t)))
	require.NoError(t, store.Append(dir,
		store.NewEntry("seed capital", "cash", "equity", amt(1000)),
		store.NewEntry("", "cash", "services", amt(250)),
	))

	b, journal, err := store.Load(dir)

	require.NoError(t, err)
	assert.Len(t, journal, 2)
	assert.True(t, b.Balances()["cash"].Equal(amt(1250)))
	assert.True(t, b.Balances()["services"].Equal(amt(250)))
}

func TestLoadRestoresClosedState(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, store.Init(dir, testChart(t)))
	require.NoError(t, store.Append(dir,
		store.NewEntry("seed capital", "cash", "equity", amt(1000)),
		store.NewEntry("", "cash", "services", amt(300)),
		store.NewEntry("", "salaries", "cash", amt(100)),
	))
	b, _, err := store.Load(dir)
	require.NoError(t, err)
	closingEntries, err := b.Close()
	require.NoError(t, err)
	require.NoError(t, store.Append(dir, store.ClosingEntries(closingEntries)...))

	reloaded, journal, err := store.Load(dir)
	require.NoError(t, err)

	assert.True(t, reloaded.Closed(), "closed state must survive a reload")
	assert.ErrorIs(t, reloaded.Post(entry.New("cash", "services", amt(1))), book.ErrClosed)

	is, err := reloaded.IncomeStatement()
	require.NoError(t, err)
	assert.True(t, is.Income["services"].Equal(amt(300)), "income statement must survive a reload")
	assert.True(t, is.Expenses["salaries"].Equal(amt(100)))

	assert.True(t, reloaded.Balances()["re"].Equal(amt(200)))
	assert.True(t, reloaded.Balances()["services"].IsZero())

	var marked int
	for _, e := range journal {
		if e.Closing {
			marked++
		}
	}
	assert.Equal(t, len(closingEntries.All()), marked)
}

func TestLoadRejectsBadJournal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, store.Init(dir, testChart(t)))
	require.NoError(t, store.Append(dir, store.NewEntry("", "cash", "unknown", amt(10))))

	_, _, err := store.Load(dir)

	var notFound account.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "unknown", notFound.Name)
}
