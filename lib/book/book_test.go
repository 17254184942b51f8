package book_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/summafin/summa/lib/book"
	"github.com/summafin/summa/lib/model/account"
	"github.com/summafin/summa/lib/model/chart"
	"github.com/summafin/summa/lib/model/entry"
)

func amt(i int64) decimal.Decimal {
	return decimal.NewFromInt(i)
}

func serviceChart(t *testing.T) *chart.Chart {
	t.Helper()
	c := chart.Default()
	for _, err := range []error{
		c.Add(account.Asset, "cash"),
		c.Add(account.Expense, "salaries"),
		c.Add(account.Expense, "rent"),
		c.Add(account.Capital, "equity"),
		c.Add(account.Income, "services", "cashback"),
	} {
		require.NoError(t, err)
	}
	return c
}

func TestBookLifecycle(t *testing.T) {
	b, err := book.NewWithOpening(serviceChart(t), map[string]decimal.Decimal{
		"cash":   amt(1400),
		"equity": amt(1500),
		"re":     amt(-100),
	})
	require.NoError(t, err)
	require.NoError(t, b.PostMany([]entry.Entry{
		entry.New("rent", "cash", amt(200)),
		entry.New("cash", "services", amt(825)),
		entry.New("cashback", "cash", amt(25)),
		entry.New("salaries", "cash", amt(400)),
	}))

	is, err := b.IncomeStatement()
	require.NoError(t, err)
	assert.True(t, is.NetEarnings().Equal(amt(200)), "net earnings before close")
	assert.False(t, b.Closed())

	entries, err := b.Close()
	require.NoError(t, err)
	assert.Len(t, entries.All(), 4)
	assert.True(t, b.Closed())

	balances := b.Balances()
	assert.True(t, balances["cash"].Equal(amt(1600)))
	assert.True(t, balances["re"].Equal(amt(100)))
	assert.True(t, balances["services"].IsZero())

	is, err = b.IncomeStatement()
	require.NoError(t, err)
	assert.True(t, is.Income["services"].Equal(amt(800)), "income statement survives the close")

	bs, err := b.BalanceSheet()
	require.NoError(t, err)
	assert.True(t, bs.Capital["equity"].Equal(amt(1500)))

	assert.ErrorIs(t, b.Post(entry.New("cash", "services", amt(1))), book.ErrClosed)
	_, err = b.Close()
	assert.ErrorIs(t, err, book.ErrClosed)
}

func TestBookRejectsInvalidChart(t *testing.T) {
	c := chart.New("re", "re", "null")

	_, err := book.New(c)

	assert.Error(t, err)
}

func TestBookReportsBeforeClose(t *testing.T) {
	b, err := book.NewWithOpening(serviceChart(t), map[string]decimal.Decimal{
		"cash":   amt(1000),
		"equity": amt(1000),
	})
	require.NoError(t, err)
	require.NoError(t, b.Post(entry.New("cash", "services", amt(300))))

	bs, err := b.BalanceSheet()
	require.NoError(t, err)
	assert.True(t, bs.Assets["cash"].Equal(amt(1300)))
	assert.True(t, bs.Capital["re"].Equal(amt(300)), "projected retained earnings")

	assert.False(t, b.Closed(), "deriving reports must not close the book")
	assert.True(t, b.Balances()["services"].Equal(amt(300)))
}

func TestBookConcurrentPosting(t *testing.T) {
	b, err := book.New(serviceChart(t))
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 100; i++ {
		g.Go(func() error {
			return b.Post(entry.New("cash", "services", amt(1)))
		})
	}
	require.NoError(t, g.Wait())

	assert.True(t, b.Balances()["cash"].Equal(amt(100)))
	assert.True(t, b.Balances()["services"].Equal(amt(100)))
}
