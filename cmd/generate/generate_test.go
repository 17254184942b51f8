package generate

import (
	"math/rand"
	"testing"

	"github.com/summafin/summa/lib/store"
)

// A generated journal must replay and close cleanly: refunds are
// bounded by net sales, so folding them into sales at period close
// stays within the restricted floor.
func TestGeneratedJournalCloses(t *testing.T) {
	for _, seed := range []int64{1, 7, 42} {
		c, err := sampleChart()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		g := &generator{rnd: rand.New(rand.NewSource(seed))}
		opening := g.amount(50000, 100000)
		g.cash = opening
		journal := []store.Entry{store.NewEntry("seed capital", "cash", "equity", opening)}
		for i := 0; i < 2000; i++ {
			journal = append(journal, g.next())
		}

		b, err := store.Replay(c, journal)
		if err != nil {
			t.Fatalf("seed %d: replaying generated journal: %v", seed, err)
		}
		if _, err := b.Close(); err != nil {
			t.Fatalf("seed %d: closing generated journal: %v", seed, err)
		}
	}
}

func TestRefundsNeverExceedSales(t *testing.T) {
	g := &generator{rnd: rand.New(rand.NewSource(3))}
	g.cash = g.amount(50000, 100000)

	for i := 0; i < 5000; i++ {
		g.next()
		if g.sales.IsNegative() {
			t.Fatalf("net sales went negative after %d entries", i+1)
		}
	}
}
