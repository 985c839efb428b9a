package cycle_test

import (
	"testing"

	"github.com/katalvlaran/tradecycle/cycle"
	"github.com/katalvlaran/tradecycle/market"
)

// chainMarket builds a market where agent i points at i+1 and the last agent keeps
// its own item: every origin except the last walks the full chain before failing.
func chainMarket(n int) *market.State {
	prefs := make([][]int, n)
	for i := 0; i < n-1; i++ {
		prefs[i] = []int{i + 1, i}
	}
	prefs[n-1] = []int{n - 1}

	return market.NewState(prefs)
}

// BenchmarkFind_BoundedChain1000 shows the quadratic worst case of BoundedWalk.
func BenchmarkFind_BoundedChain1000(b *testing.B) {
	s := chainMarket(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cycle.Find(s)
	}
}

// BenchmarkFind_ColoredChain1000 runs the same market through the linear sweep.
func BenchmarkFind_ColoredChain1000(b *testing.B) {
	s := chainMarket(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cycle.Find(s, cycle.WithStrategy(cycle.Colored))
	}
}
