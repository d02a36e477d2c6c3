package flipsketch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCmCounterUpdatesAndGet(t *testing.T) {
	var c HCounter = newCmCounter(8, 2)
	c = c.Updates([]BinWeight{{Bin: 3, Weight: 1}, {Bin: 3, Weight: 2}})
	require.InDelta(t, 3.0, c.Get(3), 1e-9)
	require.InDelta(t, 3.0, c.Sum(), 1e-9)
}

func TestCmCounterImmutable(t *testing.T) {
	c0 := newCmCounter(8, 2)
	c1 := c0.Updates([]BinWeight{{Bin: 1, Weight: 5}})
	require.Equal(t, Count(0), c0.Get(1))
	require.InDelta(t, 5.0, c1.Get(1), 1e-9)
}

func TestCmCounterCountRange(t *testing.T) {
	var c HCounter = newCmCounter(64, 3)
	c = c.Updates([]BinWeight{{Bin: 0, Weight: 1}, {Bin: 1, Weight: 2}, {Bin: 2, Weight: 3}})
	require.InDelta(t, 6.0, c.Count(0, 2), 1e-9)
	require.InDelta(t, 3.0, c.Count(1, 2), 1e-9)
}

func TestCmCounterSumMonotoneNonDecreasing(t *testing.T) {
	var c HCounter = newCmCounter(16, 2)
	prev := c.Sum()
	for i := 0; i < 10; i++ {
		c = c.Updates([]BinWeight{{Bin: i % 4, Weight: 1}})
		require.GreaterOrEqual(t, c.Sum(), prev)
		prev = c.Sum()
	}
}

func TestCmCounterEstimateNeverUnderTrue(t *testing.T) {
	// With a narrow width, distinct bins may collide; estimate must never
	// undercount what was actually inserted into that bin.
	var c HCounter = newCmCounter(2, 3)
	for i := 0; i < 20; i++ {
		c = c.Updates([]BinWeight{{Bin: i, Weight: 1}})
	}
	for i := 0; i < 20; i++ {
		require.GreaterOrEqual(t, c.Get(i), Count(1))
	}
}

func TestNext2Power(t *testing.T) {
	require.Equal(t, uint64(1), next2Power(0))
	require.Equal(t, uint64(1), next2Power(1))
	require.Equal(t, uint64(8), next2Power(5))
	require.Equal(t, uint64(16), next2Power(16))
}
