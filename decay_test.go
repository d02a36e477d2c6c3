package flipsketch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecayCacheMatchesExp(t *testing.T) {
	c := newDecayCache()
	for i := 0; i < 10; i++ {
		require.InDelta(t, math.Exp(-0.3*Prim(i)), c.rate(0.3, i), 1e-12)
	}
}

func TestDecayCacheBounded(t *testing.T) {
	c := newDecayCache()
	for i := 0; i < decayCacheCap*3; i++ {
		c.rate(0.1, i)
	}
	require.LessOrEqual(t, len(c.values), decayCacheCap)
}

func TestDecayCacheDropsOldestFirst(t *testing.T) {
	c := newDecayCache()
	for i := 0; i < decayCacheCap; i++ {
		c.rate(0.1, i)
	}
	_, present := c.values[decayKey{lambda: 0.1, i: 0}]
	require.True(t, present)
	c.rate(0.1, decayCacheCap) // forces eviction of the oldest (i=0)
	_, present = c.values[decayKey{lambda: 0.1, i: 0}]
	require.False(t, present)
}
