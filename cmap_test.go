package flipsketch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCmapDividerSortsAndApplies(t *testing.T) {
	c := Divider([]Prim{3, 1, 2})
	require.Equal(t, []Prim{1, 2, 3}, c.Dividers())
	require.Equal(t, 2, c.Apply(2.5))
}

func TestCmapApplyTieGoesRight(t *testing.T) {
	c := Divider([]Prim{1, 2, 3})
	require.Equal(t, 1, c.Apply(1))
	require.Equal(t, 2, c.Apply(2))
	require.Equal(t, 0, c.Apply(0.999))
}

func TestCmapRangeSentinels(t *testing.T) {
	c := Divider([]Prim{1, 2, 3})
	require.Equal(t, RangeP(math.Inf(-1), 1), c.Range(0))
	require.Equal(t, RangeP(3, math.Inf(1)), c.Range(3))
	require.Equal(t, RangeP(1, 2), c.Range(1))
}

func TestCmapSizeAndBins(t *testing.T) {
	c := Divider([]Prim{1, 2, 3})
	require.Equal(t, 4, c.Size())
	require.Len(t, c.Bins(), 4)
}

func TestCmapDedupe(t *testing.T) {
	c := Divider([]Prim{1, 1, 2, 2, 2, 3})
	require.Equal(t, []Prim{1, 2, 3}, c.Dividers())
}

func TestCmapApplyRoundTrip(t *testing.T) {
	ds := []Prim{-2, 0, 2, 4}
	c := Divider(ds)
	for i, d := range ds {
		require.Equal(t, i+1, c.Apply(d), "divider %v", d)
	}
}

func TestCmapEqual(t *testing.T) {
	a := Divider([]Prim{1, 2})
	b := Divider([]Prim{2, 1})
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(Divider([]Prim{1, 2, 3})))
}
