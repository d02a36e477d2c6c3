package flipsketch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRangeBasics(t *testing.T) {
	r := RangeP(1, 5)
	require.Equal(t, Prim(4), r.Length())
	require.False(t, r.IsPoint())
	require.Equal(t, Prim(3), r.Middle())
	require.True(t, r.Contains(1))
	require.False(t, r.Contains(5))
}

func TestRangeIsPoint(t *testing.T) {
	r := RangeP(2, 2)
	require.True(t, r.IsPoint())
	require.Equal(t, Prim(0), r.Length())
}

func TestRangeOverlapPercent(t *testing.T) {
	r := RangeP(0, 10)
	require.InDelta(t, 0.5, r.OverlapPercent(RangeP(5, 10)), 1e-9)
	require.InDelta(t, 0.0, r.OverlapPercent(RangeP(20, 30)), 1e-9)
	require.InDelta(t, 1.0, r.OverlapPercent(RangeP(-5, 15)), 1e-9)

	point := RangeP(3, 3)
	require.Equal(t, Prim(0), point.OverlapPercent(RangeP(0, 10)))
}

func TestRangeOverlapPercentInfinite(t *testing.T) {
	outer := RangeP(math.Inf(-1), 0)
	// full containment of the outer bin by a whole-line query
	require.InDelta(t, 1.0, outer.OverlapPercent(RangeP(math.Inf(-1), math.Inf(1))), 1e-9)
	// a finite sub-interval of an infinite bin carries no measure
	require.Equal(t, Prim(0), outer.OverlapPercent(RangeP(-5, -1)))
}
