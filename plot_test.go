package flipsketch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDensityPlotInterpolation(t *testing.T) {
	p := NewDensityPlot([]Range{RangeP(0, 1), RangeP(1, 2)}, []Prim{2, 4})
	require.Equal(t, Prim(2), p.Interpolation(0.5))
	require.Equal(t, Prim(4), p.Interpolation(1.5))
	require.Equal(t, Prim(0), p.Interpolation(5))
}

func TestDensityPlotScale(t *testing.T) {
	p := NewDensityPlot([]Range{RangeP(0, 1)}, []Prim{2})
	scaled := p.Scale(3)
	require.Equal(t, Prim(6), scaled.Interpolation(0.5))
	require.Equal(t, Prim(2), p.Interpolation(0.5), "original must stay unchanged")
}

func TestDensityPlotAdd(t *testing.T) {
	p1 := NewDensityPlot([]Range{RangeP(0, 2)}, []Prim{1})
	p2 := NewDensityPlot([]Range{RangeP(1, 3)}, []Prim{2})
	sum := p1.Add(p2)
	require.InDelta(t, 1.0, sum.Interpolation(0.5), 1e-9)
	require.InDelta(t, 3.0, sum.Interpolation(1.5), 1e-9)
	require.InDelta(t, 2.0, sum.Interpolation(2.5), 1e-9)
}

func TestDensityPlotCumulativeMonotone(t *testing.T) {
	p := NewDensityPlot([]Range{RangeP(0, 1), RangeP(1, 2), RangeP(2, 3)}, []Prim{1, 2, 0.5})
	cum := p.Cumulative()
	require.InDelta(t, 0.0, cum.Interpolation(0), 1e-9)
	require.InDelta(t, 1.0, cum.Interpolation(1), 1e-9)
	require.InDelta(t, 3.0, cum.Interpolation(2), 1e-9)
	require.InDelta(t, 3.5, cum.Interpolation(3), 1e-9)
	// saturation
	require.InDelta(t, 3.5, cum.Interpolation(math.Inf(1)), 1e-9)
	require.InDelta(t, 0.0, cum.Interpolation(math.Inf(-1)), 1e-9)

	prev := -1.0
	for x := 0.0; x <= 3; x += 0.1 {
		v := cum.Interpolation(x)
		require.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestCumulativePlotInverseRoundTrip(t *testing.T) {
	p := NewDensityPlot([]Range{RangeP(0, 1), RangeP(1, 2)}, []Prim{1, 1})
	cum := p.Cumulative()
	inv := cum.Inverse()
	for _, pt := range []linearPoint{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}} {
		require.InDelta(t, pt.Y, inv.Interpolation(cum.Interpolation(pt.X)), 1e-9)
	}
}

func TestCountPlotInterpolationRaw(t *testing.T) {
	p := CountPlotDisjoint([]plotRecord{{R: RangeP(0, 10), V: 7}})
	require.Equal(t, Prim(7), p.Interpolation(3))
	require.Equal(t, Prim(0), p.Interpolation(20))
}

func TestDensityPlotEmptyCumulative(t *testing.T) {
	p := DensityPlotDisjoint(nil)
	cum := p.Cumulative()
	require.True(t, cum.Empty())
	require.Equal(t, Prim(0), cum.Total())
}
