package flipsketch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSquareKernelSinglePointMassRoundTrip(t *testing.T) {
	plot := SquareKernel([]Sample{{Value: 5, Weight: 3}}, 2)
	cum := plot.Cumulative()
	require.InDelta(t, 3.0, cum.Total(), 1e-9)
}

func TestSquareKernelOverlappingWindowsSum(t *testing.T) {
	plot := SquareKernel([]Sample{{Value: 0, Weight: 1}, {Value: 0.5, Weight: 1}}, 2)
	cum := plot.Cumulative()
	require.InDelta(t, 2.0, cum.Total(), 1e-9)
}

func TestSquareKernelDegenerate(t *testing.T) {
	require.True(t, SquareKernel(nil, 1).Cumulative().Empty())
	require.True(t, SquareKernel([]Sample{{Value: 1, Weight: 1}}, 0).Cumulative().Empty())
}

func TestEqualSpaceSmoothingPsMassConservation(t *testing.T) {
	points := []Sample{{Value: 0, Weight: 1}, {Value: 1, Weight: 2}, {Value: 2, Weight: 1}}
	plot := EqualSpaceSmoothingPs(points)
	cum := plot.Cumulative()
	require.InDelta(t, 4.0, cum.Total(), 1e-9)
}

func TestEqualSpaceSmoothingPsDegenerateSinglePoint(t *testing.T) {
	plot := EqualSpaceSmoothingPs([]Sample{{Value: 1, Weight: 5}})
	require.True(t, plot.Cumulative().Empty())
}

func TestNormalSmoothingPsMassRoundTrip(t *testing.T) {
	plot := NormalSmoothingPs([]Sample{{Value: 0, Weight: 10}}, 1)
	cum := plot.Cumulative()
	require.InDelta(t, 10.0, cum.Total(), 0.2)
}
