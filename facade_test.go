package flipsketch

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func baseScenarioConf() SketchConf {
	return SketchConf{
		CmapSize:    4,
		CmapNo:      2,
		CmapStart:   0,
		CmapEnd:     10,
		CounterSize: 8,
		CounterNo:   2,
		QueueSize:   16,
		DecayFactor: 0.1,
		MixingRatio: 1,
		Window:      1,
	}
}

// Scenario 1: empty sketch sums to zero.
func TestScenarioEmptySketchSumIsZero(t *testing.T) {
	s, err := EmptySketch(baseScenarioConf(), IdentityMeasure())
	require.NoError(t, err)
	require.Equal(t, Count(0), s.Sum())
}

// Scenario 2 & 3: three repeated updates at the same point, held in the
// adaptive queue, count around that point, and whole-line probability.
func TestScenarioRepeatedPointUpdateAndWholeLineProbability(t *testing.T) {
	s, err := EmptyAdaptiveSketch(baseScenarioConf(), IdentityMeasure())
	require.NoError(t, err)

	s.Update(5.0, 1.0)
	s.Update(5.0, 1.0)
	s.Update(5.0, 1.0)

	require.InDelta(t, 3.0, s.Count(4.999, 5.001), 0.5)
	require.InDelta(t, 1.0, s.Probability(math.Inf(-1), math.Inf(1)), 1e-9)
}

// Scenario 4: a uniform stream over [0,1] should count roughly half its
// mass in the middle half of the range.
func TestScenarioUniformStreamMiddleHalfCount(t *testing.T) {
	conf := SketchConf{
		CmapSize:    16,
		CmapNo:      2,
		CmapStart:   0,
		CmapEnd:     1,
		CounterSize: 64,
		CounterNo:   3,
		QueueSize:   32,
		DecayFactor: 0.05,
		MixingRatio: 1,
		Window:      0.05,
	}
	s, err := EmptySketch(conf, IdentityMeasure())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		s.Update(rng.Float64(), 1.0)
	}

	got := s.Count(0.25, 0.75)
	require.InDelta(t, 500, float64(got), 50)
}

// Scenario 5: step drift. A first generation centered near 0, rearranged,
// then a second generation centered near 10; probability mass near the new
// center should increase across successive rearrangements.
func TestScenarioStepDriftRearrangeIncreasesNewMassProbability(t *testing.T) {
	conf := SketchConf{
		CmapSize:    16,
		CmapNo:      3,
		CmapStart:   -5,
		CmapEnd:     15,
		CounterSize: 64,
		CounterNo:   3,
		QueueSize:   64,
		DecayFactor: 0.1,
		MixingRatio: 1,
		Window:      1,
	}
	s, err := EmptyAdaptiveSketch(conf, IdentityMeasure())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	gen := func(mean Prim, n int) {
		for i := 0; i < n; i++ {
			s.Update(mean+rng.NormFloat64(), 1.0)
		}
		s.Rearrange()
	}

	gen(0, 500)
	first := s.Probability(8, 12)

	gen(10, 500)
	second := s.Probability(8, 12)

	gen(10, 500)
	third := s.Probability(8, 12)

	require.GreaterOrEqual(t, second, first)
	require.GreaterOrEqual(t, third, second)
	require.Greater(t, float64(third), 0.3)
}

// Scenario 6: Cmap.divider sorts its dividers before applying.
func TestScenarioCmapDividerSortsBeforeApply(t *testing.T) {
	c := Divider([]Prim{3, 1, 2})
	require.Equal(t, 2, c.Apply(2.5))
}

func TestSketchCloneIsIndependent(t *testing.T) {
	s, err := EmptySketch(baseScenarioConf(), IdentityMeasure())
	require.NoError(t, err)
	s.Update(5.0, 1.0)

	clone := s.Clone()
	clone.Update(5.0, 1.0)

	require.NotEqual(t, s.Sum(), clone.Sum())
}

func TestSketchStringIncludesKind(t *testing.T) {
	s, err := EmptySketch(baseScenarioConf(), IdentityMeasure())
	require.NoError(t, err)
	require.Contains(t, s.String(), "kind=base")

	a, err := EmptyAdaptiveSketch(baseScenarioConf(), IdentityMeasure())
	require.NoError(t, err)
	require.Contains(t, a.String(), "kind=adaptive")
}

func TestSketchMetricsTrackNarrowAndDeepUpdates(t *testing.T) {
	s, err := EmptySketch(baseScenarioConf(), IdentityMeasure())
	require.NoError(t, err)

	s.Update(5.0, 1.0)
	require.Equal(t, uint64(1), s.Metrics.NarrowUpdates())

	s.Rearrange()
	require.Equal(t, uint64(1), s.Metrics.DeepUpdates())
}
