package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZScore_SampleStdev(t *testing.T) {
	// mean=10, sample stdev=sqrt(2.5)~1.581 -> (14-10)/1.581 ~ 2.530
	z := ZScore(14, []float64{8, 9, 10, 11, 12})
	assert.InDelta(t, 2.530, z, 0.001)
}

func TestZScore_InsufficientHistory(t *testing.T) {
	assert.Equal(t, 0.0, ZScore(100, nil))
	assert.Equal(t, 0.0, ZScore(100, []float64{5}))
	// Only one usable point after dropping non-finite entries
	assert.Equal(t, 0.0, ZScore(100, []float64{5, math.NaN(), math.Inf(1)}))
}

func TestZScore_ZeroVariance(t *testing.T) {
	flat := make([]float64, 30)
	for i := range flat {
		flat[i] = 42.0
	}
	assert.Equal(t, 0.0, ZScore(999, flat))
	assert.Equal(t, 0.0, ZScore(42, flat))
}

func TestZScore_DropsNonFinite(t *testing.T) {
	withGaps := []float64{8, math.NaN(), 9, 10, math.Inf(-1), 11, 12}
	assert.InDelta(t, ZScore(14, []float64{8, 9, 10, 11, 12}), ZScore(14, withGaps), 1e-12)
}

func TestPercentileRank(t *testing.T) {
	hist := []float64{10, 20, 30, 40, 50}

	assert.Equal(t, 0.6, PercentileRank(35, hist))
	assert.Equal(t, 0.0, PercentileRank(5, hist))
	assert.Equal(t, 1.0, PercentileRank(60, hist))
	assert.Equal(t, 0.5, PercentileRank(123, nil))
}

func TestPercentileRank_StrictlyLess(t *testing.T) {
	// Ties do not count as "below"
	assert.Equal(t, 0.2, PercentileRank(20, []float64{10, 20, 30, 40, 50}))
}

func TestRealReturn(t *testing.T) {
	assert.InDelta(t, 0.0714, RealReturn(0.50, 0.40), 0.0001)
	assert.InDelta(t, 0.0714, RealReturn(0.05, -0.02), 0.0001)
}

func TestRealReturn_HyperDeflationGuard(t *testing.T) {
	assert.Equal(t, 0.0, RealReturn(0.10, -1.0))
	assert.Equal(t, 0.0, RealReturn(0.10, -1.5))
}

func TestImpliedCarryTrade(t *testing.T) {
	// (0.50-0.05) - (40-30)/30 = 0.45 - 0.3333 = 0.1166
	got := ImpliedCarryTrade(0.50, 0.05, 30.0, 40.0)
	assert.InDelta(t, 0.1166, got, 0.0001)
}

func TestFairValuePPP(t *testing.T) {
	assert.Equal(t, 43.5, FairValuePPP(30.0, 0.50, 0.05))
	// No inflation differential, no adjustment
	assert.Equal(t, 30.0, FairValuePPP(30.0, 0.10, 0.10))
}
