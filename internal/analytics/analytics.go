// Package analytics contains the pure numeric core: statistical and
// financial functions with no I/O and no side effects. Everything here
// is deterministic and safe to call from any goroutine.
package analytics

import "math"

// ZScore reports how many sample standard deviations current sits from
// the mean of history. History is the trailing window and must not
// include current (moving-average-of-the-past semantics).
//
// Non-finite entries are dropped. With fewer than 2 usable points, or
// with zero variance, the result is 0.0.
func ZScore(current float64, history []float64) float64 {
	clean := dropNonFinite(history)
	if len(clean) < 2 {
		return 0.0
	}

	mean := mean(clean)
	stdev := sampleStdev(clean, mean)
	if stdev == 0 {
		return 0.0
	}

	return (current - mean) / stdev
}

// PercentileRank returns the fraction of history strictly below current.
// 0.0 = lowest ever, 1.0 = highest ever. An empty history returns the
// neutral 0.5.
func PercentileRank(current float64, history []float64) float64 {
	clean := dropNonFinite(history)
	if len(clean) == 0 {
		return 0.5
	}

	below := 0
	for _, x := range clean {
		if x < current {
			below++
		}
	}
	return float64(below) / float64(len(clean))
}

// RealReturn applies the Fisher equation: r = (1+n)/(1+i) - 1.
// Rates are fractional (0.50 for 50%). Inflation at or below -100%
// returns 0 rather than blowing up the division.
func RealReturn(nominal, inflation float64) float64 {
	if inflation <= -1.0 {
		return 0.0
	}
	return (1+nominal)/(1+inflation) - 1
}

// ImpliedCarryTrade estimates the return of borrowing the short-yield
// currency to hold the long-yield one: interest differential minus the
// expected spot depreciation.
func ImpliedCarryTrade(longYield, shortYield, spot, expectedSpot float64) float64 {
	depreciation := (expectedSpot - spot) / spot
	return (longYield - shortYield) - depreciation
}

// FairValuePPP projects a purchasing-power-parity fair value from the
// single-period inflation differential: spot * (1 + (home - foreign)).
// This is the instantaneous approximation, not compounded over time.
func FairValuePPP(spot, homeInflation, foreignInflation float64) float64 {
	return spot * (1 + (homeInflation - foreignInflation))
}

func dropNonFinite(xs []float64) []float64 {
	clean := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			clean = append(clean, x)
		}
	}
	return clean
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStdev uses the N-1 divisor.
func sampleStdev(xs []float64, mean float64) float64 {
	ss := 0.0
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
