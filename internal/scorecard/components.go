package scorecard

import "github.com/macrowatch/macrowatch/internal/datasources"

// The ladders below are fixed calibration, not config: each maps one
// raw macro reading to a score step and a label.

func scoreYieldCurve(panel *datasources.MacroPanel) (Component, bool) {
	if panel == nil {
		return Component{}, false
	}
	tr10, ok10 := panel.Bonds["tr_10y"]
	tr2, ok2 := panel.Bonds["tr_2y"]
	if !ok10 || !ok2 {
		return Component{}, false
	}

	spread := tr10 - tr2
	c := Component{Value: fmtPct(spread)}
	switch {
	case spread > 2:
		c.Score, c.Signal = 1.0, "STEEP (Normal)"
	case spread > 0:
		c.Score, c.Signal = 0.3, "FLAT (Watch)"
	case spread > -1:
		c.Score, c.Signal = -0.5, "INVERTED (Warning)"
	default:
		c.Score, c.Signal = -1.0, "DEEP INVERSION (Danger)"
	}
	return c, true
}

func scoreRealCarry(panel *datasources.MacroPanel, series []datasources.SeriesPoint) (Component, bool) {
	if panel == nil {
		return Component{}, false
	}
	deposit, okDep := panel.PolicyRates["deposit"]
	fed, okFed := panel.Bonds["fed_funds"]
	usCPI, okUS := panel.Bonds["us_cpi"]
	cpi, okCPI := findSeries(series, "cpi")
	if !okDep || !okFed || !okUS || !okCPI {
		return Component{}, false
	}

	carry := (deposit - cpi) - (fed - usCPI)
	c := Component{Value: fmtPct1(carry)}
	switch {
	case carry > 5:
		c.Score, c.Signal = 1.0, "STRONG CARRY"
	case carry > 0:
		c.Score, c.Signal = 0.5, "POSITIVE CARRY"
	case carry > -3:
		c.Score, c.Signal = -0.3, "NEGATIVE CARRY"
	default:
		c.Score, c.Signal = -1.0, "CAPITAL FLIGHT RISK"
	}
	return c, true
}

func scorePPICPIGap(series []datasources.SeriesPoint) (Component, bool) {
	gap, ok := findSeries(series, "ppi_cpi_gap")
	if !ok {
		return Component{}, false
	}

	c := Component{Value: fmtPts(gap)}
	switch {
	case gap < -5:
		c.Score, c.Signal = 0.5, "DEFLATIONARY (Margins expanding)"
	case gap < 0:
		c.Score, c.Signal = 0.3, "HEALTHY"
	case gap < 5:
		c.Score, c.Signal = -0.3, "COST PRESSURE"
	default:
		c.Score, c.Signal = -1.0, "MARGIN SQUEEZE"
	}
	return c, true
}

func scoreERP(erp map[string]float64) (Component, bool) {
	v, ok := erp["erp"]
	if !ok {
		return Component{}, false
	}

	c := Component{Value: fmtPct1(v)}
	switch {
	case v > 3:
		c.Score, c.Signal = 1.0, "STOCKS CHEAP"
	case v > 0:
		c.Score, c.Signal = 0.3, "STOCKS FAIR"
	case v > -5:
		c.Score, c.Signal = -0.5, "BONDS ATTRACTIVE"
	default:
		c.Score, c.Signal = -1.0, "STOCKS EXPENSIVE"
	}
	return c, true
}

func scoreCDS(panel *datasources.MacroPanel, series []datasources.SeriesPoint) (Component, bool) {
	cds, ok := findSeries(series, "cds_5y")
	if !ok {
		if panel == nil || panel.CDS == nil {
			return Component{}, false
		}
		cds = panel.CDS.Value
	}

	c := Component{Value: fmtBps(cds)}
	switch {
	case cds < 200:
		c.Score, c.Signal = 1.0, "LOW RISK"
	case cds < 350:
		c.Score, c.Signal = 0.3, "MODERATE"
	case cds < 500:
		c.Score, c.Signal = -0.5, "ELEVATED"
	default:
		c.Score, c.Signal = -1.0, "DISTRESSED"
	}
	return c, true
}

func scoreGoldCorr(corr *datasources.GoldCorr) (Component, bool) {
	if corr == nil {
		return Component{}, false
	}

	v := corr.CorrUSD
	c := Component{Value: fmtCorr(v)}
	switch {
	case v > 0.85:
		c.Score, c.Signal = -0.8, "PURE FX HEDGE (Lira fear)"
	case v > 0.5:
		c.Score, c.Signal = -0.3, "MIXED DRIVER"
	default:
		c.Score, c.Signal = 0.5, "COMMODITY PLAY (Healthy)"
	}
	return c, true
}
