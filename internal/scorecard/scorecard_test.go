package scorecard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrowatch/macrowatch/internal/cache"
	"github.com/macrowatch/macrowatch/internal/datasources"
)

type stubMacro struct {
	panel *datasources.MacroPanel
	calls int
}

func (s *stubMacro) Panel(ctx context.Context) (*datasources.MacroPanel, error) {
	s.calls++
	if s.panel == nil {
		return nil, datasources.ErrUnavailable
	}
	return s.panel, nil
}

type stubTurkey struct{ series []datasources.SeriesPoint }

func (s *stubTurkey) Series(ctx context.Context) ([]datasources.SeriesPoint, error) {
	if s.series == nil {
		return nil, datasources.ErrUnavailable
	}
	return s.series, nil
}

type stubERP struct{ m map[string]float64 }

func (s *stubERP) ERP(ctx context.Context) (map[string]float64, error) {
	if s.m == nil {
		return nil, datasources.ErrUnavailable
	}
	return s.m, nil
}

type stubCorr struct{ gc *datasources.GoldCorr }

func (s *stubCorr) Corr(ctx context.Context) (*datasources.GoldCorr, error) {
	if s.gc == nil {
		return nil, datasources.ErrUnavailable
	}
	return s.gc, nil
}

func fullPanel() *datasources.MacroPanel {
	return &datasources.MacroPanel{
		PolicyRates: map[string]float64{"deposit": 47.0},
		Bonds: map[string]float64{
			"tr_10y":    27.0,
			"tr_2y":     24.0,
			"fed_funds": 5.25,
			"us_cpi":    3.1,
		},
		CDS: &datasources.CDSQuote{Value: 305},
	}
}

func fullSeries() []datasources.SeriesPoint {
	return []datasources.SeriesPoint{
		{Key: "cpi", Last: 48.6},
		{Key: "ppi_cpi_gap", Last: -2.1},
		{Key: "cds_5y", Last: 310},
	}
}

func engineWith(macro *stubMacro, turkey *stubTurkey, erp *stubERP, corr *stubCorr) *Engine {
	return New(Sources{Macro: macro, Turkey: turkey, EquityRisk: erp, GoldCorr: corr}, cache.NewMemory())
}

func TestCompute_AllComponents(t *testing.T) {
	e := engineWith(
		&stubMacro{panel: fullPanel()},
		&stubTurkey{series: fullSeries()},
		&stubERP{m: map[string]float64{"erp": 4.2, "pe": 8.0, "tr_10y": 27.0}},
		&stubCorr{gc: &datasources.GoldCorr{CorrUSD: 0.91}},
	)

	res := e.Compute(context.Background())

	assert.Equal(t, 6, res.Available)
	assert.Equal(t, 6, res.Total)
	assert.Contains(t, res.Scores, "yield_curve")
	assert.Contains(t, res.Scores, "real_carry")
	assert.Contains(t, res.Scores, "ppi_cpi_gap")
	assert.Contains(t, res.Scores, "erp")
	assert.Contains(t, res.Scores, "cds")
	assert.Contains(t, res.Scores, "gold_corr")

	// yield curve 3.0 -> 1.0; real carry (47-48.6)-(5.25-3.1)=-3.75 -> -1.0;
	// gap -2.1 -> 0.3; erp 4.2 -> 1.0; cds 310 -> 0.3; corr 0.91 -> -0.8
	want := (1.0*0.2 - 1.0*0.2 + 0.3*0.1 + 1.0*0.2 + 0.3*0.2 - 0.8*0.1) / 1.0 * 100
	assert.InDelta(t, want, res.Composite, 0.11)
	assert.Equal(t, "NEUTRAL", res.Signal)
}

func TestCompute_RenormalizesOverAvailableComponents(t *testing.T) {
	// Only yield curve and ERP resolvable.
	e := engineWith(
		&stubMacro{panel: &datasources.MacroPanel{
			Bonds: map[string]float64{"tr_10y": 27.0, "tr_2y": 24.0},
		}},
		&stubTurkey{},
		&stubERP{m: map[string]float64{"erp": 4.2}},
		&stubCorr{},
	)

	res := e.Compute(context.Background())

	assert.Equal(t, 2, res.Available)
	// (1.0*0.2 + 1.0*0.2) / (0.2+0.2) * 100, normalized by available weight only
	assert.InDelta(t, 100.0, res.Composite, 0.001)
	assert.Equal(t, "RISK-ON", res.Signal)
}

func TestCompute_NothingAvailable(t *testing.T) {
	e := engineWith(&stubMacro{}, &stubTurkey{}, &stubERP{}, &stubCorr{})

	res := e.Compute(context.Background())

	assert.Zero(t, res.Available)
	assert.Zero(t, res.Composite)
	assert.Equal(t, "NEUTRAL", res.Signal)
}

func TestCompute_RiskOffLabel(t *testing.T) {
	// Deep inversion plus distressed CDS only.
	e := engineWith(
		&stubMacro{panel: &datasources.MacroPanel{
			Bonds: map[string]float64{"tr_10y": 20.0, "tr_2y": 26.0},
			CDS:   &datasources.CDSQuote{Value: 650},
		}},
		&stubTurkey{},
		&stubERP{},
		&stubCorr{},
	)

	res := e.Compute(context.Background())
	assert.InDelta(t, -100.0, res.Composite, 0.001)
	assert.Equal(t, "RISK-OFF", res.Signal)
}

func TestCompute_CDSFallsBackToMacroPanel(t *testing.T) {
	series := []datasources.SeriesPoint{{Key: "cpi", Last: 48.6}} // no cds_5y
	e := engineWith(
		&stubMacro{panel: fullPanel()},
		&stubTurkey{series: series},
		&stubERP{},
		&stubCorr{},
	)

	res := e.Compute(context.Background())
	c, ok := res.Scores["cds"]
	require.True(t, ok)
	assert.Equal(t, 0.3, c.Score) // 305 bps -> MODERATE
	assert.Equal(t, "305 bps", c.Value)
}

func TestCompute_ComponentValueFormats(t *testing.T) {
	e := engineWith(
		&stubMacro{panel: fullPanel()},
		&stubTurkey{series: fullSeries()},
		&stubERP{m: map[string]float64{"erp": 4.25}},
		&stubCorr{gc: &datasources.GoldCorr{CorrUSD: 0.42}},
	)

	res := e.Compute(context.Background())

	// carry = (47.0-48.6) - (5.25-3.1) = -3.75
	assert.Equal(t, "3.00%", res.Scores["yield_curve"].Value)
	assert.Equal(t, "-3.8%", res.Scores["real_carry"].Value)
	assert.Equal(t, "-2.1 pts", res.Scores["ppi_cpi_gap"].Value)
	assert.Equal(t, "4.2%", res.Scores["erp"].Value)
	assert.Equal(t, "310 bps", res.Scores["cds"].Value)
	assert.Equal(t, "0.42", res.Scores["gold_corr"].Value)
}

func TestCompute_PanelsAreCachedAcrossRuns(t *testing.T) {
	macro := &stubMacro{panel: fullPanel()}
	e := engineWith(macro, &stubTurkey{series: fullSeries()}, &stubERP{}, &stubCorr{})

	e.Compute(context.Background())
	e.Compute(context.Background())

	assert.Equal(t, 1, macro.calls, "second run should hit the cache")
}

func TestCompute_CustomWeights(t *testing.T) {
	e := engineWith(
		&stubMacro{panel: fullPanel()},
		&stubTurkey{series: fullSeries()},
		&stubERP{},
		&stubCorr{},
	)
	e.SetWeights(map[string]float64{"yield_curve": 1.0})

	res := e.Compute(context.Background())
	assert.InDelta(t, 100.0, res.Composite, 0.001)
}

func TestLadders_Boundaries(t *testing.T) {
	c, ok := scorePPICPIGap([]datasources.SeriesPoint{{Key: "ppi_cpi_gap", Last: 7.2}})
	require.True(t, ok)
	assert.Equal(t, -1.0, c.Score)
	assert.Equal(t, "MARGIN SQUEEZE", c.Signal)

	c, ok = scoreGoldCorr(&datasources.GoldCorr{CorrUSD: 0.2})
	require.True(t, ok)
	assert.Equal(t, 0.5, c.Score)

	c, ok = scoreERP(map[string]float64{"erp": -7.0})
	require.True(t, ok)
	assert.Equal(t, -1.0, c.Score)
}
