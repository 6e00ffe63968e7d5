package valuation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrowatch/macrowatch/internal/registry"
)

type stubInputs map[string]float64

func (s stubInputs) NumericValue(ctx context.Context, key string) (float64, bool) {
	v, ok := s[key]
	return v, ok
}

func TestFairValue_NoSpecIsNil(t *testing.T) {
	e := New(registry.New(), stubInputs{})

	assert.Nil(t, e.FairValue(context.Background(), "gold", 2650))
	assert.Nil(t, e.FairValue(context.Background(), "no_such_entity", 1))
}

func TestFairValue_PPP(t *testing.T) {
	e := New(registry.New(), stubInputs{"cpi_yoy": 48.6})

	res := e.FairValue(context.Background(), "usdtry", 34.2)
	require.NotNil(t, res)
	assert.Equal(t, "Relative PPP", res.Model)
	assert.Equal(t, "Undervalued", res.Signal)
	assert.Contains(t, res.Message, "+46.1%")
	assert.Empty(t, res.Err)
}

func TestFairValue_PPP_Overvalued(t *testing.T) {
	e := New(registry.New(), stubInputs{"cpi_yoy": 1.5})

	res := e.FairValue(context.Background(), "usdtry", 34.2)
	require.NotNil(t, res)
	assert.Equal(t, "Overvalued", res.Signal)
}

func TestFairValue_PPP_MissingCPI(t *testing.T) {
	e := New(registry.New(), stubInputs{})

	res := e.FairValue(context.Background(), "usdtry", 34.2)
	require.NotNil(t, res)
	assert.NotEmpty(t, res.Err)
	assert.Equal(t, []string{"cpi_yoy"}, res.Missing)
	assert.Empty(t, res.Signal)
}

func TestFairValue_SovereignSpread(t *testing.T) {
	e := New(registry.New(), stubInputs{"us_10y": 4.3, "cds": 305})

	res := e.FairValue(context.Background(), "tr_10y", 27.0)
	require.NotNil(t, res)
	assert.Equal(t, "Sovereign Spread", res.Model)
	require.NotNil(t, res.FairValue)
	assert.InDelta(t, 7.35, *res.FairValue, 0.001) // 4.3 + 305/100
	require.NotNil(t, res.Gap)
	assert.InDelta(t, 19.65, *res.Gap, 0.001)
	assert.Contains(t, res.Message, "7.35")
}

func TestFairValue_SovereignSpread_NamesOnlyTheMissingInput(t *testing.T) {
	e := New(registry.New(), stubInputs{"us_10y": 4.3})

	res := e.FairValue(context.Background(), "tr_10y", 27.0)
	require.NotNil(t, res)
	assert.NotEmpty(t, res.Err)
	assert.Equal(t, []string{"cds"}, res.Missing)
	assert.Nil(t, res.FairValue, "no partial numeric result from a substituted default")
	assert.Nil(t, res.Gap)
}

func TestFairValue_ERPYield(t *testing.T) {
	e := New(registry.New(), stubInputs{"tr_10y": 27.0, "pe": 8.0})

	res := e.FairValue(context.Background(), "bist100", 9800)
	require.NotNil(t, res)
	assert.Equal(t, "Equity Risk Premium", res.Model)
	require.NotNil(t, res.Value)
	assert.InDelta(t, -14.5, *res.Value, 0.001) // 100/8 - 27
}

func TestFairValue_ERPYield_NonPositivePE(t *testing.T) {
	e := New(registry.New(), stubInputs{"tr_10y": 27.0, "pe": 0})

	res := e.FairValue(context.Background(), "bist100", 9800)
	require.NotNil(t, res)
	assert.NotEmpty(t, res.Err)
	assert.Contains(t, res.Missing, "pe")
	assert.Nil(t, res.Value)
}
