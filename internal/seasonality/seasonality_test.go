package seasonality

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrowatch/macrowatch/internal/datasources"
)

type stubLong struct {
	candles []datasources.Candle
	err     error
}

func (s *stubLong) LongHistory(ctx context.Context, symbol string) ([]datasources.Candle, error) {
	return s.candles, s.err
}

func monthly(year int, month time.Month, open, close float64) datasources.Candle {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return datasources.Candle{Date: d, Month: month, Year: year, Open: open, Close: close}
}

func fixedEngine(history LongHistorySource, now time.Time) *Engine {
	e := New(history)
	e.now = func() time.Time { return now }
	return e
}

func TestMonthly_GroupsByCalendarMonth(t *testing.T) {
	stub := &stubLong{candles: []datasources.Candle{
		monthly(2022, time.January, 100, 110), // +10%
		monthly(2023, time.January, 100, 90),  // -10%
		monthly(2024, time.January, 100, 104), // +4%
		monthly(2023, time.December, 100, 102),
	}}
	e := fixedEngine(stub, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC))

	res, err := e.Monthly(context.Background(), "TRY=X")
	require.NoError(t, err)

	jan, ok := res.Monthly[time.January]
	require.True(t, ok)
	assert.Equal(t, 3, jan.Count)
	assert.InDelta(t, 1.33, jan.AvgReturn, 0.01) // (10-10+4)/3
	assert.Equal(t, 67.0, jan.WinRate)           // 2 of 3 positive, rounded

	dec := res.Monthly[time.December]
	assert.Equal(t, 1, dec.Count)
	assert.Equal(t, 100.0, dec.WinRate)
}

func TestMonthly_OmitsMonthsWithoutObservations(t *testing.T) {
	stub := &stubLong{candles: []datasources.Candle{
		monthly(2023, time.June, 100, 101),
	}}
	e := fixedEngine(stub, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))

	res, err := e.Monthly(context.Background(), "GC=F")
	require.NoError(t, err)

	assert.Len(t, res.Monthly, 1)
	_, hasJuly := res.Monthly[time.July]
	assert.False(t, hasJuly, "empty months are omitted, not zero-filled")
}

func TestMonthly_CurrentMonthStats(t *testing.T) {
	stub := &stubLong{candles: []datasources.Candle{
		monthly(2023, time.March, 100, 106),
		monthly(2024, time.March, 100, 102),
	}}
	e := fixedEngine(stub, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))

	res, err := e.Monthly(context.Background(), "XU100.IS")
	require.NoError(t, err)

	assert.Equal(t, "March", res.CurrentMonth)
	require.NotNil(t, res.Current)
	assert.Equal(t, 2, res.Current.Count)
	assert.InDelta(t, 4.0, res.Current.AvgReturn, 0.001)
}

func TestMonthly_CurrentMonthMayBeAbsent(t *testing.T) {
	stub := &stubLong{candles: []datasources.Candle{
		monthly(2024, time.March, 100, 102),
	}}
	e := fixedEngine(stub, time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC))

	res, err := e.Monthly(context.Background(), "XU100.IS")
	require.NoError(t, err)
	assert.Nil(t, res.Current)
	assert.Equal(t, "August", res.CurrentMonth)
}

func TestMonthly_SkipsZeroOpens(t *testing.T) {
	stub := &stubLong{candles: []datasources.Candle{
		monthly(2024, time.May, 0, 102), // division guard
		monthly(2024, time.April, 100, 101),
	}}
	e := fixedEngine(stub, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))

	res, err := e.Monthly(context.Background(), "SI=F")
	require.NoError(t, err)
	_, hasMay := res.Monthly[time.May]
	assert.False(t, hasMay)
}

func TestMonthly_UpstreamFailure(t *testing.T) {
	e := New(&stubLong{err: errors.New("gateway down")})

	_, err := e.Monthly(context.Background(), "TRY=X")
	assert.Error(t, err)
}

func TestMonthly_NoUsableCandles(t *testing.T) {
	e := New(&stubLong{candles: []datasources.Candle{monthly(2024, time.May, 0, 1)}})

	_, err := e.Monthly(context.Background(), "TRY=X")
	assert.ErrorIs(t, err, datasources.ErrUnavailable)
}
