package datasources

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHistory struct {
	candles []Candle
	err     error
	calls   int
}

func (s *stubHistory) History(ctx context.Context, symbol, period string) ([]Candle, error) {
	s.calls++
	return s.candles, s.err
}

func (s *stubHistory) LongHistory(ctx context.Context, symbol string) ([]Candle, error) {
	s.calls++
	return s.candles, s.err
}

func someCandles() []Candle {
	d := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	return []Candle{
		{Date: d, Month: d.Month(), Year: d.Year(), Open: 33.0, Close: 33.5},
		{Date: d.AddDate(0, 0, 1), Month: d.Month(), Year: d.Year(), Open: 33.5, Close: 33.2},
	}
}

func TestRedisHistory_MissFetchesAndStores(t *testing.T) {
	db, mock := redismock.NewClientMock()
	stub := &stubHistory{candles: someCandles()}
	rh := NewRedisHistory(stub, db)

	raw, err := json.Marshal(stub.candles)
	require.NoError(t, err)

	mock.ExpectGet("hist:TRY=X:3mo").RedisNil()
	mock.ExpectSet("hist:TRY=X:3mo", raw, rh.shortTTL).SetVal("OK")

	got, err := rh.History(context.Background(), "TRY=X", "3mo")
	require.NoError(t, err)
	assert.Equal(t, stub.candles, got)
	assert.Equal(t, 1, stub.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisHistory_HitSkipsUpstream(t *testing.T) {
	db, mock := redismock.NewClientMock()
	stub := &stubHistory{candles: someCandles()}
	rh := NewRedisHistory(stub, db)

	raw, err := json.Marshal(stub.candles)
	require.NoError(t, err)
	mock.ExpectGet("longhist:XU100.IS").SetVal(string(raw))

	got, err := rh.LongHistory(context.Background(), "XU100.IS")
	require.NoError(t, err)
	assert.Equal(t, stub.candles, got)
	assert.Zero(t, stub.calls, "cache hit must not call upstream")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisHistory_CacheErrorDegradesToFetch(t *testing.T) {
	db, mock := redismock.NewClientMock()
	stub := &stubHistory{candles: someCandles()}
	rh := NewRedisHistory(stub, db)

	raw, err := json.Marshal(stub.candles)
	require.NoError(t, err)

	mock.ExpectGet("hist:GC=F:3mo").SetErr(errors.New("connection refused"))
	mock.ExpectSet("hist:GC=F:3mo", raw, rh.shortTTL).SetErr(errors.New("connection refused"))

	got, err := rh.History(context.Background(), "GC=F", "3mo")
	require.NoError(t, err)
	assert.Equal(t, stub.candles, got)
	assert.Equal(t, 1, stub.calls)
}

func TestRedisHistory_UpstreamErrorPropagates(t *testing.T) {
	db, mock := redismock.NewClientMock()
	stub := &stubHistory{err: ErrUnavailable}
	rh := NewRedisHistory(stub, db)

	mock.ExpectGet("hist:BZ=F:3mo").RedisNil()

	_, err := rh.History(context.Background(), "BZ=F", "3mo")
	assert.ErrorIs(t, err, ErrUnavailable)
}
