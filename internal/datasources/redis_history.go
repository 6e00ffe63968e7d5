package datasources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// RedisHistory caches candle history in Redis in front of another
// HistorySource. History series are the heaviest upstream calls and
// the only ones worth keeping across restarts; Redis TTLs do the
// staleness bookkeeping natively here.
type RedisHistory struct {
	next     HistorySource
	rdb      *redis.Client
	shortTTL time.Duration
	longTTL  time.Duration
}

// NewRedisHistory wraps next with a Redis cache layer.
func NewRedisHistory(next HistorySource, rdb *redis.Client) *RedisHistory {
	return &RedisHistory{
		next:     next,
		rdb:      rdb,
		shortTTL: 15 * time.Minute,
		longTTL:  24 * time.Hour,
	}
}

// History returns cached daily candles, falling through to the wrapped
// source on miss. Cache failures degrade to a plain fetch.
func (r *RedisHistory) History(ctx context.Context, symbol, period string) ([]Candle, error) {
	key := fmt.Sprintf("hist:%s:%s", symbol, period)
	if candles, ok := r.lookup(ctx, key); ok {
		return candles, nil
	}

	candles, err := r.next.History(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, candles, r.shortTTL)
	return candles, nil
}

// LongHistory returns cached monthly candles for seasonality.
func (r *RedisHistory) LongHistory(ctx context.Context, symbol string) ([]Candle, error) {
	key := fmt.Sprintf("longhist:%s", symbol)
	if candles, ok := r.lookup(ctx, key); ok {
		return candles, nil
	}

	candles, err := r.next.LongHistory(ctx, symbol)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, candles, r.longTTL)
	return candles, nil
}

func (r *RedisHistory) lookup(ctx context.Context, key string) ([]Candle, bool) {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("redis history read failed")
		}
		return nil, false
	}
	var candles []Candle
	if err := json.Unmarshal(raw, &candles); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis history entry corrupt")
		return nil, false
	}
	return candles, true
}

func (r *RedisHistory) store(ctx context.Context, key string, candles []Candle, ttl time.Duration) {
	raw, err := json.Marshal(candles)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis history write failed")
	}
}
