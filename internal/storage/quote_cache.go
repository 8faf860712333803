package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quantum-ledger/quantum-backend/internal/config"
	"github.com/quantum-ledger/quantum-backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// QuoteCache holds the most recent market payload under a short TTL so the
// dashboard render and the market listing can reuse one fetch. The valuation
// engine itself stays stateless; this cache belongs to the serving layer.
type QuoteCache struct {
	cache *RedisCache
	cfg   *config.MarketConfig
}

// NewQuoteCache creates a quote cache over the given Redis connection.
func NewQuoteCache(cache *RedisCache, cfg *config.MarketConfig) *QuoteCache {
	return &QuoteCache{cache: cache, cfg: cfg}
}

// key scopes cached payloads by quote currency so switching MARKET_VS_CURRENCY
// never serves stale prices.
func (q *QuoteCache) key() string {
	return fmt.Sprintf("markets:latest:%s", q.cfg.VsCurrency)
}

// StoreQuotes caches a market payload for the configured TTL.
func (q *QuoteCache) StoreQuotes(ctx context.Context, quotes []models.MarketQuote) error {
	data, err := json.Marshal(quotes)
	if err != nil {
		return fmt.Errorf("failed to marshal quotes: %w", err)
	}
	return q.cache.Set(ctx, q.key(), data, q.cfg.CacheTTL)
}

// LatestQuotes returns the cached payload and whether there was a hit.
func (q *QuoteCache) LatestQuotes(ctx context.Context) ([]models.MarketQuote, bool, error) {
	raw, err := q.cache.Get(ctx, q.key())
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get error: %w", err)
	}

	var quotes []models.MarketQuote
	if err := json.Unmarshal([]byte(raw), &quotes); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten on
		// the next successful fetch.
		return nil, false, nil
	}
	return quotes, true, nil
}
