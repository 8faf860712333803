package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantum-ledger/quantum-backend/internal/circuitbreaker"
	"github.com/quantum-ledger/quantum-backend/internal/logging"
	"github.com/quantum-ledger/quantum-backend/internal/models"
	"github.com/quantum-ledger/quantum-backend/internal/retry"
)

// MarketGateway is the read-only price feed the valuation engine depends on.
type MarketGateway interface {
	GetMarkets(ctx context.Context, ids []string) ([]models.MarketQuote, error)
}

// QuoteCache is an optional cache for the most recent market payload.
// The cache belongs to the serving layer, not the engine: a nil cache only
// means every snapshot hits the feed.
type QuoteCache interface {
	LatestQuotes(ctx context.Context) ([]models.MarketQuote, bool, error)
	StoreQuotes(ctx context.Context, quotes []models.MarketQuote) error
}

// PortfolioService merges the fixed holdings list with live market data.
// The valuation itself is stateless per call; the service only carries
// wiring (gateway, breaker, optional cache).
type PortfolioService struct {
	gateway  MarketGateway
	cache    QuoteCache
	holdings []models.Holding
	assetIDs []string
	breaker  *circuitbreaker.CircuitBreaker
	retryCfg *retry.RetryConfig
	logger   *logging.Logger
}

// NewPortfolioService creates the valuation service. cache may be nil.
// assetIDs is the set requested from the feed; ids of held assets are always
// included, so the market listing may be a superset of the holdings but a
// holding can never go unpriced by configuration.
func NewPortfolioService(gateway MarketGateway, cache QuoteCache, holdings []models.Holding, assetIDs []string) *PortfolioService {
	return &PortfolioService{
		gateway:  gateway,
		cache:    cache,
		holdings: holdings,
		assetIDs: mergeAssetIDs(assetIDs, holdings),
		breaker: circuitbreaker.NewCircuitBreaker(&circuitbreaker.Config{
			Name:             "market-feed",
			MaxFailures:      3,
			Timeout:          30 * time.Second,
			HalfOpenMaxCalls: 2,
		}),
		retryCfg: &retry.RetryConfig{
			MaxAttempts:  2,
			InitialDelay: 250 * time.Millisecond,
			MaxDelay:     2 * time.Second,
			Multiplier:   2.0,
		},
		logger: logging.GetGlobalLogger().WithField("component", "portfolio"),
	}
}

// Holdings returns the fixed holdings list.
func (s *PortfolioService) Holdings() []models.Holding {
	return s.holdings
}

// Snapshot runs one valuation pass against the freshest quotes available.
// A feed failure is never propagated: the static approximation table is
// substituted and the snapshot is tagged with Source "fallback".
func (s *PortfolioService) Snapshot(ctx context.Context) *models.PortfolioSnapshot {
	quotes, source := s.fetchQuotes(ctx)
	snapshot := ComputeSnapshot(s.holdings, quotes)
	snapshot.Source = source
	return snapshot
}

// MarketListing returns the full market payload joined with holdings for
// presentation, with the same fallback behavior as Snapshot.
func (s *PortfolioService) MarketListing(ctx context.Context) ([]models.MarketListingEntry, models.SnapshotSource) {
	quotes, source := s.fetchQuotes(ctx)
	return SecondaryMarketJoin(quotes, s.holdings), source
}

// fetchQuotes returns quotes and where they came from: the session cache,
// the live feed (through retry and the circuit breaker), or the fallback
// table when everything else fails.
func (s *PortfolioService) fetchQuotes(ctx context.Context) ([]models.MarketQuote, models.SnapshotSource) {
	if s.cache != nil {
		if cached, hit, err := s.cache.LatestQuotes(ctx); err == nil && hit {
			return cached, models.SourceLive
		} else if err != nil {
			s.logger.WithError(err).Warn("Quote cache read failed, falling through to feed")
		}
	}

	var quotes []models.MarketQuote
	err := s.breaker.Execute(ctx, func() error {
		result := retry.WithExponentialBackoff(ctx, s.retryCfg, func(ctx context.Context, attempt int) error {
			fetched, err := s.gateway.GetMarkets(ctx, s.assetIDs)
			if err != nil {
				return err
			}
			quotes = fetched
			return nil
		})
		if !result.Success {
			return result.LastError
		}
		return nil
	})

	if err != nil {
		if err == circuitbreaker.ErrCircuitOpen {
			s.logger.Warn("Market feed circuit open, using fallback prices")
		} else {
			s.logger.WithError(err).Warn("Market feed unavailable, using fallback prices")
		}
		return FallbackQuotes(), models.SourceFallback
	}

	if s.cache != nil {
		if err := s.cache.StoreQuotes(ctx, quotes); err != nil {
			s.logger.WithError(err).Warn("Failed to cache market quotes")
		}
	}

	return quotes, models.SourceLive
}

// mergeAssetIDs returns the configured ids with any held asset ids missing
// from them appended, preserving order and dropping duplicates.
func mergeAssetIDs(configured []string, holdings []models.Holding) []string {
	seen := make(map[string]bool, len(configured)+len(holdings))
	ids := make([]string, 0, len(configured)+len(holdings))
	for _, id := range configured {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, h := range holdings {
		if !seen[h.AssetID] {
			seen[h.AssetID] = true
			ids = append(ids, h.AssetID)
		}
	}
	return ids
}

// ComputeSnapshot builds an enriched holding for every holding by quote
// lookup and accumulates the total in holdings order. A holding whose asset
// is absent from the feed is treated as temporarily unpriced (price, change
// and value all zero), not as an error. The top asset is selected with a
// strict > comparison, so the first holding reaching a given maximum wins
// ties. Per-holding values are computed with decimal multiplication so sums
// are reproducible.
func ComputeSnapshot(holdings []models.Holding, quotes []models.MarketQuote) *models.PortfolioSnapshot {
	byID := make(map[string]models.MarketQuote, len(quotes))
	for _, q := range quotes {
		byID[q.AssetID] = q
	}

	enriched := make([]models.EnrichedHolding, 0, len(holdings))
	total := decimal.Zero
	var top *models.EnrichedHolding

	for _, h := range holdings {
		var price, change float64
		if q, ok := byID[h.AssetID]; ok {
			price = q.CurrentPrice
			if q.Change24hPercent != nil {
				change = *q.Change24hPercent
			}
		}

		value := decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(h.Amount))
		total = total.Add(value)

		enriched = append(enriched, models.EnrichedHolding{
			Holding:   h,
			Price:     price,
			Value:     value.InexactFloat64(),
			Change24h: change,
		})

		last := &enriched[len(enriched)-1]
		if top == nil || last.Value > top.Value {
			top = last
		}
	}

	return &models.PortfolioSnapshot{
		Holdings:   enriched,
		TotalValue: total.InexactFloat64(),
		TopAsset:   top,
		Source:     models.SourceLive,
		AsOf:       time.Now().UTC(),
	}
}

// SecondaryMarketJoin attaches the matching holding's amount and label to
// each entry of a market listing. Assets the demo user does not hold get a
// zero amount. This is a pure presentation join; it never touches totals.
func SecondaryMarketJoin(market []models.MarketQuote, holdings []models.Holding) []models.MarketListingEntry {
	byID := make(map[string]models.Holding, len(holdings))
	for _, h := range holdings {
		byID[h.AssetID] = h
	}

	entries := make([]models.MarketListingEntry, 0, len(market))
	for _, q := range market {
		entry := models.MarketListingEntry{MarketQuote: q}
		if h, ok := byID[q.AssetID]; ok {
			entry.HeldAmount = h.Amount
			entry.HeldLabel = h.Label
		}
		entries = append(entries, entry)
	}

	return entries
}
