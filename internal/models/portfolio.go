package models

import "time"

// Holding represents a fixed quantity of one asset held by the demo user.
// Amounts are set at configuration time and never mutated by the system.
type Holding struct {
	AssetID string  `json:"id"`
	Symbol  string  `json:"symbol"`
	Label   string  `json:"label"`
	Amount  float64 `json:"amount"`
}

// MarketQuote represents a single asset quote from the market data feed.
// Field tags follow the CoinGecko markets payload.
type MarketQuote struct {
	AssetID          string   `json:"id"`
	Symbol           string   `json:"symbol"`
	Name             string   `json:"name,omitempty"`
	CurrentPrice     float64  `json:"current_price"`
	Change24hPercent *float64 `json:"price_change_percentage_24h"`
	TotalVolume      float64  `json:"total_volume,omitempty"`
}

// EnrichedHolding is a holding joined with its quote for one valuation pass.
// Derived data, recomputed on every pass and never cached beyond it.
type EnrichedHolding struct {
	Holding
	Price     float64 `json:"price"`
	Value     float64 `json:"value"`
	Change24h float64 `json:"change24h"`
}

// SnapshotSource tags where a snapshot's prices came from.
type SnapshotSource string

const (
	// SourceLive means prices came from the market data gateway.
	SourceLive SnapshotSource = "live"
	// SourceFallback means the feed was unavailable and the static
	// approximation table was used instead.
	SourceFallback SnapshotSource = "fallback"
)

// PortfolioSnapshot is the result of one valuation pass.
// TotalValue equals the sum of holding values; TopAsset is the holding with
// the maximum value (first encountered wins ties) and is always a member of
// Holdings when Holdings is non-empty.
type PortfolioSnapshot struct {
	Holdings   []EnrichedHolding `json:"holdings"`
	TotalValue float64           `json:"totalValue"`
	TopAsset   *EnrichedHolding  `json:"topAsset"`
	Source     SnapshotSource    `json:"source"`
	AsOf       time.Time         `json:"asOf"`
}

// MarketListingEntry is a market quote joined with the matching holding for
// presentation. HeldAmount is zero for assets the demo user does not hold.
type MarketListingEntry struct {
	MarketQuote
	HeldAmount float64 `json:"heldAmount"`
	HeldLabel  string  `json:"heldLabel,omitempty"`
}
