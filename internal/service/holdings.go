// Package service implements the portfolio valuation engine.
package service

import "github.com/quantum-ledger/quantum-backend/internal/models"

// DemoHoldings returns the fixed demo portfolio. Amounts are configuration
// data: nothing in the system ever mutates them, including the trade stub.
func DemoHoldings() []models.Holding {
	return []models.Holding{
		{AssetID: "bitcoin", Symbol: "BTC", Label: "Bitcoin (BTC)", Amount: 0.35},
		{AssetID: "ethereum", Symbol: "ETH", Label: "Ethereum (ETH)", Amount: 4.8},
		{AssetID: "tether", Symbol: "USDT", Label: "Tether (USDT)", Amount: 3000},
		{AssetID: "solana", Symbol: "SOL", Label: "Solana (SOL)", Amount: 45},
	}
}

// FallbackQuotes returns the static approximation table substituted when the
// market feed is unavailable. Prices are deliberately coarse; the point is a
// usable dashboard, not accuracy.
func FallbackQuotes() []models.MarketQuote {
	return []models.MarketQuote{
		{AssetID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: 26000, Change24hPercent: pct(3.2)},
		{AssetID: "ethereum", Symbol: "eth", Name: "Ethereum", CurrentPrice: 1800, Change24hPercent: pct(1.4)},
		{AssetID: "tether", Symbol: "usdt", Name: "Tether", CurrentPrice: 1, Change24hPercent: pct(0.0)},
		{AssetID: "solana", Symbol: "sol", Name: "Solana", CurrentPrice: 150, Change24hPercent: pct(5.1)},
	}
}

func pct(v float64) *float64 {
	return &v
}
