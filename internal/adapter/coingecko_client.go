// Package adapter provides clients for external data providers.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/quantum-ledger/quantum-backend/internal/config"
	"github.com/quantum-ledger/quantum-backend/internal/errors"
	"github.com/quantum-ledger/quantum-backend/internal/models"
)

// CoinGeckoClient fetches market quotes from the CoinGecko markets API.
// No API key is needed for basic use. The feed must be treated as
// unreliable: it may error, time out, or omit requested assets.
type CoinGeckoClient struct {
	baseURL    string
	vsCurrency string
	client     *http.Client
}

// NewCoinGeckoClient creates a client from the market configuration.
func NewCoinGeckoClient(cfg *config.MarketConfig) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		vsCurrency: cfg.VsCurrency,
		client:     &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// GetMarkets fetches quotes for the given asset ids, ordered by market cap.
// The response may be a superset or subset of the requested set; callers
// must handle omitted assets. All failures are returned as feed errors.
func (c *CoinGeckoClient) GetMarkets(ctx context.Context, ids []string) ([]models.MarketQuote, error) {
	endpoint := fmt.Sprintf("%s/coins/markets?vs_currency=%s&ids=%s&order=market_cap_desc&per_page=%d&page=1&sparkline=false",
		c.baseURL, url.QueryEscape(c.vsCurrency), url.QueryEscape(strings.Join(ids, ",")), len(ids))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.NewFeedError("failed to build market request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.NewFeedError("market data request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewFeedError(fmt.Sprintf("market data returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewFeedError("failed to read market response", err)
	}

	var quotes []models.MarketQuote
	if err := json.Unmarshal(body, &quotes); err != nil {
		return nil, errors.NewFeedError("malformed market payload", err)
	}

	if len(quotes) == 0 {
		return nil, errors.NewFeedError("market payload contained no quotes", nil)
	}

	return quotes, nil
}
