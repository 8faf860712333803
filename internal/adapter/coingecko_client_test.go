package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quantum-ledger/quantum-backend/internal/config"
	"github.com/quantum-ledger/quantum-backend/internal/errors"
)

func newTestClient(serverURL string) *CoinGeckoClient {
	return NewCoinGeckoClient(&config.MarketConfig{
		BaseURL:        serverURL,
		VsCurrency:     "usd",
		RequestTimeout: 2 * time.Second,
	})
}

func TestGetMarkets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/markets" {
			t.Errorf("path = %s, want /coins/markets", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("vs_currency") != "usd" {
			t.Errorf("vs_currency = %s, want usd", q.Get("vs_currency"))
		}
		if q.Get("ids") != "bitcoin,ethereum" {
			t.Errorf("ids = %s, want bitcoin,ethereum", q.Get("ids"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":43250.5,"price_change_percentage_24h":2.1},
			{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":2280.0,"price_change_percentage_24h":null}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	quotes, err := client.GetMarkets(context.Background(), []string{"bitcoin", "ethereum"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(quotes) != 2 {
		t.Fatalf("quotes = %d, want 2", len(quotes))
	}
	if quotes[0].AssetID != "bitcoin" || quotes[0].CurrentPrice != 43250.5 {
		t.Errorf("unexpected first quote: %+v", quotes[0])
	}
	if quotes[0].Change24hPercent == nil || *quotes[0].Change24hPercent != 2.1 {
		t.Errorf("expected 24h change 2.1, got %v", quotes[0].Change24hPercent)
	}
	if quotes[1].Change24hPercent != nil {
		t.Errorf("null 24h change must decode to nil, got %v", *quotes[1].Change24hPercent)
	}
}

func TestGetMarketsNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetMarkets(context.Background(), []string{"bitcoin"})
	if err == nil {
		t.Fatal("expected an error for a 429 response")
	}
	if !errors.IsCategory(err, errors.CategoryFeed) {
		t.Errorf("expected a feed error, got %v", err)
	}
}

func TestGetMarketsMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"not a list"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetMarkets(context.Background(), []string{"bitcoin"})
	if err == nil {
		t.Fatal("expected an error for a malformed payload")
	}
	if !errors.IsCategory(err, errors.CategoryFeed) {
		t.Errorf("expected a feed error, got %v", err)
	}
}

func TestGetMarketsEmptyPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetMarkets(context.Background(), []string{"bitcoin"})
	if err == nil {
		t.Fatal("expected an error for an empty payload")
	}
	if !errors.IsCategory(err, errors.CategoryFeed) {
		t.Errorf("expected a feed error, got %v", err)
	}
}

func TestGetMarketsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetMarkets(context.Background(), []string{"bitcoin"})
	if err == nil {
		t.Fatal("expected an error when the feed is unreachable")
	}
	if !errors.IsCategory(err, errors.CategoryFeed) {
		t.Errorf("expected a feed error, got %v", err)
	}
}
