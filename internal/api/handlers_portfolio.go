package api

import (
	"net/http"

	"github.com/quantum-ledger/quantum-backend/internal/errors"
)

// handleGetPortfolio handles GET /api/portfolio - Portfolio snapshot for the
// authenticated user. Snapshot never fails: a dead feed degrades to the
// fallback price table, visible only through the source tag.
func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	snapshot := s.portfolioService.Snapshot(r.Context())
	respondJSON(w, http.StatusOK, snapshot)
}

// handleGetMarkets handles GET /api/markets - Market listing joined with the
// demo holdings.
func (s *Server) handleGetMarkets(w http.ResponseWriter, r *http.Request) {
	entries, source := s.portfolioService.MarketListing(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"markets": entries,
		"source":  source,
	})
}

// handleTrade handles POST /api/trade - Non-functional demo stub. It
// validates that the fields are present and acknowledges the order; it must
// never mutate holdings or execute anything.
func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Side    string  `json:"side"`
		AssetID string  `json:"assetId"`
		Amount  float64 `json:"amount"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errors.CodeValidation, "Invalid request body")
		return
	}

	if req.Side != "buy" && req.Side != "sell" {
		respondError(w, http.StatusBadRequest, errors.CodeValidation, "Side must be 'buy' or 'sell'")
		return
	}
	if req.AssetID == "" || req.Amount <= 0 {
		respondError(w, http.StatusBadRequest, errors.CodeValidation, "Asset id and a positive amount are required")
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{
		"status":  "accepted",
		"message": "Demo mode: order acknowledged but not executed",
	})
}
