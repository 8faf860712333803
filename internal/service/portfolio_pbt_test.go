package service

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/quantum-ledger/quantum-backend/internal/models"
)

func TestComputeSnapshotProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	holdings := DemoHoldings()

	genPrices := gen.SliceOfN(len(holdings), gen.Float64Range(0, 1e6))
	genChanges := gen.SliceOfN(len(holdings), gen.Float64Range(-100, 100))

	quotesFor := func(prices, changes []float64) []models.MarketQuote {
		quotes := make([]models.MarketQuote, len(holdings))
		for i, h := range holdings {
			c := changes[i]
			quotes[i] = models.MarketQuote{
				AssetID:          h.AssetID,
				Symbol:           h.Symbol,
				CurrentPrice:     prices[i],
				Change24hPercent: &c,
			}
		}
		return quotes
	}

	properties.Property("total equals the sum of per-holding values", prop.ForAll(
		func(prices, changes []float64) bool {
			snapshot := ComputeSnapshot(holdings, quotesFor(prices, changes))
			sum := 0.0
			for _, h := range snapshot.Holdings {
				sum += h.Value
			}
			return math.Abs(snapshot.TotalValue-sum) < 1e-6
		},
		genPrices,
		genChanges,
	))

	properties.Property("top asset holds the maximum value", prop.ForAll(
		func(prices, changes []float64) string {
			snapshot := ComputeSnapshot(holdings, quotesFor(prices, changes))
			if snapshot.TopAsset == nil {
				return "top asset missing"
			}
			for _, h := range snapshot.Holdings {
				if h.Value > snapshot.TopAsset.Value {
					return fmt.Sprintf("%s (%f) beats top %s (%f)",
						h.AssetID, h.Value, snapshot.TopAsset.AssetID, snapshot.TopAsset.Value)
				}
			}
			return ""
		},
		genPrices,
		genChanges,
	))

	properties.Property("top asset is one of the enriched holdings", prop.ForAll(
		func(prices, changes []float64) bool {
			snapshot := ComputeSnapshot(holdings, quotesFor(prices, changes))
			for i := range snapshot.Holdings {
				if snapshot.TopAsset == &snapshot.Holdings[i] {
					return true
				}
			}
			return false
		},
		genPrices,
		genChanges,
	))

	properties.Property("one enriched holding per input holding, in order", prop.ForAll(
		func(prices, changes []float64) bool {
			snapshot := ComputeSnapshot(holdings, quotesFor(prices, changes))
			if len(snapshot.Holdings) != len(holdings) {
				return false
			}
			for i, h := range snapshot.Holdings {
				if h.AssetID != holdings[i].AssetID {
					return false
				}
			}
			return true
		},
		genPrices,
		genChanges,
	))

	properties.TestingRun(t)
}
