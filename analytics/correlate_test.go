package analytics

import (
	"testing"

	"app/models"

	"github.com/stretchr/testify/assert"
)

func TestCorrelateStock_NoMatchingStock(t *testing.T) {
	// An item with no stock row is a defined out-of-stock state, not an error.
	items := []models.ItemAnalytics{{ItemName: "Oil", SaleCount: 1}}

	enriched := CorrelateStock(items, nil, Options{})

	assert.Len(t, enriched, 1)
	assert.True(t, enriched[0].IsOutOfStock)
	assert.Equal(t, 0.0, enriched[0].CurrentQuantity)
}

func TestCorrelateStock_PrefersNonSoldOutRow(t *testing.T) {
	items := []models.ItemAnalytics{{ItemName: "Rice"}}
	stocks := []models.Stock{
		{Name: "Rice", Quantity: 0, IsSoldOut: true},
		{Name: "Rice", Quantity: 20, IsSoldOut: false},
	}

	enriched := CorrelateStock(items, stocks, Options{})

	assert.False(t, enriched[0].IsOutOfStock)
	assert.Equal(t, 20.0, enriched[0].CurrentQuantity)
}

func TestCorrelateStock_FallsBackToFirstRow(t *testing.T) {
	items := []models.ItemAnalytics{{ItemName: "Rice"}}
	stocks := []models.Stock{
		{Name: "Rice", Quantity: 0, IsSoldOut: true},
		{Name: "Rice", Quantity: 0, IsSoldOut: true},
	}

	enriched := CorrelateStock(items, stocks, Options{})

	assert.True(t, enriched[0].IsOutOfStock)
	assert.Equal(t, 0.0, enriched[0].CurrentQuantity)
}

func TestCorrelateStock_TimeToOutOfStock(t *testing.T) {
	firstSale := d0
	soldOutAt := d0.AddDate(0, 0, 4)
	items := []models.ItemAnalytics{{ItemName: "Rice", FirstSaleDate: firstSale}}
	stocks := []models.Stock{
		{Name: "Rice", IsSoldOut: true, DateOutOfStock: &soldOutAt},
	}

	enriched := CorrelateStock(items, stocks, Options{TrackStockout: true})

	if enriched[0].TimeToOutOfStock == nil {
		t.Fatal("expected timeToOutOfStock to be set")
	}
	assert.InDelta(t, 4.0, *enriched[0].TimeToOutOfStock, 1e-9)
}

func TestCorrelateStock_TimeToOutOfStockNilCases(t *testing.T) {
	soldOutAt := d0.AddDate(0, 0, 4)

	tests := []struct {
		name   string
		stocks []models.Stock
		opts   Options
	}{
		{"not tracked", []models.Stock{{Name: "Rice", IsSoldOut: true, DateOutOfStock: &soldOutAt}}, Options{}},
		{"in stock", []models.Stock{{Name: "Rice", Quantity: 5}}, Options{TrackStockout: true}},
		{"no stockout date", []models.Stock{{Name: "Rice", IsSoldOut: true}}, Options{TrackStockout: true}},
		{"no stock row", nil, Options{TrackStockout: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []models.ItemAnalytics{{ItemName: "Rice", FirstSaleDate: d0}}
			enriched := CorrelateStock(items, tt.stocks, tt.opts)
			assert.Nil(t, enriched[0].TimeToOutOfStock)
		})
	}
}

func TestCorrelateStock_DoesNotMutateInput(t *testing.T) {
	items := []models.ItemAnalytics{{ItemName: "Rice"}}
	stocks := []models.Stock{{Name: "Rice", Quantity: 20}}

	_ = CorrelateStock(items, stocks, Options{})

	assert.False(t, items[0].IsOutOfStock)
	assert.Equal(t, 0.0, items[0].CurrentQuantity)
}
