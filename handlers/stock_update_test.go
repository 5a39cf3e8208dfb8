package handlers

import (
	"testing"
	"time"

	"app/models"

	"github.com/stretchr/testify/assert"
)

var updateTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func soldOutStock() models.Stock {
	outAt := updateTime.AddDate(0, 0, -5)
	return models.Stock{
		Name:           "Rice",
		CompanyName:    "AgroCo",
		Quantity:       0,
		QuantityType:   "kg",
		Price:          50,
		IsSoldOut:      true,
		DateOutOfStock: &outAt,
	}
}

func TestApplyStockUpdateRestockClearsSoldOut(t *testing.T) {
	updated, sold := applyStockUpdate(soldOutStock(), models.UpdateStockRequest{
		Quantity: floatPtr(50),
	}, updateTime)

	assert.Zero(t, sold)
	assert.Equal(t, 50.0, updated.Quantity)
	assert.False(t, updated.IsSoldOut)
	assert.Nil(t, updated.DateOutOfStock)
}

func TestApplyStockUpdateDecrementRecordsSale(t *testing.T) {
	stock := models.Stock{Name: "Rice", Quantity: 10, Price: 50}

	updated, sold := applyStockUpdate(stock, models.UpdateStockRequest{
		Quantity: floatPtr(4),
	}, updateTime)

	assert.Equal(t, 6.0, sold)
	assert.Equal(t, 4.0, updated.Quantity)
	assert.False(t, updated.IsSoldOut)
}

func TestApplyStockUpdateDecrementToZeroMarksSoldOut(t *testing.T) {
	stock := models.Stock{Name: "Rice", Quantity: 10, Price: 50}

	updated, sold := applyStockUpdate(stock, models.UpdateStockRequest{
		Quantity: floatPtr(0),
	}, updateTime)

	assert.Equal(t, 10.0, sold)
	assert.True(t, updated.IsSoldOut)
	if assert.NotNil(t, updated.DateOutOfStock) {
		assert.Equal(t, updateTime, *updated.DateOutOfStock)
	}
}

func TestApplyStockUpdateMarkSoldOutSellsRemainder(t *testing.T) {
	stock := models.Stock{Name: "Rice", Quantity: 7, Price: 50}

	updated, sold := applyStockUpdate(stock, models.UpdateStockRequest{
		IsSoldOut: boolPtr(true),
	}, updateTime)

	assert.Equal(t, 7.0, sold)
	assert.Zero(t, updated.Quantity)
	assert.True(t, updated.IsSoldOut)
	assert.NotNil(t, updated.DateOutOfStock)
}

func TestApplyStockUpdateIncreaseSellsNothing(t *testing.T) {
	stock := models.Stock{Name: "Rice", Quantity: 10, Price: 50}

	updated, sold := applyStockUpdate(stock, models.UpdateStockRequest{
		Quantity: floatPtr(25),
	}, updateTime)

	assert.Zero(t, sold)
	assert.Equal(t, 25.0, updated.Quantity)
}

func TestApplyStockUpdateFieldMerge(t *testing.T) {
	stock := models.Stock{Name: "Rice", CompanyName: "AgroCo", Quantity: 10, QuantityType: "kg", Price: 50}
	name := "  Basmati Rice "
	price := 65.0

	updated, sold := applyStockUpdate(stock, models.UpdateStockRequest{
		Name:  &name,
		Price: &price,
	}, updateTime)

	assert.Zero(t, sold)
	assert.Equal(t, "Basmati Rice", updated.Name)
	assert.Equal(t, 65.0, updated.Price)
	assert.Equal(t, "AgroCo", updated.CompanyName)
	assert.Equal(t, 10.0, updated.Quantity)
}
