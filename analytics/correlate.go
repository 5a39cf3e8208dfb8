package analytics

import "app/models"

// CorrelateStock joins item aggregates against current stock state. Stock
// rows are grouped by item name preserving accessor order; for each item the
// first non-sold-out row wins, falling back to the first row of the group.
// The stock accessor therefore has to return batches newest-first for the
// "current" batch to be well defined (see the store's contract).
//
// An item with no stock row at all is a defined state, not an error: it is
// reported out of stock with a current quantity of zero. No item is ever
// dropped for lacking a stock match.
//
// The input slice is not mutated; a new enriched slice is returned.
func CorrelateStock(items []models.ItemAnalytics, stocks []models.Stock, opts Options) []models.ItemAnalytics {
	stockByName := make(map[string][]models.Stock)
	for _, s := range stocks {
		stockByName[s.Name] = append(stockByName[s.Name], s)
	}

	enriched := make([]models.ItemAnalytics, len(items))
	for i, item := range items {
		rows := stockByName[item.ItemName]
		current := selectCurrentStock(rows)

		if current == nil {
			item.IsOutOfStock = true
			item.CurrentQuantity = 0
		} else {
			item.IsOutOfStock = current.IsSoldOut
			item.CurrentQuantity = current.Quantity
		}

		if opts.TrackStockout {
			item.TimeToOutOfStock = timeToOutOfStock(current, item)
		}

		enriched[i] = item
	}
	return enriched
}

// selectCurrentStock picks the row considered "current" for an item: the
// first non-sold-out row, else the first row, else nil.
func selectCurrentStock(rows []models.Stock) *models.Stock {
	for i := range rows {
		if !rows[i].IsSoldOut {
			return &rows[i]
		}
	}
	if len(rows) > 0 {
		return &rows[0]
	}
	return nil
}

// timeToOutOfStock returns how many days it took the current batch to sell
// out, measured from the item's first sale in the window. Nil unless the
// batch is sold out and carries an out-of-stock date.
func timeToOutOfStock(current *models.Stock, item models.ItemAnalytics) *float64 {
	if current == nil || !current.IsSoldOut || current.DateOutOfStock == nil {
		return nil
	}
	days := daysBetween(item.FirstSaleDate, *current.DateOutOfStock)
	return &days
}
