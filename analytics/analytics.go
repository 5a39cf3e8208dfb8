// Package analytics turns a window of sale records and the matching stock
// rows into ranked performance metrics, restocking recommendations and trend
// summaries. Every function here is pure computation over already-fetched
// data: no I/O, no shared state, fresh allocations per call, so concurrent
// requests need no coordination.
package analytics

import (
	"sort"
	"time"

	"app/models"
)

// CompanyRanking selects the key companies are ordered by.
type CompanyRanking int

const (
	// CompaniesByRevenue orders companies by total revenue (report endpoints).
	CompaniesByRevenue CompanyRanking = iota
	// CompaniesByAvgScore orders companies by the average performance score
	// of their items (sales-analytics endpoint).
	CompaniesByAvgScore
)

// Options parameterize the small divergences between the report and the
// sales-analytics consumers of the engine.
type Options struct {
	CompanyRanking CompanyRanking
	// TrackStockout adds the analytics-only item fields: avgQuantityPerSale
	// and timeToOutOfStock.
	TrackStockout bool
}

// Performance score weights. The composite is a fixed heuristic kept for
// behavioral compatibility with historical reports: frequency (inverse of
// the average gap between sales) contributes on the same scale as raw
// revenue, quantity and velocity. Tune deliberately, not casually.
const (
	weightRevenue   = 0.4
	weightQuantity  = 0.2
	weightFrequency = 0.2
	weightVelocity  = 0.2

	// frequencyScale lifts the frequency term into the same order of
	// magnitude as revenue. The +1 in the denominator guards division by
	// zero; a same-day repeat sale scores near the term's maximum of
	// frequencyScale*weightFrequency.
	frequencyScale = 1000.0
)

const trendDayLayout = "2006-01-02"

// daysBetween returns the fractional number of days from a to b.
func daysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}

// AggregateSales folds a window of sales into per-item aggregates, per-company
// aggregates and a daily trend, in a single pass. The input is treated as
// immutable; order of the returned slices follows sale-encounter order for
// items and companies, and ascending date for the trend. The input must not
// be assumed sorted: first/last sale dates are tracked by comparison.
//
// windowEnd is the end of the reporting window and anchors the velocity and
// frequency derivations.
func AggregateSales(sales []models.Sale, windowEnd time.Time, opts Options) ([]models.ItemAnalytics, []models.CompanyAnalytics, []models.TrendPoint) {
	itemByName := make(map[string]*models.ItemAnalytics)
	itemOrder := make([]string, 0)

	companyByName := make(map[string]*models.CompanyAnalytics)
	companyItems := make(map[string]map[string]bool)
	companyOrder := make([]string, 0)

	trendByDay := make(map[string]*models.TrendPoint)
	trendOrder := make([]string, 0)

	for _, sale := range sales {
		revenue := sale.QuantitySold * sale.Price

		item, ok := itemByName[sale.ItemName]
		if !ok {
			item = &models.ItemAnalytics{
				ItemName:      sale.ItemName,
				CompanyName:   sale.CompanyName,
				FirstSaleDate: sale.SaleDate,
				LastSaleDate:  sale.SaleDate,
			}
			itemByName[sale.ItemName] = item
			itemOrder = append(itemOrder, sale.ItemName)
		}
		item.TotalQuantity += sale.QuantitySold
		item.TotalRevenue += revenue
		item.SaleCount++
		if sale.SaleDate.Before(item.FirstSaleDate) {
			item.FirstSaleDate = sale.SaleDate
		}
		if sale.SaleDate.After(item.LastSaleDate) {
			item.LastSaleDate = sale.SaleDate
		}

		company, ok := companyByName[sale.CompanyName]
		if !ok {
			company = &models.CompanyAnalytics{CompanyName: sale.CompanyName}
			companyByName[sale.CompanyName] = company
			companyItems[sale.CompanyName] = make(map[string]bool)
			companyOrder = append(companyOrder, sale.CompanyName)
		}
		company.TotalQuantity += sale.QuantitySold
		company.TotalRevenue += revenue
		company.SaleCount++
		companyItems[sale.CompanyName][sale.ItemName] = true

		// Day buckets are UTC calendar days, independent of time-of-day.
		dayKey := sale.SaleDate.UTC().Format(trendDayLayout)
		day, ok := trendByDay[dayKey]
		if !ok {
			day = &models.TrendPoint{Date: dayKey}
			trendByDay[dayKey] = day
			trendOrder = append(trendOrder, dayKey)
		}
		day.Quantity += sale.QuantitySold
		day.Revenue += revenue
		day.Count++
	}

	items := make([]models.ItemAnalytics, 0, len(itemOrder))
	for _, name := range itemOrder {
		item := *itemByName[name]
		deriveItemMetrics(&item, windowEnd, opts)
		items = append(items, item)
	}

	companies := make([]models.CompanyAnalytics, 0, len(companyOrder))
	for _, name := range companyOrder {
		company := *companyByName[name]
		company.UniqueItemsCount = len(companyItems[name])
		companies = append(companies, company)
	}

	trend := make([]models.TrendPoint, 0, len(trendOrder))
	for _, key := range trendOrder {
		trend = append(trend, *trendByDay[key])
	}
	sortTrendAscending(trend)

	return items, companies, trend
}

// deriveItemMetrics fills the velocity, frequency and score fields of an
// aggregate once its sums are final. All divisions are guarded: an item whose
// first sale coincides with (or postdates) the window end derives zeros.
func deriveItemMetrics(item *models.ItemAnalytics, windowEnd time.Time, opts Options) {
	daysSinceFirstSale := daysBetween(item.FirstSaleDate, windowEnd)

	if daysSinceFirstSale > 0 {
		item.SalesVelocity = item.TotalQuantity / daysSinceFirstSale
		item.AvgDaysBetweenSales = daysSinceFirstSale / float64(item.SaleCount)
	} else {
		item.SalesVelocity = 0
		item.AvgDaysBetweenSales = 0
	}

	if opts.TrackStockout {
		// SaleCount >= 1 whenever an aggregate exists.
		item.AvgQuantityPerSale = item.TotalQuantity / float64(item.SaleCount)
	}

	item.PerformanceScore = item.TotalRevenue*weightRevenue +
		item.TotalQuantity*weightQuantity +
		(1/(item.AvgDaysBetweenSales+1))*frequencyScale*weightFrequency +
		item.SalesVelocity*weightVelocity
}

// sortTrendAscending orders trend points by day key. YYYY-MM-DD keys compare
// lexicographically in chronological order.
func sortTrendAscending(trend []models.TrendPoint) {
	sort.SliceStable(trend, func(i, j int) bool {
		return trend[i].Date < trend[j].Date
	})
}
