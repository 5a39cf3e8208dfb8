package analytics

import (
	"context"
	"sort"
	"strconv"
	"time"

	"app/models"
)

const defaultPeriodMonths = 3

// SaleSource supplies the sale records for a window, ordered ascending by
// sale date. The ascending order is a hard contract: it makes trend, peak-day
// and ranking tie-breaks reproducible across runs.
type SaleSource interface {
	SalesInWindow(ctx context.Context, start, end time.Time) ([]models.Sale, error)
}

// StockSource supplies the current stock rows for a set of item names,
// newest batch first within each name.
type StockSource interface {
	StockByNames(ctx context.Context, names []string) ([]models.Stock, error)
}

// ResolvePeriod computes the reporting window ending at now. "weekly" covers
// the last 7 days; "months" the last N months with N parsed from periodValue.
// A missing or non-numeric periodValue falls back to 3 months, as does an
// unknown period type; both are recovered-locally defaults, not errors.
func ResolvePeriod(periodType, periodValue string, now time.Time) models.Period {
	start := now
	switch periodType {
	case "weekly":
		start = now.AddDate(0, 0, -7)
	case "months":
		months, err := strconv.Atoi(periodValue)
		if err != nil || months <= 0 {
			months = defaultPeriodMonths
		}
		start = now.AddDate(0, -months, 0)
	default:
		start = now.AddDate(0, -defaultPeriodMonths, 0)
	}

	return models.Period{
		Type:      periodType,
		Value:     periodValue,
		StartDate: start,
		EndDate:   now,
	}
}

// Summarize computes the window-global totals.
func Summarize(sales []models.Sale) models.Summary {
	var s models.Summary
	for _, sale := range sales {
		s.TotalRevenue += sale.QuantitySold * sale.Price
		s.TotalQuantity += sale.QuantitySold
	}
	s.TotalSales = len(sales)
	if s.TotalSales > 0 {
		s.AvgSaleValue = s.TotalRevenue / float64(s.TotalSales)
	}
	return s
}

// PeakOf returns the trend point with the highest revenue, or the no-peak
// sentinel for an empty trend. Earlier days win revenue ties.
func PeakOf(trend []models.TrendPoint) models.PeakDay {
	if len(trend) == 0 {
		return models.NoPeakDay()
	}
	peak := trend[0]
	for _, day := range trend[1:] {
		if day.Revenue > peak.Revenue {
			peak = day
		}
	}
	date := peak.Date
	return models.PeakDay{
		HasSales: true,
		Date:     &date,
		Quantity: peak.Quantity,
		Revenue:  peak.Revenue,
		Count:    peak.Count,
	}
}

// ItemNames lists the aggregate keys in order, for the stock lookup.
func ItemNames(items []models.ItemAnalytics) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.ItemName
	}
	return names
}

// AssembleReport runs aggregation, correlation and ranking over an already
// fetched window and combines everything into one ReportData. An empty sales
// slice produces a valid, fully zeroed report with empty lists and the
// no-peak sentinel.
func AssembleReport(period models.Period, sales []models.Sale, stocks []models.Stock, opts Options) models.ReportData {
	items, companies, trend := AggregateSales(sales, period.EndDate, opts)
	items = CorrelateStock(items, stocks, opts)
	return assemble(period, sales, items, companies, trend, opts)
}

// assemble combines already-correlated aggregates into the final ReportData.
// The full item list ships sorted by performance score, same ordering as the
// best-performers ranking but without the cap.
func assemble(period models.Period, sales []models.Sale, items []models.ItemAnalytics, companies []models.CompanyAnalytics, trend []models.TrendPoint, opts Options) models.ReportData {
	summary := Summarize(sales)
	byScore := make([]models.ItemAnalytics, len(items))
	copy(byScore, items)
	sort.SliceStable(byScore, func(i, j int) bool {
		return byScore[i].PerformanceScore > byScore[j].PerformanceScore
	})
	return models.ReportData{
		Period:                period,
		Summary:               summary,
		PeakDay:               PeakOf(trend),
		SalesTrend:            trend,
		ItemAnalytics:         byScore,
		BestPerformingItems:   BestPerformingItems(items),
		WorstPerformingItems:  WorstPerformingItems(items),
		CompanyAnalytics:      RankCompanies(companies, items, opts.CompanyRanking),
		RestockingSuggestions: SuggestRestocking(items),
		AvoidRestocking:       AvoidRestocking(items, summary.AvgSaleValue),
	}
}

// Generate fetches the window from the accessors and assembles the report.
// This is the single entry point both the report and the sales-analytics
// endpoints go through; the Options carry their historical divergences.
func Generate(ctx context.Context, period models.Period, saleSrc SaleSource, stockSrc StockSource, opts Options) (models.ReportData, error) {
	sales, err := saleSrc.SalesInWindow(ctx, period.StartDate, period.EndDate)
	if err != nil {
		return models.ReportData{}, err
	}

	items, companies, trend := AggregateSales(sales, period.EndDate, opts)
	stocks, err := stockSrc.StockByNames(ctx, ItemNames(items))
	if err != nil {
		return models.ReportData{}, err
	}

	items = CorrelateStock(items, stocks, opts)
	return assemble(period, sales, items, companies, trend, opts), nil
}
