package analytics

import (
	"sort"

	"app/models"
)

const (
	// topN caps every ranking list.
	topN = 10
	// lowStockThreshold is the on-hand quantity below which a performing
	// item becomes a restocking candidate.
	lowStockThreshold = 10
	// avoidSaleCountMax, avoidVelocityMax and the avgSaleValue*2 revenue
	// bound together define a poor performer not worth restocking.
	avoidSaleCountMax = 5
	avoidVelocityMax  = 0.1
)

// All sorts below are stable: ties keep sale-encounter order, which is
// deterministic as long as the sales accessor returns the window ordered
// ascending by sale date.

// BestPerformingItems returns the top items by performance score.
func BestPerformingItems(items []models.ItemAnalytics) []models.ItemAnalytics {
	ranked := make([]models.ItemAnalytics, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PerformanceScore > ranked[j].PerformanceScore
	})
	return truncate(ranked)
}

// WorstPerformingItems returns the lowest-revenue items among those that sold
// at least once.
func WorstPerformingItems(items []models.ItemAnalytics) []models.ItemAnalytics {
	ranked := make([]models.ItemAnalytics, 0, len(items))
	for _, item := range items {
		if item.TotalQuantity > 0 {
			ranked = append(ranked, item)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalRevenue < ranked[j].TotalRevenue
	})
	return truncate(ranked)
}

// SuggestRestocking picks items that are out of stock or running low while
// still performing, best score first. Out-of-stock items are High priority,
// low-stock ones Medium.
func SuggestRestocking(items []models.ItemAnalytics) []models.RestockingSuggestion {
	candidates := make([]models.ItemAnalytics, 0)
	for _, item := range items {
		if (item.IsOutOfStock || item.CurrentQuantity < lowStockThreshold) && item.PerformanceScore > 0 {
			candidates = append(candidates, item)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PerformanceScore > candidates[j].PerformanceScore
	})
	candidates = truncate(candidates)

	suggestions := make([]models.RestockingSuggestion, len(candidates))
	for i, item := range candidates {
		priority := "Medium"
		if item.IsOutOfStock {
			priority = "High"
		}
		suggestions[i] = models.RestockingSuggestion{
			ItemName:         item.ItemName,
			CompanyName:      item.CompanyName,
			CurrentQuantity:  item.CurrentQuantity,
			IsOutOfStock:     item.IsOutOfStock,
			PerformanceScore: item.PerformanceScore,
			TotalRevenue:     item.TotalRevenue,
			SalesVelocity:    item.SalesVelocity,
			Priority:         priority,
		}
	}
	return suggestions
}

// AvoidRestocking picks items selling too rarely and too slowly to justify
// replenishment. avgSaleValue is the window-global average sale value, not a
// per-item figure.
func AvoidRestocking(items []models.ItemAnalytics, avgSaleValue float64) []models.ItemAnalytics {
	candidates := make([]models.ItemAnalytics, 0)
	for _, item := range items {
		if item.TotalRevenue < avgSaleValue*2 &&
			item.SaleCount < avoidSaleCountMax &&
			item.SalesVelocity < avoidVelocityMax {
			candidates = append(candidates, item)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].TotalRevenue < candidates[j].TotalRevenue
	})
	return truncate(candidates)
}

// RankCompanies orders company aggregates by the configured key. The two
// historical consumers rank differently: reports by total revenue, sales
// analytics by the average performance score of the company's items (which
// also fills AvgPerformanceScore and ItemCount on the result).
func RankCompanies(companies []models.CompanyAnalytics, items []models.ItemAnalytics, ranking CompanyRanking) []models.CompanyAnalytics {
	ranked := make([]models.CompanyAnalytics, len(companies))
	copy(ranked, companies)

	switch ranking {
	case CompaniesByAvgScore:
		for i := range ranked {
			var sum float64
			var count int
			for _, item := range items {
				if item.CompanyName == ranked[i].CompanyName {
					sum += item.PerformanceScore
					count++
				}
			}
			ranked[i].ItemCount = count
			if count > 0 {
				ranked[i].AvgPerformanceScore = sum / float64(count)
			}
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].AvgPerformanceScore > ranked[j].AvgPerformanceScore
		})
	default:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].TotalRevenue > ranked[j].TotalRevenue
		})
	}
	return ranked
}

func truncate(items []models.ItemAnalytics) []models.ItemAnalytics {
	if len(items) > topN {
		return items[:topN]
	}
	return items
}
