package analytics

import (
	"fmt"
	"testing"

	"app/models"

	"github.com/stretchr/testify/assert"
)

func TestBestPerformingItems_SortedAndCapped(t *testing.T) {
	items := make([]models.ItemAnalytics, 0, 15)
	for i := 0; i < 15; i++ {
		items = append(items, models.ItemAnalytics{
			ItemName:         fmt.Sprintf("item-%d", i),
			PerformanceScore: float64(i),
		})
	}

	best := BestPerformingItems(items)

	assert.Len(t, best, 10)
	for i := 1; i < len(best); i++ {
		if best[i].PerformanceScore > best[i-1].PerformanceScore {
			t.Fatalf("best list not sorted descending at index %d", i)
		}
	}
	assert.Equal(t, "item-14", best[0].ItemName)
}

func TestBestPerformingItems_StableTies(t *testing.T) {
	items := []models.ItemAnalytics{
		{ItemName: "first", PerformanceScore: 50},
		{ItemName: "second", PerformanceScore: 50},
	}

	best := BestPerformingItems(items)

	// Equal scores keep encounter order.
	assert.Equal(t, "first", best[0].ItemName)
	assert.Equal(t, "second", best[1].ItemName)
}

func TestWorstPerformingItems_SkipsZeroQuantity(t *testing.T) {
	items := []models.ItemAnalytics{
		{ItemName: "never-sold", TotalQuantity: 0, TotalRevenue: 0},
		{ItemName: "low", TotalQuantity: 1, TotalRevenue: 10},
		{ItemName: "high", TotalQuantity: 5, TotalRevenue: 500},
	}

	worst := WorstPerformingItems(items)

	assert.Len(t, worst, 2)
	assert.Equal(t, "low", worst[0].ItemName)
	assert.Equal(t, "high", worst[1].ItemName)
}

func TestSuggestRestocking(t *testing.T) {
	items := []models.ItemAnalytics{
		{ItemName: "gone", IsOutOfStock: true, CurrentQuantity: 0, PerformanceScore: 80},
		{ItemName: "low", IsOutOfStock: false, CurrentQuantity: 5, PerformanceScore: 120},
		{ItemName: "plenty", IsOutOfStock: false, CurrentQuantity: 50, PerformanceScore: 200},
		{ItemName: "dead", IsOutOfStock: true, CurrentQuantity: 0, PerformanceScore: 0},
	}

	suggestions := SuggestRestocking(items)

	assert.Len(t, suggestions, 2)
	assert.Equal(t, "low", suggestions[0].ItemName)
	assert.Equal(t, "Medium", suggestions[0].Priority)
	assert.Equal(t, "gone", suggestions[1].ItemName)
	assert.Equal(t, "High", suggestions[1].Priority)
}

func TestAvoidRestocking_Thresholds(t *testing.T) {
	// Window-global avgSaleValue of 600 puts the revenue bound at 1200, so
	// "Salt" at 1000 revenue with 1 sale and velocity 0.05 qualifies.
	avgSaleValue := 600.0
	items := []models.ItemAnalytics{
		{ItemName: "Salt", TotalRevenue: 1000, SaleCount: 1, SalesVelocity: 0.05},
		{ItemName: "fast-mover", TotalRevenue: 100, SaleCount: 1, SalesVelocity: 0.5},
		{ItemName: "frequent", TotalRevenue: 100, SaleCount: 6, SalesVelocity: 0.05},
		{ItemName: "big-earner", TotalRevenue: 5000, SaleCount: 1, SalesVelocity: 0.05},
	}

	avoid := AvoidRestocking(items, avgSaleValue)

	assert.Len(t, avoid, 1)
	assert.Equal(t, "Salt", avoid[0].ItemName)
	for _, item := range avoid {
		if item.SalesVelocity >= 0.1 {
			t.Fatalf("avoid list contains item %q with velocity %v", item.ItemName, item.SalesVelocity)
		}
	}
}

func TestAvoidRestocking_RevenueBoundIsStrict(t *testing.T) {
	// avgSaleValue=100 gives a bound of 200; revenue 1000 is not below it.
	items := []models.ItemAnalytics{
		{ItemName: "Salt", TotalRevenue: 1000, SaleCount: 1, SalesVelocity: 0.05},
	}

	avoid := AvoidRestocking(items, 100)

	assert.Empty(t, avoid)
}

func TestRankCompanies_ByRevenue(t *testing.T) {
	companies := []models.CompanyAnalytics{
		{CompanyName: "small", TotalRevenue: 100},
		{CompanyName: "big", TotalRevenue: 900},
	}

	ranked := RankCompanies(companies, nil, CompaniesByRevenue)

	assert.Equal(t, "big", ranked[0].CompanyName)
	assert.Equal(t, "small", ranked[1].CompanyName)
	// Input order untouched.
	assert.Equal(t, "small", companies[0].CompanyName)
}

func TestRankCompanies_ByAvgScore(t *testing.T) {
	companies := []models.CompanyAnalytics{
		{CompanyName: "AgriCo", TotalRevenue: 900},
		{CompanyName: "PressCo", TotalRevenue: 100},
	}
	items := []models.ItemAnalytics{
		{ItemName: "Rice", CompanyName: "AgriCo", PerformanceScore: 10},
		{ItemName: "Wheat", CompanyName: "AgriCo", PerformanceScore: 30},
		{ItemName: "Oil", CompanyName: "PressCo", PerformanceScore: 100},
	}

	ranked := RankCompanies(companies, items, CompaniesByAvgScore)

	// PressCo wins on average score despite far lower revenue.
	assert.Equal(t, "PressCo", ranked[0].CompanyName)
	assert.Equal(t, 100.0, ranked[0].AvgPerformanceScore)
	assert.Equal(t, 1, ranked[0].ItemCount)
	assert.Equal(t, 20.0, ranked[1].AvgPerformanceScore)
	assert.Equal(t, 2, ranked[1].ItemCount)
}
