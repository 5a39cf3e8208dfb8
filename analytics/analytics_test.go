package analytics

import (
	"testing"
	"time"

	"app/models"

	"github.com/stretchr/testify/assert"
)

var d0 = time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

func sale(item, company string, qty, price float64, date time.Time) models.Sale {
	return models.Sale{
		ItemName:     item,
		CompanyName:  company,
		QuantitySold: qty,
		Price:        price,
		SaleDate:     date,
	}
}

func TestAggregateSales_SumsPerItem(t *testing.T) {
	sales := []models.Sale{
		sale("Rice", "AgriCo", 10, 50, d0),
		sale("Rice", "AgriCo", 5, 50, d0.AddDate(0, 0, 1)),
	}
	windowEnd := d0.AddDate(0, 0, 7)

	items, companies, trend := AggregateSales(sales, windowEnd, Options{})

	if len(items) != 1 {
		t.Fatalf("expected 1 item aggregate, got %d", len(items))
	}
	rice := items[0]
	assert.Equal(t, "Rice", rice.ItemName)
	assert.Equal(t, 15.0, rice.TotalQuantity)
	assert.Equal(t, 750.0, rice.TotalRevenue)
	assert.Equal(t, 2, rice.SaleCount)
	assert.Equal(t, d0, rice.FirstSaleDate)
	assert.Equal(t, d0.AddDate(0, 0, 1), rice.LastSaleDate)

	assert.Len(t, companies, 1)
	assert.Equal(t, 750.0, companies[0].TotalRevenue)
	assert.Equal(t, 1, companies[0].UniqueItemsCount)

	assert.Len(t, trend, 2)
	assert.Equal(t, "2025-06-01", trend[0].Date)
	assert.Equal(t, "2025-06-02", trend[1].Date)
}

func TestAggregateSales_UnsortedInput(t *testing.T) {
	later := d0.AddDate(0, 0, 5)
	sales := []models.Sale{
		sale("Rice", "AgriCo", 1, 10, later),
		sale("Rice", "AgriCo", 1, 10, d0),
	}

	items, _, _ := AggregateSales(sales, later.AddDate(0, 0, 1), Options{})

	assert.Equal(t, d0, items[0].FirstSaleDate)
	assert.Equal(t, later, items[0].LastSaleDate)
}

func TestAggregateSales_UsesRecordedSalePrice(t *testing.T) {
	// Two sales of the same item at different historical prices; revenue must
	// come from each sale's own price, never a current stock price.
	sales := []models.Sale{
		sale("Oil", "PressCo", 2, 100, d0),
		sale("Oil", "PressCo", 2, 120, d0.AddDate(0, 0, 1)),
	}

	items, _, _ := AggregateSales(sales, d0.AddDate(0, 0, 2), Options{})

	assert.Equal(t, 440.0, items[0].TotalRevenue)
}

func TestAggregateSales_DayBucketsAreUTCDays(t *testing.T) {
	// 23:59 and 00:01 the next day land in different buckets regardless of
	// the time-of-day on the records.
	lateNight := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	earlyMorning := time.Date(2025, 6, 2, 0, 1, 0, 0, time.UTC)
	sales := []models.Sale{
		sale("Rice", "AgriCo", 1, 10, lateNight),
		sale("Rice", "AgriCo", 1, 10, earlyMorning),
	}

	_, _, trend := AggregateSales(sales, earlyMorning.AddDate(0, 0, 1), Options{})

	assert.Len(t, trend, 2)
	assert.Equal(t, "2025-06-01", trend[0].Date)
	assert.Equal(t, "2025-06-02", trend[1].Date)
}

func TestDeriveItemMetrics_VelocityAndScore(t *testing.T) {
	windowEnd := d0.AddDate(0, 0, 10) // 10 days after first sale
	sales := []models.Sale{
		sale("Rice", "AgriCo", 20, 50, d0),
		sale("Rice", "AgriCo", 10, 50, d0.AddDate(0, 0, 5)),
	}

	items, _, _ := AggregateSales(sales, windowEnd, Options{})
	rice := items[0]

	assert.InDelta(t, 3.0, rice.SalesVelocity, 1e-9)       // 30 units / 10 days
	assert.InDelta(t, 5.0, rice.AvgDaysBetweenSales, 1e-9) // 10 days / 2 sales

	expected := 1500.0*0.4 + 30.0*0.2 + (1/(5.0+1))*1000*0.2 + 3.0*0.2
	assert.InDelta(t, expected, rice.PerformanceScore, 1e-9)
}

func TestDeriveItemMetrics_ZeroDayGuard(t *testing.T) {
	// First sale exactly at the window end: daysSinceFirstSale is 0, so the
	// derived rates must be 0 instead of dividing by zero.
	items, _, _ := AggregateSales([]models.Sale{sale("Salt", "SeaCo", 5, 20, d0)}, d0, Options{})

	salt := items[0]
	assert.Equal(t, 0.0, salt.SalesVelocity)
	assert.Equal(t, 0.0, salt.AvgDaysBetweenSales)
	// Frequency term maxes out at 1000*0.2 when the gap is zero.
	expected := 100.0*0.4 + 5.0*0.2 + 200.0
	assert.InDelta(t, expected, salt.PerformanceScore, 1e-9)
}

func TestAggregateSales_EmptyInput(t *testing.T) {
	items, companies, trend := AggregateSales(nil, d0, Options{})

	assert.Empty(t, items)
	assert.Empty(t, companies)
	assert.Empty(t, trend)
}

func TestRevenueConservation(t *testing.T) {
	sales := []models.Sale{
		sale("Rice", "AgriCo", 10, 50, d0),
		sale("Oil", "PressCo", 3, 200, d0.AddDate(0, 0, 1)),
		sale("Salt", "SeaCo", 7, 15, d0.AddDate(0, 0, 2)),
		sale("Rice", "AgriCo", 4, 55, d0.AddDate(0, 0, 3)),
	}
	windowEnd := d0.AddDate(0, 0, 7)

	items, companies, _ := AggregateSales(sales, windowEnd, Options{})
	summary := Summarize(sales)

	var itemTotal, companyTotal float64
	for _, item := range items {
		itemTotal += item.TotalRevenue
		if item.SaleCount < 1 {
			t.Fatalf("aggregate %q exists with saleCount %d", item.ItemName, item.SaleCount)
		}
		if item.TotalQuantity < 0 {
			t.Fatalf("aggregate %q has negative quantity", item.ItemName)
		}
	}
	for _, company := range companies {
		companyTotal += company.TotalRevenue
	}

	assert.InDelta(t, summary.TotalRevenue, itemTotal, 1e-9)
	assert.InDelta(t, summary.TotalRevenue, companyTotal, 1e-9)
}

func TestAggregateSales_Idempotent(t *testing.T) {
	sales := []models.Sale{
		sale("Rice", "AgriCo", 10, 50, d0),
		sale("Oil", "PressCo", 3, 200, d0.AddDate(0, 0, 1)),
		sale("Rice", "AgriCo", 2, 50, d0.AddDate(0, 0, 2)),
	}
	windowEnd := d0.AddDate(0, 0, 7)

	items1, companies1, trend1 := AggregateSales(sales, windowEnd, Options{})
	items2, companies2, trend2 := AggregateSales(sales, windowEnd, Options{})

	assert.Equal(t, items1, items2)
	assert.Equal(t, companies1, companies2)
	assert.Equal(t, trend1, trend2)
}

func TestSummarize_EmptyWindow(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0.0, s.TotalRevenue)
	assert.Equal(t, 0, s.TotalSales)
	assert.Equal(t, 0.0, s.AvgSaleValue)
}

func TestPeakOf(t *testing.T) {
	trend := []models.TrendPoint{
		{Date: "2025-06-01", Revenue: 100, Quantity: 2, Count: 1},
		{Date: "2025-06-02", Revenue: 300, Quantity: 6, Count: 2},
		{Date: "2025-06-03", Revenue: 300, Quantity: 5, Count: 3},
	}

	peak := PeakOf(trend)

	assert.True(t, peak.HasSales)
	// Revenue ties resolve to the earlier day.
	assert.Equal(t, "2025-06-02", *peak.Date)
	assert.Equal(t, 300.0, peak.Revenue)
}

func TestPeakOf_EmptyTrend(t *testing.T) {
	peak := PeakOf(nil)

	assert.False(t, peak.HasSales)
	assert.Nil(t, peak.Date)
	assert.Equal(t, 0.0, peak.Revenue)
}
