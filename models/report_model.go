package models

import "time"

// The types in this file are derived analytics shapes. They are built fresh
// for every analytics/report request and never persisted.

// Period describes the reporting window.
type Period struct {
	Type      string    `json:"type"`
	Value     string    `json:"value"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Summary holds the window-global totals.
type Summary struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalQuantity float64 `json:"totalQuantity"`
	TotalSales    int     `json:"totalSales"`
	AvgSaleValue  float64 `json:"avgSaleValue"`
}

// TrendPoint is one calendar day of sales activity. Date is a UTC day key
// in YYYY-MM-DD form.
type TrendPoint struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Count    int     `json:"count"`
}

// PeakDay is the trend point with the highest revenue. A window with no sales
// yields HasSales=false and a null date, rather than a real day with zero
// revenue; always check HasSales, not Revenue.
type PeakDay struct {
	HasSales bool    `json:"-"`
	Date     *string `json:"date"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Count    int     `json:"count"`
}

// NoPeakDay is the sentinel for an empty window.
func NoPeakDay() PeakDay {
	return PeakDay{}
}

// ItemAnalytics aggregates all sales of one item name within the window.
// Identically-named items from different companies merge into one aggregate;
// CompanyName is the company of the first sale encountered.
type ItemAnalytics struct {
	ItemName      string    `json:"itemName"`
	CompanyName   string    `json:"companyName"`
	TotalQuantity float64   `json:"totalQuantity"`
	TotalRevenue  float64   `json:"totalRevenue"`
	SaleCount     int       `json:"saleCount"`
	FirstSaleDate time.Time `json:"firstSaleDate"`
	LastSaleDate  time.Time `json:"lastSaleDate"`

	SalesVelocity       float64 `json:"salesVelocity"`
	AvgDaysBetweenSales float64 `json:"avgDaysBetweenSales"`
	AvgQuantityPerSale  float64 `json:"avgQuantityPerSale,omitempty"`
	PerformanceScore    float64 `json:"performanceScore"`

	IsOutOfStock     bool     `json:"isOutOfStock"`
	CurrentQuantity  float64  `json:"currentQuantity"`
	TimeToOutOfStock *float64 `json:"timeToOutOfStock,omitempty"`
}

// CompanyAnalytics aggregates all sales of one company within the window.
type CompanyAnalytics struct {
	CompanyName      string  `json:"companyName"`
	TotalQuantity    float64 `json:"totalQuantity"`
	TotalRevenue     float64 `json:"totalRevenue"`
	SaleCount        int     `json:"saleCount"`
	UniqueItemsCount int     `json:"uniqueItemsCount"`

	// Populated for the analytics company ranking only.
	AvgPerformanceScore float64 `json:"avgPerformanceScore,omitempty"`
	ItemCount           int     `json:"itemCount,omitempty"`
}

// RestockingSuggestion is the reduced item shape used in restocking lists.
type RestockingSuggestion struct {
	ItemName         string  `json:"itemName"`
	CompanyName      string  `json:"companyName"`
	CurrentQuantity  float64 `json:"currentQuantity"`
	IsOutOfStock     bool    `json:"isOutOfStock"`
	PerformanceScore float64 `json:"performanceScore"`
	TotalRevenue     float64 `json:"totalRevenue"`
	SalesVelocity    float64 `json:"salesVelocity"`
	Priority         string  `json:"priority"`
}

// ReportData is the single assembled result of one analytics run. The exact
// same structure is serialized to JSON for the API and handed to the PDF
// renderer; neither consumer gets a special-cased shape.
type ReportData struct {
	Period                Period                 `json:"period"`
	Summary               Summary                `json:"summary"`
	PeakDay               PeakDay                `json:"peakDay"`
	SalesTrend            []TrendPoint           `json:"salesTrend"`
	ItemAnalytics         []ItemAnalytics        `json:"itemAnalytics"`
	BestPerformingItems   []ItemAnalytics        `json:"bestPerformingItems"`
	WorstPerformingItems  []ItemAnalytics        `json:"worstPerformingItems"`
	CompanyAnalytics      []CompanyAnalytics     `json:"companyAnalytics"`
	RestockingSuggestions []RestockingSuggestion `json:"restockingSuggestions"`
	AvoidRestocking       []ItemAnalytics        `json:"avoidRestocking"`
}
