package handlers

import (
	"log"
	"strconv"
	"time"

	"app/analytics"
	"app/database"
	"app/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleGetSales lists sale records with filters, sorting and pagination.
// GET /api/sales
func HandleGetSales(c *fiber.Ctx) error {
	filter := database.SaleFilter{
		Search:      c.Query("search"),
		ItemName:    c.Query("itemName"),
		CompanyName: c.Query("companyName"),
		StartDate:   queryDate(c, "startDate"),
		EndDate:     queryDate(c, "endDate"),
		MinQuantity: queryFloat(c, "minQuantity"),
		MaxQuantity: queryFloat(c, "maxQuantity"),
	}

	sort := database.SaleSort(c.Query("sortBy"), c.Query("sortOrder"))
	page, limit := utils.PageParams(c)

	sales, total, err := database.ListSales(c.Context(), filter, sort, page, limit)
	if err != nil {
		log.Printf("Error listing sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       sales,
		"pagination": utils.CreatePagination(total, page, limit),
	})
}

// HandleGetSalesAnalytics runs the analytics engine over the recent sales
// window. Defaults to the last 12 months; itemName and companyName narrow the
// sales fed into the engine.
// GET /api/sales/analytics
func HandleGetSalesAnalytics(c *fiber.Ctx) error {
	months := analyticsMonths(c.Query("months"))
	period := analytics.ResolvePeriod("months", months, time.Now().UTC())

	saleSrc := database.SaleWindowSource{
		ItemName:    c.Query("itemName"),
		CompanyName: c.Query("companyName"),
	}

	opts := analytics.Options{
		CompanyRanking: analytics.CompaniesByAvgScore,
		TrackStockout:  true,
	}

	report, err := analytics.Generate(c.Context(), period, saleSrc, database.StockWindowSource{}, opts)
	if err != nil {
		log.Printf("Error computing sales analytics: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not compute analytics"})
	}

	return c.JSON(fiber.Map{"success": true, "data": report})
}

// analyticsMonths normalizes the months query parameter. The analytics
// window defaults to 12 months on missing, non-numeric or non-positive
// input, unlike the report endpoints' 3-month fallback.
func analyticsMonths(raw string) string {
	if n, err := strconv.Atoi(raw); err != nil || n <= 0 {
		return "12"
	}
	return raw
}

func queryDate(c *fiber.Ctx, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil
		}
	}
	return &t
}
