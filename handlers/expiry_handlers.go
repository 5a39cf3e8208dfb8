package handlers

import (
	"log"
	"time"

	"app/database"
	"app/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

const expiringSoonMonths = 3

// HandleGetExpiringSoon lists stock on hand that expires within the next
// 3 months.
// GET /api/expiring-soon
func HandleGetExpiringSoon(c *fiber.Ctx) error {
	now := time.Now().UTC()
	query := database.BuildStockQuery(stockFilterFromQuery(c))
	query["isSoldOut"] = false
	query["expiryDate"] = bson.M{
		"$gt":  now,
		"$lte": now.AddDate(0, expiringSoonMonths, 0),
	}

	return listStockByExpiry(c, query, bson.D{{Key: "expiryDate", Value: 1}})
}

// HandleGetExpired lists stock on hand that has passed its expiry date.
// GET /api/expired
func HandleGetExpired(c *fiber.Ctx) error {
	query := database.BuildStockQuery(stockFilterFromQuery(c))
	query["isSoldOut"] = false
	query["expiryDate"] = bson.M{"$lte": time.Now().UTC()}

	return listStockByExpiry(c, query, bson.D{{Key: "expiryDate", Value: -1}})
}

func stockFilterFromQuery(c *fiber.Ctx) database.StockFilter {
	return database.StockFilter{
		Search:       c.Query("search"),
		CompanyName:  c.Query("companyName"),
		QuantityType: c.Query("quantityType"),
	}
}

func listStockByExpiry(c *fiber.Ctx, query bson.M, fallback bson.D) error {
	sort := database.StockSort(c.Query("sortBy"), c.Query("sortOrder"), fallback)
	page, limit := utils.PageParams(c)

	stocks, total, err := database.ListStock(c.Context(), query, sort, page, limit)
	if err != nil {
		log.Printf("Error listing stock by expiry: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       stocks,
		"pagination": utils.CreatePagination(total, page, limit),
	})
}
