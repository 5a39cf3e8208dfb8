package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"app/database"
	"app/models"
	"app/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleGetAvailableStock lists stock rows that are still on hand.
// GET /api/stock/available
func HandleGetAvailableStock(c *fiber.Ctx) error {
	return listStock(c, false)
}

// HandleGetOutOfStock lists stock rows that have been fully depleted.
// GET /api/stock/out-of-stock
func HandleGetOutOfStock(c *fiber.Ctx) error {
	return listStock(c, true)
}

func listStock(c *fiber.Ctx, soldOut bool) error {
	filter := database.StockFilter{
		Search:       c.Query("search"),
		CompanyName:  c.Query("companyName"),
		QuantityType: c.Query("quantityType"),
		MinPrice:     queryFloat(c, "minPrice"),
		MaxPrice:     queryFloat(c, "maxPrice"),
	}

	query := database.BuildStockQuery(filter)
	query["isSoldOut"] = soldOut

	fallback := bson.D{{Key: "dateAdded", Value: -1}}
	if soldOut {
		fallback = bson.D{{Key: "dateOutOfStock", Value: -1}}
	}
	sort := database.StockSort(c.Query("sortBy"), c.Query("sortOrder"), fallback)

	page, limit := utils.PageParams(c)
	stocks, total, err := database.ListStock(c.Context(), query, sort, page, limit)
	if err != nil {
		log.Printf("Error listing stock: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       stocks,
		"pagination": utils.CreatePagination(total, page, limit),
	})
}

// HandleGetStockByID returns a single stock row.
// GET /api/stock/:id
func HandleGetStockByID(c *fiber.Ctx) error {
	stock, err := database.GetStockByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Stock item not found"})
		}
		log.Printf("Error fetching stock %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": stock})
}

// HandleAddStock creates a new stock row.
// POST /api/stock
func HandleAddStock(c *fiber.Ctx) error {
	var req models.AddStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	req.Name = strings.TrimSpace(req.Name)
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	if req.Name == "" || req.CompanyName == "" || req.Quantity == nil || req.Price == nil || req.QuantityType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Missing required fields (name, quantity, quantityType, companyName, price)"})
	}
	if !models.ValidQuantityTypes[req.QuantityType] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid quantity type"})
	}
	if *req.Quantity < 0 || *req.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Quantity and price must not be negative"})
	}

	now := time.Now().UTC()
	stock := models.Stock{
		Name:         req.Name,
		Quantity:     *req.Quantity,
		QuantityType: req.QuantityType,
		CompanyName:  req.CompanyName,
		Price:        *req.Price,
		ExpiryDate:   req.ExpiryDate,
		DateAdded:    now,
		IsSoldOut:    *req.Quantity == 0,
	}
	if stock.IsSoldOut {
		stock.DateOutOfStock = &now
	}

	created, err := database.InsertStock(c.Context(), stock)
	if err != nil {
		log.Printf("Error creating stock %s: %v", req.Name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not create stock item"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

// HandleUpdateStock updates a stock row. Depletion is recorded as sales:
// lowering the quantity creates a Sale for the difference, and marking the
// row sold out sells off the remaining quantity and stamps DateOutOfStock.
// Raising the quantity on a sold-out row puts it back in stock.
// PUT /api/stock/:id
func HandleUpdateStock(c *fiber.Ctx) error {
	var req models.UpdateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	stock, err := database.GetStockByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Stock item not found"})
		}
		log.Printf("Error fetching stock %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}

	if req.QuantityType != nil && !models.ValidQuantityTypes[*req.QuantityType] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid quantity type"})
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Quantity must not be negative"})
	}
	if req.Price != nil && *req.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Price must not be negative"})
	}

	now := time.Now().UTC()
	updated, sold := applyStockUpdate(*stock, req, now)

	if sold > 0 {
		sale := models.Sale{
			StockID:      updated.ID,
			ItemName:     updated.Name,
			CompanyName:  updated.CompanyName,
			QuantitySold: sold,
			Price:        updated.Price,
			SaleDate:     now,
		}
		if err := database.CreateSale(c.Context(), sale); err != nil {
			log.Printf("Error recording sale for stock %s: %v", updated.ID.Hex(), err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not record sale"})
		}
	}

	if err := database.ReplaceStock(c.Context(), updated); err != nil {
		log.Printf("Error updating stock %s: %v", updated.ID.Hex(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not update stock item"})
	}

	return c.JSON(fiber.Map{"success": true, "data": updated})
}

// applyStockUpdate merges an update request into a stock row and returns the
// quantity sold in the process. Lowering the quantity sells the difference;
// marking the row sold out sells off the remainder. The quantity and the
// sold-out flag stay consistent in both directions: reaching zero marks the
// row sold out and stamps DateOutOfStock, and any update that leaves a
// positive quantity on a sold-out row clears the flag again, so restocking
// needs no explicit isSoldOut field.
func applyStockUpdate(stock models.Stock, req models.UpdateStockRequest, now time.Time) (models.Stock, float64) {
	if req.Name != nil {
		stock.Name = strings.TrimSpace(*req.Name)
	}
	if req.CompanyName != nil {
		stock.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.QuantityType != nil {
		stock.QuantityType = *req.QuantityType
	}
	if req.Price != nil {
		stock.Price = *req.Price
	}
	if req.ExpiryDate != nil {
		stock.ExpiryDate = req.ExpiryDate
	}

	var sold float64
	if req.Quantity != nil && *req.Quantity < stock.Quantity {
		sold = stock.Quantity - *req.Quantity
	}
	if req.Quantity != nil {
		stock.Quantity = *req.Quantity
	}

	if req.IsSoldOut != nil && *req.IsSoldOut && !stock.IsSoldOut {
		// Selling off the remainder, whatever is left after the quantity
		// change above.
		sold += stock.Quantity
		stock.Quantity = 0
	}

	if stock.Quantity == 0 && !stock.IsSoldOut {
		stock.IsSoldOut = true
		stock.DateOutOfStock = &now
	}
	if stock.Quantity > 0 && stock.IsSoldOut {
		stock.IsSoldOut = false
		stock.DateOutOfStock = nil
	}

	return stock, sold
}

// HandleDeleteStock removes a stock row. Past sales for the item are kept.
// DELETE /api/stock/:id
func HandleDeleteStock(c *fiber.Ctx) error {
	if err := database.DeleteStock(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Stock item not found"})
		}
		log.Printf("Error deleting stock %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Stock item deleted"})
}

func queryFloat(c *fiber.Ctx, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v := c.QueryFloat(key)
	return &v
}
