package utils

import (
	"math"

	"github.com/gofiber/fiber/v2"
)

// Pagination represents the pagination details of a listing response.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// CreatePagination creates a Pagination object.
func CreatePagination(totalItems int64, page, pageSize int) Pagination {
	if pageSize <= 0 {
		pageSize = 10
	}
	if page <= 0 {
		page = 1
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))

	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: pageSize,
	}
}

// PageParams reads the page/limit query parameters with their defaults.
func PageParams(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page <= 0 {
		page = 1
	}
	limit = c.QueryInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}
	return page, limit
}
