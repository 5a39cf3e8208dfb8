package database

import (
	"context"
	"time"

	"app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaleFilter collects the supported query parameters for sale listings.
type SaleFilter struct {
	Search      string
	ItemName    string
	CompanyName string
	StartDate   *time.Time
	EndDate     *time.Time
	MinQuantity *float64
	MaxQuantity *float64
}

var validSaleSortFields = map[string]bool{
	"itemName":     true,
	"quantitySold": true,
	"companyName":  true,
	"price":        true,
	"saleDate":     true,
}

func regexMatch(pattern string) bson.M {
	return bson.M{"$regex": primitive.Regex{Pattern: pattern, Options: "i"}}
}

// buildSaleQuery translates a SaleFilter into a find query. Search matches
// item or company name case-insensitively.
func buildSaleQuery(f SaleFilter) bson.M {
	query := bson.M{}

	if f.Search != "" {
		query["$or"] = bson.A{
			bson.M{"itemName": regexMatch(f.Search)},
			bson.M{"companyName": regexMatch(f.Search)},
		}
	}
	if f.ItemName != "" {
		query["itemName"] = regexMatch(f.ItemName)
	}
	if f.CompanyName != "" {
		query["companyName"] = regexMatch(f.CompanyName)
	}

	if f.StartDate != nil || f.EndDate != nil {
		dateRange := bson.M{}
		if f.StartDate != nil {
			dateRange["$gte"] = *f.StartDate
		}
		if f.EndDate != nil {
			dateRange["$lte"] = *f.EndDate
		}
		query["saleDate"] = dateRange
	}

	if f.MinQuantity != nil || f.MaxQuantity != nil {
		qtyRange := bson.M{}
		if f.MinQuantity != nil {
			qtyRange["$gte"] = *f.MinQuantity
		}
		if f.MaxQuantity != nil {
			qtyRange["$lte"] = *f.MaxQuantity
		}
		query["quantitySold"] = qtyRange
	}

	return query
}

// SaleSort returns the sort document for a listing request, defaulting to
// newest sale first for unknown fields.
func SaleSort(sortBy, sortOrder string) bson.D {
	if !validSaleSortFields[sortBy] {
		return bson.D{{Key: "saleDate", Value: -1}}
	}
	order := 1
	if sortOrder == "desc" {
		order = -1
	}
	return bson.D{{Key: sortBy, Value: order}}
}

// ListSales returns one page of sales matching the filter plus the total
// match count.
func ListSales(ctx context.Context, filter SaleFilter, sort bson.D, page, limit int) ([]models.Sale, int64, error) {
	query := buildSaleQuery(filter)
	coll := Coll(SalesCollection)

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	sales := make([]models.Sale, 0)
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

// CreateSale records a new sale.
func CreateSale(ctx context.Context, sale models.Sale) error {
	sale.CreatedAt = time.Now()
	_, err := Coll(SalesCollection).InsertOne(ctx, sale)
	return err
}

// SaleWindowSource feeds the analytics engine. Optional item and company
// substring filters narrow the window; results are always sorted ascending
// by sale date, which the engine requires for reproducible trend, peak-day
// and tie-break behavior.
type SaleWindowSource struct {
	ItemName    string
	CompanyName string
}

func (s SaleWindowSource) SalesInWindow(ctx context.Context, start, end time.Time) ([]models.Sale, error) {
	query := bson.M{"saleDate": bson.M{"$gte": start, "$lte": end}}
	if s.ItemName != "" {
		query["itemName"] = regexMatch(s.ItemName)
	}
	if s.CompanyName != "" {
		query["companyName"] = regexMatch(s.CompanyName)
	}

	opts := options.Find().SetSort(bson.D{{Key: "saleDate", Value: 1}})
	cursor, err := Coll(SalesCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sales := make([]models.Sale, 0)
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}
