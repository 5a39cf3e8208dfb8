package database

import (
	"context"
	"time"

	"app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StockFilter collects the supported query parameters for stock listings.
type StockFilter struct {
	Search       string
	CompanyName  string
	QuantityType string
	MinPrice     *float64
	MaxPrice     *float64
}

var validStockSortFields = map[string]bool{
	"name":           true,
	"quantity":       true,
	"companyName":    true,
	"price":          true,
	"expiryDate":     true,
	"dateAdded":      true,
	"dateOutOfStock": true,
}

// BuildStockQuery translates a StockFilter into a find query. Callers merge
// in their own state conditions (isSoldOut, expiry ranges).
func BuildStockQuery(f StockFilter) bson.M {
	query := bson.M{}

	if f.Search != "" {
		query["$or"] = bson.A{
			bson.M{"name": regexMatch(f.Search)},
			bson.M{"companyName": regexMatch(f.Search)},
		}
	}
	if f.CompanyName != "" {
		query["companyName"] = regexMatch(f.CompanyName)
	}
	if f.QuantityType != "" {
		query["quantityType"] = f.QuantityType
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		priceRange := bson.M{}
		if f.MinPrice != nil {
			priceRange["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			priceRange["$lte"] = *f.MaxPrice
		}
		query["price"] = priceRange
	}

	return query
}

// StockSort returns the sort document for a listing request. Unknown fields
// fall back to the provided default.
func StockSort(sortBy, sortOrder string, fallback bson.D) bson.D {
	if !validStockSortFields[sortBy] {
		return fallback
	}
	order := 1
	if sortOrder == "desc" {
		order = -1
	}
	return bson.D{{Key: sortBy, Value: order}}
}

// ListStock returns one page of stock rows matching the query plus the total
// match count.
func ListStock(ctx context.Context, query bson.M, sort bson.D, page, limit int) ([]models.Stock, int64, error) {
	coll := Coll(StocksCollection)

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

	stocks := make([]models.Stock, 0)
	if err := cursor.All(ctx, &stocks); err != nil {
		return nil, 0, err
	}
	return stocks, total, nil
}

// GetStockByID fetches a single stock row. Returns mongo.ErrNoDocuments when
// the id does not exist.
func GetStockByID(ctx context.Context, id string) (*models.Stock, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var stock models.Stock
	err = Coll(StocksCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&stock)
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// InsertStock stores a new stock row and returns it with its assigned id.
func InsertStock(ctx context.Context, stock models.Stock) (models.Stock, error) {
	now := time.Now()
	stock.CreatedAt = now
	stock.UpdatedAt = now

	res, err := Coll(StocksCollection).InsertOne(ctx, stock)
	if err != nil {
		return stock, err
	}
	stock.ID = res.InsertedID.(primitive.ObjectID)
	return stock, nil
}

// ReplaceStock writes back a modified stock row.
func ReplaceStock(ctx context.Context, stock models.Stock) error {
	stock.UpdatedAt = time.Now()
	_, err := Coll(StocksCollection).ReplaceOne(ctx, bson.M{"_id": stock.ID}, stock)
	return err
}

// DeleteStock removes a stock row. Returns mongo.ErrNoDocuments when nothing
// matched.
func DeleteStock(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	res, err := Coll(StocksCollection).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// StockWindowSource feeds the analytics correlation stage.
type StockWindowSource struct{}

// StockByNames returns all stock rows whose name is in the given set, newest
// batch first. The ordering is a contract with the correlation stage: when an
// item has several active batches, the newest one is selected as "current".
func (StockWindowSource) StockByNames(ctx context.Context, names []string) ([]models.Stock, error) {
	if len(names) == 0 {
		return []models.Stock{}, nil
	}

	query := bson.M{"name": bson.M{"$in": names}}
	opts := options.Find().SetSort(bson.D{{Key: "dateAdded", Value: -1}})

	cursor, err := Coll(StocksCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stocks := make([]models.Stock, 0)
	if err := cursor.All(ctx, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

// StocksWithExpiry returns every not-sold-out row carrying an expiry date,
// for the daily expiry check.
func StocksWithExpiry(ctx context.Context) ([]models.Stock, error) {
	query := bson.M{
		"expiryDate": bson.M{"$exists": true, "$ne": nil},
		"isSoldOut":  false,
	}

	cursor, err := Coll(StocksCollection).Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stocks := make([]models.Stock, 0)
	if err := cursor.All(ctx, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}
