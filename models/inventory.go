package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidQuantityTypes lists the accepted units for stock quantities.
var ValidQuantityTypes = map[string]bool{
	"numbers": true,
	"kg":      true,
	"liters":  true,
	"boxes":   true,
	"pieces":  true,
	"units":   true,
}

// Stock represents a physical batch of an item on hand. An item name may have
// several stock rows (re-stocked batches); the newest non-sold-out row is
// considered the current one.
type Stock struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Quantity       float64            `json:"quantity" bson:"quantity"`
	QuantityType   string             `json:"quantityType" bson:"quantityType"`
	CompanyName    string             `json:"companyName" bson:"companyName"`
	Price          float64            `json:"price" bson:"price"`
	ExpiryDate     *time.Time         `json:"expiryDate,omitempty" bson:"expiryDate,omitempty"`
	DateAdded      time.Time          `json:"dateAdded" bson:"dateAdded"`
	IsSoldOut      bool               `json:"isSoldOut" bson:"isSoldOut"`
	DateOutOfStock *time.Time         `json:"dateOutOfStock" bson:"dateOutOfStock"`

	// Expiry-job bookkeeping. Each notification is sent at most once per
	// transition, tracked by the corresponding date stamp.
	IsExpired                bool       `json:"isExpired" bson:"isExpired"`
	IsExpiringSoon           bool       `json:"isExpiringSoon" bson:"isExpiringSoon"`
	DateExpired              *time.Time `json:"dateExpired,omitempty" bson:"dateExpired,omitempty"`
	DateExpiringSoonNotified *time.Time `json:"dateExpiringSoonNotified,omitempty" bson:"dateExpiringSoonNotified,omitempty"`
	DateExpiredNotified      *time.Time `json:"dateExpiredNotified,omitempty" bson:"dateExpiredNotified,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Sale is a point-in-time record of stock depletion. Sales are created when a
// stock row's quantity is decremented or the row is marked sold out, and are
// never mutated or deleted afterwards. ItemName, CompanyName and Price are
// denormalized at creation time and not re-joined against the stock row.
type Sale struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StockID      primitive.ObjectID `json:"stockId" bson:"stockId"`
	ItemName     string             `json:"itemName" bson:"itemName"`
	CompanyName  string             `json:"companyName" bson:"companyName"`
	QuantitySold float64            `json:"quantitySold" bson:"quantitySold"`
	Price        float64            `json:"price" bson:"price"`
	SaleDate     time.Time          `json:"saleDate" bson:"saleDate"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

// AddStockRequest is the body for creating a stock item.
type AddStockRequest struct {
	Name         string     `json:"name"`
	Quantity     *float64   `json:"quantity"`
	QuantityType string     `json:"quantityType"`
	CompanyName  string     `json:"companyName"`
	Price        *float64   `json:"price"`
	ExpiryDate   *time.Time `json:"expiryDate"`
}

// UpdateStockRequest is the body for updating a stock item. Nil fields are
// left unchanged.
type UpdateStockRequest struct {
	Name         *string    `json:"name"`
	Quantity     *float64   `json:"quantity"`
	QuantityType *string    `json:"quantityType"`
	CompanyName  *string    `json:"companyName"`
	Price        *float64   `json:"price"`
	ExpiryDate   *time.Time `json:"expiryDate"`
	IsSoldOut    *bool      `json:"isSoldOut"`
}
