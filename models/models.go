package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailRequest is the body for the admin approve/reject/pre-approve endpoints.
type EmailRequest struct {
	Email string `json:"email"`
}

// --- Core Models ---

// User represents an account in the system (admin or regular user).
// The first registered user becomes an approved admin; everyone else starts
// as a regular user pending admin approval unless their email is pre-approved.
type User struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	Password   string             `json:"-" bson:"password"`
	Role       string             `json:"role" bson:"role"`
	IsApproved bool               `json:"isApproved" bson:"isApproved"`
	IsActive   bool               `json:"isActive" bson:"isActive"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PreApprovedEmail marks an address that is auto-approved on registration.
type PreApprovedEmail struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	AddedBy   string             `json:"addedBy" bson:"addedBy"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// PublicUser is the user shape returned by the auth and admin endpoints.
type PublicUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsApproved bool   `json:"isApproved"`
	IsActive   bool   `json:"isActive"`
}

// Public converts a stored user into its API representation.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID.Hex(),
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsApproved: u.IsApproved,
		IsActive:   u.IsActive,
	}
}
