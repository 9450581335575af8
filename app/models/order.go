package models

import (
	"time"

	"github.com/shopspring/decimal"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line in a customer's cart.
type CartItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email      string             `bson:"email" json:"email" validate:"required,email"`
	MenuItemID string             `bson:"menuItemId" json:"menuItemId" validate:"required"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Price      float64            `bson:"price" json:"price" validate:"gte=0"`
	Quantity   int                `bson:"quantity,omitempty" json:"quantity,omitempty"`
}

// Payment is a completed order. CartItems and MenuItems hold references into
// the cart and menu collections.
type Payment struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string               `bson:"email" json:"email" validate:"required,email"`
	TransactionID string               `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Price         float64              `bson:"price" json:"price" validate:"gte=0"`
	Quantity      int                  `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Date          time.Time            `bson:"date" json:"date"`
	Status        string               `bson:"status,omitempty" json:"status,omitempty"`
	CartItems     []primitive.ObjectID `bson:"cartItems" json:"cartItems"`
	MenuItems     []primitive.ObjectID `bson:"menuItems" json:"menuItems"`
	ItemNames     []string             `bson:"itemNames,omitempty" json:"itemNames,omitempty"`
}

// AdminStats are the dashboard totals. Counts are estimates.
type AdminStats struct {
	Revenue   float64 `json:"revenue"`
	Customers int64   `json:"customers"`
	Products  int64   `json:"products"`
	Orders    int64   `json:"orders"`
}

// CategoryTotal is one row of the per-category sales breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Count    int64   `json:"count"`
	Total    float64 `json:"total"`
}

// CategorySum is an unrounded CategoryTotal as summed by the store.
type CategorySum struct {
	Category string
	Count    int64
	Total    decimal.Decimal
}
