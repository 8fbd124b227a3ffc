package models

import "time"

// CartLine is one line of a buyer's cart. The product fields are a snapshot
// taken by the catalog collaborator at the moment the line was added; the
// ledger never re-reads the live catalog.
type CartLine struct {
	ProductID    int64     `json:"productId" binding:"required"`
	Name         string    `json:"name" binding:"required"`
	Price        float64   `json:"price" binding:"gte=0"`
	Quantity     int       `json:"quantity" binding:"required,gt=0"`
	ImageURL     string    `json:"imageUrl"`
	SellerID     int64     `json:"sellerId" binding:"required"`
	SellingMode  string    `json:"sellingMode" binding:"required,oneof=secure direct"`
	FreeShipping bool      `json:"freeShipping"`
	ShippingCost float64   `json:"shippingCost" binding:"gte=0"` // per-unit
	AddedAt      time.Time `json:"addedAt"`
}
