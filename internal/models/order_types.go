package models

import "time"

// Order statuses. The buyer-side and seller-side copies of the same order
// are stored independently and may carry different values: the seller's
// copy reflects internal fulfilment state (escrow hold), the buyer's copy
// reflects what the buyer should see.
const (
	StatusAwaitingShipment = "awaiting-shipment"
	StatusPaymentHeld      = "payment-held"
	StatusShipped          = "shipped"
	StatusCompleted        = "completed"
)

// Selling modes
const (
	SellingModeSecure = "secure" // platform escrow holds funds until receipt
	SellingModeDirect = "direct" // buyer and seller arrange payment themselves
)

// Delivery methods
const (
	DeliveryShipping     = "shipping"
	DeliveryFreeShipping = "free_shipping"
	DeliveryLocalPickup  = "local_pickup"
)

// Address is the shipping address frozen into an order at checkout.
type Address struct {
	Name     string `json:"name"`
	Line1    string `json:"line1"`
	City     string `json:"city"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`
	Phone    string `json:"phone"`
}

// Complete reports whether every address field is non-blank.
func (a Address) Complete() bool {
	return a.Name != "" && a.Line1 != "" && a.City != "" &&
		a.State != "" && a.Postcode != "" && a.Phone != ""
}

// OrderItem is a frozen snapshot of the product at time of purchase.
// Later catalog edits must never change historical orders, so everything
// the order views need is copied in here.
type OrderItem struct {
	ProductID    int64   `json:"productId" db:"product_id"`
	Name         string  `json:"name" db:"name"`
	Slug         string  `json:"slug" db:"slug"`
	Price        float64 `json:"price" db:"price"` // unit price at time of purchase
	Quantity     int     `json:"quantity" db:"quantity"`
	ImageURL     string  `json:"imageUrl" db:"image_url"`
	SellerID     int64   `json:"sellerId" db:"seller_id"`
	FreeShipping bool    `json:"freeShipping" db:"free_shipping"`
	ShippingCost float64 `json:"shippingCost" db:"shipping_cost"` // per-unit, declared by seller
}

// Order is one seller's portion of a checkout. Two copies of every order
// exist, one in the buyer's partition and one in the seller's; they share
// the same ID verbatim and nothing else is guaranteed to stay in sync.
type Order struct {
	ID              string         `json:"id" db:"id"` // "<unix-millis>-<sellerId>", immutable
	BuyerID         int64          `json:"buyerId" db:"buyer_id"`
	Items           []OrderItem    `json:"items" db:"items"`
	Total           float64        `json:"total" db:"total"` // subtotal + shipping, fixed at creation
	ShippingCost    float64        `json:"shippingCost" db:"shipping_cost"`
	ShippingAddress Address        `json:"shippingAddress" db:"shipping_address"`
	Status          string         `json:"status" db:"status"`
	SellingMode     string         `json:"sellingMode" db:"selling_mode"`
	DeliveryMethod  string         `json:"deliveryMethod" db:"delivery_method"`
	BuyerRating     bool           `json:"buyerRating" db:"buyer_rating"`
	ReviewedItems   map[int64]bool `json:"reviewedItems" db:"reviewed_items"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`
}

// SellerID returns the seller owning this order. Every item in an order
// belongs to the same seller, so the first item is authoritative.
func (o *Order) SellerID() int64 {
	if len(o.Items) == 0 {
		return 0
	}
	return o.Items[0].SellerID
}

// ShortID is the human-facing tail of the order id used in notifications.
func (o *Order) ShortID() string {
	return ShortOrderID(o.ID)
}

// ShortOrderID truncates an order id to its last 8 characters for display.
func ShortOrderID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}
