package ledger

import (
	"github.com/gosimple/slug"

	"github.com/pasarlink/pasarlink-golang/internal/models"
)

//
// --- Cart Aggregator ---
//

// Draft is one pending order produced by splitting a cart: all the lines
// belonging to a single seller plus the money already computed for them.
type Draft struct {
	SellerID     int64
	SellingMode  string
	Items        []models.OrderItem
	Subtotal     float64
	ShippingCost float64
	Total        float64
}

// SplitCart partitions a buyer's cart lines by seller and computes the
// per-seller money. Groups where the seller is the buyer themselves are
// dropped entirely: nobody buys their own listing, so a fully self-owned
// cart yields zero drafts.
//
// Shipping is zero unless the chosen delivery method is actual shipping;
// within a shipped group, lines flagged free_shipping contribute nothing
// and every other line contributes its declared per-unit cost times
// quantity.
func SplitCart(buyerID int64, lines []models.CartLine, deliveryMethod string) []Draft {
	var order []int64 // first-seen seller order
	groups := make(map[int64]*Draft)

	for _, line := range lines {
		if line.SellerID == buyerID {
			continue // self-sale, silently excluded
		}

		d, ok := groups[line.SellerID]
		if !ok {
			d = &Draft{
				SellerID:    line.SellerID,
				SellingMode: line.SellingMode,
			}
			groups[line.SellerID] = d
			order = append(order, line.SellerID)
		}

		item := models.OrderItem{
			ProductID:    line.ProductID,
			Name:         line.Name,
			Slug:         slug.Make(line.Name),
			Price:        line.Price,
			Quantity:     line.Quantity,
			ImageURL:     line.ImageURL,
			SellerID:     line.SellerID,
			FreeShipping: line.FreeShipping,
			ShippingCost: line.ShippingCost,
		}
		d.Items = append(d.Items, item)

		d.Subtotal += line.Price * float64(line.Quantity)
		if deliveryMethod == models.DeliveryShipping && !line.FreeShipping {
			d.ShippingCost += line.ShippingCost * float64(line.Quantity)
		}
	}

	drafts := make([]Draft, 0, len(order))
	for _, sellerID := range order {
		d := groups[sellerID]
		d.Total = d.Subtotal + d.ShippingCost
		drafts = append(drafts, *d)
	}
	return drafts
}
