package ledger

import (
	"fmt"
	"log"
	"time"

	"github.com/pasarlink/pasarlink-golang/internal/models"
	"github.com/pasarlink/pasarlink-golang/internal/store"
)

//
// --- Order Ledger ---
//

// Ledger creates orders at checkout. Every order is written twice: once
// into the buyer's partition and once into the seller's. The two writes
// are independent key-value puts with no transaction across them; if the
// process dies between them the copies diverge and nothing repairs that.
type Ledger struct {
	Partitions store.PartitionStore
	Dispatcher *Dispatcher
}

func NewLedger(partitions store.PartitionStore, dispatcher *Dispatcher) *Ledger {
	return &Ledger{Partitions: partitions, Dispatcher: dispatcher}
}

// PlaceOrder splits the cart into per-seller drafts and persists one order
// per draft. It assumes the caller has already validated the input (cart
// non-empty, address complete, delivery method chosen).
//
// Returns the first created order for the confirmation view, and false
// when no order was created at all (cart empty or entirely self-sales).
//
// Write order per draft is fixed: buyer partition, seller partition,
// notification inboxes. There is no atomicity across that sequence.
func (l *Ledger) PlaceOrder(buyerID int64, lines []models.CartLine, address models.Address, deliveryMethod string) (*models.Order, bool) {
	drafts := SplitCart(buyerID, lines, deliveryMethod)
	if len(drafts) == 0 {
		return nil, false
	}

	now := time.Now()
	var first *models.Order

	for _, d := range drafts {
		order := models.Order{
			ID:              fmt.Sprintf("%d-%d", now.UnixMilli(), d.SellerID),
			BuyerID:         buyerID,
			Items:           d.Items,
			Total:           d.Total,
			ShippingCost:    d.ShippingCost,
			ShippingAddress: address,
			SellingMode:     d.SellingMode,
			DeliveryMethod:  deliveryMethod,
			ReviewedItems:   make(map[int64]bool),
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		// 1. Buyer's copy: always starts awaiting shipment.
		buyerCopy := order
		buyerCopy.Status = models.StatusAwaitingShipment
		if err := l.appendToPartition(buyerID, buyerCopy); err != nil {
			log.Printf("ledger: buyer partition write failed for order %s: %v", order.ID, err)
			continue
		}

		// 2. Seller's copy: escrow hold in secure mode, otherwise the same
		// awaiting-shipment state the buyer sees.
		sellerCopy := order
		if d.SellingMode == models.SellingModeSecure {
			sellerCopy.Status = models.StatusPaymentHeld
		} else {
			sellerCopy.Status = models.StatusAwaitingShipment
		}
		if err := l.appendToPartition(d.SellerID, sellerCopy); err != nil {
			// The buyer copy is already persisted: this is the split-brain
			// window the design accepts.
			log.Printf("ledger: seller partition write failed for order %s: %v", order.ID, err)
		}

		// 3. Notifications, fire-and-forget.
		l.Dispatcher.OrderCreated(&sellerCopy)

		if first == nil {
			cp := buyerCopy
			first = &cp
		}
	}

	if first == nil {
		return nil, false
	}
	return first, true
}

// appendToPartition adds one order copy to an owner's list, preserving
// whatever is already there.
func (l *Ledger) appendToPartition(ownerID int64, order models.Order) error {
	orders, err := l.Partitions.Read(ownerID)
	if err != nil {
		return err
	}
	orders = append(orders, order)
	return l.Partitions.Write(ownerID, orders)
}
