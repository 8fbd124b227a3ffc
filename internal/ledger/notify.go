package ledger

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pasarlink/pasarlink-golang/internal/models"
	"github.com/pasarlink/pasarlink-golang/internal/store"
)

//
// --- Notification Dispatcher ---
//

// Dispatcher pushes notifications into participants' inboxes when an order
// is created or changes status. Delivery is fire-and-forget: an inbox
// write failure is logged and never rolls back the order mutation that
// triggered it.
type Dispatcher struct {
	Inbox   store.InboxStore
	AdminID int64
}

func NewDispatcher(inbox store.InboxStore, adminID int64) *Dispatcher {
	return &Dispatcher{Inbox: inbox, AdminID: adminID}
}

// OrderCreated notifies the admin and the seller about a new order. The
// buyer is not notified: the confirmation view serves that purpose
// synchronously.
func (d *Dispatcher) OrderCreated(order *models.Order) {
	d.push(d.AdminID,
		fmt.Sprintf("New order #%s placed (RM%.2f)", order.ShortID(), order.Total),
		"/admin/orders")
	d.push(order.SellerID(),
		fmt.Sprintf("You have a new sale! Order #%s", order.ShortID()),
		"/seller/orders")
}

// StatusChanged notifies every participant except the actor who triggered
// the change.
func (d *Dispatcher) StatusChanged(orderID, newStatus string, buyerID, sellerID, actorID int64) {
	message := fmt.Sprintf("Order #%s is now %s", models.ShortOrderID(orderID), newStatus)

	if buyerID != actorID {
		d.push(buyerID, message, "/buyer/orders")
	}
	if sellerID != actorID && sellerID != buyerID {
		d.push(sellerID, message, "/seller/orders")
	}
	if d.AdminID != actorID && d.AdminID != buyerID && d.AdminID != sellerID {
		d.push(d.AdminID, message, "/admin/orders")
	}
}

func (d *Dispatcher) push(ownerID int64, message, link string) {
	n := models.Notification{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Message:   message,
		Link:      link,
		CreatedAt: time.Now(),
	}
	if err := d.Inbox.Push(ownerID, n); err != nil {
		log.Printf("dispatcher: failed to notify user %d: %v", ownerID, err)
	}
}
