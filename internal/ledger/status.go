package ledger

import (
	"log"
	"time"

	"github.com/pasarlink/pasarlink-golang/internal/models"
	"github.com/pasarlink/pasarlink-golang/internal/store"
)

//
// --- Status Transition Engine ---
//

// Reason codes returned by engine operations. The engine never raises;
// callers branch on the reason, mirroring the boolean-return contract of
// the rest of the ledger.
const (
	ReasonOK                = "ok"
	ReasonNotFound          = "not-found"
	ReasonInvalidTransition = "invalid-transition"
)

// UpdateResult reports the outcome of one engine operation.
type UpdateResult struct {
	OK       bool
	Reason   string
	OrderID  string
	BuyerID  int64
	SellerID int64
}

func notFound(orderID string) UpdateResult {
	return UpdateResult{Reason: ReasonNotFound, OrderID: orderID}
}

func invalidTransition(orderID string) UpdateResult {
	return UpdateResult{Reason: ReasonInvalidTransition, OrderID: orderID}
}

// Engine applies mutations to an existing order, updating both the actor's
// copy and the counterparty's copy of the same order id.
type Engine struct {
	Partitions store.PartitionStore
	Dispatcher *Dispatcher
}

func NewEngine(partitions store.PartitionStore, dispatcher *Dispatcher) *Engine {
	return &Engine{Partitions: partitions, Dispatcher: dispatcher}
}

// MarkShipped is the seller's "mark as shipped" action. Allowed from
// awaiting-shipment or payment-held only, and only for the order's own
// seller.
func (e *Engine) MarkShipped(sellerID int64, orderID string) UpdateResult {
	validate := func(o models.Order) bool {
		return o.Status == models.StatusAwaitingShipment || o.Status == models.StatusPaymentHeld
	}
	res := e.updateOrderAndSave(sellerID, orderID, sellerOwns(sellerID), validate, setStatus(models.StatusShipped))
	if res.OK {
		e.Dispatcher.StatusChanged(orderID, models.StatusShipped, res.BuyerID, res.SellerID, sellerID)
	}
	return res
}

// ConfirmReceipt is the buyer's "confirm receipt" action. Allowed from
// shipped only, and only for the order's own buyer — a seller cannot
// complete their own escrow sale. An order still awaiting shipment is
// rejected with no status change and no notification.
func (e *Engine) ConfirmReceipt(buyerID int64, orderID string) UpdateResult {
	validate := func(o models.Order) bool {
		return o.Status == models.StatusShipped
	}
	res := e.updateOrderAndSave(buyerID, orderID, buyerOwns(buyerID), validate, setStatus(models.StatusCompleted))
	if res.OK {
		e.Dispatcher.StatusChanged(orderID, models.StatusCompleted, res.BuyerID, res.SellerID, buyerID)
	}
	return res
}

// AdminSetStatus is the administrative override used for dispute
// resolution. Any status to any status, not validated against the normal
// transition graph.
func (e *Engine) AdminSetStatus(adminID int64, orderID string, status string) UpdateResult {
	res := e.updateOrderAndSave(adminID, orderID, nil, nil, setStatus(status))
	if res.OK {
		e.Dispatcher.StatusChanged(orderID, status, res.BuyerID, res.SellerID, adminID)
	}
	return res
}

// RateSeller marks the order as rated by the buyer, on both copies.
func (e *Engine) RateSeller(buyerID int64, orderID string) UpdateResult {
	return e.updateOrderAndSave(buyerID, orderID, buyerOwns(buyerID), nil, func(o *models.Order) {
		o.BuyerRating = true
	})
}

// ReviewItem marks one product of the order as reviewed by the buyer.
func (e *Engine) ReviewItem(buyerID int64, orderID string, productID int64) UpdateResult {
	return e.updateOrderAndSave(buyerID, orderID, buyerOwns(buyerID), nil, func(o *models.Order) {
		if o.ReviewedItems == nil {
			o.ReviewedItems = make(map[int64]bool)
		}
		o.ReviewedItems[productID] = true
	})
}

func setStatus(status string) func(*models.Order) {
	return func(o *models.Order) { o.Status = status }
}

func buyerOwns(buyerID int64) func(models.Order) bool {
	return func(o models.Order) bool { return o.BuyerID == buyerID }
}

func sellerOwns(sellerID int64) func(models.Order) bool {
	return func(o models.Order) bool { return o.SellerID() == sellerID }
}

// updateOrderAndSave is the shared update routine. It patches the actor's
// own copy first, then scans every other partition for the counterparty
// copy and patches the first match it finds (an order id lives in at most
// two partitions, so the scan stops there).
//
// owns and validate are checked against the first copy located, before
// anything is written. A copy the actor does not own reads as not-found
// (holding a copy of an order is not the same as being its buyer or its
// seller); a failed validate is an invalid transition. Either way no
// writes happen. If the order id exists in no partition the result
// is not-found and nothing is written. A write failure on the counterparty
// copy after the actor's copy was saved is logged and otherwise ignored:
// partial propagation is an accepted gap, not a rolled-back error.
func (e *Engine) updateOrderAndSave(actorID int64, orderID string, owns func(models.Order) bool, validate func(models.Order) bool, patch func(*models.Order)) UpdateResult {
	now := time.Now()
	var ref *models.Order

	// 1. The actor's own partition first.
	own, err := e.Partitions.Read(actorID)
	if err != nil {
		log.Printf("engine: failed to read partition %d: %v", actorID, err)
		return notFound(orderID)
	}
	if idx := findOrder(own, orderID); idx >= 0 {
		if owns != nil && !owns(own[idx]) {
			return notFound(orderID)
		}
		if validate != nil && !validate(own[idx]) {
			return invalidTransition(orderID)
		}
		patch(&own[idx])
		own[idx].UpdatedAt = now
		if err := e.Partitions.Write(actorID, own); err != nil {
			log.Printf("engine: failed to write partition %d: %v", actorID, err)
			return notFound(orderID)
		}
		cp := own[idx]
		ref = &cp
	}

	// 2. Scan everyone else for the counterparty copy, first match wins.
	ownerIDs, err := e.Partitions.ListOwnerIDs()
	if err != nil {
		log.Printf("engine: failed to list partition owners: %v", err)
		ownerIDs = nil
	}
	for _, ownerID := range ownerIDs {
		if ownerID == actorID {
			continue
		}
		orders, err := e.Partitions.Read(ownerID)
		if err != nil {
			log.Printf("engine: failed to read partition %d: %v", ownerID, err)
			continue
		}
		idx := findOrder(orders, orderID)
		if idx < 0 {
			continue
		}
		if ref == nil {
			// Actor's partition had no copy; this one drives the checks.
			if owns != nil && !owns(orders[idx]) {
				return notFound(orderID)
			}
			if validate != nil && !validate(orders[idx]) {
				return invalidTransition(orderID)
			}
		}
		patch(&orders[idx])
		orders[idx].UpdatedAt = now
		if err := e.Partitions.Write(ownerID, orders); err != nil {
			log.Printf("engine: failed to write partition %d: %v", ownerID, err)
		}
		if ref == nil {
			cp := orders[idx]
			ref = &cp
		}
		break
	}

	if ref == nil {
		return notFound(orderID)
	}
	return UpdateResult{
		OK:       true,
		Reason:   ReasonOK,
		OrderID:  orderID,
		BuyerID:  ref.BuyerID,
		SellerID: ref.SellerID(),
	}
}

func findOrder(orders []models.Order, orderID string) int {
	for i := range orders {
		if orders[i].ID == orderID {
			return i
		}
	}
	return -1
}
