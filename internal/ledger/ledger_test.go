package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pasarlink/pasarlink-golang/internal/models"
	"github.com/pasarlink/pasarlink-golang/internal/store"
)

const adminID = int64(1)

func testAddress() models.Address {
	return models.Address{
		Name:     "Aina Binti Rahman",
		Line1:    "12 Jalan Mawar",
		City:     "Shah Alam",
		State:    "Selangor",
		Postcode: "40000",
		Phone:    "012-3456789",
	}
}

func newTestLedger(t *testing.T) (*Ledger, *Engine, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	dispatcher := NewDispatcher(mem, adminID)
	return NewLedger(mem, dispatcher), NewEngine(mem, dispatcher), mem
}

func secureLine(productID, sellerID int64, price float64, qty int, freeShip bool, shipCost float64) models.CartLine {
	l := line(productID, sellerID, price, qty, freeShip, shipCost)
	l.SellingMode = models.SellingModeSecure
	return l
}

func directLine(productID, sellerID int64, price float64, qty int) models.CartLine {
	l := line(productID, sellerID, price, qty, false, 0)
	l.SellingMode = models.SellingModeDirect
	return l
}

func TestPlaceOrder_MultiSellerSplit(t *testing.T) {
	l, _, mem := newTestLedger(t)
	buyerID := int64(100)

	lines := []models.CartLine{
		secureLine(1, 10, 5, 1, false, 0),
		secureLine(2, 20, 7, 2, false, 0),
		secureLine(3, 30, 9, 1, false, 0),
	}

	first, ok := l.PlaceOrder(buyerID, lines, testAddress(), models.DeliveryLocalPickup)
	require.True(t, ok)
	require.NotNil(t, first)

	// buyer holds one copy per seller group
	buyerOrders, err := mem.Read(buyerID)
	require.NoError(t, err)
	require.Len(t, buyerOrders, 3)

	sellers := map[int64]bool{}
	for _, o := range buyerOrders {
		require.NotEmpty(t, o.Items)
		for _, it := range o.Items {
			assert.Equal(t, o.SellerID(), it.SellerID)
		}
		sellers[o.SellerID()] = true
	}
	assert.Len(t, sellers, 3)

	// each seller holds exactly their own copy, same id as the buyer's
	for _, sellerID := range []int64{10, 20, 30} {
		sellerOrders, err := mem.Read(sellerID)
		require.NoError(t, err)
		require.Len(t, sellerOrders, 1)
		assert.Equal(t, sellerID, sellerOrders[0].SellerID())
		idx := findOrder(buyerOrders, sellerOrders[0].ID)
		assert.GreaterOrEqual(t, idx, 0, "seller copy shares the buyer copy's id")
	}
}

func TestPlaceOrder_InitialStatuses(t *testing.T) {
	l, _, mem := newTestLedger(t)
	buyerID := int64(100)

	lines := []models.CartLine{
		secureLine(1, 10, 5, 1, false, 0),
		directLine(2, 20, 7, 1),
	}

	_, ok := l.PlaceOrder(buyerID, lines, testAddress(), models.DeliveryLocalPickup)
	require.True(t, ok)

	// buyer-side copies always start awaiting-shipment
	buyerOrders, _ := mem.Read(buyerID)
	require.Len(t, buyerOrders, 2)
	for _, o := range buyerOrders {
		assert.Equal(t, models.StatusAwaitingShipment, o.Status)
	}

	// seller-side: escrow hold iff secure
	secureOrders, _ := mem.Read(10)
	require.Len(t, secureOrders, 1)
	assert.Equal(t, models.StatusPaymentHeld, secureOrders[0].Status)

	directOrders, _ := mem.Read(20)
	require.Len(t, directOrders, 1)
	assert.Equal(t, models.StatusAwaitingShipment, directOrders[0].Status)
}

// The two-item scenario: item A (price 20, qty 1, seller S1, free shipping),
// item B (price 10, qty 2, seller S2, per-unit shipping cost 3), method
// shipping.
func TestPlaceOrder_TwoSellerScenario(t *testing.T) {
	l, _, mem := newTestLedger(t)
	buyerID := int64(100)
	s1, s2 := int64(11), int64(22)

	lines := []models.CartLine{
		secureLine(1, s1, 20, 1, true, 0),
		secureLine(2, s2, 10, 2, false, 3),
	}

	_, ok := l.PlaceOrder(buyerID, lines, testAddress(), models.DeliveryShipping)
	require.True(t, ok)

	buyerOrders, _ := mem.Read(buyerID)
	require.Len(t, buyerOrders, 2)

	byName := map[int64]models.Order{}
	for _, o := range buyerOrders {
		byName[o.SellerID()] = o
	}

	assert.Equal(t, 20.0, byName[s1].Total)
	assert.Equal(t, 0.0, byName[s1].ShippingCost)
	assert.Equal(t, 26.0, byName[s2].Total)
	assert.Equal(t, 6.0, byName[s2].ShippingCost)

	s2Orders, _ := mem.Read(s2)
	require.Len(t, s2Orders, 1)
	assert.Equal(t, models.StatusPaymentHeld, s2Orders[0].Status)
}

func TestPlaceOrder_TotalInvariant(t *testing.T) {
	l, _, mem := newTestLedger(t)
	buyerID := int64(100)

	lines := []models.CartLine{
		secureLine(1, 10, 12.5, 3, false, 1.25),
		secureLine(2, 10, 4, 1, true, 9),
	}

	_, ok := l.PlaceOrder(buyerID, lines, testAddress(), models.DeliveryShipping)
	require.True(t, ok)

	orders, _ := mem.Read(buyerID)
	require.Len(t, orders, 1)
	o := orders[0]

	var subtotal float64
	for _, it := range o.Items {
		subtotal += it.Price * float64(it.Quantity)
	}
	assert.InDelta(t, subtotal+o.ShippingCost, o.Total, 1e-9)
	assert.InDelta(t, 3.75, o.ShippingCost, 1e-9)
}

func TestPlaceOrder_SelfSalesOnly(t *testing.T) {
	l, _, mem := newTestLedger(t)
	buyerID := int64(10)

	first, ok := l.PlaceOrder(buyerID, []models.CartLine{secureLine(1, 10, 5, 1, false, 0)}, testAddress(), models.DeliveryLocalPickup)
	assert.False(t, ok)
	assert.Nil(t, first)

	orders, _ := mem.Read(buyerID)
	assert.Empty(t, orders)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	l, _, _ := newTestLedger(t)
	first, ok := l.PlaceOrder(100, nil, testAddress(), models.DeliveryShipping)
	assert.False(t, ok)
	assert.Nil(t, first)
}

func TestPlaceOrder_AppendsToExistingPartition(t *testing.T) {
	l, _, mem := newTestLedger(t)
	buyerID := int64(100)

	_, ok := l.PlaceOrder(buyerID, []models.CartLine{secureLine(1, 10, 5, 1, false, 0)}, testAddress(), models.DeliveryLocalPickup)
	require.True(t, ok)
	_, ok = l.PlaceOrder(buyerID, []models.CartLine{secureLine(2, 20, 7, 1, false, 0)}, testAddress(), models.DeliveryLocalPickup)
	require.True(t, ok)

	orders, _ := mem.Read(buyerID)
	assert.Len(t, orders, 2)
}

func TestPlaceOrder_NotificationFanOut(t *testing.T) {
	l, _, mem := newTestLedger(t)
	buyerID := int64(100)

	_, ok := l.PlaceOrder(buyerID, []models.CartLine{secureLine(1, 10, 5, 1, false, 0)}, testAddress(), models.DeliveryLocalPickup)
	require.True(t, ok)

	// admin gets a new-order notice, seller gets a new-sale notice, buyer
	// gets nothing (the confirmation view covers them)
	adminInbox, _ := mem.List(adminID, 10)
	require.Len(t, adminInbox, 1)
	assert.Contains(t, adminInbox[0].Message, "New order")

	sellerInbox, _ := mem.List(10, 10)
	require.Len(t, sellerInbox, 1)
	assert.Contains(t, sellerInbox[0].Message, "new sale")
	assert.Equal(t, "/seller/orders", sellerInbox[0].Link)

	buyerInbox, _ := mem.List(buyerID, 10)
	assert.Empty(t, buyerInbox)
}
