package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pasarlink/pasarlink-golang/internal/models"
)

type fixedRate float64

func (r fixedRate) CommissionRate() float64 { return float64(r) }

// completeOrder ships and receives one order end to end.
func completeOrder(t *testing.T, e *Engine, buyerID, sellerID int64, orderID string) {
	t.Helper()
	require.True(t, e.MarkShipped(sellerID, orderID).OK)
	require.True(t, e.ConfirmReceipt(buyerID, orderID).OK)
}

func TestCommission_Math(t *testing.T) {
	l, e, mem := newTestLedger(t)
	buyerID, sellerID := int64(100), int64(10)

	first, ok := l.PlaceOrder(buyerID, []models.CartLine{secureLine(1, sellerID, 100, 1, false, 0)}, testAddress(), models.DeliveryLocalPickup)
	require.True(t, ok)
	completeOrder(t, e, buyerID, sellerID, first.ID)

	comm := NewCommission(mem, fixedRate(5))
	lines, summary, err := comm.Report(ReportFilter{})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, 100.0, lines[0].Total)
	assert.Equal(t, 5.0, lines[0].Commission)
	assert.Equal(t, 95.0, lines[0].Payout)
	assert.Equal(t, 1, summary.OrderCount)
	assert.Equal(t, 5.0, summary.TotalCommission)
	assert.Equal(t, 95.0, summary.TotalPayout)
}

func TestCommission_ExcludesDirectAndUncompleted(t *testing.T) {
	l, e, mem := newTestLedger(t)
	buyerID := int64(100)

	// completed secure order: included
	first, ok := l.PlaceOrder(buyerID, []models.CartLine{secureLine(1, 10, 40, 1, false, 0)}, testAddress(), models.DeliveryLocalPickup)
	require.True(t, ok)
	completeOrder(t, e, buyerID, 10, first.ID)

	// completed direct order: excluded
	first, ok = l.PlaceOrder(buyerID, []models.CartLine{directLine(2, 20, 60, 1)}, testAddress(), models.DeliveryLocalPickup)
	require.True(t, ok)
	completeOrder(t, e, buyerID, 20, first.ID)

	// secure but still shipped: excluded
	first, ok = l.PlaceOrder(buyerID, []models.CartLine{secureLine(3, 30, 80, 1, false, 0)}, testAddress(), models.DeliveryLocalPickup)
	require.True(t, ok)
	require.True(t, e.MarkShipped(30, first.ID).OK)

	comm := NewCommission(mem, fixedRate(10))
	lines, summary, err := comm.Report(ReportFilter{})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(10), lines[0].SellerID)
	assert.Equal(t, 40.0, summary.TotalSales)
}

func TestCommission_SellerFilter(t *testing.T) {
	l, e, mem := newTestLedger(t)
	buyerID := int64(100)

	for _, sellerID := range []int64{10, 20} {
		first, ok := l.PlaceOrder(buyerID, []models.CartLine{secureLine(sellerID, sellerID, 50, 1, false, 0)}, testAddress(), models.DeliveryLocalPickup)
		require.True(t, ok)
		completeOrder(t, e, buyerID, sellerID, first.ID)
	}

	comm := NewCommission(mem, fixedRate(5))
	sellerID := int64(20)
	lines, summary, err := comm.Report(ReportFilter{SellerID: &sellerID})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, sellerID, lines[0].SellerID)
	assert.Equal(t, 1, summary.OrderCount)
}

func TestCommission_DateRangeInclusive(t *testing.T) {
	l, e, mem := newTestLedger(t)
	buyerID, sellerID := int64(100), int64(10)

	first, ok := l.PlaceOrder(buyerID, []models.CartLine{secureLine(1, sellerID, 50, 1, false, 0)}, testAddress(), models.DeliveryLocalPickup)
	require.True(t, ok)
	completeOrder(t, e, buyerID, sellerID, first.ID)

	comm := NewCommission(mem, fixedRate(5))
	today := time.Now()

	// range ending today includes an order created later the same day
	lines, _, err := comm.Report(ReportFilter{From: &today, To: &today})
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	// range ending yesterday excludes it
	yesterday := today.AddDate(0, 0, -1)
	lines, _, err = comm.Report(ReportFilter{To: &yesterday})
	require.NoError(t, err)
	assert.Empty(t, lines)

	// range starting tomorrow excludes it
	tomorrow := today.AddDate(0, 0, 1)
	lines, _, err = comm.Report(ReportFilter{From: &tomorrow})
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCommission_DateRangeAcrossTimeZones(t *testing.T) {
	_, _, mem := newTestLedger(t)
	buyerID := int64(100)

	// completed just after midnight in Kuala Lumpur: still 2026-08-30 in UTC
	kl := time.FixedZone("UTC+8", 8*60*60)
	created := time.Date(2026, 8, 31, 0, 30, 0, 0, kl)
	require.NoError(t, mem.Write(buyerID, []models.Order{{
		ID:          "1787070600000-10",
		BuyerID:     buyerID,
		Items:       []models.OrderItem{{ProductID: 1, SellerID: 10, Price: 100, Quantity: 1}},
		Total:       100,
		Status:      models.StatusCompleted,
		SellingMode: models.SellingModeSecure,
		CreatedAt:   created,
	}}))

	comm := NewCommission(mem, fixedRate(5))

	// a filter for the order's own calendar day, parsed in UTC, must match
	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	lines, _, err := comm.Report(ReportFilter{From: &day, To: &day})
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	// and the previous calendar day must not
	prev := day.AddDate(0, 0, -1)
	lines, _, err = comm.Report(ReportFilter{From: &prev, To: &prev})
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestAdminOrders_UnionDeduplicates(t *testing.T) {
	l, _, mem := newTestLedger(t)
	buyerID := int64(100)

	_, ok := l.PlaceOrder(buyerID, []models.CartLine{
		secureLine(1, 10, 5, 1, false, 0),
		secureLine(2, 20, 7, 1, false, 0),
	}, testAddress(), models.DeliveryLocalPickup)
	require.True(t, ok)

	comm := NewCommission(mem, fixedRate(5))
	orders, err := comm.AdminOrders()
	require.NoError(t, err)

	// four copies exist (two per order) but the union is two logical orders
	assert.Len(t, orders, 2)
	seen := map[string]bool{}
	for _, o := range orders {
		assert.False(t, seen[o.ID])
		seen[o.ID] = true
	}
}
