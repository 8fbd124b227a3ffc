package ledger

import (
	"time"

	"github.com/pasarlink/pasarlink-golang/internal/models"
	"github.com/pasarlink/pasarlink-golang/internal/store"
)

//
// --- Commission Calculator ---
//

// RateProvider supplies the globally configured commission percentage.
type RateProvider interface {
	CommissionRate() float64
}

// Commission is the read-only reporting pass over completed secure-mode
// orders. It never writes anything.
type Commission struct {
	Partitions store.PartitionStore
	Rate       RateProvider
}

func NewCommission(partitions store.PartitionStore, rate RateProvider) *Commission {
	return &Commission{Partitions: partitions, Rate: rate}
}

// ReportFilter narrows a commission report. From/To compare calendar
// dates, inclusive of the full end day.
type ReportFilter struct {
	SellerID *int64
	From     *time.Time
	To       *time.Time
}

// ReportLine is the commission breakdown for one completed order.
type ReportLine struct {
	OrderID    string  `json:"orderId"`
	SellerID   int64   `json:"sellerId"`
	Total      float64 `json:"total"`
	Commission float64 `json:"commission"`
	Payout     float64 `json:"payout"`
}

// ReportSummary aggregates all lines of a report.
type ReportSummary struct {
	RatePct         float64 `json:"ratePct"`
	OrderCount      int     `json:"orderCount"`
	TotalSales      float64 `json:"totalSales"`
	TotalCommission float64 `json:"totalCommission"`
	TotalPayout     float64 `json:"totalPayout"`
}

// AdminOrders is the admin's view of the ledger: the union of every
// partition, de-duplicated by order id. The first copy encountered wins,
// and owner ids are visited in the store's listing order so the result is
// deterministic.
func (c *Commission) AdminOrders() ([]models.Order, error) {
	ownerIDs, err := c.Partitions.ListOwnerIDs()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []models.Order
	for _, ownerID := range ownerIDs {
		orders, err := c.Partitions.Read(ownerID)
		if err != nil {
			return nil, err
		}
		for _, o := range orders {
			if seen[o.ID] {
				continue
			}
			seen[o.ID] = true
			out = append(out, o)
		}
	}
	return out, nil
}

// Report computes commission and payout for every completed secure-mode
// order matching the filter. Direct-mode and non-completed orders are
// excluded from the aggregate entirely.
func (c *Commission) Report(filter ReportFilter) ([]ReportLine, ReportSummary, error) {
	rate := c.Rate.CommissionRate()
	summary := ReportSummary{RatePct: rate}

	orders, err := c.AdminOrders()
	if err != nil {
		return nil, summary, err
	}

	var lines []ReportLine
	for _, o := range orders {
		if o.Status != models.StatusCompleted || o.SellingMode != models.SellingModeSecure {
			continue
		}
		if filter.SellerID != nil && o.SellerID() != *filter.SellerID {
			continue
		}
		if !inDateRange(o.CreatedAt, filter.From, filter.To) {
			continue
		}

		commission := o.Total * rate / 100
		line := ReportLine{
			OrderID:    o.ID,
			SellerID:   o.SellerID(),
			Total:      o.Total,
			Commission: commission,
			Payout:     o.Total - commission,
		}
		lines = append(lines, line)

		summary.OrderCount++
		summary.TotalSales += line.Total
		summary.TotalCommission += line.Commission
		summary.TotalPayout += line.Payout
	}
	return lines, summary, nil
}

// inDateRange compares calendar dates, ignoring the time of day on both
// bounds. Each time's own calendar date is compared directly, so an order
// created early morning in +08:00 still matches a filter date parsed in
// UTC for the same day.
func inDateRange(t time.Time, from, to *time.Time) bool {
	day := calendarDay(t)
	if from != nil && day < calendarDay(*from) {
		return false
	}
	if to != nil && day > calendarDay(*to) {
		return false
	}
	return true
}

// calendarDay collapses a time to a comparable yyyymmdd value in its own
// zone.
func calendarDay(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
