package handlers

import (
	"log"

	"github.com/pasarlink/pasarlink-golang/internal/ledger"
)

// LogCommissionSnapshot runs the periodic commission report and logs the
// summary. Called by the background worker in main; read-only, so it is
// safe to run at any time.
func (h *Handlers) LogCommissionSnapshot() {
	_, summary, err := h.Commission.Report(ledger.ReportFilter{})
	if err != nil {
		log.Printf("commission snapshot failed: %v", err)
		return
	}
	log.Printf("commission snapshot: %d completed secure orders, sales RM%.2f, commission RM%.2f (%.1f%%), payout RM%.2f",
		summary.OrderCount, summary.TotalSales, summary.TotalCommission, summary.RatePct, summary.TotalPayout)
}
