package models

// RevenueStats is a point-in-time aggregate over every campaign regardless
// of status, so paused and completed campaigns keep contributing to the
// historical totals. It is derived on demand and never stored.
type RevenueStats struct {
	TotalImpressions int64 `json:"total_impressions"`
	TotalClicks      int64 `json:"total_clicks"`
	TotalRevenue     int64 `json:"total_revenue"`
	// CTR is expressed as a fraction, not a percentage. Formatting is a
	// presentation concern.
	CTR float64 `json:"ctr"`
}

// Fold accumulates a single campaign into the snapshot. CTR must be
// finalized with Finalize once every campaign has been folded in.
func (r *RevenueStats) Fold(c Campaign) {
	r.TotalImpressions += c.Impressions
	r.TotalClicks += c.Clicks
	r.TotalRevenue += c.Spent
}

// Finalize computes the overall CTR from the accumulated totals
func (r *RevenueStats) Finalize() {
	if r.TotalImpressions == 0 {
		r.CTR = 0
		return
	}
	r.CTR = float64(r.TotalClicks) / float64(r.TotalImpressions)
}
