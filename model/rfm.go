package model

import "time"

// RFMRow holds the per-customer Recency/Frequency/Monetary values relative
// to the snapshot date of the view they were computed from. CustomerName and
// City are display-only and null when the filtered view did not carry them.
type RFMRow struct {
	CustomerID   string     `json:"id_cliente"`
	Recency      int        `json:"recency_days"`
	Frequency    int        `json:"frequency"`
	Monetary     float64    `json:"monetary"`
	CustomerName NullString `json:"nombre_cliente"`
	City         NullString `json:"ciudad"`
}

// ScoredRFM is an RFMRow with quartile scores and the assigned segment.
type ScoredRFM struct {
	RFMRow
	RScore  int     `json:"r_score"`
	FScore  int     `json:"f_score"`
	MScore  int     `json:"m_score"`
	Score   float64 `json:"rfm_score"`
	Segment string  `json:"segment"`
}

// SegmentRule maps a minimum composite score to a segment name. Rules are
// evaluated top-down, first match wins; the last rule should carry Min 0 as
// the catch-all.
type SegmentRule struct {
	Min  float64 `json:"min"`
	Name string  `json:"name"`
}

// DefaultSegmentRules are the business thresholds the dashboard ships with.
// They are configuration, not fixed logic.
func DefaultSegmentRules() []SegmentRule {
	return []SegmentRule{
		{Min: 3.5, Name: "Campeones"},
		{Min: 3.0, Name: "Leales"},
		{Min: 2.5, Name: "Potenciales"},
		{Min: 2.0, Name: "En Riesgo"},
		{Min: 0, Name: "Inactivos"},
	}
}

// SegmentSummary aggregates one segment of the scored result.
type SegmentSummary struct {
	Segment       string  `json:"segment"`
	Customers     int     `json:"customers"`
	Share         float64 `json:"share_pct"`
	MeanRecency   float64 `json:"mean_recency"`
	MeanFrequency float64 `json:"mean_frequency"`
	MeanMonetary  float64 `json:"mean_monetary"`
}

// RFMResult is the full payload of one RFM pass over a filtered view.
type RFMResult struct {
	Snapshot time.Time        `json:"snapshot_date"`
	Rows     []ScoredRFM      `json:"rows"`
	Segments []SegmentSummary `json:"segments"`
	// Warning is set for non-fatal degradations, e.g. name/city columns
	// absent from the filtered view.
	Warning string `json:"warning,omitempty"`
}
