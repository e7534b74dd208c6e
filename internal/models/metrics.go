package models

import "time"

// RuntimeMetrics is a lightweight aggregate of the Prometheus collectors,
// reported on the status endpoint.
type RuntimeMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	ViewsComputed            uint64    `json:"views_computed"`
	AverageViewComputeMs     float64   `json:"average_view_compute_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
