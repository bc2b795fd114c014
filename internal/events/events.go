package events

import "time"

// OptimizeCompletedEvent summarizes one served recommendation.
type OptimizeCompletedEvent struct {
	RequestID   string    `json:"request_id"`
	Over        int       `json:"over"`
	Inning      int       `json:"inning"`
	VenueType   string    `json:"venue_type"`
	BowlerGroup string    `json:"bowler_group"`
	BatterCount int       `json:"batter_count"`
	TopBatter   string    `json:"top_batter"`
	TopScore    float64   `json:"top_score"`
	DurationMs  int64     `json:"duration_ms"`
	Timestamp   time.Time `json:"timestamp"`
}

// OptimizeFailedEvent records a request the engine could not serve.
type OptimizeFailedEvent struct {
	RequestID string    `json:"request_id"`
	Kind      string    `json:"kind"` // validation or inference
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}
