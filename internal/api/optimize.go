package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pitchside/strikeplan/internal/engine"
	"github.com/pitchside/strikeplan/internal/events"
	"github.com/pitchside/strikeplan/internal/match"
	"github.com/pitchside/strikeplan/internal/scoring"
)

// Optimizer is the engine surface the handler needs.
type Optimizer interface {
	Optimize(ctx context.Context, sc match.Scenario, batters []match.BatterSelection) ([]scoring.RankedResult, error)
}

type OptimizeHandler struct {
	engine Optimizer
	events events.Client
	logger *slog.Logger
}

func NewOptimizeHandler(e Optimizer, ev events.Client, logger *slog.Logger) *OptimizeHandler {
	return &OptimizeHandler{engine: e, events: ev, logger: logger}
}

type BatterInfo struct {
	Name string  `json:"name"`
	SR   float64 `json:"sr"`
}

type OptimizeRequest struct {
	Over              int          `json:"Over"`
	CumulativeWickets int          `json:"Cumulative_Wickets"`
	CurrentRunRate    float64      `json:"Current_Run_Rate"`
	Inning            int          `json:"Inning"`
	VenueType         string       `json:"Venue_Type"`
	BowlerGroup       string       `json:"Bowler_Group"`
	AvailableBatters  []BatterInfo `json:"available_batters"`
}

type OptimizeResponse struct {
	OptimizedOrder []scoring.RankedResult `json:"optimized_order"`
}

// Optimize handles POST /api/optimize
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		recordOptimize(http.StatusBadRequest)
		return
	}

	scenario := match.Scenario{
		Over:        req.Over,
		Wickets:     req.CumulativeWickets,
		RunRate:     req.CurrentRunRate,
		Inning:      req.Inning,
		VenueType:   req.VenueType,
		BowlerGroup: req.BowlerGroup,
	}
	batters := make([]match.BatterSelection, len(req.AvailableBatters))
	for i, b := range req.AvailableBatters {
		batters[i] = match.BatterSelection{Name: b.Name, StrikeRate: b.SR}
	}

	requestID := uuid.New().String()
	start := time.Now()
	results, err := h.engine.Optimize(r.Context(), scenario, batters)
	if err != nil {
		h.fail(w, requestID, err)
		return
	}

	observeInference(time.Since(start), len(batters))
	recordOptimize(http.StatusOK)

	if h.events != nil {
		top := results[0]
		_ = h.events.Publish(events.SubjectOptimizeCompleted(requestID), events.OptimizeCompletedEvent{
			RequestID:   requestID,
			Over:        scenario.Over,
			Inning:      scenario.Inning,
			VenueType:   scenario.VenueType,
			BowlerGroup: scenario.BowlerGroup,
			BatterCount: len(batters),
			TopBatter:   top.Batter,
			TopScore:    top.TacticalScore,
			DurationMs:  time.Since(start).Milliseconds(),
			Timestamp:   time.Now().UTC(),
		})
	}

	writeJSON(w, http.StatusOK, OptimizeResponse{OptimizedOrder: results})
}

func (h *OptimizeHandler) fail(w http.ResponseWriter, requestID string, err error) {
	var ve *match.ValidationError
	if errors.As(err, &ve) {
		recordOptimize(http.StatusUnprocessableEntity)
		h.publishFailure(requestID, "validation", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": ve.Fields,
		})
		return
	}

	// Inference failures are opaque to callers; the detail goes to the log.
	h.logger.Error("optimize failed", "request_id", requestID, "error", err)
	recordOptimize(http.StatusInternalServerError)
	h.publishFailure(requestID, "inference", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "failed to compute recommendations",
	})
}

func (h *OptimizeHandler) publishFailure(requestID, kind string, err error) {
	if h.events == nil {
		return
	}
	msg := err.Error()
	var ie *engine.InferenceError
	if errors.As(err, &ie) {
		msg = ie.Err.Error()
	}
	_ = h.events.Publish(events.SubjectOptimizeFailed(requestID), events.OptimizeFailedEvent{
		RequestID: requestID,
		Kind:      kind,
		Error:     msg,
		Timestamp: time.Now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
