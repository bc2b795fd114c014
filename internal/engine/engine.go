// Package engine expands a match scenario into one feature row per batter,
// invokes the classifier, and returns the batters ranked by tactical score.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pitchside/strikeplan/internal/match"
	"github.com/pitchside/strikeplan/internal/model"
	"github.com/pitchside/strikeplan/internal/scoring"
)

// InferenceError marks a classifier failure. The whole request fails; no
// partial batter list is returned.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string { return "inference failed: " + e.Err.Error() }
func (e *InferenceError) Unwrap() error { return e.Err }

// Engine holds the classifier and scoring weights for the process lifetime.
// It is stateless across requests and safe for concurrent use.
type Engine struct {
	classifier model.Classifier
	weights    scoring.Weights
	logger     *slog.Logger

	pressureIdx int
	rotationIdx int
	boundaryIdx int
}

// New wires an Engine, resolving the class label positions the classifier
// advertises. Fails fast on invalid weights.
func New(classifier model.Classifier, weights scoring.Weights, logger *slog.Logger) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("scoring weights: %w", err)
	}

	e := &Engine{
		classifier:  classifier,
		weights:     weights,
		logger:      logger,
		pressureIdx: -1,
		rotationIdx: -1,
		boundaryIdx: -1,
	}
	for i, c := range classifier.Classes() {
		switch c {
		case model.ClassPressure:
			e.pressureIdx = i
		case model.ClassStrikeRotation:
			e.rotationIdx = i
		case model.ClassBoundary:
			e.boundaryIdx = i
		}
	}
	if e.pressureIdx < 0 || e.rotationIdx < 0 || e.boundaryIdx < 0 {
		return nil, fmt.Errorf("classifier classes %v do not cover pressure/strike_rotation/boundary", classifier.Classes())
	}
	return e, nil
}

// Optimize validates the request, scores every batter in one batched
// classifier call, and returns exactly one ranked result per input batter,
// ordered descending by tactical score with input order breaking ties.
func (e *Engine) Optimize(ctx context.Context, sc match.Scenario, batters []match.BatterSelection) ([]scoring.RankedResult, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if err := match.ValidateBatters(batters); err != nil {
		return nil, err
	}

	rows := make([]model.Row, len(batters))
	for i, b := range batters {
		rows[i] = e.buildRow(sc, b)
	}

	start := time.Now()
	probs, err := e.classifier.PredictProba(ctx, rows)
	if err != nil {
		return nil, &InferenceError{Err: err}
	}
	if len(probs) != len(batters) {
		return nil, &InferenceError{Err: fmt.Errorf("classifier returned %d rows for %d batters", len(probs), len(batters))}
	}

	results := make([]scoring.RankedResult, len(batters))
	for i, b := range batters {
		p := probs[i]
		if n := len(p); e.pressureIdx >= n || e.rotationIdx >= n || e.boundaryIdx >= n {
			return nil, &InferenceError{Err: fmt.Errorf("row %d has %d class probabilities", i, n)}
		}
		results[i] = e.weights.Result(b.Name, scoring.ClassProbabilities{
			Pressure:       p[e.pressureIdx] * 100,
			StrikeRotation: p[e.rotationIdx] * 100,
			Boundary:       p[e.boundaryIdx] * 100,
		})
	}
	scoring.Rank(results)

	e.logger.Debug("scenario optimized",
		"over", sc.Over,
		"inning", sc.Inning,
		"batters", len(batters),
		"inference_ms", time.Since(start).Milliseconds(),
	)
	return results, nil
}

// buildRow combines the scenario with one batter. Batter_vs_BowlerType_SR is
// not carried on live requests; the schema default covers it.
func (e *Engine) buildRow(sc match.Scenario, b match.BatterSelection) model.Row {
	return model.Row{
		"Over":               float64(sc.Over),
		"Cumulative_Wickets": float64(sc.Wickets),
		"Current_Run_Rate":   sc.RunRate,
		"Inning":             float64(sc.Inning),
		"Venue_Type":         sc.VenueType,
		"Bowler_Group":       sc.BowlerGroup,
		"Batter":             b.Name,
		"Batter_Last5_SR":    b.StrikeRate,
	}
}
