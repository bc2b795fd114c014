// Package match holds the T20 match-scenario domain types consumed by the
// recommendation engine.
package match

import (
	"fmt"
	"math"
	"strings"
)

const (
	MaxOvers   = 20
	MaxWickets = 10
)

// Scenario captures the match context a recommendation is requested for.
// RunRate is derived upstream from the current score and over; the engine
// never recomputes it.
type Scenario struct {
	Over        int
	Wickets     int
	RunRate     float64
	Inning      int
	VenueType   string
	BowlerGroup string
}

// BatterSelection names one available batter and the strike rate over their
// recent innings.
type BatterSelection struct {
	Name       string
	StrikeRate float64
}

// ValidationError collects every offending field of one request so callers
// can report them all at once.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Validate checks the scenario fields against their declared ranges.
// Venue and bowler values outside the reference list are allowed; the feature
// schema maps them to the unknown bucket.
func (s Scenario) Validate() error {
	var ve ValidationError
	if s.Over < 1 || s.Over > MaxOvers {
		ve.add("Over", fmt.Sprintf("must be between 1 and %d", MaxOvers))
	}
	if s.Wickets < 0 || s.Wickets > MaxWickets {
		ve.add("Cumulative_Wickets", fmt.Sprintf("must be between 0 and %d", MaxWickets))
	}
	if s.RunRate < 0 || math.IsNaN(s.RunRate) || math.IsInf(s.RunRate, 0) {
		ve.add("Current_Run_Rate", "must be a non-negative number")
	}
	if s.Inning != 1 && s.Inning != 2 {
		ve.add("Inning", "must be 1 or 2")
	}
	if strings.TrimSpace(s.VenueType) == "" {
		ve.add("Venue_Type", "must not be empty")
	}
	if strings.TrimSpace(s.BowlerGroup) == "" {
		ve.add("Bowler_Group", "must not be empty")
	}
	return ve.orNil()
}

// ValidateBatters checks the batter list: it must be non-empty with named
// batters and non-negative strike rates.
func ValidateBatters(batters []BatterSelection) error {
	var ve ValidationError
	if len(batters) == 0 {
		ve.add("available_batters", "at least one batter is required")
		return ve.orNil()
	}
	for i, b := range batters {
		if strings.TrimSpace(b.Name) == "" {
			ve.add(fmt.Sprintf("available_batters[%d].name", i), "must not be empty")
		}
		if b.StrikeRate < 0 || math.IsNaN(b.StrikeRate) || math.IsInf(b.StrikeRate, 0) {
			ve.add(fmt.Sprintf("available_batters[%d].sr", i), "must be a non-negative number")
		}
	}
	return ve.orNil()
}

// DeriveRunRate computes runs per over, guarding the over-zero case.
func DeriveRunRate(score, over int) float64 {
	if over == 0 {
		return 0
	}
	return float64(score) / float64(over)
}
