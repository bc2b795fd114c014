package scoring

import (
	"math"
	"testing"
)

func TestDefaultWeightsValid(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}
	w := DefaultWeights()
	if w.StrikeRotation != 1.0 || w.Pressure != 1.0 || w.Boundary != 1.5 {
		t.Errorf("unexpected default weights: %+v", w)
	}
}

func TestWeightsValidate(t *testing.T) {
	tests := []struct {
		name string
		w    Weights
		ok   bool
	}{
		{"defaults", DefaultWeights(), true},
		{"zero", Weights{}, true},
		{"negative", Weights{StrikeRotation: -1, Pressure: 1, Boundary: 1.5}, false},
		{"nan", Weights{StrikeRotation: math.NaN(), Pressure: 1, Boundary: 1.5}, false},
		{"inf", Weights{StrikeRotation: 1, Pressure: math.Inf(1), Boundary: 1.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTacticalScoreFormula(t *testing.T) {
	w := DefaultWeights()
	tests := []struct {
		name string
		p    ClassProbabilities
		want float64
	}{
		{"spread", ClassProbabilities{Pressure: 20, StrikeRotation: 50, Boundary: 30}, 50 - 20 + 45},
		{"all pressure", ClassProbabilities{Pressure: 100}, -100},
		{"all boundary", ClassProbabilities{Boundary: 100}, 150},
		{"zero", ClassProbabilities{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.TacticalScore(tt.p)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestResultRounding(t *testing.T) {
	w := DefaultWeights()
	r := w.Result("MD Shanaka", ClassProbabilities{
		Pressure:       33.333333,
		StrikeRotation: 33.333333,
		Boundary:       33.333334,
	})
	if r.PressureProb != 33.33 || r.StrikeRotation != 33.33 || r.BoundaryProb != 33.33 {
		t.Errorf("probabilities not rounded to two decimals: %+v", r)
	}
	want := Round2(33.33 - 33.33 + 33.33*1.5)
	if r.TacticalScore != want {
		t.Errorf("score %f, want %f", r.TacticalScore, want)
	}
}

func TestRankDescending(t *testing.T) {
	results := []RankedResult{
		{Batter: "A", TacticalScore: 10},
		{Batter: "B", TacticalScore: 42},
		{Batter: "C", TacticalScore: -5},
	}
	Rank(results)

	for i := 0; i < len(results)-1; i++ {
		if results[i].TacticalScore < results[i+1].TacticalScore {
			t.Errorf("results not descending at %d: %f < %f", i, results[i].TacticalScore, results[i+1].TacticalScore)
		}
	}
	if results[0].Batter != "B" || results[2].Batter != "C" {
		t.Errorf("unexpected order: %v", results)
	}
	for i, r := range results {
		if r.Rank != i+1 {
			t.Errorf("expected rank %d, got %d", i+1, r.Rank)
		}
	}
}

func TestRankStableOnTies(t *testing.T) {
	results := []RankedResult{
		{Batter: "first", TacticalScore: 25},
		{Batter: "second", TacticalScore: 25},
		{Batter: "third", TacticalScore: 25},
	}
	Rank(results)
	if results[0].Batter != "first" || results[1].Batter != "second" || results[2].Batter != "third" {
		t.Errorf("tied scores must keep input order: %v", results)
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(1.005); got != 1.0 && got != 1.01 {
		// 1.005 is not exactly representable; either neighbour is acceptable.
		t.Errorf("unexpected rounding: %f", got)
	}
	if got := Round2(7.499); got != 7.5 {
		t.Errorf("got %f, want 7.5", got)
	}
	if got := Round2(-2.345); got != -2.35 && got != -2.34 {
		t.Errorf("unexpected rounding: %f", got)
	}
}
