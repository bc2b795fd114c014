// Package scoring turns per-class outcome probabilities into the tactical
// utility score used to rank batters for the middle overs.
package scoring

import (
	"math"
	"sort"
)

// ClassProbabilities holds one batter's predicted outcome probabilities as
// percentages in [0,100].
type ClassProbabilities struct {
	Pressure       float64
	StrikeRotation float64
	Boundary       float64
}

// RankedResult is one batter's scored entry in the recommended order. JSON
// field names match the dashboard's wire contract.
type RankedResult struct {
	Rank           int     `json:"Rank"`
	Batter         string  `json:"Batter"`
	BoundaryProb   float64 `json:"Boundary_Prob"`
	StrikeRotation float64 `json:"Strike_Rotation"`
	PressureProb   float64 `json:"Pressure_Prob"`
	TacticalScore  float64 `json:"Middle_Over_Score"`
}

// TacticalScore computes the weighted linear combination over the class
// percentages. Strike rotation and boundary reward, pressure penalizes.
func (w Weights) TacticalScore(p ClassProbabilities) float64 {
	return Round2(p.StrikeRotation*w.StrikeRotation - p.Pressure*w.Pressure + p.Boundary*w.Boundary)
}

// Result builds one scored entry from a batter's probabilities, rounding
// every percentage to two decimals.
func (w Weights) Result(batter string, p ClassProbabilities) RankedResult {
	rounded := ClassProbabilities{
		Pressure:       Round2(p.Pressure),
		StrikeRotation: Round2(p.StrikeRotation),
		Boundary:       Round2(p.Boundary),
	}
	return RankedResult{
		Batter:         batter,
		BoundaryProb:   rounded.Boundary,
		StrikeRotation: rounded.StrikeRotation,
		PressureProb:   rounded.Pressure,
		TacticalScore:  w.TacticalScore(rounded),
	}
}

// Rank sorts results descending by tactical score and assigns 1-based ranks.
// The sort is stable: exact ties keep their input order.
func Rank(results []RankedResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TacticalScore > results[j].TacticalScore
	})
	for i := range results {
		results[i].Rank = i + 1
	}
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
