// Package model loads the pre-trained gradient-boosted classifier artifact
// and evaluates it. The artifact is produced by the training pipeline and
// treated as an opaque, immutable input: loaded once at startup, safe for
// concurrent reads.
package model

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Class labels the training pipeline emits, in artifact order.
const (
	ClassPressure       = "pressure"
	ClassStrikeRotation = "strike_rotation"
	ClassBoundary       = "boundary"
)

// Classifier scores feature rows into per-class probabilities in [0,1].
// Implementations must be safe for concurrent use.
type Classifier interface {
	Classes() []string
	Schema() *Schema
	PredictProba(ctx context.Context, rows []Row) ([][]float64, error)
}

// Tree is one regression tree of the boosted ensemble, stored as parallel
// node arrays. A node with Left < 0 is a leaf carrying Value.
type Tree struct {
	Class     int       `json:"class"`
	Feature   []int     `json:"feature"`
	Threshold []float64 `json:"threshold"`
	Left      []int     `json:"left"`
	Right     []int     `json:"right"`
	Value     []float64 `json:"value"`
}

func (t *Tree) eval(vec []float64) float64 {
	i := 0
	for t.Left[i] >= 0 {
		if vec[t.Feature[i]] < t.Threshold[i] {
			i = t.Left[i]
		} else {
			i = t.Right[i]
		}
	}
	return t.Value[i]
}

type artifact struct {
	Version int       `json:"version"`
	Classes []string  `json:"classes"`
	Columns []Column  `json:"columns"`
	Bias    []float64 `json:"bias"`
	Trees   []Tree    `json:"trees"`
}

// Ensemble is the in-process classifier: per-class additive trees over the
// schema's dense vector, softmax across class totals.
type Ensemble struct {
	classes []string
	schema  *Schema
	bias    []float64
	trees   []Tree
}

// LoadEnsemble reads and validates a serialized ensemble artifact.
func LoadEnsemble(path string) (*Ensemble, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}
	return newEnsemble(a)
}

func newEnsemble(a artifact) (*Ensemble, error) {
	if err := validateClasses(a.Classes); err != nil {
		return nil, err
	}
	schema, err := NewSchema(a.Columns)
	if err != nil {
		return nil, fmt.Errorf("model schema: %w", err)
	}

	bias := a.Bias
	if bias == nil {
		bias = make([]float64, len(a.Classes))
	}
	if len(bias) != len(a.Classes) {
		return nil, fmt.Errorf("bias has %d entries for %d classes", len(bias), len(a.Classes))
	}

	for ti := range a.Trees {
		if err := validateTree(&a.Trees[ti], len(a.Classes), schema.Width()); err != nil {
			return nil, fmt.Errorf("tree %d: %w", ti, err)
		}
	}

	return &Ensemble{
		classes: a.Classes,
		schema:  schema,
		bias:    bias,
		trees:   a.Trees,
	}, nil
}

func validateClasses(classes []string) error {
	want := map[string]bool{
		ClassPressure:       false,
		ClassStrikeRotation: false,
		ClassBoundary:       false,
	}
	for _, c := range classes {
		if _, ok := want[c]; !ok {
			return fmt.Errorf("unexpected class %q in artifact", c)
		}
		want[c] = true
	}
	for c, found := range want {
		if !found {
			return fmt.Errorf("artifact is missing class %q", c)
		}
	}
	return nil
}

// validateTree rejects malformed node arrays up front so evaluation is total:
// children must point forward, which also guarantees termination.
func validateTree(t *Tree, classes, width int) error {
	if t.Class < 0 || t.Class >= classes {
		return fmt.Errorf("class index %d out of range", t.Class)
	}
	n := len(t.Feature)
	if n == 0 || len(t.Threshold) != n || len(t.Left) != n || len(t.Right) != n || len(t.Value) != n {
		return fmt.Errorf("inconsistent node arrays")
	}
	for i := 0; i < n; i++ {
		if t.Left[i] < 0 {
			continue // leaf
		}
		if t.Feature[i] < 0 || t.Feature[i] >= width {
			return fmt.Errorf("node %d: feature index %d out of range", i, t.Feature[i])
		}
		if t.Left[i] <= i || t.Left[i] >= n || t.Right[i] <= i || t.Right[i] >= n {
			return fmt.Errorf("node %d: children must point forward", i)
		}
	}
	return nil
}

func (e *Ensemble) Classes() []string { return e.classes }

func (e *Ensemble) Schema() *Schema { return e.schema }

// PredictProba aligns every row to the schema, sums the per-class tree
// outputs, and applies softmax. One call scores the whole batch.
func (e *Ensemble) PredictProba(_ context.Context, rows []Row) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for ri, row := range rows {
		vec := e.schema.Vectorize(row)
		raw := make([]float64, len(e.classes))
		copy(raw, e.bias)
		for ti := range e.trees {
			t := &e.trees[ti]
			raw[t.Class] += t.eval(vec)
		}
		out[ri] = softmax(raw)
	}
	return out, nil
}

func softmax(raw []float64) []float64 {
	max := raw[0]
	for _, v := range raw[1:] {
		if v > max {
			max = v
		}
	}
	var sum float64
	probs := make([]float64, len(raw))
	for i, v := range raw {
		probs[i] = math.Exp(v - max)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
