package model

import (
	"fmt"
	"math"
)

type ColumnKind string

const (
	ColumnNumeric     ColumnKind = "numeric"
	ColumnCategorical ColumnKind = "categorical"
)

// Column describes one training column of the classifier's feature schema.
// Numeric columns carry a default substituted when the live row omits them;
// categorical columns carry the category vocabulary seen at training time.
type Column struct {
	Name       string     `json:"name"`
	Kind       ColumnKind `json:"kind"`
	Default    float64    `json:"default,omitempty"`
	Categories []string   `json:"categories,omitempty"`
}

// Row is a named feature row as assembled from a live request. Values are
// float64 (or int) for numeric columns and string for categorical ones.
type Row map[string]any

// Schema is the fixed ordered column set recorded at training time, with the
// lookup tables needed to reshape a named row into the dense vector the model
// consumes. Built once at load time and read-only afterwards.
type Schema struct {
	columns []Column
	offsets []int            // dense-vector offset of each column
	catIdx  []map[string]int // category -> slot within the column's one-hot block
	width   int
}

// NewSchema validates the column list and precomputes the alignment tables.
func NewSchema(columns []Column) (*Schema, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("schema has no columns")
	}
	s := &Schema{
		columns: columns,
		offsets: make([]int, len(columns)),
		catIdx:  make([]map[string]int, len(columns)),
	}
	seen := make(map[string]bool, len(columns))
	offset := 0
	for i, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("column %d has no name", i)
		}
		if seen[col.Name] {
			return nil, fmt.Errorf("duplicate column %q", col.Name)
		}
		seen[col.Name] = true
		s.offsets[i] = offset

		switch col.Kind {
		case ColumnNumeric:
			offset++
		case ColumnCategorical:
			if len(col.Categories) == 0 {
				return nil, fmt.Errorf("categorical column %q has no categories", col.Name)
			}
			idx := make(map[string]int, len(col.Categories))
			for j, cat := range col.Categories {
				if _, dup := idx[cat]; dup {
					return nil, fmt.Errorf("column %q repeats category %q", col.Name, cat)
				}
				idx[cat] = j
			}
			s.catIdx[i] = idx
			offset += len(col.Categories)
		default:
			return nil, fmt.Errorf("column %q has unknown kind %q", col.Name, col.Kind)
		}
	}
	s.width = offset
	return s, nil
}

// Width returns the length of the dense vector the schema produces.
func (s *Schema) Width() int { return s.width }

// Columns returns the ordered training columns.
func (s *Schema) Columns() []Column { return s.columns }

// Vectorize reshapes a named row onto the dense training vector. The mapping
// is deterministic and total: missing or mistyped numeric values fall back to
// the column default, categorical values outside the training vocabulary
// encode as the all-zeros unknown bucket, and row fields not in the schema
// are dropped.
func (s *Schema) Vectorize(row Row) []float64 {
	vec := make([]float64, s.width)
	for i, col := range s.columns {
		off := s.offsets[i]
		switch col.Kind {
		case ColumnNumeric:
			vec[off] = numericValue(row[col.Name], col.Default)
		case ColumnCategorical:
			if v, ok := row[col.Name].(string); ok {
				if slot, known := s.catIdx[i][v]; known {
					vec[off+slot] = 1
				}
			}
		}
	}
	return vec
}

func numericValue(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return def
		}
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return def
	}
}
