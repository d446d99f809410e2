package dataset

import (
	"fmt"
	"math"
	"strconv"
)

// Value is a single cell: float64, string, bool, or nil for missing.
type Value = any

// Dataset is an immutable tabular snapshot: named columns over ordered rows.
// All rows share the column set and order. Once constructed it must not be
// mutated, which makes it safe to share across concurrent queries; swapping
// in a re-ingested file means replacing the whole *Dataset reference.
type Dataset struct {
	Columns []string
	Rows    [][]Value
}

// New validates shape and returns a Dataset. Column names must be unique and
// every row must have exactly one value per column.
func New(columns []string, rows [][]Value) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("dataset needs at least one column")
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, fmt.Errorf("duplicate column name %q", c)
		}
		seen[c] = true
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i+1, len(r), len(columns))
		}
	}
	return &Dataset{Columns: columns, Rows: rows}, nil
}

func (d *Dataset) RowCount() int    { return len(d.Rows) }
func (d *Dataset) ColumnCount() int { return len(d.Columns) }

// ColumnIndex returns the position of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// IsNumeric reports whether every non-missing value in the column is a number.
// A column with no values at all is not numeric.
func (d *Dataset) IsNumeric(col int) bool {
	nonNil := 0
	for _, r := range d.Rows {
		v := r[col]
		if v == nil {
			continue
		}
		nonNil++
		if _, ok := v.(float64); !ok {
			return false
		}
	}
	return nonNil > 0
}

// NullCount returns the number of missing values in the column.
func (d *Dataset) NullCount(col int) int {
	n := 0
	for _, r := range d.Rows {
		if r[col] == nil {
			n++
		}
	}
	return n
}

// ValueCount pairs a rendered value with its occurrence count.
type ValueCount struct {
	Value string
	Count int
}

// Frequency returns the exact value→count table for a column, ordered by
// first appearance. Missing values are excluded.
func (d *Dataset) Frequency(col int) []ValueCount {
	idx := make(map[string]int)
	var out []ValueCount
	for _, r := range d.Rows {
		v := r[col]
		if v == nil {
			continue
		}
		key := FormatValue(v)
		if i, ok := idx[key]; ok {
			out[i].Count++
			continue
		}
		idx[key] = len(out)
		out = append(out, ValueCount{Value: key, Count: 1})
	}
	return out
}

// DistinctCount returns the number of distinct non-missing values in a column.
func (d *Dataset) DistinctCount(col int) int {
	return len(d.Frequency(col))
}

// MaxCategoricalDistinct returns the largest distinct-value count over all
// non-numeric columns. If the dataset has no non-numeric column it falls back
// to the row count, the most granular signal available.
func (d *Dataset) MaxCategoricalDistinct() int {
	best := -1
	for col := range d.Columns {
		if d.IsNumeric(col) {
			continue
		}
		if n := d.DistinctCount(col); n > best {
			best = n
		}
	}
	if best < 0 {
		return d.RowCount()
	}
	return best
}

// NumericSummary holds basic statistics for a numeric column.
type NumericSummary struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
	Std   float64
}

// NumericSummary computes min/max/mean/std over the column's numeric values
// using Welford's online update. ok is false when the column has none.
func (d *Dataset) NumericSummary(col int) (s NumericSummary, ok bool) {
	s.Min = math.Inf(1)
	s.Max = math.Inf(-1)
	var m2 float64
	for _, r := range d.Rows {
		x, isNum := r[col].(float64)
		if !isNum {
			continue
		}
		s.Count++
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
		delta := x - s.Mean
		s.Mean += delta / float64(s.Count)
		m2 += delta * (x - s.Mean)
	}
	if s.Count == 0 {
		return NumericSummary{}, false
	}
	if s.Count > 1 {
		s.Std = math.Sqrt(m2 / float64(s.Count-1))
	}
	return s, true
}

// FormatValue renders a cell for prompts, frequency keys, and output.
func FormatValue(v Value) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
