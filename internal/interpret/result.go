// Package interpret decodes the model's raw text reply into a typed result
// via a tiered strategy: a strict whole-document parse first, then a
// brace-matching extraction pass for replies wrapped in prose.
package interpret

import "github.com/KaramelBytes/datachat-cli/internal/dataset"

// Kind identifies which result variant the model produced.
type Kind string

const (
	KindAnswer  Kind = "answer"
	KindBar     Kind = "bar"
	KindPie     Kind = "pie"
	KindLine    Kind = "line"
	KindScatter Kind = "scatter"
	KindTable   Kind = "table"
)

// Series is the payload of bar and line variants: one numeric value per
// category or time point.
type Series struct {
	Columns []string  `json:"columns"`
	Data    []float64 `json:"data"`
}

// Pie is the pie chart payload.
type Pie struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Scatter is the scatter plot payload. Labels may be empty.
type Scatter struct {
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	Labels []string  `json:"labels"`
}

// Table is the tabular payload. Cell values keep their JSON types.
type Table struct {
	Columns []string          `json:"columns"`
	Data    [][]dataset.Value `json:"data"`
}

// Result is the decoded reply: exactly one payload matching Kind is set.
// Numeric fields are real JSON numbers; numeric-looking strings do not
// decode. Produced fresh per request.
type Result struct {
	Kind    Kind
	Answer  string
	Bar     *Series
	Line    *Series
	Pie     *Pie
	Scatter *Scatter
	Table   *Table
}

// Points returns the number of data points a chart variant claims, or 0 for
// answer and table.
func (r *Result) Points() int {
	switch r.Kind {
	case KindBar:
		return len(r.Bar.Data)
	case KindLine:
		return len(r.Line.Data)
	case KindPie:
		return len(r.Pie.Values)
	case KindScatter:
		return len(r.Scatter.X)
	}
	return 0
}
