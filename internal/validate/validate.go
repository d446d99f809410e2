// Package validate checks a decoded result's claimed cardinalities against
// the dataset it was derived from, rejecting results the source data could
// not plausibly produce. Verdicts are advisory: the validator never mutates
// or repairs a result.
package validate

import (
	"fmt"

	"github.com/KaramelBytes/datachat-cli/internal/dataset"
	"github.com/KaramelBytes/datachat-cli/internal/interpret"
)

// DefaultOvershootFactor is the headroom multiplier applied to observed
// cardinalities. Summarized output (group-bys, pivoted metrics) may
// legitimately exceed the raw counts, so the bound is observed × factor
// rather than the observed count itself. The threshold is a heuristic, kept
// configurable rather than hardcoded in the checks.
const DefaultOvershootFactor = 2

// Validator holds the tunable validation knobs.
type Validator struct {
	OvershootFactor int
}

// New returns a Validator, defaulting the factor when non-positive.
func New(overshootFactor int) *Validator {
	if overshootFactor <= 0 {
		overshootFactor = DefaultOvershootFactor
	}
	return &Validator{OvershootFactor: overshootFactor}
}

// Verdict is the terminal decision for a request. On rejection, Reason names
// the violated bound with observed vs allowed values.
type Verdict struct {
	Accepted bool
	Reason   string
	Result   *interpret.Result
}

func accepted(res *interpret.Result) Verdict {
	return Verdict{Accepted: true, Result: res}
}

func rejected(res *interpret.Result, format string, args ...any) Verdict {
	return Verdict{Reason: fmt.Sprintf(format, args...), Result: res}
}

// Validate checks shape first (mismatched parallel sequences), then
// cardinality bounds. It is a pure, deterministic function of its inputs.
func (v *Validator) Validate(res *interpret.Result, ds *dataset.Dataset) Verdict {
	if verdict, ok := v.checkShape(res); !ok {
		return verdict
	}

	factor := v.OvershootFactor
	if factor <= 0 {
		factor = DefaultOvershootFactor
	}

	switch res.Kind {
	case interpret.KindAnswer:
		return accepted(res)

	case interpret.KindTable:
		got := len(res.Table.Data)
		allowed := ds.RowCount() * factor
		if got > allowed {
			return rejected(res, "table has %d rows but the dataset only supports %d (%d rows × factor %d)",
				got, allowed, ds.RowCount(), factor)
		}
		return accepted(res)

	case interpret.KindBar, interpret.KindPie, interpret.KindLine, interpret.KindScatter:
		got := res.Points()
		maxUnique := ds.MaxCategoricalDistinct()
		allowed := maxUnique * factor
		if got > allowed {
			return rejected(res, "%s chart has %d data points but the most granular categorical column only supports %d (%d distinct values × factor %d)",
				res.Kind, got, allowed, maxUnique, factor)
		}
		return accepted(res)
	}
	return rejected(res, "unknown result kind %q", res.Kind)
}

// checkShape verifies the parallel-sequence invariants. ok is false when the
// result is malformed; the verdict then carries the mismatch description.
func (v *Validator) checkShape(res *interpret.Result) (Verdict, bool) {
	switch res.Kind {
	case interpret.KindBar:
		if len(res.Bar.Columns) != len(res.Bar.Data) {
			return rejected(res, "bar length mismatch: %d columns vs %d data values",
				len(res.Bar.Columns), len(res.Bar.Data)), false
		}
	case interpret.KindLine:
		if len(res.Line.Columns) != len(res.Line.Data) {
			return rejected(res, "line length mismatch: %d columns vs %d data values",
				len(res.Line.Columns), len(res.Line.Data)), false
		}
	case interpret.KindPie:
		if len(res.Pie.Labels) != len(res.Pie.Values) {
			return rejected(res, "pie length mismatch: %d labels vs %d values",
				len(res.Pie.Labels), len(res.Pie.Values)), false
		}
	case interpret.KindScatter:
		s := res.Scatter
		if len(s.X) != len(s.Y) {
			return rejected(res, "scatter length mismatch: %d x values vs %d y values",
				len(s.X), len(s.Y)), false
		}
		if len(s.Labels) > 0 && len(s.Labels) != len(s.X) {
			return rejected(res, "scatter length mismatch: %d labels vs %d points",
				len(s.Labels), len(s.X)), false
		}
	case interpret.KindTable:
		for i, row := range res.Table.Data {
			if len(row) != len(res.Table.Columns) {
				return rejected(res, "table row %d has %d values but the table declares %d columns",
					i+1, len(row), len(res.Table.Columns)), false
			}
		}
	}
	return Verdict{}, true
}
