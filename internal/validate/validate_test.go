package validate_test

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/datachat-cli/internal/dataset"
	"github.com/KaramelBytes/datachat-cli/internal/interpret"
	"github.com/KaramelBytes/datachat-cli/internal/validate"
)

// tenRows has 10 rows and a categorical column with 5 distinct values.
func tenRows(t *testing.T) *dataset.Dataset {
	t.Helper()
	products := []string{"A", "B", "C", "D", "E"}
	rows := make([][]dataset.Value, 10)
	for i := range rows {
		rows[i] = []dataset.Value{products[i%5], float64(i * 10)}
	}
	ds, err := dataset.New([]string{"product", "sales"}, rows)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ds
}

func barResult(n int) *interpret.Result {
	cols := make([]string, n)
	data := make([]float64, n)
	for i := range cols {
		cols[i] = "c"
		data[i] = float64(i)
	}
	return &interpret.Result{Kind: interpret.KindBar, Bar: &interpret.Series{Columns: cols, Data: data}}
}

func tableResult(rows int) *interpret.Result {
	data := make([][]dataset.Value, rows)
	for i := range data {
		data[i] = []dataset.Value{"x"}
	}
	return &interpret.Result{Kind: interpret.KindTable, Table: &interpret.Table{Columns: []string{"name"}, Data: data}}
}

func TestAnswerAlwaysAccepted(t *testing.T) {
	ds := tenRows(t)
	res := &interpret.Result{Kind: interpret.KindAnswer, Answer: strings.Repeat("long ", 100)}
	v := validate.New(0).Validate(res, ds)
	if !v.Accepted {
		t.Fatalf("answer rejected: %s", v.Reason)
	}
}

func TestTableRowBound(t *testing.T) {
	ds := tenRows(t) // 10 rows, factor 2 → 20 allowed
	v := validate.New(2)

	if verdict := v.Validate(tableResult(20), ds); !verdict.Accepted {
		t.Fatalf("20-row table rejected: %s", verdict.Reason)
	}
	verdict := v.Validate(tableResult(21), ds)
	if verdict.Accepted {
		t.Fatal("21-row table accepted")
	}
	if !strings.Contains(verdict.Reason, "table has 21 rows") ||
		!strings.Contains(verdict.Reason, "20") {
		t.Errorf("reason = %q, want observed and allowed counts", verdict.Reason)
	}
}

func TestChartPointBound(t *testing.T) {
	ds := tenRows(t) // max categorical distinct 5, factor 2 → 10 points allowed
	v := validate.New(2)

	pie := func(n int) *interpret.Result {
		labels := make([]string, n)
		values := make([]float64, n)
		for i := range labels {
			labels[i] = "l"
			values[i] = 1
		}
		return &interpret.Result{Kind: interpret.KindPie, Pie: &interpret.Pie{Labels: labels, Values: values}}
	}

	if verdict := v.Validate(pie(10), ds); !verdict.Accepted {
		t.Fatalf("10-slice pie rejected: %s", verdict.Reason)
	}
	verdict := v.Validate(pie(11), ds)
	if verdict.Accepted {
		t.Fatal("11-slice pie accepted")
	}
	if !strings.Contains(verdict.Reason, "pie chart has 11 data points") ||
		!strings.Contains(verdict.Reason, "5 distinct values") {
		t.Errorf("reason = %q", verdict.Reason)
	}
}

func TestChartBoundUsesRowCountWhenAllNumeric(t *testing.T) {
	ds, err := dataset.New([]string{"x", "y"}, [][]dataset.Value{
		{1.0, 2.0}, {3.0, 4.0}, {5.0, 6.0},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// No categorical column: the bound falls back to row count (3 × 2 = 6).
	v := validate.New(2)
	if verdict := v.Validate(barResult(6), ds); !verdict.Accepted {
		t.Fatalf("6-bar chart rejected: %s", verdict.Reason)
	}
	if verdict := v.Validate(barResult(7), ds); verdict.Accepted {
		t.Fatal("7-bar chart accepted")
	}
}

func TestShapeCheckedBeforeCardinality(t *testing.T) {
	ds := tenRows(t)
	res := &interpret.Result{
		Kind: interpret.KindBar,
		Bar:  &interpret.Series{Columns: []string{"A", "B", "C"}, Data: []float64{1, 2}},
	}
	verdict := validate.New(2).Validate(res, ds)
	if verdict.Accepted {
		t.Fatal("mismatched bar accepted")
	}
	if !strings.Contains(verdict.Reason, "bar length mismatch: 3 columns vs 2 data values") {
		t.Errorf("reason = %q, want shape mismatch, not a cardinality bound", verdict.Reason)
	}
}

func TestScatterShape(t *testing.T) {
	ds := tenRows(t)
	v := validate.New(2)

	bad := &interpret.Result{
		Kind:    interpret.KindScatter,
		Scatter: &interpret.Scatter{X: []float64{1, 2, 3}, Y: []float64{1, 2}},
	}
	if verdict := v.Validate(bad, ds); verdict.Accepted || !strings.Contains(verdict.Reason, "scatter length mismatch") {
		t.Fatalf("verdict = %+v", verdict)
	}

	badLabels := &interpret.Result{
		Kind:    interpret.KindScatter,
		Scatter: &interpret.Scatter{X: []float64{1, 2}, Y: []float64{1, 2}, Labels: []string{"only one"}},
	}
	if verdict := v.Validate(badLabels, ds); verdict.Accepted {
		t.Fatal("mismatched scatter labels accepted")
	}

	good := &interpret.Result{
		Kind:    interpret.KindScatter,
		Scatter: &interpret.Scatter{X: []float64{1, 2}, Y: []float64{3, 4}},
	}
	if verdict := v.Validate(good, ds); !verdict.Accepted {
		t.Fatalf("valid scatter rejected: %s", verdict.Reason)
	}
}

func TestRaggedTableRejected(t *testing.T) {
	ds := tenRows(t)
	res := &interpret.Result{
		Kind: interpret.KindTable,
		Table: &interpret.Table{
			Columns: []string{"a", "b"},
			Data:    [][]dataset.Value{{"x", 1.0}, {"y"}},
		},
	}
	verdict := validate.New(2).Validate(res, ds)
	if verdict.Accepted {
		t.Fatal("ragged table accepted")
	}
	if !strings.Contains(verdict.Reason, "table row 2 has 1 values but the table declares 2 columns") {
		t.Errorf("reason = %q", verdict.Reason)
	}
}

func TestNewDefaultsFactor(t *testing.T) {
	if v := validate.New(-1); v.OvershootFactor != validate.DefaultOvershootFactor {
		t.Fatalf("factor = %d, want default %d", v.OvershootFactor, validate.DefaultOvershootFactor)
	}
	if v := validate.New(3); v.OvershootFactor != 3 {
		t.Fatalf("factor = %d, want 3", v.OvershootFactor)
	}
}

func TestVerdictCarriesResult(t *testing.T) {
	ds := tenRows(t)
	res := tableResult(2)
	verdict := validate.New(0).Validate(res, ds)
	if verdict.Result != res {
		t.Fatal("verdict should carry the validated result")
	}
}
