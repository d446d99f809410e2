// Package datacontext turns a Dataset into the bounded textual description
// sent to the model: a representative row sample plus exact per-column
// statistics. The frequency tables are the model's source of truth for exact
// counts; the row sample alone cannot guarantee them.
package datacontext

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/datachat-cli/internal/dataset"
)

// Builder produces data contexts. Build never fails, including on empty and
// single-column datasets; it only degrades the row section as size grows.
type Builder struct {
	// SampleThreshold is the row count at or below which every row is
	// emitted verbatim. Above it, three fixed windows are sampled.
	SampleThreshold int
	// WindowSize is the size of each sampled window.
	WindowSize int
}

// NewBuilder returns a Builder with the default 100-row threshold and
// 10-row windows.
func NewBuilder() *Builder {
	return &Builder{SampleThreshold: 100, WindowSize: 10}
}

// ColumnProfile is the per-column statistics section of a context.
type ColumnProfile struct {
	Name     string
	Kind     string // numeric or categorical
	NonNull  int
	Null     int
	Distinct int
	// Numeric stats, when Kind is numeric.
	Stats *dataset.NumericSummary
	// Full value→count table, when Kind is categorical. Always enumerated:
	// distinct count never exceeds row count, so this stays bounded by the
	// row section itself.
	Frequency []dataset.ValueCount
}

// RowWindow is one labeled slice of sampled rows. Start is 0-based.
type RowWindow struct {
	Label string
	Start int
	Rows  [][]dataset.Value
}

// Context is the derived textual artifact for a single request. It is built
// once per query and discarded after the model call.
type Context struct {
	RowCount    int
	ColumnNames []string
	Columns     []ColumnProfile
	// Complete is true when Windows holds every row.
	Complete bool
	Windows  []RowWindow
}

// Build derives a Context from the dataset. It is total: any well-formed
// dataset, including zero rows, yields a usable context.
func (b *Builder) Build(ds *dataset.Dataset) *Context {
	threshold := b.SampleThreshold
	if threshold <= 0 {
		threshold = 100
	}
	window := b.WindowSize
	if window <= 0 {
		window = 10
	}

	ctx := &Context{
		RowCount:    ds.RowCount(),
		ColumnNames: ds.Columns,
	}
	for col, name := range ds.Columns {
		p := ColumnProfile{
			Name:     name,
			NonNull:  ds.RowCount() - ds.NullCount(col),
			Null:     ds.NullCount(col),
			Distinct: ds.DistinctCount(col),
		}
		if ds.IsNumeric(col) {
			p.Kind = "numeric"
			if s, ok := ds.NumericSummary(col); ok {
				p.Stats = &s
			}
		} else {
			p.Kind = "categorical"
			p.Frequency = ds.Frequency(col)
		}
		ctx.Columns = append(ctx.Columns, p)
	}

	n := ds.RowCount()
	if n <= threshold {
		ctx.Complete = true
		if n > 0 {
			ctx.Windows = []RowWindow{{
				Label: fmt.Sprintf("All %d rows", n),
				Start: 0,
				Rows:  ds.Rows,
			}}
		}
		return ctx
	}

	ctx.Windows = []RowWindow{
		sliceWindow(ds, fmt.Sprintf("First %d rows", window), 0, window),
		sliceWindow(ds, "", n/2-window/2, n/2+window-window/2),
		sliceWindow(ds, fmt.Sprintf("Last %d rows", window), n-window, n),
	}
	mid := &ctx.Windows[1]
	mid.Label = fmt.Sprintf("Middle rows %d-%d", mid.Start+1, mid.Start+len(mid.Rows))
	return ctx
}

func sliceWindow(ds *dataset.Dataset, label string, start, end int) RowWindow {
	if start < 0 {
		start = 0
	}
	if end > ds.RowCount() {
		end = ds.RowCount()
	}
	return RowWindow{Label: label, Start: start, Rows: ds.Rows[start:end]}
}

// Render emits the textual form sent to the model: dataset shape, per-column
// statistics, then the labeled row sections. Row samples are explicit
// column=value pairs so the model cannot confuse column positions when it
// echoes values back.
func (c *Context) Render() string {
	var b strings.Builder

	b.WriteString("[DATASET]\n")
	fmt.Fprintf(&b, "Rows: %d\n", c.RowCount)
	fmt.Fprintf(&b, "Columns: %d\n\n", len(c.ColumnNames))

	b.WriteString("[COLUMNS]\n")
	for _, p := range c.Columns {
		fmt.Fprintf(&b, "- %s: %s (non-null %d, null %d, distinct %d)",
			p.Name, p.Kind, p.NonNull, p.Null, p.Distinct)
		if p.Stats != nil {
			fmt.Fprintf(&b, "; min %.4g, max %.4g, mean %.4g, std %.4g",
				p.Stats.Min, p.Stats.Max, p.Stats.Mean, p.Stats.Std)
		}
		b.WriteString("\n")
		if len(p.Frequency) > 0 {
			b.WriteString("  value counts:\n")
			for _, vc := range p.Frequency {
				fmt.Fprintf(&b, "    %s: %d\n", vc.Value, vc.Count)
			}
		}
	}

	if len(c.Windows) == 0 {
		b.WriteString("\n[ROWS]\n(no rows)\n")
		return b.String()
	}
	if c.Complete {
		b.WriteString("\n[ROWS]\n")
	} else {
		b.WriteString("\n[SAMPLE ROWS]\n")
		fmt.Fprintf(&b, "The dataset has %d rows; only the following samples are shown. "+
			"Use the column statistics above for exact counts.\n", c.RowCount)
	}
	for _, w := range c.Windows {
		fmt.Fprintf(&b, "%s:\n", w.Label)
		for i, row := range w.Rows {
			pairs := make([]string, len(c.ColumnNames))
			for j, name := range c.ColumnNames {
				pairs[j] = fmt.Sprintf("%s=%s", name, dataset.FormatValue(row[j]))
			}
			fmt.Fprintf(&b, "row %d: %s\n", w.Start+i+1, strings.Join(pairs, ", "))
		}
	}
	return b.String()
}
