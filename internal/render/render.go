// Package render writes an accepted result to a terminal. It trusts the
// validator: shapes are assumed consistent and are not re-checked.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/KaramelBytes/datachat-cli/internal/dataset"
	"github.com/KaramelBytes/datachat-cli/internal/interpret"
)

const barWidth = 40

// Render writes a textual rendering of the result.
func Render(w io.Writer, res *interpret.Result) error {
	switch res.Kind {
	case interpret.KindAnswer:
		_, err := fmt.Fprintln(w, res.Answer)
		return err
	case interpret.KindTable:
		return renderTable(w, res.Table)
	case interpret.KindBar:
		return renderSeries(w, "Bar chart", res.Bar)
	case interpret.KindLine:
		return renderSeries(w, "Line chart", res.Line)
	case interpret.KindPie:
		return renderPie(w, res.Pie)
	case interpret.KindScatter:
		return renderScatter(w, res.Scatter)
	}
	return fmt.Errorf("unknown result kind %q", res.Kind)
}

func renderTable(w io.Writer, t *interpret.Table) error {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = utf8.RuneCountInString(c)
	}
	cells := make([][]string, len(t.Data))
	for r, row := range t.Data {
		cells[r] = make([]string, len(row))
		for i, v := range row {
			s := dataset.FormatValue(v)
			cells[r][i] = s
			if n := utf8.RuneCountInString(s); n > widths[i] {
				widths[i] = n
			}
		}
	}
	writeRow := func(vals []string) error {
		parts := make([]string, len(vals))
		for i, v := range vals {
			parts[i] = pad(v, widths[i])
		}
		_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(parts, " | "))
		return err
	}
	if err := writeRow(t.Columns); err != nil {
		return err
	}
	sep := make([]string, len(t.Columns))
	for i := range sep {
		sep[i] = strings.Repeat("-", widths[i])
	}
	if err := writeRow(sep); err != nil {
		return err
	}
	for _, row := range cells {
		if err := writeRow(row); err != nil {
			return err
		}
	}
	return nil
}

func renderSeries(w io.Writer, title string, s *interpret.Series) error {
	fmt.Fprintln(w, title)
	max := 0.0
	width := 0
	for i, c := range s.Columns {
		if s.Data[i] > max {
			max = s.Data[i]
		}
		if n := utf8.RuneCountInString(c); n > width {
			width = n
		}
	}
	for i, c := range s.Columns {
		bar := ""
		if max > 0 && s.Data[i] > 0 {
			n := int(s.Data[i] / max * barWidth)
			if n == 0 {
				n = 1
			}
			bar = strings.Repeat("█", n)
		}
		if _, err := fmt.Fprintf(w, "  %s %s %s\n", pad(c, width), bar, dataset.FormatValue(s.Data[i])); err != nil {
			return err
		}
	}
	return nil
}

func renderPie(w io.Writer, p *interpret.Pie) error {
	fmt.Fprintln(w, "Share breakdown")
	total := 0.0
	width := 0
	for i, l := range p.Labels {
		total += p.Values[i]
		if n := utf8.RuneCountInString(l); n > width {
			width = n
		}
	}
	for i, l := range p.Labels {
		pct := 0.0
		if total != 0 {
			pct = p.Values[i] / total * 100
		}
		if _, err := fmt.Fprintf(w, "  %s %s (%.1f%%)\n", pad(l, width), dataset.FormatValue(p.Values[i]), pct); err != nil {
			return err
		}
	}
	return nil
}

func renderScatter(w io.Writer, s *interpret.Scatter) error {
	fmt.Fprintln(w, "Scatter points")
	for i := range s.X {
		label := ""
		if i < len(s.Labels) {
			label = " " + s.Labels[i]
		}
		if _, err := fmt.Fprintf(w, "  (%s, %s)%s\n",
			dataset.FormatValue(s.X[i]), dataset.FormatValue(s.Y[i]), label); err != nil {
			return err
		}
	}
	return nil
}

// TableDataset converts a table result into a Dataset for CSV export.
func TableDataset(t *interpret.Table) (*dataset.Dataset, error) {
	return dataset.New(t.Columns, t.Data)
}

func pad(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
