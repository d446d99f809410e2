package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// Options controls ingestion behavior.
type Options struct {
	// Delimiter for CSV. If 0, sniffs among ',', ';', '\t'.
	Delimiter rune
	// MaxRows caps the number of rows kept; 0 means DefaultMaxRows.
	MaxRows int
}

// DefaultMaxRows bounds ingestion so oversized uploads degrade to a prefix
// instead of exhausting memory.
const DefaultMaxRows = 10000

// ReadCSV ingests a CSV/TSV file into a clean Dataset. The byte stream is
// decoded as UTF-8 when valid, then GBK (which covers GB2312), then Latin-1,
// mirroring the encodings spreadsheet exports commonly arrive in. Returns
// warnings for non-fatal cleanup such as the row cap.
func ReadCSV(path string, opt Options) (*Dataset, []string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	text, encWarn := decodeText(b)

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path, text)
	}
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("read csv: %s is empty", path)
		}
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	var records [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read csv row %d: %w", len(records)+2, err)
		}
		row := make([]string, len(rec))
		copy(row, rec)
		records = append(records, row)
	}

	ds, warns, err := fromRecords(header, records, opt)
	if err != nil {
		return nil, nil, err
	}
	if encWarn != "" {
		warns = append([]string{encWarn}, warns...)
	}
	return ds, warns, nil
}

// decodeText converts raw file bytes to UTF-8 text, trying UTF-8 first and
// falling back to GBK and finally Latin-1 (which never fails).
func decodeText(b []byte) (string, string) {
	b = stripBOM(b)
	if utf8.Valid(b) {
		return string(b), ""
	}
	if out, err := simplifiedchinese.GBK.NewDecoder().Bytes(b); err == nil && utf8.Valid(out) {
		return string(out), "decoded file as GBK"
	}
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(b)
	return string(out), "decoded file as Latin-1"
}

func stripBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}

// sniffDelimiter picks the delimiter with the most hits in the header line.
func sniffDelimiter(path, text string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	line := text
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	best, bestCount := ',', strings.Count(line, ",")
	for _, cand := range []rune{';', '\t'} {
		if n := strings.Count(line, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}

// fromRecords cleans raw string records into a typed Dataset: trims headers,
// drops fully empty rows and columns, dedupes column names, infers cell
// types, and applies the row cap.
func fromRecords(header []string, records [][]string, opt Options) (*Dataset, []string, error) {
	var warnings []string
	ncol := len(header)
	for _, rec := range records {
		if len(rec) > ncol {
			ncol = len(rec)
		}
	}
	if ncol == 0 {
		return nil, nil, fmt.Errorf("no columns found")
	}

	// Normalize header width and trim names.
	names := make([]string, ncol)
	for i := 0; i < ncol; i++ {
		if i < len(header) {
			names[i] = strings.TrimSpace(header[i])
		}
	}

	// Identify columns that carry no name and no data.
	used := make([]bool, ncol)
	for i, n := range names {
		if n != "" {
			used[i] = true
		}
	}
	for _, rec := range records {
		for i := 0; i < ncol && i < len(rec); i++ {
			if strings.TrimSpace(rec[i]) != "" {
				used[i] = true
			}
		}
	}

	var keep []int
	for i := 0; i < ncol; i++ {
		if used[i] {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, nil, fmt.Errorf("no columns found")
	}
	if len(keep) < ncol {
		warnings = append(warnings, fmt.Sprintf("dropped %d empty column(s)", ncol-len(keep)))
	}

	columns := make([]string, len(keep))
	seen := map[string]int{}
	for i, src := range keep {
		name := names[src]
		if name == "" {
			name = "column_" + strconv.Itoa(src+1)
		}
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		}
		seen[name]++
		columns[i] = name
	}

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	var rows [][]Value
	dropped := 0
	capped := false
	for _, rec := range records {
		row := make([]Value, len(keep))
		empty := true
		for i, src := range keep {
			var cell string
			if src < len(rec) {
				cell = strings.TrimSpace(rec[src])
			}
			v := inferValue(cell)
			if v != nil {
				empty = false
			}
			row[i] = v
		}
		if empty {
			dropped++
			continue
		}
		if len(rows) >= maxRows {
			capped = true
			break
		}
		rows = append(rows, row)
	}
	if dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("dropped %d empty row(s)", dropped))
	}
	if capped {
		warnings = append(warnings, fmt.Sprintf("dataset truncated to the first %d rows", maxRows))
	}

	ds, err := New(columns, rows)
	if err != nil {
		return nil, nil, err
	}
	return ds, warnings, nil
}

// inferValue types a raw cell: empty → nil, then bool, then number, else text.
func inferValue(cell string) Value {
	if cell == "" {
		return nil
	}
	switch strings.ToLower(cell) {
	case "true":
		return true
	case "false":
		return false
	case "null", "na", "n/a", "nan":
		return nil
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}

// WriteCSV renders the dataset back to CSV, e.g. for exporting results.
func (d *Dataset) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(d.Columns))
	for _, row := range d.Rows {
		for i, v := range row {
			if v == nil {
				rec[i] = ""
			} else {
				rec[i] = FormatValue(v)
			}
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
