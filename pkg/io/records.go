package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/spendmap/pkg/errors"
	"github.com/matzehuels/spendmap/pkg/spend"
)

// Supported record file extensions.
const (
	ExtCSV  = ".csv"
	ExtJSON = ".json"
	ExtXLSX = ".xlsx"
)

// Columns lists the accepted header names for each record field. Matching
// ignores case, surrounding space, and treats spaces and dashes as
// underscores.
type Columns struct {
	Category    []string `toml:"category" json:"category"`
	Subcategory []string `toml:"subcategory" json:"subcategory"`
	Value       []string `toml:"value" json:"value"`
}

// DefaultColumns returns the header names recognised out of the box.
func DefaultColumns() Columns {
	return Columns{
		Category:    []string{"category"},
		Subcategory: []string{"subcategory", "sub_category"},
		Value:       []string{"value", "amount", "spend", "total"},
	}
}

// RecordOption configures record import.
type RecordOption func(*recordReader)

type recordReader struct {
	columns      Columns
	sheet        string
	decimalComma bool
}

// WithColumns replaces the accepted header names. Empty fields keep their
// defaults.
func WithColumns(c Columns) RecordOption {
	return func(r *recordReader) {
		if len(c.Category) > 0 {
			r.columns.Category = c.Category
		}
		if len(c.Subcategory) > 0 {
			r.columns.Subcategory = c.Subcategory
		}
		if len(c.Value) > 0 {
			r.columns.Value = c.Value
		}
	}
}

// WithSheet reads the named worksheet of an .xlsx file instead of the first.
func WithSheet(name string) RecordOption { return func(r *recordReader) { r.sheet = name } }

// WithDecimalComma parses amounts written as "1.234,56".
func WithDecimalComma() RecordOption { return func(r *recordReader) { r.decimalComma = true } }

func newRecordReader(opts []RecordOption) recordReader {
	r := recordReader{columns: DefaultColumns()}
	for _, opt := range opts {
		if opt != nil {
			opt(&r)
		}
	}
	return r
}

// ReadRecords loads line items from a .csv, .json or .xlsx file.
func ReadRecords(path string, opts ...RecordOption) ([]spend.Record, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !lo.Contains([]string{ExtCSV, ExtJSON, ExtXLSX}, ext) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported record file %q (want .csv, .json or .xlsx)", path)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	switch ext {
	case ExtCSV:
		return ReadCSV(f, opts...)
	case ExtJSON:
		return ReadJSON(f, opts...)
	default:
		return ReadXLSX(f, opts...)
	}
}

// ReadCSV parses records from CSV with a header row.
func ReadCSV(r io.Reader, opts ...RecordOption) ([]spend.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "parse csv")
	}
	return newRecordReader(opts).fromRows(rows)
}

// ReadXLSX parses records from the first (or configured) worksheet of an
// Excel workbook.
func ReadXLSX(r io.Reader, opts ...RecordOption) ([]spend.Record, error) {
	rr := newRecordReader(opts)

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook")
	}
	defer f.Close()

	sheet := rr.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "read sheet %q", sheet)
	}
	return rr.fromRows(rows)
}

// ReadJSON parses records from a JSON array of objects. Values may be
// numbers or numeric strings.
func ReadJSON(r io.Reader, opts ...RecordOption) ([]spend.Record, error) {
	rr := newRecordReader(opts)

	var objs []map[string]any
	if err := json.NewDecoder(r).Decode(&objs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "decode records")
	}

	records := make([]spend.Record, 0, len(objs))
	for i, obj := range objs {
		fields := lo.MapKeys(obj, func(_ any, k string) string { return normalizeHeader(k) })

		cat, ok := rr.lookup(fields, rr.columns.Category)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidRecord, "record %d: missing category", i)
		}
		val, ok := rr.lookup(fields, rr.columns.Value)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidRecord, "record %d: missing value", i)
		}
		sub, _ := rr.lookup(fields, rr.columns.Subcategory)

		v, err := rr.jsonValue(val)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "record %d value", i)
		}
		records = append(records, spend.Record{
			Category:    cast.ToString(cat),
			Subcategory: cast.ToString(sub),
			Value:       v,
		})
	}
	return records, nil
}

func (rr recordReader) lookup(fields map[string]any, names []string) (any, bool) {
	for _, n := range names {
		if v, ok := fields[normalizeHeader(n)]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (rr recordReader) jsonValue(v any) (float64, error) {
	if s, ok := v.(string); ok {
		return rr.parseAmount(s)
	}
	return cast.ToFloat64E(v)
}

// fromRows maps a header row plus data rows onto records. Blank rows are
// skipped. Row numbers in errors are 1-based and count the header.
func (rr recordReader) fromRows(rows [][]string) ([]spend.Record, error) {
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRecord, "file has no header row")
	}

	header := lo.Map(rows[0], func(h string, _ int) string { return normalizeHeader(h) })
	catCol := rr.column(header, rr.columns.Category)
	subCol := rr.column(header, rr.columns.Subcategory)
	valCol := rr.column(header, rr.columns.Value)
	if catCol < 0 {
		return nil, errors.New(errors.ErrCodeInvalidRecord, "no category column (looked for %s)", strings.Join(rr.columns.Category, ", "))
	}
	if valCol < 0 {
		return nil, errors.New(errors.ErrCodeInvalidRecord, "no value column (looked for %s)", strings.Join(rr.columns.Value, ", "))
	}

	records := make([]spend.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if lo.EveryBy(row, func(s string) bool { return strings.TrimSpace(s) == "" }) {
			continue
		}
		rowNum := i + 2

		raw := cell(row, valCol)
		v, err := rr.parseAmount(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "row %d", rowNum)
		}
		records = append(records, spend.Record{
			Category:    cell(row, catCol),
			Subcategory: cell(row, subCol),
			Value:       v,
		})
	}
	return records, nil
}

func (rr recordReader) column(header []string, names []string) int {
	for _, n := range names {
		if i := lo.IndexOf(header, normalizeHeader(n)); i >= 0 {
			return i
		}
	}
	return -1
}

// parseAmount accepts values such as "1234.5", "$1,234.50", "€ 99",
// "1 200" and "(300)" for -300.
func (rr recordReader) parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	neg := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if neg {
		s = s[1 : len(s)-1]
	}

	group, decimal := ',', '.'
	if rr.decimalComma {
		group, decimal = '.', ','
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r == group, unicode.IsSpace(r), unicode.Is(unicode.Sc, r), r == '\'':
			// separator or currency symbol
		case r == decimal:
			b.WriteByte('.')
		default:
			b.WriteRune(r)
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if neg {
		v = -v
	}
	return v, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
