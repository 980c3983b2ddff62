package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/spendmap/pkg/errors"
	"github.com/matzehuels/spendmap/pkg/spend"
)

func TestReadCSV(t *testing.T) {
	in := "\ufeffCategory, Sub-Category ,Amount\n" +
		"IT,Laptops,\"$1,200.50\"\n" +
		"IT,Licenses,300\n" +
		",,\n" +
		"Facilities,,€ 4 500\n"

	got, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []spend.Record{
		{Category: "IT", Subcategory: "Laptops", Value: 1200.5},
		{Category: "IT", Subcategory: "Licenses", Value: 300},
		{Category: "Facilities", Subcategory: "", Value: 4500},
	}, got)
}

func TestReadCSVAliases(t *testing.T) {
	for _, col := range []string{"value", "amount", "spend", "total", "Total"} {
		t.Run(col, func(t *testing.T) {
			got, err := ReadCSV(strings.NewReader("category," + col + "\nIT,10\n"))
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, 10.0, got[0].Value)
		})
	}
}

func TestReadCSVCustomColumns(t *testing.T) {
	in := "Commodity,Family,Net\nIT,Laptops,5\n"
	got, err := ReadCSV(strings.NewReader(in), WithColumns(Columns{
		Category:    []string{"commodity"},
		Subcategory: []string{"family"},
		Value:       []string{"net"},
	}))
	require.NoError(t, err)
	assert.Equal(t, []spend.Record{{Category: "IT", Subcategory: "Laptops", Value: 5}}, got)
}

func TestReadCSVDecimalComma(t *testing.T) {
	got, err := ReadCSV(strings.NewReader("category,value\nIT,\"1.234,5\"\n"), WithDecimalComma())
	require.NoError(t, err)
	assert.Equal(t, 1234.5, got[0].Value)
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no header", "", "no header row"},
		{"no category", "subcategory,value\nx,1\n", "no category column"},
		{"no value", "category,subcategory\nx,y\n", "no value column"},
		{"bad amount", "category,value\nIT,10\nIT,ten\n", "row 3"},
		{"empty amount", "category,value\nIT,\n", "row 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidRecord), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseAmount(t *testing.T) {
	rr := newRecordReader(nil)
	tests := []struct {
		in   string
		want float64
	}{
		{"42", 42},
		{"$1,234.56", 1234.56},
		{" £ 99 ", 99},
		{"1 200", 1200},
		{"1'000", 1000},
		{"(300)", -300},
		{"1e3", 1000},
	}
	for _, tt := range tests {
		got, err := rr.parseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := rr.parseAmount("12abc")
	assert.Error(t, err)
}

func TestReadJSON(t *testing.T) {
	in := `[
		{"category": "IT", "subcategory": "Laptops", "value": 1200},
		{"Category": "IT", "Amount": "$300.00"},
		{"category": "Travel", "sub_category": "Flights", "spend": 50.5}
	]`
	got, err := ReadJSON(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []spend.Record{
		{Category: "IT", Subcategory: "Laptops", Value: 1200},
		{Category: "IT", Subcategory: "", Value: 300},
		{Category: "Travel", Subcategory: "Flights", Value: 50.5},
	}, got)
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not an array", `{"category": "IT"}`},
		{"missing category", `[{"value": 1}]`},
		{"missing value", `[{"category": "IT"}]`},
		{"bad value", `[{"category": "IT", "value": "lots"}]`},
		{"null value", `[{"category": "IT", "value": null}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidRecord), "got %v", err)
		})
	}
}

func writeWorkbook(t *testing.T, sheet string, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadXLSX(t *testing.T) {
	buf := writeWorkbook(t, "Sheet1", [][]any{
		{"Category", "Subcategory", "Spend"},
		{"IT", "Laptops", 1200},
		{"Facilities", "Rent", "4,500"},
	})

	got, err := ReadXLSX(buf)
	require.NoError(t, err)
	assert.Equal(t, []spend.Record{
		{Category: "IT", Subcategory: "Laptops", Value: 1200},
		{Category: "Facilities", Subcategory: "Rent", Value: 4500},
	}, got)
}

func TestReadXLSXNamedSheet(t *testing.T) {
	buf := writeWorkbook(t, "FY24", [][]any{
		{"category", "value"},
		{"IT", 7},
	})

	got, err := ReadXLSX(buf, WithSheet("FY24"))
	require.NoError(t, err)
	assert.Equal(t, []spend.Record{{Category: "IT", Value: 7}}, got)
}

func TestReadXLSXNotAWorkbook(t *testing.T) {
	_, err := ReadXLSX(strings.NewReader("category,value\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)
}

func TestReadRecordsDispatch(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "spend.CSV")
	require.NoError(t, os.WriteFile(csvPath, []byte("category,value\nIT,1\n"), 0o644))
	got, err := ReadRecords(csvPath)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	jsonPath := filepath.Join(dir, "spend.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"category":"IT","value":2}]`), 0o644))
	got, err = ReadRecords(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got[0].Value)

	xlsxPath := filepath.Join(dir, "spend.xlsx")
	buf := writeWorkbook(t, "Sheet1", [][]any{{"category", "value"}, {"IT", 3}})
	require.NoError(t, os.WriteFile(xlsxPath, buf.Bytes(), 0o644))
	got, err = ReadRecords(xlsxPath)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got[0].Value)
}

func TestReadRecordsErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadRecords(filepath.Join(dir, "spend.txt"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)

	_, err = ReadRecords(filepath.Join(dir, "missing.csv"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)
}
