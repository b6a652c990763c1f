// Package ingest reads the MEDS input tables from disk and writes the
// converted tables back out. It is the file boundary around package core.
package ingest

// reader.go loads one input table from a CSV, TSV or XLSX file.
//
// CSV input is decoded as UTF-8 with any byte order mark stripped and
// invalid byte sequences replaced, so exports from Windows tools load
// without manual cleanup. Workbooks are read from the configured sheet, or
// the first sheet when none is set.

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/meds2dtc/internal/core"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ContextCheckInterval is how often (in rows) row building checks for cancellation.
var ContextCheckInterval = 1000

// RawTable is an input table after row building.
type RawTable struct {
	Key    string
	Path   string
	Header []string
	Rows   []any // typed rows produced by the table's BuildRow
}

// ReadTable reads path according to def. sheet selects the worksheet of an
// .xlsx file and is ignored for delimited files.
func ReadTable(ctx context.Context, path string, def core.TableDefinition, sheet string) (*RawTable, error) {
	var (
		records [][]string
		err     error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		records, err = readDelimited(path, ',')
	case ".tsv":
		records, err = readDelimited(path, '\t')
	case ".xlsx":
		records, err = readWorkbook(path, sheet)
	default:
		return nil, fmt.Errorf("unsupported file type %q for %s", ext, path)
	}
	if err != nil {
		return nil, err
	}

	return buildTable(ctx, path, def, records)
}

func readDelimited(path string, comma rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	r := csv.NewReader(transform.NewReader(f, decoder))
	r.Comma = comma

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in workbook %s", sheet, path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, path, err)
	}
	return rows, nil
}

// buildTable validates the header, then validates and builds every data row.
// Line numbers in errors are 1-based and count the header.
func buildTable(ctx context.Context, path string, def core.TableDefinition, records [][]string) (*RawTable, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file: %s", path)
	}

	header := records[0]
	idx, err := core.ValidateHeaders(header, def.FieldSpecs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	validator := core.NewRowValidator(def.FieldSpecs, idx)
	table := &RawTable{
		Key:    def.Info.Key,
		Path:   path,
		Header: header,
		Rows:   make([]any, 0, len(records)-1),
	}

	for i, row := range records[1:] {
		line := i + 2

		if i%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if isBlankRow(row) {
			continue
		}

		if err := validator.ValidateRowFirst(row); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}

		built, err := def.BuildRow(row, header, idx)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		table.Rows = append(table.Rows, built)
	}

	return table, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
