package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/brandmap/pkg/errors"
)

// SheetName is the worksheet title of XLSX output.
const SheetName = "Seeded Brands"

// columnWidths are the XLSX column widths, in characters.
var columnWidths = []float64{50, 35, 50, 40, 70}

// WriteRecords encodes records as JSON (2-space indent) or YAML.
func WriteRecords(w io.Writer, format Format, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return errors.WrapParse("json", "", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case FormatYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return errors.WrapParse("yaml", "", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return errors.NewValidationError("format", format.String(), "records can only be written as json or yaml")
	}
}

// WriteTable writes rows, preceded by Headers, as CSV or XLSX.
func WriteTable(w io.Writer, format Format, rows []Row) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatXLSX:
		return writeXLSX(w, rows)
	default:
		return errors.NewValidationError("format", format.String(), "tables can only be written as csv or xlsx")
	}
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Strings()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, rows []Row) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := r.Values()
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.WrapIO("write", "", err)
	}
	return nil
}
