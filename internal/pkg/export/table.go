// Package export renders fixed-layout report tables as Shift-JIS CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Table is a header row followed by data rows.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]string
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=Shift_JIS"
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	if f == FormatXLSX {
		return ".xlsx"
	}
	return ".csv"
}

// Write renders t in the requested format.
func Write(w io.Writer, t Table, f Format) error {
	switch f {
	case FormatCSV, "":
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

// WriteCSV writes t as CRLF-terminated CSV encoded in Shift-JIS.
// Characters with no Shift-JIS mapping are replaced rather than failing the export.
func WriteCSV(w io.Writer, t Table) error {
	enc := encoding.ReplaceUnsupported(japanese.ShiftJIS.NewEncoder())
	sjis := transform.NewWriter(w, enc)

	cw := csv.NewWriter(sjis)
	cw.UseCRLF = true
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return sjis.Close()
}

// WriteXLSX writes t as a single-sheet workbook.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	rows := append([][]string{t.Header}, t.Rows...)
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
