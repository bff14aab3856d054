package table

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	ExportSheet       = "Datos"
	ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportDateLayout  = "2006-01-02"
)

var (
	ErrNothingToExport = errors.New("table: no hay datos para exportar")
	ErrExportDisabled  = errors.New("table: export is not configured")
)

// File is a generated spreadsheet.
type File struct {
	Name string
	Data []byte
}

// Export writes the filtered, non-paginated rows of s to a single-sheet workbook
// named <ExportFileName>_<YYYY-MM-DD>.xlsx.
func (t *Table[R]) Export(rows []R, s State, now time.Time) (File, error) {
	if t.cfg.ExportFileName == "" {
		return File{}, ErrExportDisabled
	}
	filtered := t.Filtered(rows, s)
	if len(filtered) == 0 {
		return File{}, ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return File{}, fmt.Errorf("table.Export rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return File{}, fmt.Errorf("table.Export style: %w", err)
	}

	for ci, col := range t.cfg.Columns {
		label := exportLabel(col)
		values := make([]string, len(filtered))

		cell, _ := excelize.CoordinatesToCellName(ci+1, 1)
		if err := f.SetCellStr(ExportSheet, cell, label); err != nil {
			return File{}, fmt.Errorf("table.Export header: %w", err)
		}
		if err := f.SetCellStyle(ExportSheet, cell, cell, bold); err != nil {
			return File{}, fmt.Errorf("table.Export header style: %w", err)
		}

		for ri, r := range filtered {
			v := t.exportValue(col, r)
			values[ri] = v
			cell, _ := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err := f.SetCellStr(ExportSheet, cell, v); err != nil {
				return File{}, fmt.Errorf("table.Export cell: %w", err)
			}
		}

		name, _ := excelize.ColumnNumberToName(ci + 1)
		width := ExportWidth(label, values, t.cfg.ExportMaxColWidth)
		if err := f.SetColWidth(ExportSheet, name, name, float64(width)); err != nil {
			return File{}, fmt.Errorf("table.Export width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return File{}, fmt.Errorf("table.Export write: %w", err)
	}
	return File{Name: ExportFileName(t.cfg.ExportFileName, now), Data: buf.Bytes()}, nil
}

// ExportFileName builds <base>_<YYYY-MM-DD>.xlsx.
func ExportFileName(base string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", base, now.Format(exportDateLayout))
}

// ExportWidth returns the width Export assigns to a column holding values.
func ExportWidth(label string, values []string, maxWidth int) int {
	w := utf8.RuneCountInString(label)
	for _, v := range values {
		w = max(w, utf8.RuneCountInString(v))
	}
	return min(w, maxWidth)
}

func exportLabel[R Row](c Column[R]) string {
	if c.ExportLabel != "" {
		return c.ExportLabel
	}
	return c.Label
}

func (t *Table[R]) exportValue(c Column[R], r R) string {
	if c.ExportFormat != nil {
		return c.ExportFormat(t.rawValue(c, r))
	}
	return t.cellText(c, r)
}
