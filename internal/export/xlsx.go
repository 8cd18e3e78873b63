package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"dataforge/internal/dataset"
)

const xlsxSheet = "Data"

// maxColumnWidth caps auto-sized columns so one long address does not
// stretch the sheet.
const maxColumnWidth = 50

// WriteXLSX writes a single-sheet workbook: header row, one row per record,
// columns auto-sized from content.
func WriteXLSX(w io.Writer, ds *dataset.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("xlsx default sheet: %w", err)
	}

	cols := ds.Columns()
	widths := make([]int, len(cols))

	header := make([]any, len(cols))
	for j, col := range cols {
		header[j] = col
		widths[j] = len(col)
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	row := make([]any, len(cols))
	for i, rec := range ds.Records {
		for j, col := range cols {
			v := rec[col]
			row[j] = v
			if n := len(cellString(v)); n > widths[j] {
				widths[j] = n
			}
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	for j := range cols {
		name, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return fmt.Errorf("xlsx column %d: %w", j+1, err)
		}
		width := widths[j] + 2
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := f.SetColWidth(xlsxSheet, name, name, float64(width)); err != nil {
			return fmt.Errorf("xlsx width %s: %w", name, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("xlsx row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx row %d: %w", rowNum, err)
	}
	return nil
}
