package export

import (
	"io"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/pkg/errors"
)

const sheetName = "Datos"

// WriteXLSX streams the table as a single-sheet spreadsheet.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	if err := writeRow(f, 1, t.Header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := writeRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "write xlsx")
	}
	return nil
}

func writeRow(f *excelize.File, rowNum int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return errors.Wrap(err, "xlsx cell name")
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return errors.Wrap(err, "xlsx set cell")
		}
	}
	return nil
}
