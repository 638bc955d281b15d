package contactio

import (
	"fmt"
	"io"

	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
	"github.com/tealeg/xlsx/v2"
)

// WriteExcel serializes contacts to an XLSX workbook with a single
// "Contacts" sheet: one header row, one row per contact. The header is the
// union of observed columns, matching the non-full-schema CSV export.
func WriteExcel(w io.Writer, contacts []*model.Contact) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Contacts")
	if err != nil {
		return fmt.Errorf("failed to create Contacts sheet: %w", err)
	}

	header := observedColumns(contacts)
	headerRow := sheet.AddRow()
	for _, col := range header {
		headerRow.AddCell().Value = col
	}

	for _, c := range contacts {
		row := sheet.AddRow()
		for _, col := range header {
			row.AddCell().Value = c.Fields[col]
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write XLSX workbook: %w", err)
	}
	return nil
}
