// Package export builds Excel workbooks for downloading document
// registers.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"bizdesk/internal/domain"
)

const dateLayout = "2006-01-02"

// InvoiceRegister renders the given invoices into a single-sheet workbook.
func InvoiceRegister(invoices []domain.Invoice) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Invoices"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Invoice No", "Date", "Customer", "Status", "Total", "Paid", "Outstanding"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return nil, err
	}

	for i, inv := range invoices {
		row := i + 2
		outstanding := inv.TotalAmount.Sub(inv.AmountPaid)
		cells := []interface{}{
			inv.InvoiceNumber,
			inv.InvoiceDate.Format(dateLayout),
			inv.CustomerName,
			string(inv.Status),
			inv.TotalAmount.InexactFloat64(),
			inv.AmountPaid.InexactFloat64(),
			outstanding.InexactFloat64(),
		}
		if err := writeRow(f, sheet, row, cells); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

// CreditNoteRegister renders the given credit notes into a single-sheet
// workbook.
func CreditNoteRegister(notes []domain.CreditNote) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Credit Notes"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Credit Note No", "Date", "Customer", "Status", "Amount", "Description"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return nil, err
	}

	for i, note := range notes {
		row := i + 2
		cells := []interface{}{
			note.CreditNoteNumber,
			note.CreditDate.Format(dateLayout),
			note.CustomerName,
			string(note.Status),
			note.CreditAmount.InexactFloat64(),
			note.Description,
		}
		if err := writeRow(f, sheet, row, cells); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
