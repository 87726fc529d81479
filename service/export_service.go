package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/supplier-doc-extractor/dto"
)

const (
	InvoiceSheet = "Invoice Lines"
	PackingSheet = "Packing List"
)

// ExportService renders extraction results as an XLSX workbook.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportXLSX writes one sheet per table. Rows keep extraction order and
// duplicates; numbers that could not be parsed leave their cell empty.
func (s *ExportService) ExportXLSX(resp *dto.ExtractionResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", InvoiceSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(PackingSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	if err := writeInvoiceSheet(f, resp); err != nil {
		return nil, err
	}
	if err := writePackingSheet(f, resp); err != nil {
		return nil, err
	}

	index, _ := f.GetSheetIndex(InvoiceSheet)
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeInvoiceSheet(f *excelize.File, resp *dto.ExtractionResponse) error {
	headers := []string{"Supplier_ID", "Qty", "Net Price", "Tot. Net Value", "InvoiceNo", "Source File"}
	if err := writeRow(f, InvoiceSheet, 1, toAny(headers)); err != nil {
		return err
	}

	row := 2
	for _, doc := range resp.Documents {
		for _, r := range doc.InvoiceLines {
			values := []any{r.SupplierID, r.Quantity, nil, nil, nil, doc.Filename}
			if r.NetPrice != nil {
				values[2] = *r.NetPrice
			}
			if r.TotalNet != nil {
				values[3] = *r.TotalNet
			}
			if r.InvoiceNo != nil {
				values[4] = *r.InvoiceNo
			}
			if err := writeRow(f, InvoiceSheet, row, values); err != nil {
				return err
			}
			row++
		}
	}

	_ = f.SetColWidth(InvoiceSheet, "A", "A", 14)
	_ = f.SetColWidth(InvoiceSheet, "B", "B", 8)
	_ = f.SetColWidth(InvoiceSheet, "C", "D", 14)
	_ = f.SetColWidth(InvoiceSheet, "E", "E", 14)
	_ = f.SetColWidth(InvoiceSheet, "F", "F", 40)
	return nil
}

func writePackingSheet(f *excelize.File, resp *dto.ExtractionResponse) error {
	headers := []string{"Parcel ID", "Material No", "Qty", "Source File"}
	if err := writeRow(f, PackingSheet, 1, toAny(headers)); err != nil {
		return err
	}

	row := 2
	total := 0
	for _, doc := range resp.Documents {
		for _, r := range doc.PackingItems {
			if err := writeRow(f, PackingSheet, row, []any{r.ParcelID, r.MaterialNo, r.Quantity, doc.Filename}); err != nil {
				return err
			}
			total += r.Quantity
			row++
		}
	}

	if err := writeRow(f, PackingSheet, row, []any{"Total", nil, total, nil}); err != nil {
		return err
	}

	_ = f.SetColWidth(PackingSheet, "A", "B", 16)
	_ = f.SetColWidth(PackingSheet, "C", "C", 8)
	_ = f.SetColWidth(PackingSheet, "D", "D", 40)
	return nil
}

// writeRow sets the cells of one row, leaving nil values empty.
func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
