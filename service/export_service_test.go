package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/supplier-doc-extractor/dto"
)

func TestExportXLSX(t *testing.T) {
	price, total := 12.5, 125.0
	inv := "695000001"
	resp := &dto.ExtractionResponse{
		Documents: []dto.DocumentResult{
			{
				Filename: "invoice.pdf",
				InvoiceLines: []dto.InvoiceLineRecord{
					{SupplierID: "10012345", Quantity: 5, NetPrice: &price, TotalNet: &total, InvoiceNo: &inv},
					{SupplierID: "10012345", Quantity: 5, TotalNet: &total},
				},
			},
			{
				Filename: "packing.pdf",
				PackingItems: []dto.PackingItemRecord{
					{ParcelID: "900123", MaterialNo: "12345", Quantity: 7},
					{ParcelID: "900123", MaterialNo: "12345", Quantity: 7},
				},
			},
		},
	}

	data, err := NewExportService().ExportXLSX(resp)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{InvoiceSheet, PackingSheet}, f.GetSheetList())

	invRows, err := f.GetRows(InvoiceSheet)
	require.NoError(t, err)
	require.Len(t, invRows, 3)
	assert.Equal(t, []string{"Supplier_ID", "Qty", "Net Price", "Tot. Net Value", "InvoiceNo", "Source File"}, invRows[0])
	assert.Equal(t, []string{"10012345", "5", "12.5", "125", "695000001", "invoice.pdf"}, invRows[1])
	assert.Equal(t, "", invRows[2][2], "missing net price leaves the cell empty")
	assert.Equal(t, "", invRows[2][4])

	packRows, err := f.GetRows(PackingSheet)
	require.NoError(t, err)
	require.Len(t, packRows, 4)
	assert.Equal(t, []string{"900123", "12345", "7", "packing.pdf"}, packRows[1])
	assert.Equal(t, packRows[1], packRows[2])
	assert.Equal(t, "Total", packRows[3][0])
	assert.Equal(t, "14", packRows[3][2])
}

func TestExportXLSXEmpty(t *testing.T) {
	data, err := NewExportService().ExportXLSX(&dto.ExtractionResponse{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	packRows, err := f.GetRows(PackingSheet)
	require.NoError(t, err)
	require.Len(t, packRows, 2)
	assert.Equal(t, "0", packRows[1][2])
}
