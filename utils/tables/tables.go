package tables

import "github.com/Aashish23092/supplier-doc-extractor/dto"

// PackingTable keeps packing records in the order they were emitted.
// Duplicates are kept.
type PackingTable struct {
	rows []dto.PackingItemRecord
}

func (t *PackingTable) Append(records ...dto.PackingItemRecord) {
	t.rows = append(t.rows, records...)
}

// Rows returns a copy of the table rows.
func (t *PackingTable) Rows() []dto.PackingItemRecord {
	out := make([]dto.PackingItemRecord, len(t.rows))
	copy(out, t.rows)
	return out
}

func (t *PackingTable) Len() int { return len(t.rows) }

// TotalQuantity sums the quantity column. It is recomputed on every call.
func (t *PackingTable) TotalQuantity() int {
	total := 0
	for _, r := range t.rows {
		total += r.Quantity
	}
	return total
}

// InvoiceTable keeps invoice records in the order they were emitted.
// Duplicates are kept.
type InvoiceTable struct {
	rows []dto.InvoiceLineRecord
}

func (t *InvoiceTable) Append(records ...dto.InvoiceLineRecord) {
	t.rows = append(t.rows, records...)
}

// Rows returns a copy of the table rows.
func (t *InvoiceTable) Rows() []dto.InvoiceLineRecord {
	out := make([]dto.InvoiceLineRecord, len(t.rows))
	copy(out, t.rows)
	return out
}

func (t *InvoiceTable) Len() int { return len(t.rows) }
