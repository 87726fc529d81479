package dto

// Token is a positioned word recovered from a page. Top grows downward.
type Token struct {
	Text string  `json:"text"`
	X0   float64 `json:"x0"`
	X1   float64 `json:"x1"`
	Top  float64 `json:"top"`
	Page int     `json:"page"`
}

// Page is one decoded document page: its plain text and its positioned words.
// Tokens may be empty when only text could be recovered.
type Page struct {
	Number int     `json:"number"`
	Text   string  `json:"text"`
	Tokens []Token `json:"tokens,omitempty"`
}

// PackingItemRecord is one item row of a packing list.
type PackingItemRecord struct {
	ParcelID   string `json:"parcel_id"`
	MaterialNo string `json:"material_no"`
	Quantity   int    `json:"quantity"`
}

// InvoiceLineRecord is one line item of an invoice. Numeric fields that
// could not be parsed are nil and serialise as null.
type InvoiceLineRecord struct {
	SupplierID string   `json:"supplier_id"`
	Quantity   int      `json:"quantity"`
	NetPrice   *float64 `json:"net_price"`
	TotalNet   *float64 `json:"total_net"`
	InvoiceNo  *string  `json:"invoice_no"`
}
