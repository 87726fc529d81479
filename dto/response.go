package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// DocumentResult holds the two tables extracted from a single document
type DocumentResult struct {
	Filename      string              `json:"filename"`
	Source        string              `json:"source"` // "pdf_text", "pdf_ocr" or "image_ocr"
	Pages         int                 `json:"pages"`
	InvoiceLines  []InvoiceLineRecord `json:"invoice_lines"`
	PackingItems  []PackingItemRecord `json:"packing_items"`
	InvoiceCount  int                 `json:"invoice_count"`
	PackingCount  int                 `json:"packing_count"`
	TotalQuantity int                 `json:"packing_total_quantity"`
	Issues        []string            `json:"issues,omitempty"`
	Error         string              `json:"error,omitempty"`
}

// ExtractionResponse is the final response structure. The combined tables
// concatenate every document's tables in upload order.
type ExtractionResponse struct {
	ExtractionID  string              `json:"extraction_id"`
	Documents     []DocumentResult    `json:"documents"`
	InvoiceLines  []InvoiceLineRecord `json:"invoice_lines"`
	PackingItems  []PackingItemRecord `json:"packing_items"`
	InvoiceCount  int                 `json:"invoice_count"`
	PackingCount  int                 `json:"packing_count"`
	TotalQuantity int                 `json:"packing_total_quantity"`
	ProcessedAt   string              `json:"processed_at"`
}
