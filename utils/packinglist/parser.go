package packinglist

import (
	"strings"

	"github.com/Aashish23092/supplier-doc-extractor/dto"
	"github.com/Aashish23092/supplier-doc-extractor/utils/layout"
	"github.com/Aashish23092/supplier-doc-extractor/utils/policy"
)

// Parse extracts packing items from the pages of one document in page order.
// Pages without the document marker or without a header row contribute
// nothing. The group id carries over from one page to the next.
func Parse(pages []dto.Page, p *policy.Compiled) []dto.PackingItemRecord {
	c := NewClassifier(p)
	var records []dto.PackingItemRecord

	for _, page := range pages {
		if !IsPackingPage(page.Text, p) {
			continue
		}

		rows := layout.GroupRows(page.Tokens, p.Layout.RowTolerance, p.Layout.TopPrecision)
		header, ok := layout.LocateHeader(rows, p.Header)
		if !ok {
			continue
		}

		for _, row := range layout.RowsBelow(rows, header) {
			if rec, ok := c.Classify(row, header); ok {
				records = append(records, rec)
			}
		}
	}

	return records
}

// IsPackingPage reports whether a page's plain text carries one of the
// packing-list markers.
func IsPackingPage(text string, p *policy.Compiled) bool {
	lower := strings.ToLower(text)
	for _, m := range p.DocumentMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
