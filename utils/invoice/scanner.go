package invoice

import (
	"strconv"
	"strings"

	"github.com/Aashish23092/supplier-doc-extractor/dto"
	"github.com/Aashish23092/supplier-doc-extractor/utils/policy"
)

// Scanner reads invoice text line by line and remembers the last invoice
// number it saw. Use one Scanner per document.
type Scanner struct {
	policy    *policy.Compiled
	invoiceNo *string
}

func NewScanner(p *policy.Compiled) *Scanner {
	return &Scanner{policy: p}
}

// InvoiceNo returns the current invoice number, or nil if none was seen yet.
func (s *Scanner) InvoiceNo() *string { return s.invoiceNo }

// ScanLine processes one line of text. It returns false for lines that do not
// hold a line item.
func (s *Scanner) ScanLine(line string) (dto.InvoiceLineRecord, bool) {
	if strings.TrimSpace(line) == "" {
		return dto.InvoiceLineRecord{}, false
	}

	if m := s.policy.InvoiceNo.FindStringSubmatch(line); m != nil {
		no := m[len(m)-1]
		s.invoiceNo = &no
	}

	lower := strings.ToLower(strings.TrimSpace(line))
	for _, prefix := range s.policy.SkipPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return dto.InvoiceLineRecord{}, false
		}
	}

	tok := strings.Fields(line)
	n := len(tok)
	if n < s.policy.MinTokens {
		return dto.InvoiceLineRecord{}, false
	}

	if !s.policy.Decimal.MatchString(tok[n-1]) || !s.policy.Decimal.MatchString(tok[n-2]) {
		return dto.InvoiceLineRecord{}, false
	}

	k := s.anchor(tok)
	if k < 0 {
		return dto.InvoiceLineRecord{}, false
	}

	qty, err := strconv.Atoi(tok[k-1])
	if err != nil {
		return dto.InvoiceLineRecord{}, false
	}

	supplier := ""
	for _, t := range tok[:k-1] {
		if s.policy.Supplier.MatchString(t) {
			supplier = t
			break
		}
	}
	if supplier == "" {
		return dto.InvoiceLineRecord{}, false
	}

	rec := dto.InvoiceLineRecord{
		SupplierID: supplier,
		Quantity:   qty,
		NetPrice:   ParseEUNumber(tok[n-2]),
		TotalNet:   ParseEUNumber(tok[n-1]),
	}
	if s.invoiceNo != nil {
		no := *s.invoiceNo
		rec.InvoiceNo = &no
	}
	return rec, true
}

// anchor scans from the right for the country code / customs code / quantity
// triple and returns the index of the country code, or -1. The rightmost
// match wins.
func (s *Scanner) anchor(tok []string) int {
	for k := len(tok) - 3; k >= 2; k-- {
		if s.policy.Country.MatchString(tok[k]) &&
			s.policy.Customs.MatchString(tok[k+1]) &&
			s.policy.InvoiceQuantity.MatchString(tok[k-1]) {
			return k
		}
	}
	return -1
}

// Parse scans the pages of one document in order. The invoice number carries
// over across lines and pages.
func Parse(pages []string, p *policy.Compiled) []dto.InvoiceLineRecord {
	s := NewScanner(p)
	var records []dto.InvoiceLineRecord
	for _, text := range pages {
		for _, line := range strings.Split(text, "\n") {
			if rec, ok := s.ScanLine(line); ok {
				records = append(records, rec)
			}
		}
	}
	return records
}

// ParseEUNumber converts a number written with '.' thousands separators and a
// ',' decimal separator. It returns nil when the text is not a number.
func ParseEUNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
