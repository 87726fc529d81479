package policy

import (
	"fmt"
	"regexp"
	"strings"
)

// Policy is the full set of extraction constants for one supplier document
// template. Patterns are kept as strings so a policy can be loaded from a
// file; Compile turns it into the form the scanners use.
type Policy struct {
	Layout  LayoutPolicy  `yaml:"layout"`
	Header  HeaderPolicy  `yaml:"header"`
	Packing PackingPolicy `yaml:"packing"`
	Invoice InvoicePolicy `yaml:"invoice"`
}

// LayoutPolicy controls how positioned tokens are bucketed into rows.
type LayoutPolicy struct {
	RowTolerance float64 `yaml:"row_tolerance"`
	TopPrecision int     `yaml:"top_precision"`
}

// HeaderPolicy describes the packing-list header row and the margins used to
// turn its label positions into column windows.
type HeaderPolicy struct {
	QuantityLabels     []string `yaml:"quantity_labels"`
	MaterialLabel      string   `yaml:"material_label"`
	QuantityMarginLow  float64  `yaml:"quantity_margin_low"`
	QuantityMarginHigh float64  `yaml:"quantity_margin_high"`
	MaterialMarginLow  float64  `yaml:"material_margin_low"`
	MaterialMarginHigh float64  `yaml:"material_margin_high"`
}

type PackingPolicy struct {
	DocumentMarkers []string `yaml:"document_markers"`
	GroupKeywords   []string `yaml:"group_keywords"`
	GroupIDPattern  string   `yaml:"group_id_pattern"`
	MaterialPattern string   `yaml:"material_pattern"`
	QuantityPattern string   `yaml:"quantity_pattern"`
	SkipPatterns    []string `yaml:"skip_patterns"`
	// MaxQuantity rejects in-window digit tokens above it, which are usually
	// weights or codes. Zero disables the bound.
	MaxQuantity int `yaml:"max_quantity"`
}

type InvoicePolicy struct {
	InvoiceNoPattern string   `yaml:"invoice_no_pattern"`
	SkipPrefixes     []string `yaml:"skip_prefixes"`
	MinTokens        int      `yaml:"min_tokens"`
	DecimalPattern   string   `yaml:"decimal_pattern"`
	CountryPattern   string   `yaml:"country_pattern"`
	CustomsPattern   string   `yaml:"customs_pattern"`
	QuantityPattern  string   `yaml:"quantity_pattern"`
	SupplierPattern  string   `yaml:"supplier_pattern"`
}

// Default returns the policy for the supported supplier documents.
func Default() Policy {
	return Policy{
		Layout: LayoutPolicy{
			RowTolerance: 3,
			TopPrecision: 1,
		},
		Header: HeaderPolicy{
			QuantityLabels:     []string{"quantity"},
			MaterialLabel:      "material",
			QuantityMarginLow:  10,
			QuantityMarginHigh: 60,
			MaterialMarginLow:  5,
			MaterialMarginHigh: 5,
		},
		Packing: PackingPolicy{
			DocumentMarkers: []string{"packing list"},
			GroupKeywords:   []string{"pallet", "palette"},
			GroupIDPattern:  `^\d{6,}$`,
			MaterialPattern: `^\d{4,8}$`,
			QuantityPattern: `^\d+$`,
			SkipPatterns: []string{
				`(?i)dimension`,
				`(?i)weight`,
				`(?i)\bgross\b`,
				`(?i)\btotal\b`,
				`(?i)\bvolume\b`,
				`(?i)\bkgs?\b`,
			},
			MaxQuantity: 100000,
		},
		Invoice: InvoicePolicy{
			InvoiceNoPattern: `\b(695\d{6})\b`,
			SkipPrefixes: []string{
				"your order:",
				"delivery note:",
				"goods value",
				"vat rate",
				"transport cost",
				"currency",
				"total gross value",
				"net price without vat",
			},
			MinTokens:       7,
			DecimalPattern:  `^[\d.,]+$`,
			CountryPattern:  `^[A-Z]{2}$`,
			CustomsPattern:  `^\d{6,8}$`,
			QuantityPattern: `^\d+$`,
			SupplierPattern: `^\d+$`,
		},
	}
}

// Compiled is a validated policy with its patterns compiled.
type Compiled struct {
	Layout LayoutPolicy
	Header HeaderPolicy

	DocumentMarkers []string
	GroupKeywords   []string
	GroupID         *regexp.Regexp
	Material        *regexp.Regexp
	PackingQuantity *regexp.Regexp
	Skip            []*regexp.Regexp
	MaxQuantity     int

	InvoiceNo       *regexp.Regexp
	SkipPrefixes    []string
	MinTokens       int
	Decimal         *regexp.Regexp
	Country         *regexp.Regexp
	Customs         *regexp.Regexp
	InvoiceQuantity *regexp.Regexp
	Supplier        *regexp.Regexp
}

// Compile validates the policy and compiles its patterns. Keywords, labels
// and prefixes are lowercased so matching is case-insensitive.
func (p Policy) Compile() (*Compiled, error) {
	if p.Layout.RowTolerance <= 0 {
		return nil, fmt.Errorf("layout.row_tolerance must be positive, got %v", p.Layout.RowTolerance)
	}
	if p.Layout.TopPrecision < 0 {
		return nil, fmt.Errorf("layout.top_precision must not be negative, got %d", p.Layout.TopPrecision)
	}
	if len(p.Header.QuantityLabels) == 0 || strings.TrimSpace(p.Header.MaterialLabel) == "" {
		return nil, fmt.Errorf("header labels must not be empty")
	}
	if p.Invoice.MinTokens < 4 {
		return nil, fmt.Errorf("invoice.min_tokens must be at least 4, got %d", p.Invoice.MinTokens)
	}

	c := &Compiled{
		Layout:          p.Layout,
		Header:          p.Header,
		DocumentMarkers: lowerAll(p.Packing.DocumentMarkers),
		GroupKeywords:   lowerAll(p.Packing.GroupKeywords),
		MaxQuantity:     p.Packing.MaxQuantity,
		SkipPrefixes:    lowerAll(p.Invoice.SkipPrefixes),
		MinTokens:       p.Invoice.MinTokens,
	}
	c.Header.QuantityLabels = lowerAll(p.Header.QuantityLabels)
	c.Header.MaterialLabel = strings.ToLower(p.Header.MaterialLabel)

	patterns := []struct {
		name string
		expr string
		dst  **regexp.Regexp
	}{
		{"packing.group_id_pattern", p.Packing.GroupIDPattern, &c.GroupID},
		{"packing.material_pattern", p.Packing.MaterialPattern, &c.Material},
		{"packing.quantity_pattern", p.Packing.QuantityPattern, &c.PackingQuantity},
		{"invoice.invoice_no_pattern", p.Invoice.InvoiceNoPattern, &c.InvoiceNo},
		{"invoice.decimal_pattern", p.Invoice.DecimalPattern, &c.Decimal},
		{"invoice.country_pattern", p.Invoice.CountryPattern, &c.Country},
		{"invoice.customs_pattern", p.Invoice.CustomsPattern, &c.Customs},
		{"invoice.quantity_pattern", p.Invoice.QuantityPattern, &c.InvoiceQuantity},
		{"invoice.supplier_pattern", p.Invoice.SupplierPattern, &c.Supplier},
	}
	for _, pat := range patterns {
		if pat.expr == "" {
			return nil, fmt.Errorf("%s must not be empty", pat.name)
		}
		re, err := regexp.Compile(pat.expr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pat.name, err)
		}
		*pat.dst = re
	}

	for i, expr := range p.Packing.SkipPatterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("packing.skip_patterns[%d]: %w", i, err)
		}
		c.Skip = append(c.Skip, re)
	}

	return c, nil
}

// MustDefault compiles the default policy. It panics only if Default itself
// is broken.
func MustDefault() *Compiled {
	c, err := Default().Compile()
	if err != nil {
		panic(err)
	}
	return c
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
