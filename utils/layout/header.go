package layout

import (
	"math"
	"strings"

	"github.com/Aashish23092/supplier-doc-extractor/dto"
	"github.com/Aashish23092/supplier-doc-extractor/utils/policy"
)

// ColumnWindow is a horizontal acceptance interval for one column.
type ColumnWindow struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether x lies inside the window, bounds included
func (w ColumnWindow) Contains(x float64) bool {
	return x >= w.Low && x <= w.High
}

// Header is the located header row of a packing-list page.
type Header struct {
	Top      float64
	Material ColumnWindow
	Quantity ColumnWindow
}

// LocateHeader finds the first row carrying both a quantity label token and a
// token containing the material label, and calibrates the column windows
// from the label tokens. The bool is false when no row qualifies; callers
// must then extract nothing from the page.
func LocateHeader(rows []VisualRow, hp policy.HeaderPolicy) (Header, bool) {
	for _, row := range rows {
		var qtyTokens, matTokens []dto.Token
		for _, t := range row.Tokens {
			text := strings.ToLower(strings.TrimSpace(t.Text))
			if isQuantityLabel(text, hp.QuantityLabels) {
				qtyTokens = append(qtyTokens, t)
			}
			if strings.Contains(text, hp.MaterialLabel) {
				matTokens = append(matTokens, t)
			}
		}
		if len(qtyTokens) == 0 || len(matTokens) == 0 {
			continue
		}

		return Header{
			Top:      row.Top,
			Material: window(matTokens, hp.MaterialMarginLow, hp.MaterialMarginHigh),
			Quantity: window(qtyTokens, hp.QuantityMarginLow, hp.QuantityMarginHigh),
		}, true
	}
	return Header{}, false
}

// RowsBelow returns the rows strictly below the header.
func RowsBelow(rows []VisualRow, h Header) []VisualRow {
	var out []VisualRow
	for _, row := range rows {
		if row.Top > h.Top {
			out = append(out, row)
		}
	}
	return out
}

func isQuantityLabel(text string, labels []string) bool {
	for _, l := range labels {
		if text == l {
			return true
		}
	}
	return false
}

func window(tokens []dto.Token, marginLow, marginHigh float64) ColumnWindow {
	low, high := math.Inf(1), math.Inf(-1)
	for _, t := range tokens {
		low = math.Min(low, t.X0)
		high = math.Max(high, t.X1)
	}
	return ColumnWindow{Low: low - marginLow, High: high + marginHigh}
}
