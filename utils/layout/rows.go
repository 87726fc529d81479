package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/Aashish23092/supplier-doc-extractor/dto"
)

// VisualRow is a set of tokens sharing a vertical position, ordered left to
// right. Top is the rounded top of the row's first token.
type VisualRow struct {
	Top    float64
	Tokens []dto.Token
}

// Text joins the row's token texts with single spaces
func (r VisualRow) Text() string {
	parts := make([]string, len(r.Tokens))
	for i, t := range r.Tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// GroupRows buckets the tokens of one page into visual rows ordered top to
// bottom. Tops are rounded to precision decimals first so near-equal values
// collapse the same way on every run; a token joins the current row when its
// rounded top is within tolerance of the row's anchor.
func GroupRows(tokens []dto.Token, tolerance float64, precision int) []VisualRow {
	if len(tokens) == 0 {
		return nil
	}

	type placed struct {
		tok dto.Token
		top float64
	}

	sorted := make([]placed, 0, len(tokens))
	for _, t := range tokens {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		sorted = append(sorted, placed{tok: t, top: roundTo(t.Top, precision)})
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].top != sorted[j].top {
			return sorted[i].top < sorted[j].top
		}
		return sorted[i].tok.X0 < sorted[j].tok.X0
	})

	var rows []VisualRow
	for _, p := range sorted {
		n := len(rows)
		if n > 0 && math.Abs(p.top-rows[n-1].Top) < tolerance {
			rows[n-1].Tokens = append(rows[n-1].Tokens, p.tok)
			continue
		}
		rows = append(rows, VisualRow{Top: p.top, Tokens: []dto.Token{p.tok}})
	}

	for i := range rows {
		sortLeftToRight(rows[i].Tokens)
	}
	return rows
}

func sortLeftToRight(tokens []dto.Token) {
	sort.SliceStable(tokens, func(i, j int) bool {
		a, b := tokens[i], tokens[j]
		if a.X0 != b.X0 {
			return a.X0 < b.X0
		}
		if a.X1 != b.X1 {
			return a.X1 < b.X1
		}
		return a.Text < b.Text
	})
}

func roundTo(v float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	return math.Round(v*scale) / scale
}
