package service

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/supplier-doc-extractor/dto"
)

func glyph(s string, x, y float64) pdf.Text {
	return pdf.Text{Font: "Helvetica", FontSize: 10, X: x, Y: y, W: 6, S: s}
}

func TestMergeGlyphs(t *testing.T) {
	chars := []pdf.Text{
		glyph("7", 410, 700),
		glyph("1", 110, 700.2),
		glyph("2", 116, 700),
		glyph(" ", 122, 700),
		glyph("A", 128, 700),
		glyph("B", 300, 680),
		glyph("C", 306, 680),
	}

	words := mergeGlyphs(chars)

	require.Len(t, words, 4)
	assert.Equal(t, "12", words[0].S)
	assert.Equal(t, 110.0, words[0].X)
	assert.Equal(t, 12.0, words[0].W)
	assert.Equal(t, "A", words[1].S)
	assert.Equal(t, "7", words[2].S)
	assert.Equal(t, "BC", words[3].S)
}

func TestMergeGlyphsSplitsOnWideGap(t *testing.T) {
	words := mergeGlyphs([]pdf.Text{glyph("1", 100, 500), glyph("2", 130, 500)})

	require.Len(t, words, 2)
	assert.Equal(t, "1", words[0].S)
	assert.Equal(t, "2", words[1].S)
}

func TestPageText(t *testing.T) {
	p := &pdfProcessor{rowTolerance: 3}
	text := p.pageText([]dto.Token{
		{Text: "line", X0: 10, X1: 30, Top: 50},
		{Text: "second", X0: 40, X1: 70, Top: 51},
		{Text: "Invoice", X0: 10, X1: 40, Top: 20},
	})

	assert.Equal(t, "Invoice\nline second\n", text)
}

func TestDecryptWithoutPasswordIsNoop(t *testing.T) {
	data := []byte("%PDF-1.4")
	out, err := decrypt(data, "")
	require.NoError(t, err)
	assert.Equal(t, data, out)
}
