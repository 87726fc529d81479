package layout

import (
	"testing"

	"github.com/Aashish23092/supplier-doc-extractor/dto"
	"github.com/Aashish23092/supplier-doc-extractor/utils/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(text string, x0, x1, top float64) dto.Token {
	return dto.Token{Text: text, X0: x0, X1: x1, Top: top, Page: 1}
}

func TestGroupRows(t *testing.T) {
	tokens := []dto.Token{
		tok("world", 60, 90, 10.4),
		tok("second", 10, 50, 30),
		tok("hello", 10, 50, 10),
		tok("row", 60, 80, 31.2),
		tok("   ", 100, 110, 10),
	}

	rows := GroupRows(tokens, 3, 1)

	require.Len(t, rows, 2)
	assert.Equal(t, "hello world", rows[0].Text())
	assert.Equal(t, 10.0, rows[0].Top)
	assert.Equal(t, "second row", rows[1].Text())
}

func TestGroupRowsOrdersTokensLeftToRight(t *testing.T) {
	tokens := []dto.Token{
		tok("c", 300, 310, 50),
		tok("a", 100, 110, 51),
		tok("b", 200, 210, 49.5),
	}

	rows := GroupRows(tokens, 3, 1)

	require.Len(t, rows, 1)
	assert.Equal(t, "a b c", rows[0].Text())
}

func TestGroupRowsRoundsBeforeBucketing(t *testing.T) {
	// 12.96 and 13.04 both round to 13.0 and land in the same row even with
	// a tolerance smaller than their raw difference.
	tokens := []dto.Token{
		tok("b", 50, 60, 13.04),
		tok("a", 10, 20, 12.96),
	}

	rows := GroupRows(tokens, 0.05, 1)

	require.Len(t, rows, 1)
	assert.Equal(t, "a b", rows[0].Text())
}

func TestGroupRowsIsDeterministic(t *testing.T) {
	tokens := []dto.Token{
		tok("x", 10, 20, 100),
		tok("y", 10, 20, 100),
		tok("z", 5, 20, 101),
	}

	first := GroupRows(tokens, 3, 1)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, GroupRows(tokens, 3, 1))
	}
	assert.Equal(t, "z x y", first[0].Text())
}

func TestGroupRowsEmpty(t *testing.T) {
	assert.Nil(t, GroupRows(nil, 3, 1))
}

func headerPolicy() policy.HeaderPolicy {
	return policy.MustDefault().Header
}

func TestLocateHeader(t *testing.T) {
	rows := GroupRows([]dto.Token{
		tok("PACKING", 10, 60, 5),
		tok("LIST", 65, 90, 5),
		tok("Pos", 20, 40, 20),
		tok("Material-No.", 105, 155, 20),
		tok("Description", 200, 260, 20),
		tok("Quantity", 410, 450, 20),
	}, 3, 1)

	h, ok := LocateHeader(rows, headerPolicy())

	require.True(t, ok)
	assert.Equal(t, 20.0, h.Top)
	assert.Equal(t, ColumnWindow{Low: 100, High: 160}, h.Material)
	assert.Equal(t, ColumnWindow{Low: 400, High: 510}, h.Quantity)
}

func TestLocateHeaderNeedsBothLabelsOnOneRow(t *testing.T) {
	rows := GroupRows([]dto.Token{
		tok("Material", 100, 150, 20),
		tok("Quantity", 400, 450, 40),
	}, 3, 1)

	_, ok := LocateHeader(rows, headerPolicy())
	assert.False(t, ok)
}

func TestLocateHeaderQuantityIsExactLabel(t *testing.T) {
	rows := GroupRows([]dto.Token{
		tok("Material", 100, 150, 20),
		tok("Quantity:", 400, 450, 20),
	}, 3, 1)

	_, ok := LocateHeader(rows, headerPolicy())
	assert.False(t, ok)
}

func TestRowsBelow(t *testing.T) {
	rows := []VisualRow{
		{Top: 10, Tokens: []dto.Token{tok("above", 0, 1, 10)}},
		{Top: 20, Tokens: []dto.Token{tok("header", 0, 1, 20)}},
		{Top: 30, Tokens: []dto.Token{tok("below", 0, 1, 30)}},
	}

	below := RowsBelow(rows, Header{Top: 20})

	require.Len(t, below, 1)
	assert.Equal(t, "below", below[0].Text())
}

func TestColumnWindowContains(t *testing.T) {
	w := ColumnWindow{Low: 100, High: 160}
	assert.True(t, w.Contains(100))
	assert.True(t, w.Contains(160))
	assert.True(t, w.Contains(110))
	assert.False(t, w.Contains(99.9))
	assert.False(t, w.Contains(160.1))
}
