package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCompiles(t *testing.T) {
	c, err := Default().Compile()
	require.NoError(t, err)

	assert.True(t, c.InvoiceNo.MatchString("Invoice 695123456 dated"))
	assert.False(t, c.InvoiceNo.MatchString("6951234567"))
	assert.Equal(t, []string{"quantity"}, c.Header.QuantityLabels)
	assert.Equal(t, "material", c.Header.MaterialLabel)
	assert.Len(t, c.Skip, len(Default().Packing.SkipPatterns))
	assert.Equal(t, 100000, c.MaxQuantity)
}

func TestCompileLowercasesKeywords(t *testing.T) {
	p := Default()
	p.Packing.GroupKeywords = []string{" PALLET ", ""}
	p.Invoice.SkipPrefixes = []string{"Currency"}

	c, err := p.Compile()
	require.NoError(t, err)

	assert.Equal(t, []string{"pallet"}, c.GroupKeywords)
	assert.Equal(t, []string{"currency"}, c.SkipPrefixes)
}

func TestCompileRejectsInvalidPolicy(t *testing.T) {
	p := Default()
	p.Invoice.CountryPattern = "[A-Z"
	_, err := p.Compile()
	assert.ErrorContains(t, err, "invoice.country_pattern")

	p = Default()
	p.Layout.RowTolerance = 0
	_, err = p.Compile()
	assert.Error(t, err)

	p = Default()
	p.Header.MaterialLabel = " "
	_, err = p.Compile()
	assert.Error(t, err)

	p = Default()
	p.Packing.SkipPatterns = []string{"("}
	_, err = p.Compile()
	assert.ErrorContains(t, err, "packing.skip_patterns[0]")
}
