package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalary_Range(t *testing.T) {
	got := ParseSalary("45000-65000")
	require.NotNil(t, got.Min)
	require.NotNil(t, got.Max)
	assert.Equal(t, 45000.0, *got.Min)
	assert.Equal(t, 65000.0, *got.Max)
	assert.Equal(t, 55000.0, *got.Avg)
	assert.Equal(t, "EUR", got.Currency)
}

func TestParseSalary_KSuffixShorthand(t *testing.T) {
	got := ParseSalary("45k-65k")
	require.NotNil(t, got.Min)
	assert.Equal(t, 45000.0, *got.Min)
	assert.Equal(t, 65000.0, *got.Max)
}

func TestParseSalary_EuropeanSeparators(t *testing.T) {
	got := ParseSalary("€55.000")
	require.NotNil(t, got.Min)
	assert.Equal(t, 55000.0, *got.Min)
	assert.Equal(t, 55000.0, *got.Max)
	assert.Equal(t, "EUR", got.Currency)

	got = ParseSalary("40.000,50 - 60.000,50 €")
	require.NotNil(t, got.Min)
	assert.InDelta(t, 40000.50, *got.Min, 0.001)
	assert.InDelta(t, 60000.50, *got.Max, 0.001)
}

func TestParseSalary_CurrencyDetection(t *testing.T) {
	assert.Equal(t, "USD", ParseSalary("$80,000").Currency)
	assert.Equal(t, "GBP", ParseSalary("£50000").Currency)
	assert.Equal(t, "EUR", ParseSalary("50000").Currency)
}

func TestParseSalary_Unparseable(t *testing.T) {
	for _, raw := range []string{"Competitive", "Marktgerecht", "", "negotiable"} {
		got := ParseSalary(raw)
		assert.Nil(t, got.Min, "input %q", raw)
		assert.Nil(t, got.Max, "input %q", raw)
		assert.Nil(t, got.Avg, "input %q", raw)
		assert.Equal(t, "EUR", got.Currency, "input %q", raw)
	}
}

func TestParseSalary_SwappedBounds(t *testing.T) {
	got := ParseSalary("65k-45k")
	require.NotNil(t, got.Min)
	assert.LessOrEqual(t, *got.Min, *got.Max)
}

func TestParseSalary_GermanRangeWord(t *testing.T) {
	got := ParseSalary("45.000 bis 60.000 EUR")
	require.NotNil(t, got.Min)
	assert.Equal(t, 45000.0, *got.Min)
	assert.Equal(t, 60000.0, *got.Max)
}
