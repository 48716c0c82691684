package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobminer/internal/types"
)

func techKeywords(texts ...string) []types.Keyword {
	kws := make([]types.Keyword, len(texts))
	for i, text := range texts {
		kws[i] = types.Keyword{KeywordID: i + 1, Text: text, Category: types.CategoryTechStack}
	}
	return kws
}

func TestMatcher_WordBoundary(t *testing.T) {
	m, err := NewMatcher(techKeywords("Python"))
	require.NoError(t, err)

	assert.NotEmpty(t, m.Match("We use Python daily"))
	assert.NotEmpty(t, m.Match("python, sql"))
	assert.Empty(t, m.Match("A very Pythonic codebase"), "must not match inside a longer word")
	assert.Empty(t, m.Match("micropython boards"))
}

func TestMatcher_SymbolTerms(t *testing.T) {
	m, err := NewMatcher(techKeywords("C++", "C#", ".NET"))
	require.NoError(t, err)

	got := m.Match("Looking for a C++ developer with .NET and C# exposure")
	require.NotEmpty(t, got)
	byText := got[types.CategoryTechStack]
	assert.Contains(t, byText, "C++")
	assert.Contains(t, byText, "C#")
	assert.Contains(t, byText, ".NET")
}

func TestMatcher_MultiWordIrregularWhitespace(t *testing.T) {
	m, err := NewMatcher(techKeywords("machine learning"))
	require.NoError(t, err)

	assert.NotEmpty(t, m.Match("strong machine learning background"))
	assert.NotEmpty(t, m.Match("machine   learning models"))
	assert.NotEmpty(t, m.Match("Machine\tLearning pipelines"))
	assert.NotEmpty(t, m.Match("machine\u00a0learning models"))
	assert.Empty(t, m.Match("machinelearning"))
}

func TestMatcher_CaseInsensitiveCanonicalText(t *testing.T) {
	m, err := NewMatcher(techKeywords("PostgreSQL"))
	require.NoError(t, err)

	got := m.Match("experience with postgresql required")
	byText := got[types.CategoryTechStack]
	require.Len(t, byText, 1)
	// The canonical spelling is reported, not the matched one.
	assert.Contains(t, byText, "PostgreSQL")
}

func TestMatcher_CountsOccurrences(t *testing.T) {
	m, err := NewMatcher(techKeywords("Python", "SQL"))
	require.NoError(t, err)

	got := m.Match("Python and SQL; more Python")
	byText := got[types.CategoryTechStack]
	assert.Equal(t, 2, byText["Python"])
	assert.Equal(t, 1, byText["SQL"])
}

func TestMatcher_SeparatePatternsPerCategory(t *testing.T) {
	kws := []types.Keyword{
		{KeywordID: 1, Text: "Python", Category: types.CategoryTechStack},
		{KeywordID: 2, Text: "PMP", Category: types.CategoryCertification},
		{KeywordID: 3, Text: "home office", Category: types.CategoryBenefit},
	}
	m, err := NewMatcher(kws)
	require.NoError(t, err)

	got := m.Match("Python shop, PMP certified, home office possible")
	assert.Len(t, got, 3)
	assert.Contains(t, got[types.CategoryTechStack], "Python")
	assert.Contains(t, got[types.CategoryCertification], "PMP")
	assert.Contains(t, got[types.CategoryBenefit], "home office")
}

func TestMatcher_RejectsInvalidKeyword(t *testing.T) {
	_, err := NewMatcher([]types.Keyword{{KeywordID: 1, Text: "", Category: types.CategoryTechStack}})
	assert.Error(t, err)
}
