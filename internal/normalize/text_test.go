package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_StripsTagsAndEntities(t *testing.T) {
	got := CleanText("<p>Senior&nbsp;Engineer &amp; Architect</p>")
	assert.Equal(t, "Senior Engineer & Architect", got)
}

func TestCleanText_ListItemsKeepBoundaries(t *testing.T) {
	got := CleanText("<ul><li>Python</li><li>SQL</li></ul>")
	assert.Contains(t, got, "Python")
	assert.Contains(t, got, "SQL")
	assert.NotContains(t, got, "PythonSQL")
}

func TestCleanText_UnicodeSpacesCollapsed(t *testing.T) {
	// NBSP and narrow no-break space survive entity decoding and must
	// not leak into dedup keys or keyword matching.
	got := CleanText("Java\u00a0Developer \u202f(m/w/d)")
	assert.Equal(t, "Java Developer (m/w/d)", got)
}

func TestCleanText_CollapsesWhitespace(t *testing.T) {
	got := CleanText("  Data\t\tScientist \n (m/w/d)  ")
	assert.Equal(t, "Data Scientist (m/w/d)", got)
}

func TestCleanText_Idempotent(t *testing.T) {
	inputs := []string{
		"<b>Backend</b> Developer",
		"Plain title",
		"Köln &ndash; Hybrid",
	}
	for _, in := range inputs {
		once := CleanText(in)
		assert.Equal(t, once, CleanText(once), "input %q", in)
	}
}

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n\t "))
}
