package types

import "fmt"

// KeywordCategory classifies a curated keyword.
type KeywordCategory string

const (
	CategoryTechStack     KeywordCategory = "tech-stack"
	CategorySoftSkill     KeywordCategory = "soft-skill"
	CategoryBenefit       KeywordCategory = "benefit"
	CategoryCertification KeywordCategory = "certification"
	CategoryEducation     KeywordCategory = "education"
)

// AllKeywordCategories lists every valid category in a stable order.
var AllKeywordCategories = []KeywordCategory{
	CategoryTechStack,
	CategorySoftSkill,
	CategoryBenefit,
	CategoryCertification,
	CategoryEducation,
}

// Valid reports whether the category is one of the known values.
func (c KeywordCategory) Valid() bool {
	for _, k := range AllKeywordCategories {
		if c == k {
			return true
		}
	}
	return false
}

// Keyword is a canonical skill/benefit/certification term extracted
// from a term cluster. Text is unique within a category.
type Keyword struct {
	KeywordID       int             `json:"keyword_id"`
	Text            string          `json:"text"`
	Category        KeywordCategory `json:"category"`
	SourceClusterID int             `json:"source_cluster_id"`
}

// Validate checks structural invariants of the keyword.
func (k *Keyword) Validate() error {
	if k.Text == "" {
		return fmt.Errorf("keyword %d has empty text", k.KeywordID)
	}
	if !k.Category.Valid() {
		return fmt.Errorf("keyword %q: unknown category %q", k.Text, k.Category)
	}
	return nil
}

// JobKeyword links a job to a keyword with a relevance score,
// the many-to-many join persisted by the store.
type JobKeyword struct {
	JobID          string  `json:"job_id"`
	KeywordID      int     `json:"keyword_id"`
	RelevanceScore float64 `json:"relevance_score"`
}
