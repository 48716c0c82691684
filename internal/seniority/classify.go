// Package seniority maps free-text job titles and contract types to one
// of four career-level categories via a strict priority rule cascade.
package seniority

import (
	"strings"
	"unicode"

	"github.com/jonathan/jobminer/internal/types"
)

// Rules holds the injectable vocabulary of the classifier. The lists
// are configuration, not constants: the management exception list in
// particular is an open tuning question and must stay auditable and
// testable on its own.
type Rules struct {
	// StudentContracts matches the contract/employment type. Any hit
	// forces ENTRY regardless of the title.
	StudentContracts []string
	// ManagementMarkers match leadership titles.
	ManagementMarkers []string
	// ManagerExceptions lists "manager" compounds that denote
	// individual contributors, not personnel responsibility.
	ManagerExceptions []string
	// SeniorMarkers and JuniorMarkers match title keywords.
	SeniorMarkers []string
	JuniorMarkers []string
}

// DefaultRules returns the rule vocabulary distilled from the German
// job-board corpus this pipeline was built against.
func DefaultRules() Rules {
	return Rules{
		StudentContracts: []string{
			"werkstudent", "praktikum", "praktikant", "intern", "internship",
			"ausbildung", "trainee", "working student", "student",
		},
		ManagementMarkers: []string{
			"head of", "director", "vp", "vice president", "chief",
			"teamlead", "team lead", "leiter", "leitung", "manager",
		},
		ManagerExceptions: []string{
			"product manager", "project manager", "program manager",
			"account manager", "community manager",
		},
		SeniorMarkers: []string{
			"senior", "sr.", "lead", "principal", "staff", "expert", "architect",
		},
		JuniorMarkers: []string{
			"junior", "jr.", "entry", "graduate", "apprentice", "absolvent",
		},
	}
}

// Classification is the outcome for one record.
type Classification struct {
	Level types.CareerLevel
	// Ambiguous is true when more than one of the four signal rules
	// matched before priority resolution. Kept for audit/QA; it never
	// changes the outcome.
	Ambiguous bool
}

// Classify applies the five-rule priority cascade. Earlier rules
// always win, regardless of how many later signals are present:
// student contract → ENTRY, management marker → MANAGEMENT, senior
// marker → SENIOR, junior marker → ENTRY, otherwise MID.
func Classify(title, contractType string, rules Rules) Classification {
	titleLower := strings.ToLower(title)
	contractLower := strings.ToLower(contractType)
	tokens := titleTokens(titleLower)

	// Contract types are short controlled vocabularies where substring
	// matching is safe; titles are free text and need token matching.
	contractHit := containsAny(contractLower, rules.StudentContracts)
	managementHit := matchesManagement(titleLower, tokens, rules)
	seniorHit := matchesAny(titleLower, tokens, rules.SeniorMarkers)
	juniorHit := matchesAny(titleLower, tokens, rules.JuniorMarkers)

	fired := 0
	for _, hit := range []bool{contractHit, managementHit, seniorHit, juniorHit} {
		if hit {
			fired++
		}
	}

	c := Classification{Ambiguous: fired > 1}
	switch {
	case contractHit:
		c.Level = types.CareerEntry
	case managementHit:
		c.Level = types.CareerManagement
	case seniorHit:
		c.Level = types.CareerSenior
	case juniorHit:
		c.Level = types.CareerEntry
	default:
		c.Level = types.CareerMid
	}
	return c
}

// Apply classifies every record in place and returns how many were
// flagged ambiguous.
func Apply(records []types.JobRecord, rules Rules) int {
	ambiguous := 0
	for i := range records {
		c := Classify(records[i].Title, records[i].EmploymentType, rules)
		records[i].CareerLevel = c.Level
		records[i].IsAmbiguous = c.Ambiguous
		if c.Ambiguous {
			ambiguous++
		}
	}
	return ambiguous
}

// matchesManagement checks the management markers, treating a bare
// "manager" hit as void when the title is on the IC exception list.
func matchesManagement(titleLower string, tokens []string, rules Rules) bool {
	for _, marker := range rules.ManagementMarkers {
		if !markerMatches(titleLower, tokens, marker) {
			continue
		}
		if marker == "manager" && containsAny(titleLower, rules.ManagerExceptions) {
			continue
		}
		return true
	}
	return false
}

// compoundSuffixLen is the shortest marker allowed to match as a token
// suffix. German titles compound freely ("Teamleiter", "Projektleitung"),
// so longer markers match as suffixes; short markers like "vp" or
// "staff" must match a whole token, or they fire inside "MVP" and
// "Staffing".
const compoundSuffixLen = 6

// markerMatches reports whether a marker occurs in the title. Markers
// with spaces or punctuation ("head of", "sr.") keep substring
// semantics; bare-word markers match against title tokens.
func markerMatches(titleLower string, tokens []string, marker string) bool {
	if marker == "" {
		return false
	}
	if strings.ContainsFunc(marker, func(r rune) bool { return !unicode.IsLetter(r) }) {
		return strings.Contains(titleLower, marker)
	}
	for _, tok := range tokens {
		if tok == marker {
			return true
		}
		if len(marker) >= compoundSuffixLen && strings.HasSuffix(tok, marker) {
			return true
		}
	}
	return false
}

func matchesAny(titleLower string, tokens []string, markers []string) bool {
	for _, m := range markers {
		if markerMatches(titleLower, tokens, m) {
			return true
		}
	}
	return false
}

func titleTokens(titleLower string) []string {
	return strings.FieldsFunc(titleLower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}
