package keywords

import (
	"strings"
	"unicode"
)

// Certification acronym length bounds. Heuristic constants from the
// source corpus analysis; tunable via CertFilter.
const (
	DefaultCertMinLen = 3
	DefaultCertMaxLen = 8
)

// CertFilter validates candidate certification tokens. Certification
// term clusters are the single noisiest category — roughly 40%
// contaminated with company names — so acceptance requires both an
// uppercase-acronym shape and absence from an injectable company-name
// blocklist.
type CertFilter struct {
	// MinLen/MaxLen bound the acronym length. Zero means the
	// defaults.
	MinLen int
	MaxLen int
	// CompanyBlocklist holds uppercase company names that must never
	// be emitted as certifications ("SAP", "IBM").
	CompanyBlocklist map[string]bool
}

// DefaultCompanyBlocklist covers the company names most frequently
// observed inside certification clusters.
func DefaultCompanyBlocklist() map[string]bool {
	set := make(map[string]bool)
	for _, name := range []string{"SAP", "IBM", "AWS", "BMW", "DHL", "TUV", "ZF"} {
		set[name] = true
	}
	return set
}

// Accept reports whether the token qualifies as a certification
// keyword: an uppercase acronym within the length bounds that is not a
// blocklisted company name.
func (f CertFilter) Accept(token string) bool {
	minLen, maxLen := f.MinLen, f.MaxLen
	if minLen == 0 {
		minLen = DefaultCertMinLen
	}
	if maxLen == 0 {
		maxLen = DefaultCertMaxLen
	}

	if len(token) < minLen || len(token) > maxLen {
		return false
	}
	hasUpper := false
	for _, r := range token {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
		default:
			return false
		}
	}
	// Year-like all-digit tokens ("2024") are not acronyms.
	if !hasUpper {
		return false
	}
	if f.CompanyBlocklist[strings.ToUpper(token)] {
		return false
	}
	return true
}
