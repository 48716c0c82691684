// Package normalize standardizes heterogeneous scraped job records into
// the canonical JobRecord schema. Every sub-parser recovers from
// unparseable input by returning absence rather than an error; salary
// and date gaps are a common, valid state in the source data.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedSalary holds the outcome of parsing a raw salary string.
// Min/Max/Avg are nil when the string carried no parseable amount.
type ParsedSalary struct {
	Min      *float64
	Max      *float64
	Avg      *float64
	Currency string
}

// defaultCurrency is assumed when the salary string names no currency.
const defaultCurrency = "EUR"

var currencyMarkers = []struct {
	marker   string
	currency string
}{
	{"€", "EUR"},
	{"eur", "EUR"},
	{"$", "USD"},
	{"usd", "USD"},
	{"£", "GBP"},
	{"gbp", "GBP"},
	{"chf", "CHF"},
}

// rangeSeparators split "X-Y" style salary ranges. "bis" and "to" show
// up in German and English postings respectively.
var rangeSplitRe = regexp.MustCompile(`\s*(?:-|–|—|\bbis\b|\bto\b)\s*`)

// amountRe matches one salary amount with optional European separators
// and an optional "k" shorthand suffix.
var amountRe = regexp.MustCompile(`(?i)(\d{1,3}(?:\.\d{3})+(?:,\d+)?|\d+(?:[.,]\d+)?)\s*(k)?`)

// ParseSalary parses a raw salary string into a min/max/avg triple.
// Recognized forms: currency-prefixed single values ("€55.000"),
// ranges ("45k-65k", "40.000 - 60.000 €"), and "k" shorthand.
// Unparseable strings ("Competitive", "Marktgerecht") yield all-nil
// amounts with the default currency.
func ParseSalary(raw string) ParsedSalary {
	out := ParsedSalary{Currency: defaultCurrency}
	s := strings.TrimSpace(raw)
	if s == "" {
		return out
	}

	lower := strings.ToLower(s)
	for _, cm := range currencyMarkers {
		if strings.Contains(lower, cm.marker) {
			out.Currency = cm.currency
			break
		}
	}

	parts := rangeSplitRe.Split(s, 2)
	lo, okLo := parseAmount(parts[0])
	if !okLo {
		// A leading currency token can glue to the first amount after
		// splitting; fall back to scanning the whole string.
		lo, okLo = parseAmount(s)
		if !okLo {
			return out
		}
		parts = parts[:1]
	}

	hi := lo
	if len(parts) == 2 {
		if v, ok := parseAmount(parts[1]); ok {
			hi = v
		}
	}
	if hi < lo {
		lo, hi = hi, lo
	}

	avg := (lo + hi) / 2
	out.Min = &lo
	out.Max = &hi
	out.Avg = &avg
	return out
}

// parseAmount extracts one numeric amount from a salary fragment,
// normalizing European thousand/decimal separators and applying the
// "k" multiplier.
func parseAmount(fragment string) (float64, bool) {
	m := amountRe.FindStringSubmatch(fragment)
	if m == nil {
		return 0, false
	}

	num := m[1]
	if strings.Contains(num, ".") && strings.Contains(num, ",") {
		// European style: "." thousands, "," decimal.
		num = strings.ReplaceAll(num, ".", "")
		num = strings.ReplaceAll(num, ",", ".")
	} else if strings.Count(num, ".") > 0 {
		// A dot followed by exactly three digits is a thousands
		// separator ("45.000"); anything else is a decimal point.
		if regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`).MatchString(num) {
			num = strings.ReplaceAll(num, ".", "")
		}
	} else if strings.Contains(num, ",") {
		// A comma followed by exactly three digits is a US thousands
		// separator ("80,000"); otherwise it is a European decimal.
		if regexp.MustCompile(`^\d{1,3}(,\d{3})+$`).MatchString(num) {
			num = strings.ReplaceAll(num, ",", "")
		} else {
			num = strings.ReplaceAll(num, ",", ".")
		}
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	if strings.EqualFold(m[2], "k") {
		v *= 1000
	}
	// Sub-thousand bare amounts like "45" in "45-65" follow the same
	// shorthand convention as "45k" only when the counterpart used it;
	// leave them untouched here, the caller sees both ends.
	return v, true
}
