package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ParsedLocation holds the outcome of parsing a raw location string.
// City/State/Country are empty when the string could not be resolved
// to a single place; Raw always preserves the original value.
type ParsedLocation struct {
	Raw     string
	City    string
	State   string
	Country string
}

// canonicalCities maps known spelling and diacritic variants to one
// canonical city name. Keys are diacritic-folded lowercase.
var canonicalCities = map[string]string{
	"munchen":        "Munich",
	"muenchen":       "Munich",
	"munich":         "Munich",
	"koln":           "Cologne",
	"koeln":          "Cologne",
	"cologne":        "Cologne",
	"nurnberg":       "Nuremberg",
	"nuernberg":      "Nuremberg",
	"nuremberg":      "Nuremberg",
	"frankfurt":      "Frankfurt",
	"frankfurt a.m.": "Frankfurt",
	"berlin":         "Berlin",
	"hamburg":        "Hamburg",
	"stuttgart":      "Stuttgart",
	"dusseldorf":     "Düsseldorf",
	"duesseldorf":    "Düsseldorf",
	"hannover":       "Hanover",
	"hanover":        "Hanover",
	"wien":           "Vienna",
	"vienna":         "Vienna",
	"zurich":         "Zurich",
	"zuerich":        "Zurich",
}

// germanStates recognizes German federal state names so they land in
// the state field instead of being mistaken for cities.
var germanStates = map[string]string{
	"baden-wurttemberg":      "Baden-Württemberg",
	"baden-wuerttemberg":     "Baden-Württemberg",
	"bayern":                 "Bayern",
	"bavaria":                "Bayern",
	"brandenburg":            "Brandenburg",
	"bremen":                 "Bremen",
	"hessen":                 "Hessen",
	"hesse":                  "Hessen",
	"mecklenburg-vorpommern": "Mecklenburg-Vorpommern",
	"niedersachsen":          "Niedersachsen",
	"nordrhein-westfalen":    "Nordrhein-Westfalen",
	"rheinland-pfalz":        "Rheinland-Pfalz",
	"saarland":               "Saarland",
	"sachsen":                "Sachsen",
	"sachsen-anhalt":         "Sachsen-Anhalt",
	"schleswig-holstein":     "Schleswig-Holstein",
	"thuringen":              "Thüringen",
	"thueringen":             "Thüringen",
}

var knownCountries = map[string]string{
	"deutschland": "Germany",
	"germany":     "Germany",
	"osterreich":  "Austria",
	"austria":     "Austria",
	"schweiz":     "Switzerland",
	"switzerland": "Switzerland",
}

// nationwideMarkers flag entries that name no single city.
var nationwideMarkers = []string{"germany-wide", "deutschlandweit", "bundesweit", "nationwide", "remote"}

// foldTransformer strips combining diacritic marks after NFD
// decomposition, so "München" folds to "munchen".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldKey lowercases and diacritic-folds a location token for lookup.
func foldKey(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// CanonicalCity resolves a single city token to its canonical spelling,
// or returns the empty string when the token is unknown.
func CanonicalCity(token string) string {
	return canonicalCities[foldKey(token)]
}

// ParseLocation splits a composite location string and resolves the
// parts into city/state/country. Multi-city ("Berlin/Munich") and
// nationwide ("Germany-wide") entries keep the raw value verbatim with
// no city, rather than guessing.
func ParseLocation(raw string) ParsedLocation {
	out := ParsedLocation{Raw: strings.TrimSpace(raw)}
	if out.Raw == "" {
		return out
	}

	folded := foldKey(out.Raw)
	for _, marker := range nationwideMarkers {
		if strings.Contains(folded, marker) {
			return out
		}
	}

	// A slash separates alternative cities; such entries stay verbatim.
	if strings.Contains(out.Raw, "/") {
		return out
	}

	for _, part := range strings.FieldsFunc(out.Raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	}) {
		key := foldKey(part)
		switch {
		case out.City == "" && canonicalCities[key] != "":
			out.City = canonicalCities[key]
		case out.State == "" && germanStates[key] != "":
			out.State = germanStates[key]
		case out.Country == "" && knownCountries[key] != "":
			out.Country = knownCountries[key]
		case out.City == "" && out.State == "" && len(key) > 1:
			// Unknown single token: treat the first as the city,
			// keeping its original (trimmed) spelling.
			out.City = strings.TrimSpace(part)
		}
	}
	return out
}
