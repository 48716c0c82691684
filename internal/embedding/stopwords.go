package embedding

// Stop-word lists applied before vectorization: English, German, and
// domain noise words that appear in nearly every posting and carry no
// discriminative signal.

var englishStopwords = []string{
	"a", "about", "after", "all", "also", "an", "and", "any", "are", "as",
	"at", "be", "been", "but", "by", "can", "could", "do", "does", "for",
	"from", "had", "has", "have", "if", "in", "into", "is", "it", "its",
	"more", "most", "no", "not", "of", "on", "one", "or", "our", "out",
	"over", "such", "than", "that", "the", "their", "then", "there",
	"these", "they", "this", "to", "up", "was", "we", "were", "what",
	"when", "which", "while", "who", "will", "with", "would", "you",
	"your",
}

var germanStopwords = []string{
	"aber", "als", "am", "an", "auch", "auf", "aus", "bei", "bis", "das",
	"dass", "dem", "den", "der", "des", "die", "durch", "ein", "eine",
	"einem", "einen", "einer", "eines", "es", "für", "haben", "hat",
	"ihr", "im", "in", "ist", "mit", "nach", "nicht", "noch", "oder",
	"sich", "sie", "sind", "sowie", "um", "und", "uns", "unser", "von",
	"vor", "werden", "wie", "wir", "zu", "zum", "zur",
}

// domainStopwords are near-universal job-posting filler terms.
var domainStopwords = []string{
	"experience", "skills", "skill", "knowledge", "ability", "team",
	"work", "working", "job", "role", "position", "candidate",
	"company", "opportunity", "erfahrung", "kenntnisse", "aufgaben",
	"profil", "stelle", "unternehmen", "bewerbung",
}

// defaultStopwords merges all three lists into a lookup set.
func defaultStopwords() map[string]bool {
	set := make(map[string]bool, len(englishStopwords)+len(germanStopwords)+len(domainStopwords))
	for _, list := range [][]string{englishStopwords, germanStopwords, domainStopwords} {
		for _, w := range list {
			set[w] = true
		}
	}
	return set
}
