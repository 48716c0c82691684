// Package embedding converts cleaned job descriptions into fixed-length
// L2-normalized TF-IDF vectors suitable for distance-based clustering.
package embedding

import (
	"strings"
	"unicode"
)

// Tokenizer lowercases, splits, stop-filters, and lemmatizes document
// text. The zero value is not usable; construct with NewTokenizer.
type Tokenizer struct {
	stopwords map[string]bool
}

// NewTokenizer builds a tokenizer with the default English, German,
// and domain stop-word lists plus any extra words supplied.
func NewTokenizer(extraStopwords ...string) *Tokenizer {
	set := defaultStopwords()
	for _, w := range extraStopwords {
		set[strings.ToLower(w)] = true
	}
	return &Tokenizer{stopwords: set}
}

// Tokenize produces the filtered, lemmatized token stream of a
// document.
func (t *Tokenizer) Tokenize(text string) []string {
	lemmas, _ := t.tokenize(text)
	return lemmas
}

// tokenize returns each token's lemma together with its original-case
// surface form. Surfaces are what the document actually printed;
// keyword curation needs them because casing carries signal (acronym
// detection) that the lowercase lemma has lost.
func (t *Tokenizer) tokenize(text string) (lemmas, surfaces []string) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, f := range fields {
		lower := strings.ToLower(f)
		if len(lower) < 2 || t.stopwords[lower] {
			continue
		}
		lemma := lemmatize(lower)
		if len(lemma) < 2 || t.stopwords[lemma] {
			continue
		}
		lemmas = append(lemmas, lemma)
		surfaces = append(surfaces, f)
	}
	return lemmas, surfaces
}

// lemmaExceptions lists tech names whose trailing s is not a plural.
var lemmaExceptions = map[string]bool{
	"kubernetes": true,
	"jenkins":    true,
	"devops":     true,
	"mlops":      true,
	"nodejs":     true,
	"reactjs":    true,
	"vuejs":      true,
	"angularjs":  true,
	"postgres":   true,
	"macos":      true,
	"windows":    true,
}

// lemmatize applies a light suffix stemmer that folds common English
// plural and inflection endings. Tech names with a non-plural trailing
// s are exempted.
func lemmatize(token string) string {
	if lemmaExceptions[token] {
		return token
	}
	switch {
	case len(token) > 4 && strings.HasSuffix(token, "ies"):
		return token[:len(token)-3] + "y"
	case len(token) > 4 && strings.HasSuffix(token, "sses"):
		return token[:len(token)-2]
	case len(token) > 3 && strings.HasSuffix(token, "s") &&
		!strings.HasSuffix(token, "ss") && !strings.HasSuffix(token, "us") &&
		!strings.HasSuffix(token, "is"):
		return token[:len(token)-1]
	}
	return token
}
