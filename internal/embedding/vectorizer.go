package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Vectorizer defaults, matching the corpus analysis this pipeline was
// derived from.
const (
	DefaultMaxFeatures = 725
	DefaultMinDF       = 2
	DefaultMaxDFRatio  = 0.95
)

// VectorizerOptions configures a TF-IDF fit.
type VectorizerOptions struct {
	// MaxFeatures caps the vocabulary size. Zero means
	// DefaultMaxFeatures.
	MaxFeatures int
	// MinDF drops terms seen in fewer documents. Zero means
	// DefaultMinDF.
	MinDF int
	// MaxDFRatio drops terms seen in more than this fraction of
	// documents. Zero means DefaultMaxDFRatio.
	MaxDFRatio float64
	// ExtraStopwords extends the default stop-word lists.
	ExtraStopwords []string
}

func (o *VectorizerOptions) withDefaults() VectorizerOptions {
	out := *o
	if out.MaxFeatures == 0 {
		out.MaxFeatures = DefaultMaxFeatures
	}
	if out.MinDF == 0 {
		out.MinDF = DefaultMinDF
	}
	if out.MaxDFRatio == 0 {
		out.MaxDFRatio = DefaultMaxDFRatio
	}
	return out
}

// Vectorizer is a fitted TF-IDF model over unigrams and bigrams. The
// vocabulary and IDF weights are fitted once per pipeline run over the
// whole corpus; there is no incremental update, and transforming a
// different corpus fails with ErrVocabularyMismatch.
type Vectorizer struct {
	tokenizer   *Tokenizer
	vocab       map[string]int // term -> dimension index
	terms       []string       // dimension index -> term
	surfaces    []string       // dimension index -> dominant original-case form
	idf         []float64
	fingerprint string
}

// Fit builds the vocabulary and IDF weights from the corpus and
// returns a fitted vectorizer. Fitting is a single sequential pass
// because document frequencies are global counts.
func Fit(ctx context.Context, docs []string, opts VectorizerOptions) (*Vectorizer, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("cannot fit vectorizer on empty corpus")
	}
	o := opts.withDefaults()

	v := &Vectorizer{
		tokenizer:   NewTokenizer(o.ExtraStopwords...),
		fingerprint: corpusFingerprint(docs),
	}

	df := make(map[string]int)
	surfaceCounts := make(map[string]map[string]int)
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		terms, termSurfaces := v.termsOf(doc)
		seen := make(map[string]bool)
		for i, term := range terms {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
			if surfaceCounts[term] == nil {
				surfaceCounts[term] = make(map[string]int)
			}
			surfaceCounts[term][termSurfaces[i]]++
		}
	}

	maxDF := int(o.MaxDFRatio * float64(len(docs)))
	if maxDF < o.MinDF {
		// Truncation on tiny corpora must not empty the vocabulary.
		maxDF = o.MinDF
	}
	type termDF struct {
		term string
		df   int
	}
	kept := make([]termDF, 0, len(df))
	for term, count := range df {
		if count < o.MinDF || count > maxDF {
			continue
		}
		kept = append(kept, termDF{term, count})
	}

	// Highest document frequency first; alphabetical within ties so
	// the vocabulary is deterministic.
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].df != kept[j].df {
			return kept[i].df > kept[j].df
		}
		return kept[i].term < kept[j].term
	})
	if len(kept) > o.MaxFeatures {
		kept = kept[:o.MaxFeatures]
	}

	v.vocab = make(map[string]int, len(kept))
	v.terms = make([]string, len(kept))
	v.surfaces = make([]string, len(kept))
	v.idf = make([]float64, len(kept))
	n := float64(len(docs))
	for i, td := range kept {
		v.vocab[td.term] = i
		v.terms[i] = td.term
		v.surfaces[i] = dominantSurface(surfaceCounts[td.term], td.term)
		v.idf[i] = math.Log((n+1)/(float64(td.df)+1)) + 1
	}
	return v, nil
}

// dominantSurface picks the most frequent original-case form of a term;
// frequency ties resolve lexicographically for determinism.
func dominantSurface(counts map[string]int, fallback string) string {
	best, bestCount := fallback, 0
	for surface, count := range counts {
		if count > bestCount || (count == bestCount && surface < best) {
			best, bestCount = surface, count
		}
	}
	return best
}

// Dimensions returns the fitted vocabulary size.
func (v *Vectorizer) Dimensions() int {
	return len(v.terms)
}

// Vocabulary returns the fitted terms in dimension order.
func (v *Vectorizer) Vocabulary() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// SurfaceForms returns, in dimension order, the dominant original-case
// form each term showed in the corpus ("PMP" rather than "pmp").
// Keyword curation works on these so acronym casing survives.
func (v *Vectorizer) SurfaceForms() []string {
	out := make([]string, len(v.surfaces))
	copy(out, v.surfaces)
	return out
}

// Transform embeds the corpus the vectorizer was fitted on, in
// parallel across documents. Passing a different corpus is a
// configuration error and fails with ErrVocabularyMismatch.
func (v *Vectorizer) Transform(ctx context.Context, docs []string) ([][]float64, error) {
	if v.vocab == nil {
		return nil, &NotFittedError{Op: "transform"}
	}
	if corpusFingerprint(docs) != v.fingerprint {
		return nil, ErrVocabularyMismatch
	}

	vectors := make([][]float64, len(docs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			vectors[i] = v.transformOne(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// transformOne produces the L2-normalized TF-IDF vector of one
// document. Documents with no in-vocabulary terms yield a zero vector.
func (v *Vectorizer) transformOne(doc string) []float64 {
	vec := make([]float64, len(v.terms))
	terms, _ := v.termsOf(doc)
	for _, term := range terms {
		if idx, ok := v.vocab[term]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= v.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// termsOf produces the unigram and bigram terms of a document together
// with their surface forms.
func (v *Vectorizer) termsOf(doc string) (terms, surfaces []string) {
	tokens, tokenSurfaces := v.tokenizer.tokenize(doc)
	terms = make([]string, 0, 2*len(tokens))
	surfaces = make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	surfaces = append(surfaces, tokenSurfaces...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
		surfaces = append(surfaces, tokenSurfaces[i]+" "+tokenSurfaces[i+1])
	}
	return terms, surfaces
}

// corpusFingerprint hashes the corpus so Transform can detect a
// vocabulary/corpus mismatch.
func corpusFingerprint(docs []string) string {
	h := sha256.New()
	for _, doc := range docs {
		h.Write([]byte(doc))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
