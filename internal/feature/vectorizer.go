// Package feature converts expense descriptions into TF-IDF weighted vectors
// for classification. It is a leaf package: fitting learns a vocabulary and
// inverse-document-frequency weights from a corpus of plain strings, and
// transforming maps any text onto that fixed vocabulary.
package feature

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

// maxFeatures caps the vocabulary at the most frequent terms in the corpus.
const maxFeatures = 500

// Tokenize lowercases text and splits it into word tokens. Currency symbols
// and punctuation become separators, so "₹1,200!" yields "1" and "200".
func Tokenize(text string) []string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)
	return strings.Fields(mapped)
}

// Normalize returns the cleaned, space-joined form of text.
func Normalize(text string) string {
	return strings.Join(Tokenize(text), " ")
}

// Terms expands a token sequence into its unigrams followed by its bigrams.
func Terms(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	terms := make([]string, 0, 2*len(tokens)-1)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// Vectorizer maps text onto a fitted vocabulary with TF-IDF weighting.
// Once fitted it is immutable and safe for concurrent use.
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// Fit learns a vocabulary and IDF weights from the corpus. The vocabulary
// keeps the most frequent unigrams and bigrams, ties broken by first
// appearance, so fitting the same corpus in the same order always produces
// the same vectorizer.
func Fit(corpus []string) *Vectorizer {
	type termStat struct {
		term  string
		count int
		docs  int
	}

	stats := make(map[string]*termStat)
	var order []*termStat
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, t := range Terms(Tokenize(doc)) {
			s, ok := stats[t]
			if !ok {
				s = &termStat{term: t}
				stats[t] = s
				order = append(order, s)
			}
			s.count++
			if !seen[t] {
				seen[t] = true
				s.docs++
			}
		}
	}

	// Stable sort keeps first-seen order among equally frequent terms.
	ranked := make([]*termStat, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})
	if len(ranked) > maxFeatures {
		ranked = ranked[:maxFeatures]
	}

	vocabulary := make(map[string]int, len(ranked))
	idf := make([]float64, len(ranked))
	docs := float64(len(corpus))
	for i, s := range ranked {
		vocabulary[s.term] = i
		idf[i] = math.Log((1+docs)/(1+float64(s.docs))) + 1
	}
	return &Vectorizer{vocabulary: vocabulary, idf: idf}
}

// NewVectorizer reconstructs a fitted vectorizer from stored vocabulary and
// IDF weights, as when loading a model artifact from disk.
func NewVectorizer(vocabulary map[string]int, idf []float64) (*Vectorizer, error) {
	if len(vocabulary) != len(idf) {
		return nil, fmt.Errorf("vocabulary has %d terms but %d IDF weights", len(vocabulary), len(idf))
	}
	vocab := make(map[string]int, len(vocabulary))
	for term, idx := range vocabulary {
		if idx < 0 || idx >= len(idf) {
			return nil, fmt.Errorf("term %q has index %d outside [0, %d)", term, idx, len(idf))
		}
		vocab[term] = idx
	}
	weights := make([]float64, len(idf))
	copy(weights, idf)
	return &Vectorizer{vocabulary: vocab, idf: weights}, nil
}

// Transform maps text onto the fitted vocabulary: raw term counts weighted by
// IDF, then L2-normalized. Terms outside the vocabulary contribute nothing,
// so novel words never cause an error.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, t := range Terms(Tokenize(text)) {
		if i, ok := v.vocabulary[t]; ok {
			vec[i]++
		}
	}

	var norm float64
	for i, tf := range vec {
		if tf == 0 {
			continue
		}
		vec[i] = tf * v.idf[i]
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

// Len returns the size of the fitted vocabulary.
func (v *Vectorizer) Len() int {
	return len(v.idf)
}

// Vocabulary returns a copy of the fitted term index, for persisting a model
// artifact.
func (v *Vectorizer) Vocabulary() map[string]int {
	vocab := make(map[string]int, len(v.vocabulary))
	for term, idx := range v.vocabulary {
		vocab[term] = idx
	}
	return vocab
}

// IDF returns a copy of the fitted IDF weights, indexed by vocabulary index.
func (v *Vectorizer) IDF() []float64 {
	idf := make([]float64, len(v.idf))
	copy(idf, v.idf)
	return idf
}
