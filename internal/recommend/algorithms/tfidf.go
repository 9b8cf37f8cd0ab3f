// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package algorithms

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// TermVector is a sparse term-weight vector.
// Absent terms have weight 0. Weights are never negative.
type TermVector map[string]float64

// Weight returns the weight of term, or 0 if the term is absent.
func (v TermVector) Weight(term string) float64 {
	return v[term]
}

// Len returns the number of terms with a stored weight.
func (v TermVector) Len() int {
	return len(v)
}

// Terms returns the vector's terms in lexical order.
func (v TermVector) Terms() []string {
	terms := make([]string, 0, len(v))
	for term := range v {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Magnitude returns the Euclidean norm of the vector.
func (v TermVector) Magnitude() float64 {
	return math.Sqrt(v.sumSquares())
}

// sumSquares accumulates in lexical term order so equal vectors produce
// bit-identical sums regardless of map iteration order.
func (v TermVector) sumSquares() float64 {
	var sum float64
	for _, term := range v.Terms() {
		w := v[term]
		sum += w * w
	}
	return sum
}

// Tokenizer splits text into normalized terms.
type Tokenizer struct {
	// Stem reduces tokens to their English stem (e.g. "dancing" -> "danc").
	Stem bool

	// MinLength drops tokens shorter than this many runes.
	// Zero keeps every token.
	MinLength int
}

// DefaultTokenizer lower-cases and splits on anything that is not a letter or digit.
var DefaultTokenizer = Tokenizer{}

// Tokenize returns the terms of text in order of appearance.
func (t Tokenizer) Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := fields[:0]
	for _, token := range fields {
		if t.MinLength > 0 && len([]rune(token)) < t.MinLength {
			continue
		}
		if t.Stem {
			if stemmed, err := snowball.Stem(token, "english", true); err == nil && stemmed != "" {
				token = stemmed
			}
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// BuildVectors builds one TF-IDF vector per document using DefaultTokenizer.
func BuildVectors(documents []string) []TermVector {
	return DefaultTokenizer.BuildVectors(documents)
}

// BuildVectors builds one TF-IDF vector per document, in input order.
// Documents without terms produce empty vectors.
func (t Tokenizer) BuildVectors(documents []string) []TermVector {
	counts := make([]map[string]int, len(documents))
	lengths := make([]int, len(documents))
	docFreq := make(map[string]int)

	for i, doc := range documents {
		tokens := t.Tokenize(doc)
		tf := make(map[string]int, len(tokens))
		for _, token := range tokens {
			tf[token]++
		}
		for term := range tf {
			docFreq[term]++
		}
		counts[i] = tf
		lengths[i] = len(tokens)
	}

	n := float64(len(documents))
	idf := make(map[string]float64, len(docFreq))
	for term, df := range docFreq {
		idf[term] = math.Log((1+n)/(1+float64(df))) + 1
	}

	vectors := make([]TermVector, len(documents))
	for i, tf := range counts {
		vec := make(TermVector, len(tf))
		if lengths[i] > 0 {
			total := float64(lengths[i])
			for term, c := range tf {
				vec[term] = float64(c) / total * idf[term]
			}
		}
		vectors[i] = vec
	}

	return vectors
}

// CosineSimilarity returns the cosine of the angle between a and b.
//
// Only terms present in both vectors contribute to the dot product. The result
// is 0 when either vector has zero magnitude and is clamped to [0, 1].
// Sums are accumulated in lexical term order, which makes the function
// symmetric and returns exactly 1 for equal vectors.
func CosineSimilarity(a, b TermVector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	small, large := a, b
	if len(b) < len(a) || (len(b) == len(a) && lessTerms(b, a)) {
		small, large = b, a
	}

	var dot float64
	for _, term := range small.Terms() {
		if w, ok := large[term]; ok {
			dot += small[term] * w
		}
	}
	if dot == 0 {
		return 0
	}

	sa, sb := a.sumSquares(), b.sumSquares()
	if sa == 0 || sb == 0 {
		return 0
	}

	sim := dot / math.Sqrt(sa*sb)
	switch {
	case sim > 1:
		return 1
	case sim < 0:
		return 0
	default:
		return sim
	}
}

// lessTerms orders equally sized vectors by their sorted term lists so the
// choice of iteration side does not depend on argument order.
func lessTerms(a, b TermVector) bool {
	ta, tb := a.Terms(), b.Terms()
	for i := range ta {
		if ta[i] != tb[i] {
			return ta[i] < tb[i]
		}
	}
	return false
}
