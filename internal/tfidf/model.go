// Package tfidf fits a term frequency / inverse document frequency model over
// a fixed set of documents and projects new text into the same space.
//
// Weights follow the usual smoothed formulation:
//
//	idf(t)  = ln((1 + n) / (1 + df(t))) + 1
//	w(t, d) = count(t, d) * idf(t)
//
// and every vector is L2 normalized, so the dot product of two vectors is
// their cosine similarity.
package tfidf

import (
	"math"
	"sort"
)

// Term is one non-zero component of a sparse vector.
type Term struct {
	ID     int
	Weight float64
}

// Vector is a sparse vector sorted by term ID.
type Vector []Term

// Model is immutable once fitted.
type Model struct {
	vocab map[string]int
	terms []string
	idf   []float64
	docs  int
}

// Fit learns the vocabulary and idf weights of docs.
func Fit(docs []string) *Model {
	m, _ := FitTransform(docs)
	return m
}

// FitTransform fits a model and returns the vector of every document, in
// input order.
func FitTransform(docs []string) (*Model, []Vector) {
	tokenized := make([][]string, len(docs))
	df := map[string]int{}
	for i, d := range docs {
		toks := Tokenize(d)
		tokenized[i] = toks
		seen := map[string]struct{}{}
		for _, t := range toks {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	m := &Model{
		vocab: make(map[string]int, len(terms)),
		terms: terms,
		idf:   make([]float64, len(terms)),
		docs:  len(docs),
	}
	n := float64(len(docs))
	for i, t := range terms {
		m.vocab[t] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	vectors := make([]Vector, len(docs))
	for i, toks := range tokenized {
		vectors[i] = m.vectorize(toks)
	}
	return m, vectors
}

// Transform projects text into the fitted space. Terms outside the
// vocabulary carry no weight; text made only of unknown terms yields an
// empty vector.
func (m *Model) Transform(text string) Vector {
	return m.vectorize(Tokenize(text))
}

func (m *Model) vectorize(tokens []string) Vector {
	counts := map[int]float64{}
	for _, t := range tokens {
		if id, ok := m.vocab[t]; ok {
			counts[id]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	v := make(Vector, 0, len(counts))
	for id, c := range counts {
		v = append(v, Term{ID: id, Weight: c * m.idf[id]})
	}
	// sort before summing so the norm does not depend on map order
	sort.Slice(v, func(i, j int) bool { return v[i].ID < v[j].ID })

	var norm float64
	for _, t := range v {
		norm += t.Weight * t.Weight
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i].Weight /= norm
	}
	return v
}

// VocabularySize is the number of distinct fitted terms.
func (m *Model) VocabularySize() int { return len(m.terms) }

// Documents is the number of documents the model was fitted on.
func (m *Model) Documents() int { return m.docs }

// TermID returns the column of term, if it is in the vocabulary.
func (m *Model) TermID(term string) (int, bool) {
	id, ok := m.vocab[term]
	return id, ok
}

// IDF returns the inverse document frequency of a term ID.
func (m *Model) IDF(id int) float64 {
	if id < 0 || id >= len(m.idf) {
		return 0
	}
	return m.idf[id]
}

// Terms returns the vocabulary in column order.
func (m *Model) Terms() []string {
	out := make([]string, len(m.terms))
	copy(out, m.terms)
	return out
}

// Dot is the linear kernel of two sparse vectors.
func Dot(a, b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].ID == b[j].ID:
			sum += a[i].Weight * b[j].Weight
			i++
			j++
		case a[i].ID < b[j].ID:
			i++
		default:
			j++
		}
	}
	return sum
}
