package tfidf

// posting records one document's weight for a term.
type posting struct {
	doc    int
	weight float64
}

// Matrix holds fitted document vectors together with an inverted index from
// term to the documents containing it. It is read-only after construction
// and safe for concurrent use.
type Matrix struct {
	rows     []Vector
	postings [][]posting
}

// NewMatrix indexes rows, which must come from the same model.
func NewMatrix(m *Model, rows []Vector) *Matrix {
	postings := make([][]posting, m.VocabularySize())
	for doc, row := range rows {
		for _, t := range row {
			postings[t.ID] = append(postings[t.ID], posting{doc: doc, weight: t.Weight})
		}
	}
	return &Matrix{rows: rows, postings: postings}
}

// Rows is the number of documents.
func (x *Matrix) Rows() int { return len(x.rows) }

// Row returns the vector of document i.
func (x *Matrix) Row(i int) Vector { return x.rows[i] }

// AddScores adds the similarity of q to every document into out, which must
// have Rows() entries. Only documents sharing a term with q are touched.
func (x *Matrix) AddScores(q Vector, out []float64) {
	for _, t := range q {
		if t.ID < 0 || t.ID >= len(x.postings) {
			continue
		}
		for _, p := range x.postings[t.ID] {
			out[p.doc] += t.Weight * p.weight
		}
	}
}

// Scores returns the similarity of q to every document.
func (x *Matrix) Scores(q Vector) []float64 {
	out := make([]float64, len(x.rows))
	x.AddScores(q, out)
	return out
}
