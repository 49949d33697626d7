package relation

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/modelrel/topicdb/corpus"
	"github.com/modelrel/topicdb/distance"
)

// NearestK is the truncation bound applied to the doc-doc and term-term
// relations: only the K nearest candidates per reference entity are kept.
const NearestK = 100

// Row is one relation tuple: entity A related to entity B with a score. For
// symmetric relations B >= A always holds.
type Row struct {
	A     int64
	B     int64
	Score float64
}

// EmitFunc receives relation rows one at a time. Builders stop and return
// the first error an EmitFunc reports.
type EmitFunc func(Row) error

// globalID translates a local index within an upper-triangle candidate slice
// back to the entity id in the full collection. The candidate slice for
// reference i starts at row i, so the offset is i itself.
func globalID(offset, local int) int64 {
	return int64(offset + local)
}

// Normalize returns the row-normalized copy of a weight matrix: each row
// divided by its sum, turning gamma rows into proper probability
// distributions. A zero-sum row divides to NaN, which propagates.
func Normalize(m *mat.Dense) *mat.Dense {
	rows, cols := m.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		row := m.RawRowView(i)
		var sum float64
		for _, v := range row {
			sum += v
		}
		dst := out.RawRowView(i)
		for j, v := range row {
			dst[j] = v / sum
		}
	}
	return out
}

// tail returns the sub-matrix of m from row i to the end. Rows before i have
// already been compared against i by earlier iterations.
func tail(m *mat.Dense, i int) *mat.Dense {
	rows, cols := m.Dims()
	return m.Slice(i, rows, 0, cols).(*mat.Dense)
}

// DocDoc emits the nearest-document relation: for each document, the
// Hellinger distance to every not-yet-compared document (upper triangle),
// truncated to the NearestK smallest. theta must be row-normalized; use
// Normalize on a raw gamma matrix first.
func DocDoc(theta *mat.Dense, emit EmitFunc) error {
	rows, _ := theta.Dims()
	for i := 0; i < rows; i++ {
		scores, err := distance.Hellinger(theta.RawRowView(i), tail(theta, i))
		if err != nil {
			return fmt.Errorf("relation: doc_doc reference %d: %w", i, err)
		}
		idx, vals := TopK(scores, NearestK)
		for n, local := range idx {
			if err := emit(Row{A: int64(i), B: globalID(i, local), Score: vals[n]}); err != nil {
				return err
			}
		}
	}
	return nil
}

// DocTopic emits the dense document-topic relation: every document paired
// with every topic, scored by the raw gamma weight.
func DocTopic(gamma *mat.Dense, emit EmitFunc) error {
	rows, cols := gamma.Dims()
	for i := 0; i < rows; i++ {
		row := gamma.RawRowView(i)
		for j := 0; j < cols; j++ {
			if err := emit(Row{A: int64(i), B: int64(j), Score: row[j]}); err != nil {
				return err
			}
		}
	}
	return nil
}

// DocTerm emits the sparse document-term relation: one row per nonzero word
// count, scored by the occurrence count.
func DocTerm(counts [][]corpus.TermCount, emit EmitFunc) error {
	for doc, terms := range counts {
		for _, tc := range terms {
			if err := emit(Row{A: int64(doc), B: tc.Term, Score: float64(tc.Count)}); err != nil {
				return err
			}
		}
	}
	return nil
}

// TopicTerm emits the dense topic-term relation: every topic paired with
// every vocabulary term, in descending weight order per topic, scored by the
// raw beta weight.
func TopicTerm(beta *mat.Dense, emit EmitFunc) error {
	rows, _ := beta.Dims()
	for i := 0; i < rows; i++ {
		row := beta.RawRowView(i)
		for _, term := range argsortDesc(row) {
			if err := emit(Row{A: int64(i), B: int64(term), Score: row[term]}); err != nil {
				return err
			}
		}
	}
	return nil
}

// TopicTopic emits the symmetric topic-topic relation over the upper
// triangle, scored by the scaled Hellinger variant. The relation is dense:
// self-pairs and zero scores are kept.
func TopicTopic(beta *mat.Dense, emit EmitFunc) error {
	rows, _ := beta.Dims()
	for i := 0; i < rows; i++ {
		scores, err := distance.TopicScore(beta.RawRowView(i), tail(beta, i))
		if err != nil {
			return fmt.Errorf("relation: topic_topic reference %d: %w", i, err)
		}
		for local, score := range scores {
			if err := emit(Row{A: int64(i), B: globalID(i, local), Score: score}); err != nil {
				return err
			}
		}
	}
	return nil
}

// TermTerm emits the nearest-term relation. Term vectors are the columns of
// beta (one weight per topic), transformed elementwise by sqrt(exp(x)) to
// map log-weights onto a comparable positive scale, then compared with the
// sum-of-squares term score over the upper triangle and truncated to the
// NearestK smallest per term.
func TermTerm(beta *mat.Dense, emit EmitFunc) error {
	topics, terms := beta.Dims()
	v := mat.NewDense(terms, topics, nil)
	for i := 0; i < topics; i++ {
		row := beta.RawRowView(i)
		for j := 0; j < terms; j++ {
			v.Set(j, i, math.Sqrt(math.Exp(row[j])))
		}
	}

	for i := 0; i < terms; i++ {
		scores, err := distance.TermScore(v.RawRowView(i), tail(v, i))
		if err != nil {
			return fmt.Errorf("relation: term_term reference %d: %w", i, err)
		}
		idx, vals := TopK(scores, NearestK)
		for n, local := range idx {
			if err := emit(Row{A: int64(i), B: globalID(i, local), Score: vals[n]}); err != nil {
				return err
			}
		}
	}
	return nil
}

// TopicTitles derives a display label for each topic from its three
// highest-weight vocabulary terms, formatted "{first, second, third}".
func TopicTitles(beta *mat.Dense, vocab []string) ([]string, error) {
	rows, cols := beta.Dims()
	if cols != len(vocab) {
		return nil, fmt.Errorf("relation: beta has %d columns but vocabulary has %d terms", cols, len(vocab))
	}
	if cols < 3 {
		return nil, fmt.Errorf("relation: need at least 3 vocabulary terms to label topics, have %d", cols)
	}
	titles := make([]string, rows)
	for i := 0; i < rows; i++ {
		order := argsortDesc(beta.RawRowView(i))
		titles[i] = fmt.Sprintf("{%s, %s, %s}", vocab[order[0]], vocab[order[1]], vocab[order[2]])
	}
	return titles, nil
}

// argsortDesc returns the indices that sort v in descending value order,
// ties broken by original index.
func argsortDesc(v []float64) []int {
	order := make([]int, len(v))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return v[order[i]] > v[order[j]]
	})
	return order
}
