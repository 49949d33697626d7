package distance

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrDimensionMismatch is returned when the reference vector's length does
// not match the candidate matrix's row width.
var ErrDimensionMismatch = errors.New("distance: dimension mismatch")

func checkDim(a []float64, b *mat.Dense) error {
	_, cols := b.Dims()
	if cols != len(a) {
		return fmt.Errorf("%w: reference has %d entries, candidate rows have %d", ErrDimensionMismatch, len(a), cols)
	}
	return nil
}

// Hellinger returns the Hellinger-style distance sum((sqrt(a)-sqrt(b))^2)
// between the reference distribution a and each row of b. Both sides are
// expected to be proper probability distributions; identical rows score
// exactly 0.
func Hellinger(a []float64, b *mat.Dense) ([]float64, error) {
	if err := checkDim(a, b); err != nil {
		return nil, err
	}
	rows, _ := b.Dims()
	scores := make([]float64, rows)
	for i := 0; i < rows; i++ {
		row := b.RawRowView(i)
		var sum float64
		for j := range a {
			d := math.Sqrt(a[j]) - math.Sqrt(row[j])
			sum += d * d
		}
		scores[i] = sum
	}
	return scores, nil
}

// Bhattacharyya returns the Bhattacharyya distance -log(dot(sqrt(b), sqrt(a)))
// between the reference distribution a and each row of b.
//
// Bhattacharyya and Hellinger are monotonic transforms of one another
// (1 - exp(-bhatt(a,b)) == hellinger(a,b)/2), so for ranking purposes the
// two are interchangeable. Both are kept because callers rely on their
// distinct numeric conventions.
func Bhattacharyya(a []float64, b *mat.Dense) ([]float64, error) {
	if err := checkDim(a, b); err != nil {
		return nil, err
	}
	rows, _ := b.Dims()
	scores := make([]float64, rows)
	for i := 0; i < rows; i++ {
		row := b.RawRowView(i)
		var dot float64
		for j := range a {
			dot += math.Sqrt(row[j]) * math.Sqrt(a[j])
		}
		scores[i] = -math.Log(dot)
	}
	return scores, nil
}

// Euclidean returns the Euclidean (L2) distance between a and each row of b.
func Euclidean(a []float64, b *mat.Dense) ([]float64, error) {
	if err := checkDim(a, b); err != nil {
		return nil, err
	}
	rows, _ := b.Dims()
	scores := make([]float64, rows)
	for i := 0; i < rows; i++ {
		scores[i] = floats.Distance(a, b.RawRowView(i), 2)
	}
	return scores, nil
}

// KL returns the Kullback-Leibler divergence sum(a*(log(a)-log(b))) between
// the reference distribution a and each row of b.
//
// KL divergence is not a proper metric: it is asymmetric and fails the
// triangle inequality. Zero entries in either side produce NaN or Inf
// scores, which propagate.
func KL(a []float64, b *mat.Dense) ([]float64, error) {
	if err := checkDim(a, b); err != nil {
		return nil, err
	}
	rows, _ := b.Dims()
	scores := make([]float64, rows)
	for i := 0; i < rows; i++ {
		row := b.RawRowView(i)
		var sum float64
		for j := range a {
			sum += a[j] * (math.Log(a[j]) - math.Log(row[j]))
		}
		scores[i] = sum
	}
	return scores, nil
}

// Cosine returns the cosine similarity dot(b,a)/(|a|*|b|) between a and each
// row of b. Closer to 1 means the vectors are closer. A zero-norm vector on
// either side yields NaN, which propagates.
func Cosine(a []float64, b *mat.Dense) ([]float64, error) {
	if err := checkDim(a, b); err != nil {
		return nil, err
	}
	aNorm := floats.Norm(a, 2)
	rows, _ := b.Dims()
	scores := make([]float64, rows)
	for i := 0; i < rows; i++ {
		row := b.RawRowView(i)
		scores[i] = floats.Dot(row, a) / (aNorm * floats.Norm(row, 2))
	}
	return scores, nil
}

// TopicScore returns the scaled symmetric Hellinger variant used for
// topic-topic comparison: sum((sqrt(|a|)-sqrt(|b|))^2) / (2 * 100 * len(a)).
// The absolute value tolerates negative log-weight inputs; the scaling
// constant bounds scores for comparability across vector lengths.
func TopicScore(a []float64, b *mat.Dense) ([]float64, error) {
	if err := checkDim(a, b); err != nil {
		return nil, err
	}
	norm := 2 * 100 * float64(len(a))
	rows, _ := b.Dims()
	scores := make([]float64, rows)
	for i := 0; i < rows; i++ {
		row := b.RawRowView(i)
		var sum float64
		for j := range a {
			d := math.Sqrt(math.Abs(a[j])) - math.Sqrt(math.Abs(row[j]))
			sum += d * d
		}
		scores[i] = sum / norm
	}
	return scores, nil
}

// TermScore returns the plain sum-of-squared-differences between a and each
// row of b. It is a cheap surrogate distance, not a probability metric; the
// term-term builder pre-transforms its weight vectors with sqrt(exp(x))
// before calling it.
func TermScore(a []float64, b *mat.Dense) ([]float64, error) {
	if err := checkDim(a, b); err != nil {
		return nil, err
	}
	rows, _ := b.Dims()
	scores := make([]float64, rows)
	for i := 0; i < rows; i++ {
		row := b.RawRowView(i)
		var sum float64
		for j := range a {
			d := a[j] - row[j]
			sum += d * d
		}
		scores[i] = sum
	}
	return scores, nil
}
