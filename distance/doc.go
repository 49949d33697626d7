// Package distance computes distance and similarity scores between one
// reference distribution and a batch of candidate distributions. Every
// function takes a 1d reference vector and a matrix of candidates (one
// candidate per row) and returns one score per candidate row.
//
// The functions assume, but do not enforce, that their inputs are
// non-negative probability-like vectors where the metric requires it;
// normalization is the caller's responsibility. Degenerate inputs (zero
// vectors, non-positive entries under a log) produce NaN or Inf scores,
// which propagate to the caller rather than being substituted.
package distance
