// Package relation builds the pairwise relation row streams that the store
// materializes: nearest documents per document, topic composition per
// document, dominant terms per topic, and the symmetric topic-topic and
// term-term comparisons. Symmetric relations are computed over the upper
// triangle only (candidate index >= reference index), so the full symmetric
// closure is never materialized; consumers must query both sides of a pair.
package relation
