// Package corpus parses the plain-text outputs of a trained topic model:
// dense weight matrices (one whitespace-separated float row per line), line
// lists (vocabulary tokens, document titles), and sparse per-document word
// counts. Parsers validate shape up front so that malformed inputs fail the
// run before any table is written.
package corpus
