package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// LoadMatrix reads a dense weight matrix: one row per line, columns separated
// by whitespace. Every row must have the same width; a ragged or unparseable
// line fails with the file name and 1-based line number.
func LoadMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open matrix: %w", err)
	}
	defer f.Close()

	var (
		data []float64
		rows int
		cols int
	)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if cols == 0 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, fmt.Errorf("corpus: %s:%d: row has %d columns, want %d", path, line, len(fields), cols)
		}
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("corpus: %s:%d: bad float %q: %w", path, line, field, err)
			}
			data = append(data, v)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("corpus: read %s: %w", path, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("corpus: %s: empty matrix file", path)
	}
	return mat.NewDense(rows, cols, data), nil
}

// LoadLines reads a one-entry-per-line file (vocabulary tokens or document
// titles), stripping surrounding whitespace. An empty file is an error.
func LoadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open lines: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("corpus: read %s: %w", path, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("corpus: %s: empty file", path)
	}
	return lines, nil
}

// TermCount is one sparse word-count entry: term occurs Count times in the
// document whose line it was read from.
type TermCount struct {
	Term  int64
	Count int64
}

// LoadWordCounts reads the sparse document word-count file. Each line is
// "<ignored> term:count term:count ...": the leading token (typically the
// number of unique terms) is skipped, the rest map a 0-based vocabulary id to
// an occurrence count. A term id outside [0, vocabSize) or a malformed entry
// fails with the file name and 1-based line number. The outer slice is
// indexed by document id.
func LoadWordCounts(path string, vocabSize int) ([][]TermCount, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open word counts: %w", err)
	}
	defer f.Close()

	var docs [][]TermCount
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			docs = append(docs, nil)
			continue
		}
		counts := make([]TermCount, 0, len(fields)-1)
		for _, field := range fields[1:] {
			sep := strings.IndexByte(field, ':')
			if sep < 0 {
				return nil, fmt.Errorf("corpus: %s:%d: bad word-count entry %q: want term:count", path, line, field)
			}
			term, err := strconv.ParseInt(field[:sep], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("corpus: %s:%d: bad term id in %q: %w", path, line, field, err)
			}
			count, err := strconv.ParseInt(field[sep+1:], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("corpus: %s:%d: bad count in %q: %w", path, line, field, err)
			}
			if term < 0 || term >= int64(vocabSize) {
				return nil, fmt.Errorf("corpus: %s:%d: term id %d out of range [0, %d)", path, line, term, vocabSize)
			}
			counts = append(counts, TermCount{Term: term, Count: count})
		}
		docs = append(docs, counts)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("corpus: read %s: %w", path, err)
	}
	return docs, nil
}
