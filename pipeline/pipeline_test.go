package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelrel/topicdb/store"
)

// Three documents over two topics and a three-term vocabulary. Documents 0
// and 1 have identical topic mixes, so their pair is excluded from doc_doc
// by the zero-distance rule.
func writeTestCorpus(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}
	return Config{
		DBPath:     filepath.Join(dir, "model.db"),
		Gamma:      write("gamma.txt", "1 1\n2 2\n9 1\n"),
		Beta:       write("beta.txt", "0.1 0.7 0.2\n0.5 0.2 0.3\n"),
		Vocab:      write("vocab.txt", "a\nb\nc\n"),
		DocTitles:  write("titles.txt", "doc one\ndoc two\ndoc three\n"),
		WordCounts: write("counts.txt", "2 0:3 2:1\n1 1:2\n1 2:5\n"),
	}
}

func TestRun(t *testing.T) {
	cfg := writeTestCorpus(t)
	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	s, err := store.Open(cfg.DBPath)
	if err != nil {
		t.Fatalf("reopen database failed: %v", err)
	}
	defer s.Close()
	db := s.DB()

	count := func(query string, args ...any) int {
		t.Helper()
		var n int
		if err := db.QueryRow(query, args...).Scan(&n); err != nil {
			t.Fatalf("%s: %v", query, err)
		}
		return n
	}

	if got := count(`SELECT COUNT(*) FROM docs`); got != 3 {
		t.Fatalf("docs count = %d, want 3", got)
	}
	if got := count(`SELECT COUNT(*) FROM terms`); got != 3 {
		t.Fatalf("terms count = %d, want 3", got)
	}
	if got := count(`SELECT COUNT(*) FROM topics`); got != 2 {
		t.Fatalf("topics count = %d, want 2", got)
	}

	// Topic labels come from the top-3 weighted terms in descending order.
	var title string
	if err := db.QueryRow(`SELECT title FROM topics WHERE id = 0`).Scan(&title); err != nil {
		t.Fatalf("select topic 0 title: %v", err)
	}
	if title != "{b, c, a}" {
		t.Fatalf("topic 0 title = %q, want {b, c, a}", title)
	}

	// doc_doc: pairs (0,2) and (1,2) survive; the identical pair (0,1) and
	// all self-pairs are zero-distance and excluded.
	if got := count(`SELECT COUNT(*) FROM doc_doc`); got != 2 {
		t.Fatalf("doc_doc count = %d, want 2", got)
	}
	if got := count(`SELECT COUNT(*) FROM doc_doc WHERE doc_a = doc_b`); got != 0 {
		t.Fatalf("doc_doc has %d self-pairs, want 0", got)
	}
	if got := count(`SELECT COUNT(*) FROM doc_doc WHERE doc_b < doc_a`); got != 0 {
		t.Fatalf("doc_doc has %d lower-triangle pairs, want 0", got)
	}

	// doc_topic is dense: every document crossed with every topic, raw
	// gamma weights as scores.
	if got := count(`SELECT COUNT(*) FROM doc_topic`); got != 6 {
		t.Fatalf("doc_topic count = %d, want 6", got)
	}
	var score float64
	if err := db.QueryRow(`SELECT score FROM doc_topic WHERE doc = 2 AND topic = 0`).Scan(&score); err != nil {
		t.Fatalf("select doc_topic(2,0): %v", err)
	}
	if score != 9 {
		t.Fatalf("doc_topic(2,0) score = %v, want raw gamma weight 9", score)
	}

	// topic_term is dense and ordered by descending weight per topic.
	if got := count(`SELECT COUNT(*) FROM topic_term`); got != 6 {
		t.Fatalf("topic_term count = %d, want 6", got)
	}
	var firstTerm int
	err = db.QueryRow(
		`SELECT term FROM topic_term WHERE topic = 0 ORDER BY id LIMIT 1`,
	).Scan(&firstTerm)
	if err != nil {
		t.Fatalf("select first topic_term row: %v", err)
	}
	if firstTerm != 1 {
		t.Fatalf("topic 0 first term = %d, want heaviest term 1", firstTerm)
	}

	// topic_topic keeps the dense upper triangle including self-pairs.
	if got := count(`SELECT COUNT(*) FROM topic_topic`); got != 3 {
		t.Fatalf("topic_topic count = %d, want 3", got)
	}
	if got := count(`SELECT COUNT(*) FROM topic_topic WHERE topic_b < topic_a`); got != 0 {
		t.Fatalf("topic_topic has %d lower-triangle pairs, want 0", got)
	}

	// term_term: all three term vectors are distinct, so the strict upper
	// triangle survives in full.
	if got := count(`SELECT COUNT(*) FROM term_term`); got != 3 {
		t.Fatalf("term_term count = %d, want 3", got)
	}
	if got := count(`SELECT COUNT(*) FROM term_term WHERE term_a = term_b`); got != 0 {
		t.Fatalf("term_term has %d self-pairs, want 0", got)
	}

	// doc_term holds one row per nonzero count.
	if got := count(`SELECT COUNT(*) FROM doc_term`); got != 4 {
		t.Fatalf("doc_term count = %d, want 4", got)
	}
	if err := db.QueryRow(`SELECT score FROM doc_term WHERE doc = 0 AND term = 0`).Scan(&score); err != nil {
		t.Fatalf("select doc_term(0,0): %v", err)
	}
	if score != 3 {
		t.Fatalf("doc_term(0,0) score = %v, want 3", score)
	}

	// Documents 0 and 1 store identical theta BLOBs; the registered SQL
	// distance functions see them at zero distance.
	var d float64
	err = db.QueryRow(
		`SELECT dist_l2(a.theta, b.theta) FROM docs a, docs b WHERE a.id = 0 AND b.id = 1`,
	).Scan(&d)
	if err != nil {
		t.Fatalf("dist_l2 over stored thetas: %v", err)
	}
	if d != 0 {
		t.Fatalf("dist_l2(doc0, doc1) = %v, want 0", d)
	}
}

func TestRunFailsOnRaggedMatrix(t *testing.T) {
	cfg := writeTestCorpus(t)
	if err := os.WriteFile(cfg.Gamma, []byte("1 1\n2\n"), 0o644); err != nil {
		t.Fatalf("rewrite gamma: %v", err)
	}

	if err := Run(context.Background(), cfg); err == nil {
		t.Fatalf("Run on ragged gamma should fail")
	}
}

func TestRunFailsOnExistingTables(t *testing.T) {
	cfg := writeTestCorpus(t)
	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if err := Run(context.Background(), cfg); err == nil {
		t.Fatalf("second Run against the same database should fail")
	}
}
