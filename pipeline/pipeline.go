// Package pipeline runs the fixed-order materialization of a trained topic
// model into a SQLite database: entity tables first, then each relation
// table in turn. Steps are strictly sequential; each step's transaction
// commits before the next begins, and the first error aborts the run.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/modelrel/topicdb/corpus"
	"github.com/modelrel/topicdb/relation"
	"github.com/modelrel/topicdb/store"
)

// Config names the input files and the target database for one run. The
// database is presumed to not already exist; a prior run's tables make the
// CREATE TABLE statements fail, which aborts the run.
type Config struct {
	DBPath     string
	WordCounts string // sparse per-document term counts
	Beta       string // topic-term weight matrix
	Gamma      string // document-topic weight matrix
	Vocab      string // one term per line
	DocTitles  string // one document title per line
}

// Run materializes all nine tables. Inputs are read into memory once per
// matrix and shared across the steps that need them.
func Run(ctx context.Context, cfg Config) error {
	vocab, err := corpus.LoadLines(cfg.Vocab)
	if err != nil {
		return err
	}
	docTitles, err := corpus.LoadLines(cfg.DocTitles)
	if err != nil {
		return err
	}
	gamma, err := corpus.LoadMatrix(cfg.Gamma)
	if err != nil {
		return err
	}
	beta, err := corpus.LoadMatrix(cfg.Beta)
	if err != nil {
		return err
	}
	if _, cols := beta.Dims(); cols != len(vocab) {
		return fmt.Errorf("pipeline: beta has %d columns but vocabulary %s has %d terms", cols, cfg.Vocab, len(vocab))
	}
	counts, err := corpus.LoadWordCounts(cfg.WordCounts, len(vocab))
	if err != nil {
		return err
	}

	if err := store.RegisterDistanceFunctions(); err != nil {
		return err
	}
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	theta := relation.Normalize(gamma)

	log.Printf("writing terms...")
	if err := db.WriteTerms(ctx, vocab); err != nil {
		return err
	}

	log.Printf("writing docs...")
	if err := db.WriteDocs(ctx, docTitles, theta); err != nil {
		return err
	}

	log.Printf("writing doc_doc...")
	if err := db.WriteRelation(ctx, store.DocDoc, func(emit relation.EmitFunc) error {
		return relation.DocDoc(theta, emit)
	}); err != nil {
		return err
	}

	log.Printf("writing doc_topic...")
	if err := db.WriteRelation(ctx, store.DocTopic, func(emit relation.EmitFunc) error {
		return relation.DocTopic(gamma, emit)
	}); err != nil {
		return err
	}

	log.Printf("writing topics...")
	titles, err := relation.TopicTitles(beta, vocab)
	if err != nil {
		return err
	}
	if err := db.WriteTopics(ctx, titles, beta); err != nil {
		return err
	}

	log.Printf("writing topic_term...")
	if err := db.WriteRelation(ctx, store.TopicTerm, func(emit relation.EmitFunc) error {
		return relation.TopicTerm(beta, emit)
	}); err != nil {
		return err
	}

	log.Printf("writing topic_topic...")
	if err := db.WriteRelation(ctx, store.TopicTopic, func(emit relation.EmitFunc) error {
		return relation.TopicTopic(beta, emit)
	}); err != nil {
		return err
	}

	log.Printf("writing term_term...")
	if err := db.WriteRelation(ctx, store.TermTerm, func(emit relation.EmitFunc) error {
		return relation.TermTerm(beta, emit)
	}); err != nil {
		return err
	}

	log.Printf("writing doc_term...")
	if err := db.WriteRelation(ctx, store.DocTerm, func(emit relation.EmitFunc) error {
		return relation.DocTerm(counts, emit)
	}); err != nil {
		return err
	}

	return nil
}
