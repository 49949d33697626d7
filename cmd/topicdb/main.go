package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/modelrel/topicdb/pipeline"
)

func main() {
	var cfg pipeline.Config
	flag.StringVar(&cfg.DBPath, "db", "", "path of the SQLite database to create")
	flag.StringVar(&cfg.WordCounts, "wordcounts", "", "per-document term:count file")
	flag.StringVar(&cfg.Beta, "beta", "", "topic-term weight matrix file")
	flag.StringVar(&cfg.Gamma, "gamma", "", "document-topic weight matrix file")
	flag.StringVar(&cfg.Vocab, "vocab", "", "vocabulary file, one term per line")
	flag.StringVar(&cfg.DocTitles, "titles", "", "document titles file, one per line")
	flag.Parse()

	if cfg.DBPath == "" || cfg.WordCounts == "" || cfg.Beta == "" ||
		cfg.Gamma == "" || cfg.Vocab == "" || cfg.DocTitles == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := pipeline.Run(context.Background(), cfg); err != nil {
		log.Fatalf("topicdb: %v", err)
	}
	log.Printf("done")
}
