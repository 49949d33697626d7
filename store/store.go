package store

import (
	"context"
	"database/sql"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/modelrel/topicdb/relation"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// Store writes topic-model entities and relations to a SQLite database. The
// target database is presumed empty: every table is created fresh and
// populated exactly once.
type Store struct {
	db *sql.DB
}

// Open opens a SQLite database using the modernc.org/sqlite driver. For
// file-based databases, pass a path like "./model.db"; for in-memory
// databases, pass ":memory:".
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dsn, err)
	}
	// The pipeline is a single sequential writer; one connection also keeps
	// an in-memory database visible across statements.
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// DB exposes the underlying connection, mainly for tests and for callers
// that register SQL functions before first use.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the database connection.
func (s *Store) Close() error { return s.db.Close() }

// WriteTerms creates the terms table and inserts one row per vocabulary
// token, with explicit 0-based ids matching the token's line index.
func (s *Store) WriteTerms(ctx context.Context, titles []string) error {
	if _, err := s.db.ExecContext(ctx, termsDDL); err != nil {
		return fmt.Errorf("store: create terms: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO terms (id, title) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, title := range titles {
		if _, err := stmt.ExecContext(ctx, i, title); err != nil {
			return fmt.Errorf("store: insert term %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// WriteDocs creates the docs table and inserts one row per document title,
// with explicit 0-based ids. When theta is non-nil, each row also stores the
// document's normalized topic distribution as a float32 BLOB for in-SQL
// scoring via the registered distance functions.
func (s *Store) WriteDocs(ctx context.Context, titles []string, theta *mat.Dense) error {
	if _, err := s.db.ExecContext(ctx, docsDDL); err != nil {
		return fmt.Errorf("store: create docs: %w", err)
	}
	if theta != nil {
		if rows, _ := theta.Dims(); rows != len(titles) {
			return fmt.Errorf("store: %d document titles but theta has %d rows", len(titles), rows)
		}
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO docs (id, title, theta) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, title := range titles {
		var blob []byte
		if theta != nil {
			blob = EncodeWeights(theta.RawRowView(i))
		}
		if _, err := stmt.ExecContext(ctx, i, title, blob); err != nil {
			return fmt.Errorf("store: insert doc %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// WriteTopics creates the topics table and inserts one row per derived topic
// title, with explicit 0-based ids. When beta is non-nil, each row also
// stores the topic's term-weight vector as a float32 BLOB.
func (s *Store) WriteTopics(ctx context.Context, titles []string, beta *mat.Dense) error {
	if _, err := s.db.ExecContext(ctx, topicsDDL); err != nil {
		return fmt.Errorf("store: create topics: %w", err)
	}
	if beta != nil {
		if rows, _ := beta.Dims(); rows != len(titles) {
			return fmt.Errorf("store: %d topic titles but beta has %d rows", len(titles), rows)
		}
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO topics (id, title, beta) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, title := range titles {
		var blob []byte
		if beta != nil {
			blob = EncodeWeights(beta.RawRowView(i))
		}
		if _, err := stmt.ExecContext(ctx, i, title, blob); err != nil {
			return fmt.Errorf("store: insert topic %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// RowGen produces a relation's rows by calling emit once per row. The store
// never holds more than the current row in memory; the generator controls
// how the stream is produced.
type RowGen func(emit relation.EmitFunc) error

// WriteRelation creates a relation table with its two foreign-key indexes,
// then streams the generator's rows through a single prepared statement
// inside one transaction. The DDL commits before any insert; the row stream
// commits once, after the generator completes. A generator error aborts the
// transaction, leaving the table created but empty of uncommitted rows.
func (s *Store) WriteRelation(ctx context.Context, table RelationTable, gen RowGen) error {
	if _, err := s.db.ExecContext(ctx, table.DDL()); err != nil {
		return fmt.Errorf("store: create %s: %w", table.Name, err)
	}
	for _, ddl := range table.IndexDDL() {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("store: index %s: %w", table.Name, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, table.InsertSQL())
	if err != nil {
		return err
	}
	defer stmt.Close()

	emit := func(r relation.Row) error {
		if _, err := stmt.ExecContext(ctx, r.A, r.B, r.Score); err != nil {
			return fmt.Errorf("store: insert %s (%d, %d): %w", table.Name, r.A, r.B, err)
		}
		return nil
	}
	if err := gen(emit); err != nil {
		return err
	}
	return tx.Commit()
}
