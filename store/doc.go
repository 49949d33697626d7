// Package store materializes topic-model entities and relations into a
// SQLite database through the pure-Go modernc.org/sqlite driver. It owns the
// nine-table schema (three entity tables, six relation tables), the
// foreign-key indexes on every relation column, and the streaming bulk
// insert path that writes each table inside a single transaction. The store
// is write-once per run: tables are created fresh and never updated.
package store
