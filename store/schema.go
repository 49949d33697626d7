package store

import "fmt"

// RelationTable describes one of the six relation tables: its name and the
// two foreign-key columns referencing entity tables. Every relation table
// has the same shape: a surrogate id, two entity references, and a score.
type RelationTable struct {
	Name string
	ColA string
	ColB string
}

// The six relation tables of the schema. Symmetric tables (doc_doc,
// topic_topic, term_term) hold only upper-triangle pairs; consumers must
// query both columns to find all neighbors of an entity.
var (
	DocDoc     = RelationTable{Name: "doc_doc", ColA: "doc_a", ColB: "doc_b"}
	DocTopic   = RelationTable{Name: "doc_topic", ColA: "doc", ColB: "topic"}
	DocTerm    = RelationTable{Name: "doc_term", ColA: "doc", ColB: "term"}
	TopicTerm  = RelationTable{Name: "topic_term", ColA: "topic", ColB: "term"}
	TopicTopic = RelationTable{Name: "topic_topic", ColA: "topic_a", ColB: "topic_b"}
	TermTerm   = RelationTable{Name: "term_term", ColA: "term_a", ColB: "term_b"}
)

// DDL returns the CREATE TABLE statement for the relation table.
func (t RelationTable) DDL() string {
	return fmt.Sprintf(
		"CREATE TABLE %s (id INTEGER PRIMARY KEY, %s INTEGER, %s INTEGER, score FLOAT)",
		t.Name, t.ColA, t.ColB)
}

// IndexDDL returns one CREATE INDEX statement per foreign-key column, so
// lookups by either side of a pair stay O(log N).
func (t RelationTable) IndexDDL() []string {
	return []string{
		fmt.Sprintf("CREATE INDEX %s_idx1 ON %s(%s)", t.Name, t.Name, t.ColA),
		fmt.Sprintf("CREATE INDEX %s_idx2 ON %s(%s)", t.Name, t.Name, t.ColB),
	}
}

// InsertSQL returns the parameterized insert statement for the relation
// table. The surrogate id is left to SQLite.
func (t RelationTable) InsertSQL() string {
	return fmt.Sprintf(
		"INSERT INTO %s (id, %s, %s, score) VALUES (NULL, ?, ?, ?)",
		t.Name, t.ColA, t.ColB)
}

const (
	docsDDL = `CREATE TABLE docs (id INTEGER PRIMARY KEY, title VARCHAR(100), theta BLOB)`

	termsDDL = `CREATE TABLE terms (id INTEGER PRIMARY KEY, title VARCHAR(100))`

	topicsDDL = `CREATE TABLE topics (id INTEGER PRIMARY KEY, title VARCHAR(100), beta BLOB)`
)
