package store

// schemaSQL defines the SQLite schema for the catalog database.
// Tables:
//   - struct_types: one row per (tag, position) holding an ordered field name
//   - decl_values: one row per cataloged value, keyed by (context_tag, name)
//   - field_bindings: ordered field bindings for struct instances
const schemaSQL = `
CREATE TABLE IF NOT EXISTS struct_types (
    tag TEXT NOT NULL,
    position INTEGER NOT NULL,
    field TEXT NOT NULL,
    PRIMARY KEY (tag, position)
);

CREATE TABLE IF NOT EXISTS decl_values (
    context_tag TEXT NOT NULL DEFAULT '',
    name TEXT NOT NULL,
    kind TEXT NOT NULL,
    type_tag TEXT NOT NULL DEFAULT '',
    expr TEXT NOT NULL DEFAULT '',
    source_file TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (context_tag, name)
);

CREATE TABLE IF NOT EXISTS field_bindings (
    context_tag TEXT NOT NULL,
    name TEXT NOT NULL,
    position INTEGER NOT NULL,
    field TEXT NOT NULL,
    expr TEXT NOT NULL,
    PRIMARY KEY (context_tag, name, position)
);

CREATE INDEX IF NOT EXISTS idx_decl_values_name ON decl_values(name);
`

// initSchema creates the database tables and indexes if they don't exist.
func (s *Store) initSchema() error {
	_, err := s.db.Exec(schemaSQL)
	return err
}
