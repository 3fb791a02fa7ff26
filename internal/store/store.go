// Package store provides SQLite-backed persistence for extracted catalogs.
// The database lives at .cdump/catalog.db and holds the result of the most
// recent scan; every save fully replaces the previous snapshot.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/hargabyte/cdump/internal/extract"
	_ "modernc.org/sqlite"
)

// DBFileName is the name of the catalog database file.
const DBFileName = "catalog.db"

// Store manages the .cdump/catalog.db SQLite database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the catalog database in the specified .cdump
// directory. It initializes the schema if the database is new.
func Open(cdumpDir string) (*Store, error) {
	dbPath := filepath.Join(cdumpDir, DBFileName)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	store := &Store{db: db, dbPath: dbPath}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Clear removes all persisted catalog data.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM struct_types; DELETE FROM decl_values; DELETE FROM field_bindings;")
	if err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// DB returns the underlying database connection for advanced operations.
func (s *Store) DB() *sql.DB {
	return s.db
}

// SaveCatalog replaces the persisted snapshot with the given catalog.
// sourceFile records where the catalog came from.
func (s *Store) SaveCatalog(catalog *extract.Catalog, sourceFile string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"struct_types", "decl_values", "field_bindings"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, st := range catalog.SortedTypes() {
		for i, field := range st.Fields {
			_, err := tx.Exec(
				"INSERT INTO struct_types (tag, position, field) VALUES (?, ?, ?)",
				st.Tag, i, field,
			)
			if err != nil {
				return fmt.Errorf("insert struct type %s: %w", st.Tag, err)
			}
		}
	}

	for _, v := range catalog.SortedValues() {
		expr := ""
		if v.Kind == extract.ScalarValue {
			data, err := json.Marshal(v.Expr)
			if err != nil {
				return fmt.Errorf("marshal expr for %s: %w", v.Name, err)
			}
			expr = string(data)
		}
		_, err := tx.Exec(
			"INSERT INTO decl_values (context_tag, name, kind, type_tag, expr, source_file) VALUES (?, ?, ?, ?, ?, ?)",
			v.Context, v.Name, string(v.Kind), v.Type, expr, sourceFile,
		)
		if err != nil {
			return fmt.Errorf("insert value %s: %w", v.Name, err)
		}

		for i, binding := range v.Bindings {
			data, err := json.Marshal(binding.Expr)
			if err != nil {
				return fmt.Errorf("marshal binding expr for %s: %w", v.Name, err)
			}
			_, err = tx.Exec(
				"INSERT INTO field_bindings (context_tag, name, position, field, expr) VALUES (?, ?, ?, ?, ?)",
				v.Context, v.Name, i, binding.Field, string(data),
			)
			if err != nil {
				return fmt.Errorf("insert binding for %s: %w", v.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// LoadCatalog reads the persisted snapshot back into a catalog.
func (s *Store) LoadCatalog() (*extract.Catalog, error) {
	catalog := extract.NewCatalog()

	rows, err := s.db.Query("SELECT tag, field FROM struct_types ORDER BY tag, position")
	if err != nil {
		return nil, fmt.Errorf("query struct types: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tag, field string
		if err := rows.Scan(&tag, &field); err != nil {
			return nil, fmt.Errorf("scan struct type: %w", err)
		}
		st := catalog.Types[tag]
		if st == nil {
			st = &extract.StructType{Tag: tag}
			catalog.Types[tag] = st
		}
		st.Fields = append(st.Fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate struct types: %w", err)
	}

	valueRows, err := s.db.Query("SELECT context_tag, name, kind, type_tag, expr FROM decl_values")
	if err != nil {
		return nil, fmt.Errorf("query values: %w", err)
	}
	defer valueRows.Close()
	for valueRows.Next() {
		var context, name, kind, typeTag, expr string
		if err := valueRows.Scan(&context, &name, &kind, &typeTag, &expr); err != nil {
			return nil, fmt.Errorf("scan value: %w", err)
		}
		v := &extract.Value{
			Kind:    extract.ValueKind(kind),
			Context: context,
			Type:    typeTag,
			Name:    name,
		}
		if expr != "" {
			if err := json.Unmarshal([]byte(expr), &v.Expr); err != nil {
				return nil, fmt.Errorf("unmarshal expr for %s: %w", name, err)
			}
		}
		catalog.Values[extract.ValueKey{Tag: context, Name: name}] = v
	}
	if err := valueRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate values: %w", err)
	}

	bindingRows, err := s.db.Query("SELECT context_tag, name, field, expr FROM field_bindings ORDER BY context_tag, name, position")
	if err != nil {
		return nil, fmt.Errorf("query bindings: %w", err)
	}
	defer bindingRows.Close()
	for bindingRows.Next() {
		var context, name, field, expr string
		if err := bindingRows.Scan(&context, &name, &field, &expr); err != nil {
			return nil, fmt.Errorf("scan binding: %w", err)
		}
		v := catalog.Values[extract.ValueKey{Tag: context, Name: name}]
		if v == nil {
			continue
		}
		binding := extract.FieldBinding{Field: field}
		if err := json.Unmarshal([]byte(expr), &binding.Expr); err != nil {
			return nil, fmt.Errorf("unmarshal binding expr for %s: %w", name, err)
		}
		v.Bindings = append(v.Bindings, binding)
	}
	if err := bindingRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bindings: %w", err)
	}

	return catalog, nil
}

// StructType returns the persisted type entry for a tag, or nil if the
// tag is unknown.
func (s *Store) StructType(tag string) (*extract.StructType, error) {
	rows, err := s.db.Query("SELECT field FROM struct_types WHERE tag = ? ORDER BY position", tag)
	if err != nil {
		return nil, fmt.Errorf("query struct type: %w", err)
	}
	defer rows.Close()

	var st *extract.StructType
	for rows.Next() {
		var field string
		if err := rows.Scan(&field); err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		if st == nil {
			st = &extract.StructType{Tag: tag}
		}
		st.Fields = append(st.Fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fields: %w", err)
	}
	return st, nil
}

// ValuesNamed returns all persisted values with the given declared name,
// across every context tag.
func (s *Store) ValuesNamed(name string) ([]*extract.Value, error) {
	catalog, err := s.LoadCatalog()
	if err != nil {
		return nil, err
	}

	var values []*extract.Value
	for _, v := range catalog.SortedValues() {
		if v.Name == name {
			values = append(values, v)
		}
	}
	return values, nil
}

// Tags returns all persisted struct tags in sorted order.
func (s *Store) Tags() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT tag FROM struct_types ORDER BY tag")
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}
