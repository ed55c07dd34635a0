// Package sqlmeta describes relational tables, columns and relationships
// the way the schema builder consumes them, independent of any particular
// database or driver.
package sqlmeta

import "errors"

// ErrNoMapper reports that a table has no mapped application model.
// Unmapped tables (junction tables, audit tables) are skipped by the
// schema builder with a warning.
var ErrNoMapper = errors.New("sqlmeta: no mapper for table")

// ColumnKind is the storage-type category of a column.
type ColumnKind int

const (
	KindUnknown ColumnKind = iota
	KindString
	KindText
	KindURL
	KindEmail
	KindPhone
	KindJSON
	KindDate
	KindDateTime
	KindTime
	KindInt
	KindFloat
	KindDecimal
	KindBoolean
	KindEnum
)

var kindNames = map[ColumnKind]string{
	KindUnknown:  "unknown",
	KindString:   "string",
	KindText:     "text",
	KindURL:      "url",
	KindEmail:    "email",
	KindPhone:    "phone",
	KindJSON:     "json",
	KindDate:     "date",
	KindDateTime: "datetime",
	KindTime:     "time",
	KindInt:      "int",
	KindFloat:    "float",
	KindDecimal:  "decimal",
	KindBoolean:  "boolean",
	KindEnum:     "enum",
}

func (k ColumnKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Column describes one table column.
type Column struct {
	Name       string
	Kind       ColumnKind
	Nullable   bool
	PrimaryKey bool
	ForeignKey bool

	// EnumValues holds the allowed raw values when Kind is KindEnum.
	EnumValues []string
}

// Cardinality of a relationship as seen from the owning table.
type Cardinality int

const (
	ToOne Cardinality = iota
	ToMany
)

func (c Cardinality) String() string {
	if c == ToMany {
		return "toMany"
	}
	return "toOne"
}

// Relationship is an edge from the owning table to a target table.
type Relationship struct {
	Name        string
	Target      string
	Cardinality Cardinality

	// ForeignKeyNullable is the nullability of the owning foreign key
	// column. It decides whether the relationship is required.
	ForeignKeyNullable bool
}

// Required reports whether the relationship must be present on create.
// A toMany relationship is never required.
func (r Relationship) Required() bool {
	return r.Cardinality == ToOne && !r.ForeignKeyNullable
}

// Table describes one relational table.
type Table struct {
	Name          string
	Columns       []Column
	Relationships []Relationship
}

// PrimaryKey returns the table's primary key column.
func (t Table) PrimaryKey() (Column, bool) {
	for _, c := range t.Columns {
		if c.PrimaryKey {
			return c, true
		}
	}
	return Column{}, false
}

// Mapper is the application-level model mapped to a table. The schema
// builder only requires that one exists; resolvers receive it opaquely as
// the storage handle.
type Mapper struct {
	Table string
	Model interface{}
}

// Source supplies table metadata to the schema builder.
type Source interface {
	// Tables returns the table descriptors in a stable order. The order
	// must be deterministic; it fixes the schema output order.
	Tables() []Table

	// Mapper returns the mapped model for a table, or ErrNoMapper when
	// the table has none.
	Mapper(table string) (*Mapper, error)
}

// MapSource is a Source backed by in-memory descriptors. Tables are
// unmapped until Map is called for them.
type MapSource struct {
	tables  []Table
	mappers map[string]*Mapper
}

// NewMapSource builds a MapSource over the given tables.
func NewMapSource(tables ...Table) *MapSource {
	return &MapSource{tables: tables, mappers: make(map[string]*Mapper)}
}

// Map registers a model for a table, marking it mapped.
func (s *MapSource) Map(table string, model interface{}) {
	s.mappers[table] = &Mapper{Table: table, Model: model}
}

func (s *MapSource) Tables() []Table {
	tables := make([]Table, len(s.tables))
	copy(tables, s.tables)
	return tables
}

func (s *MapSource) Mapper(table string) (*Mapper, error) {
	m, ok := s.mappers[table]
	if !ok {
		return nil, ErrNoMapper
	}
	return m, nil
}

var _ Source = (*MapSource)(nil)
