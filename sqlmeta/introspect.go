package sqlmeta

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"
)

const columnQuery = `SELECT TABLE_NAME, COLUMN_NAME, DATA_TYPE, COLUMN_TYPE, IS_NULLABLE, COLUMN_KEY
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = ?
ORDER BY TABLE_NAME, ORDINAL_POSITION`

const foreignKeyQuery = `SELECT TABLE_NAME, COLUMN_NAME, REFERENCED_TABLE_NAME
FROM information_schema.KEY_COLUMN_USAGE
WHERE TABLE_SCHEMA = ? AND REFERENCED_TABLE_NAME IS NOT NULL
ORDER BY TABLE_NAME, COLUMN_NAME`

// Introspect loads table descriptors for one database schema from
// information_schema. Foreign keys become a toOne relationship on the
// owning table and a toMany relationship back from the referenced table.
func Introspect(ctx context.Context, db *sql.DB, database string) ([]Table, error) {
	rows, err := db.QueryContext(ctx, columnQuery, database)
	if err != nil {
		return nil, fmt.Errorf("sqlmeta: querying columns: %w", err)
	}
	defer rows.Close()

	var order []string
	byName := make(map[string]*Table)
	for rows.Next() {
		var table, column, dataType, columnType, nullable, key string
		if err := rows.Scan(&table, &column, &dataType, &columnType, &nullable, &key); err != nil {
			return nil, fmt.Errorf("sqlmeta: scanning column row: %w", err)
		}
		t, ok := byName[table]
		if !ok {
			t = &Table{Name: table}
			byName[table] = t
			order = append(order, table)
		}
		col := Column{
			Name:       column,
			Kind:       MapKind(dataType),
			Nullable:   strings.EqualFold(nullable, "YES"),
			PrimaryKey: strings.EqualFold(key, "PRI"),
		}
		if col.Kind == KindEnum {
			col.EnumValues = parseEnumValues(columnType)
		}
		t.Columns = append(t.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlmeta: reading column rows: %w", err)
	}

	fkRows, err := db.QueryContext(ctx, foreignKeyQuery, database)
	if err != nil {
		return nil, fmt.Errorf("sqlmeta: querying foreign keys: %w", err)
	}
	defer fkRows.Close()

	for fkRows.Next() {
		var table, column, target string
		if err := fkRows.Scan(&table, &column, &target); err != nil {
			return nil, fmt.Errorf("sqlmeta: scanning foreign key row: %w", err)
		}
		owner, ok := byName[table]
		if !ok {
			continue
		}
		nullable := true
		for i := range owner.Columns {
			if owner.Columns[i].Name == column {
				owner.Columns[i].ForeignKey = true
				nullable = owner.Columns[i].Nullable
			}
		}
		owner.Relationships = append(owner.Relationships, Relationship{
			Name:               strings.TrimSuffix(column, "_id"),
			Target:             target,
			Cardinality:        ToOne,
			ForeignKeyNullable: nullable,
		})
		if referenced, ok := byName[target]; ok {
			referenced.Relationships = append(referenced.Relationships, Relationship{
				Name:               inflect.Pluralize(table),
				Target:             table,
				Cardinality:        ToMany,
				ForeignKeyNullable: true,
			})
		}
	}
	if err := fkRows.Err(); err != nil {
		return nil, fmt.Errorf("sqlmeta: reading foreign key rows: %w", err)
	}

	tables := make([]Table, 0, len(order))
	for _, name := range order {
		tables = append(tables, *byName[name])
	}
	return tables, nil
}

// parseEnumValues extracts the quoted values from a COLUMN_TYPE string
// like enum('draft','published').
func parseEnumValues(columnType string) []string {
	open := strings.Index(columnType, "(")
	close := strings.LastIndex(columnType, ")")
	if open == -1 || close == -1 || close < open {
		return nil
	}
	var values []string
	for _, part := range strings.Split(columnType[open+1:close], ",") {
		values = append(values, strings.Trim(strings.TrimSpace(part), "'"))
	}
	return values
}
