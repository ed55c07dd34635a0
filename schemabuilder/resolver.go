package schemabuilder

import (
	"context"
	"fmt"

	"go.appointy.com/tablegql/graphql"
	"go.appointy.com/tablegql/sqlmeta"
)

// Record is one loaded row, keyed by column name.
type Record map[string]interface{}

// TaggedRecord is a record together with the table it originates from.
// checkDelete returns these so the union resolver can recover the concrete
// entity type of each result.
type TaggedRecord struct {
	Table  string
	Record Record
}

// ReferenceFinder locates, across all tables, the records whose
// relationships reference the given row. It is the storage collaborator
// behind checkDelete; the schema builder only schedules it.
type ReferenceFinder interface {
	FindReferencing(ctx context.Context, table string, id string) ([]TaggedRecord, error)
}

// OperationResolvers supplies the storage resolvers bound to the generated
// operation fields of each entity. Implementations run the actual
// SELECT/INSERT/UPDATE/DELETE; the schema builder treats them as opaque.
// A nil resolver leaves the field on the execution engine's default.
type OperationResolvers interface {
	Create(table sqlmeta.Table, mapper *sqlmeta.Mapper) graphql.Resolver
	Update(table sqlmeta.Table, mapper *sqlmeta.Mapper) graphql.Resolver
	Delete(table sqlmeta.Table, mapper *sqlmeta.Mapper) graphql.Resolver
	Single(table sqlmeta.Table, mapper *sqlmeta.Mapper) graphql.Resolver
	Many(table sqlmeta.Table, mapper *sqlmeta.Mapper) graphql.Resolver
}

// EnumResolver decodes a stored raw value into its enum label on read.
func EnumResolver(e *graphql.Enum, column string) graphql.Resolver {
	return func(ctx context.Context, source, args interface{}) (interface{}, error) {
		record, ok := source.(map[string]interface{})
		if !ok {
			if r, ok := source.(Record); ok {
				record = r
			} else {
				return nil, nil
			}
		}
		raw, ok := record[column]
		if !ok || raw == nil {
			return nil, nil
		}
		if label, ok := e.ReverseMap[raw]; ok {
			return label, nil
		}
		return raw, nil
	}
}

// ResultResolver reads the result slot of a payload.
func ResultResolver() graphql.Resolver {
	return func(ctx context.Context, source, args interface{}) (interface{}, error) {
		return payloadSlot(source, "result"), nil
	}
}

// CountResolver reads the count slot of a list payload, falling back to
// the length of the result slice.
func CountResolver() graphql.Resolver {
	return func(ctx context.Context, source, args interface{}) (interface{}, error) {
		if count := payloadSlot(source, "count"); count != nil {
			return count, nil
		}
		if result, ok := payloadSlot(source, "result").([]interface{}); ok {
			return len(result), nil
		}
		return 0, nil
	}
}

func payloadSlot(source interface{}, slot string) interface{} {
	switch p := source.(type) {
	case Record:
		return p[slot]
	case map[string]interface{}:
		return p[slot]
	default:
		return nil
	}
}

// CheckDeleteResolver scans every table for records referencing the row
// identified by the tableName and id arguments. With no finder configured
// it resolves to an empty list.
func CheckDeleteResolver(finder ReferenceFinder) graphql.Resolver {
	return func(ctx context.Context, source, args interface{}) (interface{}, error) {
		if finder == nil {
			return []interface{}{}, nil
		}
		argMap, ok := args.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("checkDelete: malformed arguments")
		}
		table, _ := argMap["tableName"].(string)
		id := fmt.Sprintf("%v", argMap["id"])
		tagged, err := finder.FindReferencing(ctx, table, id)
		if err != nil {
			return nil, err
		}
		out := make([]interface{}, len(tagged))
		for i, tr := range tagged {
			out[i] = tr
		}
		return out, nil
	}
}

// tableUnionResolver recovers the concrete entity type name of a
// checkDelete result from its originating table.
func tableUnionResolver(value interface{}) (string, error) {
	tr, ok := value.(TaggedRecord)
	if !ok {
		return "", fmt.Errorf("checkDelete: value %T is not a tagged record", value)
	}
	return TypeName(tr.Table), nil
}
