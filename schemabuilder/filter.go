package schemabuilder

import (
	"go.appointy.com/tablegql/graphql"
	"go.appointy.com/tablegql/sqlmeta"
)

// Filter inputs all share the shape {operator: <enum>, value: <scalar>}.
// They carry no per-entity state, so one immutable instance of each is
// built at process init and referenced by every entity's filter type.

func operatorEnum(name string, ops ...string) *graphql.Enum {
	e := &graphql.Enum{Type: name}
	for _, op := range ops {
		e.AddValue(op, op)
	}
	return e
}

func filterInput(name string, operator *graphql.Enum, value graphql.Type) *graphql.InputObject {
	io := &graphql.InputObject{Name: name}
	io.AddField("operator", operator)
	io.AddField("value", value)
	return io
}

var (
	// StringFilter matches string-like columns: substring or equality.
	StringFilter = filterInput("StringFilter",
		operatorEnum("StringOperator", "INCLUDES", "EQUALS"), graphql.String)

	// DateFilter matches date, datetime and time columns.
	DateFilter = filterInput("DateFilter",
		operatorEnum("DateOperator", "BEFORE", "ON", "AFTER"), graphql.String)

	// IntFilter matches integer columns.
	IntFilter = filterInput("IntFilter",
		operatorEnum("IntOperator", "lt", "lte", "eq", "neq", "gt", "gte"), graphql.Int)

	// FloatFilter matches float and decimal columns.
	FloatFilter = filterInput("FloatFilter",
		operatorEnum("FloatOperator", "lt", "lte", "eq", "neq", "gt", "gte"), graphql.Float)

	// BooleanFilter matches boolean columns.
	BooleanFilter = filterInput("BooleanFilter",
		operatorEnum("BooleanOperator", "EQUALS", "NOTEQUALS"), graphql.Boolean)

	// RelFilter matches relationship fields: equality against the target
	// id for toOne, containment for toMany.
	RelFilter = filterInput("RelFilter",
		operatorEnum("RelOperator", "INCLUDES"), graphql.Int)

	// EnumOperator is shared by every enum column's filter input.
	EnumOperator = operatorEnum("EnumOperator", "INCLUDES")

	// UnsupportedFilter is the placeholder produced for columns whose
	// storage type has no registered operator set. Filtering on such a
	// field is a query-time no-op, not a build error.
	UnsupportedFilter = filterInput("UnsupportedFilter",
		operatorEnum("UnsupportedOperator", "NOOP"), graphql.String)
)

// EnumFilter builds the filter input for an enum column type.
func EnumFilter(base *graphql.Enum) *graphql.InputObject {
	io := &graphql.InputObject{Name: base.Type + "Filter"}
	io.AddField("operator", EnumOperator)
	io.AddField("value", base)
	return io
}

// filterForKind selects the shared filter input for a column kind. Enum
// columns are handled separately via EnumFilter. ok is false when the kind
// has no registered operator set.
func filterForKind(kind sqlmeta.ColumnKind) (f *graphql.InputObject, ok bool) {
	switch kind {
	case sqlmeta.KindString, sqlmeta.KindText, sqlmeta.KindURL, sqlmeta.KindEmail, sqlmeta.KindPhone, sqlmeta.KindJSON:
		return StringFilter, true
	case sqlmeta.KindDate, sqlmeta.KindDateTime, sqlmeta.KindTime:
		return DateFilter, true
	case sqlmeta.KindInt:
		return IntFilter, true
	case sqlmeta.KindFloat, sqlmeta.KindDecimal:
		return FloatFilter, true
	case sqlmeta.KindBoolean:
		return BooleanFilter, true
	default:
		return nil, false
	}
}

// registerFilter places a filter input and its operator enum into the
// registry. Shared filters are registered once; re-registration of the
// same node is a no-op.
func registerFilter(reg *graphql.Registry, f *graphql.InputObject) error {
	if err := reg.Register(f.Name, f); err != nil {
		return err
	}
	if op, ok := f.Field("operator").(*graphql.Enum); ok {
		if err := reg.Register(op.Type, op); err != nil {
			return err
		}
	}
	return nil
}
