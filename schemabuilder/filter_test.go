package schemabuilder

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.appointy.com/tablegql/graphql"
	"go.appointy.com/tablegql/sqlmeta"
)

func TestFilterForKind(t *testing.T) {
	cases := []struct {
		kind sqlmeta.ColumnKind
		want *graphql.InputObject
	}{
		{sqlmeta.KindString, StringFilter},
		{sqlmeta.KindText, StringFilter},
		{sqlmeta.KindURL, StringFilter},
		{sqlmeta.KindEmail, StringFilter},
		{sqlmeta.KindPhone, StringFilter},
		{sqlmeta.KindJSON, StringFilter},
		{sqlmeta.KindDate, DateFilter},
		{sqlmeta.KindDateTime, DateFilter},
		{sqlmeta.KindTime, DateFilter},
		{sqlmeta.KindInt, IntFilter},
		{sqlmeta.KindFloat, FloatFilter},
		{sqlmeta.KindDecimal, FloatFilter},
		{sqlmeta.KindBoolean, BooleanFilter},
	}
	for _, tc := range cases {
		got, ok := filterForKind(tc.kind)
		require.True(t, ok, "kind %s", tc.kind)
		require.Same(t, tc.want, got, "kind %s", tc.kind)
	}

	_, ok := filterForKind(sqlmeta.KindUnknown)
	require.False(t, ok)
	_, ok = filterForKind(sqlmeta.KindEnum)
	require.False(t, ok, "enum columns build their own filter")
}

func TestFilterShapes(t *testing.T) {
	cases := []struct {
		filter *graphql.InputObject
		ops    []string
		value  graphql.Type
	}{
		{StringFilter, []string{"INCLUDES", "EQUALS"}, graphql.String},
		{DateFilter, []string{"BEFORE", "ON", "AFTER"}, graphql.String},
		{IntFilter, []string{"lt", "lte", "eq", "neq", "gt", "gte"}, graphql.Int},
		{FloatFilter, []string{"lt", "lte", "eq", "neq", "gt", "gte"}, graphql.Float},
		{BooleanFilter, []string{"EQUALS", "NOTEQUALS"}, graphql.Boolean},
		{RelFilter, []string{"INCLUDES"}, graphql.Int},
		{UnsupportedFilter, []string{"NOOP"}, graphql.String},
	}
	for _, tc := range cases {
		require.Equal(t, []string{"operator", "value"}, tc.filter.FieldNames())
		op, ok := tc.filter.Field("operator").(*graphql.Enum)
		require.True(t, ok)
		require.Equal(t, tc.ops, op.Values)
		require.Same(t, tc.value, tc.filter.Field("value"))
	}
}

func TestEnumFilterName(t *testing.T) {
	status := &graphql.Enum{Type: "OrderStatusEnum"}
	status.AddValue("open", "open")

	f := EnumFilter(status)
	require.Equal(t, "OrderStatusEnumFilter", f.Name)
	require.Same(t, graphql.Type(EnumOperator), f.Field("operator"))
	require.Same(t, graphql.Type(status), f.Field("value"))
}

func TestRegisterFilterRegistersOperatorEnum(t *testing.T) {
	reg := graphql.NewRegistry()
	require.NoError(t, registerFilter(reg, StringFilter))

	node, ok := reg.Lookup("StringFilter")
	require.True(t, ok)
	require.Same(t, graphql.Type(StringFilter), node)
	_, ok = reg.Lookup("StringOperator")
	require.True(t, ok)

	// Shared singletons register any number of times.
	require.NoError(t, registerFilter(reg, StringFilter))
}
