package schemabuilder

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.appointy.com/tablegql/graphql"
	"go.appointy.com/tablegql/sqlmeta"
)

// The test tables model a small shop: a customer has many orders, an
// order belongs to exactly one customer and carries an enum status.

func customerTable() sqlmeta.Table {
	return sqlmeta.Table{
		Name: "customer",
		Columns: []sqlmeta.Column{
			{Name: "id", Kind: sqlmeta.KindInt, PrimaryKey: true},
			{Name: "name", Kind: sqlmeta.KindString},
			{Name: "email", Kind: sqlmeta.KindEmail, Nullable: true},
			{Name: "active", Kind: sqlmeta.KindBoolean},
			{Name: "joined_at", Kind: sqlmeta.KindDateTime, Nullable: true},
		},
		Relationships: []sqlmeta.Relationship{
			{Name: "orders", Target: "order", Cardinality: sqlmeta.ToMany, ForeignKeyNullable: true},
		},
	}
}

func orderTable() sqlmeta.Table {
	return sqlmeta.Table{
		Name: "order",
		Columns: []sqlmeta.Column{
			{Name: "id", Kind: sqlmeta.KindInt, PrimaryKey: true},
			{Name: "reference", Kind: sqlmeta.KindString},
			{Name: "total", Kind: sqlmeta.KindDecimal, Nullable: true},
			{Name: "status", Kind: sqlmeta.KindEnum, EnumValues: []string{"open", "shipped", "void"}},
			{Name: "customer_id", Kind: sqlmeta.KindInt, ForeignKey: true},
		},
		Relationships: []sqlmeta.Relationship{
			{Name: "customer", Target: "customer", Cardinality: sqlmeta.ToOne, ForeignKeyNullable: false},
		},
	}
}

type customerModel struct{}
type orderModel struct{}

func shopSource(tables ...sqlmeta.Table) *sqlmeta.MapSource {
	if len(tables) == 0 {
		tables = []sqlmeta.Table{customerTable(), orderTable()}
	}
	src := sqlmeta.NewMapSource(tables...)
	for _, table := range tables {
		switch table.Name {
		case "customer":
			src.Map("customer", &customerModel{})
		case "order":
			src.Map("order", &orderModel{})
		}
	}
	return src
}

// shopManagers runs both build passes by hand, without root assembly, for
// tests that inspect manager internals.
func shopManagers(t *testing.T) (*TableManager, *TableManager, *graphql.Registry) {
	t.Helper()
	reg := graphql.NewRegistry()

	customer, err := NewTableManager(customerTable(), &sqlmeta.Mapper{Table: "customer"}, reg, nil, nil)
	require.NoError(t, err)
	order, err := NewTableManager(orderTable(), &sqlmeta.Mapper{Table: "order"}, reg, nil, nil)
	require.NoError(t, err)

	managers := map[string]*TableManager{"customer": customer, "order": order}
	for _, m := range []*TableManager{customer, order} {
		require.NoError(t, m.wireRelationships(managers))
		require.NoError(t, m.generatePayloads(reg))
	}
	return customer, order, reg
}
