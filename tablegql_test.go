package tablegql_test

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/require"
	"go.appointy.com/tablegql"
	"go.appointy.com/tablegql/sqlmeta"
)

func demoSource() *sqlmeta.MapSource {
	author := sqlmeta.Table{
		Name: "author",
		Columns: []sqlmeta.Column{
			{Name: "id", Kind: sqlmeta.KindInt, PrimaryKey: true},
			{Name: "name", Kind: sqlmeta.KindString},
		},
		Relationships: []sqlmeta.Relationship{
			{Name: "books", Target: "book", Cardinality: sqlmeta.ToMany, ForeignKeyNullable: true},
		},
	}
	book := sqlmeta.Table{
		Name: "book",
		Columns: []sqlmeta.Column{
			{Name: "id", Kind: sqlmeta.KindInt, PrimaryKey: true},
			{Name: "title", Kind: sqlmeta.KindString},
			{Name: "author_id", Kind: sqlmeta.KindInt, ForeignKey: true},
		},
		Relationships: []sqlmeta.Relationship{
			{Name: "author", Target: "author", Cardinality: sqlmeta.ToOne, ForeignKeyNullable: false},
		},
	}

	src := sqlmeta.NewMapSource(author, book)
	src.Map("author", &struct{}{})
	src.Map("book", &struct{}{})
	return src
}

func TestBuild(t *testing.T) {
	c, err := tablegql.Build(demoSource())
	require.NoError(t, err)

	schema := c.Schema()
	if diff := pretty.Compare(schema.Query.FieldNames(), []string{
		"author", "authors",
		"book", "books",
		"checkDelete",
	}); diff != "" {
		t.Errorf("query fields mismatch: (-got +want)\n%s", diff)
	}
	if diff := pretty.Compare(schema.Mutation.FieldNames(), []string{
		"createAuthor", "updateAuthor", "deleteAuthor",
		"createBook", "updateBook", "deleteBook",
	}); diff != "" {
		t.Errorf("mutation fields mismatch: (-got +want)\n%s", diff)
	}
}

func TestExecutableSchema(t *testing.T) {
	schema, err := tablegql.ExecutableSchema(demoSource())
	require.NoError(t, err)

	require.NotNil(t, schema.QueryType())
	require.NotNil(t, schema.MutationType())
	require.Contains(t, schema.TypeMap(), "AuthorPayload")
	require.Contains(t, schema.TypeMap(), "BookListPayload")
}
