// Command example builds a schema over a two-table library, runs a few
// operations against an in-memory store and prints the results.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	gql "github.com/graphql-go/graphql"

	"go.appointy.com/tablegql"
	"go.appointy.com/tablegql/graphql"
	"go.appointy.com/tablegql/schemabuilder"
	"go.appointy.com/tablegql/sqlmeta"
)

type store struct {
	rows map[string][]schemabuilder.Record
}

func (s *store) Create(table sqlmeta.Table, mapper *sqlmeta.Mapper) graphql.Resolver {
	return func(ctx context.Context, source, args interface{}) (interface{}, error) {
		input, _ := args.(map[string]interface{})["input"].(map[string]interface{})
		row := schemabuilder.Record{"id": uuid.NewString()}
		for k, v := range input {
			row[k] = v
		}
		s.rows[table.Name] = append(s.rows[table.Name], row)
		return schemabuilder.Record{"result": row}, nil
	}
}

func (s *store) Update(table sqlmeta.Table, mapper *sqlmeta.Mapper) graphql.Resolver {
	return s.Create(table, mapper)
}

func (s *store) Delete(table sqlmeta.Table, mapper *sqlmeta.Mapper) graphql.Resolver {
	return func(ctx context.Context, source, args interface{}) (interface{}, error) {
		return schemabuilder.Record{"result": nil}, nil
	}
}

func (s *store) Single(table sqlmeta.Table, mapper *sqlmeta.Mapper) graphql.Resolver {
	return func(ctx context.Context, source, args interface{}) (interface{}, error) {
		rows := s.rows[table.Name]
		if len(rows) == 0 {
			return schemabuilder.Record{"result": nil}, nil
		}
		return schemabuilder.Record{"result": rows[0]}, nil
	}
}

func (s *store) Many(table sqlmeta.Table, mapper *sqlmeta.Mapper) graphql.Resolver {
	return func(ctx context.Context, source, args interface{}) (interface{}, error) {
		out := make([]interface{}, 0, len(s.rows[table.Name]))
		for _, row := range s.rows[table.Name] {
			out = append(out, row)
		}
		return schemabuilder.Record{"result": out}, nil
	}
}

func librarySource() *sqlmeta.MapSource {
	author := sqlmeta.Table{
		Name: "author",
		Columns: []sqlmeta.Column{
			{Name: "id", Kind: sqlmeta.KindString, PrimaryKey: true},
			{Name: "name", Kind: sqlmeta.KindString},
			{Name: "born_on", Kind: sqlmeta.KindDate, Nullable: true},
		},
		Relationships: []sqlmeta.Relationship{
			{Name: "books", Target: "book", Cardinality: sqlmeta.ToMany, ForeignKeyNullable: true},
		},
	}
	book := sqlmeta.Table{
		Name: "book",
		Columns: []sqlmeta.Column{
			{Name: "id", Kind: sqlmeta.KindString, PrimaryKey: true},
			{Name: "title", Kind: sqlmeta.KindString},
			{Name: "genre", Kind: sqlmeta.KindEnum, EnumValues: []string{"fiction", "poetry", "essay"}},
			{Name: "author_id", Kind: sqlmeta.KindString, ForeignKey: true},
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

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	schema, err := tablegql.ExecutableSchema(librarySource(),
		schemabuilder.WithLogger(logger),
		schemabuilder.WithResolvers(&store{rows: make(map[string][]schemabuilder.Record)}),
	)
	if err != nil {
		logger.Error("building schema", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	for _, query := range []string{
		`mutation { createAuthor(input: {name: "Ursula K. Le Guin"}) { result { id name } } }`,
		`mutation { createBook(input: {title: "The Dispossessed", genre: fiction, author: "1"}) { result { title genre } } }`,
		`{ authors { count result { name } } }`,
		`{ books(sort: [title_asc]) { result { title genre } } }`,
	} {
		result := gql.Do(gql.Params{Schema: schema, RequestString: query, Context: ctx})
		if len(result.Errors) > 0 {
			logger.Error("executing query", "query", query, "errors", fmt.Sprint(result.Errors))
			continue
		}
		spew.Dump(result.Data)
	}
}
