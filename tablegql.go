// Package tablegql generates a GraphQL schema from relational table
// metadata: one object, input, required-input, filter and sort type per
// table, create/update/delete/single/many operations wired to pluggable
// storage resolvers, and a merge engine for folding in independently
// built schemas.
package tablegql

import (
	gql "github.com/graphql-go/graphql"

	"go.appointy.com/tablegql/schemabuilder"
	"go.appointy.com/tablegql/sqlmeta"
)

// Build generates the schema for every mapped table exposed by source.
// The returned collection owns the schema and supports per-field resolver
// overrides and schema merging.
func Build(source sqlmeta.Source, opts ...schemabuilder.Option) (*schemabuilder.Collection, error) {
	return schemabuilder.NewCollection(source, opts...)
}

// ExecutableSchema builds the collection's schema and converts it into an
// executable graphql-go schema in one step.
func ExecutableSchema(source sqlmeta.Source, opts ...schemabuilder.Option) (gql.Schema, error) {
	c, err := schemabuilder.NewCollection(source, opts...)
	if err != nil {
		return gql.Schema{}, err
	}
	return schemabuilder.ToGraphQL(c.Schema())
}
