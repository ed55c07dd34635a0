package schemabuilder

import (
	"errors"
	"log/slog"

	"go.appointy.com/tablegql/graphql"
	"go.appointy.com/tablegql/sqlmeta"
)

// ManagerFactory builds a custom manager for one table, replacing the
// default one. The factory must register its types against the supplied
// registry.
type ManagerFactory func(table sqlmeta.Table, mapper *sqlmeta.Mapper, reg *graphql.Registry) (*TableManager, error)

// Option configures a Collection.
type Option func(*Collection)

// WithLogger sets the logger build warnings are reported through.
func WithLogger(l *slog.Logger) Option {
	return func(c *Collection) { c.logger = l }
}

// WithResolvers binds storage resolvers to every generated operation
// field.
func WithResolvers(r OperationResolvers) Option {
	return func(c *Collection) { c.resolvers = r }
}

// WithReferenceFinder wires the storage collaborator behind checkDelete.
func WithReferenceFinder(f ReferenceFinder) Option {
	return func(c *Collection) { c.finder = f }
}

// WithManagerFactory installs a pre-built manager for one table instead
// of generating the default one.
func WithManagerFactory(table string, f ManagerFactory) Option {
	return func(c *Collection) { c.factories[table] = f }
}

// Collection generates and owns one schema across a set of tables. The
// build is single-threaded and runs once: a column pass over every table,
// a relationship pass over every table, then root assembly. Any fatal
// condition aborts the whole build; the returned schema is immutable
// thereafter.
type Collection struct {
	logger    *slog.Logger
	resolvers OperationResolvers
	finder    ReferenceFinder
	factories map[string]ManagerFactory

	managers map[string]*TableManager
	order    []string
	registry *graphql.Registry
	schema   *graphql.Schema
}

// NewCollection builds the schema for every mapped table exposed by
// source. Tables without a mapper are skipped with a warning and emit no
// root fields at all.
func NewCollection(source sqlmeta.Source, opts ...Option) (*Collection, error) {
	c := &Collection{
		logger:    slog.Default(),
		factories: make(map[string]ManagerFactory),
		managers:  make(map[string]*TableManager),
		registry:  graphql.NewRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, table := range source.Tables() {
		mapper, err := source.Mapper(table.Name)
		if err != nil {
			if errors.Is(err, sqlmeta.ErrNoMapper) {
				c.logger.Warn("no mapper for table, skipping", "table", table.Name)
				c.managers[table.Name] = nil
				continue
			}
			return nil, buildErr("build", err)
		}

		var m *TableManager
		if factory, ok := c.factories[table.Name]; ok {
			m, err = factory(table, mapper, c.registry)
		} else {
			m, err = NewTableManager(table, mapper, c.registry, c.resolvers, c.logger)
		}
		if err != nil {
			return nil, err
		}
		c.managers[table.Name] = m
		c.order = append(c.order, table.Name)
	}

	// Relationship pass. Every manager exists by now, so edges can point
	// at any entity's object node, including cyclic ones.
	for _, name := range c.order {
		m := c.managers[name]
		if err := m.wireRelationships(c.managers); err != nil {
			return nil, err
		}
		if err := m.generatePayloads(c.registry); err != nil {
			return nil, err
		}
	}

	if err := c.assemble(); err != nil {
		return nil, err
	}
	return c, nil
}

// assemble collects every entity's operation fields plus the cross-entity
// fields into the root Query and Mutation objects, then resolves all
// pending type references.
func (c *Collection) assemble() error {
	query := &graphql.Object{Name: "Query"}
	mutation := &graphql.Object{Name: "Mutation"}

	add := func(root *graphql.Object, name string, f *graphql.Field) error {
		if !root.AddField(name, f) {
			return buildErrf("assemble", "duplicate root field %q on %s", name, root.Name)
		}
		return nil
	}

	for _, name := range c.order {
		m := c.managers[name]
		if err := add(mutation, m.CreateMutationName(), m.Create); err != nil {
			return err
		}
		if err := add(mutation, m.UpdateMutationName(), m.Update); err != nil {
			return err
		}
		if err := add(mutation, m.DeleteMutationName(), m.Delete); err != nil {
			return err
		}
		if err := add(query, m.SingleQueryName(), m.Single); err != nil {
			return err
		}
		if err := add(query, m.ManyQueryName(), m.Many); err != nil {
			return err
		}
	}

	// checkDelete reports, across all entities, the records that
	// reference a row and would be affected by deleting it.
	union := &graphql.Union{Name: "TableUnion", ResolveType: tableUnionResolver}
	for _, name := range c.order {
		union.AddMember(c.managers[name].Types.Object)
	}
	if err := c.registry.Register(union.Name, union); err != nil {
		return buildErr("assemble", err)
	}
	if err := add(query, "checkDelete", &graphql.Field{
		Type: &graphql.List{Type: union},
		Args: map[string]graphql.Type{
			"tableName": graphql.String,
			"id":        &graphql.NonNull{Type: graphql.ID},
		},
		Resolve: CheckDeleteResolver(c.finder),
	}); err != nil {
		return err
	}

	page := &graphql.InputObject{Name: "Page"}
	page.AddField("current", graphql.Int)
	page.AddField("per_page", graphql.Int)
	if err := c.registry.Register(page.Name, page); err != nil {
		return buildErr("assemble", err)
	}

	if err := c.registry.Register("Query", query); err != nil {
		return buildErr("assemble", err)
	}
	if err := c.registry.Register("Mutation", mutation); err != nil {
		return buildErr("assemble", err)
	}
	if err := c.registry.ResolveRefs(); err != nil {
		return buildErr("assemble", err)
	}

	c.schema = &graphql.Schema{Query: query, Mutation: mutation, Types: c.registry}
	return nil
}

// Schema returns the assembled schema.
func (c *Collection) Schema() *graphql.Schema {
	return c.schema
}

// Manager returns the manager generated for a table, or nil when the
// table was skipped.
func (c *Collection) Manager(table string) *TableManager {
	return c.managers[table]
}

// OverrideResolver replaces the resolver bound to a named root field
// without altering its declared type signature. Mutation fields are
// checked before query fields.
func (c *Collection) OverrideResolver(field string, r graphql.Resolver) error {
	if f := c.schema.Mutation.Field(field); f != nil {
		f.Resolve = r
		return nil
	}
	if f := c.schema.Query.Field(field); f != nil {
		f.Resolve = r
		return nil
	}
	return buildErrf("override", "no root field %q", field)
}

// MergeSchema folds an independently built schema into this collection's
// schema, replacing the active schema with the consolidated result.
func (c *Collection) MergeSchema(other *graphql.Schema) error {
	merged, err := Merge(c.schema, other)
	if err != nil {
		return err
	}
	c.schema = merged
	c.registry = merged.Types
	return nil
}
