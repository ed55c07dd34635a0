package schemabuilder

import (
	"log/slog"

	"go.appointy.com/tablegql/graphql"
	"go.appointy.com/tablegql/sqlmeta"
)

// EntityTypeSet holds the co-located type nodes generated for one entity.
// The set is created once during the column pass and mutated in place by
// the relationship pass, so references taken into it stay valid.
type EntityTypeSet struct {
	Object        *graphql.Object
	Input         *graphql.InputObject
	InputRequired *graphql.InputObject
	Filter        *graphql.InputObject
	Sort          *graphql.Enum
	Payload       *graphql.Object
	ListPayload   *graphql.Object
}

// TableManager generates and owns the GraphQL surface of a single table:
// its entity type set and its five operation fields.
type TableManager struct {
	Table  sqlmeta.Table
	Mapper *sqlmeta.Mapper

	// Name is the GraphQL type name the entity is referred to by.
	Name string

	Types EntityTypeSet

	Create *graphql.Field
	Update *graphql.Field
	Delete *graphql.Field
	Single *graphql.Field
	Many   *graphql.Field

	singleName string
	manyName   string

	logger *slog.Logger
	wired  bool
}

// NewTableManager builds the manager for one table: the column-only entity
// types plus the operation fields. Relationship fields and payload types
// are added later by the relationship pass, once every table's manager
// exists.
func NewTableManager(table sqlmeta.Table, mapper *sqlmeta.Mapper, reg *graphql.Registry, resolvers OperationResolvers, logger *slog.Logger) (*TableManager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m := &TableManager{
		Table:  table,
		Mapper: mapper,
		Name:   TypeName(table.Name),
		logger: logger,
	}
	if err := m.generateTypes(reg); err != nil {
		return nil, err
	}
	m.generateOperations(resolvers)
	return m, nil
}

// SingleQueryName is the root field name of the single query,
// overridable per table.
func (m *TableManager) SingleQueryName() string {
	if m.singleName != "" {
		return m.singleName
	}
	return FieldName(m.Table.Name)
}

// SetSingleQueryName overrides the single query's root field name.
func (m *TableManager) SetSingleQueryName(name string) {
	m.singleName = name
}

// ManyQueryName is the root field name of the many query,
// overridable per table.
func (m *TableManager) ManyQueryName() string {
	if m.manyName != "" {
		return m.manyName
	}
	return ManyFieldName(m.Table.Name)
}

// SetManyQueryName overrides the many query's root field name.
func (m *TableManager) SetManyQueryName(name string) {
	m.manyName = name
}

func (m *TableManager) CreateMutationName() string { return "create" + m.Name }
func (m *TableManager) UpdateMutationName() string { return "update" + m.Name }
func (m *TableManager) DeleteMutationName() string { return "delete" + m.Name }

// generateTypes runs the column pass: one field per non-foreign-key column
// on each of the five entity types, registered under deterministic names.
func (m *TableManager) generateTypes(reg *graphql.Registry) error {
	base := &graphql.Object{Name: m.Name}
	input := &graphql.InputObject{Name: m.Name + "Input"}
	required := &graphql.InputObject{Name: m.Name + "InputRequired"}
	filter := &graphql.InputObject{Name: m.Name + "Filter"}
	sort := &graphql.Enum{Type: m.Name + "Sort"}

	for _, col := range m.Table.Columns {
		if col.ForeignKey {
			continue
		}
		field := FieldName(col.Name)

		var baseType graphql.Type
		var resolve graphql.Resolver
		var filterType *graphql.InputObject

		if col.Kind == sqlmeta.KindEnum {
			enum := &graphql.Enum{Type: m.Name + TypeName(col.Name) + "Enum"}
			for _, v := range col.EnumValues {
				enum.AddValue(v, v)
			}
			if err := reg.Register(enum.Type, enum); err != nil {
				return buildErr("build", err)
			}
			baseType = enum
			resolve = EnumResolver(enum, col.Name)
			filterType = EnumFilter(enum)
		} else {
			baseType = scalarForColumn(col)
			if f, ok := filterForKind(col.Kind); ok {
				filterType = f
			} else {
				m.logger.Warn("no filter operator set for column type",
					"table", m.Table.Name, "column", col.Name, "kind", col.Kind.String())
				filterType = UnsupportedFilter
			}
		}

		base.AddField(field, &graphql.Field{Type: baseType, Resolve: resolve})
		if !col.PrimaryKey {
			input.AddField(field, baseType)
			if col.Nullable {
				required.AddField(field, baseType)
			} else {
				required.AddField(field, &graphql.NonNull{Type: baseType})
			}
		}
		if err := registerFilter(reg, filterType); err != nil {
			return buildErr("build", err)
		}
		filter.AddField(field, filterType)
		sort.AddValue(field+"_asc", col.Name+"_asc")
		sort.AddValue(field+"_desc", col.Name+"_desc")
	}

	m.Types = EntityTypeSet{
		Object:        base,
		Input:         input,
		InputRequired: required,
		Filter:        filter,
		Sort:          sort,
	}

	for _, entry := range []struct {
		name string
		typ  graphql.Type
	}{
		{m.Name, base},
		{m.Name + "Input", input},
		{m.Name + "InputRequired", required},
		{m.Name + "Filter", filter},
		{m.Name + "Sort", sort},
	} {
		if err := reg.Register(entry.name, entry.typ); err != nil {
			return buildErr("build", err)
		}
	}
	return nil
}

// generateOperations builds the five operation fields. Payload types do
// not exist until the relationship pass, so their return types are
// by-name refs resolved at assembly.
func (m *TableManager) generateOperations(resolvers OperationResolvers) {
	payload := func() graphql.Type {
		return &graphql.NonNull{Type: &graphql.Ref{Name: m.Name + "Payload"}}
	}
	idArg := func() graphql.Type {
		return &graphql.NonNull{Type: graphql.ID}
	}

	m.Create = &graphql.Field{
		Type: payload(),
		Args: map[string]graphql.Type{
			"input": &graphql.NonNull{Type: &graphql.Ref{Name: m.Name + "InputRequired"}},
		},
	}
	m.Update = &graphql.Field{
		Type: payload(),
		Args: map[string]graphql.Type{
			"id":    idArg(),
			"input": &graphql.NonNull{Type: &graphql.Ref{Name: m.Name + "Input"}},
		},
	}
	m.Delete = &graphql.Field{
		Type: payload(),
		Args: map[string]graphql.Type{"id": idArg()},
	}
	m.Single = &graphql.Field{
		Type: payload(),
		Args: map[string]graphql.Type{"id": idArg()},
	}
	m.Many = &graphql.Field{
		Type: &graphql.NonNull{Type: &graphql.Ref{Name: m.Name + "ListPayload"}},
		Args: map[string]graphql.Type{
			"filter": &graphql.Ref{Name: m.Name + "Filter"},
			"sort":   &graphql.List{Type: &graphql.NonNull{Type: &graphql.Ref{Name: m.Name + "Sort"}}},
			"page":   &graphql.Ref{Name: "Page"},
		},
	}

	if resolvers != nil {
		m.Create.Resolve = resolvers.Create(m.Table, m.Mapper)
		m.Update.Resolve = resolvers.Update(m.Table, m.Mapper)
		m.Delete.Resolve = resolvers.Delete(m.Table, m.Mapper)
		m.Single.Resolve = resolvers.Single(m.Table, m.Mapper)
		m.Many.Resolve = resolvers.Many(m.Table, m.Mapper)
	}
}

// scalarForColumn maps a column to its semantic scalar. Primary keys
// surface as ID regardless of storage kind.
func scalarForColumn(col sqlmeta.Column) *graphql.Scalar {
	if col.PrimaryKey {
		return graphql.ID
	}
	switch col.Kind {
	case sqlmeta.KindInt:
		return graphql.Int
	case sqlmeta.KindFloat, sqlmeta.KindDecimal:
		return graphql.Float
	case sqlmeta.KindBoolean:
		return graphql.Boolean
	default:
		return graphql.String
	}
}
