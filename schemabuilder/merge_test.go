package schemabuilder

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.appointy.com/tablegql/graphql"
)

// handSchema assembles a schema from scratch for merge scenarios that the
// generator cannot produce.
func handSchema(t *testing.T, build func(reg *graphql.Registry, query, mutation *graphql.Object)) *graphql.Schema {
	t.Helper()
	reg := graphql.NewRegistry()
	query := &graphql.Object{Name: "Query"}
	mutation := &graphql.Object{Name: "Mutation"}
	if build != nil {
		build(reg, query, mutation)
	}
	require.NoError(t, reg.Register("Query", query))
	require.NoError(t, reg.Register("Mutation", mutation))
	require.NoError(t, reg.ResolveRefs())
	return &graphql.Schema{Query: query, Mutation: mutation, Types: reg}
}

func TestMergeWithEmptySchemaKeepsEverything(t *testing.T) {
	c, err := NewCollection(shopSource())
	require.NoError(t, err)
	primary := c.Schema()

	merged, err := Merge(primary, handSchema(t, nil))
	require.NoError(t, err)

	require.Equal(t, primary.Query.FieldNames(), merged.Query.FieldNames())
	require.Equal(t, primary.Mutation.FieldNames(), merged.Mutation.FieldNames())

	for _, fname := range primary.Query.FieldNames() {
		before := primary.Query.Field(fname)
		after := merged.Query.Field(fname)
		require.Equal(t, before.Type.String(), after.Type.String())
		require.Equal(t, len(before.Args), len(after.Args))
	}

	// Every named type survives, as the same node.
	for _, name := range primary.Types.Names() {
		if name == "Query" || name == "Mutation" {
			continue
		}
		before, _ := primary.Types.Lookup(name)
		after, ok := merged.Types.Lookup(name)
		require.True(t, ok, "type %s lost in merge", name)
		require.Same(t, before, after)
	}
}

func TestMergeUnionsFieldsOfSameNamedType(t *testing.T) {
	primary := handSchema(t, func(reg *graphql.Registry, query, _ *graphql.Object) {
		user := &graphql.Object{Name: "User"}
		user.AddField("name", &graphql.Field{Type: graphql.String})
		require.NoError(t, reg.Register("User", user))
		query.AddField("user", &graphql.Field{Type: user})
	})
	secondary := handSchema(t, func(reg *graphql.Registry, query, _ *graphql.Object) {
		user := &graphql.Object{Name: "User"}
		user.AddField("age", &graphql.Field{Type: graphql.Int})
		require.NoError(t, reg.Register("User", user))
		query.AddField("profile", &graphql.Field{Type: user})
	})

	merged, err := Merge(primary, secondary)
	require.NoError(t, err)

	node, ok := merged.Types.Lookup("User")
	require.True(t, ok)
	user, ok := node.(*graphql.Object)
	require.True(t, ok)
	require.Equal(t, []string{"name", "age"}, user.FieldNames())

	// Both root fields now return the one merged node.
	require.Same(t, graphql.Type(user), merged.Query.Field("user").Type)
	require.Same(t, graphql.Type(user), merged.Query.Field("profile").Type)
}

func TestMergePreservesWrapperStacks(t *testing.T) {
	primary := handSchema(t, func(reg *graphql.Registry, query, _ *graphql.Object) {
		user := &graphql.Object{Name: "User"}
		user.AddField("name", &graphql.Field{Type: graphql.String})
		require.NoError(t, reg.Register("User", user))
		query.AddField("user", &graphql.Field{Type: user})
	})
	secondary := handSchema(t, func(reg *graphql.Registry, query, _ *graphql.Object) {
		user := &graphql.Object{Name: "User"}
		user.AddField("age", &graphql.Field{Type: graphql.Int})
		require.NoError(t, reg.Register("User", user))
		query.AddField("cohorts", &graphql.Field{
			Type: &graphql.List{Type: &graphql.NonNull{Type: &graphql.List{Type: user}}},
		})
	})

	merged, err := Merge(primary, secondary)
	require.NoError(t, err)

	cohorts := merged.Query.Field("cohorts")
	require.Equal(t, "[[User]!]", cohorts.Type.String())

	inner, ok := graphql.Named(cohorts.Type).(*graphql.Object)
	require.True(t, ok)
	require.Equal(t, []string{"name", "age"}, inner.FieldNames())
}

func TestMergeRewritesNestedReferences(t *testing.T) {
	primary := handSchema(t, func(reg *graphql.Registry, query, _ *graphql.Object) {
		user := &graphql.Object{Name: "User"}
		user.AddField("name", &graphql.Field{Type: graphql.String})
		require.NoError(t, reg.Register("User", user))

		team := &graphql.Object{Name: "Team"}
		team.AddField("members", &graphql.Field{Type: &graphql.List{Type: user}})
		require.NoError(t, reg.Register("Team", team))
		query.AddField("team", &graphql.Field{Type: team})
	})
	secondary := handSchema(t, func(reg *graphql.Registry, query, _ *graphql.Object) {
		user := &graphql.Object{Name: "User"}
		user.AddField("age", &graphql.Field{Type: graphql.Int})
		require.NoError(t, reg.Register("User", user))
		query.AddField("user", &graphql.Field{Type: user})
	})

	merged, err := Merge(primary, secondary)
	require.NoError(t, err)

	node, _ := merged.Types.Lookup("Team")
	team := node.(*graphql.Object)
	members, ok := graphql.Named(team.Field("members").Type).(*graphql.Object)
	require.True(t, ok)
	require.Equal(t, []string{"name", "age"}, members.FieldNames())
}

func TestMergeDuplicateFieldIsFatal(t *testing.T) {
	build := func(fieldType graphql.Type) *graphql.Schema {
		return handSchema(t, func(reg *graphql.Registry, query, _ *graphql.Object) {
			user := &graphql.Object{Name: "User"}
			user.AddField("name", &graphql.Field{Type: fieldType})
			require.NoError(t, reg.Register("User", user))
			query.AddField("q"+fieldType.String(), &graphql.Field{Type: user})
		})
	}

	_, err := Merge(build(graphql.String), build(graphql.Int))
	require.Error(t, err)
	require.Contains(t, err.Error(), `duplicate field "name"`)
}

func TestMergeRootFieldCollisionIsFatal(t *testing.T) {
	build := func() *graphql.Schema {
		return handSchema(t, func(reg *graphql.Registry, query, _ *graphql.Object) {
			query.AddField("version", &graphql.Field{Type: graphql.String})
		})
	}

	_, err := Merge(build(), build())
	require.Error(t, err)
	require.Contains(t, err.Error(), `root field "version" defined by both schemas`)
}

func TestMergeConflictingEnumIsFatal(t *testing.T) {
	build := func(values ...string) *graphql.Schema {
		return handSchema(t, func(reg *graphql.Registry, query, _ *graphql.Object) {
			e := &graphql.Enum{Type: "Color"}
			for _, v := range values {
				e.AddValue(v, v)
			}
			require.NoError(t, reg.Register("Color", e))
			query.AddField("color"+values[0], &graphql.Field{Type: e})
		})
	}

	_, err := Merge(build("red", "green"), build("red", "blue"))
	require.Error(t, err)
	require.Contains(t, err.Error(), `conflicting definitions of enum "Color"`)
}

func TestMergeKindMismatchIsFatal(t *testing.T) {
	primary := handSchema(t, func(reg *graphql.Registry, query, _ *graphql.Object) {
		user := &graphql.Object{Name: "User"}
		user.AddField("name", &graphql.Field{Type: graphql.String})
		require.NoError(t, reg.Register("User", user))
		query.AddField("user", &graphql.Field{Type: user})
	})
	secondary := handSchema(t, func(reg *graphql.Registry, query, _ *graphql.Object) {
		in := &graphql.InputObject{Name: "User"}
		in.AddField("name", graphql.String)
		require.NoError(t, reg.Register("User", in))
		query.AddField("echo", &graphql.Field{
			Type: graphql.String,
			Args: map[string]graphql.Type{"user": in},
		})
	})

	_, err := Merge(primary, secondary)
	require.Error(t, err)
	require.Contains(t, err.Error(), "object in one schema but not the other")
}

func TestMergeInputObjectFieldUnion(t *testing.T) {
	primary := handSchema(t, func(reg *graphql.Registry, query, _ *graphql.Object) {
		in := &graphql.InputObject{Name: "SearchInput"}
		in.AddField("term", graphql.String)
		require.NoError(t, reg.Register("SearchInput", in))
		query.AddField("search", &graphql.Field{
			Type: graphql.String,
			Args: map[string]graphql.Type{"input": in},
		})
	})
	secondary := handSchema(t, func(reg *graphql.Registry, query, _ *graphql.Object) {
		in := &graphql.InputObject{Name: "SearchInput"}
		in.AddField("limit", graphql.Int)
		require.NoError(t, reg.Register("SearchInput", in))
		query.AddField("lookup", &graphql.Field{
			Type: graphql.String,
			Args: map[string]graphql.Type{"input": in},
		})
	})

	merged, err := Merge(primary, secondary)
	require.NoError(t, err)

	node, _ := merged.Types.Lookup("SearchInput")
	in := node.(*graphql.InputObject)
	require.Equal(t, []string{"term", "limit"}, in.FieldNames())
	require.Same(t, graphql.Type(in), merged.Query.Field("search").Args["input"])
	require.Same(t, graphql.Type(in), merged.Query.Field("lookup").Args["input"])
}

func TestMergeThroughCollection(t *testing.T) {
	c, err := NewCollection(shopSource())
	require.NoError(t, err)

	extra := handSchema(t, func(reg *graphql.Registry, query, _ *graphql.Object) {
		stats := &graphql.Object{Name: "Stats"}
		stats.AddField("total", &graphql.Field{Type: graphql.Int})
		require.NoError(t, reg.Register("Stats", stats))
		query.AddField("stats", &graphql.Field{Type: stats})
	})

	require.NoError(t, c.MergeSchema(extra))

	schema := c.Schema()
	require.NotNil(t, schema.Query.Field("stats"))
	require.NotNil(t, schema.Query.Field("customers"))
	_, ok := schema.Types.Lookup("Stats")
	require.True(t, ok)
}
