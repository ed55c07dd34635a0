package schemabuilder

import (
	"go.appointy.com/tablegql/graphql"
)

// Merge produces a schema with the union of behavior of primary and
// secondary. Types present by the same name in both are field-merged, and
// every reachable field type is rewritten to reference the merged nodes,
// recursively through List/NonNull wrappers with the wrapper stack
// preserved. The original root objects are left untouched; non-root nodes
// are rewritten in place where substitution applies.
func Merge(primary, secondary *graphql.Schema) (*graphql.Schema, error) {
	merged := primary.Types.Clone()
	substitution := make(map[string]graphql.Type)

	for _, name := range secondary.Types.Names() {
		if graphql.IsReserved(name) || name == "Query" || name == "Mutation" {
			continue
		}
		node, _ := secondary.Types.Lookup(name)
		if _, isScalar := node.(*graphql.Scalar); isScalar {
			continue
		}
		existing, ok := merged.Lookup(name)
		if !ok {
			if err := merged.Register(name, node); err != nil {
				return nil, buildErr("merge", err)
			}
			continue
		}
		if existing == node {
			continue
		}
		joined, err := joinTypes(name, existing, node)
		if err != nil {
			return nil, err
		}
		if joined != existing {
			substitution[name] = joined
			if err := merged.Replace(name, joined); err != nil {
				return nil, buildErr("merge", err)
			}
		}
	}

	if len(substitution) > 0 {
		rewriteRegistry(merged, substitution)
	}

	query, err := mergeRoots("Query", primary.Query, secondary.Query, substitution)
	if err != nil {
		return nil, err
	}
	mutation, err := mergeRoots("Mutation", primary.Mutation, secondary.Mutation, substitution)
	if err != nil {
		return nil, err
	}

	if err := merged.Replace("Query", query); err != nil {
		return nil, buildErr("merge", err)
	}
	if err := merged.Replace("Mutation", mutation); err != nil {
		return nil, buildErr("merge", err)
	}
	if err := merged.ResolveRefs(); err != nil {
		return nil, buildErr("merge", err)
	}
	if err := verifyRoots(merged, query, mutation); err != nil {
		return nil, err
	}

	return &graphql.Schema{Query: query, Mutation: mutation, Types: merged}, nil
}

// joinTypes merges two same-named type definitions. Objects and input
// objects take the field union, erroring on any duplicate field name;
// other kinds must be identical definitions.
func joinTypes(name string, a, b graphql.Type) (graphql.Type, error) {
	switch at := a.(type) {
	case *graphql.Object:
		bt, ok := b.(*graphql.Object)
		if !ok {
			return nil, buildErrf("merge", "type %q is an object in one schema but not the other", name)
		}
		joined := &graphql.Object{Name: name, Description: at.Description}
		for _, fname := range at.FieldNames() {
			joined.AddField(fname, at.Field(fname))
		}
		for _, fname := range bt.FieldNames() {
			if !joined.AddField(fname, bt.Field(fname)) {
				return nil, buildErrf("merge", "duplicate field %q on merged type %q", fname, name)
			}
		}
		return joined, nil
	case *graphql.InputObject:
		bt, ok := b.(*graphql.InputObject)
		if !ok {
			return nil, buildErrf("merge", "type %q is an input object in one schema but not the other", name)
		}
		joined := &graphql.InputObject{Name: name}
		for _, fname := range at.FieldNames() {
			joined.AddField(fname, at.Field(fname))
		}
		for _, fname := range bt.FieldNames() {
			if !joined.AddField(fname, bt.Field(fname)) {
				return nil, buildErrf("merge", "duplicate field %q on merged input type %q", fname, name)
			}
		}
		return joined, nil
	case *graphql.Enum:
		bt, ok := b.(*graphql.Enum)
		if !ok || !equalEnums(at, bt) {
			return nil, buildErrf("merge", "conflicting definitions of enum %q", name)
		}
		return at, nil
	case *graphql.Union:
		bt, ok := b.(*graphql.Union)
		if !ok || !equalStrings(at.Members, bt.Members) {
			return nil, buildErrf("merge", "conflicting definitions of union %q", name)
		}
		return at, nil
	default:
		return nil, buildErrf("merge", "type %q cannot be merged", name)
	}
}

// rewriteRegistry points every field type reachable from the registry at
// the merged nodes, preserving wrapper stacks.
func rewriteRegistry(reg *graphql.Registry, substitution map[string]graphql.Type) {
	for _, name := range reg.Names() {
		node, _ := reg.Lookup(name)
		switch t := node.(type) {
		case *graphql.Object:
			rewriteObjectFields(t, substitution)
		case *graphql.InputObject:
			rewriteInputFields(t, substitution)
		case *graphql.Union:
			for member := range t.Types {
				if subObj, ok := substitution[member].(*graphql.Object); ok {
					t.Types[member] = subObj
				}
			}
		}
	}
}

func rewriteObjectFields(obj *graphql.Object, substitution map[string]graphql.Type) {
	for _, fname := range obj.FieldNames() {
		f := obj.Field(fname)
		f.Type = rewriteType(f.Type, substitution)
		for arg, at := range f.Args {
			f.Args[arg] = rewriteType(at, substitution)
		}
	}
}

func rewriteInputFields(io *graphql.InputObject, substitution map[string]graphql.Type) {
	for _, fname := range io.FieldNames() {
		io.ReplaceField(fname, rewriteType(io.Field(fname), substitution))
	}
}

// rewriteType unwraps t's List/NonNull stack, substitutes the innermost
// named type, and re-applies the identical stack.
func rewriteType(t graphql.Type, substitution map[string]graphql.Type) graphql.Type {
	inner, stack := graphql.Unwrap(t)
	name, ok := graphql.NamedName(inner)
	if !ok {
		return t
	}
	sub, ok := substitution[name]
	if !ok {
		return t
	}
	return graphql.Wrap(sub, stack)
}

// mergeRoots builds a fresh root object from primary's fields followed by
// secondary's, rewriting each return and argument type. A root field name
// defined by both schemas with distinct definitions is fatal.
func mergeRoots(name string, primary, secondary *graphql.Object, substitution map[string]graphql.Type) (*graphql.Object, error) {
	root := &graphql.Object{Name: name}

	copyField := func(f *graphql.Field) *graphql.Field {
		out := &graphql.Field{
			Type:    rewriteType(f.Type, substitution),
			Resolve: f.Resolve,
		}
		if f.Args != nil {
			out.Args = make(map[string]graphql.Type, len(f.Args))
			for arg, at := range f.Args {
				out.Args[arg] = rewriteType(at, substitution)
			}
		}
		return out
	}

	seen := make(map[string]*graphql.Field)
	for _, src := range []*graphql.Object{primary, secondary} {
		if src == nil {
			continue
		}
		for _, fname := range src.FieldNames() {
			f := src.Field(fname)
			if prev, ok := seen[fname]; ok {
				if prev == f {
					continue
				}
				return nil, buildErrf("merge", "root field %q defined by both schemas", fname)
			}
			seen[fname] = f
			root.AddField(fname, copyField(f))
		}
	}
	return root, nil
}

// verifyRoots confirms every root field's innermost type name is present
// in the merged registry. An unresolved reference is fatal; no partially
// merged schema is returned.
func verifyRoots(reg *graphql.Registry, roots ...*graphql.Object) error {
	for _, root := range roots {
		for _, fname := range root.FieldNames() {
			f := root.Field(fname)
			name, ok := graphql.NamedName(f.Type)
			if !ok {
				continue
			}
			if _, registered := reg.Lookup(name); !registered {
				return buildErrf("merge", "root field %q returns unknown type %q", fname, name)
			}
		}
	}
	return nil
}

func equalEnums(a, b *graphql.Enum) bool {
	if !equalStrings(a.Values, b.Values) {
		return false
	}
	for name, raw := range a.Map {
		if b.Map[name] != raw {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
