package schemabuilder

import (
	"sort"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"go.appointy.com/tablegql/graphql"
)

// FromSDL parses an externally authored schema fragment and builds a
// schema from it, suitable for folding into a generated schema with
// Merge. Resolvers are not expressible in SDL; fields come back with the
// default resolver and can be rebound via OverrideResolver after merging.
func FromSDL(input string) (*graphql.Schema, error) {
	doc, err := gqlparser.LoadSchema(&ast.Source{Name: "fragment.graphql", Input: input})
	if err != nil {
		return nil, buildErr("sdl", err)
	}

	reg := graphql.NewRegistry()

	names := make([]string, 0, len(doc.Types))
	for name := range doc.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	var unions []*ast.Definition
	for _, name := range names {
		def := doc.Types[name]
		if def.BuiltIn || graphql.IsReserved(name) {
			continue
		}
		if name == "Query" || name == "Mutation" || name == "Subscription" {
			continue
		}
		switch def.Kind {
		case ast.Scalar:
			if err := reg.Register(name, &graphql.Scalar{Type: name}); err != nil {
				return nil, buildErr("sdl", err)
			}
		case ast.Enum:
			enum := &graphql.Enum{Type: name}
			for _, v := range def.EnumValues {
				enum.AddValue(v.Name, v.Name)
			}
			if err := reg.Register(name, enum); err != nil {
				return nil, buildErr("sdl", err)
			}
		case ast.Object:
			obj := convertObject(def)
			if err := reg.Register(name, obj); err != nil {
				return nil, buildErr("sdl", err)
			}
		case ast.InputObject:
			io := &graphql.InputObject{Name: name}
			for _, f := range def.Fields {
				io.AddField(f.Name, convertASTType(f.Type))
			}
			if err := reg.Register(name, io); err != nil {
				return nil, buildErr("sdl", err)
			}
		case ast.Union:
			unions = append(unions, def)
		default:
			return nil, buildErrf("sdl", "unsupported definition kind %s for type %q", def.Kind, name)
		}
	}

	for _, def := range unions {
		union := &graphql.Union{Name: def.Name}
		for _, member := range def.Types {
			node, ok := reg.Lookup(member)
			if !ok {
				return nil, buildErrf("sdl", "union %q references unknown type %q", def.Name, member)
			}
			obj, ok := node.(*graphql.Object)
			if !ok {
				return nil, buildErrf("sdl", "union %q member %q is not an object", def.Name, member)
			}
			union.AddMember(obj)
		}
		if err := reg.Register(def.Name, union); err != nil {
			return nil, buildErr("sdl", err)
		}
	}

	query := &graphql.Object{Name: "Query"}
	if doc.Query != nil {
		fillRoot(query, doc.Query)
	}
	mutation := &graphql.Object{Name: "Mutation"}
	if doc.Mutation != nil {
		fillRoot(mutation, doc.Mutation)
	}
	if err := reg.Register("Query", query); err != nil {
		return nil, buildErr("sdl", err)
	}
	if err := reg.Register("Mutation", mutation); err != nil {
		return nil, buildErr("sdl", err)
	}
	if err := reg.ResolveRefs(); err != nil {
		return nil, buildErr("sdl", err)
	}

	return &graphql.Schema{Query: query, Mutation: mutation, Types: reg}, nil
}

func convertObject(def *ast.Definition) *graphql.Object {
	obj := &graphql.Object{Name: def.Name, Description: def.Description}
	for _, f := range def.Fields {
		if graphql.IsReserved(f.Name) {
			continue
		}
		field := &graphql.Field{Type: convertASTType(f.Type)}
		if len(f.Arguments) > 0 {
			field.Args = make(map[string]graphql.Type, len(f.Arguments))
			for _, arg := range f.Arguments {
				field.Args[arg.Name] = convertASTType(arg.Type)
			}
		}
		obj.AddField(f.Name, field)
	}
	return obj
}

func fillRoot(root *graphql.Object, def *ast.Definition) {
	converted := convertObject(def)
	for _, fname := range converted.FieldNames() {
		root.AddField(fname, converted.Field(fname))
	}
}

// convertASTType maps a gqlparser type expression onto the wrapper model,
// with named types as refs resolved against the fragment's registry.
func convertASTType(t *ast.Type) graphql.Type {
	var out graphql.Type
	if t.NamedType != "" {
		out = &graphql.Ref{Name: t.NamedType}
	} else {
		out = &graphql.List{Type: convertASTType(t.Elem)}
	}
	if t.NonNull {
		out = &graphql.NonNull{Type: out}
	}
	return out
}
