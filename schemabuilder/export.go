package schemabuilder

import (
	"fmt"
	"sort"

	gql "github.com/graphql-go/graphql"

	"go.appointy.com/tablegql/graphql"
)

// ToGraphQL converts an assembled schema into an executable
// github.com/graphql-go/graphql schema. The conversion shares one output
// node per type name, so cyclic and self-referential entities convert
// through field thunks.
func ToGraphQL(s *graphql.Schema) (gql.Schema, error) {
	e := &exporter{named: make(map[string]gql.Type)}

	cfg := gql.SchemaConfig{}
	if q, ok := e.convert(s.Query).(*gql.Object); ok {
		cfg.Query = q
	}
	if s.Mutation != nil && s.Mutation.NumFields() > 0 {
		if m, ok := e.convert(s.Mutation).(*gql.Object); ok {
			cfg.Mutation = m
		}
	}
	for _, name := range s.Types.Names() {
		if name == "Query" || name == "Mutation" {
			continue
		}
		if t, ok := s.Types.Lookup(name); ok {
			cfg.Types = append(cfg.Types, e.convert(t))
		}
	}
	if e.err != nil {
		return gql.Schema{}, e.err
	}

	schema, err := gql.NewSchema(cfg)
	if err != nil {
		return gql.Schema{}, fmt.Errorf("schemabuilder: exporting schema: %w", err)
	}
	// Field thunks run inside NewSchema; surface anything they recorded.
	if e.err != nil {
		return gql.Schema{}, e.err
	}
	return schema, nil
}

type exporter struct {
	named map[string]gql.Type
	err   error
}

func (e *exporter) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *exporter) convert(t graphql.Type) gql.Type {
	switch v := t.(type) {
	case *graphql.List:
		return gql.NewList(e.convert(v.Type))
	case *graphql.NonNull:
		return gql.NewNonNull(e.convert(v.Type))
	case *graphql.Scalar:
		return e.convertScalar(v)
	case *graphql.Enum:
		return e.convertEnum(v)
	case *graphql.Object:
		return e.convertObject(v)
	case *graphql.InputObject:
		return e.convertInput(v)
	case *graphql.Union:
		return e.convertUnion(v)
	case *graphql.Ref:
		e.fail(buildErrf("export", "unresolved type reference %q", v.Name))
		return gql.String
	default:
		e.fail(buildErrf("export", "cannot export type %s", t))
		return gql.String
	}
}

var builtinScalars = map[string]*gql.Scalar{
	"String":  gql.String,
	"Int":     gql.Int,
	"Float":   gql.Float,
	"Boolean": gql.Boolean,
	"ID":      gql.ID,
}

func (e *exporter) convertScalar(s *graphql.Scalar) gql.Type {
	if builtin, ok := builtinScalars[s.Type]; ok {
		return builtin
	}
	if done, ok := e.named[s.Type]; ok {
		return done
	}
	out := gql.NewScalar(gql.ScalarConfig{
		Name:      s.Type,
		Serialize: func(value interface{}) interface{} { return value },
	})
	e.named[s.Type] = out
	return out
}

func (e *exporter) convertEnum(enum *graphql.Enum) gql.Type {
	if done, ok := e.named[enum.Type]; ok {
		return done
	}
	values := gql.EnumValueConfigMap{}
	for _, name := range enum.Values {
		values[name] = &gql.EnumValueConfig{Value: enum.Map[name]}
	}
	out := gql.NewEnum(gql.EnumConfig{Name: enum.Type, Values: values})
	e.named[enum.Type] = out
	return out
}

func (e *exporter) convertObject(obj *graphql.Object) gql.Type {
	if done, ok := e.named[obj.Name]; ok {
		return done
	}
	out := gql.NewObject(gql.ObjectConfig{
		Name:        obj.Name,
		Description: obj.Description,
		Fields: gql.FieldsThunk(func() gql.Fields {
			fields := gql.Fields{}
			for _, fname := range obj.FieldNames() {
				f := obj.Field(fname)
				output, ok := e.convert(f.Type).(gql.Output)
				if !ok {
					e.fail(buildErrf("export", "%s.%s: type %s is not an output type", obj.Name, fname, f.Type))
					continue
				}
				fields[fname] = &gql.Field{
					Type:    output,
					Args:    e.convertArgs(obj.Name, fname, f.Args),
					Resolve: e.wrapResolver(f.Resolve, fname),
				}
			}
			return fields
		}),
	})
	e.named[obj.Name] = out
	return out
}

func (e *exporter) convertArgs(typeName, fieldName string, args map[string]graphql.Type) gql.FieldConfigArgument {
	if len(args) == 0 {
		return nil
	}
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	out := gql.FieldConfigArgument{}
	for _, name := range names {
		input, ok := e.convert(args[name]).(gql.Input)
		if !ok {
			e.fail(buildErrf("export", "%s.%s(%s:): type %s is not an input type", typeName, fieldName, name, args[name]))
			continue
		}
		out[name] = &gql.ArgumentConfig{Type: input}
	}
	return out
}

func (e *exporter) convertInput(io *graphql.InputObject) gql.Type {
	if done, ok := e.named[io.Name]; ok {
		return done
	}
	out := gql.NewInputObject(gql.InputObjectConfig{
		Name: io.Name,
		Fields: gql.InputObjectConfigFieldMapThunk(func() gql.InputObjectConfigFieldMap {
			fields := gql.InputObjectConfigFieldMap{}
			for _, fname := range io.FieldNames() {
				input, ok := e.convert(io.Field(fname)).(gql.Input)
				if !ok {
					e.fail(buildErrf("export", "%s.%s: type %s is not an input type", io.Name, fname, io.Field(fname)))
					continue
				}
				fields[fname] = &gql.InputObjectFieldConfig{Type: input}
			}
			return fields
		}),
	})
	e.named[io.Name] = out
	return out
}

func (e *exporter) convertUnion(u *graphql.Union) gql.Type {
	if done, ok := e.named[u.Name]; ok {
		return done
	}
	members := make([]*gql.Object, 0, len(u.Members))
	for _, name := range u.Members {
		member, ok := e.convert(u.Types[name]).(*gql.Object)
		if !ok {
			e.fail(buildErrf("export", "union %s member %s did not export as an object", u.Name, name))
			continue
		}
		members = append(members, member)
	}
	out := gql.NewUnion(gql.UnionConfig{
		Name:  u.Name,
		Types: members,
		ResolveType: func(p gql.ResolveTypeParams) *gql.Object {
			if u.ResolveType == nil {
				return nil
			}
			name, err := u.ResolveType(p.Value)
			if err != nil {
				return nil
			}
			obj, _ := e.named[name].(*gql.Object)
			return obj
		},
	})
	e.named[u.Name] = out
	return out
}

func (e *exporter) wrapResolver(r graphql.Resolver, field string) gql.FieldResolveFn {
	if r == nil {
		return defaultResolve(field)
	}
	return func(p gql.ResolveParams) (interface{}, error) {
		return r(p.Context, unwrapSource(p.Source), p.Args)
	}
}

// defaultResolve is the identity/attribute lookup bound to fields without
// an explicit resolver: the camelCase field first, then its snake_case
// storage attribute.
func defaultResolve(field string) gql.FieldResolveFn {
	attr := AttributeName(field)
	return func(p gql.ResolveParams) (interface{}, error) {
		switch src := unwrapSource(p.Source).(type) {
		case map[string]interface{}:
			if v, ok := src[field]; ok {
				return v, nil
			}
			return src[attr], nil
		default:
			return nil, nil
		}
	}
}

func unwrapSource(source interface{}) interface{} {
	switch s := source.(type) {
	case TaggedRecord:
		return map[string]interface{}(s.Record)
	case Record:
		return map[string]interface{}(s)
	default:
		return source
	}
}
