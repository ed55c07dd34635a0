package graphql

import (
	"fmt"
	"strings"
)

// Registry maps type names to their definition nodes. It is the sole
// source of truth for name uniqueness: one node per name, shared by
// reference everywhere the name is used.
type Registry struct {
	types map[string]Type
	order []string
}

// NewRegistry returns a registry pre-seeded with the built-in scalars.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]Type)}
	for _, s := range []*Scalar{String, Int, Float, Boolean, ID} {
		r.types[s.Type] = s
		r.order = append(r.order, s.Type)
	}
	return r
}

// Register adds a node under name. Registering the same node twice is a
// no-op; registering a different node under an existing name is an error.
func (r *Registry) Register(name string, t Type) error {
	if _, ok := t.(*Ref); ok {
		return fmt.Errorf("graphql: cannot register unresolved reference %q", name)
	}
	if existing, ok := r.types[name]; ok {
		if existing == t {
			return nil
		}
		return fmt.Errorf("graphql: type %q already registered", name)
	}
	r.types[name] = t
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the node registered under name.
func (r *Registry) Lookup(name string) (Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Names returns every registered type name in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Replace rebinds name to a new node, keeping its position. The name must
// already be registered.
func (r *Registry) Replace(name string, t Type) error {
	if _, ok := r.types[name]; !ok {
		return fmt.Errorf("graphql: cannot replace unregistered type %q", name)
	}
	r.types[name] = t
	return nil
}

// Clone returns a shallow copy: the registry structure is new, the nodes
// are shared.
func (r *Registry) Clone() *Registry {
	c := &Registry{types: make(map[string]Type, len(r.types))}
	for name, t := range r.types {
		c.types[name] = t
	}
	c.order = make([]string, len(r.order))
	copy(c.order, r.order)
	return c
}

// IsReserved reports whether a type name belongs to the introspection
// namespace.
func IsReserved(name string) bool {
	return strings.HasPrefix(name, "__")
}

// ResolveRefs walks every registered type and replaces each by-name Ref,
// preserving any List/NonNull wrappers around it, with the registered node
// of that name. A ref whose name is absent from the registry is an error;
// no schema with unresolved refs may be handed to an execution engine.
func (r *Registry) ResolveRefs() error {
	resolve := func(t Type) (Type, error) {
		inner, stack := Unwrap(t)
		ref, ok := inner.(*Ref)
		if !ok {
			return t, nil
		}
		target, ok := r.types[ref.Name]
		if !ok {
			return nil, fmt.Errorf("graphql: unresolved type reference %q", ref.Name)
		}
		return Wrap(target, stack), nil
	}

	for _, name := range r.order {
		switch node := r.types[name].(type) {
		case *Object:
			for _, fname := range node.FieldNames() {
				f := node.Field(fname)
				t, err := resolve(f.Type)
				if err != nil {
					return fmt.Errorf("%s.%s: %w", name, fname, err)
				}
				f.Type = t
				for arg, at := range f.Args {
					t, err := resolve(at)
					if err != nil {
						return fmt.Errorf("%s.%s(%s:): %w", name, fname, arg, err)
					}
					f.Args[arg] = t
				}
			}
		case *InputObject:
			for _, fname := range node.FieldNames() {
				t, err := resolve(node.Field(fname))
				if err != nil {
					return fmt.Errorf("%s.%s: %w", name, fname, err)
				}
				node.ReplaceField(fname, t)
			}
		}
	}
	return nil
}
