package graphql

import (
	"context"
	"fmt"
)

// Type represents a GraphQL type: a Scalar, Enum, Object, InputObject,
// Union, a by-name Ref, or a wrapper (List, NonNull) around another Type.
type Type interface {
	String() string

	// isType() is a no-op used to tag the known values of Type, to prevent
	// arbitrary interface{} from implementing Type
	isType()
}

// Scalar is a leaf value.
type Scalar struct {
	Type string
}

func (s *Scalar) isType() {}

func (s *Scalar) String() string {
	return s.Type
}

// Built-in scalars, shared by reference everywhere they appear.
var (
	String  = &Scalar{Type: "String"}
	Int     = &Scalar{Type: "Int"}
	Float   = &Scalar{Type: "Float"}
	Boolean = &Scalar{Type: "Boolean"}
	ID      = &Scalar{Type: "ID"}
)

// Enum is a leaf value with a fixed set of named values. Map translates a
// value name to the raw stored value, ReverseMap translates a raw stored
// value back to its name.
type Enum struct {
	Type       string
	Values     []string
	Map        map[string]interface{}
	ReverseMap map[interface{}]string
}

func (e *Enum) isType() {}

func (e *Enum) String() string {
	return e.Type
}

// AddValue appends a named value. Re-adding an existing name is a no-op.
func (e *Enum) AddValue(name string, raw interface{}) {
	if e.Map == nil {
		e.Map = make(map[string]interface{})
		e.ReverseMap = make(map[interface{}]string)
	}
	if _, ok := e.Map[name]; ok {
		return
	}
	e.Values = append(e.Values, name)
	e.Map[name] = raw
	e.ReverseMap[raw] = name
}

// Object is a value with several fields. Field insertion order is the
// schema output order.
type Object struct {
	Name        string
	Description string

	fields map[string]*Field
	order  []string
}

func (o *Object) isType() {}

func (o *Object) String() string {
	return o.Name
}

// AddField registers a field under the given name. It reports whether the
// field was added; an existing field is left untouched.
func (o *Object) AddField(name string, f *Field) bool {
	if o.fields == nil {
		o.fields = make(map[string]*Field)
	}
	if _, ok := o.fields[name]; ok {
		return false
	}
	o.fields[name] = f
	o.order = append(o.order, name)
	return true
}

// Field returns the field registered under name, or nil.
func (o *Object) Field(name string) *Field {
	return o.fields[name]
}

// FieldNames returns the field names in insertion order.
func (o *Object) FieldNames() []string {
	names := make([]string, len(o.order))
	copy(names, o.order)
	return names
}

// NumFields returns the number of registered fields.
func (o *Object) NumFields() int {
	return len(o.order)
}

// InputObject defines an object received as an argument of a query or
// mutation. Field insertion order is the schema output order.
type InputObject struct {
	Name string

	fields map[string]Type
	order  []string
}

func (io *InputObject) isType() {}

func (io *InputObject) String() string {
	return io.Name
}

// AddField registers an input field under the given name. It reports
// whether the field was added; an existing field is left untouched.
func (io *InputObject) AddField(name string, t Type) bool {
	if io.fields == nil {
		io.fields = make(map[string]Type)
	}
	if _, ok := io.fields[name]; ok {
		return false
	}
	io.fields[name] = t
	io.order = append(io.order, name)
	return true
}

// Field returns the type of the input field registered under name, or nil.
func (io *InputObject) Field(name string) Type {
	return io.fields[name]
}

// FieldNames returns the input field names in insertion order.
func (io *InputObject) FieldNames() []string {
	names := make([]string, len(io.order))
	copy(names, io.order)
	return names
}

// NumFields returns the number of registered input fields.
func (io *InputObject) NumFields() int {
	return len(io.order)
}

// ReplaceField overwrites an existing field's type in place, preserving
// its position. Used by ref resolution and the merge rewrite. Unknown
// names are ignored.
func (io *InputObject) ReplaceField(name string, t Type) {
	if _, ok := io.fields[name]; ok {
		io.fields[name] = t
	}
}

// List is a collection of other values
type List struct {
	Type Type
}

func (l *List) isType() {}

func (l *List) String() string {
	return fmt.Sprintf("[%s]", l.Type)
}

// NonNull is a non-nullable other value
type NonNull struct {
	Type Type
}

func (n *NonNull) isType() {}

func (n *NonNull) String() string {
	return fmt.Sprintf("%s!", n.Type)
}

// TypeResolver decides, given a runtime value, which member of a union the
// value belongs to. It returns the member object's name.
type TypeResolver func(value interface{}) (string, error)

// Union is an option between multiple object types. Members holds the
// member names in insertion order; Types maps them to their objects.
type Union struct {
	Name        string
	Description string
	Members     []string
	Types       map[string]*Object
	ResolveType TypeResolver
}

func (*Union) isType() {}

func (u *Union) String() string {
	return u.Name
}

// AddMember registers a member object. Re-adding a member is a no-op.
func (u *Union) AddMember(obj *Object) {
	if u.Types == nil {
		u.Types = make(map[string]*Object)
	}
	if _, ok := u.Types[obj.Name]; ok {
		return
	}
	u.Members = append(u.Members, obj.Name)
	u.Types[obj.Name] = obj
}

// Ref is a by-name reference to a type that may not exist yet. All refs
// must resolve against the registry before the schema is complete;
// Registry.ResolveRefs replaces them with the registered nodes.
type Ref struct {
	Name string
}

func (r *Ref) isType() {}

func (r *Ref) String() string {
	return r.Name
}

// A Resolver calculates the value of a field of an object. A nil resolver
// means the default attribute lookup.
type Resolver func(ctx context.Context, source, args interface{}) (interface{}, error)

// Field knows how to compute field values of an Object
type Field struct {
	Type    Type
	Args    map[string]Type
	Resolve Resolver
}

// Schema holds the root Query and Mutation objects together with the
// registry of every named type they reach.
type Schema struct {
	Query    *Object
	Mutation *Object
	Types    *Registry
}

// Verify the variants implement Type
var _ Type = &Scalar{}
var _ Type = &Enum{}
var _ Type = &Object{}
var _ Type = &InputObject{}
var _ Type = &List{}
var _ Type = &NonNull{}
var _ Type = &Union{}
var _ Type = &Ref{}
