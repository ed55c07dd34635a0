package graphql

// Wrapper identifies one modifier layer around a type.
type Wrapper int

const (
	WrapList Wrapper = iota
	WrapNonNull
)

// Unwrap peels every List/NonNull layer off t and returns the innermost
// type together with the wrapper stack, outermost first. Wrap(inner,
// stack) reproduces t exactly.
func Unwrap(t Type) (Type, []Wrapper) {
	var stack []Wrapper
	for {
		switch w := t.(type) {
		case *List:
			stack = append(stack, WrapList)
			t = w.Type
		case *NonNull:
			stack = append(stack, WrapNonNull)
			t = w.Type
		default:
			return t, stack
		}
	}
}

// Wrap re-applies a wrapper stack (outermost first, as produced by Unwrap)
// around t.
func Wrap(t Type, stack []Wrapper) Type {
	for i := len(stack) - 1; i >= 0; i-- {
		switch stack[i] {
		case WrapList:
			t = &List{Type: t}
		case WrapNonNull:
			t = &NonNull{Type: t}
		}
	}
	return t
}

// Named returns the innermost non-wrapper type of t.
func Named(t Type) Type {
	inner, _ := Unwrap(t)
	return inner
}

// NamedName returns the name of the innermost non-wrapper type of t and
// whether it has one (wrappers and nil types do not).
func NamedName(t Type) (string, bool) {
	switch inner := Named(t).(type) {
	case *Scalar:
		return inner.Type, true
	case *Enum:
		return inner.Type, true
	case *Object:
		return inner.Name, true
	case *InputObject:
		return inner.Name, true
	case *Union:
		return inner.Name, true
	case *Ref:
		return inner.Name, true
	default:
		return "", false
	}
}
