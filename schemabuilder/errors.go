package schemabuilder

import "fmt"

// BuildError is a fatal schema-construction failure. Construction halts on
// the first one; no partially built schema is ever returned alongside it.
type BuildError struct {
	Op     string // the construction phase: "build", "wire", "assemble", "merge"
	Detail string
	Err    error
}

func (e *BuildError) Error() string {
	msg := "schemabuilder: " + e.Op
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func buildErr(op string, err error) error {
	return &BuildError{Op: op, Err: err}
}

func buildErrf(op, format string, args ...interface{}) error {
	return &BuildError{Op: op, Detail: fmt.Sprintf(format, args...)}
}
