package schemabuilder

import (
	"github.com/go-openapi/inflect"
	"github.com/iancoleman/strcase"
)

// TypeName converts a table name to a GraphQL type name:
// user_account becomes UserAccount.
func TypeName(name string) string {
	return strcase.ToCamel(name)
}

// FieldName converts a column or relationship name to a GraphQL field
// name: created_at becomes createdAt.
func FieldName(name string) string {
	return strcase.ToLowerCamel(name)
}

// ManyFieldName returns the pluralized field name used for the many query:
// user_account becomes userAccounts.
func ManyFieldName(name string) string {
	return FieldName(inflect.Pluralize(name))
}

// AttributeName converts a GraphQL field name back to the storage
// attribute it reads: createdAt becomes created_at.
func AttributeName(name string) string {
	return strcase.ToSnake(name)
}
