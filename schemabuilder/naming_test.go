package schemabuilder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeName(t *testing.T) {
	require.Equal(t, "UserAccount", TypeName("user_account"))
	require.Equal(t, "Order", TypeName("order"))
	require.Equal(t, "ApiToken", TypeName("api_token"))
}

func TestFieldName(t *testing.T) {
	require.Equal(t, "createdAt", FieldName("created_at"))
	require.Equal(t, "name", FieldName("name"))
	require.Equal(t, "userAccount", FieldName("user_account"))
}

func TestManyFieldName(t *testing.T) {
	require.Equal(t, "userAccounts", ManyFieldName("user_account"))
	require.Equal(t, "orders", ManyFieldName("order"))
	require.Equal(t, "people", ManyFieldName("person"))
}

func TestAttributeName(t *testing.T) {
	require.Equal(t, "created_at", AttributeName("createdAt"))
	require.Equal(t, "name", AttributeName("name"))
}
