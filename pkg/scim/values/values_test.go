package values_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/scimcore/pkg/scim/values"
)

func TestNewResourceID_IsLowercaseUUIDv4(t *testing.T) {
	id := values.NewResourceID()
	assert.Equal(t, id.String(), string(id))
	assert.Equal(t, strings.ToLower(id.String()), id.String(), "id must be lowercase")
	require.Len(t, id.String(), 36)
	assert.Equal(t, byte('4'), id.String()[14], "UUID version nibble must be 4")

	parsed, err := values.ParseResourceID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseResourceID_Invalid(t *testing.T) {
	_, err := values.ParseResourceID("not-a-uuid")
	assert.Error(t, err)
}

func TestNewUserName(t *testing.T) {
	_, err := values.NewUserName("")
	assert.Error(t, err)

	_, err = values.NewUserName("   ")
	assert.Error(t, err)

	u, err := values.NewUserName("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.String())
}

func TestNewEmailAddress(t *testing.T) {
	_, err := values.NewEmailAddress("not-an-email")
	assert.Error(t, err)

	e, err := values.NewEmailAddress("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", e.String())
}

func TestNewSchemaURI(t *testing.T) {
	_, err := values.NewSchemaURI("")
	assert.Error(t, err)

	u, err := values.NewSchemaURI("urn:ietf:params:scim:schemas:core:2.0:User")
	require.NoError(t, err)
	assert.Equal(t, "urn:ietf:params:scim:schemas:core:2.0:User", u.String())
}

func TestValidatePrimary(t *testing.T) {
	ok := values.MultiValued[values.EmailAddress]{
		{Value: "a@example.com", Primary: true},
		{Value: "b@example.com", Primary: false},
	}
	assert.NoError(t, values.ValidatePrimary("emails", ok))

	bad := values.MultiValued[values.EmailAddress]{
		{Value: "a@example.com", Primary: true},
		{Value: "b@example.com", Primary: true},
	}
	assert.Error(t, values.ValidatePrimary("emails", bad))
}

func TestNameIsZero(t *testing.T) {
	assert.True(t, values.Name{}.IsZero())
	assert.False(t, values.Name{GivenName: "Alice"}.IsZero())
}
