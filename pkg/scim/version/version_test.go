package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/scimcore/pkg/scim/version"
)

// TestFromContent_ReferentiallyStable is P1: equal content -> equal token.
func TestFromContent_ReferentiallyStable(t *testing.T) {
	content := []byte(`{"userName":"alice"}`)
	a := version.FromContent(content)
	b := version.FromContent(content)

	assert.True(t, a.Matches(b))
	assert.True(t, a.Weak)
	assert.GreaterOrEqual(t, len(a.Token), 16)
}

func TestFromContent_DifferentContentDifferentToken(t *testing.T) {
	a := version.FromContent([]byte(`{"userName":"alice"}`))
	b := version.FromContent([]byte(`{"userName":"bob"}`))
	assert.False(t, a.Matches(b))
}

// TestHTTPHeaderRoundTrip is R2.
func TestHTTPHeaderRoundTrip(t *testing.T) {
	v := version.FromContent([]byte("payload"))

	header := v.ToHTTPHeader()
	assert.Regexp(t, `^W/".+"$`, header)

	parsed, err := version.ParseHTTPHeader(header)
	require.NoError(t, err)
	assert.True(t, v.Matches(parsed))
}

func TestParseHTTPHeader_BareForm(t *testing.T) {
	parsed, err := version.ParseHTTPHeader(`"abc123"`)
	require.NoError(t, err)
	assert.False(t, parsed.Weak)
	assert.Equal(t, "abc123", parsed.Token)
}

func TestParseHTTPHeader_Malformed(t *testing.T) {
	cases := []string{"", `W/`, `no-quotes`, `W/""`, `""`}
	for _, c := range cases {
		_, err := version.ParseHTTPHeader(c)
		assert.Error(t, err, c)
	}
}

func TestConditionalResult(t *testing.T) {
	ok := version.Success("resource")
	assert.True(t, ok.Ok())
	assert.Equal(t, "resource", ok.Value)

	mismatch := version.Mismatch[string](version.Version{Token: "v1"}, version.Version{Token: "v2"})
	assert.False(t, mismatch.Ok())
	require.NotNil(t, mismatch.Conflict)
	assert.Equal(t, "v1", mismatch.Conflict.Expected.Token)

	notFound := version.NotFound[string]()
	assert.Equal(t, version.ResultNotFound, notFound.Kind)
}
