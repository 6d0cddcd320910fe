package errs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/scimcore/internal/errs"
)

func TestNew(t *testing.T) {
	err := errs.New("SOME_CODE", "something happened", 418)

	assert.Equal(t, "SOME_CODE", err.Code)
	assert.Equal(t, "something happened", err.Message)
	assert.Equal(t, 418, err.HTTPStatus)
	assert.False(t, err.Timestamp.IsZero())
	assert.NotNil(t, err.Context)
}

func TestWrap(t *testing.T) {
	cause := errors.New("boom")
	err := errs.Wrap(cause, errs.CodeInternalError, "wrapped", 500)

	assert.Equal(t, cause, err.Err)
	assert.True(t, errors.Is(err, cause))
}

func TestSCIMError_Error(t *testing.T) {
	t.Run("without underlying error", func(t *testing.T) {
		err := errs.New("X", "message", 400)
		assert.Equal(t, "X: message", err.Error())
	})

	t.Run("with underlying error", func(t *testing.T) {
		cause := errors.New("cause")
		err := errs.Wrap(cause, "X", "message", 400)
		assert.Equal(t, "X: message: cause", err.Error())
	})
}

func TestSCIMError_Is(t *testing.T) {
	a := errs.VersionMismatch("v1", "v2")
	b := errs.VersionMismatch("v9", "v10")

	assert.True(t, errors.Is(a, b), "errors with the same code must compare equal")
	assert.True(t, errors.Is(a, errs.ErrVersionMismatch))
	assert.False(t, errors.Is(a, errs.ErrConflict))
}

func TestSCIMError_WithContext(t *testing.T) {
	err := errs.MissingRequiredAttribute("userName").
		WithContext("resource_type", "User").
		WithTraceID("trace-1")

	assert.Equal(t, "userName", err.Context["field_path"])
	assert.Equal(t, "User", err.Context["resource_type"])
	assert.Equal(t, "trace-1", err.TraceID)
}

func TestSCIMError_WithDetails(t *testing.T) {
	details := []string{"userName missing", "schemas empty"}
	err := errs.ValidationFailed(2).WithDetails(details)

	got, ok := err.Details.([]string)
	require.True(t, ok)
	assert.Len(t, got, 2)
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		name       string
		err        *errs.SCIMError
		code       string
		httpStatus int
	}{
		{"MissingRequiredAttribute", errs.MissingRequiredAttribute("userName"), errs.CodeMissingRequiredAttribute, 400},
		{"InvalidType", errs.InvalidType("active", "boolean", "string"), errs.CodeInvalidType, 400},
		{"ExpectedMultiValue", errs.ExpectedMultiValue("emails"), errs.CodeExpectedMultiValue, 400},
		{"ExpectedSingleValue", errs.ExpectedSingleValue("userName"), errs.CodeExpectedSingleValue, 400},
		{"UnknownSchemaURI", errs.UnknownSchemaURI("urn:bogus"), errs.CodeUnknownSchemaURI, 400},
		{"MissingSchemas", errs.MissingSchemas(), errs.CodeMissingSchemas, 400},
		{"EmptySchemas", errs.EmptySchemas(), errs.CodeEmptySchemas, 400},
		{"MutabilityViolation", errs.MutabilityViolation("id", "readOnly"), errs.CodeMutabilityViolation, 400},
		{"CanonicalValueViolation", errs.CanonicalValueViolation("emails[0].type", "bogus"), errs.CodeCanonicalValueViolation, 400},
		{"MultiplePrimary", errs.MultiplePrimary("emails"), errs.CodeMultiplePrimary, 400},
		{"SCIMResourceNotFound", errs.SCIMResourceNotFound("User", "123"), errs.CodeSCIMResourceNotFound, 404},
		{"Conflict", errs.Conflict("User", "123"), errs.CodeConflict, 409},
		{"VersionMismatch", errs.VersionMismatch("v1", "v2"), errs.CodeVersionMismatch, 412},
		{"AlreadyExists", errs.AlreadyExists("User", "123"), errs.CodeAlreadyExists, 409},
		{"InternalError", errs.InternalError(errors.New("x")), errs.CodeInternalError, 500},
		{"BadRequest", errs.BadRequest("nope"), errs.CodeBadRequest, 400},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, tc.httpStatus, tc.err.HTTPStatus)
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, 404, errs.GetHTTPStatus(errs.SCIMResourceNotFound("User", "1")))
	assert.Equal(t, 500, errs.GetHTTPStatus(errors.New("plain")))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errs.CodeVersionMismatch, errs.GetErrorCode(errs.VersionMismatch("a", "b")))
	assert.Equal(t, errs.CodeInternalError, errs.GetErrorCode(errors.New("plain")))
}
