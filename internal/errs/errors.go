// Package errs provides the structured error taxonomy used throughout the
// SCIM core. A *SCIMError carries a stable machine-readable code, an
// informational HTTP status for collaborators that map onto HTTP, and
// optional structured context. The storage and tenancy packages export
// plain sentinel errors instead; the orchestrator maps storage errors into
// this taxonomy.
package errs

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// Validation errors (Validator, §4.2)
	CodeMissingRequiredAttribute = "MISSING_REQUIRED_ATTRIBUTE"
	CodeInvalidType              = "INVALID_TYPE"
	CodeExpectedMultiValue       = "EXPECTED_MULTI_VALUE"
	CodeExpectedSingleValue      = "EXPECTED_SINGLE_VALUE"
	CodeUnknownSchemaURI         = "UNKNOWN_SCHEMA_URI"
	CodeMissingSchemas           = "MISSING_SCHEMAS"
	CodeEmptySchemas             = "EMPTY_SCHEMAS"
	CodeMutabilityViolation      = "MUTABILITY_VIOLATION"
	CodeCanonicalValueViolation  = "CANONICAL_VALUE_VIOLATION"
	CodeMultiplePrimary          = "MULTIPLE_PRIMARY"
	CodeUnknownSubAttribute      = "UNKNOWN_SUB_ATTRIBUTE"
	CodeValidationFailed         = "VALIDATION_FAILED"

	// Resource / orchestrator errors (§4.6, §7)
	CodeSCIMResourceNotFound = "SCIM_RESOURCE_NOT_FOUND"
	CodeSCIMInvalidFilter    = "SCIM_INVALID_FILTER"
	CodeSCIMInvalidPath      = "SCIM_INVALID_PATH"
	CodeConflict             = "CONFLICT"
	CodeVersionMismatch      = "VERSION_MISMATCH"
	CodeNotFound             = "NOT_FOUND"

	// Schema registry errors (§4.1)
	CodeSchemaLoadError      = "SCHEMA_LOAD_ERROR"
	CodeDuplicateSchemaID    = "DUPLICATE_SCHEMA_ID"
	CodeMalformedAttribute   = "MALFORMED_ATTRIBUTE_DEFINITION"
	CodeUnresolvedParent     = "UNRESOLVED_PARENT_SCHEMA"
	CodeUnknownResourceType  = "UNKNOWN_RESOURCE_TYPE"

	// Storage backend errors (§4.5, §7)
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeStorageCorruption  = "STORAGE_CORRUPTION"
	CodeAlreadyExists      = "ALREADY_EXISTS"

	// Versioning engine errors (§4.4, §7)
	CodeParseError = "VERSION_PARSE_ERROR"

	// General errors
	CodeInternalError = "INTERNAL_ERROR"
	CodeBadRequest    = "BAD_REQUEST"
	CodeRequiredField = "REQUIRED_FIELD"
	CodeInvalidInput  = "INVALID_INPUT"
)

// =============================================================================
// SCIM ERROR
// =============================================================================

// SCIMError is the structured error type of this module's error taxonomy.
type SCIMError struct {
	// Code is the stable machine-readable error code (e.g. "VERSION_MISMATCH").
	Code string `json:"code"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// HTTPStatus is an informational HTTP status; this core has no HTTP
	// layer, but collaborators that bridge to one read it directly.
	HTTPStatus int `json:"-"`

	// Err is the underlying error, if any.
	Err error `json:"-"`

	// Context carries structured debug information.
	Context map[string]any `json:"context,omitempty"`

	// Timestamp is when the error was constructed.
	Timestamp time.Time `json:"timestamp"`

	// TraceID, for distributed tracing, set by a collaborator.
	TraceID string `json:"trace_id,omitempty"`

	// Details carries structured payload-specific detail (e.g. per-field
	// validation failures).
	Details any `json:"details,omitempty"`
}

func (e *SCIMError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SCIMError) Unwrap() error {
	return e.Err
}

// Is compares by error code, so sentinel values below work with errors.Is.
func (e *SCIMError) Is(target error) bool {
	t, ok := target.(*SCIMError)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

func (e *SCIMError) WithContext(key string, value any) *SCIMError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func (e *SCIMError) WithDetails(details any) *SCIMError {
	e.Details = details
	return e
}

func (e *SCIMError) WithTraceID(traceID string) *SCIMError {
	e.TraceID = traceID
	return e
}

func (e *SCIMError) WithError(err error) *SCIMError {
	e.Err = err
	return e
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// New creates a new SCIMError.
func New(code, message string, httpStatus int) *SCIMError {
	return &SCIMError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Timestamp:  time.Now(),
		Context:    make(map[string]any),
	}
}

// Wrap wraps an existing error with SCIM error context.
func Wrap(err error, code, message string, httpStatus int) *SCIMError {
	return &SCIMError{
		Code:       code,
		Message:    message,
		Err:        err,
		Timestamp:  time.Now(),
		HTTPStatus: httpStatus,
		Context:    make(map[string]any),
	}
}

// =============================================================================
// VALIDATION ERRORS (§4.2, §7)
// =============================================================================

func MissingRequiredAttribute(fieldPath string) *SCIMError {
	return New(CodeMissingRequiredAttribute, "required attribute missing", http.StatusBadRequest).
		WithContext("field_path", fieldPath)
}

func InvalidType(fieldPath, expected, actual string) *SCIMError {
	return New(CodeInvalidType, "attribute value does not match declared type", http.StatusBadRequest).
		WithContext("field_path", fieldPath).
		WithContext("expected", expected).
		WithContext("actual", actual)
}

func ExpectedMultiValue(fieldPath string) *SCIMError {
	return New(CodeExpectedMultiValue, "attribute must be a sequence", http.StatusBadRequest).
		WithContext("field_path", fieldPath)
}

func ExpectedSingleValue(fieldPath string) *SCIMError {
	return New(CodeExpectedSingleValue, "attribute must not be a sequence", http.StatusBadRequest).
		WithContext("field_path", fieldPath)
}

func UnknownSchemaURI(uri string) *SCIMError {
	return New(CodeUnknownSchemaURI, "schema URI is not registered", http.StatusBadRequest).
		WithContext("uri", uri)
}

func MissingSchemas() *SCIMError {
	return New(CodeMissingSchemas, "schemas attribute is required", http.StatusBadRequest)
}

func EmptySchemas() *SCIMError {
	return New(CodeEmptySchemas, "schemas attribute must not be empty", http.StatusBadRequest)
}

func MutabilityViolation(fieldPath, reason string) *SCIMError {
	return New(CodeMutabilityViolation, "attribute mutability violated", http.StatusBadRequest).
		WithContext("field_path", fieldPath).
		WithContext("reason", reason)
}

func CanonicalValueViolation(fieldPath string, value any) *SCIMError {
	return New(CodeCanonicalValueViolation, "value is not among the attribute's canonical values", http.StatusBadRequest).
		WithContext("field_path", fieldPath).
		WithContext("value", value)
}

func MultiplePrimary(fieldPath string) *SCIMError {
	return New(CodeMultiplePrimary, "at most one entry may be marked primary", http.StatusBadRequest).
		WithContext("field_path", fieldPath)
}

func UnknownSubAttribute(fieldPath string) *SCIMError {
	return New(CodeUnknownSubAttribute, "unknown sub-attribute", http.StatusBadRequest).
		WithContext("field_path", fieldPath)
}

func ValidationFailed(fieldCount int) *SCIMError {
	return New(CodeValidationFailed, "one or more attributes failed validation", http.StatusBadRequest).
		WithContext("violation_count", fieldCount)
}

// =============================================================================
// RESOURCE / ORCHESTRATOR ERRORS
// =============================================================================

func SCIMResourceNotFound(resourceType, id string) *SCIMError {
	return New(CodeSCIMResourceNotFound, "SCIM resource not found", http.StatusNotFound).
		WithContext("resource_type", resourceType).
		WithContext("id", id)
}

func SCIMInvalidFilter(filter string) *SCIMError {
	return New(CodeSCIMInvalidFilter, "invalid SCIM filter", http.StatusBadRequest).
		WithContext("filter", filter)
}

func SCIMInvalidPath(path string) *SCIMError {
	return New(CodeSCIMInvalidPath, "invalid SCIM path", http.StatusBadRequest).
		WithContext("path", path)
}

func Conflict(resourceType, id string) *SCIMError {
	return New(CodeConflict, "resource already exists", http.StatusConflict).
		WithContext("resource_type", resourceType).
		WithContext("id", id)
}

func VersionMismatch(expected, current string) *SCIMError {
	return New(CodeVersionMismatch, "expected version does not match the currently committed version", http.StatusPreconditionFailed).
		WithContext("expected", expected).
		WithContext("current", current)
}

func NotFound(msg string) *SCIMError {
	return New(CodeNotFound, msg, http.StatusNotFound)
}

// =============================================================================
// SCHEMA REGISTRY ERRORS
// =============================================================================

func SchemaLoadError(reason string, err error) *SCIMError {
	return Wrap(err, CodeSchemaLoadError, "failed to load schema", http.StatusInternalServerError).
		WithContext("reason", reason)
}

func DuplicateSchemaID(id string) *SCIMError {
	return New(CodeDuplicateSchemaID, "duplicate schema id", http.StatusInternalServerError).
		WithContext("id", id)
}

func MalformedAttribute(schemaID, attrName, reason string) *SCIMError {
	return New(CodeMalformedAttribute, "malformed attribute definition", http.StatusInternalServerError).
		WithContext("schema_id", schemaID).
		WithContext("attribute", attrName).
		WithContext("reason", reason)
}

func UnresolvedParentSchema(schemaID string) *SCIMError {
	return New(CodeUnresolvedParent, "unresolved reference to parent schema", http.StatusInternalServerError).
		WithContext("schema_id", schemaID)
}

func UnknownResourceType(resourceType string) *SCIMError {
	return New(CodeUnknownResourceType, "no schema mapped for resource type", http.StatusBadRequest).
		WithContext("resource_type", resourceType)
}

// =============================================================================
// STORAGE ERRORS
// =============================================================================

func StorageUnavailable(err error) *SCIMError {
	return Wrap(err, CodeStorageUnavailable, "storage backend unavailable", http.StatusInternalServerError)
}

func StorageCorruption(err error) *SCIMError {
	return Wrap(err, CodeStorageCorruption, "storage backend returned corrupt data", http.StatusInternalServerError)
}

func AlreadyExists(resourceType, id string) *SCIMError {
	return New(CodeAlreadyExists, "id already exists within tenant and resource type", http.StatusConflict).
		WithContext("resource_type", resourceType).
		WithContext("id", id)
}

// =============================================================================
// VERSIONING ERRORS
// =============================================================================

func ParseError(token string, err error) *SCIMError {
	return Wrap(err, CodeParseError, "malformed version token", http.StatusBadRequest).
		WithContext("token", token)
}

// =============================================================================
// GENERAL ERRORS
// =============================================================================

func InternalError(err error) *SCIMError {
	return Wrap(err, CodeInternalError, "internal error", http.StatusInternalServerError)
}

func BadRequest(msg string) *SCIMError {
	return New(CodeBadRequest, msg, http.StatusBadRequest)
}

func RequiredField(field string) *SCIMError {
	return New(CodeRequiredField, "required field missing", http.StatusBadRequest).
		WithContext("field", field)
}

func InvalidInput(field, reason string) *SCIMError {
	return New(CodeInvalidInput, "invalid input", http.StatusBadRequest).
		WithContext("field", field).
		WithContext("reason", reason)
}

// =============================================================================
// HELPERS
// =============================================================================

// Is checks if an error matches the target SCIMError by code.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target's type.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetHTTPStatus extracts the informational HTTP status from an error.
func GetHTTPStatus(err error) int {
	var scimErr *SCIMError
	if errors.As(err, &scimErr) {
		return scimErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// GetErrorCode extracts the stable error code from an error.
func GetErrorCode(err error) string {
	var scimErr *SCIMError
	if errors.As(err, &scimErr) {
		return scimErr.Code
	}
	return CodeInternalError
}

// =============================================================================
// SENTINEL ERRORS (for use with errors.Is)
// =============================================================================

var (
	ErrMissingRequiredAttribute = &SCIMError{Code: CodeMissingRequiredAttribute}
	ErrEmptySchemas             = &SCIMError{Code: CodeEmptySchemas}
	ErrMultiplePrimary          = &SCIMError{Code: CodeMultiplePrimary}
	ErrMutabilityViolation      = &SCIMError{Code: CodeMutabilityViolation}
	ErrSCIMResourceNotFound     = &SCIMError{Code: CodeSCIMResourceNotFound}
	ErrConflict                 = &SCIMError{Code: CodeConflict}
	ErrVersionMismatch          = &SCIMError{Code: CodeVersionMismatch}
	ErrAlreadyExists            = &SCIMError{Code: CodeAlreadyExists}
	ErrValidationFailed         = &SCIMError{Code: CodeValidationFailed}
	ErrInternalError            = &SCIMError{Code: CodeInternalError}
)
