package validation

import (
	"strings"

	"github.com/xraph/scimcore/internal/errs"
)

// Kind enumerates the violation kinds the validator can report (spec.md
// §4.2).
type Kind string

const (
	KindMissingRequiredAttribute Kind = "MissingRequiredAttribute"
	KindInvalidType              Kind = "InvalidType"
	KindExpectedMultiValue       Kind = "ExpectedMultiValue"
	KindExpectedSingleValue      Kind = "ExpectedSingleValue"
	KindUnknownSchemaURI         Kind = "UnknownSchemaUri"
	KindMissingSchemas           Kind = "MissingSchemas"
	KindEmptySchemas             Kind = "EmptySchemas"
	KindMutabilityViolation      Kind = "MutabilityViolation"
	KindCanonicalValueViolation  Kind = "CanonicalValueViolation"
	KindMultiplePrimary          Kind = "MultiplePrimary"
	KindUnknownSubAttribute      Kind = "UnknownSubAttribute"
	KindUnknownAttribute         Kind = "UnknownAttribute"
)

// Error is one structured validation violation, carrying a dotted field
// path such as "emails[1].value" (spec.md §4.2).
type Error struct {
	Kind      Kind
	FieldPath string
	Message   string
}

func (e *Error) Error() string {
	return e.FieldPath + ": " + e.Message
}

// Errors aggregates every independent violation found across one document's
// top-level attribute tree: the validator collects all of these before
// returning (spec.md §4.2 rationale, §7 propagation policy), rather than
// failing fast on the first one.
type Errors []*Error

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// HasErrors reports whether any violation was recorded.
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// ToSCIMError renders the aggregate as the taxonomy's ValidationFailed
// error (spec.md §7), with the individual violations as Details.
func (e Errors) ToSCIMError() *errs.SCIMError {
	return errs.ValidationFailed(len(e)).WithDetails(e)
}

func newError(kind Kind, fieldPath, message string) *Error {
	return &Error{Kind: kind, FieldPath: fieldPath, Message: message}
}
