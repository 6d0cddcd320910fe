// Package dispatcher implements the Operation Dispatcher (spec.md §2 L8):
// the transport-neutral envelope collaborators (an HTTP layer, a bulk
// processor, a test harness) call into instead of the orchestrator
// directly. No HTTP method, URL path, or status code is defined here —
// that mapping is a collaborator concern (spec.md §6).
package dispatcher

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/xraph/scimcore/core/tenancy"
	"github.com/xraph/scimcore/internal/errs"
	"github.com/xraph/scimcore/pkg/scim/orchestrator"
	"github.com/xraph/scimcore/pkg/scim/resource"
	"github.com/xraph/scimcore/pkg/scim/schema"
	"github.com/xraph/scimcore/pkg/scim/values"
	"github.com/xraph/scimcore/pkg/scim/version"
)

// Operation selects the orchestrator method a Request invokes.
type Operation string

const (
	OpCreate  Operation = "Create"
	OpGet     Operation = "Get"
	OpReplace Operation = "Replace"
	OpDelete  Operation = "Delete"
	OpList    Operation = "List"
)

// ErrorCode is the closed set of error codes the dispatcher may emit
// (spec.md §4.7). Unauthorized is never produced by this core — it is
// reserved for a collaborator (an authz layer) that wraps the dispatcher.
type ErrorCode string

const (
	ErrCodeValidation      ErrorCode = "validation_error"
	ErrCodeNotFound        ErrorCode = "not_found"
	ErrCodeConflict        ErrorCode = "conflict"
	ErrCodeVersionConflict ErrorCode = "version_conflict"
	ErrCodeUnauthorized    ErrorCode = "unauthorized"
	ErrCodeInternal        ErrorCode = "internal_error"
	ErrCodeBadRequest      ErrorCode = "bad_request"
)

// Request is the dispatcher's sole public input shape (spec.md §4.7).
type Request struct {
	Operation       Operation `validate:"required,oneof=Create Get Replace Delete List"`
	ResourceType    string    `validate:"required"`
	ID              string
	Body            map[string]any
	ExpectedVersion *version.Version
	Ctx             tenancy.RequestContext
}

// Response is the dispatcher's sole public output shape (spec.md §4.7).
type Response struct {
	Success      bool
	Data         map[string]any
	Version      *version.Version
	ErrorCode    ErrorCode
	ErrorMessage string
	OperationID  string
}

// Dispatcher selects the orchestrator method by Request.Operation and maps
// its result to the Response shape (spec.md §4.7). It also renders the
// orchestrator's typed Resource back to wire JSON via the same registry
// the orchestrator validates against.
type Dispatcher struct {
	orchestrator *orchestrator.Orchestrator
	registry     *schema.Registry
	envelope     *validator.Validate
}

// New constructs a Dispatcher over an already-configured Orchestrator.
func New(o *orchestrator.Orchestrator, reg *schema.Registry) *Dispatcher {
	return &Dispatcher{
		orchestrator: o,
		registry:     reg,
		envelope:     validator.New(),
	}
}

// Dispatch routes req to the matching orchestrator method and renders a
// Response, preserving req.Ctx.OperationID on every response (spec.md
// §4.7).
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	if err := d.envelope.Struct(req); err != nil {
		return Response{
			ErrorCode:    ErrCodeBadRequest,
			ErrorMessage: err.Error(),
			OperationID:  req.Ctx.OperationID,
		}
	}

	switch req.Operation {
	case OpCreate:
		return d.dispatchCreate(ctx, req)
	case OpGet:
		return d.dispatchGet(ctx, req)
	case OpReplace:
		return d.dispatchReplace(ctx, req)
	case OpDelete:
		return d.dispatchDelete(ctx, req)
	case OpList:
		return d.dispatchList(ctx, req)
	default:
		return Response{
			ErrorCode:    ErrCodeBadRequest,
			ErrorMessage: "unknown operation: " + string(req.Operation),
			OperationID:  req.Ctx.OperationID,
		}
	}
}

func (d *Dispatcher) dispatchCreate(ctx context.Context, req Request) Response {
	r, err := d.orchestrator.Create(ctx, req.Ctx, req.ResourceType, req.Body)
	if err != nil {
		return d.errorResponse(req, err)
	}
	return d.successResponse(req, r)
}

func (d *Dispatcher) dispatchGet(ctx context.Context, req Request) Response {
	r, err := d.orchestrator.Get(ctx, req.Ctx, req.ResourceType, values.ResourceID(req.ID))
	if err != nil {
		return d.errorResponse(req, err)
	}
	if r == nil {
		return Response{ErrorCode: ErrCodeNotFound, ErrorMessage: "resource not found", OperationID: req.Ctx.OperationID}
	}
	return d.successResponse(req, r)
}

func (d *Dispatcher) dispatchReplace(ctx context.Context, req Request) Response {
	result, err := d.orchestrator.Replace(ctx, req.Ctx, req.ResourceType, values.ResourceID(req.ID), req.Body, req.ExpectedVersion)
	if err != nil {
		return d.errorResponse(req, err)
	}
	switch result.Kind {
	case version.ResultSuccess:
		return d.successResponse(req, result.Value)
	case version.ResultNotFound:
		return Response{ErrorCode: ErrCodeNotFound, ErrorMessage: "resource not found", OperationID: req.Ctx.OperationID}
	default:
		return Response{ErrorCode: ErrCodeVersionConflict, ErrorMessage: result.Conflict.Message, OperationID: req.Ctx.OperationID}
	}
}

func (d *Dispatcher) dispatchDelete(ctx context.Context, req Request) Response {
	result, err := d.orchestrator.Delete(ctx, req.Ctx, req.ResourceType, values.ResourceID(req.ID), req.ExpectedVersion)
	if err != nil {
		return d.errorResponse(req, err)
	}
	switch result.Kind {
	case version.ResultSuccess:
		return Response{Success: true, OperationID: req.Ctx.OperationID}
	case version.ResultNotFound:
		return Response{ErrorCode: ErrCodeNotFound, ErrorMessage: "resource not found", OperationID: req.Ctx.OperationID}
	default:
		return Response{ErrorCode: ErrCodeVersionConflict, ErrorMessage: result.Conflict.Message, OperationID: req.Ctx.OperationID}
	}
}

func (d *Dispatcher) dispatchList(ctx context.Context, req Request) Response {
	resources, err := d.orchestrator.List(ctx, req.Ctx, req.ResourceType)
	if err != nil {
		return d.errorResponse(req, err)
	}

	items := make([]map[string]any, 0, len(resources))
	for _, r := range resources {
		wire, jsonErr := r.ToJSON(d.registry)
		if jsonErr != nil {
			return d.errorResponse(req, jsonErr)
		}
		items = append(items, wire)
	}

	return Response{
		Success:     true,
		Data:        map[string]any{"Resources": items, "totalResults": len(items)},
		OperationID: req.Ctx.OperationID,
	}
}

func (d *Dispatcher) successResponse(req Request, r *resource.Resource) Response {
	wire, err := r.ToJSON(d.registry)
	if err != nil {
		return d.errorResponse(req, err)
	}

	var v *version.Version
	if r.Meta != nil {
		rv := r.Meta.Version
		v = &rv
	}

	return Response{
		Success:     true,
		Data:        wire,
		Version:     v,
		OperationID: req.Ctx.OperationID,
	}
}

func (d *Dispatcher) errorResponse(req Request, err error) Response {
	return Response{
		ErrorCode:    mapErrorCode(err),
		ErrorMessage: err.Error(),
		OperationID:  req.Ctx.OperationID,
	}
}

func mapErrorCode(err error) ErrorCode {
	switch errs.GetErrorCode(err) {
	case errs.CodeValidationFailed, errs.CodeMissingRequiredAttribute, errs.CodeInvalidType,
		errs.CodeExpectedMultiValue, errs.CodeExpectedSingleValue, errs.CodeUnknownSchemaURI,
		errs.CodeMissingSchemas, errs.CodeEmptySchemas, errs.CodeMutabilityViolation,
		errs.CodeCanonicalValueViolation, errs.CodeMultiplePrimary, errs.CodeUnknownSubAttribute:
		return ErrCodeValidation
	case errs.CodeSCIMResourceNotFound, errs.CodeNotFound:
		return ErrCodeNotFound
	case errs.CodeConflict:
		return ErrCodeConflict
	case errs.CodeVersionMismatch:
		return ErrCodeVersionConflict
	case errs.CodeBadRequest:
		return ErrCodeBadRequest
	default:
		return ErrCodeInternal
	}
}
