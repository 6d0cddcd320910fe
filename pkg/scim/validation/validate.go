package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/xraph/scimcore/internal/validator"
	"github.com/xraph/scimcore/pkg/scim/schema"
)

// Document is a decoded JSON object, the boundary form the validator
// operates on (spec.md §9 design note: "keep JSON as the boundary form
// only" — the typed in-memory model lives one layer up, in pkg/scim/resource).
type Document = map[string]any

// reservedTopLevelKeys are document keys the Resource Model carries on
// dedicated fields rather than as schema-defined attributes (spec.md
// §4.3); the unknown-attribute check must not flag these.
var reservedTopLevelKeys = map[string]bool{
	"schemas":    true,
	"id":         true,
	"externalId": true,
	"meta":       true,
}

// Validate enforces the rules spec.md §4.2 enumerates against doc, given
// the schemas reg has loaded for resourceType, except the "immutable
// attributes must not change on Update" half of rule 7, which needs the
// committed document and is checked by ValidateImmutability. It collects every
// independent top-level violation rather than failing fast (§4.2
// rationale, §7 propagation policy).
func Validate(reg *schema.Registry, resourceType string, doc Document, opCtx OperationContext) (Errors, error) {
	primaryURI, err := reg.PrimarySchemaFor(resourceType)
	if err != nil {
		return nil, err
	}

	var errsOut Errors

	declaredSchemas, schemaErrs := validateSchemasAttribute(reg, doc, primaryURI)
	errsOut = append(errsOut, schemaErrs...)

	if opCtx == Create {
		if _, present := doc["id"]; present {
			errsOut = append(errsOut, newError(KindMutabilityViolation, "id", "id must not be supplied on create"))
		}
		if _, present := doc["meta"]; present {
			errsOut = append(errsOut, newError(KindMutabilityViolation, "meta", "meta must not be supplied on create"))
		}
	}
	if opCtx == Update {
		if _, present := doc["id"]; !present {
			errsOut = append(errsOut, newError(KindMissingRequiredAttribute, "id", "id is required on update"))
		}
	}

	known := make(map[string]bool, len(doc))
	for _, schemaURI := range declaredSchemas {
		s, lookupErr := reg.SchemaByURI(schemaURI)
		if lookupErr != nil {
			continue // already reported as UnknownSchemaUri above
		}
		for _, attr := range s.Attributes {
			known[attr.Name] = true
			errsOut = append(errsOut, validateTopLevelAttribute(attr, doc, opCtx, attr.Name)...)
		}
	}

	// Rule (§3): every attribute name present in the document must be
	// defined by one of the declared schemas. Mirrors the sub-attribute
	// check in validateComplexFields, which already rejects unknowns.
	for key := range doc {
		if reservedTopLevelKeys[key] || known[key] {
			continue
		}
		errsOut = append(errsOut, newError(KindUnknownAttribute, key, "attribute not defined by any declared schema"))
	}

	return errsOut, nil
}

// validateSchemasAttribute implements rule 1 and returns the set of schema
// URIs the document declares (for attribute resolution), plus any
// violations.
func validateSchemasAttribute(reg *schema.Registry, doc Document, primaryURI string) ([]string, Errors) {
	var errsOut Errors

	raw, present := doc["schemas"]
	if !present {
		return nil, Errors{newError(KindMissingSchemas, "schemas", "schemas is required")}
	}

	arr, ok := raw.([]any)
	if !ok || len(arr) == 0 {
		return nil, Errors{newError(KindEmptySchemas, "schemas", "schemas must be a non-empty array")}
	}

	uris := make([]string, 0, len(arr))
	foundPrimary := false
	for i, v := range arr {
		s, ok := v.(string)
		if !ok {
			errsOut = append(errsOut, newError(KindInvalidType, fmt.Sprintf("schemas[%d]", i), "schema URI must be a string"))
			continue
		}
		if _, err := reg.SchemaByURI(s); err != nil {
			errsOut = append(errsOut, newError(KindUnknownSchemaURI, fmt.Sprintf("schemas[%d]", i), "unknown schema URI: "+s))
			continue
		}
		if s == primaryURI {
			foundPrimary = true
		}
		uris = append(uris, s)
	}

	if !foundPrimary {
		errsOut = append(errsOut, newError(KindMissingSchemas, "schemas", "schemas must contain the primary schema: "+primaryURI))
	}

	return uris, errsOut
}

func validateTopLevelAttribute(attr schema.AttributeDefinition, doc Document, opCtx OperationContext, fieldPath string) Errors {
	value, present := doc[attr.Name]
	return validateAttributeValue(attr, value, present, opCtx, fieldPath)
}

func validateAttributeValue(attr schema.AttributeDefinition, value any, present bool, opCtx OperationContext, fieldPath string) Errors {
	var errsOut Errors

	if !present {
		if attr.Required {
			errsOut = append(errsOut, newError(KindMissingRequiredAttribute, fieldPath, "required attribute missing"))
		}
		return errsOut
	}

	if attr.Mutability == schema.MutabilityReadOnly && opCtx == Create {
		errsOut = append(errsOut, newError(KindMutabilityViolation, fieldPath, "readOnly attribute must not be supplied on create"))
		return errsOut
	}

	if attr.MultiValued {
		arr, ok := value.([]any)
		if !ok {
			errsOut = append(errsOut, newError(KindExpectedMultiValue, fieldPath, "attribute must be a sequence"))
			return errsOut
		}

		primaryCount := 0
		for i, elem := range arr {
			elemPath := fmt.Sprintf("%s[%d]", fieldPath, i)
			entryErrs, isPrimary := validateMultiValuedEntry(attr, elem, opCtx, elemPath)
			errsOut = append(errsOut, entryErrs...)
			if isPrimary {
				primaryCount++
			}
		}
		if primaryCount > 1 {
			errsOut = append(errsOut, newError(KindMultiplePrimary, fieldPath, "at most one entry may be marked primary"))
		}
		return errsOut
	}

	if _, ok := value.([]any); ok {
		errsOut = append(errsOut, newError(KindExpectedSingleValue, fieldPath, "attribute must not be a sequence"))
		return errsOut
	}

	errsOut = append(errsOut, validateScalarOrComplex(attr, value, opCtx, fieldPath)...)
	return errsOut
}

// validateMultiValuedEntry validates one entry of a multi-valued attribute.
// Per RFC 7643, entries of a multi-valued complex attribute carry their own
// type/primary/display/$ref wrapper around the scalar or complex value; we
// validate the wrapper's "primary" field generically and the rest of the
// entry as the attribute's declared (possibly complex) type.
func validateMultiValuedEntry(attr schema.AttributeDefinition, elem any, opCtx OperationContext, fieldPath string) (Errors, bool) {
	entry, ok := elem.(map[string]any)
	if !ok {
		// scalar multi-valued attribute (no wrapper): validate directly.
		return validateScalarOrComplex(attr, elem, opCtx, fieldPath), false
	}

	primary, _ := entry["primary"].(bool)

	if attr.Type == schema.TypeComplex {
		return validateComplexFields(attr, entry, opCtx, fieldPath), primary
	}

	// Wrapped scalar entry: value lives under "value".
	inner, present := entry["value"]
	return validateAttributeValue(schema.AttributeDefinition{
		Name: attr.Name, Type: attr.Type, Required: false,
		Mutability: attr.Mutability, CanonicalValues: attr.CanonicalValues,
	}, inner, present, opCtx, fieldPath+".value"), primary
}

func validateScalarOrComplex(attr schema.AttributeDefinition, value any, opCtx OperationContext, fieldPath string) Errors {
	if attr.Type == schema.TypeComplex {
		obj, ok := value.(map[string]any)
		if !ok {
			return Errors{newError(KindInvalidType, fieldPath, "complex attribute must be an object")}
		}
		return validateComplexFields(attr, obj, opCtx, fieldPath)
	}
	return validateScalar(attr, value, fieldPath)
}

func validateComplexFields(attr schema.AttributeDefinition, obj map[string]any, opCtx OperationContext, fieldPath string) Errors {
	var errsOut Errors

	known := make(map[string]schema.AttributeDefinition, len(attr.SubAttributes))
	for _, sub := range attr.SubAttributes {
		known[sub.Name] = sub
	}

	for key := range obj {
		if key == "primary" {
			continue // wrapper field, handled by the caller
		}
		if _, ok := known[key]; !ok {
			errsOut = append(errsOut, newError(KindUnknownSubAttribute, fieldPath+"."+key, "unknown sub-attribute"))
		}
	}

	for _, sub := range attr.SubAttributes {
		subValue, present := obj[sub.Name]
		errsOut = append(errsOut, validateAttributeValue(sub, subValue, present, opCtx, fieldPath+"."+sub.Name)...)
	}

	return errsOut
}

func validateScalar(attr schema.AttributeDefinition, value any, fieldPath string) Errors {
	var errsOut Errors

	switch attr.Type {
	case schema.TypeString:
		s, ok := value.(string)
		if !ok {
			return Errors{newError(KindInvalidType, fieldPath, "expected string, got "+goType(value))}
		}
		errsOut = append(errsOut, validateCanonicalValue(attr, s, fieldPath)...)
	case schema.TypeBoolean:
		if _, ok := value.(bool); !ok {
			return Errors{newError(KindInvalidType, fieldPath, "expected boolean, got "+goType(value))}
		}
	case schema.TypeDecimal:
		if _, ok := value.(float64); !ok {
			return Errors{newError(KindInvalidType, fieldPath, "expected decimal, got "+goType(value))}
		}
	case schema.TypeInteger:
		n, ok := value.(float64)
		if !ok || math.Trunc(n) != n {
			return Errors{newError(KindInvalidType, fieldPath, "expected integer, got "+goType(value))}
		}
	case schema.TypeDateTime:
		s, ok := value.(string)
		if !ok || !validator.ValidateRFC3339(s) {
			return Errors{newError(KindInvalidType, fieldPath, "expected RFC 3339 dateTime")}
		}
	case schema.TypeBinary:
		if _, ok := value.(string); !ok {
			return Errors{newError(KindInvalidType, fieldPath, "expected base64 binary string")}
		}
	case schema.TypeReference:
		s, ok := value.(string)
		if !ok || !validator.ValidateURI(s) {
			return Errors{newError(KindInvalidType, fieldPath, "expected a syntactically valid URI")}
		}
	}

	return errsOut
}

func validateCanonicalValue(attr schema.AttributeDefinition, value, fieldPath string) Errors {
	if len(attr.CanonicalValues) == 0 {
		return nil
	}
	for _, cv := range attr.CanonicalValues {
		if attr.CaseExact {
			if value == cv {
				return nil
			}
		} else if strings.EqualFold(value, cv) {
			return nil
		}
	}
	return Errors{newError(KindCanonicalValueViolation, fieldPath, "value not among canonical values")}
}

func goType(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
