package schema

import (
	"fmt"

	"github.com/xraph/scimcore/internal/errs"
)

// Validate checks a freshly parsed Schema document for internal
// consistency before the registry indexes it (spec.md §4.1 "malformed
// attribute definition").
func (s *Schema) Validate() error {
	if s.ID == "" {
		return errs.RequiredField("id")
	}
	if s.Name == "" {
		return errs.RequiredField("name")
	}
	if len(s.Attributes) == 0 {
		return errs.RequiredField("attributes")
	}

	seen := make(map[string]bool, len(s.Attributes))
	for _, attr := range s.Attributes {
		if seen[attr.Name] {
			return errs.MalformedAttribute(s.ID, attr.Name, "duplicate attribute name")
		}
		seen[attr.Name] = true

		if err := validateAttribute(s.ID, attr); err != nil {
			return fmt.Errorf("attribute %s: %w", attr.Name, err)
		}
	}

	return nil
}

func validateAttribute(schemaID string, attr AttributeDefinition) error {
	if attr.Name == "" {
		return errs.RequiredField("name")
	}
	if attr.Type == "" {
		return errs.RequiredField("type")
	}
	if !validAttributeTypes[attr.Type] {
		return errs.MalformedAttribute(schemaID, attr.Name, "unknown attribute type: "+string(attr.Type))
	}
	if attr.Mutability != "" && !validMutabilities[attr.Mutability] {
		return errs.MalformedAttribute(schemaID, attr.Name, "unknown mutability: "+string(attr.Mutability))
	}
	if attr.Returned != "" && !validReturned[attr.Returned] {
		return errs.MalformedAttribute(schemaID, attr.Name, "unknown returned policy: "+string(attr.Returned))
	}
	if attr.Uniqueness != "" && !validUniqueness[attr.Uniqueness] {
		return errs.MalformedAttribute(schemaID, attr.Name, "unknown uniqueness: "+string(attr.Uniqueness))
	}

	if attr.Type == TypeComplex && len(attr.SubAttributes) == 0 {
		return errs.MalformedAttribute(schemaID, attr.Name, "complex attribute requires subAttributes")
	}
	if attr.Type != TypeComplex && len(attr.SubAttributes) > 0 {
		return errs.MalformedAttribute(schemaID, attr.Name, "only complex attributes may declare subAttributes")
	}

	subSeen := make(map[string]bool, len(attr.SubAttributes))
	for _, sub := range attr.SubAttributes {
		if subSeen[sub.Name] {
			return errs.MalformedAttribute(schemaID, attr.Name, "duplicate sub-attribute name: "+sub.Name)
		}
		subSeen[sub.Name] = true

		if len(sub.SubAttributes) > 0 {
			return errs.MalformedAttribute(schemaID, attr.Name, "sub-attributes may not themselves be complex")
		}
		if err := validateAttribute(schemaID, sub); err != nil {
			return fmt.Errorf("sub-attribute %s: %w", sub.Name, err)
		}
	}

	return nil
}
