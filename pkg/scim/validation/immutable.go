package validation

import (
	"fmt"
	"reflect"

	"github.com/xraph/scimcore/pkg/scim/schema"
)

// ValidateImmutability implements the second half of spec.md §4.2 rule 7:
// "immutable attributes must not change on Update." The stateless Validate
// function above has no access to the currently committed document, so the
// orchestrator calls this separately once it has fetched previous, before
// writing next (spec.md §4.6 replace, step 1).
//
// Immutability can be declared at the top level (e.g. a scalar attribute)
// or on the sub-attributes of a complex attribute (RFC 7643's canonical
// example is Group.members.value), so this walks both shapes.
func ValidateImmutability(reg *schema.Registry, schemaURI string, previous, next Document) (Errors, error) {
	s, err := reg.SchemaByURI(schemaURI)
	if err != nil {
		return nil, err
	}

	var errsOut Errors
	for _, attr := range s.Attributes {
		errsOut = append(errsOut, checkAttributeImmutability(attr, previous[attr.Name], next[attr.Name], attr.Name)...)
	}
	return errsOut, nil
}

func checkAttributeImmutability(attr schema.AttributeDefinition, oldValue, newValue any, fieldPath string) Errors {
	if oldValue == nil {
		return nil // nothing previously committed to preserve
	}

	if attr.Mutability == schema.MutabilityImmutable {
		if !reflect.DeepEqual(oldValue, newValue) {
			return Errors{newError(KindMutabilityViolation, fieldPath, "immutable attribute must not change on update")}
		}
		return nil
	}

	if attr.Type != schema.TypeComplex || !hasImmutableSubAttribute(attr) {
		return nil
	}

	if attr.MultiValued {
		return checkMultiValuedImmutability(attr, oldValue, newValue, fieldPath)
	}
	return checkComplexImmutability(attr, oldValue, newValue, fieldPath)
}

func hasImmutableSubAttribute(attr schema.AttributeDefinition) bool {
	for _, sub := range attr.SubAttributes {
		if sub.Mutability == schema.MutabilityImmutable {
			return true
		}
	}
	return false
}

func checkComplexImmutability(attr schema.AttributeDefinition, oldValue, newValue any, fieldPath string) Errors {
	oldMap, ok := oldValue.(map[string]any)
	if !ok {
		return nil
	}
	newMap, _ := newValue.(map[string]any)

	var errsOut Errors
	for _, sub := range attr.SubAttributes {
		if sub.Mutability != schema.MutabilityImmutable {
			continue
		}
		oldSub, hadOld := oldMap[sub.Name]
		if !hadOld {
			continue
		}
		newSub, hasNew := newMap[sub.Name]
		if !hasNew || !reflect.DeepEqual(oldSub, newSub) {
			errsOut = append(errsOut, newError(KindMutabilityViolation, fieldPath+"."+sub.Name, "immutable sub-attribute must not change on update"))
		}
	}
	return errsOut
}

// checkMultiValuedImmutability matches entries across previous and next by
// their "value" sub-field (the natural identity key for references like
// Group.members) and flags any matched or dropped entry whose immutable
// sub-attributes changed. Newly added entries are not checked.
func checkMultiValuedImmutability(attr schema.AttributeDefinition, oldValue, newValue any, fieldPath string) Errors {
	oldArr, ok := oldValue.([]any)
	if !ok {
		return nil
	}
	newArr, _ := newValue.([]any)

	var errsOut Errors
	for i, oldElem := range oldArr {
		oldMap, ok := oldElem.(map[string]any)
		if !ok {
			continue
		}
		newMap, matched := findEntryByValue(oldMap, newArr)

		for _, sub := range attr.SubAttributes {
			if sub.Mutability != schema.MutabilityImmutable {
				continue
			}
			oldSub, hadOld := oldMap[sub.Name]
			if !hadOld {
				continue
			}
			subPath := fmt.Sprintf("%s[%d].%s", fieldPath, i, sub.Name)
			if !matched {
				errsOut = append(errsOut, newError(KindMutabilityViolation, subPath, "entry with immutable sub-attributes must not be removed on update"))
				continue
			}
			newSub, hasNew := newMap[sub.Name]
			if !hasNew || !reflect.DeepEqual(oldSub, newSub) {
				errsOut = append(errsOut, newError(KindMutabilityViolation, subPath, "immutable sub-attribute must not change on update"))
			}
		}
	}
	return errsOut
}

func findEntryByValue(oldMap map[string]any, newArr []any) (map[string]any, bool) {
	identity, hasIdentity := oldMap["value"]
	if !hasIdentity {
		return nil, false
	}
	for _, elem := range newArr {
		newMap, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		if v, ok := newMap["value"]; ok && reflect.DeepEqual(v, identity) {
			return newMap, true
		}
	}
	return nil, false
}
