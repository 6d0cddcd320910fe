// Package schema implements the Schema Registry (spec.md §4.1): it compiles
// SCIM schema definition documents into an in-memory model and indexes them
// for lookup by schema URI and attribute path.
package schema

// AttributeType enumerates the scalar and structural kinds a SCIM attribute
// value may take (spec.md §3).
type AttributeType string

const (
	TypeString    AttributeType = "string"
	TypeBoolean   AttributeType = "boolean"
	TypeDecimal   AttributeType = "decimal"
	TypeInteger   AttributeType = "integer"
	TypeDateTime  AttributeType = "dateTime"
	TypeBinary    AttributeType = "binary"
	TypeReference AttributeType = "reference"
	TypeComplex   AttributeType = "complex"
)

var validAttributeTypes = map[AttributeType]bool{
	TypeString: true, TypeBoolean: true, TypeDecimal: true, TypeInteger: true,
	TypeDateTime: true, TypeBinary: true, TypeReference: true, TypeComplex: true,
}

// Mutability enumerates who may set or change an attribute value.
type Mutability string

const (
	MutabilityReadOnly  Mutability = "readOnly"
	MutabilityReadWrite Mutability = "readWrite"
	MutabilityImmutable Mutability = "immutable"
	MutabilityWriteOnly Mutability = "writeOnly"
)

var validMutabilities = map[Mutability]bool{
	MutabilityReadOnly: true, MutabilityReadWrite: true, MutabilityImmutable: true, MutabilityWriteOnly: true,
}

// Returned enumerates when an attribute is included in a returned resource.
type Returned string

const (
	ReturnedAlways  Returned = "always"
	ReturnedDefault Returned = "default"
	ReturnedRequest Returned = "request"
	ReturnedNever   Returned = "never"
)

var validReturned = map[Returned]bool{
	ReturnedAlways: true, ReturnedDefault: true, ReturnedRequest: true, ReturnedNever: true,
}

// Uniqueness enumerates the uniqueness scope a schema declares for an
// attribute. Server and global uniqueness are not enforced by the validator
// (spec.md §4.2) nor by the orchestrator; storage.UniquenessChecker is the
// optional backend capability modeled for it, which the orchestrator does
// not call (see DESIGN.md open question 1).
type Uniqueness string

const (
	UniquenessNone   Uniqueness = "none"
	UniquenessServer Uniqueness = "server"
	UniquenessGlobal Uniqueness = "global"
)

var validUniqueness = map[Uniqueness]bool{
	UniquenessNone: true, UniquenessServer: true, UniquenessGlobal: true,
}

// AttributeDefinition is the registry's compiled model of one SCIM
// attribute (spec.md §3).
type AttributeDefinition struct {
	Name            string                `json:"name"`
	Type            AttributeType         `json:"type"`
	MultiValued     bool                  `json:"multiValued"`
	Required        bool                  `json:"required"`
	CaseExact       bool                  `json:"caseExact"`
	Mutability      Mutability            `json:"mutability"`
	Returned        Returned              `json:"returned"`
	Uniqueness      Uniqueness            `json:"uniqueness"`
	CanonicalValues []string              `json:"canonicalValues,omitempty"`
	SubAttributes   []AttributeDefinition `json:"subAttributes,omitempty"`
	Description     string                `json:"description,omitempty"`
	ReferenceTypes  []string              `json:"referenceTypes,omitempty"`
}

// Schema is immutable after Registry.Load (spec.md §3): it is shared by
// reference across all concurrent operations without synchronization.
type Schema struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Attributes  []AttributeDefinition `json:"attributes"`
}

// Attribute returns the top-level attribute definition named name, if any.
func (s *Schema) Attribute(name string) (*AttributeDefinition, bool) {
	for i := range s.Attributes {
		if s.Attributes[i].Name == name {
			return &s.Attributes[i], true
		}
	}
	return nil, false
}
