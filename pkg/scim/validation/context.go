// Package validation implements the Validator (spec.md §2 L2): given
// (resource_type, JSON, OperationContext), it enforces every RFC 7643 rule
// the Schema Registry can express.
package validation

// OperationContext distinguishes which lifecycle operation a document is
// being validated for (spec.md §4.2).
type OperationContext int

const (
	Create OperationContext = iota
	Update
	Patch
)

func (c OperationContext) String() string {
	switch c {
	case Create:
		return "Create"
	case Update:
		return "Update"
	case Patch:
		return "Patch"
	default:
		return "Unknown"
	}
}
