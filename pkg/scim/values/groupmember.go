package values

// GroupMember is a Group's reference to a member resource. References are
// values (ids), not pointers; cross-resource referential-integrity
// enforcement is outside the core (spec.md §9).
type GroupMember struct {
	Value   ResourceID `json:"value"`
	Ref     string     `json:"$ref,omitempty"`
	Type    string     `json:"type,omitempty"` // "User" or "Group"
	Display string     `json:"display,omitempty"`
}
