package entities

// Placeholder values shown for an annotation whose status type is not in the
// loaded catalog
const (
	UnknownStatusName        = "Unknown"
	UnknownStatusColor       = "gray"
	UnknownStatusDescription = "Status not found"
)

// StatusType is a catalog definition of a status effect
type StatusType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// StatusAnnotation is one status type attached to one combatant
type StatusAnnotation struct {
	ID           string `json:"id"`
	CombatantID  string `json:"combatant_id"`
	StatusTypeID string `json:"status_type_id"`
	Duration     *int32 `json:"duration,omitempty"` // remaining rounds, informational
	Notes        string `json:"notes,omitempty"`
}

// ResolvedStatus is an annotation joined with its catalog entry
type ResolvedStatus struct {
	*StatusAnnotation
	Type StatusType `json:"type"`
}

// UnknownStatusType is what an unresolvable annotation renders as
func UnknownStatusType(id string) StatusType {
	return StatusType{
		ID:          id,
		Name:        UnknownStatusName,
		Color:       UnknownStatusColor,
		Description: UnknownStatusDescription,
	}
}
