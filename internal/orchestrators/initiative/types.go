package initiative

import (
	"github.com/KirkDiggler/rpg-initiative/internal/entities"
)

// CombatState is the sequencer state name
type CombatState string

const (
	StateNotStarted CombatState = "not_started"
	StateRunning    CombatState = "running"
)

// CombatantView is a combatant with its statuses resolved against the
// session's loaded catalog
type CombatantView struct {
	*entities.Combatant
	Statuses []entities.ResolvedStatus `json:"statuses"`
}

// Snapshot is a point-in-time copy of one session
type Snapshot struct {
	SessionID        string                `json:"session_id"`
	CampaignID       string                `json:"campaign_id"`
	Combatants       []*CombatantView      `json:"combatants"`
	State            CombatState           `json:"state"`
	Running          bool                  `json:"running"`
	CurrentTurnIndex int                   `json:"current_turn_index"`
	RoundNumber      int                   `json:"round_number"`
	ElapsedSeconds   int64                 `json:"elapsed_seconds"`
	Active           *CombatantView        `json:"active,omitempty"`
	Catalog          []entities.StatusType `json:"catalog"`
	CatalogFallback  bool                  `json:"catalog_fallback"`
	Inspected        *entities.StatusType  `json:"inspected,omitempty"`
	PendingDragID    string                `json:"pending_drag_id,omitempty"`
}

// CombatantDraft is the caller-supplied part of a new combatant
type CombatantDraft struct {
	Name              string                 `json:"name"`
	InitiativeValue   int32                  `json:"initiative_value"`
	CurrentHP         int32                  `json:"current_hp"`
	MaxHP             int32                  `json:"max_hp"`
	ArmorClass        int32                  `json:"armor_class"`
	Notes             string                 `json:"notes,omitempty"`
	CharacterType     entities.CharacterType `json:"character_type"`
	SourceCharacterID string                 `json:"source_character_id,omitempty"`
}

// OpenSessionInput defines the request for opening a tracker session
type OpenSessionInput struct {
	// CampaignID may be empty; operations that need a campaign then fail
	// until SelectCampaign is called
	CampaignID string
}

// OpenSessionOutput defines the response for opening a tracker session
type OpenSessionOutput struct {
	Snapshot *Snapshot
	// LoadErr is the initial load failure, if any. The session stays open
	// with an empty list and the failure is also notified.
	LoadErr error
}

// CloseSessionInput defines the request for closing a session
type CloseSessionInput struct {
	SessionID string
}

// CloseSessionOutput defines the response for closing a session
type CloseSessionOutput struct{}

// GetSessionInput defines the request for reading a session
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput defines the response for reading a session
type GetSessionOutput struct {
	Snapshot *Snapshot
}

// SelectCampaignInput defines the request for switching a session's campaign
type SelectCampaignInput struct {
	SessionID  string
	CampaignID string
}

// SelectCampaignOutput defines the response for switching a session's campaign
type SelectCampaignOutput struct {
	Snapshot *Snapshot
}

// LoadInput defines the request for reloading combatants from storage
type LoadInput struct {
	SessionID string
}

// LoadOutput defines the response for reloading combatants from storage
type LoadOutput struct {
	Snapshot *Snapshot
}

// AddCombatantsInput defines the request for inserting combatants
type AddCombatantsInput struct {
	SessionID string
	Drafts    []CombatantDraft
}

// AddCombatantsOutput defines the response for inserting combatants
type AddCombatantsOutput struct {
	Snapshot *Snapshot
}

// RemoveCombatantInput defines the request for deleting a combatant
type RemoveCombatantInput struct {
	SessionID   string
	CombatantID string
	// Confirmed must be true; the caller owns the confirmation prompt
	Confirmed bool
}

// RemoveCombatantOutput defines the response for deleting a combatant
type RemoveCombatantOutput struct {
	Snapshot *Snapshot
}

// UpdateHPInput defines the request for writing current hit points
type UpdateHPInput struct {
	SessionID   string
	CombatantID string
	CurrentHP   int32
}

// UpdateHPOutput defines the response for writing current hit points
type UpdateHPOutput struct {
	Snapshot *Snapshot
}

// UpdateInitiativeInput defines the request for writing an initiative value
type UpdateInitiativeInput struct {
	SessionID       string
	CombatantID     string
	InitiativeValue int32
}

// UpdateInitiativeOutput defines the response for writing an initiative value
type UpdateInitiativeOutput struct {
	Snapshot *Snapshot
}

// LoadCatalogInput defines the request for loading the status catalog
type LoadCatalogInput struct {
	SessionID string
}

// LoadCatalogOutput defines the response for loading the status catalog
type LoadCatalogOutput struct {
	StatusTypes []entities.StatusType
	Fallback    bool
}

// SearchStatusesInput defines the request for filtering the catalog
type SearchStatusesInput struct {
	SessionID string
	Query     string
}

// SearchStatusesOutput defines the response for filtering the catalog
type SearchStatusesOutput struct {
	StatusTypes []entities.StatusType
}

// AttachStatusInput defines the request for attaching a status
type AttachStatusInput struct {
	SessionID    string
	CombatantID  string
	StatusTypeID string
	Duration     *int32
	Notes        string
}

// AttachStatusOutput defines the response for attaching a status
type AttachStatusOutput struct {
	Annotation *entities.StatusAnnotation
	Snapshot   *Snapshot
}

// DetachStatusInput defines the request for removing a status
type DetachStatusInput struct {
	SessionID    string
	AnnotationID string
}

// DetachStatusOutput defines the response for removing a status
type DetachStatusOutput struct {
	Snapshot *Snapshot
}

// InspectStatusInput defines the request for marking a status as viewed.
// An empty StatusTypeID clears the selection.
type InspectStatusInput struct {
	SessionID    string
	StatusTypeID string
}

// InspectStatusOutput defines the response for marking a status as viewed
type InspectStatusOutput struct {
	Inspected *entities.StatusType
}

// StartCombatInput defines the request for starting combat
type StartCombatInput struct {
	SessionID string
}

// StartCombatOutput defines the response for starting combat
type StartCombatOutput struct {
	Snapshot *Snapshot
}

// AdvanceTurnInput defines the request for advancing the turn
type AdvanceTurnInput struct {
	SessionID string
}

// AdvanceTurnOutput defines the response for advancing the turn
type AdvanceTurnOutput struct {
	Snapshot *Snapshot
}

// ResetCombatInput defines the request for resetting combat
type ResetCombatInput struct {
	SessionID string
}

// ResetCombatOutput defines the response for resetting combat
type ResetCombatOutput struct {
	Snapshot *Snapshot
}

// BeginDragInput defines the request for picking up a combatant
type BeginDragInput struct {
	SessionID   string
	CombatantID string
}

// BeginDragOutput defines the response for picking up a combatant
type BeginDragOutput struct{}

// DropOnInput defines the request for dropping the dragged combatant
type DropOnInput struct {
	SessionID string
	TargetID  string
}

// DropOnOutput defines the response for dropping the dragged combatant
type DropOnOutput struct {
	// Moved is false when the drop was a no-op
	Moved    bool
	Snapshot *Snapshot
}

// ListAvailableInput defines the request for listing roster entries
type ListAvailableInput struct {
	SessionID string
	Kind      entities.CharacterType
}

// ListAvailableOutput defines the response for listing roster entries
type ListAvailableOutput struct {
	Entries []entities.RosterEntry
}

// InstantiateInput defines the request for creating combatants from a
// roster entry
type InstantiateInput struct {
	SessionID string
	Kind      entities.CharacterType
	EntryID   string
	Quantity  int

	// RollInitiative gives each copy d20 + InitiativeBonus; otherwise every
	// copy gets InitiativeValue
	RollInitiative  bool
	InitiativeBonus int32
	InitiativeValue int32
}

// InstantiateOutput defines the response for creating combatants from a
// roster entry
type InstantiateOutput struct {
	Created  []*entities.Combatant
	Snapshot *Snapshot
}
