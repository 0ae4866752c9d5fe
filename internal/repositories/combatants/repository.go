// Package combatants persists encounter rows and their status annotations
package combatants

//go:generate mockgen -destination=mock/mock_repository.go -package=combatantsmock github.com/KirkDiggler/rpg-initiative/internal/repositories/combatants Repository,StatusRepository

import (
	"context"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
)

// Repository stores combatant rows scoped to a campaign
type Repository interface {
	// ListByCampaign returns the campaign's combatants in display order
	// (initiative descending, position ascending). An unknown campaign yields
	// an empty list.
	// Returns errors.InvalidArgument for an empty campaign ID
	// Returns errors.Internal for storage failures
	ListByCampaign(ctx context.Context, input ListByCampaignInput) (*ListByCampaignOutput, error)

	// Create inserts one or more combatants atomically
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if any ID is taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// UpdateHP overwrites current hit points without clamping
	// Returns errors.NotFound if the combatant doesn't exist
	UpdateHP(ctx context.Context, input UpdateHPInput) (*UpdateHPOutput, error)

	// UpdateInitiative overwrites the initiative value
	// Returns errors.NotFound if the combatant doesn't exist
	UpdateInitiative(ctx context.Context, input UpdateInitiativeInput) (*UpdateInitiativeOutput, error)

	// UpdatePosition overwrites the manual-order position
	// Returns errors.NotFound if the combatant doesn't exist
	UpdatePosition(ctx context.Context, input UpdatePositionInput) (*UpdatePositionOutput, error)

	// Delete removes a combatant and every status annotation attached to it
	// Returns errors.NotFound if the combatant doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// StatusRepository stores status annotations keyed by combatant
type StatusRepository interface {
	// ListByCombatantIDs fetches annotations for many combatants in one
	// round trip, in attach order per combatant
	ListByCombatantIDs(ctx context.Context, input ListByCombatantIDsInput) (*ListByCombatantIDsOutput, error)

	// Create attaches an annotation to an existing combatant
	// Returns errors.NotFound if the combatant doesn't exist
	Create(ctx context.Context, input CreateStatusInput) (*CreateStatusOutput, error)

	// Delete removes one annotation
	// Returns errors.NotFound if the annotation doesn't exist
	Delete(ctx context.Context, input DeleteStatusInput) (*DeleteStatusOutput, error)
}

// ListByCampaignInput defines the input for listing a campaign's combatants
type ListByCampaignInput struct {
	CampaignID string
}

// ListByCampaignOutput defines the output for listing a campaign's combatants
type ListByCampaignOutput struct {
	Combatants []*entities.Combatant
}

// CreateInput defines the input for inserting combatants
type CreateInput struct {
	Combatants []*entities.Combatant
}

// CreateOutput defines the output for inserting combatants
type CreateOutput struct {
	Combatants []*entities.Combatant
}

// UpdateHPInput defines the input for writing current hit points
type UpdateHPInput struct {
	ID        string
	CurrentHP int32
}

// UpdateHPOutput defines the output for writing current hit points
type UpdateHPOutput struct {
	Combatant *entities.Combatant
}

// UpdateInitiativeInput defines the input for writing an initiative value
type UpdateInitiativeInput struct {
	ID              string
	InitiativeValue int32
}

// UpdateInitiativeOutput defines the output for writing an initiative value
type UpdateInitiativeOutput struct {
	Combatant *entities.Combatant
}

// UpdatePositionInput defines the input for writing a position
type UpdatePositionInput struct {
	ID       string
	Position int32
}

// UpdatePositionOutput defines the output for writing a position
type UpdatePositionOutput struct{}

// DeleteInput defines the input for deleting a combatant
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a combatant
type DeleteOutput struct {
	StatusesDeleted int
}

// ListByCombatantIDsInput defines the input for the batched annotation lookup
type ListByCombatantIDsInput struct {
	CombatantIDs []string
}

// ListByCombatantIDsOutput defines the output for the batched annotation lookup
type ListByCombatantIDsOutput struct {
	// Annotations maps combatant ID to its annotations; combatants without
	// annotations are absent
	Annotations map[string][]*entities.StatusAnnotation
}

// CreateStatusInput defines the input for attaching an annotation
type CreateStatusInput struct {
	Annotation *entities.StatusAnnotation
}

// CreateStatusOutput defines the output for attaching an annotation
type CreateStatusOutput struct {
	Annotation *entities.StatusAnnotation
}

// DeleteStatusInput defines the input for removing an annotation
type DeleteStatusInput struct {
	ID string
}

// DeleteStatusOutput defines the output for removing an annotation
type DeleteStatusOutput struct {
	CombatantID string
}
