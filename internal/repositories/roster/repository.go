// Package roster reads the campaign's player characters and NPCs
package roster

//go:generate mockgen -destination=mock/mock_repository.go -package=rostermock github.com/KirkDiggler/rpg-initiative/internal/repositories/roster Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
)

// Repository is the campaign roster store. Players and NPCs live in separate
// tables with different column names and are returned in their own shapes.
type Repository interface {
	// ListPlayers returns a campaign's players ordered by character name
	ListPlayers(ctx context.Context, input ListPlayersInput) (*ListPlayersOutput, error)

	// ListNPCs returns a campaign's NPCs ordered by name
	ListNPCs(ctx context.Context, input ListNPCsInput) (*ListNPCsOutput, error)

	// GetPlayer returns errors.NotFound if the player doesn't exist
	GetPlayer(ctx context.Context, input GetPlayerInput) (*GetPlayerOutput, error)

	// GetNPC returns errors.NotFound if the NPC doesn't exist
	GetNPC(ctx context.Context, input GetNPCInput) (*GetNPCOutput, error)

	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*CreatePlayerOutput, error)
	CreateNPC(ctx context.Context, input CreateNPCInput) (*CreateNPCOutput, error)
}

// ListPlayersInput defines the input for listing players
type ListPlayersInput struct {
	CampaignID string
}

// ListPlayersOutput defines the output for listing players
type ListPlayersOutput struct {
	Players []*entities.Player
}

// ListNPCsInput defines the input for listing NPCs
type ListNPCsInput struct {
	CampaignID string
}

// ListNPCsOutput defines the output for listing NPCs
type ListNPCsOutput struct {
	NPCs []*entities.NPC
}

// GetPlayerInput defines the input for fetching one player
type GetPlayerInput struct {
	ID string
}

// GetPlayerOutput defines the output for fetching one player
type GetPlayerOutput struct {
	Player *entities.Player
}

// GetNPCInput defines the input for fetching one NPC
type GetNPCInput struct {
	ID string
}

// GetNPCOutput defines the output for fetching one NPC
type GetNPCOutput struct {
	NPC *entities.NPC
}

// CreatePlayerInput defines the input for adding a player
type CreatePlayerInput struct {
	Player *entities.Player
}

// CreatePlayerOutput defines the output for adding a player
type CreatePlayerOutput struct {
	Player *entities.Player
}

// CreateNPCInput defines the input for adding an NPC
type CreateNPCInput struct {
	NPC *entities.NPC
}

// CreateNPCOutput defines the output for adding an NPC
type CreateNPCOutput struct {
	NPC *entities.NPC
}
