// Package catalog reads and writes the status type catalog
package catalog

//go:generate mockgen -destination=mock/mock_repository.go -package=catalogmock github.com/KirkDiggler/rpg-initiative/internal/repositories/catalog Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
)

// Repository is the status type catalog store
type Repository interface {
	// List returns every status type ordered by name
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Create adds a status type
	// Returns errors.AlreadyExists if the ID is taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)
}

// ListInput defines the input for listing status types
type ListInput struct{}

// ListOutput defines the output for listing status types
type ListOutput struct {
	StatusTypes []entities.StatusType
}

// CreateInput defines the input for adding a status type
type CreateInput struct {
	StatusType *entities.StatusType
}

// CreateOutput defines the output for adding a status type
type CreateOutput struct {
	StatusType *entities.StatusType
}
