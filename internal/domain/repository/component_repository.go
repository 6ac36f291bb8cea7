package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
)

// ComponentRepository defines the interface for catalog component operations
type ComponentRepository interface {
	Create(ctx context.Context, component *entity.Component) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Component, error)
	// Update saves the component and replaces its models
	Update(ctx context.Context, component *entity.Component) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ComponentFilterParams) ([]entity.Component, error)
	Exists(ctx context.Context, category, brand string) (bool, error)
}

// ComponentFilterParams narrows a component listing. Category and Brand
// match exactly ignoring case; Search matches category, brand or any model
// name as a substring.
type ComponentFilterParams struct {
	Category string
	Brand    string
	Search   string
}
