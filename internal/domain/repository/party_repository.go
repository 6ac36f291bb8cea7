package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
)

// PartyRepository defines the interface for party data operations
type PartyRepository interface {
	Create(ctx context.Context, party *entity.Party) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Party, error)
	GetByCode(ctx context.Context, code string) (*entity.Party, error)
	Update(ctx context.Context, party *entity.Party) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Party, int64, error)
	// Codes returns every assigned party code that starts with prefix,
	// including codes of deleted parties.
	Codes(ctx context.Context, prefix string) ([]string, error)
}
