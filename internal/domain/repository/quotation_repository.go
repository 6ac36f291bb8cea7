package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
)

// QuotationRepository defines the interface for quotation data operations
type QuotationRepository interface {
	// Create stores the quotation together with its items
	Create(ctx context.Context, quotation *entity.Quotation) error
	// GetByID returns the quotation with its party and items, or nil
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error)
	// Update saves the quotation columns. When replaceItems is set the
	// stored items are swapped for quotation.Items in the same transaction.
	Update(ctx context.Context, quotation *entity.Quotation, replaceItems bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *QuotationFilterParams) ([]entity.Quotation, int64, error)
	ListByParty(ctx context.Context, partyID uuid.UUID) ([]entity.Quotation, error)
	// ListRevisionSet returns the root and every quotation whose revision
	// root is rootID, ordered by revision number then date.
	ListRevisionSet(ctx context.Context, rootID uuid.UUID) ([]entity.Quotation, error)
	// TitlesLike returns every title, deleted quotations included, that
	// starts with prefix ignoring case.
	TitlesLike(ctx context.Context, prefix string) ([]string, error)
	// NumbersLike returns every quotation number, deleted quotations
	// included, that starts with prefix.
	NumbersLike(ctx context.Context, prefix string) ([]string, error)
}

// QuotationFilterParams contains filtering parameters for quotation queries
type QuotationFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuotationStatus
	PartyID    *uuid.UUID
	SortBy     string
	SortOrder  string
}
