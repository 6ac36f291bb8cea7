package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// quotationSortColumns lists the columns a listing may be ordered by
var quotationSortColumns = map[string]string{
	"date":             "date",
	"created_at":       "created_at",
	"title":            "title",
	"quotation_number": "quotation_number",
	"total_amount":     "total_amount",
	"status":           "status",
	"revision_number":  "revision_number",
}

type quotationRepository struct {
	db *gorm.DB
}

// NewQuotationRepository creates a new quotation repository
func NewQuotationRepository(db *gorm.DB) domainRepo.QuotationRepository {
	return &quotationRepository{db: db}
}

// withDetails preloads the party and the ordered items
func withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Party", withDeleted).Preload("Items", byPosition)
}

func (r *quotationRepository) Create(ctx context.Context, quotation *entity.Quotation) error {
	for i := range quotation.Items {
		quotation.Items[i].Position = i
	}
	return r.db.WithContext(ctx).Omit("Party").Create(quotation).Error
}

func (r *quotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	var quotation entity.Quotation
	err := r.db.WithContext(ctx).
		Scopes(withDetails).
		First(&quotation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quotation, err
}

func (r *quotationRepository) Update(ctx context.Context, quotation *entity.Quotation, replaceItems bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(quotation).Error; err != nil {
			return err
		}
		if !replaceItems {
			return nil
		}
		if err := tx.Where("quotation_id = ?", quotation.ID).Delete(&entity.QuotationItem{}).Error; err != nil {
			return err
		}
		if len(quotation.Items) == 0 {
			return nil
		}
		for i := range quotation.Items {
			quotation.Items[i].ID = uuid.Nil
			quotation.Items[i].QuotationID = quotation.ID
			quotation.Items[i].Position = i
		}
		return tx.Create(&quotation.Items).Error
	})
}

func (r *quotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Quotation{}, "id = ?", id).Error
}

func (r *quotationRepository) List(ctx context.Context, params *domainRepo.QuotationFilterParams) ([]entity.Quotation, int64, error) {
	var quotations []entity.Quotation
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Quotation{}).
		Scopes(SearchScope(params.Search, "title", "quotation_number"))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.PartyID != nil {
		query = query.Where("party_id = ?", *params.PartyID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "date"
	sortOrder := "DESC"
	if col, ok := quotationSortColumns[params.SortBy]; ok {
		sortBy = col
	}
	if strings.EqualFold(params.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	page := params.Pagination
	if page == nil {
		page = pagination.DefaultPagination()
	}
	page.Validate()
	err := query.Offset(page.Offset()).Limit(page.PerPage).
		Scopes(withDetails).
		Order(sortBy + " " + sortOrder).
		Order("id ASC").
		Find(&quotations).Error

	return quotations, total, err
}

func (r *quotationRepository) ListByParty(ctx context.Context, partyID uuid.UUID) ([]entity.Quotation, error) {
	var quotations []entity.Quotation
	err := r.db.WithContext(ctx).
		Scopes(withDetails).
		Where("party_id = ?", partyID).
		Order("date DESC").
		Find(&quotations).Error
	return quotations, err
}

func (r *quotationRepository) ListRevisionSet(ctx context.Context, rootID uuid.UUID) ([]entity.Quotation, error) {
	var quotations []entity.Quotation
	err := r.db.WithContext(ctx).
		Scopes(withDetails).
		Where("id = ? OR revision_root_id = ? OR revision_of = ?", rootID, rootID, rootID).
		Order("revision_number ASC").
		Order("date ASC").
		Find(&quotations).Error
	return quotations, err
}

func (r *quotationRepository) TitlesLike(ctx context.Context, prefix string) ([]string, error) {
	var titles []string
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Quotation{}).
		Scopes(PrefixScope("title", prefix, true)).
		Pluck("title", &titles).Error
	return titles, err
}

func (r *quotationRepository) NumbersLike(ctx context.Context, prefix string) ([]string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Quotation{}).
		Scopes(PrefixScope("quotation_number", prefix, false)).
		Pluck("quotation_number", &numbers).Error
	return numbers, err
}
