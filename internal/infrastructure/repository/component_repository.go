package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type componentRepository struct {
	db *gorm.DB
}

// NewComponentRepository creates a new component repository
func NewComponentRepository(db *gorm.DB) domainRepo.ComponentRepository {
	return &componentRepository{db: db}
}

func (r *componentRepository) Create(ctx context.Context, component *entity.Component) error {
	for i := range component.Models {
		component.Models[i].Position = i
	}
	return r.db.WithContext(ctx).Create(component).Error
}

func (r *componentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Component, error) {
	var component entity.Component
	err := r.db.WithContext(ctx).
		Preload("Models", byPosition).
		First(&component, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &component, err
}

func (r *componentRepository) Update(ctx context.Context, component *entity.Component) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(component).Error; err != nil {
			return err
		}
		if err := tx.Where("component_id = ?", component.ID).Delete(&entity.ComponentModel{}).Error; err != nil {
			return err
		}
		if len(component.Models) == 0 {
			return nil
		}
		for i := range component.Models {
			component.Models[i].ID = uuid.Nil
			component.Models[i].ComponentID = component.ID
			component.Models[i].Position = i
		}
		return tx.Create(&component.Models).Error
	})
}

func (r *componentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Component{}, "id = ?", id).Error
}

func (r *componentRepository) List(ctx context.Context, params *domainRepo.ComponentFilterParams) ([]entity.Component, error) {
	var components []entity.Component

	query := r.db.WithContext(ctx).Model(&entity.Component{})

	if params != nil {
		if params.Category != "" {
			query = query.Where("LOWER(category) = ?", strings.ToLower(params.Category))
		}
		if params.Brand != "" {
			query = query.Where("LOWER(brand) = ?", strings.ToLower(params.Brand))
		}
		if term := strings.TrimSpace(params.Search); term != "" {
			models := r.db.Model(&entity.ComponentModel{}).
				Select("component_id").
				Scopes(SearchScope(term, "model"))
			pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
			query = query.Where(
				`(LOWER(category) LIKE ? ESCAPE '\' OR LOWER(brand) LIKE ? ESCAPE '\' OR id IN (?))`,
				pattern, pattern, models,
			)
		}
	}

	err := query.
		Preload("Models", byPosition).
		Order("category ASC, brand ASC").
		Find(&components).Error
	return components, err
}

func (r *componentRepository) Exists(ctx context.Context, category, brand string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Component{}).
		Where("LOWER(category) = ? AND LOWER(brand) = ?", strings.ToLower(category), strings.ToLower(brand)).
		Count(&count).Error
	return count > 0, err
}
