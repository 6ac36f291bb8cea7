package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ComponentService handles catalog component operations
type ComponentService struct {
	componentRepo repository.ComponentRepository
}

// NewComponentService creates a new component service
func NewComponentService(componentRepo repository.ComponentRepository) *ComponentService {
	return &ComponentService{componentRepo: componentRepo}
}

// ComponentModelInput describes one model of a component
type ComponentModelInput struct {
	Model         string
	HSNSAC        string
	Warranty      string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
}

// ComponentInput is used both to create and to replace a component
type ComponentInput struct {
	Category string
	Brand    string
	Models   []ComponentModelInput
}

// CreateComponent adds a component to the catalog
func (s *ComponentService) CreateComponent(ctx context.Context, input *ComponentInput) (*entity.Component, error) {
	component := &entity.Component{}
	if err := applyComponentInput(component, input); err != nil {
		return nil, err
	}

	if err := s.componentRepo.Create(ctx, component); err != nil {
		return nil, apperror.FromStore("Component", err)
	}

	return component, nil
}

// GetComponent retrieves a component by ID
func (s *ComponentService) GetComponent(ctx context.Context, id uuid.UUID) (*entity.Component, error) {
	component, err := s.componentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.FromStore("Component", err)
	}
	if component == nil {
		return nil, apperror.NewNotFoundError("Component")
	}
	return component, nil
}

// ListComponents lists the catalog, optionally filtered
func (s *ComponentService) ListComponents(ctx context.Context, params *repository.ComponentFilterParams) ([]entity.Component, error) {
	components, err := s.componentRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.FromStore("Component", err)
	}
	return components, nil
}

// ComponentsByCategory lists the components of one category, ignoring case
func (s *ComponentService) ComponentsByCategory(ctx context.Context, category string) ([]entity.Component, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperror.NewFieldError("category", "Category is required")
	}
	return s.ListComponents(ctx, &repository.ComponentFilterParams{Category: category})
}

// ComponentsByBrand lists the components of one brand, ignoring case
func (s *ComponentService) ComponentsByBrand(ctx context.Context, brand string) ([]entity.Component, error) {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return nil, apperror.NewFieldError("brand", "Brand is required")
	}
	return s.ListComponents(ctx, &repository.ComponentFilterParams{Brand: brand})
}

// SearchComponents matches query against category, brand and model names
func (s *ComponentService) SearchComponents(ctx context.Context, query string) ([]entity.Component, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.NewFieldError("query", "Search query is required")
	}
	return s.ListComponents(ctx, &repository.ComponentFilterParams{Search: query})
}

// UpdateComponent replaces a component's category, brand and models
func (s *ComponentService) UpdateComponent(ctx context.Context, id uuid.UUID, input *ComponentInput) (*entity.Component, error) {
	component, err := s.GetComponent(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyComponentInput(component, input); err != nil {
		return nil, err
	}

	if err := s.componentRepo.Update(ctx, component); err != nil {
		return nil, apperror.FromStore("Component", err)
	}

	return s.GetComponent(ctx, id)
}

// DeleteComponent removes a component from the catalog
func (s *ComponentService) DeleteComponent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetComponent(ctx, id); err != nil {
		return err
	}
	return apperror.FromStore("Component", s.componentRepo.Delete(ctx, id))
}

func applyComponentInput(component *entity.Component, input *ComponentInput) error {
	var fieldErrors []apperror.FieldError

	category := strings.TrimSpace(input.Category)
	brand := strings.TrimSpace(input.Brand)
	if category == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "category", Message: "Category is required"})
	}
	if brand == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "brand", Message: "Brand is required"})
	}
	if len(input.Models) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "models", Message: "At least one model is required"})
	}

	models := make([]entity.ComponentModel, 0, len(input.Models))
	for i, m := range input.Models {
		field := fmt.Sprintf("models[%d]", i)
		name := strings.TrimSpace(m.Model)
		if name == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".model", Message: "Model is required"})
		}
		if m.PurchasePrice.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".purchase_price", Message: "Purchase price cannot be negative"})
		}
		if m.SalePrice.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".sale_price", Message: "Sale price cannot be negative"})
		}
		models = append(models, entity.ComponentModel{
			Model:         name,
			HSNSAC:        strings.TrimSpace(m.HSNSAC),
			Warranty:      strings.TrimSpace(m.Warranty),
			PurchasePrice: m.PurchasePrice,
			SalePrice:     m.SalePrice,
		})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}

	component.Category = category
	component.Brand = brand
	component.Models = models
	return nil
}
