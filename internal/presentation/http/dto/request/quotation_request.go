package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// QuotationItemRequest represents a line item in the request
type QuotationItemRequest struct {
	Category      string           `json:"category" binding:"required,max=100"`
	Brand         string           `json:"brand" binding:"required,max=100"`
	Model         string           `json:"model" binding:"required,max=255"`
	HSNSAC        string           `json:"hsn_sac" binding:"max=20"`
	Warranty      string           `json:"warranty" binding:"max=100"`
	Quantity      int              `json:"quantity" binding:"required,min=1"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	SalePrice     decimal.Decimal  `json:"sale_price"`
	TaxPercentage *decimal.Decimal `json:"tax_percentage"`
}

// CreateQuotationRequest represents the create quotation request body
type CreateQuotationRequest struct {
	PartyID         *uuid.UUID              `json:"party_id" binding:"required"`
	Title           string                  `json:"title" binding:"max=255"`
	Date            *Date                   `json:"date"`
	ValidUntil      *Date                   `json:"valid_until"`
	BusinessDetails *entity.BusinessDetails `json:"business_details"`
	TaxType         *enum.TaxType           `json:"tax_type"`
	Notes           *string                 `json:"notes"`
	TermsConditions *string                 `json:"terms_conditions"`
	Status          *enum.QuotationStatus   `json:"status"`
	Items           []QuotationItemRequest  `json:"items" binding:"required,min=1,dive"`
}

// UpdateQuotationRequest represents the update quotation request body.
// Omitted fields are left unchanged; omitting items keeps the stored items
// and totals.
type UpdateQuotationRequest struct {
	PartyID         *uuid.UUID              `json:"party_id"`
	Title           *string                 `json:"title" binding:"omitempty,max=255"`
	Date            *Date                   `json:"date"`
	ValidUntil      *Date                   `json:"valid_until"`
	BusinessDetails *entity.BusinessDetails `json:"business_details"`
	TaxType         *enum.TaxType           `json:"tax_type"`
	Notes           *string                 `json:"notes"`
	TermsConditions *string                 `json:"terms_conditions"`
	Status          *enum.QuotationStatus   `json:"status"`
	Items           []QuotationItemRequest  `json:"items" binding:"omitempty,dive"`
}

// RevisionRequest carries the optional overrides of a new revision
type RevisionRequest struct {
	Title *string `json:"title" binding:"omitempty,max=255"`
	Notes *string `json:"notes"`
}

func itemInputs(items []QuotationItemRequest) []service.QuotationItemInput {
	if items == nil {
		return nil
	}
	inputs := make([]service.QuotationItemInput, len(items))
	for i, item := range items {
		inputs[i] = service.QuotationItemInput{
			Category:      item.Category,
			Brand:         item.Brand,
			Model:         item.Model,
			HSNSAC:        item.HSNSAC,
			Warranty:      item.Warranty,
			Quantity:      item.Quantity,
			PurchasePrice: item.PurchasePrice,
			SalePrice:     item.SalePrice,
			TaxPercentage: item.TaxPercentage,
		}
	}
	return inputs
}

// Input converts the request into service input
func (r *CreateQuotationRequest) Input() *service.CreateQuotationInput {
	input := &service.CreateQuotationInput{
		Title:           r.Title,
		Date:            r.Date.TimePtr(),
		ValidUntil:      r.ValidUntil.TimePtr(),
		BusinessDetails: r.BusinessDetails,
		TaxType:         r.TaxType,
		Notes:           r.Notes,
		TermsConditions: r.TermsConditions,
		Status:          r.Status,
		Items:           itemInputs(r.Items),
	}
	if r.PartyID != nil {
		input.PartyID = *r.PartyID
	}
	return input
}

// Input converts the request into service input for quotation id
func (r *UpdateQuotationRequest) Input(id uuid.UUID) *service.UpdateQuotationInput {
	return &service.UpdateQuotationInput{
		ID:              id,
		PartyID:         r.PartyID,
		Title:           r.Title,
		Date:            r.Date.TimePtr(),
		ValidUntil:      r.ValidUntil.TimePtr(),
		BusinessDetails: r.BusinessDetails,
		TaxType:         r.TaxType,
		Notes:           r.Notes,
		TermsConditions: r.TermsConditions,
		Status:          r.Status,
		Items:           itemInputs(r.Items),
	}
}

// Input converts the request into service input
func (r *RevisionRequest) Input() *service.RevisionInput {
	return &service.RevisionInput{Title: r.Title, Notes: r.Notes}
}
