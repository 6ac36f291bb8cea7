package request

import (
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/shopspring/decimal"
)

// ComponentRequest is the body of both create and update component requests
type ComponentRequest struct {
	Category string                  `json:"category" binding:"required,max=100"`
	Brand    string                  `json:"brand" binding:"required,max=100"`
	Models   []ComponentModelRequest `json:"models" binding:"required,min=1,dive"`
}

// ComponentModelRequest represents one model of a component
type ComponentModelRequest struct {
	Model         string          `json:"model" binding:"required,max=255"`
	HSNSAC        string          `json:"hsn_sac" binding:"max=20"`
	Warranty      string          `json:"warranty" binding:"max=100"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
}

// Input converts the request into service input
func (r *ComponentRequest) Input() *service.ComponentInput {
	models := make([]service.ComponentModelInput, len(r.Models))
	for i, m := range r.Models {
		models[i] = service.ComponentModelInput{
			Model:         m.Model,
			HSNSAC:        m.HSNSAC,
			Warranty:      m.Warranty,
			PurchasePrice: m.PurchasePrice,
			SalePrice:     m.SalePrice,
		}
	}
	return &service.ComponentInput{
		Category: r.Category,
		Brand:    r.Brand,
		Models:   models,
	}
}
