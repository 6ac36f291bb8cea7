package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/sangkips/quotedesk-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BusinessDetails identifies the seller printed on a quotation
type BusinessDetails struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	GSTIN   string `json:"gstin"`
	Logo    string `json:"logo"`
}

// Quotation represents a priced proposal addressed to a party.
//
// Revisions are full copies linked back to the quotation they were made
// from (RevisionOf) and to the first quotation of the set (RevisionRootID).
type Quotation struct {
	ID              uuid.UUID                           `gorm:"type:uuid;primary_key" json:"id"`
	PartyID         uuid.UUID                           `gorm:"type:uuid;not null;index" json:"party_id"`
	QuotationNumber string                              `gorm:"size:100;not null;index" json:"quotation_number"`
	Title           string                              `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Date            time.Time                           `gorm:"not null" json:"date"`
	ValidUntil      time.Time                           `gorm:"not null" json:"valid_until"`
	BusinessDetails datatypes.JSONType[BusinessDetails] `json:"business_details"`
	TaxType         enum.TaxType                        `gorm:"not null" json:"tax_type"`
	Subtotal        decimal.Decimal                     `gorm:"type:decimal(15,2);not null" json:"subtotal"`
	TotalAmount     decimal.Decimal                     `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	TotalPurchase   decimal.Decimal                     `gorm:"type:decimal(15,2);not null" json:"total_purchase"`
	TotalTax        decimal.Decimal                     `gorm:"type:decimal(15,2);not null" json:"total_tax"`
	Notes           *string                             `gorm:"type:text" json:"notes,omitempty"`
	TermsConditions *string                             `gorm:"type:text" json:"terms_conditions,omitempty"`
	Status          enum.QuotationStatus                `gorm:"not null" json:"status"`
	RevisionNumber  int                                 `gorm:"not null" json:"revision_number"`
	RevisionOf      *uuid.UUID                          `gorm:"type:uuid;index" json:"revision_of,omitempty"`
	RevisionRootID  *uuid.UUID                          `gorm:"type:uuid;index" json:"revision_root_id,omitempty"`
	CreatedAt       time.Time                           `json:"created_at"`
	UpdatedAt       time.Time                           `json:"updated_at"`
	DeletedAt       gorm.DeletedAt                      `gorm:"index" json:"-"`

	// Derived on read
	Margin           decimal.Decimal `gorm:"-" json:"margin"`
	MarginPercentage decimal.Decimal `gorm:"-" json:"margin_percentage"`

	// Relationships
	Party *Party          `gorm:"foreignKey:PartyID" json:"party,omitempty"`
	Items []QuotationItem `gorm:"foreignKey:QuotationID" json:"items"`
}

// BeforeCreate generates a UUID before creating a new quotation
func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// AfterFind fills in the margin fields
func (q *Quotation) AfterFind(tx *gorm.DB) error {
	q.DeriveMargin()
	return nil
}

// DeriveMargin recomputes Margin and MarginPercentage from the stored totals
func (q *Quotation) DeriveMargin() {
	q.Margin, q.MarginPercentage = pricing.Margin(q.TotalAmount, q.TotalPurchase)
}

// RootID returns the id of the first quotation in this quotation's revision set
func (q *Quotation) RootID() uuid.UUID {
	if q.RevisionRootID != nil {
		return *q.RevisionRootID
	}
	if q.RevisionOf != nil {
		return *q.RevisionOf
	}
	return q.ID
}

// TableName returns the table name for the Quotation model
func (Quotation) TableName() string {
	return "quotations"
}

// QuotationItem represents a line item in a quotation
type QuotationItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	QuotationID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Position      int             `gorm:"not null" json:"-"`
	Category      string          `gorm:"size:100;not null" json:"category"`
	Brand         string          `gorm:"size:100;not null" json:"brand"`
	Model         string          `gorm:"size:255;not null" json:"model"`
	HSNSAC        string          `gorm:"column:hsn_sac;size:20" json:"hsn_sac"`
	Warranty      string          `gorm:"size:100" json:"warranty"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"purchase_price"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"sale_price"`
	TaxPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"tax_percentage"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"tax_amount"`
	Total         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total"`
}

// BeforeCreate generates a UUID before creating a new quotation item
func (qi *QuotationItem) BeforeCreate(tx *gorm.DB) error {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuotationItem model
func (QuotationItem) TableName() string {
	return "quotation_items"
}

// PricingLine converts the item into the input of the pricing package
func (qi QuotationItem) PricingLine() pricing.Line {
	return pricing.Line{
		Quantity:      qi.Quantity,
		SalePrice:     qi.SalePrice,
		PurchasePrice: qi.PurchasePrice,
		TaxRate:       qi.TaxPercentage,
	}
}
