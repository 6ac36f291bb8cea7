package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultHSNSAC is the tax classification applied to catalog models and
// quotation items that do not carry one.
const DefaultHSNSAC = "84733099"

// Component is a catalog entry grouping the models of one brand within a
// hardware category, e.g. Intel processors.
type Component struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Category  string           `gorm:"size:100;not null;index" json:"category"`
	Brand     string           `gorm:"size:100;not null;index" json:"brand"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
	Models    []ComponentModel `gorm:"foreignKey:ComponentID" json:"models"`
}

// BeforeCreate generates a UUID before creating a new component
func (c *Component) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Component model
func (Component) TableName() string {
	return "components"
}

// ComponentModel is one purchasable model of a component
type ComponentModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ComponentID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Position      int             `gorm:"not null" json:"-"`
	Model         string          `gorm:"size:255;not null" json:"model"`
	HSNSAC        string          `gorm:"column:hsn_sac;size:20" json:"hsn_sac"`
	Warranty      string          `gorm:"size:100" json:"warranty"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"purchase_price"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"sale_price"`
}

// BeforeCreate generates a UUID and fills the default HSN/SAC code
func (m *ComponentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.HSNSAC == "" {
		m.HSNSAC = DefaultHSNSAC
	}
	return nil
}

// TableName returns the table name for the ComponentModel model
func (ComponentModel) TableName() string {
	return "component_models"
}
