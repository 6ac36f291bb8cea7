package database

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Components []struct {
		Category string `yaml:"category"`
		Brand    string `yaml:"brand"`
		Models   []struct {
			Model         string  `yaml:"model"`
			HSNSAC        string  `yaml:"hsn_sac"`
			Warranty      string  `yaml:"warranty"`
			PurchasePrice float64 `yaml:"purchase_price"`
			SalePrice     float64 `yaml:"sale_price"`
		} `yaml:"models"`
	} `yaml:"components"`
}

// ParseCatalog decodes a YAML component catalog
func ParseCatalog(data []byte) ([]entity.Component, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	components := make([]entity.Component, 0, len(file.Components))
	for _, c := range file.Components {
		component := entity.Component{Category: c.Category, Brand: c.Brand}
		for i, m := range c.Models {
			component.Models = append(component.Models, entity.ComponentModel{
				Position:      i,
				Model:         m.Model,
				HSNSAC:        m.HSNSAC,
				Warranty:      m.Warranty,
				PurchasePrice: decimal.NewFromFloat(m.PurchasePrice),
				SalePrice:     decimal.NewFromFloat(m.SalePrice),
			})
		}
		components = append(components, component)
	}
	return components, nil
}

// SeedComponents loads the catalog into the components table. Entries whose
// category and brand already exist are left alone, so seeding is repeatable.
// A nil catalog seeds the built-in one.
func SeedComponents(db *gorm.DB, catalog []byte) (int, error) {
	if catalog == nil {
		catalog = defaultCatalog
	}
	components, err := ParseCatalog(catalog)
	if err != nil {
		return 0, err
	}

	log.Println("Seeding component catalog...")
	created := 0
	for i := range components {
		var count int64
		err := db.Model(&entity.Component{}).
			Where("category = ? AND brand = ?", components[i].Category, components[i].Brand).
			Count(&count).Error
		if err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&components[i]).Error; err != nil {
			return created, fmt.Errorf("failed to seed %s %s: %w", components[i].Brand, components[i].Category, err)
		}
		created++
	}

	log.Printf("Component catalog seeded: %d new entries", created)
	return created, nil
}
