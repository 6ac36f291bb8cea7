package database

import (
	"strings"
	"testing"

	"github.com/sangkips/quotedesk-api/internal/config"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDBConfig(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return &config.DatabaseConfig{Driver: "sqlite", SQLitePath: "file:" + name + "?mode=memory&cache=shared"}
}

func TestSeedComponentsIsRepeatable(t *testing.T) {
	db, err := NewDB(testDBConfig(t))
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	created, err := SeedComponents(db, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, created)

	created, err = SeedComponents(db, nil)
	require.NoError(t, err)
	assert.Zero(t, created)

	var intel entity.Component
	require.NoError(t, db.Preload("Models", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).First(&intel, "brand = ?", "Intel").Error)
	require.Len(t, intel.Models, 3)
	assert.Equal(t, "Processor", intel.Category)
	assert.Equal(t, "84733099", intel.Models[0].HSNSAC)
	assert.Equal(t, "18500.00", intel.Models[0].SalePrice.StringFixed(2))
}

func TestParseCatalogDefaultsHSN(t *testing.T) {
	components, err := ParseCatalog([]byte(`
components:
  - category: Cooler
    brand: Noctua
    models:
      - {model: NH-D15, warranty: 6 Years, purchase_price: 8000, sale_price: 8999.5}
`))
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, "8999.50", components[0].Models[0].SalePrice.StringFixed(2))
	assert.Empty(t, components[0].Models[0].HSNSAC)

	_, err = ParseCatalog([]byte("components: [oops"))
	assert.Error(t, err)
}

func TestNewDBRejectsUnknownDriver(t *testing.T) {
	_, err := NewDB(&config.DatabaseConfig{Driver: "mongodb"})
	assert.EqualError(t, err, `unsupported database driver "mongodb"`)
}
