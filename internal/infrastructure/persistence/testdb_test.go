package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/catalog"
	"github.com/moldshop/erp/internal/domain/partner"
	"github.com/moldshop/erp/internal/domain/production"
	"github.com/moldshop/erp/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a migrated in-memory SQLite database. A single connection
// keeps every statement on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, sku string, qty int64, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductDetails{
		Name:      "Product " + sku,
		SKU:       sku,
		Category:  "caps",
		UnitPrice: decimal.RequireFromString(price),
	}, qty)
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), p))
	return p
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(name, "", partner.Contact{})
	require.NoError(t, err)
	require.NoError(t, NewGormCustomerRepository(db).Save(context.Background(), c))
	return c
}

func seedMold(t *testing.T, db *gorm.DB, code string, productID *uuid.UUID) *production.Mold {
	t.Helper()
	m, err := production.NewMold(code, production.MoldDetails{Name: "Mold " + code, ProductID: productID, CavityCount: 4, MaintenanceInterval: 100})
	require.NoError(t, err)
	require.NoError(t, NewGormMoldRepository(db).Save(context.Background(), m))
	return m
}
