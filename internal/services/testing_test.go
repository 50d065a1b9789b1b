// internal/services/testing_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eshopdev/eshop-backend/internal/config"
	"github.com/eshopdev/eshop-backend/internal/database"
	"github.com/eshopdev/eshop-backend/internal/models"
	"github.com/eshopdev/eshop-backend/internal/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	fixtureSeq++
	dsn := fmt.Sprintf("file:test%d?mode=memory&cache=shared&_fk=1", fixtureSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// An in-memory sqlite database lives only while a connection is open.
	// One open connection also sidesteps table locking between the suite's
	// goroutine and gorm's pool.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret-key",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 168,
		},
		Payment: config.PaymentConfig{
			Currency: "usd",
		},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	return cfg
}

var fixtureSeq int

func createTestUser(t *testing.T, db *gorm.DB, role models.Role, status models.Status) *models.User {
	t.Helper()

	fixtureSeq++
	user := &models.User{
		FirstName: fmt.Sprintf("User%d", fixtureSeq),
		Email:     fmt.Sprintf("user%d@example.com", fixtureSeq),
		Phone:     fmt.Sprintf("+1555%07d", fixtureSeq),
		Role:      role,
		Status:    status,
	}
	require.NoError(t, user.SetPassword("Password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestStore(t *testing.T, db *gorm.DB) *models.Store {
	t.Helper()

	fixtureSeq++
	store := &models.Store{
		Name:        fmt.Sprintf("Store %d", fixtureSeq),
		Address:     fmt.Sprintf("%d Main Street", fixtureSeq),
		Email:       fmt.Sprintf("store%d@example.com", fixtureSeq),
		OpeningTime: "09:00",
		ClosingTime: "21:00",
	}
	require.NoError(t, db.Create(store).Error)
	return store
}

func createTestSupplier(t *testing.T, db *gorm.DB) *models.Supplier {
	t.Helper()

	fixtureSeq++
	supplier := &models.Supplier{
		Name:  fmt.Sprintf("Supplier %d", fixtureSeq),
		Phone: fmt.Sprintf("+1666%07d", fixtureSeq),
		Email: fmt.Sprintf("supplier%d@example.com", fixtureSeq),
	}
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func createTestProduct(t *testing.T, db *gorm.DB, price float64) *models.Product {
	t.Helper()

	fixtureSeq++
	product := &models.Product{
		Name:  fmt.Sprintf("Product %d", fixtureSeq),
		Price: price,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	fixtureSeq++
	category := &models.Category{
		Name: fmt.Sprintf("Category %d", fixtureSeq),
	}
	require.NoError(t, db.Create(category).Error)
	return category
}
