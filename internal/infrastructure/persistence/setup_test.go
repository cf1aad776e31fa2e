package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shopline/backend/internal/domain/cart"
	"github.com/shopline/backend/internal/domain/catalog"
	"github.com/shopline/backend/internal/domain/identity"
	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/review"
)

// newTestDB opens an isolated in-memory sqlite database with the full
// schema migrated. Max one connection, otherwise every connection in
// the pool would see its own empty :memory: database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&catalog.Product{},
		&catalog.Category{},
		&catalog.Brand{},
		&catalog.Banner{},
		&cart.Cart{},
		&cart.CartItem{},
		&order.Order{},
		&order.OrderItem{},
		&order.Payment{},
		&review.Review{},
		&identity.User{},
		&identity.Session{},
		&identity.Address{},
		&identity.PasswordReset{},
	))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
