package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/model"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/repository"
)

// newTestRepos opens an in-memory sqlite database with the full schema.
// The pool is pinned to one connection so the in-memory database survives
// for the whole test.
func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.ParkingLot{},
		&model.ParkingSpot{},
		&model.Reservation{},
	))

	return repository.New(db)
}

func createTestUser(t *testing.T, repos *repository.Repositories, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         model.RoleUser,
	}
	require.NoError(t, repos.Users.Create(context.Background(), user))
	return user
}

func createTestLot(t *testing.T, svc LotService, name string, price int64, maxSpots int) *model.ParkingLot {
	t.Helper()
	lot, err := svc.CreateLot(context.Background(), LotInput{
		Name:         name,
		PricePerHour: decimal.NewFromInt(price),
		Address:      "42 Test Street",
		Pincode:      "560001",
		MaxSpots:     maxSpots,
	})
	require.NoError(t, err)
	return lot
}

// fixedClock returns a clock function frozen at ts.
func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
