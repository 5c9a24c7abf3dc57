package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Shivansh-Dutt/vehicle-parking-app/internal/errors"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/model"
)

func TestBook_TakesFirstAvailableSpot(t *testing.T) {
	repos := newTestRepos(t)
	lotSvc := NewLotService(repos, nil)
	bookSvc := NewBookingService(repos, nil)
	ctx := context.Background()

	lot := createTestLot(t, lotSvc, "Central Plaza", 20, 2)
	user := createTestUser(t, repos, "alice@example.com")

	reservation, err := bookSvc.Book(ctx, user.ID, lot.ID, "KA01AB1234")
	require.NoError(t, err)
	assert.True(t, reservation.Open())
	assert.Equal(t, user.ID, reservation.UserID)
	assert.Equal(t, "KA01AB1234", reservation.VehicleNo)

	spot, err := repos.Spots.FindByID(ctx, reservation.SpotID)
	require.NoError(t, err)
	assert.Equal(t, model.SpotOccupied, spot.Status)
	assert.Equal(t, lot.ID, spot.LotID)
}

func TestBook_FullLotRejected(t *testing.T) {
	repos := newTestRepos(t)
	lotSvc := NewLotService(repos, nil)
	bookSvc := NewBookingService(repos, nil)
	ctx := context.Background()

	lot := createTestLot(t, lotSvc, "Central Plaza", 20, 1)
	user := createTestUser(t, repos, "alice@example.com")

	_, err := bookSvc.Book(ctx, user.ID, lot.ID, "KA01AB1234")
	require.NoError(t, err)

	_, err = bookSvc.Book(ctx, user.ID, lot.ID, "KA02CD5678")
	assert.ErrorIs(t, err, apperrors.ErrNoAvailableSpot)
}

func TestBook_UnknownLot(t *testing.T) {
	repos := newTestRepos(t)
	bookSvc := NewBookingService(repos, nil)
	user := createTestUser(t, repos, "alice@example.com")

	_, err := bookSvc.Book(context.Background(), user.ID, 999, "KA01AB1234")
	assert.ErrorIs(t, err, apperrors.ErrLotNotFound)
}

func TestRelease_CostWithBillingFloor(t *testing.T) {
	repos := newTestRepos(t)
	lotSvc := NewLotService(repos, nil)
	bookSvc := NewBookingService(repos, nil)
	ctx := context.Background()

	lot := createTestLot(t, lotSvc, "Central Plaza", 20, 1)
	user := createTestUser(t, repos, "alice@example.com")

	entry := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := bookSvc.(*bookingService)
	svc.now = fixedClock(entry)

	reservation, err := bookSvc.Book(ctx, user.ID, lot.ID, "KA01AB1234")
	require.NoError(t, err)

	// 20 minutes is under the half-hour floor: 0.5 x 20 = 10.00
	svc.now = fixedClock(entry.Add(20 * time.Minute))
	released, err := bookSvc.Release(ctx, user.ID, reservation.ID)
	require.NoError(t, err)
	require.NotNil(t, released.ParkingCost)
	assert.Equal(t, "10.00", released.ParkingCost.StringFixed(2))
	require.NotNil(t, released.LeavingTimestamp)
	assert.True(t, released.LeavingTimestamp.Equal(entry.Add(20*time.Minute)))

	spot, err := repos.Spots.FindByID(ctx, released.SpotID)
	require.NoError(t, err)
	assert.Equal(t, model.SpotAvailable, spot.Status)
}

func TestRelease_CostAboveFloor(t *testing.T) {
	repos := newTestRepos(t)
	lotSvc := NewLotService(repos, nil)
	bookSvc := NewBookingService(repos, nil)
	ctx := context.Background()

	lot := createTestLot(t, lotSvc, "Central Plaza", 20, 1)
	user := createTestUser(t, repos, "alice@example.com")

	entry := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := bookSvc.(*bookingService)
	svc.now = fixedClock(entry)

	reservation, err := bookSvc.Book(ctx, user.ID, lot.ID, "KA01AB1234")
	require.NoError(t, err)

	// 90 minutes at 20/hr: 1.5 x 20 = 30.00
	svc.now = fixedClock(entry.Add(90 * time.Minute))
	released, err := bookSvc.Release(ctx, user.ID, reservation.ID)
	require.NoError(t, err)
	require.NotNil(t, released.ParkingCost)
	assert.Equal(t, "30.00", released.ParkingCost.StringFixed(2))
}

func TestRelease_DoubleReleaseRejected(t *testing.T) {
	repos := newTestRepos(t)
	lotSvc := NewLotService(repos, nil)
	bookSvc := NewBookingService(repos, nil)
	ctx := context.Background()

	lot := createTestLot(t, lotSvc, "Central Plaza", 20, 1)
	user := createTestUser(t, repos, "alice@example.com")

	entry := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := bookSvc.(*bookingService)
	svc.now = fixedClock(entry)

	reservation, err := bookSvc.Book(ctx, user.ID, lot.ID, "KA01AB1234")
	require.NoError(t, err)

	svc.now = fixedClock(entry.Add(20 * time.Minute))
	released, err := bookSvc.Release(ctx, user.ID, reservation.ID)
	require.NoError(t, err)

	// a second release must not move the timestamp or cost
	svc.now = fixedClock(entry.Add(3 * time.Hour))
	_, err = bookSvc.Release(ctx, user.ID, reservation.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReleased)

	stored, err := repos.Reservations.FindByID(ctx, reservation.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ParkingCost)
	assert.True(t, stored.ParkingCost.Equal(*released.ParkingCost))
	assert.True(t, stored.LeavingTimestamp.Equal(*released.LeavingTimestamp))
}

func TestRelease_OnlyOwnerMayRelease(t *testing.T) {
	repos := newTestRepos(t)
	lotSvc := NewLotService(repos, nil)
	bookSvc := NewBookingService(repos, nil)
	ctx := context.Background()

	lot := createTestLot(t, lotSvc, "Central Plaza", 20, 1)
	owner := createTestUser(t, repos, "alice@example.com")
	other := createTestUser(t, repos, "bob@example.com")

	reservation, err := bookSvc.Book(ctx, owner.ID, lot.ID, "KA01AB1234")
	require.NoError(t, err)

	_, err = bookSvc.Release(ctx, other.ID, reservation.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotReservationOwner)

	// the reservation stays open for the owner
	stored, err := repos.Reservations.FindByID(ctx, reservation.ID)
	require.NoError(t, err)
	assert.True(t, stored.Open())
}

func TestBookReleaseBook_SpotCycles(t *testing.T) {
	repos := newTestRepos(t)
	lotSvc := NewLotService(repos, nil)
	bookSvc := NewBookingService(repos, nil)
	ctx := context.Background()

	lot := createTestLot(t, lotSvc, "Central Plaza", 20, 1)
	user := createTestUser(t, repos, "alice@example.com")

	first, err := bookSvc.Book(ctx, user.ID, lot.ID, "KA01AB1234")
	require.NoError(t, err)
	_, err = bookSvc.Release(ctx, user.ID, first.ID)
	require.NoError(t, err)

	second, err := bookSvc.Book(ctx, user.ID, lot.ID, "KA02CD5678")
	require.NoError(t, err)
	assert.Equal(t, first.SpotID, second.SpotID)

	history, err := bookSvc.History(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestSearchByLocation(t *testing.T) {
	repos := newTestRepos(t)
	lotSvc := NewLotService(repos, nil)
	bookSvc := NewBookingService(repos, nil)
	ctx := context.Background()

	createTestLot(t, lotSvc, "Central Plaza", 20, 1)

	// exact pincode match
	lots, err := bookSvc.SearchByLocation(ctx, "560001")
	require.NoError(t, err)
	assert.Len(t, lots, 1)

	// case-insensitive address substring
	lots, err = bookSvc.SearchByLocation(ctx, "test street")
	require.NoError(t, err)
	assert.Len(t, lots, 1)

	lots, err = bookSvc.SearchByLocation(ctx, "nowhere")
	require.NoError(t, err)
	assert.Empty(t, lots)
}
