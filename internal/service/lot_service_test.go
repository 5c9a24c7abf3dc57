package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Shivansh-Dutt/vehicle-parking-app/internal/errors"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/model"
)

func TestCreateLot_CreatesAllSpots(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewLotService(repos, nil)
	ctx := context.Background()

	lot := createTestLot(t, svc, "Central Plaza", 20, 5)

	detail, err := svc.GetLot(ctx, lot.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), detail.Total)
	for i, spot := range detail.Spots {
		assert.Equal(t, model.SpotAvailable, spot.Status)
		assert.Equal(t, fmt.Sprintf("CEN-%d", i+1), spot.SpotNumber)
	}
}

func TestCreateLot_Validation(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewLotService(repos, nil)
	ctx := context.Background()

	base := LotInput{
		Name:         "Central Plaza",
		PricePerHour: decimal.NewFromInt(20),
		Address:      "42 Test Street",
		Pincode:      "560001",
		MaxSpots:     5,
	}

	bad := base
	bad.Pincode = "12345"
	_, err := svc.CreateLot(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidPincode)

	bad = base
	bad.Pincode = "56000a"
	_, err = svc.CreateLot(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidPincode)

	bad = base
	bad.PricePerHour = decimal.NewFromInt(-1)
	_, err = svc.CreateLot(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	bad = base
	bad.MaxSpots = 0
	_, err = svc.CreateLot(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidMaxSpots)

	// nothing persisted by the rejected inputs
	lots, err := repos.Lots.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, lots)
}

func TestUpdateLot_GrowAppendsSpots(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewLotService(repos, nil)
	ctx := context.Background()

	lot := createTestLot(t, svc, "Central Plaza", 20, 3)

	updated, err := svc.UpdateLot(ctx, lot.ID, LotInput{
		Name:         lot.Name,
		PricePerHour: lot.PricePerHour,
		Address:      lot.Address,
		Pincode:      lot.Pincode,
		MaxSpots:     5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.MaxSpots)

	detail, err := svc.GetLot(ctx, lot.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), detail.Total)
	// appended spots follow the resize numbering
	assert.Equal(t, "S4", detail.Spots[3].SpotNumber)
	assert.Equal(t, "S5", detail.Spots[4].SpotNumber)
}

func TestUpdateLot_ShrinkRemovesNewestUnreserved(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewLotService(repos, nil)
	ctx := context.Background()

	lot := createTestLot(t, svc, "Central Plaza", 20, 5)
	user := createTestUser(t, repos, "alice@example.com")

	// give the oldest spot reservation history so it can never be deleted
	detail, err := svc.GetLot(ctx, lot.ID, 1)
	require.NoError(t, err)
	oldest := detail.Spots[0]
	require.NoError(t, repos.Reservations.Create(ctx, &model.Reservation{
		UserID:           user.ID,
		SpotID:           oldest.ID,
		VehicleNo:        "KA01AB1234",
		ParkingTimestamp: time.Now(),
	}))

	_, err = svc.UpdateLot(ctx, lot.ID, LotInput{
		Name:         lot.Name,
		PricePerHour: lot.PricePerHour,
		Address:      lot.Address,
		Pincode:      lot.Pincode,
		MaxSpots:     3,
	})
	require.NoError(t, err)

	detail, err = svc.GetLot(ctx, lot.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), detail.Total)
	// the reserved spot survives, the two newest unreserved ones are gone
	ids := make([]uint, 0, len(detail.Spots))
	for _, spot := range detail.Spots {
		ids = append(ids, spot.ID)
	}
	assert.Contains(t, ids, oldest.ID)
}

func TestUpdateLot_ShrinkRejectedLeavesLotUnchanged(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewLotService(repos, nil)
	ctx := context.Background()

	lot := createTestLot(t, svc, "Central Plaza", 20, 3)
	user := createTestUser(t, repos, "alice@example.com")

	// two of three spots get reservation history
	detail, err := svc.GetLot(ctx, lot.ID, 1)
	require.NoError(t, err)
	for _, spot := range detail.Spots[:2] {
		require.NoError(t, repos.Reservations.Create(ctx, &model.Reservation{
			UserID:           user.ID,
			SpotID:           spot.ID,
			VehicleNo:        "KA01AB1234",
			ParkingTimestamp: time.Now(),
		}))
	}

	// shrinking to 1 needs two deletable spots but only one qualifies
	_, err = svc.UpdateLot(ctx, lot.ID, LotInput{
		Name:         "Renamed Plaza",
		PricePerHour: lot.PricePerHour,
		Address:      lot.Address,
		Pincode:      lot.Pincode,
		MaxSpots:     1,
	})

	var shrinkErr *ShrinkError
	require.ErrorAs(t, err, &shrinkErr)
	assert.Equal(t, 1, shrinkErr.Target)
	assert.Equal(t, 1, shrinkErr.Deletable)

	// the whole edit rolled back, including the rename
	detail, err = svc.GetLot(ctx, lot.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), detail.Total)
	assert.Equal(t, "Central Plaza", detail.Lot.Name)
	assert.Equal(t, 3, detail.Lot.MaxSpots)
}

func TestDeleteLot_WithHistoryRejected(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewLotService(repos, nil)
	ctx := context.Background()

	lot := createTestLot(t, svc, "Central Plaza", 20, 2)
	user := createTestUser(t, repos, "alice@example.com")

	detail, err := svc.GetLot(ctx, lot.ID, 1)
	require.NoError(t, err)

	// a closed reservation still counts as history
	leaving := time.Now()
	cost := decimal.NewFromInt(10)
	require.NoError(t, repos.Reservations.Create(ctx, &model.Reservation{
		UserID:           user.ID,
		SpotID:           detail.Spots[0].ID,
		VehicleNo:        "KA01AB1234",
		ParkingTimestamp: leaving.Add(-time.Hour),
		LeavingTimestamp: &leaving,
		ParkingCost:      &cost,
	}))

	err = svc.DeleteLot(ctx, lot.ID)
	assert.ErrorIs(t, err, apperrors.ErrLotHasReservations)

	_, err = svc.GetLot(ctx, lot.ID, 1)
	assert.NoError(t, err)
}

func TestDeleteLot_CleanLotCascades(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewLotService(repos, nil)
	ctx := context.Background()

	lot := createTestLot(t, svc, "Central Plaza", 20, 2)

	require.NoError(t, svc.DeleteLot(ctx, lot.ID))

	_, err := svc.GetLot(ctx, lot.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrLotNotFound)

	count, err := repos.Spots.CountByLot(ctx, lot.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestSearchLots(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewLotService(repos, nil)
	ctx := context.Background()

	createTestLot(t, svc, "Central Plaza", 10, 1)
	createTestLot(t, svc, "Riverside Mall", 15, 1)
	createTestLot(t, svc, "Station West", 20, 1)

	lots, err := svc.SearchLots(ctx, "price", "15")
	require.NoError(t, err)
	assert.Len(t, lots, 2)

	lots, err = svc.SearchLots(ctx, "location", "riverside")
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, "Riverside Mall", lots[0].Name)

	_, err = svc.SearchLots(ctx, "price", "not-a-number")
	assert.ErrorIs(t, err, ErrInvalidPriceQuery)

	_, err = svc.SearchLots(ctx, "vehicle", "anything")
	assert.ErrorIs(t, err, ErrUnknownSearchFilter)
}

func TestGetSpot_LiveCostEstimate(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewLotService(repos, nil)
	ctx := context.Background()

	lot := createTestLot(t, svc, "Central Plaza", 20, 2)
	user := createTestUser(t, repos, "alice@example.com")

	detail, err := svc.GetLot(ctx, lot.ID, 1)
	require.NoError(t, err)
	spot := detail.Spots[0]

	entry := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Reservations.Create(ctx, &model.Reservation{
		UserID:           user.ID,
		SpotID:           spot.ID,
		VehicleNo:        "KA01AB1234",
		ParkingTimestamp: entry,
	}))
	require.NoError(t, repos.Spots.UpdateStatus(ctx, spot.ID, model.SpotOccupied))

	svc.(*lotService).now = fixedClock(entry.Add(90 * time.Minute))

	spotDetail, err := svc.GetSpot(ctx, spot.ID)
	require.NoError(t, err)
	require.NotNil(t, spotDetail.Reservation)
	require.NotNil(t, spotDetail.CostEstimate)
	assert.Equal(t, "30.00", spotDetail.CostEstimate.StringFixed(2))

	// a free spot carries no estimate
	freeDetail, err := svc.GetSpot(ctx, detail.Spots[1].ID)
	require.NoError(t, err)
	assert.Nil(t, freeDetail.Reservation)
	assert.Nil(t, freeDetail.CostEstimate)
}

func TestDashboard_AvailabilityCounts(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewLotService(repos, nil)
	ctx := context.Background()

	lot := createTestLot(t, svc, "Central Plaza", 20, 3)

	detail, err := svc.GetLot(ctx, lot.ID, 1)
	require.NoError(t, err)
	require.NoError(t, repos.Spots.UpdateStatus(ctx, detail.Spots[0].ID, model.SpotOccupied))

	dashboard, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Len(t, dashboard, 1)
	assert.Equal(t, int64(2), dashboard[0].AvailableSpots)
}
