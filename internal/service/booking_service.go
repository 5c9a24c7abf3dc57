package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/cache"
	apperrors "github.com/Shivansh-Dutt/vehicle-parking-app/internal/errors"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/model"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/repository"
)

// BookingService covers the user side of the reservation lifecycle.
type BookingService interface {
	Book(ctx context.Context, userID, lotID uint, vehicleNo string) (*model.Reservation, error)
	Release(ctx context.Context, userID, reservationID uint) (*model.Reservation, error)
	SearchByLocation(ctx context.Context, location string) ([]model.ParkingLot, error)
	History(ctx context.Context, userID uint) ([]model.Reservation, error)
}

type bookingService struct {
	repos *repository.Repositories
	cache *cache.Client
	now   func() time.Time
}

// NewBookingService creates a new booking service.
func NewBookingService(repos *repository.Repositories, cache *cache.Client) BookingService {
	return &bookingService{
		repos: repos,
		cache: cache,
		now:   time.Now,
	}
}

// Book takes the first available spot in the lot, marks it occupied and opens
// a reservation stamped with the current time.
//
// Spot selection and the status flip are not serialized across requests, so
// two concurrent bookings can land on the same spot. Closing that gap needs a
// row lock or a unique index on open reservations.
func (s *bookingService) Book(ctx context.Context, userID, lotID uint, vehicleNo string) (*model.Reservation, error) {
	if _, err := s.repos.Lots.FindByID(ctx, lotID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrLotNotFound
		}
		return nil, err
	}

	var reservation *model.Reservation
	err := s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		spot, err := tx.Spots.FirstAvailableInLot(ctx, lotID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrNoAvailableSpot
			}
			return err
		}

		if err := tx.Spots.UpdateStatus(ctx, spot.ID, model.SpotOccupied); err != nil {
			return fmt.Errorf("occupy spot: %w", err)
		}

		reservation = &model.Reservation{
			UserID:           userID,
			SpotID:           spot.ID,
			VehicleNo:        vehicleNo,
			ParkingTimestamp: s.now(),
		}
		if err := tx.Reservations.Create(ctx, reservation); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, availabilityCacheKey)
	return reservation, nil
}

// Release closes an open reservation: stamps the leaving time, computes the
// cost with the half-hour billing floor and frees the spot, all in one
// transaction. Only the owner may release, and only once.
func (s *bookingService) Release(ctx context.Context, userID, reservationID uint) (*model.Reservation, error) {
	reservation, err := s.repos.Reservations.FindByID(ctx, reservationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, err
	}

	if reservation.UserID != userID {
		return nil, apperrors.ErrNotReservationOwner
	}
	if !reservation.Open() {
		return nil, apperrors.ErrAlreadyReleased
	}

	leavingTime := s.now()
	cost := billableCost(reservation.Spot.Lot.PricePerHour, reservation.ParkingTimestamp, leavingTime)

	err = s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		reservation.LeavingTimestamp = &leavingTime
		reservation.ParkingCost = &cost
		if err := tx.Reservations.Update(ctx, reservation); err != nil {
			return fmt.Errorf("close reservation: %w", err)
		}
		if err := tx.Spots.UpdateStatus(ctx, reservation.SpotID, model.SpotAvailable); err != nil {
			return fmt.Errorf("free spot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, availabilityCacheKey)
	return reservation, nil
}

// SearchByLocation matches lots by exact pincode or case-insensitive address
// substring.
func (s *bookingService) SearchByLocation(ctx context.Context, location string) ([]model.ParkingLot, error) {
	return s.repos.Lots.SearchByLocation(ctx, location)
}

// History returns the user's reservations, newest first.
func (s *bookingService) History(ctx context.Context, userID uint) ([]model.Reservation, error) {
	return s.repos.Reservations.ListByUser(ctx, userID)
}
