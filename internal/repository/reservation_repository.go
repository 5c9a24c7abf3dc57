package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/model"
)

// ReservationRepository defines reservation persistence operations.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	Update(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id uint) (*model.Reservation, error)
	FindOpenBySpot(ctx context.Context, spotID uint) (*model.Reservation, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Reservation, error)
	ListAll(ctx context.Context) ([]model.Reservation, error)
	ExistsForLot(ctx context.Context, lotID uint) (bool, error)
}

type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository builds a GORM-backed repository.
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) Update(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Spot").Preload("Spot.Lot").
		First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindOpenBySpot returns the spot's open reservation, gorm.ErrRecordNotFound
// when the spot is free.
func (r *reservationRepository) FindOpenBySpot(ctx context.Context, spotID uint) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := r.db.WithContext(ctx).
		Where("spot_id = ? AND leaving_timestamp IS NULL", spotID).
		First(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID uint) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Spot").Preload("Spot.Lot").
		Where("user_id = ?", userID).
		Order("parking_timestamp DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) ListAll(ctx context.Context) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).
		Preload("User").Preload("Spot").Preload("Spot.Lot").
		Order("parking_timestamp DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// ExistsForLot reports whether any spot of the lot has ever been reserved,
// open or closed. Lots with history must not be deleted.
func (r *reservationRepository) ExistsForLot(ctx context.Context, lotID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Reservation{}).
		Joins("JOIN parking_spots ON parking_spots.id = reservations.spot_id").
		Where("parking_spots.lot_id = ?", lotID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
