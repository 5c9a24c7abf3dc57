package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/model"
)

// LotRepository defines parking lot persistence operations.
type LotRepository interface {
	Create(ctx context.Context, lot *model.ParkingLot) error
	Update(ctx context.Context, lot *model.ParkingLot) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.ParkingLot, error)
	List(ctx context.Context) ([]model.ParkingLot, error)
	SearchByNameLike(ctx context.Context, q string) ([]model.ParkingLot, error)
	SearchByAddressLike(ctx context.Context, q string) ([]model.ParkingLot, error)
	SearchByPincodeLike(ctx context.Context, q string) ([]model.ParkingLot, error)
	SearchByMaxPrice(ctx context.Context, price decimal.Decimal) ([]model.ParkingLot, error)
	SearchByLocation(ctx context.Context, location string) ([]model.ParkingLot, error)
}

type lotRepository struct {
	db *gorm.DB
}

// NewLotRepository builds a GORM-backed repository.
func NewLotRepository(db *gorm.DB) LotRepository {
	return &lotRepository{db: db}
}

func (r *lotRepository) Create(ctx context.Context, lot *model.ParkingLot) error {
	return r.db.WithContext(ctx).Create(lot).Error
}

func (r *lotRepository) Update(ctx context.Context, lot *model.ParkingLot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

func (r *lotRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.ParkingLot{}, id).Error
}

func (r *lotRepository) FindByID(ctx context.Context, id uint) (*model.ParkingLot, error) {
	var lot model.ParkingLot
	if err := r.db.WithContext(ctx).First(&lot, id).Error; err != nil {
		return nil, err
	}
	return &lot, nil
}

func (r *lotRepository) List(ctx context.Context) ([]model.ParkingLot, error) {
	var lots []model.ParkingLot
	if err := r.db.WithContext(ctx).Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// searchLike runs a case-insensitive substring match on one column.
func (r *lotRepository) searchLike(ctx context.Context, column, q string) ([]model.ParkingLot, error) {
	var lots []model.ParkingLot
	pattern := "%" + q + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER("+column+") LIKE LOWER(?)", pattern).
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

func (r *lotRepository) SearchByNameLike(ctx context.Context, q string) ([]model.ParkingLot, error) {
	return r.searchLike(ctx, "name", q)
}

func (r *lotRepository) SearchByAddressLike(ctx context.Context, q string) ([]model.ParkingLot, error) {
	return r.searchLike(ctx, "address", q)
}

func (r *lotRepository) SearchByPincodeLike(ctx context.Context, q string) ([]model.ParkingLot, error) {
	return r.searchLike(ctx, "pincode", q)
}

// SearchByMaxPrice returns lots whose hourly price does not exceed price.
func (r *lotRepository) SearchByMaxPrice(ctx context.Context, price decimal.Decimal) ([]model.ParkingLot, error) {
	var lots []model.ParkingLot
	if err := r.db.WithContext(ctx).
		Where("price_per_hour <= ?", price).
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// SearchByLocation matches lots by exact pincode or case-insensitive address
// substring, the user-facing search from the dashboard.
func (r *lotRepository) SearchByLocation(ctx context.Context, location string) ([]model.ParkingLot, error) {
	var lots []model.ParkingLot
	pattern := "%" + location + "%"
	if err := r.db.WithContext(ctx).
		Where("pincode = ? OR LOWER(address) LIKE LOWER(?)", location, pattern).
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}
