package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/model"
)

// SpotRepository defines parking spot persistence operations.
type SpotRepository interface {
	CreateBatch(ctx context.Context, spots []model.ParkingSpot) error
	FindByID(ctx context.Context, id uint) (*model.ParkingSpot, error)
	FirstAvailableInLot(ctx context.Context, lotID uint) (*model.ParkingSpot, error)
	UpdateStatus(ctx context.Context, id uint, status model.SpotStatus) error
	CountByLot(ctx context.Context, lotID uint) (int64, error)
	CountAvailableByLots(ctx context.Context, lotIDs []uint) (map[uint]int64, error)
	ListByLotPage(ctx context.Context, lotID uint, page, perPage int) ([]model.ParkingSpot, int64, error)
	FindDeletable(ctx context.Context, lotID uint, limit int) ([]model.ParkingSpot, error)
	DeleteByIDs(ctx context.Context, ids []uint) error
	DeleteByLot(ctx context.Context, lotID uint) error
}

type spotRepository struct {
	db *gorm.DB
}

// NewSpotRepository builds a GORM-backed repository.
func NewSpotRepository(db *gorm.DB) SpotRepository {
	return &spotRepository{db: db}
}

func (r *spotRepository) CreateBatch(ctx context.Context, spots []model.ParkingSpot) error {
	if len(spots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&spots).Error
}

func (r *spotRepository) FindByID(ctx context.Context, id uint) (*model.ParkingSpot, error) {
	var spot model.ParkingSpot
	if err := r.db.WithContext(ctx).Preload("Lot").First(&spot, id).Error; err != nil {
		return nil, err
	}
	return &spot, nil
}

// FirstAvailableInLot picks an available spot with no particular ordering
// guarantee beyond "first matching row".
func (r *spotRepository) FirstAvailableInLot(ctx context.Context, lotID uint) (*model.ParkingSpot, error) {
	var spot model.ParkingSpot
	if err := r.db.WithContext(ctx).
		Where("lot_id = ? AND status = ?", lotID, model.SpotAvailable).
		First(&spot).Error; err != nil {
		return nil, err
	}
	return &spot, nil
}

func (r *spotRepository) UpdateStatus(ctx context.Context, id uint, status model.SpotStatus) error {
	return r.db.WithContext(ctx).Model(&model.ParkingSpot{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *spotRepository) CountByLot(ctx context.Context, lotID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ParkingSpot{}).
		Where("lot_id = ?", lotID).
		Count(&count).Error
	return count, err
}

// CountAvailableByLots returns the available-spot count per lot in one
// grouped query. Lots with no free spot are absent from the map.
func (r *spotRepository) CountAvailableByLots(ctx context.Context, lotIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(lotIDs))
	if len(lotIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		LotID uint
		Cnt   int64
	}
	if err := r.db.WithContext(ctx).Model(&model.ParkingSpot{}).
		Select("lot_id, COUNT(*) AS cnt").
		Where("lot_id IN ? AND status = ?", lotIDs, model.SpotAvailable).
		Group("lot_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.LotID] = row.Cnt
	}
	return counts, nil
}

// ListByLotPage returns one page of a lot's spots plus the total count.
func (r *spotRepository) ListByLotPage(ctx context.Context, lotID uint, page, perPage int) ([]model.ParkingSpot, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.ParkingSpot{}).
		Where("lot_id = ?", lotID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var spots []model.ParkingSpot
	if err := r.db.WithContext(ctx).
		Where("lot_id = ?", lotID).
		Order("id").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&spots).Error; err != nil {
		return nil, 0, err
	}
	return spots, total, nil
}

// FindDeletable selects up to limit available spots with zero reservation
// history, newest first. Only such spots may be removed on a downward resize.
func (r *spotRepository) FindDeletable(ctx context.Context, lotID uint, limit int) ([]model.ParkingSpot, error) {
	var spots []model.ParkingSpot
	if err := r.db.WithContext(ctx).
		Select("parking_spots.*").
		Joins("LEFT JOIN reservations ON reservations.spot_id = parking_spots.id").
		Where("parking_spots.lot_id = ? AND parking_spots.status = ? AND reservations.id IS NULL",
			lotID, model.SpotAvailable).
		Order("parking_spots.id DESC").
		Limit(limit).
		Find(&spots).Error; err != nil {
		return nil, err
	}
	return spots, nil
}

func (r *spotRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&model.ParkingSpot{}, ids).Error
}

func (r *spotRepository) DeleteByLot(ctx context.Context, lotID uint) error {
	return r.db.WithContext(ctx).
		Where("lot_id = ?", lotID).
		Delete(&model.ParkingSpot{}).Error
}
