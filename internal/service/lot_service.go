package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/cache"
	apperrors "github.com/Shivansh-Dutt/vehicle-parking-app/internal/errors"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/model"
	"github.com/Shivansh-Dutt/vehicle-parking-app/internal/repository"
)

const (
	spotsPerPage = 10

	availabilityCacheKey = "available_spots"
	availabilityCacheTTL = 30 * time.Second
)

var (
	// ErrInvalidPincode is returned when the pincode is not exactly 6 digits.
	ErrInvalidPincode = errors.New("pincode must be exactly 6 digits")
	// ErrInvalidPrice is returned when the hourly price is negative.
	ErrInvalidPrice = errors.New("price per hour cannot be negative")
	// ErrInvalidMaxSpots is returned when max spots is not positive.
	ErrInvalidMaxSpots = errors.New("max spots must be a positive number")
	// ErrUnknownSearchFilter is returned for an unsupported search_by key.
	ErrUnknownSearchFilter = errors.New("invalid search filter")
	// ErrInvalidPriceQuery is returned when a price search query is not a number.
	ErrInvalidPriceQuery = errors.New("invalid value for price")
)

// ShrinkError reports a rejected downward resize: fewer unreserved available
// spots exist than the resize needs to remove.
type ShrinkError struct {
	Target    int
	Deletable int
}

func (e *ShrinkError) Error() string {
	return fmt.Sprintf("cannot reduce to %d spots, only %d empty spots available", e.Target, e.Deletable)
}

// LotInput carries the create/edit parking lot form fields.
type LotInput struct {
	Name         string
	PricePerHour decimal.Decimal
	Address      string
	Pincode      string
	MaxSpots     int
}

// LotAvailability pairs a lot with its current free-spot count.
type LotAvailability struct {
	Lot            model.ParkingLot `json:"lot"`
	AvailableSpots int64            `json:"available_spots"`
}

// LotDetail is a lot with one page of its spots.
type LotDetail struct {
	Lot     model.ParkingLot    `json:"lot"`
	Spots   []model.ParkingSpot `json:"spots"`
	Page    int                 `json:"page"`
	PerPage int                 `json:"per_page"`
	Total   int64               `json:"total_spots"`
}

// SpotDetail is a spot plus, when occupied, the open reservation and a live
// cost estimate as if the vehicle left right now.
type SpotDetail struct {
	Spot         model.ParkingSpot  `json:"spot"`
	Reservation  *model.Reservation `json:"reservation,omitempty"`
	CostEstimate *decimal.Decimal   `json:"cost_estimate,omitempty"`
}

// LotService covers the admin side: lot/spot lifecycle, listings and search.
type LotService interface {
	CreateLot(ctx context.Context, in LotInput) (*model.ParkingLot, error)
	UpdateLot(ctx context.Context, id uint, in LotInput) (*model.ParkingLot, error)
	DeleteLot(ctx context.Context, id uint) error
	GetLot(ctx context.Context, id uint, page int) (*LotDetail, error)
	GetSpot(ctx context.Context, id uint) (*SpotDetail, error)
	SearchLots(ctx context.Context, by, query string) ([]model.ParkingLot, error)
	Dashboard(ctx context.Context) ([]LotAvailability, error)
	AvailabilityFor(ctx context.Context, lots []model.ParkingLot) ([]LotAvailability, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListReservations(ctx context.Context) ([]model.Reservation, error)
}

type lotService struct {
	repos *repository.Repositories
	cache *cache.Client
	now   func() time.Time
}

// NewLotService creates a new lot service.
func NewLotService(repos *repository.Repositories, cache *cache.Client) LotService {
	return &lotService{
		repos: repos,
		cache: cache,
		now:   time.Now,
	}
}

func validateLotInput(in LotInput) error {
	if in.PricePerHour.IsNegative() {
		return ErrInvalidPrice
	}
	if in.MaxSpots <= 0 {
		return ErrInvalidMaxSpots
	}
	if !validPincode(in.Pincode) {
		return ErrInvalidPincode
	}
	return nil
}

func validPincode(pincode string) bool {
	if len(pincode) != 6 {
		return false
	}
	for _, c := range pincode {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// spotPrefix derives the spot-number prefix from the first three letters of
// the lot name, uppercased.
func spotPrefix(name string) string {
	runes := []rune(strings.ToUpper(name))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}

// CreateLot persists a lot and its MaxSpots available spots as one unit.
func (s *lotService) CreateLot(ctx context.Context, in LotInput) (*model.ParkingLot, error) {
	if err := validateLotInput(in); err != nil {
		return nil, err
	}

	lot := &model.ParkingLot{
		Name:         in.Name,
		PricePerHour: in.PricePerHour,
		Address:      in.Address,
		Pincode:      in.Pincode,
		MaxSpots:     in.MaxSpots,
	}

	err := s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := tx.Lots.Create(ctx, lot); err != nil {
			return fmt.Errorf("create lot: %w", err)
		}

		prefix := spotPrefix(in.Name)
		spots := make([]model.ParkingSpot, 0, in.MaxSpots)
		for i := 1; i <= in.MaxSpots; i++ {
			spots = append(spots, model.ParkingSpot{
				SpotNumber: fmt.Sprintf("%s-%d", prefix, i),
				Status:     model.SpotAvailable,
				LotID:      lot.ID,
			})
		}
		if err := tx.Spots.CreateBatch(ctx, spots); err != nil {
			return fmt.Errorf("create spots: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, availabilityCacheKey)
	return lot, nil
}

// UpdateLot edits lot fields and rebalances the spot set when MaxSpots
// changes. A downward resize only removes available spots that were never
// reserved and is rejected in full when too few of them exist.
func (s *lotService) UpdateLot(ctx context.Context, id uint, in LotInput) (*model.ParkingLot, error) {
	if err := validateLotInput(in); err != nil {
		return nil, err
	}

	var updated *model.ParkingLot
	err := s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		lot, err := tx.Lots.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrLotNotFound
			}
			return err
		}

		spotCount, err := tx.Spots.CountByLot(ctx, id)
		if err != nil {
			return err
		}

		if in.MaxSpots > int(spotCount) {
			spots := make([]model.ParkingSpot, 0, in.MaxSpots-int(spotCount))
			for i := int(spotCount) + 1; i <= in.MaxSpots; i++ {
				spots = append(spots, model.ParkingSpot{
					SpotNumber: fmt.Sprintf("S%d", i),
					Status:     model.SpotAvailable,
					LotID:      lot.ID,
				})
			}
			if err := tx.Spots.CreateBatch(ctx, spots); err != nil {
				return fmt.Errorf("create spots: %w", err)
			}
		} else if in.MaxSpots < lot.MaxSpots {
			excess := lot.MaxSpots - in.MaxSpots
			deletable, err := tx.Spots.FindDeletable(ctx, id, excess)
			if err != nil {
				return err
			}
			if len(deletable) < excess {
				return &ShrinkError{Target: in.MaxSpots, Deletable: len(deletable)}
			}
			ids := make([]uint, 0, len(deletable))
			for _, spot := range deletable {
				ids = append(ids, spot.ID)
			}
			if err := tx.Spots.DeleteByIDs(ctx, ids); err != nil {
				return fmt.Errorf("delete spots: %w", err)
			}
		}

		lot.Name = in.Name
		lot.PricePerHour = in.PricePerHour
		lot.Address = in.Address
		lot.Pincode = in.Pincode
		lot.MaxSpots = in.MaxSpots
		if err := tx.Lots.Update(ctx, lot); err != nil {
			return fmt.Errorf("update lot: %w", err)
		}

		updated = lot
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, availabilityCacheKey)
	return updated, nil
}

// DeleteLot removes a lot and its spots, but only when no spot of the lot has
// ever been reserved.
func (s *lotService) DeleteLot(ctx context.Context, id uint) error {
	err := s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.Lots.FindByID(ctx, id); err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrLotNotFound
			}
			return err
		}

		hasReservations, err := tx.Reservations.ExistsForLot(ctx, id)
		if err != nil {
			return err
		}
		if hasReservations {
			return apperrors.ErrLotHasReservations
		}

		if err := tx.Spots.DeleteByLot(ctx, id); err != nil {
			return fmt.Errorf("delete spots: %w", err)
		}
		if err := tx.Lots.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete lot: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, availabilityCacheKey)
	return nil
}

// GetLot returns a lot with one page of its spots, 10 per page.
func (s *lotService) GetLot(ctx context.Context, id uint, page int) (*LotDetail, error) {
	lot, err := s.repos.Lots.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrLotNotFound
		}
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	spots, total, err := s.repos.Spots.ListByLotPage(ctx, id, page, spotsPerPage)
	if err != nil {
		return nil, err
	}

	return &LotDetail{
		Lot:     *lot,
		Spots:   spots,
		Page:    page,
		PerPage: spotsPerPage,
		Total:   total,
	}, nil
}

// GetSpot returns a spot and, if it is occupied, the open reservation with a
// live cost estimate computed as if the vehicle left now.
func (s *lotService) GetSpot(ctx context.Context, id uint) (*SpotDetail, error) {
	spot, err := s.repos.Spots.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrSpotNotFound
		}
		return nil, err
	}

	detail := &SpotDetail{Spot: *spot}

	reservation, err := s.repos.Reservations.FindOpenBySpot(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return detail, nil
		}
		return nil, err
	}

	estimate := billableCost(spot.Lot.PricePerHour, reservation.ParkingTimestamp, s.now())
	detail.Reservation = reservation
	detail.CostEstimate = &estimate
	return detail, nil
}

// SearchLots filters lots by one of location, address, pincode or price.
// Price means "price_per_hour <= query".
func (s *lotService) SearchLots(ctx context.Context, by, query string) ([]model.ParkingLot, error) {
	switch strings.ToLower(by) {
	case "location":
		return s.repos.Lots.SearchByNameLike(ctx, query)
	case "address":
		return s.repos.Lots.SearchByAddressLike(ctx, query)
	case "pincode":
		return s.repos.Lots.SearchByPincodeLike(ctx, query)
	case "price":
		price, err := decimal.NewFromString(query)
		if err != nil {
			return nil, ErrInvalidPriceQuery
		}
		return s.repos.Lots.SearchByMaxPrice(ctx, price)
	default:
		return nil, ErrUnknownSearchFilter
	}
}

// Dashboard returns every lot with its free-spot count, cached briefly since
// both dashboards poll it.
func (s *lotService) Dashboard(ctx context.Context) ([]LotAvailability, error) {
	lots, err := s.repos.Lots.List(ctx)
	if err != nil {
		return nil, err
	}

	var counts map[uint]int64
	found, _ := s.cache.GetJSON(ctx, availabilityCacheKey, &counts)
	if !found {
		counts, err = s.countAvailable(ctx, lots)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetJSON(ctx, availabilityCacheKey, counts, availabilityCacheTTL)
	}

	return pairAvailability(lots, counts), nil
}

// AvailabilityFor computes fresh free-spot counts for an arbitrary lot set,
// used by search results.
func (s *lotService) AvailabilityFor(ctx context.Context, lots []model.ParkingLot) ([]LotAvailability, error) {
	counts, err := s.countAvailable(ctx, lots)
	if err != nil {
		return nil, err
	}
	return pairAvailability(lots, counts), nil
}

func (s *lotService) countAvailable(ctx context.Context, lots []model.ParkingLot) (map[uint]int64, error) {
	ids := make([]uint, 0, len(lots))
	for _, lot := range lots {
		ids = append(ids, lot.ID)
	}
	return s.repos.Spots.CountAvailableByLots(ctx, ids)
}

func pairAvailability(lots []model.ParkingLot, counts map[uint]int64) []LotAvailability {
	result := make([]LotAvailability, 0, len(lots))
	for _, lot := range lots {
		result = append(result, LotAvailability{Lot: lot, AvailableSpots: counts[lot.ID]})
	}
	return result
}

func (s *lotService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repos.Users.ListWithReservations(ctx)
}

func (s *lotService) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	return s.repos.Reservations.ListAll(ctx)
}
