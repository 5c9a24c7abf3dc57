package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles the per-entity repositories over one DB handle so that
// multi-entity writes can share a transaction.
type Repositories struct {
	Users        UserRepository
	Lots         LotRepository
	Spots        SpotRepository
	Reservations ReservationRepository

	db *gorm.DB
}

// New builds the repository bundle on top of a GORM DB.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db),
		Lots:         NewLotRepository(db),
		Spots:        NewSpotRepository(db),
		Reservations: NewReservationRepository(db),
		db:           db,
	}
}

// WithTransaction runs fn against a repository bundle bound to a single
// database transaction. Any error from fn rolls the whole transaction back.
func (r *Repositories) WithTransaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
