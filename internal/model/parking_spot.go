package model

import "time"

// SpotStatus is the occupancy state of a parking spot.
type SpotStatus string

const (
	SpotAvailable SpotStatus = "A"
	SpotOccupied  SpotStatus = "O"
)

// ParkingSpot belongs to exactly one lot. At most one open reservation may
// reference a spot at a time; that is enforced by the booking flow, not by a
// database constraint.
type ParkingSpot struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	SpotNumber string     `json:"spot_number" gorm:"size:20;not null"`
	Status     SpotStatus `json:"status" gorm:"type:varchar(1);not null;default:'A';index"`
	LotID      uint       `json:"lot_id" gorm:"not null;index"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relations
	Lot          ParkingLot    `json:"-" gorm:"foreignKey:LotID"`
	Reservations []Reservation `json:"-" gorm:"foreignKey:SpotID"`
}
