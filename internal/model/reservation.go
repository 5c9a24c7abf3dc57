package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation binds a user to a spot for a time interval. A nil
// LeavingTimestamp means the reservation is open and the spot occupied;
// stamping it closes the reservation for good.
type Reservation struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	UserID           uint             `json:"user_id" gorm:"not null;index"`
	SpotID           uint             `json:"spot_id" gorm:"not null;index"`
	VehicleNo        string           `json:"vehicle_no" gorm:"size:20;not null"`
	ParkingTimestamp time.Time        `json:"parking_timestamp" gorm:"not null;index"`
	LeavingTimestamp *time.Time       `json:"leaving_timestamp"`
	ParkingCost      *decimal.Decimal `json:"parking_cost" gorm:"type:decimal(10,2)"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`

	// Relations
	User User        `json:"-" gorm:"foreignKey:UserID"`
	Spot ParkingSpot `json:"spot,omitempty" gorm:"foreignKey:SpotID"`
}

// Open reports whether the reservation has not been released yet.
func (r *Reservation) Open() bool {
	return r.LeavingTimestamp == nil
}
