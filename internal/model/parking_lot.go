package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParkingLot is a physical site owning a set of spots. The number of spot
// rows equals MaxSpots whenever the lot is in a settled state.
type ParkingLot struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"size:150;not null"`
	PricePerHour decimal.Decimal `json:"price_per_hour" gorm:"type:decimal(10,2);not null"`
	Address      string          `json:"address" gorm:"size:250;not null"`
	Pincode      string          `json:"pincode" gorm:"size:10;not null;index"`
	MaxSpots     int             `json:"max_spots" gorm:"not null"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relations
	Spots []ParkingSpot `json:"spots,omitempty" gorm:"foreignKey:LotID;constraint:OnDelete:CASCADE"`
}
