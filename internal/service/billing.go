package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// minBillableHours is the billing floor: even a few minutes of parking is
// charged as half an hour.
const minBillableHours = 0.5

// billableCost computes the parking charge for the interval [entry, exit] at
// the given hourly price, rounded to 2 decimals.
func billableCost(pricePerHour decimal.Decimal, entry, exit time.Time) decimal.Decimal {
	hours := exit.Sub(entry).Hours()
	if hours < minBillableHours {
		hours = minBillableHours
	}
	return pricePerHour.Mul(decimal.NewFromFloat(hours)).Round(2)
}
