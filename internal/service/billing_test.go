package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBillableCost(t *testing.T) {
	price := decimal.NewFromInt(20)
	entry := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		exit     time.Time
		expected string
	}{
		{"under the floor", entry.Add(20 * time.Minute), "10.00"},
		{"exactly at the floor", entry.Add(30 * time.Minute), "10.00"},
		{"above the floor", entry.Add(90 * time.Minute), "30.00"},
		{"whole hours", entry.Add(2 * time.Hour), "40.00"},
		{"clock skew still bills the floor", entry.Add(-5 * time.Minute), "10.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cost := billableCost(price, entry, tc.exit)
			assert.Equal(t, tc.expected, cost.StringFixed(2))
		})
	}
}

func TestBillableCost_RoundsToTwoDecimals(t *testing.T) {
	price := decimal.RequireFromString("12.5")
	entry := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	// 100 minutes at 12.5/hr = 20.8333..., rounded to 20.83
	cost := billableCost(price, entry, entry.Add(100*time.Minute))
	assert.Equal(t, "20.83", cost.StringFixed(2))
}
