package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBookingPrice(t *testing.T) {
	// 3 inclusive days at $40/day: subtotal 120.00, fee 12.00, tax 19.20.
	got := CalculateBookingPrice(40_00, d("2026-05-01"), d("2026-05-03"))
	assert.Equal(t, 3, got.TotalDays)
	assert.Equal(t, int64(120_00), got.SubtotalCents)
	assert.Equal(t, int64(12_00), got.ServiceFeeCents)
	assert.Equal(t, int64(19_20), got.TaxCents)
	assert.Equal(t, int64(151_20), got.TotalCents)
}

func TestCalculateBookingPrice_SingleDay(t *testing.T) {
	got := CalculateBookingPrice(55_00, d("2026-05-01"), d("2026-05-01"))
	assert.Equal(t, 1, got.TotalDays)
	assert.Equal(t, int64(55_00), got.SubtotalCents)
}

func TestCalculateBookingPrice_RoundsFeesDown(t *testing.T) {
	// Subtotal 33.33: fee 3.333 -> 3.33, tax 5.3328 -> 5.33.
	got := CalculateBookingPrice(33_33, d("2026-05-01"), d("2026-05-01"))
	assert.Equal(t, int64(3_33), got.ServiceFeeCents)
	assert.Equal(t, int64(5_33), got.TaxCents)
	assert.Equal(t, int64(33_33+3_33+5_33), got.TotalCents)
}

func TestExtensionCost(t *testing.T) {
	got := ExtensionCost(40_00, 2)
	assert.Equal(t, 2, got.TotalDays)
	assert.Equal(t, int64(80_00), got.SubtotalCents)
	assert.Equal(t, int64(8_00), got.ServiceFeeCents)
	assert.Equal(t, int64(12_80), got.TaxCents)
	assert.Equal(t, int64(100_80), got.TotalCents)
}
