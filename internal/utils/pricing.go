package utils

import "time"

// Platform fee rates applied on top of the rental subtotal.
const (
	ServiceFeeRate = 0.10
	TaxRate        = 0.16
)

// PriceBreakdown itemizes a booking's cost over an inclusive date range.
type PriceBreakdown struct {
	TotalDays       int
	SubtotalCents   int64
	ServiceFeeCents int64
	TaxCents        int64
	TotalCents      int64
}

// CalculateBookingPrice computes the cost of renting at dailyRateCents from
// start through end, both days included. Fees and tax are rounded down to
// whole cents.
func CalculateBookingPrice(dailyRateCents int64, start, end time.Time) PriceBreakdown {
	return priceDays(dailyRateCents, InclusiveDays(start, end))
}

// ExtensionCost prices the additional days of an approved extension at the
// booking's snapshotted daily rate.
func ExtensionCost(dailyRateCents int64, additionalDays int) PriceBreakdown {
	return priceDays(dailyRateCents, additionalDays)
}

func priceDays(dailyRateCents int64, days int) PriceBreakdown {
	subtotal := dailyRateCents * int64(days)
	serviceFee := int64(float64(subtotal) * ServiceFeeRate)
	tax := int64(float64(subtotal) * TaxRate)

	return PriceBreakdown{
		TotalDays:       days,
		SubtotalCents:   subtotal,
		ServiceFeeCents: serviceFee,
		TaxCents:        tax,
		TotalCents:      subtotal + serviceFee + tax,
	}
}
