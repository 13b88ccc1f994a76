package utils

import (
	"math"

	"zemo-rental-backend/internal/domain"
)

// Severity base scores. Unrecognized severities fall back to the MINOR score;
// the platform has always been lenient here and settlement consumers depend
// on that, so it stays a default rather than a validation error.
const (
	scoreMinor    = 5
	scoreModerate = 15
	scoreMajor    = 30
	scoreSevere   = 50
)

// defaultRepairCostCents stands in for a missing or zero estimate. It is a
// placeholder heuristic, not a repair-cost model.
const defaultRepairCostCents = 100_00

// AssessDamage scores a set of reported damage items against the vehicle's
// overall condition. Pure function: no side effects beyond the return value.
// An empty item list yields a zero assessment at low risk. An unrecognized
// overallCondition is an error — unlike severity there is no safe default
// for the multiplier.
func AssessDamage(items []domain.DamageItem, overallCondition domain.VehicleCondition) (domain.DamageAssessment, error) {
	if len(items) == 0 {
		return domain.DamageAssessment{RiskLevel: domain.RiskLow}, nil
	}

	var totalScore int
	var totalRepairCost int64

	for _, item := range items {
		switch item.Severity {
		case domain.DamageSeverityMinor:
			totalScore += scoreMinor
		case domain.DamageSeverityModerate:
			totalScore += scoreModerate
		case domain.DamageSeverityMajor:
			totalScore += scoreMajor
		case domain.DamageSeveritySevere:
			totalScore += scoreSevere
		default:
			totalScore += scoreMinor
		}

		if item.EstimatedCostCents > 0 {
			totalRepairCost += item.EstimatedCostCents
		} else {
			totalRepairCost += defaultRepairCostCents
		}
	}

	multiplier, err := conditionMultiplier(overallCondition)
	if err != nil {
		return domain.DamageAssessment{}, err
	}

	// Rounded to one decimal place.
	adjusted := math.Round(float64(totalScore)*multiplier*10) / 10

	return domain.DamageAssessment{
		TotalScore:           totalScore,
		TotalRepairCostCents: totalRepairCost,
		AdjustedScore:        adjusted,
		RiskLevel:            riskLevelFor(adjusted),
	}, nil
}

func conditionMultiplier(condition domain.VehicleCondition) (float64, error) {
	switch condition {
	case domain.ConditionExcellent:
		return 1.0, nil
	case domain.ConditionGood:
		return 1.1, nil
	case domain.ConditionFair:
		return 1.3, nil
	case domain.ConditionPoor:
		return 1.6, nil
	case domain.ConditionDamaged:
		return 2.0, nil
	default:
		return 0, domain.NewValidationError("overall_condition", "unrecognized vehicle condition")
	}
}

func riskLevelFor(adjustedScore float64) domain.RiskLevel {
	switch {
	case adjustedScore > 100:
		return domain.RiskCritical
	case adjustedScore > 50:
		return domain.RiskHigh
	case adjustedScore > 20:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// SettleDeposit reconciles a renter's deposit against the charges reported at
// trip close. The adjustment charged never exceeds what was held, and the
// returned amount never goes negative.
func SettleDeposit(originalDepositCents, damageCents, cleaningCents, fuelCents, otherCents int64) (adjustmentCents, finalReturnCents int64) {
	total := damageCents + cleaningCents + fuelCents + otherCents

	adjustmentCents = total
	if adjustmentCents > originalDepositCents {
		adjustmentCents = originalDepositCents
	}

	finalReturnCents = originalDepositCents - total
	if finalReturnCents < 0 {
		finalReturnCents = 0
	}

	return adjustmentCents, finalReturnCents
}
