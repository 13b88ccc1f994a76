package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zemo-rental-backend/internal/domain"
)

func TestAssessDamage_Empty(t *testing.T) {
	got, err := AssessDamage(nil, domain.ConditionExcellent)
	assert.NoError(t, err)
	assert.Equal(t, 0, got.TotalScore)
	assert.Equal(t, int64(0), got.TotalRepairCostCents)
	assert.Equal(t, 0.0, got.AdjustedScore)
	assert.Equal(t, domain.RiskLow, got.RiskLevel)
}

func TestAssessDamage_Scoring(t *testing.T) {
	items := []domain.DamageItem{
		{Severity: domain.DamageSeverityMinor, EstimatedCostCents: 20_00},
		{Severity: domain.DamageSeverityModerate, EstimatedCostCents: 150_00},
		{Severity: domain.DamageSeverityMajor, EstimatedCostCents: 800_00},
		{Severity: domain.DamageSeveritySevere, EstimatedCostCents: 2500_00},
	}
	got, err := AssessDamage(items, domain.ConditionExcellent)
	assert.NoError(t, err)
	assert.Equal(t, 5+15+30+50, got.TotalScore)
	assert.Equal(t, int64(3470_00), got.TotalRepairCostCents)
	assert.Equal(t, 100.0, got.AdjustedScore)
	assert.Equal(t, domain.RiskHigh, got.RiskLevel)
}

func TestAssessDamage_UnknownSeverityScoresAsMinor(t *testing.T) {
	items := []domain.DamageItem{
		{Severity: "SCUFFED", EstimatedCostCents: 10_00},
	}
	got, err := AssessDamage(items, domain.ConditionExcellent)
	assert.NoError(t, err)
	assert.Equal(t, 5, got.TotalScore)
}

func TestAssessDamage_MissingCostGetsDefault(t *testing.T) {
	items := []domain.DamageItem{
		{Severity: domain.DamageSeverityMinor},
		{Severity: domain.DamageSeverityMinor, EstimatedCostCents: 0},
		{Severity: domain.DamageSeverityMinor, EstimatedCostCents: 30_00},
	}
	got, err := AssessDamage(items, domain.ConditionExcellent)
	assert.NoError(t, err)
	assert.Equal(t, int64(100_00+100_00+30_00), got.TotalRepairCostCents)
}

func TestAssessDamage_ConditionMultipliers(t *testing.T) {
	items := []domain.DamageItem{
		{Severity: domain.DamageSeverityModerate, EstimatedCostCents: 50_00},
		{Severity: domain.DamageSeverityModerate, EstimatedCostCents: 50_00},
	}
	// Base score 30.
	cases := []struct {
		condition domain.VehicleCondition
		adjusted  float64
		risk      domain.RiskLevel
	}{
		{domain.ConditionExcellent, 30.0, domain.RiskMedium},
		{domain.ConditionGood, 33.0, domain.RiskMedium},
		{domain.ConditionFair, 39.0, domain.RiskMedium},
		{domain.ConditionPoor, 48.0, domain.RiskMedium},
		{domain.ConditionDamaged, 60.0, domain.RiskHigh},
	}
	for _, tc := range cases {
		got, err := AssessDamage(items, tc.condition)
		assert.NoError(t, err, "%s", tc.condition)
		assert.Equal(t, tc.adjusted, got.AdjustedScore, "%s", tc.condition)
		assert.Equal(t, tc.risk, got.RiskLevel, "%s", tc.condition)
	}
}

func TestAssessDamage_UnknownConditionIsError(t *testing.T) {
	items := []domain.DamageItem{{Severity: domain.DamageSeverityMinor}}
	_, err := AssessDamage(items, "PRISTINE")
	assert.Error(t, err)
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestAssessDamage_RoundsToOneDecimal(t *testing.T) {
	items := []domain.DamageItem{
		{Severity: domain.DamageSeverityMinor, EstimatedCostCents: 10_00},
	}
	got, err := AssessDamage(items, domain.ConditionGood)
	assert.NoError(t, err)
	// 5 * 1.1 = 5.5 exactly; 5 * 1.3 = 6.5.
	assert.Equal(t, 5.5, got.AdjustedScore)
	assert.Equal(t, int64(10_00), got.TotalRepairCostCents)
	assert.Equal(t, domain.RiskLow, got.RiskLevel)

	got, err = AssessDamage(items, domain.ConditionFair)
	assert.NoError(t, err)
	assert.Equal(t, 6.5, got.AdjustedScore)
}

func TestAssessDamage_RiskThresholds(t *testing.T) {
	severe := func(n int) []domain.DamageItem {
		items := make([]domain.DamageItem, n)
		for i := range items {
			items[i] = domain.DamageItem{Severity: domain.DamageSeveritySevere, EstimatedCostCents: 10_00}
		}
		return items
	}

	got, _ := AssessDamage(severe(3), domain.ConditionExcellent) // 150
	assert.Equal(t, domain.RiskCritical, got.RiskLevel)

	got, _ = AssessDamage(severe(2), domain.ConditionExcellent) // 100, not above
	assert.Equal(t, domain.RiskHigh, got.RiskLevel)

	got, _ = AssessDamage(severe(1), domain.ConditionExcellent) // 50, not above
	assert.Equal(t, domain.RiskMedium, got.RiskLevel)

	minor := []domain.DamageItem{{Severity: domain.DamageSeverityMinor, EstimatedCostCents: 10_00}}
	got, _ = AssessDamage(minor, domain.ConditionExcellent) // 5
	assert.Equal(t, domain.RiskLow, got.RiskLevel)

	quad := []domain.DamageItem{
		{Severity: domain.DamageSeverityMinor, EstimatedCostCents: 10_00},
		{Severity: domain.DamageSeverityMinor, EstimatedCostCents: 10_00},
		{Severity: domain.DamageSeverityMinor, EstimatedCostCents: 10_00},
		{Severity: domain.DamageSeverityMinor, EstimatedCostCents: 10_00},
	}
	got, _ = AssessDamage(quad, domain.ConditionExcellent) // 20, not above
	assert.Equal(t, domain.RiskLow, got.RiskLevel)
}

func TestAssessDamage_MoreItemsNeverLowerScore(t *testing.T) {
	base := []domain.DamageItem{
		{Severity: domain.DamageSeverityModerate, EstimatedCostCents: 100_00},
	}
	prev, err := AssessDamage(base, domain.ConditionGood)
	assert.NoError(t, err)

	items := base
	for _, sev := range []domain.DamageSeverity{domain.DamageSeverityMinor, domain.DamageSeverityModerate, domain.DamageSeverityMajor, domain.DamageSeveritySevere} {
		items = append(items, domain.DamageItem{Severity: sev, EstimatedCostCents: 10_00})
		got, err := AssessDamage(items, domain.ConditionGood)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, got.TotalScore, prev.TotalScore)
		assert.GreaterOrEqual(t, got.AdjustedScore, prev.AdjustedScore)
		assert.GreaterOrEqual(t, got.TotalRepairCostCents, prev.TotalRepairCostCents)
		prev = got
	}
}

func TestSettleDeposit(t *testing.T) {
	cases := []struct {
		name                          string
		deposit                       int64
		damage, cleaning, fuel, other int64
		wantAdjustment, wantReturn    int64
	}{
		{"no charges", 500_00, 0, 0, 0, 0, 0, 500_00},
		{"partial charges", 500_00, 120_00, 50_00, 20_00, 0, 190_00, 310_00},
		{"charges equal deposit", 500_00, 400_00, 100_00, 0, 0, 500_00, 0},
		{"charges exceed deposit", 500_00, 700_00, 100_00, 0, 0, 500_00, 0},
		{"zero deposit", 0, 120_00, 0, 0, 0, 0, 0},
		{"other charges only", 300_00, 0, 0, 0, 90_00, 90_00, 210_00},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			adjustment, finalReturn := SettleDeposit(tc.deposit, tc.damage, tc.cleaning, tc.fuel, tc.other)
			assert.Equal(t, tc.wantAdjustment, adjustment)
			assert.Equal(t, tc.wantReturn, finalReturn)
			// The two clamps, stated as invariants.
			assert.LessOrEqual(t, adjustment, tc.deposit)
			assert.GreaterOrEqual(t, finalReturn, int64(0))
		})
	}
}
