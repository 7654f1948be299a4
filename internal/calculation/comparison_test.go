package calculation

import (
	"testing"

	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name            string
		income          domain.IncomeProfile
		deductions      domain.DeductionProfile
		wantOldTaxable  int64
		wantNewTaxable  int64
		wantOldTax      int64
		wantNewTax      int64
		wantRecommended domain.TaxRegime
		wantSavings     int64
	}{
		{
			name:            "new regime cheaper with modest deductions",
			income:          domain.IncomeProfile{Salary: d(800000)},
			deductions:      domain.DeductionProfile{Section80C: d(150000), Section80D: d(25000)},
			wantOldTaxable:  625000,
			wantNewTaxable:  800000,
			wantOldTax:      39000,
			wantNewTax:      36400,
			wantRecommended: domain.RegimeNew,
			wantSavings:     2600,
		},
		{
			name:   "old regime cheaper with heavy deductions",
			income: domain.IncomeProfile{Salary: d(1000000)},
			deductions: domain.DeductionProfile{
				Section80C: d(150000), Section80D: d(50000), Section24: d(200000), Other: d(100000),
			},
			wantOldTaxable:  500000,
			wantNewTaxable:  1000000,
			wantOldTax:      13000,
			wantNewTax:      62400,
			wantRecommended: domain.RegimeOld,
			wantSavings:     49400,
		},
		{
			name:            "tie favours old regime",
			income:          domain.IncomeProfile{Salary: d(200000)},
			wantOldTaxable:  200000,
			wantNewTaxable:  200000,
			wantRecommended: domain.RegimeOld,
		},
		{
			name:            "house property loss reduces gross",
			income:          domain.IncomeProfile{Salary: d(100000), HouseProperty: d(-200000)},
			wantRecommended: domain.RegimeOld,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compare(tt.income, tt.deductions)
			require.NoError(t, err)
			assert.True(t, res.OldTaxableIncome.Equal(d(tt.wantOldTaxable)), "old taxable %s", res.OldTaxableIncome)
			assert.True(t, res.NewTaxableIncome.Equal(d(tt.wantNewTaxable)), "new taxable %s", res.NewTaxableIncome)
			assert.True(t, res.OldTax.Equal(d(tt.wantOldTax)), "old tax %s", res.OldTax)
			assert.True(t, res.NewTax.Equal(d(tt.wantNewTax)), "new tax %s", res.NewTax)
			assert.Equal(t, tt.wantRecommended, res.RecommendedRegime)
			assert.True(t, res.SavingsAmount.Equal(d(tt.wantSavings)), "savings %s", res.SavingsAmount)
			assert.False(t, res.OldTaxableIncome.IsNegative())
			assert.False(t, res.NewTaxableIncome.IsNegative())
		})
	}
}

func TestCompare_RejectsInvalidProfiles(t *testing.T) {
	_, err := Compare(domain.IncomeProfile{Business: d(-10)}, domain.DeductionProfile{})
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}
