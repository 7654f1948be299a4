package calculation

import (
	"github.com/lexdesk/legal-assistant/internal/domain"
)

// Compare computes tax under both regimes for one income profile and
// recommends the cheaper. A tie recommends the old regime.
func Compare(income domain.IncomeProfile, deductions domain.DeductionProfile) (domain.ComparisonResult, error) {
	if err := income.Validate(); err != nil {
		return domain.ComparisonResult{}, err
	}
	if err := deductions.Validate(); err != nil {
		return domain.ComparisonResult{}, err
	}

	gross := income.Gross()
	oldDeductions := TotalDeductions(deductions, domain.RegimeOld)
	oldTaxable := TaxableIncome(gross, oldDeductions)
	newTaxable := TaxableIncome(gross, TotalDeductions(deductions, domain.RegimeNew))

	oldTax, err := ComputeTax(oldTaxable, domain.RegimeOld)
	if err != nil {
		return domain.ComparisonResult{}, err
	}
	newTax, err := ComputeTax(newTaxable, domain.RegimeNew)
	if err != nil {
		return domain.ComparisonResult{}, err
	}

	recommended := domain.RegimeOld
	if oldTax.Total.GreaterThan(newTax.Total) {
		recommended = domain.RegimeNew
	}

	return domain.ComparisonResult{
		GrossIncome:       gross,
		OldDeductions:     oldDeductions,
		OldTaxableIncome:  oldTaxable,
		NewTaxableIncome:  newTaxable,
		OldTax:            oldTax.Total,
		NewTax:            newTax.Total,
		OldBreakdown:      oldTax.Breakdown,
		NewBreakdown:      newTax.Breakdown,
		RecommendedRegime: recommended,
		SavingsAmount:     oldTax.Total.Sub(newTax.Total).Abs(),
	}, nil
}
