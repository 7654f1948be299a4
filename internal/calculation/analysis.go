package calculation

import (
	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultScenarios are the preset deduction profiles compared by AnalyzeDeductions.
func DefaultScenarios() []domain.DeductionScenario {
	return []domain.DeductionScenario{
		{Name: "No Deductions"},
		{Name: "Basic (80C only)", Deductions: domain.DeductionProfile{
			Section80C: decimal.NewFromInt(150000),
		}},
		{Name: "Standard", Deductions: domain.DeductionProfile{
			Section80C: decimal.NewFromInt(150000),
			Section80D: decimal.NewFromInt(25000),
			Section24:  decimal.NewFromInt(200000),
		}},
		{Name: "Maximum", Deductions: domain.DeductionProfile{
			Section80C: decimal.NewFromInt(150000),
			Section80D: decimal.NewFromInt(50000),
			Section24:  decimal.NewFromInt(200000),
			Other:      decimal.NewFromInt(100000),
		}},
	}
}

// AnalyzeDeductions evaluates the preset scenarios under the old regime for
// baseIncome. Savings are measured against the first scenario.
func AnalyzeDeductions(baseIncome decimal.Decimal) (*domain.DeductionAnalysis, error) {
	return AnalyzeScenarios(baseIncome, DefaultScenarios())
}

// AnalyzeScenarios evaluates arbitrary scenarios. The first scenario is the baseline.
func AnalyzeScenarios(baseIncome decimal.Decimal, scenarios []domain.DeductionScenario) (*domain.DeductionAnalysis, error) {
	if err := (domain.IncomeProfile{Salary: baseIncome}).Validate(); err != nil {
		return nil, err
	}
	if len(scenarios) == 0 {
		return nil, domain.Invalid("deductions.analyze", "no scenarios to analyze")
	}

	analysis := &domain.DeductionAnalysis{BaseIncome: baseIncome}
	var baseline decimal.Decimal
	var bestTax decimal.Decimal
	for i, sc := range scenarios {
		if err := sc.Deductions.Validate(); err != nil {
			return nil, err
		}
		sc.TotalDeductions = TotalDeductions(sc.Deductions, domain.RegimeOld)
		sc.TaxableIncome = TaxableIncome(baseIncome, sc.TotalDeductions)
		res, err := ComputeTax(sc.TaxableIncome, domain.RegimeOld)
		if err != nil {
			return nil, err
		}
		sc.Tax = res.Total
		if i == 0 {
			baseline = sc.Tax
		}
		sc.Savings = baseline.Sub(sc.Tax)
		if i == 0 || sc.Tax.LessThan(bestTax) {
			bestTax = sc.Tax
			analysis.Best = sc.Name
		}
		analysis.Scenarios = append(analysis.Scenarios, sc)
	}
	return analysis, nil
}
