package calculation

import (
	"context"

	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/shopspring/decimal"
)

// Calculator runs full single-regime tax calculations.
type Calculator struct {
	Logger Logger
}

// NewCalculator creates a calculator with a no-op logger.
func NewCalculator() *Calculator {
	return &Calculator{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculator. If nil is provided, a no-op logger is used.
func (c *Calculator) SetLogger(l Logger) {
	if l == nil {
		c.Logger = NopLogger{}
		return
	}
	c.Logger = l
}

// Calculate validates the input, applies regime deductions and computes tax.
func (c *Calculator) Calculate(ctx context.Context, in domain.TaxInput) (*domain.TaxCalculation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := domain.RequireRegime("tax.calculate", in.Regime); err != nil {
		return nil, err
	}
	if err := in.Income.Validate(); err != nil {
		return nil, err
	}
	if err := in.Deductions.Validate(); err != nil {
		return nil, err
	}

	gross := in.Income.Gross()
	deductions := TotalDeductions(in.Deductions, in.Regime)
	taxable := TaxableIncome(gross, deductions)

	result, err := ComputeTax(taxable, in.Regime)
	if err != nil {
		return nil, err
	}

	calc := &domain.TaxCalculation{
		AssessmentYear:  in.AssessmentYear,
		Regime:          in.Regime,
		GrossIncome:     gross,
		TotalDeductions: deductions,
		TaxableIncome:   taxable,
		Tax:             result.Total,
		Breakdown:       result.Breakdown,
		EffectiveRate:   EffectiveRate(result.Total, gross),
	}
	if in.Regime == domain.RegimeOld {
		calc.Deductions = DeductionItems(in.Deductions)
	}

	c.Logger.Debugf("tax calculated: regime=%s gross=%s deductions=%s taxable=%s tax=%s",
		in.Regime, gross, deductions, taxable, result.Total.StringFixed(2))
	return calc, nil
}

// Compare runs the regime comparison with logging.
func (c *Calculator) Compare(ctx context.Context, income domain.IncomeProfile, deductions domain.DeductionProfile) (*domain.ComparisonResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := Compare(income, deductions)
	if err != nil {
		c.Logger.Warnf("regime comparison rejected: %v", err)
		return nil, err
	}
	c.Logger.Debugf("regimes compared: old=%s new=%s recommended=%s",
		res.OldTax.StringFixed(2), res.NewTax.StringFixed(2), res.RecommendedRegime)
	return &res, nil
}

// EffectiveRate is tax as a percentage of gross income, zero when gross is not positive.
func EffectiveRate(tax, gross decimal.Decimal) decimal.Decimal {
	if !gross.IsPositive() {
		return decimal.Zero
	}
	return tax.Div(gross).Mul(hundred).Round(2)
}
