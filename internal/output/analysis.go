package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lexdesk/legal-assistant/internal/domain"
)

// Recommendation summarises the regime choice of a comparison.
type Recommendation struct {
	Regime   domain.TaxRegime `json:"regime"`
	Savings  decimal.Decimal  `json:"savings"`
	Headline string           `json:"headline"`
}

// AnalyzeComparison turns a comparison into a one-line recommendation.
// It returns the zero value when the report carries no comparison.
func AnalyzeComparison(report *domain.TaxReport) Recommendation {
	if report == nil || report.Comparison == nil {
		return Recommendation{}
	}
	c := report.Comparison
	rec := Recommendation{Regime: c.RecommendedRegime, Savings: c.SavingsAmount}
	if c.SavingsAmount.IsZero() {
		rec.Headline = fmt.Sprintf("Both regimes cost %s; the %s is recommended.", FormatCurrency(c.OldTax), c.RecommendedRegime.Label())
	} else {
		rec.Headline = fmt.Sprintf("The %s saves you %s.", c.RecommendedRegime.Label(), FormatCurrency(c.SavingsAmount))
	}
	return rec
}
