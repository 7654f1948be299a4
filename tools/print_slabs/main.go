package main

import (
	"fmt"

	"github.com/lexdesk/legal-assistant/internal/calculation"
	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/shopspring/decimal"
)

func main() {
	for _, r := range domain.Regimes {
		fmt.Printf("%s slabs:\n", r.Label())
		for _, b := range calculation.BracketsFor(r) {
			fmt.Printf("  %s\n", calculation.SlabLabel(b))
		}
		fmt.Printf("  zero-rate threshold: %s\n\n", calculation.ZeroRateThreshold(r).StringFixed(0))
	}

	// Worked example: 10L salary with a full 80C claim.
	income := domain.IncomeProfile{Salary: decimal.NewFromInt(1000000)}
	deductions := domain.DeductionProfile{Section80C: decimal.NewFromInt(150000)}
	res, err := calculation.Compare(income, deductions)
	if err != nil {
		panic(err)
	}
	fmt.Println("Worked example (salary 1000000, 80C 150000):")
	for _, r := range domain.Regimes {
		tax, breakdown := res.NewTax, res.NewBreakdown
		if r == domain.RegimeOld {
			tax, breakdown = res.OldTax, res.OldBreakdown
		}
		fmt.Printf("  %s tax: %s\n", r.Label(), tax.StringFixed(2))
		for _, line := range breakdown {
			fmt.Printf("    %-32s %s\n", line.Label, line.Amount.StringFixed(2))
		}
	}
	fmt.Printf("  Recommended: %s (saves %s)\n", res.RecommendedRegime.Label(), res.SavingsAmount.StringFixed(2))
}
