package calculation

import (
	"fmt"

	"github.com/lexdesk/legal-assistant/internal/domain"
	money "github.com/lexdesk/legal-assistant/pkg/decimal"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CessLabel is the label of the final breakdown line.
const CessLabel = "Health & Education Cess (4%)"

// ComputeTax walks the slab table for regime and returns the tax payable on
// taxableIncome with a per-slab breakdown. The zero-rate slab and slabs that
// contribute nothing are omitted; the cess line is always last.
func ComputeTax(taxableIncome decimal.Decimal, regime domain.TaxRegime) (domain.TaxResult, error) {
	if taxableIncome.IsNegative() {
		return domain.TaxResult{}, domain.Invalid("tax.compute", "taxable income %s is negative", taxableIncome)
	}
	if !domain.IsWholeAmount(taxableIncome) {
		return domain.TaxResult{}, domain.Invalid("tax.compute", "taxable income %s is not a whole amount", taxableIncome)
	}
	brackets := BracketsFor(regime)
	if len(brackets) == 0 {
		return domain.TaxResult{}, domain.Invalid("tax.compute", "unknown regime %s", regime)
	}

	preCess := decimal.Zero
	var lines []domain.BreakdownLine
	for _, b := range brackets {
		if taxableIncome.LessThanOrEqual(b.Lower) {
			break
		}
		if b.Rate.IsZero() {
			continue
		}
		top := taxableIncome
		if !b.Unbounded {
			top = decimal.Min(taxableIncome, b.Upper)
		}
		amount := top.Sub(b.Lower).Mul(b.Rate)
		if !amount.IsPositive() {
			continue
		}
		lines = append(lines, domain.BreakdownLine{Label: SlabLabel(b), Rate: b.Rate, Amount: amount})
		preCess = preCess.Add(amount)
	}

	cess := preCess.Mul(CessRate)
	lines = append(lines, domain.BreakdownLine{Label: CessLabel, Rate: CessRate, Amount: cess, Cess: true})

	return domain.TaxResult{
		Regime:    regime,
		Taxable:   taxableIncome,
		PreCess:   preCess,
		Cess:      cess,
		Total:     preCess.Add(cess),
		Breakdown: lines,
	}, nil
}

// SlabLabel renders a bracket as "5% on ₹2.5L to ₹5L" or "30% on above ₹10L".
func SlabLabel(b domain.SlabBracket) string {
	rate := b.Rate.Mul(hundred).String()
	if b.Unbounded {
		return fmt.Sprintf("%s%% on above ₹%s", rate, money.NewMoneyFromDecimal(b.Lower).Lakhs())
	}
	return fmt.Sprintf("%s%% on ₹%s to ₹%s", rate,
		money.NewMoneyFromDecimal(b.Lower).Lakhs(), money.NewMoneyFromDecimal(b.Upper).Lakhs())
}
