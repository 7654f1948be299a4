package calculation

import (
	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/shopspring/decimal"
)

// Statutory caps for old-regime deductions. 80G and other deductions are uncapped.
var (
	Cap80C   = decimal.NewFromInt(150000)
	Cap80D   = decimal.NewFromInt(50000)
	Cap80TTA = decimal.NewFromInt(10000)
	Cap24    = decimal.NewFromInt(200000)
)

func capOf(d decimal.Decimal) *decimal.Decimal { return &d }

// DeductionItems lists each deduction head with its claimed and allowed amount.
func DeductionItems(p domain.DeductionProfile) []domain.DeductionItem {
	items := []domain.DeductionItem{
		{Section: "80C", Claimed: p.Section80C, Cap: capOf(Cap80C)},
		{Section: "80D", Claimed: p.Section80D, Cap: capOf(Cap80D)},
		{Section: "80G", Claimed: p.Section80G},
		{Section: "80TTA", Claimed: p.Section80TTA, Cap: capOf(Cap80TTA)},
		{Section: "24", Claimed: p.Section24, Cap: capOf(Cap24)},
		{Section: "Other", Claimed: p.Other},
	}
	for i := range items {
		allowed := decimal.Max(items[i].Claimed, decimal.Zero)
		if items[i].Cap != nil {
			allowed = decimal.Min(allowed, *items[i].Cap)
		}
		items[i].Allowed = allowed
	}
	return items
}

// TotalDeductions is the sum of capped deductions under regime. The new
// regime allows none.
func TotalDeductions(p domain.DeductionProfile, regime domain.TaxRegime) decimal.Decimal {
	if regime != domain.RegimeOld {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, item := range DeductionItems(p) {
		total = total.Add(item.Allowed)
	}
	return total
}

// TaxableIncome floors gross minus deductions at zero.
func TaxableIncome(gross, deductions decimal.Decimal) decimal.Decimal {
	return decimal.Max(gross.Sub(deductions), decimal.Zero)
}
