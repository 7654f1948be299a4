package calculation

import (
	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/shopspring/decimal"
)

// SLAB TABLE ASSUMPTIONS:
//
// 1. Old regime: basic exemption of ₹2.5L, no age-based exemptions.
// 2. New regime: slabs as notified for the 2023-24 assessment year.
// 3. Health & Education Cess of 4% applies on the total slab tax.
// 4. Surcharge and the section 87A rebate are not modelled.

// CessRate is the Health & Education Cess applied to the slab total.
var CessRate = decimal.RequireFromString("0.04")

func bracket(lower, upper int64, rate string) domain.SlabBracket {
	return domain.SlabBracket{
		Lower: decimal.NewFromInt(lower),
		Upper: decimal.NewFromInt(upper),
		Rate:  decimal.RequireFromString(rate),
	}
}

func topBracket(lower int64, rate string) domain.SlabBracket {
	return domain.SlabBracket{
		Lower:     decimal.NewFromInt(lower),
		Unbounded: true,
		Rate:      decimal.RequireFromString(rate),
	}
}

var oldRegimeSlabs = []domain.SlabBracket{
	bracket(0, 250000, "0"),
	bracket(250000, 500000, "0.05"),
	bracket(500000, 1000000, "0.20"),
	topBracket(1000000, "0.30"),
}

var newRegimeSlabs = []domain.SlabBracket{
	bracket(0, 300000, "0"),
	bracket(300000, 600000, "0.05"),
	bracket(600000, 900000, "0.10"),
	bracket(900000, 1200000, "0.15"),
	bracket(1200000, 1500000, "0.20"),
	topBracket(1500000, "0.30"),
}

// BracketsFor returns a copy of the ascending slab table for regime.
// Unknown regimes yield nil.
func BracketsFor(regime domain.TaxRegime) []domain.SlabBracket {
	var src []domain.SlabBracket
	switch regime {
	case domain.RegimeOld:
		src = oldRegimeSlabs
	case domain.RegimeNew:
		src = newRegimeSlabs
	default:
		return nil
	}
	return append([]domain.SlabBracket(nil), src...)
}

// ZeroRateThreshold is the income up to which no tax is payable under regime.
func ZeroRateThreshold(regime domain.TaxRegime) decimal.Decimal {
	threshold := decimal.Zero
	for _, b := range BracketsFor(regime) {
		if !b.Rate.IsZero() || b.Unbounded {
			break
		}
		threshold = b.Upper
	}
	return threshold
}

