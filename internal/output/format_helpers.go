package output

import (
	"github.com/shopspring/decimal"

	money "github.com/lexdesk/legal-assistant/pkg/decimal"
)

// FormatCurrency formats a decimal as rupees with Indian digit grouping.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate renders a fractional slab rate such as 0.05 as "5%".
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
