package output

import (
	"bytes"
	"fmt"

	"github.com/lexdesk/legal-assistant/internal/domain"
)

// ConsoleFormatter provides a concise plain-text summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "INCOME TAX SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if calc := report.Calculation; calc != nil {
		fmt.Fprintf(&buf, "%s: Gross=%s Deductions=%s Taxable=%s Tax=%s Effective=%s\n",
			calc.Regime.Label(),
			FormatCurrency(calc.GrossIncome),
			FormatCurrency(calc.TotalDeductions),
			FormatCurrency(calc.TaxableIncome),
			FormatCurrency(calc.Tax),
			FormatPercentage(calc.EffectiveRate),
		)
	}
	if cmp := report.Comparison; cmp != nil {
		fmt.Fprintf(&buf, "Old Regime: Taxable=%s Tax=%s\n", FormatCurrency(cmp.OldTaxableIncome), FormatCurrency(cmp.OldTax))
		fmt.Fprintf(&buf, "New Regime: Taxable=%s Tax=%s\n", FormatCurrency(cmp.NewTaxableIncome), FormatCurrency(cmp.NewTax))
	}
	if a := report.Analysis; a != nil {
		for _, sc := range a.Scenarios {
			fmt.Fprintf(&buf, "%s: Tax=%s Savings=%s\n", sc.Name, FormatCurrency(sc.Tax), FormatCurrency(sc.Savings))
		}
		fmt.Fprintf(&buf, "Best scenario: %s\n", a.Best)
	}
	if rec := AnalyzeComparison(report); rec.Headline != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (%s)\n", rec.Regime.Label(), rec.Headline)
	}
	return buf.Bytes(), nil
}
