package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/lexdesk/legal-assistant/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	goodStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	tableBorder  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ConsoleVerboseFormatter renders the detailed, styled console report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, titleStyle.Render("INDIAN INCOME TAX ANALYSIS"))
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, sectionStyle.Render("KEY ASSUMPTIONS:"))
	year := ""
	if report.Calculation != nil {
		year = report.Calculation.AssessmentYear
	}
	for _, a := range GenerateAssumptions(year) {
		fmt.Fprintf(&buf, "• %s\n", faintStyle.Render(a))
	}
	fmt.Fprintln(&buf)

	if calc := report.Calculation; calc != nil {
		writeCalculation(&buf, calc)
	}
	if cmp := report.Comparison; cmp != nil {
		writeComparison(&buf, cmp)
		rec := AnalyzeComparison(report)
		fmt.Fprintln(&buf, goodStyle.Render("RECOMMENDATION: "+rec.Headline))
		fmt.Fprintln(&buf)
	}
	if a := report.Analysis; a != nil {
		writeAnalysis(&buf, a)
	}
	return buf.Bytes(), nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorder).
		Headers(headers...)
}

func breakdownTable(lines []domain.BreakdownLine) string {
	t := newTable("Slab", "Rate", "Tax")
	for _, l := range lines {
		t.Row(l.Label, FormatRate(l.Rate), FormatCurrency(l.Amount))
	}
	return t.Render()
}

func writeCalculation(buf *bytes.Buffer, calc *domain.TaxCalculation) {
	heading := "TAX CALCULATION (" + calc.Regime.Label() + ")"
	if calc.AssessmentYear != "" {
		heading += " AY " + calc.AssessmentYear
	}
	fmt.Fprintln(buf, sectionStyle.Render(heading))
	fmt.Fprintf(buf, "Gross Income:      %s\n", FormatCurrency(calc.GrossIncome))
	for _, item := range calc.Deductions {
		capText := "uncapped"
		if item.Cap != nil {
			capText = "cap " + FormatCurrency(*item.Cap)
		}
		fmt.Fprintf(buf, "  Section %-6s   claimed %s, allowed %s (%s)\n",
			item.Section, FormatCurrency(item.Claimed), FormatCurrency(item.Allowed), capText)
	}
	fmt.Fprintf(buf, "Total Deductions:  %s\n", FormatCurrency(calc.TotalDeductions))
	fmt.Fprintf(buf, "Taxable Income:    %s\n", FormatCurrency(calc.TaxableIncome))
	fmt.Fprintf(buf, "Total Tax:         %s\n", FormatCurrency(calc.Tax))
	fmt.Fprintf(buf, "Effective Rate:    %s\n", FormatPercentage(calc.EffectiveRate))
	fmt.Fprintln(buf, breakdownTable(calc.Breakdown))
	fmt.Fprintln(buf)
}

func writeComparison(buf *bytes.Buffer, cmp *domain.ComparisonResult) {
	fmt.Fprintln(buf, sectionStyle.Render("REGIME COMPARISON"))
	fmt.Fprintf(buf, "Gross Income:      %s\n", FormatCurrency(cmp.GrossIncome))
	t := newTable("", "Old Regime", "New Regime")
	t.Row("Deductions", FormatCurrency(cmp.OldDeductions), FormatCurrency(decimal.Zero))
	t.Row("Taxable Income", FormatCurrency(cmp.OldTaxableIncome), FormatCurrency(cmp.NewTaxableIncome))
	t.Row("Total Tax", FormatCurrency(cmp.OldTax), FormatCurrency(cmp.NewTax))
	fmt.Fprintln(buf, t.Render())
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "Old Regime breakdown:")
	fmt.Fprintln(buf, breakdownTable(cmp.OldBreakdown))
	fmt.Fprintln(buf, "New Regime breakdown:")
	fmt.Fprintln(buf, breakdownTable(cmp.NewBreakdown))
	fmt.Fprintln(buf)
}

func writeAnalysis(buf *bytes.Buffer, a *domain.DeductionAnalysis) {
	fmt.Fprintln(buf, sectionStyle.Render("DEDUCTION SCENARIOS (Old Regime)"))
	fmt.Fprintf(buf, "Base Income:       %s\n", FormatCurrency(a.BaseIncome))
	t := newTable("Scenario", "Deductions", "Taxable Income", "Tax", "Savings")
	for _, sc := range a.Scenarios {
		t.Row(sc.Name, FormatCurrency(sc.TotalDeductions), FormatCurrency(sc.TaxableIncome), FormatCurrency(sc.Tax), FormatCurrency(sc.Savings))
	}
	fmt.Fprintln(buf, t.Render())
	fmt.Fprintf(buf, "Best scenario: %s\n", goodStyle.Render(a.Best))
	fmt.Fprintln(buf)
}
