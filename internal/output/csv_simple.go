package output

import (
	"bytes"
	"encoding/csv"

	"github.com/lexdesk/legal-assistant/internal/domain"
)

// CSVSummarizer implements the summary CSV output: one row per regime or scenario.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.TaxReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Kind", "Name", "GrossIncome", "Deductions", "TaxableIncome", "Tax", "Savings"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	var rows [][]string
	if calc := report.Calculation; calc != nil {
		rows = append(rows, []string{
			"calculation", calc.Regime.Label(),
			calc.GrossIncome.StringFixed(2),
			calc.TotalDeductions.StringFixed(2),
			calc.TaxableIncome.StringFixed(2),
			calc.Tax.StringFixed(2),
			"",
		})
	}
	if cmp := report.Comparison; cmp != nil {
		oldSavings, newSavings := "0.00", "0.00"
		if cmp.RecommendedRegime == domain.RegimeOld {
			oldSavings = cmp.SavingsAmount.StringFixed(2)
		} else {
			newSavings = cmp.SavingsAmount.StringFixed(2)
		}
		rows = append(rows,
			[]string{"comparison", domain.RegimeOld.Label(), cmp.GrossIncome.StringFixed(2), cmp.OldDeductions.StringFixed(2),
				cmp.OldTaxableIncome.StringFixed(2), cmp.OldTax.StringFixed(2), oldSavings},
			[]string{"comparison", domain.RegimeNew.Label(), cmp.GrossIncome.StringFixed(2), "0.00",
				cmp.NewTaxableIncome.StringFixed(2), cmp.NewTax.StringFixed(2), newSavings},
		)
	}
	if a := report.Analysis; a != nil {
		for _, sc := range a.Scenarios {
			rows = append(rows, []string{
				"scenario", sc.Name,
				a.BaseIncome.StringFixed(2),
				sc.TotalDeductions.StringFixed(2),
				sc.TaxableIncome.StringFixed(2),
				sc.Tax.StringFixed(2),
				sc.Savings.StringFixed(2),
			})
		}
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
