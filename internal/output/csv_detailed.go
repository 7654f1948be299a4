package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/lexdesk/legal-assistant/internal/domain"
)

// CSVDetailedExporter lists every slab line of every breakdown in the report.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.TaxReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Source", "Regime", "Line", "Label", "Rate", "Amount", "IsCess"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	write := func(source string, regime domain.TaxRegime, lines []domain.BreakdownLine) error {
		for i, l := range lines {
			row := []string{
				source,
				regime.String(),
				intToString(i + 1),
				l.Label,
				l.Rate.String(),
				l.Amount.StringFixed(2),
				boolToString(l.Cess),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}
	if calc := report.Calculation; calc != nil {
		if err := write("calculation", calc.Regime, calc.Breakdown); err != nil {
			return nil, err
		}
	}
	if cmp := report.Comparison; cmp != nil {
		if err := write("comparison", domain.RegimeOld, cmp.OldBreakdown); err != nil {
			return nil, err
		}
		if err := write("comparison", domain.RegimeNew, cmp.NewBreakdown); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
