package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lexdesk/legal-assistant/internal/calculation"
	"github.com/lexdesk/legal-assistant/internal/config"
	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/lexdesk/legal-assistant/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullReport(t *testing.T, path string) *domain.TaxReport {
	t.Helper()
	input, err := config.NewInputParser().LoadTaxInput(path)
	require.NoError(t, err)

	calc := calculation.NewCalculator()
	report := &domain.TaxReport{}
	report.Calculation, err = calc.Calculate(context.Background(), *input)
	require.NoError(t, err)
	report.Comparison, err = calc.Compare(context.Background(), input.Income, input.Deductions)
	require.NoError(t, err)
	report.Analysis, err = calculation.AnalyzeDeductions(input.Income.Gross())
	require.NoError(t, err)
	return report
}

func TestOutputGeneration(t *testing.T) {
	report := fullReport(t, "../testdata/mixed_income.yaml")

	for _, format := range []string{"console", "console-lite", "json", "csv", "detailed-csv", "html"} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			files, err := output.GenerateReport(report, format, dir)
			require.NoError(t, err)
			require.Len(t, files, 1)

			info, err := os.Stat(files[0])
			require.NoError(t, err)
			assert.Positive(t, info.Size())
			assert.Equal(t, dir, filepath.Dir(files[0]))
		})
	}
}

func TestOutputGenerationAll(t *testing.T) {
	report := fullReport(t, "../testdata/salaried_old_regime.yaml")

	files, err := output.GenerateReport(report, "all", t.TempDir())
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, ".txt", filepath.Ext(files[0]))
	assert.Equal(t, ".csv", filepath.Ext(files[1]))
}
