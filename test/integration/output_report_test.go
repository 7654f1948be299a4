package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	stddec "github.com/shopspring/decimal"

	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/lexdesk/legal-assistant/internal/output"
)

func TestFormatters(t *testing.T) {
	d1 := stddec.RequireFromString("1234567.5")
	if got := output.FormatCurrency(d1); got != "₹12,34,567.50" {
		t.Fatalf("FormatCurrency got %s", got)
	}
	// FormatPercentage expects the value already in percentage units (not a 0-1 fraction)
	d2 := stddec.NewFromFloat(12.34)
	if got := output.FormatPercentage(d2); got != "12.34%" {
		t.Fatalf("FormatPercentage got %s", got)
	}
}

func TestSaveConfiguration_WritesFile(t *testing.T) {
	cfg := domain.DefaultConfiguration()
	cfg.Assistant.APIKey = "do-not-write"
	out := filepath.Join(t.TempDir(), "lexdesk.yaml")
	if err := output.SaveConfiguration(cfg, out); err != nil {
		t.Fatalf("SaveConfiguration error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected file exists, err: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty file")
	}
	if strings.Contains(string(data), "do-not-write") {
		t.Fatalf("API key leaked into saved configuration")
	}
}

func TestRender_MinimalReports(t *testing.T) {
	zero := stddec.Zero
	reports := map[string]*domain.TaxReport{
		"empty": {},
		"zero income": {Comparison: &domain.ComparisonResult{
			GrossIncome:       zero,
			OldDeductions:     zero,
			OldTaxableIncome:  zero,
			NewTaxableIncome:  zero,
			OldTax:            zero,
			NewTax:            zero,
			RecommendedRegime: domain.RegimeNew,
			SavingsAmount:     zero,
		}},
	}

	for name, report := range reports {
		for _, format := range []string{"json", "csv", "console-lite", "html"} {
			var buf bytes.Buffer
			if err := output.Render(&buf, report, format); err != nil {
				t.Fatalf("%s/%s: Render error: %v", name, format, err)
			}
			if format == "json" && !json.Valid(buf.Bytes()) {
				t.Fatalf("%s: invalid JSON: %s", name, buf.String())
			}
		}
	}
}
